package metrics

import (
	"testing"
	"unsafe"
)

// TestCounterIsolation pins each counter to a full cache line so the panel
// layout cannot silently regress into false sharing.
func TestCounterIsolation(t *testing.T) {
	if got := unsafe.Sizeof(Counter{}); got != 64 {
		t.Fatalf("Counter size = %d, want 64", got)
	}
	var c Collector
	a := unsafe.Offsetof(c.MessagesReceived)
	b := unsafe.Offsetof(c.MessagesProcessed)
	if b-a != 64 {
		t.Fatalf("adjacent counters %d bytes apart, want 64", b-a)
	}
}

func TestCounterOps(t *testing.T) {
	var c Counter
	c.Inc()
	c.Inc()
	c.Add(40)
	if c.Load() != 42 {
		t.Fatalf("counter = %d, want 42", c.Load())
	}
	c.Store(0)
	if c.Load() != 0 {
		t.Fatal("store must overwrite")
	}
}

func TestCollectorReset(t *testing.T) {
	c := NewCollector()
	c.MessagesReceived.Inc()
	c.SequenceGaps.Add(3)
	c.EndToEndLatency.Record(1500)
	c.ParseLatency.Record(200)
	c.QueueLatency.Record(900)

	c.Reset()

	if c.MessagesReceived.Load() != 0 || c.SequenceGaps.Load() != 0 {
		t.Fatal("reset must clear counters")
	}
	if c.EndToEndLatency.Count() != 0 || c.ParseLatency.Count() != 0 ||
		c.QueueLatency.Count() != 0 {
		t.Fatal("reset must clear histograms")
	}
	if c.EndToEndLatency.Min() != ^uint64(0) {
		t.Fatal("reset must restore histogram min identity")
	}
}
