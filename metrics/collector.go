// collector.go
//
// Flat counter panel for one pipeline. Each counter owns a cache line so
// producers, consumers and the parser never contend on coherence traffic
// while bumping unrelated counts. The panel composes the three latency
// histograms rather than inheriting behaviour from them.

package metrics

import "sync/atomic"

// Counter is a relaxed 64-bit event counter padded to a full cache line.
type Counter struct {
	v atomic.Uint64
	//lint:ignore U1000 padding against false sharing
	_ [56]byte
}

// Inc adds one.
//
//go:nosplit
func (c *Counter) Inc() { c.v.Add(1) }

// Add folds n in.
//
//go:nosplit
func (c *Counter) Add(n uint64) { c.v.Add(n) }

// Load returns the current count.
//
//go:nosplit
func (c *Counter) Load() uint64 { return c.v.Load() }

// Store overwrites the count; reporting/reset paths only.
func (c *Counter) Store(n uint64) { c.v.Store(n) }

// Collector is the per-pipeline stats panel. Construct with NewCollector
// so the histograms start with their min identity.
type Collector struct {
	MessagesReceived  Counter
	MessagesProcessed Counter
	MessagesDropped   Counter
	ParseErrors       Counter
	SequenceGaps      Counter
	QueueFullEvents   Counter

	EndToEndLatency LatencyHistogram
	ParseLatency    LatencyHistogram
	QueueLatency    LatencyHistogram
}

// NewCollector returns a zeroed, ready-to-record panel.
func NewCollector() *Collector {
	c := &Collector{}
	c.Reset()
	return c
}

// Reset clears every counter and histogram. Callers must ensure no
// concurrent recorders.
func (c *Collector) Reset() {
	c.MessagesReceived.Store(0)
	c.MessagesProcessed.Store(0)
	c.MessagesDropped.Store(0)
	c.ParseErrors.Store(0)
	c.SequenceGaps.Store(0)
	c.QueueFullEvents.Store(0)

	c.EndToEndLatency.Reset()
	c.ParseLatency.Reset()
	c.QueueLatency.Reset()
}
