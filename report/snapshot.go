// snapshot.go
//
// Point-in-time copies of a metrics panel. Snapshots are plain values:
// safe to marshal, log and persist after the pipeline is gone.

package report

import (
	"github.com/sugawarayuuta/sonnet"

	"main/clock"
	"main/metrics"
)

// HistogramSnapshot is one histogram's summary at capture time.
type HistogramSnapshot struct {
	Count uint64 `json:"count"`
	Min   uint64 `json:"min_ns"`
	Max   uint64 `json:"max_ns"`
	Mean  uint64 `json:"mean_ns"`
	P50   uint64 `json:"p50_ns"`
	P99   uint64 `json:"p99_ns"`
	P999  uint64 `json:"p999_ns"`
	P9999 uint64 `json:"p9999_ns"`
}

func captureHistogram(h *metrics.LatencyHistogram) HistogramSnapshot {
	s := HistogramSnapshot{Count: h.Count()}
	if s.Count == 0 {
		return s // min stays 0 instead of its MaxUint64 identity
	}
	s.Min = h.Min()
	s.Max = h.Max()
	s.Mean = h.Mean()
	s.P50 = h.P50()
	s.P99 = h.P99()
	s.P999 = h.P999()
	s.P9999 = h.P9999()
	return s
}

// Snapshot is the full panel at one instant. Counters are read relaxed,
// so a snapshot taken during a burst is approximate by one step per field.
type Snapshot struct {
	TakenAtNs uint64 `json:"taken_at_ns"`

	Received     uint64 `json:"received"`
	Processed    uint64 `json:"processed"`
	Dropped      uint64 `json:"dropped"`
	ParseErrors  uint64 `json:"parse_errors"`
	SequenceGaps uint64 `json:"sequence_gaps"`
	QueueFull    uint64 `json:"queue_full"`

	EndToEnd HistogramSnapshot `json:"end_to_end"`
	Parse    HistogramSnapshot `json:"parse"`
	Queue    HistogramSnapshot `json:"queue"`
}

// Capture reads the panel once.
func Capture(c *metrics.Collector) Snapshot {
	return Snapshot{
		TakenAtNs:    clock.NowNanos(),
		Received:     c.MessagesReceived.Load(),
		Processed:    c.MessagesProcessed.Load(),
		Dropped:      c.MessagesDropped.Load(),
		ParseErrors:  c.ParseErrors.Load(),
		SequenceGaps: c.SequenceGaps.Load(),
		QueueFull:    c.QueueFullEvents.Load(),
		EndToEnd:     captureHistogram(&c.EndToEndLatency),
		Parse:        captureHistogram(&c.ParseLatency),
		Queue:        captureHistogram(&c.QueueLatency),
	}
}

// JSON renders the snapshot for export.
func (s Snapshot) JSON() ([]byte, error) {
	return sonnet.Marshal(s)
}
