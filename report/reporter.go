// reporter.go
//
// Periodic stats printer. Runs on an ordinary goroutine well away from the
// pinned cores, reads the panel relaxed, and emits one structured line per
// interval. Shutdown is observed at the next tick.

package report

import (
	"time"

	"go.uber.org/zap"

	"main/constants"
	"main/control"
	"main/metrics"
)

// Reporter prints one pipeline's panel at a fixed cadence.
type Reporter struct {
	log      *zap.Logger
	col      *metrics.Collector
	interval time.Duration
}

// New builds a reporter; a non-positive interval selects the default.
func New(log *zap.Logger, col *metrics.Collector, interval time.Duration) *Reporter {
	if interval <= 0 {
		interval = constants.StatsInterval
	}
	return &Reporter{log: log, col: col, interval: interval}
}

// Run emits until shutdown. Call from its own goroutine; returns after
// the final tick observes the stop flag.
func (r *Reporter) Run(st *control.State) {
	tick := time.NewTicker(r.interval)
	defer tick.Stop()
	for {
		<-tick.C
		if st.Stopped() {
			return
		}
		r.Emit()
	}
}

// Emit logs one snapshot.
func (r *Reporter) Emit() {
	s := Capture(r.col)
	r.log.Info("pipeline stats",
		zap.Uint64("received", s.Received),
		zap.Uint64("processed", s.Processed),
		zap.Uint64("dropped", s.Dropped),
		zap.Uint64("parse_errors", s.ParseErrors),
		zap.Uint64("sequence_gaps", s.SequenceGaps),
		zap.Uint64("queue_full", s.QueueFull),
		zap.Uint64("e2e_count", s.EndToEnd.Count),
		zap.Uint64("e2e_min_ns", s.EndToEnd.Min),
		zap.Uint64("e2e_p50_ns", s.EndToEnd.P50),
		zap.Uint64("e2e_p99_ns", s.EndToEnd.P99),
		zap.Uint64("e2e_p999_ns", s.EndToEnd.P999),
		zap.Uint64("e2e_p9999_ns", s.EndToEnd.P9999),
		zap.Uint64("e2e_max_ns", s.EndToEnd.Max),
		zap.Uint64("e2e_mean_ns", s.EndToEnd.Mean),
	)
}
