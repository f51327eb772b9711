// clock.go
//
// Monotonic cycle-count timestamp source plus the cycle↔nanosecond
// conversion used by every latency measurement in the runtime. On amd64
// the counter is a serializing TSC read; elsewhere it degrades to a
// nanosecond monotonic clock. Calibrate measures the fall-back clock the
// same way as the TSC, so cycles_per_second lands close to 1e9 but is not
// set to exactly 1e9, and conversions carry that small measurement error.
// Conversions never divide by zero.

package clock

import (
	"math/bits"
	"sync"
	"sync/atomic"
	"time"

	"main/constants"
)

// cyclesPerSecond starts at 1e9 so a conversion issued before Calibrate is
// well-defined (and exact on the fallback clock).
var cyclesPerSecond atomic.Uint64

var calibrateOnce sync.Once

func init() {
	cyclesPerSecond.Store(1_000_000_000)
}

// NowCycles reads the per-CPU cycle counter. Monotonic on a pinned thread.
//
//go:nosplit
func NowCycles() uint64 {
	return nowCycles()
}

// NowNanos returns wall-clock nanoseconds since the Unix epoch. Used only
// for event stamping; it is not TSC-derived.
func NowNanos() uint64 {
	return uint64(time.Now().UnixNano())
}

// Calibrate measures the cycle counter against the wall clock over
// constants.CalibrationInterval and stores cycles/second. Safe to call
// more than once; only the first call measures.
func Calibrate() {
	calibrateOnce.Do(func() {
		start := time.Now()
		c0 := nowCycles()
		time.Sleep(constants.CalibrationInterval)
		c1 := nowCycles()
		elapsed := time.Since(start).Nanoseconds()

		var cps uint64
		if elapsed > 0 && c1 > c0 {
			cps = (c1 - c0) * 1_000_000_000 / uint64(elapsed)
		}
		if cps == 0 {
			cps = 1_000_000_000
		}
		cyclesPerSecond.Store(cps)
	})
}

// CyclesPerSecond returns the calibrated counter frequency.
func CyclesPerSecond() uint64 {
	return cyclesPerSecond.Load()
}

// CyclesToNanos converts a cycle delta to nanoseconds via 128-bit
// intermediate arithmetic so large deltas cannot overflow the multiply.
//
//go:nosplit
func CyclesToNanos(c uint64) uint64 {
	cps := cyclesPerSecond.Load()
	hi, lo := bits.Mul64(c, 1_000_000_000)
	if hi >= cps {
		return ^uint64(0) // quotient would not fit; saturate
	}
	q, _ := bits.Div64(hi, lo, cps)
	return q
}

// NanosToCycles is the inverse conversion.
//
//go:nosplit
func NanosToCycles(ns uint64) uint64 {
	cps := cyclesPerSecond.Load()
	hi, lo := bits.Mul64(ns, cps)
	if hi >= 1_000_000_000 {
		return ^uint64(0)
	}
	q, _ := bits.Div64(hi, lo, 1_000_000_000)
	return q
}

// Stopwatch measures one span in cycles. Value type; zero-alloc.
type Stopwatch struct {
	start uint64
}

// StartWatch begins a measurement at the current cycle count.
//
//go:nosplit
func StartWatch() Stopwatch {
	return Stopwatch{start: nowCycles()}
}

// ElapsedCycles returns cycles since StartWatch.
//
//go:nosplit
func (s Stopwatch) ElapsedCycles() uint64 {
	return nowCycles() - s.start
}

// ElapsedNanos returns nanoseconds since StartWatch.
//
//go:nosplit
func (s Stopwatch) ElapsedNanos() uint64 {
	return CyclesToNanos(s.ElapsedCycles())
}
