//go:build !amd64 || noasm

// tsc_stub.go
//
// Portable fall-back when no cycle counter is reachable: a nanosecond
// monotonic clock stands in, so calibration measures close to 1e9
// cycles/second. The value is measured rather than fixed, so conversions
// are close to exact but not exact.

package clock

import "time"

var epoch = time.Now()

// nowCycles counts monotonic nanoseconds since process start.
func nowCycles() uint64 {
	return uint64(time.Since(epoch))
}
