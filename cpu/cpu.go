// cpu.go — CPU pinning, real-time scheduling and isolated-core discovery
// ============================================================================
// THREAD CONTROL
// ============================================================================
//
// Portable surface over the platform thread facilities the runtime cares
// about: affinity, SCHED_FIFO priority, thread naming and the kernel's
// isolated-CPU set. Every facility degrades gracefully — on platforms (or
// privilege levels) that lack one, the call reports false and the worker
// keeps running unconfigured.
//
// All functions here configure the *current* OS thread. A worker that
// needs configuration locks itself to its thread and applies the calls
// from inside; Thread packages that pattern.

package cpu

import (
	"os"
	"runtime"
	"strconv"
	"strings"
)

// isolatedPath is the kernel's comma-separated isolated-core list.
const isolatedPath = "/sys/devices/system/cpu/isolated"

// NumCPUs returns the online logical CPU count.
func NumCPUs() int {
	return runtime.NumCPU()
}

// PinCurrent affines the calling thread to a single CPU. Returns false for
// an out-of-range id or a refused OS call (containers, cgroup limits).
func PinCurrent(cpuID int) bool {
	if cpuID < 0 || cpuID >= NumCPUs() {
		return false
	}
	return pinCurrent(cpuID)
}

// SetCurrentRealtime switches the calling thread to SCHED_FIFO with the
// given priority in [1, 99]. Returns false on out-of-range priority or
// insufficient privilege.
func SetCurrentRealtime(prio int) bool {
	if prio < 1 || prio > 99 {
		return false
	}
	return setCurrentRealtime(prio)
}

// SetCurrentName names the calling thread, truncated to the platform limit
// (15 characters plus terminator on Linux). Best-effort.
func SetCurrentName(name string) bool {
	if len(name) > 15 {
		name = name[:15]
	}
	return setCurrentName(name)
}

// HasRealtime reports whether the calling thread currently runs under a
// real-time fixed-priority policy.
func HasRealtime() bool {
	return hasRealtime()
}

// IsolatedCPUs returns the kernel's isolated-core set, empty when the file
// is absent or empty.
func IsolatedCPUs() []int {
	raw, err := os.ReadFile(isolatedPath)
	if err != nil {
		return nil
	}
	return ParseCPUList(strings.TrimSpace(string(raw)))
}

// ParseCPUList expands the kernel list syntax "a-b,c,d-e" into explicit
// ids. Malformed fragments are skipped; well-formed ones around them still
// parse.
func ParseCPUList(s string) []int {
	var cpus []int
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if dash := strings.IndexByte(tok, '-'); dash >= 0 {
			start, err1 := strconv.Atoi(strings.TrimSpace(tok[:dash]))
			end, err2 := strconv.Atoi(strings.TrimSpace(tok[dash+1:]))
			if err1 != nil || err2 != nil || start > end {
				continue
			}
			for i := start; i <= end; i++ {
				cpus = append(cpus, i)
			}
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil {
			continue
		}
		cpus = append(cpus, n)
	}
	return cpus
}

// Yield hands the core to the scheduler.
func Yield() {
	runtime.Gosched()
}

// SpinWait executes iters CPU pause instructions. Used as the polite phase
// of spin loops.
func SpinWait(iters int) {
	for i := 0; i < iters; i++ {
		procPause()
	}
}
