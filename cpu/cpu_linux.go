//go:build linux

// cpu_linux.go
//
// Linux bindings: sched_setaffinity(2) for pinning, sched_setattr(2) for
// SCHED_FIFO, prctl(PR_SET_NAME) for naming. All act on the calling
// thread (pid 0). Errors collapse to false — on a containerised or
// cgroup-heavy system these calls routinely return EPERM and the worker
// simply runs unpinned.

package cpu

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

func pinCurrent(cpuID int) bool {
	var set unix.CPUSet
	set.Zero()
	set.Set(cpuID)
	return unix.SchedSetaffinity(0, &set) == nil
}

func setCurrentRealtime(prio int) bool {
	attr := unix.SchedAttr{
		Size:     unix.SizeofSchedAttr,
		Policy:   unix.SCHED_FIFO,
		Priority: uint32(prio),
	}
	return unix.SchedSetAttr(0, &attr, 0) == nil
}

func setCurrentName(name string) bool {
	// prctl wants a NUL-terminated buffer of at most 16 bytes.
	var buf [16]byte
	copy(buf[:15], name)
	return unix.Prctl(unix.PR_SET_NAME, uintptr(unsafe.Pointer(&buf[0])), 0, 0, 0) == nil
}

func hasRealtime() bool {
	attr, err := unix.SchedGetAttr(0, 0)
	return err == nil && attr.Policy == unix.SCHED_FIFO
}
