//go:build linux

// mmap_linux.go
//
// MAP_HUGETLB backing for the slab region. The request size rounds up to
// whole huge pages; a refused mapping (no reserved huge pages, container
// limits) returns nil and the caller falls back to the heap.

package pool

import (
	"golang.org/x/sys/unix"

	"main/constants"
)

func mapHuge(size int) []byte {
	size = (size + constants.HugePageSize - 1) &^ (constants.HugePageSize - 1)
	b, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS|unix.MAP_HUGETLB)
	if err != nil {
		return nil
	}
	return b
}

func unmap(b []byte) error {
	return unix.Munmap(b)
}
