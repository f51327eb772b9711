//go:build !linux

// mmap_stub.go
//
// Platforms without MAP_HUGETLB: huge-page requests always fall back to
// the aligned heap region.

package pool

func mapHuge(int) []byte { return nil }

func unmap([]byte) error { return nil }
