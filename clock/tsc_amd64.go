//go:build amd64 && !noasm

// tsc_amd64.go
//
// Go declaration for the serializing timestamp read on amd64. The
// implementation lives in tsc_amd64.s and issues RDTSCP, which waits for
// prior loads to retire before sampling the counter.

package clock

// nowCycles returns the current TSC value (RDTSCP).
func nowCycles() uint64
