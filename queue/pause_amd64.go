//go:build amd64 && !noasm

// pause_amd64.go
//
// Go declaration for procPause on amd64; the body in pause_amd64.s emits
// a single PAUSE instruction.

package queue

// procPause executes the x86_64 PAUSE instruction.
func procPause()
