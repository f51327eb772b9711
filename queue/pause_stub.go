//go:build !amd64 || noasm

// pause_stub.go
//
// Portable no-op pause for non-amd64 targets.

package queue

func procPause() {}
