//go:build !linux

// cpu_stub.go
//
// Non-Linux fall-backs: every configuration call reports false and the
// caller proceeds unconfigured.

package cpu

func pinCurrent(int) bool { return false }

func setCurrentRealtime(int) bool { return false }

func setCurrentName(string) bool { return false }

func hasRealtime() bool { return false }
