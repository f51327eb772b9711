// thread.go
//
// Scoped worker thread with best-effort configuration. Start launches fn
// on a dedicated OS thread, applies pinning → naming → priority in that
// order from inside the thread, then runs fn. Configuration failures never
// stop the worker; they are observable through Configured(). Join blocks
// until fn returns — the owner defers it so the thread is always reaped,
// including on abnormal exits from the owning scope.

package cpu

import "runtime"

// Config describes the desired placement of a worker thread.
type Config struct {
	CPU      int    // target core; negative skips pinning
	Name     string // thread name; empty skips naming
	Priority int    // SCHED_FIFO priority in [1,99]; 0 skips
}

// Thread is a running configured worker.
type Thread struct {
	done     chan struct{}
	pinned   bool
	named    bool
	realtime bool
}

// Start launches fn on its own locked OS thread configured per cfg.
// It returns after configuration has been applied, so Configured() is
// immediately meaningful.
func Start(cfg Config, fn func()) *Thread {
	t := &Thread{done: make(chan struct{})}
	ready := make(chan struct{})
	go func() {
		runtime.LockOSThread()
		defer close(t.done)
		if cfg.CPU >= 0 {
			t.pinned = PinCurrent(cfg.CPU)
		}
		if cfg.Name != "" {
			t.named = SetCurrentName(cfg.Name)
		}
		if cfg.Priority != 0 {
			t.realtime = SetCurrentRealtime(cfg.Priority)
		}
		close(ready)
		fn()
	}()
	<-ready
	return t
}

// Join blocks until the worker returns.
func (t *Thread) Join() {
	<-t.done
}

// Configured reports which configuration steps took effect.
func (t *Thread) Configured() (pinned, named, realtime bool) {
	return t.pinned, t.named, t.realtime
}
