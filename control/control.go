// control.go — Run-state coordination for pinned workers
//
// A State value carries the stop and hot flags one pipeline shares. It is
// constructed by the driver and passed to every worker explicitly — there
// is no process-wide instance, so two pipelines in one process never
// cross-signal.
//
// hot flag contract:
//     Ingress                 Consumer
//     --------                ------------------------------
//     SignalActivity ──────▶  Hot() (wake / stay hot-spin)
//     ...push items…
//     PollCooldown clears     ◀─ consumer never writes
//
// All flag accesses are atomic; nothing here blocks.

package control

import (
	"sync/atomic"
	"time"

	"main/constants"
)

// State is the shared run state of one pipeline.
type State struct {
	stop uint32
	hot  uint32
	//lint:ignore U1000 padding keeps the flag pair off the timing fields' line
	_pad [56]byte

	lastHot    int64 // nanosecond timestamp of last ingress activity
	cooldownNs int64
}

// NewState builds a run state with the given hot-spin cooldown; zero
// selects the default.
func NewState(cooldown time.Duration) *State {
	if cooldown <= 0 {
		cooldown = constants.HotCooldown
	}
	return &State{cooldownNs: int64(cooldown)}
}

// SignalActivity marks the pipeline active and records the instant, so
// consumers keep hot-spinning through a burst. Called from ingress on
// every accepted record batch.
//
//go:nosplit
func (s *State) SignalActivity() {
	atomic.StoreUint32(&s.hot, 1)
	atomic.StoreInt64(&s.lastHot, time.Now().UnixNano())
}

// PollCooldown clears the hot flag once the cooldown has elapsed since the
// last activity. Cheap enough to call inline from spin loops.
//
//go:nosplit
func (s *State) PollCooldown() {
	if atomic.LoadUint32(&s.hot) == 1 &&
		time.Now().UnixNano()-atomic.LoadInt64(&s.lastHot) > s.cooldownNs {
		atomic.StoreUint32(&s.hot, 0)
	}
}

// Shutdown requests termination. Workers observe it between iterations and
// tear down after at most one ring traversal of drain.
func (s *State) Shutdown() {
	atomic.StoreUint32(&s.stop, 1)
}

// Stopped reports whether shutdown has been requested.
//
//go:nosplit
func (s *State) Stopped() bool {
	return atomic.LoadUint32(&s.stop) != 0
}

// Hot reports whether ingress activity is recent.
//
//go:nosplit
func (s *State) Hot() bool {
	return atomic.LoadUint32(&s.hot) != 0
}

// Flags exposes the raw flag words for spin loops that poll through
// pointers. The pointers stay valid for the State's lifetime.
func (s *State) Flags() (stop, hot *uint32) {
	return &s.stop, &s.hot
}
