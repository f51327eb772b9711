// pinned_consumer.go
//
// Low-latency SPSC consumer.
//
//   • Dedicated OS thread pinned to `core`.
//   • Stays in **hot-spin** (tight loop, no cpuRelax) while
//       – new work has arrived within the cooldown window, OR
//       – the run state's hot flag is set.
//   • Past the grace window and with hot == 0 it drops to the
//     **cold-spin** path: cpuRelax every iteration.
//   • Exits only after shutdown is requested and a pop has failed, which
//     means the ring is drained; closes `done` exactly once.
//
// All cross-thread state lives in the control.State passed in; no other
// synchronisation primitive appears in the hot path.

package ring

import (
	"runtime"
	"time"

	"main/constants"
	"main/control"
	"main/cpu"
	"main/types"
)

// PinnedConsumer drains r until shutdown, invoking fn for every record.
func PinnedConsumer(
	core int,
	r *Ring,
	st *control.State,
	fn func(*types.MarketEvent),
	done chan<- struct{},
) {
	go func() {
		// ── thread & affinity ─────────────────────────────
		runtime.LockOSThread()
		cpu.PinCurrent(core)
		defer func() {
			runtime.UnlockOSThread()
			close(done)
		}()

		var ev types.MarketEvent
		last := time.Now() // last time TryPop delivered
		miss := 0

		// ── main loop ─────────────────────────────────────
		for {
			// fast path: pop succeeded → process & mark activity
			if r.TryPop(&ev) {
				fn(&ev)
				last, miss = time.Now(), 0
				continue
			}

			// stop request? pop already failed, so the ring is drained
			if st.Stopped() {
				return
			}

			// ---------- choose spin mode ------------------
			if st.Hot() || time.Since(last) <= constants.HotCooldown {
				// tight loop: no cpuRelax
				continue
			}

			// cold-spin path: power-friendlier
			if miss++; miss >= constants.SpinBudget {
				miss = 0
			}
			cpuRelax()
		}
	}()
}
