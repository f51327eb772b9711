// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: constants.go — Feed-runtime tunables
//
// Purpose:
//   - Defines runtime-wide capacities, watermark fractions and pacing values
//     for the ingestion pipeline.
//
// ⚠️ No runtime logic here — all values must be compile-time resolvable
// ─────────────────────────────────────────────────────────────────────────────

package constants

import "time"

// ───────────────────────────── Cache geometry ──────────────────────────────

const (
	// CacheLine is the coherence-transfer unit assumed throughout the
	// runtime. Every hot cursor and counter is padded to this boundary.
	CacheLine = 64

	// EventSize is the wire-stable size of one market event record.
	// SPSC slots, MPMC node payloads and slab slots are all sized
	// against it.
	EventSize = 64
)

// ───────────────────────────── Queue capacities ─────────────────────────────

const (
	// RingBits sizes the default SPSC hand-off ring: 2^20 slots = 64 MiB
	// of event storage. One slot stays reserved so the full predicate is
	// a single compare, leaving 2^20-1 usable entries.
	RingBits = 20

	// DefaultRingCapacity is the expanded slot count.
	DefaultRingCapacity = 1 << RingBits

	// DefaultQueueNodes bounds the MPMC stage. The queue holds at most
	// DefaultQueueNodes-1 events plus the sentinel.
	DefaultQueueNodes = 1 << 20

	// DefaultPoolSlots sizes the slab pool backing scratch event records.
	DefaultPoolSlots = 1 << 20
)

// ───────────────────────────── Watermarks ───────────────────────────────────

const (
	// HighWatermarkFrac / LowWatermarkFrac are the default observational
	// fill thresholds, expressed as a fraction of ring capacity.
	HighWatermarkFrac = 0.9
	LowWatermarkFrac  = 0.1
)

// ───────────────────────────── Backoff ladder ───────────────────────────────

const (
	// MaxBackoffExp caps the exponential CAS backoff: the pause burst
	// doubles until 2^MaxBackoffExp iterations, after which contenders
	// yield to the scheduler instead of burning the core.
	MaxBackoffExp = 10

	// SpinBudget is the wrap point of the pinned consumer's cold-spin miss
	// counter. It does not choose the spin mode: hot-spin versus cold-spin
	// is decided by the run state's hot flag and HotCooldown.
	SpinBudget = 256
)

// ───────────────────────────── Timing ───────────────────────────────────────

const (
	// CalibrationInterval is the wall-clock window the cycle clock
	// measures against. Must stay ≥100ms for a stable cycles/second fit.
	CalibrationInterval = 120 * time.Millisecond

	// StatsInterval paces the periodic metrics printer.
	StatsInterval = 1 * time.Second

	// HotCooldown is how long the run state keeps consumers hot-spinning
	// after the last observed ingress activity.
	HotCooldown = 1 * time.Second

	// DefaultRunSeconds is the demo driver duration when no argument is
	// given.
	DefaultRunSeconds = 10
)

// ───────────────────────────── Large pages ──────────────────────────────────

const (
	// HugePageSize is the mapping granule the slab pool requests from the
	// kernel before falling back to the heap.
	HugePageSize = 2 << 20
)
