// ring.go
//
// Lock-free single-producer/single-consumer ring of fixed 64-byte market
// events, tuned for <10 ns hand-off latency. Producer and consumer cursors
// live on separate cache lines to eliminate false sharing; the payload
// array is 64-byte aligned so every slot spans exactly one line. One slot
// stays permanently reserved so the full predicate is a single compare:
// usable capacity is size-1.

package ring

import (
	"sync/atomic"
	"unsafe"

	"main/constants"
	"main/types"
)

// Ring is a fixed-capacity circular buffer dedicated to one producer and
// one consumer. All operations are wait-free: no loops, no allocation, no
// OS calls.
type Ring struct {
	_     [64]byte // isolate write cursor on its own cache line
	write uint64
	//lint:ignore U1000 padding to keep write & read on different cache-lines
	_pad1 [56]byte
	read  uint64
	//lint:ignore U1000 padding to keep hot cursors from colliding with metadata
	_pad2 [56]byte
	mask  uint64
	low   uint64 // observational fill thresholds, slots
	high  uint64

	buf     []types.MarketEvent
	backing []byte // keeps the aligned region alive
}

// New allocates a ring whose size must be a power of two; otherwise it
// panics so the bit-masking arithmetic stays valid. Watermarks default to
// 10%/90% of capacity.
func New(size int) *Ring {
	if size <= 0 || size&(size-1) != 0 {
		panic("ring: size must be >0 and a power of two")
	}
	backing := make([]byte, (size+1)*constants.EventSize)
	off := uintptr(unsafe.Pointer(&backing[0])) & (constants.CacheLine - 1)
	if off != 0 {
		off = constants.CacheLine - off
	}
	return &Ring{
		mask:    uint64(size - 1),
		low:     uint64(float64(size) * constants.LowWatermarkFrac),
		high:    uint64(float64(size) * constants.HighWatermarkFrac),
		buf:     unsafe.Slice((*types.MarketEvent)(unsafe.Pointer(&backing[off])), size),
		backing: backing,
	}
}

// TryPush copies *ev into the ring, returning false if only the reserved
// slot remains. The record store is published before the cursor advance.
//
//go:nosplit
func (r *Ring) TryPush(ev *types.MarketEvent) bool {
	w := atomic.LoadUint64(&r.write)
	next := (w + 1) & r.mask
	if next == atomic.LoadUint64(&r.read) {
		return false
	}
	r.buf[w] = *ev
	atomic.StoreUint64(&r.write, next)
	return true
}

// TryPop copies the oldest record into *out and advances the read cursor,
// returning false if the ring is empty.
//
//go:nosplit
func (r *Ring) TryPop(out *types.MarketEvent) bool {
	rd := atomic.LoadUint64(&r.read)
	if rd == atomic.LoadUint64(&r.write) {
		return false
	}
	*out = r.buf[rd]
	atomic.StoreUint64(&r.read, (rd+1)&r.mask)
	return true
}

// TryPeek copies the oldest record into *out without consuming it.
//
//go:nosplit
func (r *Ring) TryPeek(out *types.MarketEvent) bool {
	rd := atomic.LoadUint64(&r.read)
	if rd == atomic.LoadUint64(&r.write) {
		return false
	}
	*out = r.buf[rd]
	return true
}

// Size reports the current fill. Approximate under concurrent push/pop;
// always in [0, capacity-1].
func (r *Ring) Size() int {
	w := atomic.LoadUint64(&r.write)
	rd := atomic.LoadUint64(&r.read)
	if w >= rd {
		return int(w - rd)
	}
	return int(uint64(len(r.buf)) - rd + w)
}

// Empty reports whether read has caught up with write.
func (r *Ring) Empty() bool {
	return atomic.LoadUint64(&r.read) == atomic.LoadUint64(&r.write)
}

// Full reports whether only the reserved slot remains.
func (r *Ring) Full() bool {
	w := atomic.LoadUint64(&r.write)
	return (w+1)&r.mask == atomic.LoadUint64(&r.read)
}

// Capacity returns the slot count. One slot is reserved, so at most
// Capacity()-1 records are ever resident.
func (r *Ring) Capacity() int {
	return len(r.buf)
}

// SetWatermarks replaces the observational fill thresholds.
func (r *Ring) SetWatermarks(low, high int) {
	atomic.StoreUint64(&r.low, uint64(low))
	atomic.StoreUint64(&r.high, uint64(high))
}

// HighWatermarkExceeded reports Size() >= high watermark. Approximate.
func (r *Ring) HighWatermarkExceeded() bool {
	return uint64(r.Size()) >= atomic.LoadUint64(&r.high)
}

// BelowLowWatermark reports Size() <= low watermark. Approximate.
func (r *Ring) BelowLowWatermark() bool {
	return uint64(r.Size()) <= atomic.LoadUint64(&r.low)
}

// Reset returns the ring to the empty state. Requires exclusive access —
// both cursors are rewritten without coordination.
func (r *Ring) Reset() {
	atomic.StoreUint64(&r.write, 0)
	atomic.StoreUint64(&r.read, 0)
}
