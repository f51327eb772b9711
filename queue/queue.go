// ============================================================================
// LOCK-FREE MPMC QUEUE OVER A BOUNDED NODE POOL
// ============================================================================
//
// Michael-Scott linked queue for multi-producer/multi-consumer hand-off of
// fixed 64-byte market events. Every node lives in one preallocated pool;
// a lock-free LIFO free list recycles them, so the queue never allocates
// after construction and never holds more than capacity-1 user items plus
// the sentinel.
//
// ABA protection:
//   - Nodes are addressed by 32-bit pool index, never by pointer.
//   - head, tail, the free-list top and every next link are single 64-bit
//     words packing {version:32 | index:32}. Each successful install bumps
//     the version, so a recycled node can never satisfy a stale CAS.
//
// Linearization points:
//   - enqueue: the successful CAS linking the node at tail.next
//   - dequeue: the successful CAS advancing head
//
// Contended CAS loops back off exponentially through PAUSE bursts that
// double up to 2^10 iterations, then yield to the scheduler.

package queue

import (
	"sync/atomic"

	"main/types"
)

// nilIdx terminates links; it is never a valid pool index.
const nilIdx = ^uint32(0)

// pack combines a node index with a version counter into one CAS-able word.
//
//go:inline
func pack(idx, ver uint32) uint64 {
	return uint64(ver)<<32 | uint64(idx)
}

//go:inline
func unpackIdx(w uint64) uint32 { return uint32(w) }

//go:inline
func unpackVer(w uint64) uint32 { return uint32(w >> 32) }

// node is one pool slot: a 64-byte payload, a tagged next link, and
// padding so neighbouring nodes never share a cache line.
type node struct {
	data types.MarketEvent
	next atomic.Uint64 // {version | index}
	//lint:ignore U1000 padding to a 128-byte stride
	_ [56]byte
}

// Queue is the bounded MPMC queue. head always addresses a live sentinel;
// tail trails the last linked node by at most one hop (helpers advance it).
type Queue struct {
	_    [64]byte // cursor isolation
	head atomic.Uint64
	//lint:ignore U1000 padding
	_pad1 [56]byte
	tail  atomic.Uint64
	//lint:ignore U1000 padding
	_pad2 [56]byte
	free  atomic.Uint64 // free-list top, {version | index}
	//lint:ignore U1000 padding
	_pad3 [56]byte

	nodes []node
}

// New builds a queue over a pool of capacity nodes. One node is consumed
// by the sentinel, so at most capacity-1 items are ever resident. Panics
// when capacity cannot hold a sentinel plus one item.
func New(capacity int) *Queue {
	if capacity < 2 || uint64(capacity) >= uint64(nilIdx) {
		panic("queue: capacity must hold a sentinel plus at least one node")
	}
	q := &Queue{nodes: make([]node, capacity)}

	// node 0 becomes the sentinel
	q.nodes[0].next.Store(pack(nilIdx, 0))
	q.head.Store(pack(0, 0))
	q.tail.Store(pack(0, 0))

	// thread the remaining nodes into the free list
	for i := 1; i < capacity; i++ {
		nxt := uint32(i + 1)
		if i == capacity-1 {
			nxt = nilIdx
		}
		q.nodes[i].next.Store(pack(nxt, 0))
	}
	q.free.Store(pack(1, 0))
	return q
}

// TryEnqueue copies *ev into a pooled node and links it at the tail.
// Returns false when the node pool is exhausted.
func (q *Queue) TryEnqueue(ev *types.MarketEvent) bool {
	idx, ok := q.allocNode()
	if !ok {
		return false
	}
	n := &q.nodes[idx]
	n.data = *ev
	n.next.Store(pack(nilIdx, unpackVer(n.next.Load())+1))

	var b backoff
	for {
		tail := q.tail.Load()
		tn := &q.nodes[unpackIdx(tail)]
		next := tn.next.Load()
		if tail != q.tail.Load() {
			b.backoff()
			continue
		}
		if unpackIdx(next) == nilIdx {
			// link the node; tail swing is best-effort, helpers finish it
			if tn.next.CompareAndSwap(next, pack(idx, unpackVer(next)+1)) {
				q.tail.CompareAndSwap(tail, pack(idx, unpackVer(tail)+1))
				return true
			}
		} else {
			// tail is lagging: help it forward, then retry
			q.tail.CompareAndSwap(tail, pack(unpackIdx(next), unpackVer(tail)+1))
		}
		b.backoff()
	}
}

// TryDequeue copies the oldest item into *out, returning false when the
// queue is empty. The retired sentinel goes back to the pool.
func (q *Queue) TryDequeue(out *types.MarketEvent) bool {
	var b backoff
	for {
		head := q.head.Load()
		tail := q.tail.Load()
		hn := &q.nodes[unpackIdx(head)]
		next := hn.next.Load()
		if head != q.head.Load() {
			b.backoff()
			continue
		}
		if unpackIdx(head) == unpackIdx(tail) {
			if unpackIdx(next) == nilIdx {
				return false
			}
			// tail is lagging behind a linked node: help and retry
			q.tail.CompareAndSwap(tail, pack(unpackIdx(next), unpackVer(tail)+1))
		} else {
			if unpackIdx(next) == nilIdx {
				// transient: head moved between our loads
				b.backoff()
				continue
			}
			// copy out before the CAS; a failed CAS discards the copy
			*out = q.nodes[unpackIdx(next)].data
			if q.head.CompareAndSwap(head, pack(unpackIdx(next), unpackVer(head)+1)) {
				q.freeNode(unpackIdx(head))
				return true
			}
		}
		b.backoff()
	}
}

// TryDequeueBulk fills out with up to len(out) items, stopping at the
// first empty observation. Returns the count dequeued.
func (q *Queue) TryDequeueBulk(out []types.MarketEvent) int {
	n := 0
	for n < len(out) && q.TryDequeue(&out[n]) {
		n++
	}
	return n
}

// Empty reports whether the sentinel has no successor. Approximate.
func (q *Queue) Empty() bool {
	head := q.head.Load()
	return unpackIdx(q.nodes[unpackIdx(head)].next.Load()) == nilIdx
}

// Size walks the linked sequence from head. Diagnostics only — O(n) and
// bounded by the pool size.
func (q *Queue) Size() int {
	count := 0
	cur := unpackIdx(q.head.Load())
	next := unpackIdx(q.nodes[cur].next.Load())
	for next != nilIdx && count < len(q.nodes) {
		count++
		cur = next
		next = unpackIdx(q.nodes[cur].next.Load())
	}
	return count
}

// Capacity returns the maximum resident item count (pool size minus the
// sentinel).
func (q *Queue) Capacity() int {
	return len(q.nodes) - 1
}

// allocNode pops a node index off the free list. The version tag on the
// top word makes the pop safe against recycled nodes.
func (q *Queue) allocNode() (uint32, bool) {
	var b backoff
	for {
		top := q.free.Load()
		idx := unpackIdx(top)
		if idx == nilIdx {
			return 0, false
		}
		next := q.nodes[idx].next.Load()
		if q.free.CompareAndSwap(top, pack(unpackIdx(next), unpackVer(top)+1)) {
			return idx, true
		}
		b.backoff()
	}
}

// freeNode returns a retired node to the free list.
func (q *Queue) freeNode(idx uint32) {
	n := &q.nodes[idx]
	var b backoff
	for {
		top := q.free.Load()
		n.next.Store(pack(unpackIdx(top), unpackVer(n.next.Load())+1))
		if q.free.CompareAndSwap(top, pack(idx, unpackVer(top)+1)) {
			return
		}
		b.backoff()
	}
}
