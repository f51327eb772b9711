// ============================================================================
// MARKET EVENT - FIXED 64-BYTE WIRE RECORD
// ============================================================================

// Package types defines the market event record shared by every stage of the
// ingestion pipeline. The record is exactly one cache line, trivially
// copyable, and crosses queue boundaries by value — no pointer escapes the
// producing thread.
package types

import "unsafe"

// PriceScale is the implied fixed-point scale of Price and Quantity:
// 1.0 is stored as 100_000_000.
const PriceScale = 100_000_000

// EventType tags the semantic kind of a market event.
type EventType uint8

const (
	EventUnknown EventType = iota
	EventTrade
	EventQuote
	EventBookUpdate
	EventHeartbeat
	EventGapDetected
	EventConnectionStatus
)

// String returns the printable tag for cold-path diagnostics.
func (t EventType) String() string {
	switch t {
	case EventTrade:
		return "TRADE"
	case EventQuote:
		return "QUOTE"
	case EventBookUpdate:
		return "BOOK_UPDATE"
	case EventHeartbeat:
		return "HEARTBEAT"
	case EventGapDetected:
		return "GAP_DETECTED"
	case EventConnectionStatus:
		return "CONNECTION_STATUS"
	}
	return "UNKNOWN"
}

// Side tags the book side an event refers to.
type Side uint8

const (
	SideUnknown Side = iota
	SideBid
	SideAsk
	SideBoth
)

// String returns the printable tag for cold-path diagnostics.
func (s Side) String() string {
	switch s {
	case SideBid:
		return "BID"
	case SideAsk:
		return "ASK"
	case SideBoth:
		return "BOTH"
	}
	return "UNKNOWN"
}

// Symbol is an 8-byte fixed instrument tag. Equality and hashing treat the
// bytes as one unsigned 64-bit word, so two symbols match iff all 8 bytes
// match — no string allocation on any comparison path.
type Symbol [8]byte

// MakeSymbol builds a Symbol from the first 8 bytes of s; shorter inputs are
// NUL-padded.
func MakeSymbol(s string) Symbol {
	var sym Symbol
	copy(sym[:], s)
	return sym
}

// Word returns the symbol bytes reinterpreted as a single machine word.
//
//go:nosplit
func (s *Symbol) Word() uint64 {
	return *(*uint64)(unsafe.Pointer(&s[0]))
}

// Equal reports whether two symbols carry identical bytes.
//
//go:nosplit
func (s *Symbol) Equal(o *Symbol) bool {
	return s.Word() == o.Word()
}

// Hash is the symbol's identity hash — the same word used for equality.
//
//go:nosplit
func (s *Symbol) Hash() uint64 {
	return s.Word()
}

// String trims trailing NUL padding for printing.
func (s Symbol) String() string {
	n := len(s)
	for n > 0 && s[n-1] == 0 {
		n--
	}
	return string(s[:n])
}

// MarketEvent is the fixed 64-byte record moved from feed handlers to
// processing consumers. Field order is the byte-exact wire layout:
//
//	off  0  ExchangeTimestamp (8)
//	off  8  ReceiveTimestamp  (8)
//	off 16  Symbol            (8)
//	off 24  SequenceNumber    (8)
//	off 32  Price             (8)
//	off 40  Quantity          (8)
//	off 48  VenueID           (4)
//	off 52  OrderID           (4)
//	off 56  TradeID           (4)
//	off 60  EventType         (1)
//	off 61  Side              (1)
//	off 62  BookLevel         (1)
//	off 63  Flags             (1)
//
// The layout is load-bearing: queues copy the record as a plain 64-byte
// block and slab slots are sized against it.
type MarketEvent struct {
	ExchangeTimestamp uint64 // source-reported nanoseconds since epoch
	ReceiveTimestamp  uint64 // opaque cycle count stamped at ingress
	Symbol            Symbol
	SequenceNumber    uint64
	Price             int64 // fixed-point, PriceScale implied decimals
	Quantity          int64 // fixed-point, PriceScale implied decimals
	VenueID           uint32
	OrderID           uint32
	TradeID           uint32
	EventType         EventType
	Side              Side
	BookLevel         uint8
	Flags             uint8
}

// Compile-time layout guards: the record is exactly 64 bytes, so any field
// addition or reorder that changes the wire shape fails the build.
var (
	_ [unsafe.Sizeof(MarketEvent{}) - 64]byte
	_ [64 - unsafe.Sizeof(MarketEvent{})]byte
)

// ConnectionStatus reports venue link transitions on the cold control path.
type ConnectionStatus struct {
	VenueID      uint32
	Connected    bool
	Timestamp    uint64
	LastSequence uint64
}
