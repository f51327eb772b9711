package types

import (
	"testing"
	"unsafe"
)

// TestEventLayout pins the byte-exact wire layout. Any drift here breaks
// the copy semantics every queue relies on.
func TestEventLayout(t *testing.T) {
	var ev MarketEvent
	if got := unsafe.Sizeof(ev); got != 64 {
		t.Fatalf("MarketEvent size = %d, want 64", got)
	}

	offsets := []struct {
		name string
		got  uintptr
		want uintptr
	}{
		{"ExchangeTimestamp", unsafe.Offsetof(ev.ExchangeTimestamp), 0},
		{"ReceiveTimestamp", unsafe.Offsetof(ev.ReceiveTimestamp), 8},
		{"Symbol", unsafe.Offsetof(ev.Symbol), 16},
		{"SequenceNumber", unsafe.Offsetof(ev.SequenceNumber), 24},
		{"Price", unsafe.Offsetof(ev.Price), 32},
		{"Quantity", unsafe.Offsetof(ev.Quantity), 40},
		{"VenueID", unsafe.Offsetof(ev.VenueID), 48},
		{"OrderID", unsafe.Offsetof(ev.OrderID), 52},
		{"TradeID", unsafe.Offsetof(ev.TradeID), 56},
		{"EventType", unsafe.Offsetof(ev.EventType), 60},
		{"Side", unsafe.Offsetof(ev.Side), 61},
		{"BookLevel", unsafe.Offsetof(ev.BookLevel), 62},
		{"Flags", unsafe.Offsetof(ev.Flags), 63},
	}
	for _, o := range offsets {
		if o.got != o.want {
			t.Errorf("offset of %s = %d, want %d", o.name, o.got, o.want)
		}
	}
}

// TestEventValueCopy confirms assignment reproduces every field bit-exactly.
func TestEventValueCopy(t *testing.T) {
	src := MarketEvent{
		ExchangeTimestamp: 0x1111111111111111,
		ReceiveTimestamp:  0x2222222222222222,
		Symbol:            MakeSymbol("NVDA"),
		SequenceNumber:    42,
		Price:             15000000000,
		Quantity:          100 * PriceScale,
		VenueID:           7,
		OrderID:           8,
		TradeID:           9,
		EventType:         EventTrade,
		Side:              SideAsk,
		BookLevel:         3,
		Flags:             0xAB,
	}
	dst := src
	if dst != src {
		t.Fatal("value copy is not bitwise identical")
	}
}

func TestSymbolWordEquality(t *testing.T) {
	a := MakeSymbol("AAPL")
	b := MakeSymbol("AAPL")
	c := MakeSymbol("AAPL.X") // differs past the common prefix

	if !a.Equal(&b) {
		t.Fatal("identical symbols must compare equal")
	}
	if a.Equal(&c) {
		t.Fatal("distinct symbols must not compare equal")
	}
	if a.Hash() != a.Word() {
		t.Fatal("hash must be the identity word")
	}
	if a.Hash() == c.Hash() {
		t.Fatal("distinct symbols must hash differently here")
	}
}

func TestSymbolString(t *testing.T) {
	if got := MakeSymbol("MSFT").String(); got != "MSFT" {
		t.Fatalf("String() = %q, want MSFT", got)
	}
	if got := MakeSymbol("ABCDEFGHIJ").String(); got != "ABCDEFGH" {
		t.Fatalf("String() = %q, want 8-byte truncation", got)
	}
	var empty Symbol
	if got := empty.String(); got != "" {
		t.Fatalf("String() of zero symbol = %q, want empty", got)
	}
}

func TestEnumTags(t *testing.T) {
	if EventGapDetected.String() != "GAP_DETECTED" {
		t.Fatalf("unexpected tag %q", EventGapDetected.String())
	}
	if EventType(250).String() != "UNKNOWN" {
		t.Fatal("out-of-range event type must print UNKNOWN")
	}
	if SideBoth.String() != "BOTH" || Side(99).String() != "UNKNOWN" {
		t.Fatal("side tags wrong")
	}
}
