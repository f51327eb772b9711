package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/types"
)

const fixOrder = "8=FIX.4.2\x019=68\x0135=D\x0134=17\x0155=AAPL\x0154=1\x0144=150.25\x0138=100\x0110=042\x01"

func TestFIXParsesOrder(t *testing.T) {
	d := NewFIX(3)
	var ev types.MarketEvent

	n := d.Parse([]byte(fixOrder), &ev)
	require.Equal(t, len(fixOrder), n, "whole message must be consumed")

	assert.Equal(t, types.EventTrade, ev.EventType)
	assert.Equal(t, types.MakeSymbol("AAPL"), ev.Symbol)
	assert.Equal(t, types.SideBid, ev.Side)
	assert.Equal(t, uint64(17), ev.SequenceNumber)
	assert.Equal(t, int64(150_25000000), ev.Price)
	assert.Equal(t, int64(100*types.PriceScale), ev.Quantity)
	assert.Equal(t, uint32(3), ev.VenueID)
	assert.NotZero(t, ev.ReceiveTimestamp, "ingress must stamp the cycle clock")
}

func TestFIXIncompleteReturnsZero(t *testing.T) {
	d := NewFIX(1)
	var ev types.MarketEvent

	assert.Zero(t, d.Parse(nil, &ev))
	assert.Zero(t, d.Parse([]byte("8=FIX.4.2\x01"), &ev), "no trailer yet")
	// trailer tag present but its SOH has not arrived
	assert.Zero(t, d.Parse([]byte("8=FIX.4.2\x0135=D\x0110=04"), &ev))
}

func TestFIXConsumesOneMessageOfMany(t *testing.T) {
	d := NewFIX(1)
	var ev types.MarketEvent
	buf := []byte(fixOrder + fixOrder)

	n := d.Parse(buf, &ev)
	require.Equal(t, len(fixOrder), n)

	m := d.Parse(buf[n:], &ev)
	assert.Equal(t, len(fixOrder), m, "second message must parse from the remainder")
}

func TestFIXMessageTypes(t *testing.T) {
	d := NewFIX(1)
	var ev types.MarketEvent
	cases := map[byte]types.EventType{
		'D': types.EventTrade,
		'W': types.EventBookUpdate,
		'0': types.EventHeartbeat,
		'Q': types.EventUnknown,
	}
	for msgType, want := range cases {
		msg := "8=FIX.4.2\x0135=" + string(msgType) + "\x0134=1\x0110=000\x01"
		require.NotZero(t, d.Parse([]byte(msg), &ev))
		assert.Equal(t, want, ev.EventType, "msgtype %c", msgType)
	}
}

func TestFIXSkipsMalformedFields(t *testing.T) {
	d := NewFIX(1)
	var ev types.MarketEvent
	// a tagless garbage field sits between valid ones
	msg := "8=FIX.4.2\x01garbage\x0135=D\x0134=9\x0110=000\x01"
	require.NotZero(t, d.Parse([]byte(msg), &ev))
	assert.Equal(t, uint64(9), ev.SequenceNumber)
	assert.Equal(t, types.EventTrade, ev.EventType)
}

func TestFixedPointParsing(t *testing.T) {
	cases := map[string]int64{
		"150.25":     150_25000000,
		"150":        150_00000000,
		"0.00000001": 1,
		"-2.5":       -2_50000000,
		"0.123456789": 12345678, // digits past 1e-8 truncate
	}
	for in, want := range cases {
		assert.Equal(t, want, parseFixed([]byte(in)), "input %q", in)
	}
}

func TestBinaryParsesBody(t *testing.T) {
	d := NewBinary(9)
	src := types.MarketEvent{
		ExchangeTimestamp: 1_700_000_000_000_000_000,
		Symbol:            types.MakeSymbol("NVDA"),
		SequenceNumber:    77,
		Price:             880 * types.PriceScale,
		Quantity:          25 * types.PriceScale,
		OrderID:           11,
		TradeID:           12,
		EventType:         types.EventTrade,
		Side:              types.SideAsk,
	}
	wire := encodeBinary(&src)

	var ev types.MarketEvent
	n := d.Parse(wire, &ev)
	require.Equal(t, len(wire), n)

	assert.Equal(t, src.ExchangeTimestamp, ev.ExchangeTimestamp)
	assert.Equal(t, src.Symbol, ev.Symbol)
	assert.Equal(t, src.SequenceNumber, ev.SequenceNumber)
	assert.Equal(t, src.Price, ev.Price)
	assert.Equal(t, src.Quantity, ev.Quantity)
	assert.Equal(t, src.OrderID, ev.OrderID)
	assert.Equal(t, src.TradeID, ev.TradeID)
	assert.Equal(t, types.EventTrade, ev.EventType)
	assert.Equal(t, types.SideAsk, ev.Side)
	assert.Equal(t, uint32(9), ev.VenueID)
}

func TestBinaryFraming(t *testing.T) {
	d := NewBinary(1)
	var ev types.MarketEvent

	assert.Zero(t, d.Parse([]byte{0x34}, &ev), "header fragment")
	// declared length longer than what arrived
	assert.Zero(t, d.Parse([]byte{0x40, 0x00, 0x01, 0x00, 0xAA}, &ev))

	// short control message: header only, consumed by declared length
	short := []byte{0x04, 0x00, byte(types.EventHeartbeat), 0x00}
	n := d.Parse(short, &ev)
	assert.Equal(t, 4, n)
	assert.Equal(t, types.EventHeartbeat, ev.EventType)
	assert.Zero(t, ev.SequenceNumber, "missing body stays zeroed")
}

func TestDecoderNames(t *testing.T) {
	assert.Equal(t, "FIX", NewFIX(1).Name())
	assert.Equal(t, "Binary", NewBinary(1).Name())

	// both satisfy the Decoder capability
	var _ Decoder = NewFIX(1)
	var _ Decoder = NewBinary(1)
}

// encodeBinary renders the fixed-width wire form used by the tests.
func encodeBinary(ev *types.MarketEvent) []byte {
	buf := make([]byte, binBodySize)
	buf[0] = byte(binBodySize)
	buf[1] = 0
	buf[2] = byte(ev.EventType)
	buf[3] = byte(ev.Side)
	putU64 := func(off int, v uint64) {
		for i := 0; i < 8; i++ {
			buf[off+i] = byte(v >> (8 * i))
		}
	}
	putU64(4, ev.ExchangeTimestamp)
	copy(buf[12:20], ev.Symbol[:])
	putU64(20, ev.SequenceNumber)
	putU64(28, uint64(ev.Price))
	putU64(36, uint64(ev.Quantity))
	buf[44] = byte(ev.OrderID)
	buf[45] = byte(ev.OrderID >> 8)
	buf[46] = byte(ev.OrderID >> 16)
	buf[47] = byte(ev.OrderID >> 24)
	buf[48] = byte(ev.TradeID)
	buf[49] = byte(ev.TradeID >> 8)
	buf[50] = byte(ev.TradeID >> 16)
	buf[51] = byte(ev.TradeID >> 24)
	return buf
}
