// binary.go
//
// Fixed-width binary feed decoder. Wire layout, little-endian:
//
//	off  0  length     uint16  (whole message, header included)
//	off  2  type       uint8   (types.EventType value)
//	off  3  side       uint8   (types.Side value)
//	off  4  exch_ts    uint64
//	off 12  symbol     [8]byte
//	off 20  seq        uint64
//	off 28  price      int64   (1e8 fixed point)
//	off 36  quantity   int64   (1e8 fixed point)
//	off 44  order_id   uint32
//	off 48  trade_id   uint32
//
// A message whose declared length is below the full 52-byte layout yields
// the header fields only: every body field stays zero, even those whose
// bytes did arrive. The declared length still governs how many bytes are
// consumed, so unknown trailing extensions skip cleanly.

package parser

import (
	"encoding/binary"

	"main/clock"
	"main/types"
)

const (
	binHeaderSize = 4
	binBodySize   = 52
)

// BinaryDecoder scans the fixed-width binary feed format.
type BinaryDecoder struct {
	venueID uint32
}

// NewBinary builds a binary decoder stamping events with venueID.
func NewBinary(venueID uint32) *BinaryDecoder {
	return &BinaryDecoder{venueID: venueID}
}

// Name implements Decoder.
func (d *BinaryDecoder) Name() string { return "Binary" }

// Parse implements Decoder.
func (d *BinaryDecoder) Parse(buf []byte, ev *types.MarketEvent) int {
	if len(buf) < binHeaderSize {
		return 0
	}
	msgLen := int(binary.LittleEndian.Uint16(buf))
	if msgLen < binHeaderSize || len(buf) < msgLen {
		return 0
	}

	*ev = types.MarketEvent{}
	ev.VenueID = d.venueID
	ev.ReceiveTimestamp = clock.NowCycles()
	ev.EventType = types.EventType(buf[2])
	ev.Side = types.Side(buf[3])

	if msgLen >= binBodySize {
		ev.ExchangeTimestamp = binary.LittleEndian.Uint64(buf[4:])
		copy(ev.Symbol[:], buf[12:20])
		ev.SequenceNumber = binary.LittleEndian.Uint64(buf[20:])
		ev.Price = int64(binary.LittleEndian.Uint64(buf[28:]))
		ev.Quantity = int64(binary.LittleEndian.Uint64(buf[36:]))
		ev.OrderID = binary.LittleEndian.Uint32(buf[44:])
		ev.TradeID = binary.LittleEndian.Uint32(buf[48:])
	}
	return msgLen
}
