// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: parser.go — Feed decoders (zero-alloc byte scanners)
//
// Purpose:
//   - Turns raw feed bytes into 64-byte market events at ingress.
//   - Each decoder stamps ReceiveTimestamp with the cycle clock the moment
//     a complete message is recognised.
//
// Notes:
//   - Decoders report consumed bytes; 0 means the buffer holds no complete
//     message yet and the caller should read more.
//   - Field scanning walks the buffer directly — no substrings, no maps,
//     no allocation per message.
// ─────────────────────────────────────────────────────────────────────────────

package parser

import (
	"main/clock"
	"main/types"
)

// Decoder is the single capability a feed handler needs from a protocol:
// recognise one message and fill a record. Implementations must not retain
// buf past the call.
type Decoder interface {
	// Parse scans buf for one complete message. On success it fills *ev
	// and returns the bytes consumed; 0 means incomplete.
	Parse(buf []byte, ev *types.MarketEvent) int

	// Name identifies the protocol for diagnostics.
	Name() string
}

// soh is the FIX field separator.
const soh = 0x01

// FIXDecoder scans SOH-delimited tag=value FIX messages. Only the tags the
// pipeline consumes are extracted (35, 55, 44, 38, 34, 54); everything
// else is skipped at byte speed.
type FIXDecoder struct {
	venueID uint32
}

// NewFIX builds a FIX decoder stamping events with venueID.
func NewFIX(venueID uint32) *FIXDecoder {
	return &FIXDecoder{venueID: venueID}
}

// Name implements Decoder.
func (d *FIXDecoder) Name() string { return "FIX" }

// Parse implements Decoder. A message is complete once the checksum field
// (tag 10) is terminated by SOH.
func (d *FIXDecoder) Parse(buf []byte, ev *types.MarketEvent) int {
	if len(buf) < 20 {
		return 0
	}
	end := fixMessageEnd(buf)
	if end == 0 {
		return 0
	}

	*ev = types.MarketEvent{}
	ev.VenueID = d.venueID
	ev.ReceiveTimestamp = clock.NowCycles()

	// walk tag=value fields up to the message end
	i := 0
	for i < end {
		// tag
		tag := 0
		for i < end && buf[i] >= '0' && buf[i] <= '9' {
			tag = tag*10 + int(buf[i]-'0')
			i++
		}
		if i >= end || buf[i] != '=' {
			// malformed field: resynchronise at the next SOH
			for i < end && buf[i] != soh {
				i++
			}
			i++
			continue
		}
		i++
		valStart := i
		for i < end && buf[i] != soh {
			i++
		}
		val := buf[valStart:i]
		i++ // past SOH

		switch tag {
		case 35:
			if len(val) > 0 {
				switch val[0] {
				case 'D':
					ev.EventType = types.EventTrade
				case 'W':
					ev.EventType = types.EventBookUpdate
				case '0':
					ev.EventType = types.EventHeartbeat
				default:
					ev.EventType = types.EventUnknown
				}
			}
		case 55:
			ev.Symbol = types.Symbol{}
			copy(ev.Symbol[:], val)
		case 44:
			ev.Price = parseFixed(val)
		case 38:
			ev.Quantity = parseFixed(val)
		case 34:
			ev.SequenceNumber = uint64(parseInt(val))
		case 54:
			switch {
			case len(val) > 0 && val[0] == '1':
				ev.Side = types.SideBid
			case len(val) > 0 && val[0] == '2':
				ev.Side = types.SideAsk
			}
		}
	}
	return end
}

// fixMessageEnd returns the index one past the SOH terminating tag 10, or
// 0 when the trailer has not arrived yet.
func fixMessageEnd(buf []byte) int {
	for i := 0; i+3 < len(buf); i++ {
		// "10=" at start of a field
		if buf[i] == '1' && buf[i+1] == '0' && buf[i+2] == '=' &&
			(i == 0 || buf[i-1] == soh) {
			for j := i + 3; j < len(buf); j++ {
				if buf[j] == soh {
					return j + 1
				}
			}
			return 0
		}
	}
	return 0
}

// parseInt reads a signed decimal integer, stopping at the first
// non-digit.
func parseInt(b []byte) int64 {
	var v int64
	neg := false
	i := 0
	if len(b) > 0 && b[0] == '-' {
		neg = true
		i = 1
	}
	for ; i < len(b) && b[i] >= '0' && b[i] <= '9'; i++ {
		v = v*10 + int64(b[i]-'0')
	}
	if neg {
		return -v
	}
	return v
}

// parseFixed reads a decimal number into 1e8-scaled fixed point. Up to 8
// fractional digits are honoured; further digits are truncated.
func parseFixed(b []byte) int64 {
	neg := false
	i := 0
	if len(b) > 0 && b[0] == '-' {
		neg = true
		i = 1
	}
	var whole int64
	for ; i < len(b) && b[i] >= '0' && b[i] <= '9'; i++ {
		whole = whole*10 + int64(b[i]-'0')
	}
	var frac int64
	digits := 0
	if i < len(b) && b[i] == '.' {
		for i++; i < len(b) && b[i] >= '0' && b[i] <= '9' && digits < 8; i++ {
			frac = frac*10 + int64(b[i]-'0')
			digits++
		}
	}
	for ; digits < 8; digits++ {
		frac *= 10
	}
	v := whole*types.PriceScale + frac
	if neg {
		return -v
	}
	return v
}
