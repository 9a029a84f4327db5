// Package xds decodes Extended Data Services packets multiplexed on
// CEA-608 field 1: packet framing, checksum validation, and per-class/
// type decoders (program ID, name, genre, content advisory ratings,
// audio services, CGMS copy control, aspect ratio, program description,
// channel info, time of day, local time zone, weather).
//
// Grounded on decode_xds_packets/describe_xds_packet and their helpers in
// the reference decoder this package imitates (see DESIGN.md).
package xds

import (
	"fmt"

	"github.com/ausocean/line21/rowclassify"
)

// ErrShortPacket is the error the packet decoders produce, carrying the
// offending class/type, when a gathered packet is too short for its
// class/type to decode (the reference decoder's _assert_len
// RuntimeWarning). Feed discards such a packet and reports ok=false; it
// neither returns nor logs this error.
type ErrShortPacket struct {
	Class, Type int
	Got, Want   int
}

func (e *ErrShortPacket) Error() string {
	return fmt.Sprintf("xds: class %#x type %#x packet too short: got %d pairs, want at least %d", e.Class, e.Type, e.Got, e.Want)
}

// Decoder gathers XDS byte pairs into packets and describes each
// completed, checksum-valid packet.
type Decoder struct {
	gathering bool
	buf       [][2]uint8
}

// Feed processes one field-1 byte pair. It returns a human-readable
// description and ok=true whenever a complete, checksum-valid packet was
// just closed out by this byte pair.
func (d *Decoder) Feed(r rowclassify.ClassifiedRow) (string, bool) {
	b1, b2 := r.Byte1, r.Byte2

	switch {
	case b1 == 0 && b2 == 0:
		// Stuffing; ignored without disturbing gather state.
		return "", false
	case b1 >= 0x01 && b1 <= 0x0E:
		d.gathering = true
		d.buf = [][2]uint8{{b1, b2}}
		return "", false
	case b1 == 0x0F:
		if !d.gathering {
			return "", false
		}
		d.gathering = false
		pkt := d.buf
		d.buf = nil
		if !checksumValid(pkt, b2) {
			return "", false
		}
		desc, err := describe(pkt)
		if err != nil {
			return "", false
		}
		return desc, true
	default:
		if d.gathering {
			d.buf = append(d.buf, [2]uint8{b1, b2})
		}
		return "", false
	}
}

// checksumValid reports whether the two's-complement sum of all data
// bytes in the packet plus the checksum byte carried as byte2 of the
// terminating (0x0F, checksum) pair is zero mod 128, matching
// compute_xds_packet_checksum.
func checksumValid(pkt [][2]uint8, checksum uint8) bool {
	sum := int(checksum)
	for _, pair := range pkt {
		sum += int(pair[0]) + int(pair[1])
	}
	return sum&0x7F == 0
}
