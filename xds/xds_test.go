package xds

import (
	"testing"

	"github.com/ausocean/line21/rowclassify"
)

func pair(b1, b2 uint8) rowclassify.ClassifiedRow {
	return rowclassify.ClassifiedRow{DecodedRow: rowclassify.DecodedRow{Byte1: b1, Byte2: b2}}
}

// checksumByte returns a trailing byte that makes the two's-complement
// sum of all the given bytes (including this one) zero mod 128.
func checksumByte(bytes []uint8) uint8 {
	sum := 0
	for _, b := range bytes {
		sum += int(b)
	}
	return uint8((-sum) & 0x7F)
}

func TestFeedRejectsBadChecksum(t *testing.T) {
	var d Decoder
	d.Feed(pair(0x01, 0x03)) // program name, class1 type3
	d.Feed(pair('H', 'i'))
	_, ok := d.Feed(pair(0x0F, 0xFF)) // deliberately wrong checksum byte
	if ok {
		t.Fatal("Feed should reject a packet with an invalid checksum")
	}
}

func TestFeedAcceptsValidChecksum(t *testing.T) {
	var d Decoder
	bytes := []uint8{0x01, 0x03, 'H', 'i'}
	last := checksumByte(bytes)
	d.Feed(pair(0x01, 0x03))
	d.Feed(pair('H', 'i'))
	desc, ok := d.Feed(pair(0x0F, last))
	if !ok {
		t.Fatal("Feed should accept a packet with a valid checksum")
	}
	if desc == "" {
		t.Error("expected a non-empty description")
	}
}

func TestFeedIgnoresStuffingWithoutDisturbingGather(t *testing.T) {
	var d Decoder
	d.Feed(pair(0x01, 0x03))
	d.Feed(pair(0, 0)) // stuffing
	bytes := []uint8{0x01, 0x03, 'H', 'i'}
	last := checksumByte(bytes)
	d.Feed(pair('H', 'i'))
	_, ok := d.Feed(pair(0x0F, last))
	if !ok {
		t.Fatal("stuffing pairs should be skipped, not counted into the checksum or break gathering")
	}
}

func TestDecodeContentAdvisoryUSTV(t *testing.T) {
	b1 := uint8(1<<3) | 0x04 // system=1 (US TV), rating=TV-PG
	got := decodeContentAdvisory(b1, 0)
	want := "US TV Rating: TV-PG (violence=false sex=false language=false dialog=false)"
	if got != want {
		t.Errorf("decodeContentAdvisory = %q, want %q", got, want)
	}
}
