// Package bitslicer extracts the two CEA-608 data bytes from a located
// preamble match: it samples one value per bit cell, checks the 3 start
// bits, assembles each byte's 7 data bits plus parity bit, and applies
// the single-bit parity-correction rule when exactly one bit in a byte
// looks suspect.
//
// Grounded on get_bit/decode_bytes in the reference decoder this package
// imitates (see DESIGN.md).
package bitslicer

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"

	"github.com/ausocean/line21/linesync"
)

// ErrBadStartBits describes three bits preceding the data bytes that are
// not 0, 0, 1. Slice reports that case as ok=false and does not return
// this error.
var ErrBadStartBits = errors.New("bitslicer: start bits are not 0,0,1")

// suspectStddev is the per-cell standard deviation above which a bit is
// considered unreliable enough to be a parity-correction candidate.
const suspectStddev = 0.3

// Bytes is the pair of CEA-608 data bytes sliced from one preamble match,
// with per-byte parity status.
type Bytes struct {
	Byte1, Byte2                 uint8
	Byte1ParityOK, Byte2ParityOK bool
}

// cellSample is one sampled bit cell: its boolean value and the standard
// deviation of the trimmed pixel window it was sampled from.
type cellSample struct {
	bit    bool
	stddev float64
}

// sampleCell reads the bit at the given bit-cell index after the
// preamble, trimming bitPadding = ceil(0.1*bitWidth) pixels from each
// edge of the cell before averaging, matching get_bit.
func sampleCell(line []float64, cellStart, bitWidth float64, median float64) cellSample {
	pad := math.Ceil(0.1 * bitWidth)
	lo := int(math.Round(cellStart + pad))
	hi := int(math.Round(cellStart + bitWidth - pad))
	if hi <= lo {
		hi = lo + 1
	}
	if lo < 0 {
		lo = 0
	}
	if hi > len(line) {
		hi = len(line)
	}
	if hi <= lo {
		return cellSample{}
	}
	window := line[lo:hi]
	mean := stat.Mean(window, nil)
	var variance float64
	if len(window) > 1 {
		variance = stat.Variance(window, nil)
	}
	return cellSample{bit: mean > median, stddev: math.Sqrt(variance)}
}

// Slice samples the 3 start bits and the two following 7-bit-plus-parity
// data bytes from a located preamble match, correcting a single suspect
// bit per byte when parity fails and exactly one data bit in that byte
// looks unreliable.
func Slice(m linesync.PreambleMatch) (Bytes, bool) {
	line := m.NormalizedLine
	median := preambleSpanMean(line, m.PreambleStart, m.PreambleEnd)

	cellAt := func(index int) cellSample {
		start := m.PreambleEnd + float64(index)*m.BitWidth
		return sampleCell(line, start, m.BitWidth, median)
	}

	start0, start1, start2 := cellAt(0), cellAt(1), cellAt(2)
	if start0.bit || start1.bit || !start2.bit {
		return Bytes{}, false
	}

	b1, ok1 := sliceByte(cellAt, 3)
	b2, ok2 := sliceByte(cellAt, 3+8)
	return Bytes{Byte1: b1.value, Byte1ParityOK: ok1, Byte2: b2.value, Byte2ParityOK: ok2}, true
}

// preambleSpanMean computes the arithmetic mean of line over the preamble
// span [preambleStart, preambleEnd), matching the original's
// normalized_median = mean(normalized_line[preamble_start:preamble_end]).
func preambleSpanMean(line []float64, preambleStart, preambleEnd float64) float64 {
	lo := int(math.Round(preambleStart))
	hi := int(math.Round(preambleEnd))
	if lo < 0 {
		lo = 0
	}
	if hi > len(line) {
		hi = len(line)
	}
	if hi <= lo {
		return 0
	}
	return stat.Mean(line[lo:hi], nil)
}

type byteResult struct {
	value uint8
}

// sliceByte reads 7 data bits (transmitted LSB first: cell i carries bit
// i of the byte) plus a parity bit starting at cell offset
// cellOffset, applying the single-suspect-bit correction rule from
// decode_bytes: if parity fails, exactly one data bit is suspect
// (stddev > 0.3), and the parity bit itself is not suspect, flip the
// suspect bit.
func sliceByte(cellAt func(int) cellSample, cellOffset int) (byteResult, bool) {
	var bits [7]bool
	var stddevs [7]float64
	for i := 0; i < 7; i++ {
		c := cellAt(cellOffset + i)
		bits[i] = c.bit
		stddevs[i] = c.stddev
	}
	parityCell := cellAt(cellOffset + 7)

	assemble := func(bits [7]bool) uint8 {
		var v uint8
		for i, b := range bits {
			if b {
				v |= 1 << uint(i)
			}
		}
		return v
	}

	v := assemble(bits)
	parityOK := charsetParityMatches(v, parityCell.bit)
	if parityOK {
		return byteResult{value: v}, true
	}

	suspectIdx := -1
	suspectCount := 0
	for i, sd := range stddevs {
		if sd > suspectStddev {
			suspectCount++
			suspectIdx = i
		}
	}
	if suspectCount == 1 && parityCell.stddev <= suspectStddev {
		bits[suspectIdx] = !bits[suspectIdx]
		v = assemble(bits)
		if charsetParityMatches(v, parityCell.bit) {
			return byteResult{value: v}, true
		}
	}
	return byteResult{value: v}, false
}

// charsetParityMatches reports whether the parity bit read off the line
// is consistent with odd parity over the 7 data bits in v.
func charsetParityMatches(v uint8, parityBit bool) bool {
	ones := 0
	for x := v; x != 0; x &= x - 1 {
		ones++
	}
	wantParityBit := ones%2 == 0 // need one more 1 to make the full byte odd parity
	return parityBit == wantParityBit
}
