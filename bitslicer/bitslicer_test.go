package bitslicer

import (
	"testing"

	"github.com/ausocean/line21/linesync"
)

const testBitWidth = 10.0
const testPreambleEnd = 50.0

// cellRange returns the [lo, hi) pixel window sampleCell would average for
// bit cell index, mirroring the padding sampleCell applies.
func cellRange(index int) (int, int) {
	start := testPreambleEnd + float64(index)*testBitWidth
	lo := int(start) + 1
	hi := int(start) + 9
	return lo, hi
}

// buildLine renders a synthetic normalized scanline where cell indices in
// ones are filled with +1.0 and every other cell is -1.0, with an
// additional alternating-sign noisy window written at noisyIndex (if >= 0)
// to simulate a high-variance suspect bit.
func buildLine(ones []int, noisyIndex int) []float64 {
	line := make([]float64, int(testPreambleEnd)+20*int(testBitWidth)+10)
	for i := range line {
		line[i] = -1.0
	}
	isOne := make(map[int]bool)
	for _, idx := range ones {
		isOne[idx] = true
	}
	for idx := 0; idx < 20; idx++ {
		lo, hi := cellRange(idx)
		v := -1.0
		if isOne[idx] {
			v = 1.0
		}
		for p := lo; p < hi && p < len(line); p++ {
			line[p] = v
		}
	}
	if noisyIndex >= 0 {
		lo, hi := cellRange(noisyIndex)
		sign := 1.0
		for p := lo; p < hi && p < len(line); p++ {
			line[p] = sign
			sign = -sign
		}
	}
	return line
}

func match(line []float64) linesync.PreambleMatch {
	return linesync.PreambleMatch{
		PreambleEnd:    testPreambleEnd,
		BitWidth:       testBitWidth,
		NormalizedLine: line,
	}
}

// Start bits are always cells 0,1,2 = 0,0,1. Byte1 is cells 3-9 (data)
// plus cell 10 (parity). Byte2 is cells 11-17 (data) plus cell 18 (parity).

func TestSliceDecodesCleanBytePair(t *testing.T) {
	// byte1 = 0b0000001 (v=1, one data bit set -> odd ones, parity bit 0)
	// byte2 = 0b0000000 (v=0, zero ones -> even, parity bit 1)
	ones := []int{2, 3, 18}
	line := buildLine(ones, -1)

	b, ok := Slice(match(line))
	if !ok {
		t.Fatalf("Slice rejected a clean, well-formed byte pair")
	}
	if b.Byte1 != 1 || !b.Byte1ParityOK {
		t.Errorf("Byte1 = %#x (parityOK=%v), want 0x01 (parityOK=true)", b.Byte1, b.Byte1ParityOK)
	}
	if b.Byte2 != 0 || !b.Byte2ParityOK {
		t.Errorf("Byte2 = %#x (parityOK=%v), want 0x00 (parityOK=true)", b.Byte2, b.Byte2ParityOK)
	}
}

func TestSliceRejectsBadStartBits(t *testing.T) {
	// Flip start bit 2 (should be 1) to 0: cells 0,1,2 all low.
	ones := []int{3, 18}
	line := buildLine(ones, -1)

	_, ok := Slice(match(line))
	if ok {
		t.Errorf("Slice accepted a byte pair with malformed start bits")
	}
}

func TestSliceCorrectsSingleSuspectBit(t *testing.T) {
	// byte1 as before. byte2 is intended all-zero (parity bit 1), but data
	// bit 0 (absolute cell 11) is corrupted into a noisy, high-variance
	// cell that would otherwise decode as 1 and fail parity.
	ones := []int{2, 3, 18}
	line := buildLine(ones, 11)

	b, ok := Slice(match(line))
	if !ok {
		t.Fatalf("Slice failed to correct a single suspect bit")
	}
	if b.Byte2 != 0 || !b.Byte2ParityOK {
		t.Errorf("Byte2 = %#x (parityOK=%v), want corrected 0x00 (parityOK=true)", b.Byte2, b.Byte2ParityOK)
	}
}
