package linesync

import (
	"math"
	"testing"
)

func TestBuildTemplatesDiscardsOversizedCandidates(t *testing.T) {
	tpls := BuildTemplates(720)
	if len(tpls.templates) == 0 {
		t.Fatal("expected at least one template for a 720px line")
	}
	for _, tpl := range tpls.templates {
		maxWidth := totalBits * tpl.bitWidth
		if maxWidth >= float64(720) {
			t.Errorf("template with bitWidth %v has maxWidth %v >= line width", tpl.bitWidth, maxWidth)
		}
	}
}

func TestSyncRejectsWrongLength(t *testing.T) {
	tpls := BuildTemplates(720)
	_, ok := tpls.Sync(make([]uint8, 100))
	if ok {
		t.Fatal("Sync should reject a line whose length does not match the template bank's width")
	}
}

// synthesize builds a scanline containing a clock run-in of the given bit
// width starting at startOffset, followed by flat data, for Sync to lock
// onto.
func synthesize(width int, startOffset int, bitWidth float64) []uint8 {
	line := make([]uint8, width)
	for i := range line {
		line[i] = 128
	}
	runLen := int(math.Round(runInCycles * bitWidth))
	for k := 0; k < runLen && startOffset+k < width; k++ {
		v := math.Sin(2*math.Pi*float64(k)/bitWidth)*110 + 128
		line[startOffset+k] = uint8(v)
	}
	return line
}

func TestSyncLocatesPreamble(t *testing.T) {
	const width = 720
	tpls := BuildTemplates(width)
	if len(tpls.templates) == 0 {
		t.Fatal("no templates built")
	}
	wantBitWidth := tpls.templates[len(tpls.templates)/2].bitWidth
	const wantStart = 20
	line := synthesize(width, wantStart, wantBitWidth)

	m, ok := tpls.Sync(line)
	if !ok {
		t.Fatal("Sync failed to find a match on a synthesized preamble")
	}
	if math.Abs(m.PreambleStart-wantStart) > wantBitWidth {
		t.Errorf("PreambleStart = %v, want near %d", m.PreambleStart, wantStart)
	}
	if m.PreambleEnd <= m.PreambleStart {
		t.Errorf("PreambleEnd %v should be after PreambleStart %v", m.PreambleEnd, m.PreambleStart)
	}
}
