// Package fielddemux scans a frame's candidate scanlines for CEA-608
// preambles and learns which scanline index carries which interlaced
// field (0 or 1), so caption can route each decoded row to the right
// channel once combined with charset's Style.
//
// Grounded on find_and_decode_rows in the reference decoder this package
// imitates (see DESIGN.md): rows are scanned in ascending order within
// the search window; the first successful sync is field 0, and only the
// immediately following row is tried for field 1 before the scan stops -
// captions are carried on two adjacent scanlines per frame, never
// scattered across the window.
package fielddemux

import (
	"github.com/ausocean/line21/bitslicer"
	"github.com/ausocean/line21/frame"
	"github.com/ausocean/line21/linesync"
	"github.com/ausocean/line21/rowclassify"
)

// RejectThreshold is the minimum cross-correlation score a preamble match
// must clear to be trusted, matching the reference decoder's accept/
// reject cutoff.
const RejectThreshold = 0.7

// DefaultLockThreshold is the number of consistent (rowIndex, field)
// observations required before the mapping is trusted, per spec.md §9's
// adopted design note.
const DefaultLockThreshold = 3

// Demux learns the row-index-to-field mapping across frames and resolves
// it for callers that need to know which field a given row belongs to.
type Demux struct {
	lockThreshold int
	counts        map[uint16][2]int // per rowIndex, observation counts for field 0 / field 1
	locked        map[uint16]int    // rowIndex -> locked field, once counts[field] reaches lockThreshold
}

// New returns a Demux using DefaultLockThreshold.
func New() *Demux {
	return &Demux{
		lockThreshold: DefaultLockThreshold,
		counts:        make(map[uint16][2]int),
		locked:        make(map[uint16]int),
	}
}

// NewWithLockThreshold returns a Demux that locks a row's field after k
// consistent observations instead of the default.
func NewWithLockThreshold(k int) *Demux {
	d := New()
	d.lockThreshold = k
	return d
}

// Field reports the learned field for rowIndex, if locked.
func (d *Demux) Field(rowIndex uint16) (field int, known bool) {
	f, ok := d.locked[rowIndex]
	return f, ok
}

func (d *Demux) observe(rowIndex uint16, field int) {
	if _, already := d.locked[rowIndex]; already {
		return
	}
	c := d.counts[rowIndex]
	c[field]++
	d.counts[rowIndex] = c
	if c[field] >= d.lockThreshold {
		d.locked[rowIndex] = field
	}
}

// SyncObserver is notified of every sync attempt ScanFrame makes, whether
// or not it was accepted, so a caller can plot/log the raw decision (see
// sink.WaveformDebugSink).
type SyncObserver func(rowIndex int, m linesync.PreambleMatch, accepted bool)

// ScanFrame tries to sync and decode a caption row pair from f within
// [startLine, startLine+searchLines), returning the rows successfully
// decoded (0, 1, or 2 of them) and updating the row-to-field learning
// state for each row that synced. obs, if non-nil, is called once per
// scanline examined.
func (d *Demux) ScanFrame(t linesync.Templates, f frame.Frame, startLine, searchLines int, obs ...SyncObserver) []rowclassify.ClassifiedRow {
	var out []rowclassify.ClassifiedRow
	var notify SyncObserver
	if len(obs) > 0 {
		notify = obs[0]
	}

	end := startLine + searchLines
	if end > f.Height {
		end = f.Height
	}

	field0Row := -1
	for row := startLine; row < end; row++ {
		cr, ok := decodeRow(t, f, row, notify)
		if !ok {
			continue
		}
		out = append(out, cr)
		d.observe(uint16(row), 0)
		field0Row = row
		break
	}
	if field0Row < 0 {
		return out
	}

	next := field0Row + 1
	if next < end {
		if cr, ok := decodeRow(t, f, next, notify); ok {
			out = append(out, cr)
			d.observe(uint16(next), 1)
		}
	}
	return out
}

func decodeRow(t linesync.Templates, f frame.Frame, row int, notify SyncObserver) (rowclassify.ClassifiedRow, bool) {
	m, ok := t.Sync(f.Row(row))
	accepted := ok && m.Score > RejectThreshold
	if notify != nil {
		notify(row, m, accepted)
	}
	if !accepted {
		return rowclassify.ClassifiedRow{}, false
	}
	b, ok := bitslicer.Slice(m)
	if !ok {
		return rowclassify.ClassifiedRow{}, false
	}
	decoded := rowclassify.DecodedRow{
		RowIndex:      uint16(row),
		Byte1:         b.Byte1,
		Byte2:         b.Byte2,
		Byte1ParityOK: b.Byte1ParityOK,
		Byte2ParityOK: b.Byte2ParityOK,
	}
	cr, dropped := rowclassify.Classify(decoded)
	if dropped {
		return rowclassify.ClassifiedRow{}, false
	}
	return cr, true
}
