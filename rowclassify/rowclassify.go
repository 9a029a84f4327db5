// Package rowclassify turns a decoded byte pair into a ClassifiedRow:
// whether it is a control code or plain text, its symbolic code ID and
// display label, and the parity-drop substitution policy applied to
// single-bad-parity bytes that bitslicer could not correct.
//
// Grounded on extract_closed_caption_bytes in the reference decoder this
// package imitates (see DESIGN.md).
package rowclassify

import "github.com/ausocean/line21/charset"

// substituteGlyph is emitted in place of a byte whose parity could not be
// corrected, matching the CEA-608 convention of rendering uncorrectable
// characters as a block glyph.
const substituteGlyph uint8 = 0x7F

// DecodedRow is the raw output of bitslicer for one scanline.
type DecodedRow struct {
	RowIndex                     uint16
	Byte1, Byte2                 uint8
	Byte1ParityOK, Byte2ParityOK bool
}

// ClassifiedRow adds the charset interpretation of a DecodedRow's byte
// pair to the raw decode.
type ClassifiedRow struct {
	DecodedRow
	IsControl bool
	CodeID    charset.CodeID
	CodeLabel string
	Style     charset.Style
	Text      string

	// Row/Indent/TabOffset/RollUpRows/Underline/Color carry a control
	// code's parsed parameters (charset.Code), valid only when IsControl.
	Row        int
	Indent     int
	TabOffset  int
	RollUpRows int
	Underline  bool
	Color      string
}

// Classify applies the channel-agnostic control/character lookup and the
// parity-drop policy: a bad byte1 forces the pair to be treated as
// non-control text with byte1 substituted; a bad byte2 on an otherwise
// recognized control code drops the row entirely (the caller must check
// Dropped); a bad byte2 on a text pair substitutes the glyph byte.
func Classify(r DecodedRow) (row ClassifiedRow, dropped bool) {
	row.DecodedRow = r

	if !r.Byte1ParityOK {
		row.Byte1 = substituteGlyph
		if !r.Byte2ParityOK {
			row.Byte2 = substituteGlyph
		}
		row.IsControl = false
		if text, ok := charset.Text(row.Byte1, row.Byte2); ok {
			row.Text = text
		}
		return row, false
	}

	if code, ok := charset.Classify(r.Byte1, r.Byte2); ok {
		if !r.Byte2ParityOK {
			return ClassifiedRow{}, true
		}
		row.IsControl = true
		row.CodeID = code.ID
		row.CodeLabel = code.Label
		row.Style = code.Style
		row.Row = code.Row
		row.Indent = code.Indent
		row.TabOffset = code.TabOffset
		row.RollUpRows = code.RollUpRows
		row.Underline = code.Underline
		row.Color = code.Color
		return row, false
	}

	if !r.Byte2ParityOK {
		row.Byte2 = substituteGlyph
	}
	row.IsControl = false
	if text, ok := charset.Text(row.Byte1, row.Byte2); ok {
		row.Text = text
	}
	return row, false
}
