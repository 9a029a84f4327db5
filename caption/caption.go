// Package caption implements the per-channel CEA-608 caption state
// machine: pop-on, paint-on, roll-up, and text modes, the global control
// code dispatch table, duplicate-control-code debouncing, and rendering
// a buffered row log to text.
//
// Grounded on CaptionTrack/SCCCaptionTrack/TextCaptionTrack and
// get_caption_text/handle_* in the reference decoder this package
// imitates (see DESIGN.md), and on the front/back buffer split in
// other_examples/93a9a93c_szatmary-gocaption__eia608.go.go for
// expressing pop-on's double-buffer swap as Go struct state rather than
// Python list-swapping.
package caption

import (
	"strings"

	"github.com/ausocean/line21/charset"
	"github.com/ausocean/line21/rowclassify"
)

// Mode is a caption channel's current display mode.
type Mode int

const (
	ModePopOn Mode = iota
	ModePaintOn
	ModeRollUp
	ModeText
)

func (m Mode) String() string {
	return [...]string{"pop-on", "paint-on", "roll-up", "text"}[m]
}

// EventKind identifies what a Track's Handle call produced.
type EventKind int

const (
	EventNone EventKind = iota
	EventDisplay
	EventErase
)

// Event is emitted by Track.Handle when a channel's displayed content
// changed: a fresh render to show (EventDisplay) or a clear
// (EventErase).
type Event struct {
	Kind  EventKind
	Text  string
	Frame int64
}

const defaultRollUpRows = 2
const maxTextBufferRows = 32

// Track is one channel's caption state machine: CC1-CC4 or T1-T4 each
// get their own independent Track (spec's adopted reading of the
// separate-text-channel Open Question; see DESIGN.md).
type Track struct {
	channel charset.Channel
	mode    Mode

	rollUpRows int

	onScreen  []rowclassify.ClassifiedRow
	offScreen []rowclassify.ClassifiedRow

	hasPrev  bool
	prevCode rowclassify.ClassifiedRow
}

// NewTrack returns a fresh Track for the given channel, defaulting to
// pop-on mode with empty buffers.
func NewTrack(channel charset.Channel) *Track {
	return &Track{channel: channel, mode: ModePopOn, rollUpRows: defaultRollUpRows}
}

// Channel reports which channel this Track renders.
func (t *Track) Channel() charset.Channel { return t.channel }

// Mode reports the track's current display mode.
func (t *Track) Mode() Mode { return t.mode }

// sameControl reports whether a and b are the same control code
// transmission (same code, same parameters), used to debounce the
// broadcast convention of sending every control code twice in a row.
func sameControl(a, b rowclassify.ClassifiedRow) bool {
	return a.IsControl && b.IsControl &&
		a.CodeID == b.CodeID && a.Row == b.Row && a.Indent == b.Indent &&
		a.TabOffset == b.TabOffset && a.RollUpRows == b.RollUpRows &&
		a.Underline == b.Underline && a.Color == b.Color
}

// activeBuffer returns a pointer to the buffer that text/PAC/mid-row
// writes should append to under the current mode.
func (t *Track) activeBuffer() *[]rowclassify.ClassifiedRow {
	if t.mode == ModePopOn {
		return &t.offScreen
	}
	return &t.onScreen
}

// Handle advances the state machine by one decoded byte pair, returning
// any events the caller (pipeline/sink) should act on.
func (t *Track) Handle(pair rowclassify.ClassifiedRow, frameIndex int64) []Event {
	if pair.IsControl && t.hasPrev && sameControl(t.prevCode, pair) {
		// Duplicate consecutive transmission of the same control code;
		// CEA-608 sends these twice for robustness, the second is a no-op.
		t.hasPrev = false
		return nil
	}
	if pair.IsControl {
		t.hasPrev = true
		t.prevCode = pair
	} else {
		t.hasPrev = false
	}

	if !pair.IsControl {
		t.appendActive(pair)
		return t.liveRenderEvent(frameIndex)
	}

	switch pair.CodeID {
	case charset.CodeResumeCaptionLoading:
		t.mode = ModePopOn
		return nil
	case charset.CodeResumeDirectCaptioning:
		t.mode = ModePaintOn
		return nil
	case charset.CodeRollUp:
		t.mode = ModeRollUp
		if pair.RollUpRows > 0 {
			t.rollUpRows = pair.RollUpRows
		}
		return nil
	case charset.CodeTextRestart:
		t.mode = ModeText
		t.onScreen = nil
		return []Event{{Kind: EventErase, Frame: frameIndex}}
	case charset.CodeResumeTextDisplay:
		t.mode = ModeText
		return nil
	case charset.CodeEraseDisplayedMemory:
		t.onScreen = nil
		return []Event{{Kind: EventErase, Frame: frameIndex}}
	case charset.CodeEraseNonDisplayedMemory:
		t.offScreen = nil
		return nil
	case charset.CodeEndOfCaption:
		t.onScreen, t.offScreen = t.offScreen, t.onScreen
		return []Event{{Kind: EventDisplay, Text: Render(t.onScreen), Frame: frameIndex}}
	case charset.CodeCarriageReturn:
		if t.mode == ModeRollUp || t.mode == ModeText {
			t.appendActive(pair)
			return t.liveRenderEvent(frameIndex)
		}
		return nil
	default:
		// Backspace, tab offset, preamble address, mid-row style,
		// background/foreground, and any other recognized control code
		// that contributes to (or collapses into) rendered text is kept
		// in the buffer log for Render to replay in order.
		t.appendActive(pair)
		return t.liveRenderEvent(frameIndex)
	}
}

// appendActive appends pair to the currently active buffer, and if the
// channel is in a mode that scrolls (roll-up/text), re-applies the
// row-count truncation immediately so every render reflects it.
func (t *Track) appendActive(pair rowclassify.ClassifiedRow) {
	*t.activeBuffer() = append(*t.activeBuffer(), pair)
	if t.mode == ModeRollUp || t.mode == ModeText {
		t.truncateScrollingBuffer()
	}
}

// liveRenderEvent emits an updated render for modes that display
// continuously as they're written (paint-on, roll-up, text); pop-on only
// displays on an explicit End Of Caption flip.
func (t *Track) liveRenderEvent(frameIndex int64) []Event {
	if t.mode == ModePopOn {
		return nil
	}
	return []Event{{Kind: EventDisplay, Text: Render(t.onScreen), Frame: frameIndex}}
}

// truncateScrollingBuffer keeps only the last rollUpRows (or, in text
// mode, maxTextBufferRows) visual rows of the on-screen buffer, counting
// row boundaries at Carriage Return and Preamble Address codes.
func (t *Track) truncateScrollingBuffer() {
	limit := t.rollUpRows
	if t.mode == ModeText {
		limit = maxTextBufferRows
	}
	rows := 0
	cut := 0
	for i := len(t.onScreen) - 1; i >= 0; i-- {
		if isRowBoundary(t.onScreen[i]) {
			rows++
			if rows == limit {
				cut = i + 1
				break
			}
		}
	}
	if cut > 0 {
		t.onScreen = append([]rowclassify.ClassifiedRow(nil), t.onScreen[cut:]...)
	}
}

func isRowBoundary(r rowclassify.ClassifiedRow) bool {
	return r.IsControl && (r.CodeID == charset.CodeCarriageReturn || r.CodeID == charset.CodePreambleAddress)
}

// Render replays a buffered row log into its plain-text rendering,
// handling row advance, backspace, tab offset, indent, unrecognized-
// control-code space collapsing, and the block-glyph de-duplication rule,
// matching get_caption_text/handle_row/handle_cr/handle_bs/handle_tab/
// handle_indent: caption_text is a single accumulating string, not a list
// of rows, and a PAC only breaks the line when its row number strictly
// increases over the last one seen - the very first PAC in a buffer never
// inserts a leading break.
func Render(buf []rowclassify.ClassifiedRow) string {
	var out strings.Builder
	currentRow := 0
	haveRow := false

	writeIndent := func(n int) {
		for i := 0; i < n; i++ {
			out.WriteByte(' ')
		}
	}
	backspace := func() {
		s := out.String()
		if len(s) == 0 {
			return
		}
		out.Reset()
		out.WriteString(s[:len(s)-1])
	}

	prevUnknown := false
	for _, r := range buf {
		unknown := false
		switch {
		case !r.IsControl:
			out.WriteString(r.Text)
		case r.CodeID == charset.CodePreambleAddress:
			if haveRow && currentRow < r.Row {
				out.WriteByte('\n')
			}
			currentRow = r.Row
			haveRow = true
			writeIndent(r.Indent)
		case r.CodeID == charset.CodeCarriageReturn:
			out.WriteByte('\n')
		case r.CodeID == charset.CodeBackspace:
			backspace()
		case r.CodeID == charset.CodeTabOffset:
			// Tab offsets are clamped against the length in bytes of the
			// whole accumulated text, not the current row, so they never
			// push it past 32.
			n := r.TabOffset
			if avail := 32 - out.Len(); n > avail {
				n = avail
			}
			writeIndent(n)
		case r.CodeID == charset.CodeMidRow:
			// Style-only; no visible character in plain-text rendering.
		default:
			// Any other recognized control code (alarm, flash, background,
			// foreground, delete-to-end-of-row, ...) collapses to a space;
			// a run of consecutive such codes yields a single space.
			if !prevUnknown {
				out.WriteByte(' ')
			}
			unknown = true
		}
		prevUnknown = unknown
	}

	return dedupBlockGlyphs(out.String())
}

// dedupBlockGlyphs collapses a run of two or more consecutive error
// glyphs into one, matching dedupe_bad_data_from_text: repeated
// uncorrectable bytes are far more often one dropped frame than a
// genuine repeated block character.
func dedupBlockGlyphs(s string) string {
	var b strings.Builder
	prevWasGlyph := false
	for _, r := range s {
		if r == charset.ErrorGlyph {
			if prevWasGlyph {
				continue
			}
			prevWasGlyph = true
		} else {
			prevWasGlyph = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
