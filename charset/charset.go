// Package charset provides the CEA-608 ("Line 21") character and control
// code tables: the standard character set, the special and extended
// Western-European two-byte character sets, the global/mid-row/preamble
// address/background control codes, and the SCC odd-parity rewrite table.
//
// Tables are transliterated from the reference decoder this package is
// grounded on (see DESIGN.md). Control codes are exposed as symbolic
// CodeID values rather than parsed strings, per the CEA-608 convention
// that a byte-1 value selects between two sibling sub-channels of
// whichever field carries it ("style A" bytes belong to CC1 on field 0
// and CC3 on field 1; "style B" bytes belong to CC2 on field 0 and CC4 on
// field 1). ChannelFor resolves Style + field into a concrete Channel
// once fielddemux has learned which field a row belongs to.
package charset

import "fmt"

// Style identifies which of the two sub-channels of a field a control
// code addresses. It is independent of which field (0 or 1) carries the
// row; see Channel.
type Style int

const (
	StyleNone Style = iota
	StyleA          // CC1 on field 0, CC3 on field 1
	StyleB          // CC2 on field 0, CC4 on field 1
)

func (s Style) String() string {
	switch s {
	case StyleA:
		return "A"
	case StyleB:
		return "B"
	default:
		return "none"
	}
}

// Channel is a logical CEA-608 channel.
type Channel int

const (
	CC1 Channel = iota
	CC2
	CC3
	CC4
	T1
	T2
	T3
	T4
)

func (c Channel) String() string {
	return [...]string{"CC1", "CC2", "CC3", "CC4", "T1", "T2", "T3", "T4"}[c]
}

// ChannelFor resolves a learned field number and a control code's Style
// into the concrete caption or text channel.
func ChannelFor(field int, s Style) (Channel, bool) {
	switch {
	case field == 0 && s == StyleA:
		return CC1, true
	case field == 0 && s == StyleB:
		return CC2, true
	case field == 1 && s == StyleA:
		return CC3, true
	case field == 1 && s == StyleB:
		return CC4, true
	default:
		return 0, false
	}
}

// TextChannelFor returns the text-mode channel multiplexed alongside cc.
func TextChannelFor(cc Channel) Channel {
	switch cc {
	case CC1:
		return T1
	case CC2:
		return T2
	case CC3:
		return T3
	case CC4:
		return T4
	default:
		return cc
	}
}

// CodeID symbolically identifies a control code's function, independent
// of which style/channel byte pair produced it.
type CodeID int

const (
	CodeNone CodeID = iota
	CodeResumeCaptionLoading
	CodeBackspace
	CodeAlarmOff
	CodeAlarmOn
	CodeDeleteToEndOfRow
	CodeRollUp
	CodeFlashOn
	CodeResumeDirectCaptioning
	CodeTextRestart
	CodeResumeTextDisplay
	CodeEraseDisplayedMemory
	CodeCarriageReturn
	CodeEraseNonDisplayedMemory
	CodeEndOfCaption
	CodeTabOffset
	CodeMidRow
	CodePreambleAddress
	CodeBackgroundColor
	CodeBackgroundTransparent
	CodeForegroundBlack
)

// Code is the fully parsed interpretation of a control-code byte pair.
type Code struct {
	ID    CodeID
	Style Style

	// Label is the human-readable rendering, e.g. "CC1 Resume Caption
	// Loading" or "CC1 Pre: White row 3", matching the channel-identifying
	// first byte per spec (StyleA renders as "CC1", StyleB as "CC2" -
	// field-agnostic, matching the row classifier stage where the field
	// has not yet been resolved).
	Label string

	Row        int  // 1-based PAC target row; 0 if not a preamble address code.
	Indent     int  // spaces to emit for a PAC/Indent code.
	TabOffset  int  // K for a Tab Offset code.
	RollUpRows int  // 2, 3 or 4 for a Roll-Up Captions code.
	Underline  bool // mid-row/PAC underline attribute.
	Color      string
}

var controlTable = map[[2]uint8]Code{}

func addControl(b1, b2 uint8, c Code) {
	controlTable[[2]uint8{b1, b2}] = c
}

func init() {
	buildGlobalControlCodes()
	buildMidRowCodes()
	buildBackgroundCodes()
	buildPreambleCodes()
}

func buildGlobalControlCodes() {
	type entry struct {
		b2   uint8
		id   CodeID
		name string
		roll int
	}
	entries := []entry{
		{0x20, CodeResumeCaptionLoading, "Resume Caption Loading", 0},
		{0x21, CodeBackspace, "Backspace", 0},
		{0x22, CodeAlarmOff, "Reserved (Alarm Off)", 0},
		{0x23, CodeAlarmOn, "Reserved (Alarm On)", 0},
		{0x24, CodeDeleteToEndOfRow, "Delete to End Of Row", 0},
		{0x25, CodeRollUp, "Roll-Up Captions-2 Rows", 2},
		{0x26, CodeRollUp, "Roll-Up Captions-3 Rows", 3},
		{0x27, CodeRollUp, "Roll-Up Captions-4 Rows", 4},
		{0x28, CodeFlashOn, "Flash On", 0},
		{0x29, CodeResumeDirectCaptioning, "Resume Direct Captioning", 0},
		{0x2A, CodeTextRestart, "Text Restart", 0},
		{0x2B, CodeResumeTextDisplay, "Resume Text Display", 0},
		{0x2C, CodeEraseDisplayedMemory, "Erase Displayed Memory", 0},
		{0x2D, CodeCarriageReturn, "Carriage Return", 0},
		{0x2E, CodeEraseNonDisplayedMemory, "Erase Non-Displayed Memory", 0},
		{0x2F, CodeEndOfCaption, "End of Caption (flip memory)", 0},
	}
	for _, e := range entries {
		addControl(0x14, e.b2, Code{ID: e.id, Style: StyleA, Label: "CC1 " + e.name, RollUpRows: e.roll})
		addControl(0x1C, e.b2, Code{ID: e.id, Style: StyleB, Label: "CC2 " + e.name, RollUpRows: e.roll})
	}

	tabs := []struct {
		b2     uint8
		offset int
	}{{0x21, 1}, {0x22, 2}, {0x23, 3}}
	for _, t := range tabs {
		name := fmt.Sprintf("Tab Offset %d", t.offset)
		addControl(0x17, t.b2, Code{ID: CodeTabOffset, Style: StyleA, Label: "CC1 " + name, TabOffset: t.offset})
		addControl(0x1F, t.b2, Code{ID: CodeTabOffset, Style: StyleB, Label: "CC2 " + name, TabOffset: t.offset})
	}
}

var midRowNames = []struct {
	b2        uint8
	color     string
	underline bool
}{
	{0x20, "White", false}, {0x21, "White", true},
	{0x22, "Green", false}, {0x23, "Green", true},
	{0x24, "Blue", false}, {0x25, "Blue", true},
	{0x26, "Cyan", false}, {0x27, "Cyan", true},
	{0x28, "Red", false}, {0x29, "Red", true},
	{0x2A, "Yellow", false}, {0x2B, "Yellow", true},
	{0x2C, "Magenta", false}, {0x2D, "Magenta", true},
	{0x2E, "Italics", false}, {0x2F, "Italics", true},
}

func buildMidRowCodes() {
	for _, m := range midRowNames {
		name := "Mid-row: " + m.color
		if m.underline {
			name += " Underline"
		}
		addControl(0x11, m.b2, Code{ID: CodeMidRow, Style: StyleA, Label: "CC1 " + name, Color: m.color, Underline: m.underline})
		addControl(0x19, m.b2, Code{ID: CodeMidRow, Style: StyleB, Label: "CC2 " + name, Color: m.color, Underline: m.underline})
	}
}

var backgroundColorNames = []struct {
	b2    uint8
	name  string
	semi  bool
	color string
}{
	{0x20, "Background White", false, "White"},
	{0x21, "Background Semi-Transparent White", true, "White"},
	{0x22, "Background Green", false, "Green"},
	{0x23, "Background Semi-Transparent White", true, "White"}, // see DESIGN.md: source aliases 0x21/0x23.
	{0x24, "Background Blue", false, "Blue"},
	{0x25, "Background Semi-Transparent Blue", true, "Blue"},
	{0x26, "Background Cyan", false, "Cyan"},
	{0x27, "Background Semi-Transparent Cyan", true, "Cyan"},
	{0x28, "Background Red", false, "Red"},
	{0x29, "Background Semi-Transparent Red", true, "Red"},
	{0x2A, "Background Yellow", false, "Yellow"},
	{0x2B, "Background Semi-Transparent Yellow", true, "Yellow"},
	{0x2C, "Background Magenta", false, "Magenta"},
	{0x2D, "Background Semi-Transparent Magenta", true, "Magenta"},
	{0x2E, "Background Black", false, "Black"},
	{0x2F, "Background Semi-Transparent Black", true, "Black"},
}

func buildBackgroundCodes() {
	for _, b := range backgroundColorNames {
		addControl(0x10, b.b2, Code{ID: CodeBackgroundColor, Style: StyleA, Label: "CC1 " + b.name, Color: b.color})
		addControl(0x18, b.b2, Code{ID: CodeBackgroundColor, Style: StyleB, Label: "CC2 " + b.name, Color: b.color})
	}
	addControl(0x17, 0x2D, Code{ID: CodeBackgroundTransparent, Style: StyleA, Label: "CC1 Background Transparent"})
	addControl(0x17, 0x2E, Code{ID: CodeForegroundBlack, Style: StyleA, Label: "CC1 Foreground Black"})
	addControl(0x17, 0x2F, Code{ID: CodeForegroundBlack, Style: StyleA, Label: "CC1 Foreground Black Underline", Underline: true})
	addControl(0x1F, 0x2D, Code{ID: CodeBackgroundTransparent, Style: StyleB, Label: "CC2 Background Transparent"})
	addControl(0x1F, 0x2E, Code{ID: CodeForegroundBlack, Style: StyleB, Label: "CC2 Foreground Black"})
	addControl(0x1F, 0x2F, Code{ID: CodeForegroundBlack, Style: StyleB, Label: "CC2 Foreground Black Underline", Underline: true})
}

type pacEntry struct {
	color     string
	indent    int
	underline bool
	isIndent  bool
}

func buildPreambleTable() []pacEntry {
	colors := []string{"White", "Green", "Blue", "Cyan", "Red", "Yellow", "Magenta", "White Italics"}
	indents := []int{0, 4, 8, 12, 16, 20, 24, 28}
	var table []pacEntry // 32 entries: colors at byte2 0x40..0x4F, indents at 0x50..0x5F
	for _, c := range colors {
		table = append(table, pacEntry{color: c, underline: false})
		table = append(table, pacEntry{color: c, underline: true})
	}
	for _, ind := range indents {
		table = append(table, pacEntry{indent: ind, underline: false, isIndent: true})
		table = append(table, pacEntry{indent: ind, underline: true, isIndent: true})
	}
	return table
}

// cc1PreambleCols and cc2PreambleCols give the byte1 value used for each
// of the 15 PAC rows; rows alternate between the "odd" (byte2 0x40-0x5F)
// and "even" (byte2 0x60-0x7F) halves of the table, with the two
// candence-change rows (11, 12) both using the odd half.
var cc1PreambleCols = [15]uint8{0x11, 0x11, 0x12, 0x12, 0x15, 0x15, 0x16, 0x16, 0x17, 0x17, 0x10, 0x13, 0x13, 0x14, 0x14}
var cc2PreambleCols = [15]uint8{0x19, 0x19, 0x1A, 0x1A, 0x1D, 0x1D, 0x1E, 0x1E, 0x1F, 0x1F, 0x18, 0x1B, 0x1B, 0x1C, 0x1C}
var preambleIsEven = [15]bool{false, true, false, true, false, true, false, true, false, true, false, false, true, false, true}

func buildPreambleCodes() {
	oddTable := buildPreambleTable()
	for row := 1; row <= 15; row++ {
		col := row - 1
		b1a, b1b := cc1PreambleCols[col], cc2PreambleCols[col]
		b2Base := uint8(0x40)
		if preambleIsEven[col] {
			b2Base = 0x60
		}
		for i, e := range oddTable {
			b2 := b2Base + uint8(i)
			label := "Pre: " + e.color
			if e.isIndent {
				label = fmt.Sprintf("Pre: Indent %d", e.indent)
			}
			if e.underline {
				label += " Underline"
			}
			addControl(b1a, b2, Code{
				ID: CodePreambleAddress, Style: StyleA, Row: row, Indent: e.indent,
				Underline: e.underline, Color: e.color,
				Label: fmt.Sprintf("CC1 %s row %d", label, row),
			})
			addControl(b1b, b2, Code{
				ID: CodePreambleAddress, Style: StyleB, Row: row, Indent: e.indent,
				Underline: e.underline, Color: e.color,
				Label: fmt.Sprintf("CC2 %s row %d", label, row),
			})
		}
	}
}

// Classify reports whether (b1, b2) is a recognized control code, and if
// so its parsed form.
func Classify(b1, b2 uint8) (Code, bool) {
	c, ok := controlTable[[2]uint8{b1, b2}]
	return c, ok
}

// ErrorGlyph is the CEA-608 "solid block" substituted for characters with
// uncorrectable parity.
const ErrorGlyph = '■'
