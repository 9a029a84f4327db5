package rowclassify

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ausocean/line21/charset"
)

func TestClassifyControlCode(t *testing.T) {
	row, dropped := Classify(DecodedRow{
		RowIndex: 5, Byte1: 0x14, Byte2: 0x20,
		Byte1ParityOK: true, Byte2ParityOK: true,
	})
	if dropped {
		t.Fatal("unexpectedly dropped a clean control code")
	}
	if !row.IsControl {
		t.Error("expected IsControl = true")
	}
	if row.CodeLabel != "CC1 Resume Caption Loading" {
		t.Errorf("CodeLabel = %q", row.CodeLabel)
	}
}

func TestClassifyDropsControlWithBadByte2Parity(t *testing.T) {
	_, dropped := Classify(DecodedRow{
		Byte1: 0x14, Byte2: 0x20,
		Byte1ParityOK: true, Byte2ParityOK: false,
	})
	if !dropped {
		t.Fatal("a control code with a bad byte2 parity should be dropped")
	}
}

func TestClassifyBadByte1SubstitutesGlyph(t *testing.T) {
	row, dropped := Classify(DecodedRow{
		Byte1: 'H', Byte2: 'i',
		Byte1ParityOK: false, Byte2ParityOK: true,
	})
	if dropped {
		t.Fatal("a bad byte1 should not drop the row")
	}
	if row.Byte1 != substituteGlyph {
		t.Errorf("Byte1 = %#x, want substitute glyph", row.Byte1)
	}
	if row.IsControl {
		t.Error("a substituted byte1 should never be treated as control")
	}
}

func TestClassifyBadByte2OnTextSubstitutesGlyph(t *testing.T) {
	row, dropped := Classify(DecodedRow{
		Byte1: 'H', Byte2: 'i',
		Byte1ParityOK: true, Byte2ParityOK: false,
	})
	if dropped {
		t.Fatal("a bad byte2 on a text pair should not drop the row")
	}
	if row.Byte2 != substituteGlyph {
		t.Errorf("Byte2 = %#x, want substitute glyph", row.Byte2)
	}
}

func TestClassifyPreambleAddressPopulatesFullCode(t *testing.T) {
	row, dropped := Classify(DecodedRow{
		RowIndex: 19, Byte1: 0x11, Byte2: 0x40,
		Byte1ParityOK: true, Byte2ParityOK: true,
	})
	if dropped {
		t.Fatal("unexpectedly dropped a clean PAC")
	}

	want := ClassifiedRow{
		DecodedRow: DecodedRow{
			RowIndex: 19, Byte1: 0x11, Byte2: 0x40,
			Byte1ParityOK: true, Byte2ParityOK: true,
		},
		IsControl: true,
		CodeID:    charset.CodePreambleAddress,
		CodeLabel: "CC1 Pre: White row 1",
		Style:     charset.StyleA,
		Row:       1,
		Color:     "White",
	}
	if !cmp.Equal(row, want) {
		t.Errorf("Classify mismatch (-got +want):\n%s", cmp.Diff(row, want))
	}
}

func TestClassifyPlainText(t *testing.T) {
	row, dropped := Classify(DecodedRow{
		Byte1: 'H', Byte2: 'i',
		Byte1ParityOK: true, Byte2ParityOK: true,
	})
	if dropped {
		t.Fatal("plain text should not be dropped")
	}
	if row.Text != "Hi" {
		t.Errorf("Text = %q, want Hi", row.Text)
	}
}
