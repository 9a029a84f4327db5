package charset

import "testing"

func TestClassifyGlobalControlCodes(t *testing.T) {
	tests := []struct {
		name   string
		b1, b2 uint8
		wantID CodeID
		wantSt Style
		wantRU int
	}{
		{"CC1 resume caption loading", 0x14, 0x20, CodeResumeCaptionLoading, StyleA, 0},
		{"CC2 resume caption loading", 0x1C, 0x20, CodeResumeCaptionLoading, StyleB, 0},
		{"CC1 roll-up 2", 0x14, 0x25, CodeRollUp, StyleA, 2},
		{"CC1 roll-up 4", 0x14, 0x27, CodeRollUp, StyleA, 4},
		{"CC1 erase displayed memory", 0x14, 0x2C, CodeEraseDisplayedMemory, StyleA, 0},
		{"CC2 end of caption", 0x1C, 0x2F, CodeEndOfCaption, StyleB, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := Classify(tt.b1, tt.b2)
			if !ok {
				t.Fatalf("Classify(%#x, %#x) not recognized", tt.b1, tt.b2)
			}
			if c.ID != tt.wantID {
				t.Errorf("ID = %v, want %v", c.ID, tt.wantID)
			}
			if c.Style != tt.wantSt {
				t.Errorf("Style = %v, want %v", c.Style, tt.wantSt)
			}
			if c.RollUpRows != tt.wantRU {
				t.Errorf("RollUpRows = %d, want %d", c.RollUpRows, tt.wantRU)
			}
		})
	}
}

func TestClassifyPreambleAddress(t *testing.T) {
	c, ok := Classify(0x11, 0x40)
	if !ok {
		t.Fatal("Classify(0x11, 0x40) not recognized")
	}
	if c.ID != CodePreambleAddress {
		t.Errorf("ID = %v, want CodePreambleAddress", c.ID)
	}
	if c.Row != 1 {
		t.Errorf("Row = %d, want 1", c.Row)
	}
	if c.Style != StyleA {
		t.Errorf("Style = %v, want StyleA", c.Style)
	}

	c2, ok := Classify(0x14, 0x4A)
	if !ok {
		t.Fatal("Classify(0x14, 0x4A) not recognized")
	}
	if c2.Row != 14 {
		t.Errorf("Row = %d, want 14", c2.Row)
	}
}

func TestChannelFor(t *testing.T) {
	tests := []struct {
		field int
		style Style
		want  Channel
	}{
		{0, StyleA, CC1},
		{0, StyleB, CC2},
		{1, StyleA, CC3},
		{1, StyleB, CC4},
	}
	for _, tt := range tests {
		got, ok := ChannelFor(tt.field, tt.style)
		if !ok || got != tt.want {
			t.Errorf("ChannelFor(%d, %v) = %v, %v; want %v, true", tt.field, tt.style, got, ok, tt.want)
		}
	}
}

func TestTextBasic(t *testing.T) {
	s, ok := Text('H', 'i')
	if !ok || s != "Hi" {
		t.Errorf("Text('H','i') = %q, %v; want \"Hi\", true", s, ok)
	}
}

func TestOddParityRoundTrip(t *testing.T) {
	for b := uint8(0); b < 128; b++ {
		out := OddParityByte(b)
		if !CheckParity(out) {
			t.Errorf("OddParityByte(%#x) = %#x, does not have odd parity", b, out)
		}
		if StripParity(out) != b {
			t.Errorf("StripParity(OddParityByte(%#x)) = %#x, want %#x", b, StripParity(out), b)
		}
	}
}
