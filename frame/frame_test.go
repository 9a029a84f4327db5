package frame

import (
	"bytes"
	"io"
	"testing"
)

func TestPipeSourceReadsFrames(t *testing.T) {
	frame1 := bytes.Repeat([]byte{0x10}, 4*2)
	frame2 := bytes.Repeat([]byte{0x20}, 4*2)
	r := bytes.NewReader(append(append([]byte{}, frame1...), frame2...))
	src := NewPipeSource(r, 4, 2)

	f1, err := src.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if f1.Width != 4 || f1.Height != 2 {
		t.Errorf("dims = %dx%d, want 4x2", f1.Width, f1.Height)
	}
	if !bytes.Equal(f1.Row(1), []byte{0x10, 0x10, 0x10, 0x10}) {
		t.Errorf("Row(1) = %v", f1.Row(1))
	}

	f2, err := src.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if f2.Pix[0] != 0x20 {
		t.Errorf("second frame pixel = %#x, want 0x20", f2.Pix[0])
	}

	if _, err := src.Next(); err != io.EOF {
		t.Errorf("Next() error = %v, want io.EOF", err)
	}
}

func TestPipeSourceShortFinalFrameIsEOF(t *testing.T) {
	r := bytes.NewReader([]byte{1, 2, 3})
	src := NewPipeSource(r, 4, 2)
	if _, err := src.Next(); err != io.EOF {
		t.Errorf("Next() error = %v, want io.EOF on a truncated trailing frame", err)
	}
}
