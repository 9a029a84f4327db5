package sink

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ausocean/line21/caption"
)

type nopCloser struct{ *bytes.Buffer }

func (nopCloser) Close() error { return nil }

func newBuf() (nopCloser, *bytes.Buffer) {
	b := &bytes.Buffer{}
	return nopCloser{b}, b
}

func TestSRTSinkPairsStartAndEnd(t *testing.T) {
	w, buf := newBuf()
	s := NewSRTSink(w)

	s.Handle("CC1", caption.Event{Kind: caption.EventDisplay, Text: "hello", Frame: 0})
	s.Handle("CC1", caption.Event{Kind: caption.EventDisplay, Text: "world", Frame: 90})

	out := buf.String()
	if !strings.Contains(out, "1\n00:00:00,000 --> 00:00:03,003\nhello\n\n") {
		t.Errorf("unexpected SRT output:\n%s", out)
	}
}

func TestSCCTimecodeDropFrame(t *testing.T) {
	tc := sccTimecode(0)
	if tc != "00:00:00;00" {
		t.Errorf("sccTimecode(0) = %q, want 00:00:00;00", tc)
	}
}

func TestHTMLSinkEscapesAndBreaksLines(t *testing.T) {
	w, buf := newBuf()
	s := NewHTMLSink(w)
	s.Handle("CC1", caption.Event{Kind: caption.EventDisplay, Text: "a<b>\nc"})
	out := buf.String()
	if !strings.Contains(out, "a&lt;b&gt;<br>c") {
		t.Errorf("unexpected HTML output:\n%s", out)
	}
}

func TestTXTSinkIgnoresNonDisplayEvents(t *testing.T) {
	w, buf := newBuf()
	s := NewTXTSink(w)
	s.Handle("CC1", caption.Event{Kind: caption.EventErase})
	if buf.Len() != 0 {
		t.Errorf("erase events should not produce text output, got %q", buf.String())
	}
	s.Handle("CC1", caption.Event{Kind: caption.EventDisplay, Text: "hi"})
	if buf.String() != "[CC1] hi\n" {
		t.Errorf("got %q", buf.String())
	}
}
