package sink

import (
	"fmt"
	"io"

	"github.com/ausocean/line21/caption"
)

// TXTSink writes a running plain-text transcript: one entry per non-empty
// display event, prefixed with the channel name. A multi-row caption keeps
// its newlines, so only its first row carries the prefix.
type TXTSink struct {
	w io.WriteCloser
}

// NewTXTSink wraps w as a plain-text transcript sink.
func NewTXTSink(w io.WriteCloser) *TXTSink { return &TXTSink{w: w} }

func (s *TXTSink) Handle(channel string, ev caption.Event) error {
	if ev.Kind != caption.EventDisplay || ev.Text == "" {
		return nil
	}
	_, err := fmt.Fprintf(s.w, "[%s] %s\n", channel, ev.Text)
	return err
}

func (s *TXTSink) Close() error { return s.w.Close() }
