package sink

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/ausocean/line21/caption"
)

// HTMLSink writes an HTML transcript: one <span class="cc CHANNEL"> per
// display event, newlines as <br>, and each pair of consecutive spaces as
// two &nbsp;. Channels are not grouped into separate elements.
type HTMLSink struct {
	w        io.WriteCloser
	wroteHdr bool
}

// NewHTMLSink wraps w as an HTML transcript writer.
func NewHTMLSink(w io.WriteCloser) *HTMLSink { return &HTMLSink{w: w} }

func (s *HTMLSink) Handle(channel string, ev caption.Event) error {
	if !s.wroteHdr {
		if _, err := io.WriteString(s.w, "<!DOCTYPE html>\n<html><body>\n"); err != nil {
			return err
		}
		s.wroteHdr = true
	}
	if ev.Kind != caption.EventDisplay || ev.Text == "" {
		return nil
	}
	escaped := html.EscapeString(ev.Text)
	escaped = strings.ReplaceAll(escaped, "\n", "<br>")
	escaped = strings.ReplaceAll(escaped, "  ", "&nbsp;&nbsp;")
	_, err := fmt.Fprintf(s.w, "<span class=\"cc %s\">%s</span>\n", channel, escaped)
	return err
}

func (s *HTMLSink) Close() error {
	if _, err := io.WriteString(s.w, "</body></html>\n"); err != nil {
		s.w.Close()
		return err
	}
	return s.w.Close()
}
