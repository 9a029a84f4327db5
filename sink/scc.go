package sink

import (
	"fmt"
	"io"

	"github.com/ausocean/line21/caption"
	"github.com/ausocean/line21/charset"
)

// SCCSink writes Scenarist Closed Caption (.scc) files: one line per
// non-empty display event, a drop-frame timecode followed by the UTF-8
// bytes of the event's rendered text as hex byte pairs, each byte
// rewritten to odd parity. The control codes that produced the event are
// not written. Grounded on SCCCaptionTrack's immediate per-event emission
// and _get_timecode/_get_subtitle_data.
type SCCSink struct {
	w        io.WriteCloser
	wroteHdr bool
}

// NewSCCSink wraps w as an SCC writer.
func NewSCCSink(w io.WriteCloser) *SCCSink { return &SCCSink{w: w} }

func (s *SCCSink) Handle(channel string, ev caption.Event) error {
	if !s.wroteHdr {
		if _, err := io.WriteString(s.w, "Scenarist_SCC V1.0\n\n"); err != nil {
			return err
		}
		s.wroteHdr = true
	}
	if ev.Kind != caption.EventDisplay || ev.Text == "" {
		return nil
	}
	_, err := fmt.Fprintf(s.w, "%s\t%s\n\n", sccTimecode(ev.Frame), hexEncode(ev.Text))
	return err
}

func (s *SCCSink) Close() error { return s.w.Close() }

// sccTimecode applies the NTSC drop-frame correction, matching
// _get_timecode: frame_number = f + 18*(f/17982) + 2*max((f%17982-2)/1798, 0).
func sccTimecode(f int64) string {
	frameNumber := f + 18*(f/17982) + 2*max64((f%17982-2)/1798, 0)
	hours := frameNumber / (30 * 3600)
	frameNumber %= 30 * 3600
	minutes := frameNumber / (30 * 60)
	frameNumber %= 30 * 60
	seconds := frameNumber / 30
	frames := frameNumber % 30
	return fmt.Sprintf("%02d:%02d:%02d;%02d", hours, minutes, seconds, frames)
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

// hexEncode converts text into odd-parity-corrected byte-pair hex groups
// as SCC expects.
func hexEncode(text string) string {
	b := []byte(text)
	out := ""
	for i := 0; i < len(b); i += 2 {
		b1 := charset.OddParityByte(b[i])
		var b2 uint8
		if i+1 < len(b) {
			b2 = charset.OddParityByte(b[i+1])
		} else {
			b2 = charset.OddParityByte(0)
		}
		out += fmt.Sprintf("%02x%02x ", b1, b2)
	}
	return out
}

