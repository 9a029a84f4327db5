package sink

import (
	"fmt"
	"io"

	"github.com/ausocean/line21/rowclassify"
)

// RawSink dumps every decoded byte pair that rowclassify kept, including
// rows whose field fielddemux has not learned yet (channel "unknown") and
// pairs caption would not display. Control pairs that rowclassify dropped
// for bad byte2 parity never reach it.
type RawSink struct {
	w io.WriteCloser
}

// NewRawSink wraps w as a raw byte-pair dump.
func NewRawSink(w io.WriteCloser) *RawSink { return &RawSink{w: w} }

func (s *RawSink) HandleRow(frameIndex int64, channel string, row rowclassify.ClassifiedRow) error {
	if row.IsControl {
		_, err := fmt.Fprintf(s.w, "%d\t%s\trow=%d\t%#02x %#02x\t%s\n",
			frameIndex, channel, row.RowIndex, row.Byte1, row.Byte2, row.CodeLabel)
		return err
	}
	_, err := fmt.Fprintf(s.w, "%d\t%s\trow=%d\t%#02x %#02x\t%q\n",
		frameIndex, channel, row.RowIndex, row.Byte1, row.Byte2, row.Text)
	return err
}

func (s *RawSink) Close() error { return s.w.Close() }
