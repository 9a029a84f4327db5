package sink

import (
	"fmt"
	"io"

	"github.com/ausocean/line21/rowclassify"
	"github.com/ausocean/line21/xds"
)

// XDSSink feeds field-1 rows through an xds.Decoder and logs every
// successfully decoded, checksum-valid packet description.
type XDSSink struct {
	w io.WriteCloser
	d xds.Decoder
}

// NewXDSSink wraps w as an XDS packet log.
func NewXDSSink(w io.WriteCloser) *XDSSink { return &XDSSink{w: w} }

func (s *XDSSink) HandleRow(frameIndex int64, channel string, row rowclassify.ClassifiedRow) error {
	desc, ok := s.d.Feed(row)
	if !ok {
		return nil
	}
	_, err := fmt.Fprintf(s.w, "%d\t%s\n", frameIndex, desc)
	return err
}

func (s *XDSSink) Close() error { return s.w.Close() }
