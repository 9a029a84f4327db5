// Package sink implements the CEA-608 decode pipeline's output formats:
// SRT and SCC subtitle files, a plain-text transcript, an HTML
// transcript with styling, a raw byte-pair dump, an XDS packet log, and
// a debug waveform plotter. The caption-text sinks implement Sink and
// receive rendered caption events; the raw and XDS sinks implement
// RowSink and receive decoded rows; the waveform plotter is called
// directly by the pipeline.
//
// Grounded on get_output_function/write_caption/_get_timecode/
// _get_subtitle_data in the reference decoder this package imitates (see
// DESIGN.md), and on container/mts/encoder.go for the
// io.WriteCloser-shaped per-format encoder convention.
package sink

import (
	"io"

	"github.com/ausocean/line21/caption"
	"github.com/ausocean/line21/rowclassify"
)

// Format names one of the output formats a Sink can be constructed for.
type Format int

const (
	FormatSRT Format = iota
	FormatSCC
	FormatTXT
	FormatHTML
	FormatRaw
	FormatXDS
	FormatWaveformDebug
)

func (f Format) String() string {
	return [...]string{"srt", "scc", "txt", "html", "raw", "xds", "waveform_debug"}[f]
}

// Sink consumes one channel's decoded output as the pipeline produces it.
type Sink interface {
	io.Closer
	// Handle is called once per caption.Event a channel's Track produces.
	Handle(channel string, ev caption.Event) error
}

// RowSink is the narrower interface for sinks that consume raw decoded
// rows directly rather than rendered caption events (raw, xds).
type RowSink interface {
	io.Closer
	HandleRow(frameIndex int64, channel string, row rowclassify.ClassifiedRow) error
}
