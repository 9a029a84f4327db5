// Package pipeline wires the decode stages into a running system: one
// goroutine scans each frame for caption rows and fans each frame's rows
// out to one queue per requested output format, and one goroutine per
// format drains its own queue, running the rows through that sink's own
// per-channel state machines, so a slow sink can never stall another.
//
// Grounded structurally on revid.go/pipeline.go/revid/config/config.go's
// Logger field, Start/Stop lifecycle, and handleErrors pattern, adapted
// from "one AV transcode pipeline" to "one decode worker fanning out to
// N independent sink queues" per spec.md §5 (see DESIGN.md).
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ausocean/line21/caption"
	"github.com/ausocean/line21/charset"
	"github.com/ausocean/line21/fielddemux"
	"github.com/ausocean/line21/frame"
	"github.com/ausocean/line21/linesync"
	"github.com/ausocean/line21/pipeline/config"
	"github.com/ausocean/line21/rowclassify"
	"github.com/ausocean/line21/sink"
)

// rowBatch is one frame's worth of decoded rows, tagged with the frame
// index, fanned out to every sink's own queue.
type rowBatch struct {
	frameIndex int64
	rows       []rowclassify.ClassifiedRow
}

// doneBatch is the sentinel fan-out value signaling a sink should flush
// and close; it carries no rows.
var doneBatch = rowBatch{frameIndex: -1}

// Decoder runs the full sync -> slice -> classify -> demux -> caption ->
// sink pipeline over a frame.Source.
type Decoder struct {
	cfg      config.Config
	demux    *fielddemux.Demux
	tpls     linesync.Templates
	sinks    map[config.Format]sink.Sink
	rowSink  map[config.Format]sink.RowSink
	queues   map[config.Format]chan rowBatch
	waveform *sink.WaveformDebugSink
}

// New builds a Decoder for cfg, opening one output file per requested
// format under cfg.OutputDir.
func New(cfg config.Config) (*Decoder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	d := &Decoder{
		cfg:     cfg,
		demux:   fielddemux.NewWithLockThreshold(cfg.FieldLockThreshold),
		tpls:    linesync.BuildTemplates(cfg.Width),
		sinks:   make(map[config.Format]sink.Sink),
		rowSink: make(map[config.Format]sink.RowSink),
		queues:  make(map[config.Format]chan rowBatch),
	}
	for _, f := range cfg.Formats {
		w, err := openOutput(cfg.OutputDir, f)
		if err != nil {
			return nil, err
		}
		switch f {
		case config.FormatSRT:
			d.sinks[f] = sink.NewSRTSink(w)
		case config.FormatSCC:
			d.sinks[f] = sink.NewSCCSink(w)
		case config.FormatTXT:
			d.sinks[f] = sink.NewTXTSink(w)
		case config.FormatHTML:
			d.sinks[f] = sink.NewHTMLSink(w)
		case config.FormatRaw:
			d.rowSink[f] = sink.NewRawSink(w)
		case config.FormatXDS:
			d.rowSink[f] = sink.NewXDSSink(w)
		}
		d.queues[f] = make(chan rowBatch, 64)
	}

	if cfg.EnableWaveformDebug {
		dir := filepath.Join(cfg.OutputDir, "waveform_debug")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("pipeline: creating waveform debug dir: %w", err)
		}
		d.waveform = sink.NewWaveformDebugSink(dir)
	}

	return d, nil
}

func openOutput(dir string, f config.Format) (io.WriteCloser, error) {
	path := filepath.Join(dir, "output."+f.String())
	w, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("pipeline: opening %s: %w", path, err)
	}
	return w, nil
}

// Run reads frames from src until it is exhausted or ctx is canceled,
// decoding and fanning each frame's caption rows out to every configured
// sink, then shuts every sink down.
func (d *Decoder) Run(ctx context.Context, src frame.Source) error {
	var wg sync.WaitGroup
	for f, q := range d.queues {
		wg.Add(1)
		go d.runSink(&wg, f, q)
	}

	var frameIndex int64
	var readErr error
loop:
	for {
		select {
		case <-ctx.Done():
			d.cfg.Logger.Info("pipeline: context canceled, shutting down")
			readErr = ctx.Err()
			break loop
		default:
		}

		f, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			d.cfg.Logger.Error("pipeline: reading frame", "error", err)
			break
		}

		rows := d.demux.ScanFrame(d.tpls, f, d.cfg.StartLine, d.cfg.SearchLines, d.waveformObserver(frameIndex))
		if len(rows) > 0 {
			d.fanOut(rowBatch{frameIndex: frameIndex, rows: rows})
		}
		frameIndex++
	}

	d.closeQueues()
	d.awaitShutdown(&wg)
	return readErr
}

// awaitShutdown waits for every sink goroutine to drain and close, up to
// cfg.ShutdownTimeout; a sink that is still stuck past the deadline is
// logged and abandoned rather than blocking process exit indefinitely.
func (d *Decoder) awaitShutdown(wg *sync.WaitGroup) {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	if d.cfg.ShutdownTimeout <= 0 {
		<-done
		return
	}

	select {
	case <-done:
	case <-time.After(d.cfg.ShutdownTimeout):
		d.cfg.Logger.Warning("pipeline: shutdown timed out, abandoning unfinished sinks", "timeout", d.cfg.ShutdownTimeout)
	}
}

// waveformObserver returns a fielddemux.SyncObserver that plots every
// sync attempt in frameIndex to the waveform debug sink, or nil if
// waveform debugging is disabled.
func (d *Decoder) waveformObserver(frameIndex int64) fielddemux.SyncObserver {
	if d.waveform == nil {
		return nil
	}
	return func(rowIndex int, m linesync.PreambleMatch, accepted bool) {
		if err := d.waveform.Plot(frameIndex, rowIndex, m.NormalizedLine, m.BitWidth, accepted); err != nil {
			d.cfg.Logger.Warning("pipeline: waveform debug plot failed", "frame", frameIndex, "row", rowIndex, "error", err)
		}
	}
}

func (d *Decoder) fanOut(b rowBatch) {
	for _, q := range d.queues {
		cp := make([]rowclassify.ClassifiedRow, len(b.rows))
		copy(cp, b.rows)
		select {
		case q <- rowBatch{frameIndex: b.frameIndex, rows: cp}:
		default:
			d.cfg.Logger.Warning("pipeline: sink queue full, dropping batch", "frame", b.frameIndex)
		}
	}
}

func (d *Decoder) closeQueues() {
	for _, q := range d.queues {
		q <- doneBatch
	}
}

// runSink drains one format's queue until it sees doneBatch, routing
// each row through the caption state machine (for text-rendering sinks)
// or directly (for RowSink sinks), then closes the sink.
func (d *Decoder) runSink(wg *sync.WaitGroup, f config.Format, q chan rowBatch) {
	defer wg.Done()

	router := caption.NewRouter()
	lastChannel := map[int]charset.Channel{0: charset.CC1, 1: charset.CC3}
	for b := range q {
		if b.frameIndex == doneBatch.frameIndex {
			break
		}
		for _, row := range b.rows {
			field, known := d.demux.Field(row.RowIndex)
			if f == config.FormatXDS && (!known || field != 1) {
				continue
			}
			if !known {
				if rs, ok := d.rowSink[f]; ok {
					if err := rs.HandleRow(b.frameIndex, "unknown", row); err != nil {
						d.cfg.Logger.Warning("pipeline: sink write failed", "format", f.String(), "error", err)
					}
				}
				continue
			}
			channel, ok := charset.ChannelFor(field, row.Style)
			if ok {
				lastChannel[field] = channel
			} else {
				channel = lastChannel[field]
			}

			if rs, ok := d.rowSink[f]; ok {
				if err := rs.HandleRow(b.frameIndex, channel.String(), row); err != nil {
					d.cfg.Logger.Warning("pipeline: sink write failed", "format", f.String(), "error", err)
				}
				continue
			}

			s, ok := d.sinks[f]
			if !ok {
				continue
			}
			target, events := router.Dispatch(channel, row, b.frameIndex)
			for _, ev := range events {
				if err := s.Handle(target.String(), ev); err != nil {
					d.cfg.Logger.Warning("pipeline: sink write failed", "format", f.String(), "error", err)
				}
			}
		}
	}

	var err error
	if s, ok := d.sinks[f]; ok {
		err = s.Close()
	} else if rs, ok := d.rowSink[f]; ok {
		err = rs.Close()
	}
	if err != nil {
		d.cfg.Logger.Error("pipeline: closing sink", "format", f.String(), "error", err)
	}
}
