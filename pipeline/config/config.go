// Package config defines the decode pipeline's configuration, following
// the exported-fields-plus-Validate() convention of revid/config.Config.
package config

import (
	"fmt"
	"time"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/line21/sink"
)

// Format names an output format the pipeline can fan decoded rows out to;
// sink.Format is the single source of truth so the CLI, config, and sink
// construction can never disagree on what a format name means.
type Format = sink.Format

const (
	FormatSRT  = sink.FormatSRT
	FormatSCC  = sink.FormatSCC
	FormatTXT  = sink.FormatTXT
	FormatHTML = sink.FormatHTML
	FormatRaw  = sink.FormatRaw
	FormatXDS  = sink.FormatXDS
)

// ParseFormat parses a format name as used on the command line.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "srt":
		return FormatSRT, nil
	case "scc":
		return FormatSCC, nil
	case "txt":
		return FormatTXT, nil
	case "html":
		return FormatHTML, nil
	case "raw":
		return FormatRaw, nil
	case "xds":
		return FormatXDS, nil
	default:
		return Format(0), fmt.Errorf("config: unknown format %q", s)
	}
}

// Config holds everything the decode pipeline needs to run.
type Config struct {
	// Width is the pixel width of each incoming video scanline.
	Width int

	// Height is the frame height in scanlines.
	Height int

	// StartLine is the first scanline index searched for a caption
	// preamble each frame.
	StartLine int

	// SearchLines bounds how many scanlines from StartLine are searched.
	SearchLines int

	// Formats lists the output formats to produce.
	Formats []Format

	// OutputDir is where output files are written, one per requested
	// format (output.<format>); all channels of a format share its file.
	OutputDir string

	// FieldLockThreshold is the number of consistent (row, field)
	// observations fielddemux requires before trusting the mapping.
	FieldLockThreshold int

	// ShutdownTimeout bounds how long Run waits for a sink to drain its
	// queue during shutdown before abandoning it.
	ShutdownTimeout time.Duration

	// Logger receives the pipeline's own diagnostic output; the decode
	// stages it runs do not log.
	Logger logging.Logger

	// EnableWaveformDebug turns on the waveform_debug PNG sink.
	EnableWaveformDebug bool
}

// Validate checks that cfg describes a runnable pipeline.
func (cfg Config) Validate() error {
	if cfg.Width <= 0 {
		return fmt.Errorf("config: Width must be positive, got %d", cfg.Width)
	}
	if cfg.Height <= 0 {
		return fmt.Errorf("config: Height must be positive, got %d", cfg.Height)
	}
	if cfg.SearchLines <= 0 {
		return fmt.Errorf("config: SearchLines must be positive, got %d", cfg.SearchLines)
	}
	if cfg.StartLine < 0 || cfg.StartLine+cfg.SearchLines > cfg.Height {
		return fmt.Errorf("config: search window [%d, %d) exceeds Height %d", cfg.StartLine, cfg.StartLine+cfg.SearchLines, cfg.Height)
	}
	if len(cfg.Formats) == 0 {
		return fmt.Errorf("config: at least one output Format is required")
	}
	if cfg.OutputDir == "" {
		return fmt.Errorf("config: OutputDir is required")
	}
	if cfg.FieldLockThreshold <= 0 {
		return fmt.Errorf("config: FieldLockThreshold must be positive, got %d", cfg.FieldLockThreshold)
	}
	if cfg.Logger == nil {
		return fmt.Errorf("config: Logger is required")
	}
	return nil
}
