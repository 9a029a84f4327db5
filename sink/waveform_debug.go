package sink

import (
	"fmt"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// WaveformDebugSink plots the normalized scanline linesync scored, one
// PNG per call, for visual inspection of sync accept/reject decisions.
// This recovers the reference decoder's matplotlib debug_plot feature
// (see DESIGN.md / SPEC_FULL.md §4) using gonum/plot instead.
type WaveformDebugSink struct {
	dir string
	n   int
}

// NewWaveformDebugSink writes PNGs into dir, which must already exist.
func NewWaveformDebugSink(dir string) *WaveformDebugSink {
	return &WaveformDebugSink{dir: dir}
}

// Plot renders one normalized scanline to a PNG, named by
// frame/row/outcome. bitWidth is accepted but not drawn: the plot shows
// no bit-cell boundaries.
func (s *WaveformDebugSink) Plot(frameIndex int64, rowIndex int, norm []float64, bitWidth float64, accepted bool) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("frame %d row %d (accepted=%v)", frameIndex, rowIndex, accepted)
	p.X.Label.Text = "pixel"
	p.Y.Label.Text = "normalized amplitude"

	pts := make(plotter.XYs, len(norm))
	for i, v := range norm {
		pts[i].X = float64(i)
		pts[i].Y = v
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("sink: building waveform line: %w", err)
	}
	p.Add(line)

	outcome := "reject"
	if accepted {
		outcome = "accept"
	}
	s.n++
	name := fmt.Sprintf("frame%06d_row%03d_%s_%04d.png", frameIndex, rowIndex, outcome, s.n)
	if err := p.Save(8*vg.Inch, 3*vg.Inch, filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("sink: saving waveform plot: %w", err)
	}
	return nil
}
