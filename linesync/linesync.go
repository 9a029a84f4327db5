// Package linesync locates the CEA-608 "clock run-in" preamble on a
// decoded video scanline by cross-correlating the line against a bank of
// precomputed sine templates spanning the plausible range of bit-cell
// widths, then refines the match's phase by a dot-product sign test.
//
// Grounded on precompute_sine_templates/sync_to_preamble in the reference
// decoder this package imitates (see DESIGN.md); the convolution itself
// is computed with an FFT rather than a naive sliding dot product, the
// way codec/pcm/filters.go's fastConvolve does for its own signal work.
package linesync

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	minClockFrac = 0.035
	maxClockFrac = 0.041
	stepsPerPx   = 5
	runInCycles  = 7
	totalBits    = runInCycles + 3 + 16 // run-in cycles + start bits + 2 data bytes
	eps          = 1e-12
)

// template is one candidate bit-cell width's precomputed clock run-in
// waveform, mean-subtracted so it correlates cleanly against a
// zero-meaned line.
type template struct {
	bitWidth float64
	wave     []float64
	variance float64
}

// Templates is a bank of candidate-width templates for a fixed scanline
// width, built once and reused across every frame.
type Templates struct {
	width     int
	templates []template
}

// BuildTemplates precomputes the candidate template bank for a scanline
// of the given pixel width, matching precompute_sine_templates: bit
// widths are linearly spaced across [0.035*width, 0.041*width] with 5
// sub-pixel steps, and any candidate whose full preamble+data span would
// not fit in the line is discarded.
func BuildTemplates(width int) Templates {
	minW := math.Round(minClockFrac * float64(width))
	maxW := math.Round(maxClockFrac * float64(width))
	t := Templates{width: width}
	n := int(math.Round((maxW - minW) * stepsPerPx))
	if n < 1 {
		n = 1
	}
	for i := 0; i <= n; i++ {
		bw := minW + float64(i)*(maxW-minW)/float64(n)
		if bw <= 0 {
			continue
		}
		runLen := int(math.Round(runInCycles * bw))
		maxWidth := math.Round(float64(totalBits) * bw)
		if runLen < 2 || maxWidth >= float64(width) {
			continue
		}
		wave := make([]float64, runLen)
		for k := 0; k < runLen; k++ {
			wave[k] = math.Sin(2 * math.Pi * float64(k) / bw)
		}
		mean := stat.Mean(wave, nil)
		for k := range wave {
			wave[k] -= mean
		}
		variance := stat.Variance(wave, nil)
		t.templates = append(t.templates, template{bitWidth: bw, wave: wave, variance: variance})
	}
	return t
}

// PreambleMatch describes where in a scanline the clock run-in preamble
// was located, and the bit-cell geometry implied by the match.
type PreambleMatch struct {
	PreambleStart  float64
	PreambleEnd    float64
	BitWidth       float64
	Score          float64
	NormalizedLine []float64
}

// normalize performs min-max normalization into [0,1] followed by mean
// subtraction, so the line correlates against the mean-subtracted sine
// templates on equal footing.
func normalize(line []uint8) []float64 {
	out := make([]float64, len(line))
	lo, hi := 255.0, 0.0
	for _, v := range line {
		f := float64(v)
		if f < lo {
			lo = f
		}
		if f > hi {
			hi = f
		}
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	for i, v := range line {
		out[i] = (float64(v) - lo) / span
	}
	mean := stat.Mean(out, nil)
	for i := range out {
		out[i] -= mean
	}
	return out
}

// windowedVariances returns, for every valid offset i, the variance of
// norm[i:i+winLen] computed via cumulative sums so the whole scan is
// O(n) per template rather than O(n*winLen).
func windowedVariances(norm []float64, winLen int) []float64 {
	n := len(norm)
	if winLen > n {
		return nil
	}
	cumsum := make([]float64, n+1)
	cumsum2 := make([]float64, n+1)
	for i, v := range norm {
		cumsum[i+1] = cumsum[i] + v
		cumsum2[i+1] = cumsum2[i] + v*v
	}
	out := make([]float64, n-winLen+1)
	fw := float64(winLen)
	for i := range out {
		s := cumsum[i+winLen] - cumsum[i]
		s2 := cumsum2[i+winLen] - cumsum2[i]
		mean := s / fw
		out[i] = s2/fw - mean*mean
	}
	return out
}

// crossCorrelate computes, for every offset i, the dot product of
// norm[i:i+len(tmpl)] and tmpl via an FFT-based fast convolution
// (zero-padding tmpl to len(norm) and taking the conjugate product in the
// frequency domain), avoiding an O(n*m) sliding dot product.
func crossCorrelate(norm []float64, tmpl []float64) []float64 {
	n := len(norm)
	padded := make([]float64, n)
	copy(padded, tmpl)

	fa := fft.FFTReal(norm)
	fb := fft.FFTReal(padded)
	prod := make([]complex128, n)
	for i := range prod {
		prod[i] = fa[i] * complex(real(fb[i]), -imag(fb[i]))
	}
	inv := fft.IFFT(prod)
	out := make([]float64, n-len(tmpl)+1)
	for i := range out {
		out[i] = real(inv[i])
	}
	return out
}

// Sync locates the clock run-in preamble within a single decoded
// scanline. It returns the best-scoring (template, offset) pair found,
// with no threshold applied - callers reject low-confidence matches
// themselves (fielddemux), mirroring the split between
// sync_to_preamble and its caller in the reference decoder.
func (t Templates) Sync(line []uint8) (PreambleMatch, bool) {
	if len(t.templates) == 0 || len(line) != t.width {
		return PreambleMatch{}, false
	}
	norm := normalize(line)

	best := PreambleMatch{Score: math.Inf(-1)}
	var bestTmpl []float64
	found := false
	for _, tpl := range t.templates {
		conv := crossCorrelate(norm, tpl.wave)
		winVar := windowedVariances(norm, len(tpl.wave))
		if winVar == nil {
			continue
		}
		maxWidth := totalBits * tpl.bitWidth
		for i, c := range conv {
			if i >= len(winVar) {
				break
			}
			if float64(i)+maxWidth >= float64(len(line)) {
				break
			}
			score := (c * c) / (tpl.variance*winVar[i] + eps)
			if score > best.Score {
				best = PreambleMatch{
					PreambleStart: float64(i),
					BitWidth:      tpl.bitWidth,
					Score:         score,
				}
				bestTmpl = tpl.wave
				found = true
			}
		}
	}
	if !found {
		return PreambleMatch{}, false
	}

	best.PreambleStart = correctPhase(norm, best.PreambleStart, best.BitWidth, bestTmpl)
	best.PreambleEnd = best.PreambleStart + (runInCycles-0.5)*best.BitWidth
	best.NormalizedLine = norm
	return best, true
}

// correctPhase runs sync_to_preamble's single-shot phase test: it dots the
// mean-subtracted 7-cycle run-in segment starting at start against the
// matching template's sine wave, and shifts start forward by half a
// bit-cell once iff the dot product is negative (the estimate landed on
// the wrong half-cycle of the clock run-in).
func correctPhase(norm []float64, start, bitWidth float64, tmpl []float64) float64 {
	s := int(math.Round(start))
	n := len(tmpl)
	if n < 1 || s < 0 || s+n > len(norm) {
		return start
	}
	seg := make([]float64, n)
	copy(seg, norm[s:s+n])
	mean := stat.Mean(seg, nil)
	for i := range seg {
		seg[i] -= mean
	}
	if floats.Dot(seg, tmpl) < 0 {
		start += bitWidth / 2
	}
	return start
}
