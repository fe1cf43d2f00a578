package fir

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-lowpass/dsp/core"
	vecmath "github.com/cwbudde/algo-vecmath"
)

// Filter is a direct-form FIR filter. The delay line is stored twice so the
// most recent len(taps) samples are always contiguous.
type Filter struct {
	taps     []float64
	reversed []float64
	delay    []float64
	pos      int
}

// New creates a filter from the given taps, which are copied.
func New(taps []float64) *Filter {
	n := len(taps)
	f := &Filter{
		taps:     make([]float64, n),
		reversed: make([]float64, n),
		delay:    make([]float64, 2*n),
	}

	copy(f.taps, taps)
	for i, h := range taps {
		f.reversed[n-1-i] = h
	}

	return f
}

// ProcessSample filters one input sample.
//
//	y[n] = sum_{k=0}^{N-1} h[k] * x[n-k]
func (f *Filter) ProcessSample(x float64) float64 {
	n := len(f.taps)
	if n == 0 {
		return 0
	}

	f.delay[f.pos] = x
	f.delay[f.pos+n] = x

	// delay[pos+1 : pos+1+n] runs from x[n-N+1] to x[n].
	y := vecmath.DotProduct(f.reversed, f.delay[f.pos+1:f.pos+1+n])

	f.pos++
	if f.pos == n {
		f.pos = 0
	}

	return y
}

// ProcessBlock filters a block of samples in place.
func (f *Filter) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = f.ProcessSample(x)
	}
}

// ProcessBlockTo filters src into dst. Both slices must have the same length.
func (f *Filter) ProcessBlockTo(dst, src []float64) {
	if len(src) == 0 {
		return
	}

	_ = dst[len(src)-1] // bounds check hint
	for i, x := range src {
		dst[i] = f.ProcessSample(x)
	}
}

// Reset clears the delay line.
func (f *Filter) Reset() {
	clear(f.delay)
	f.pos = 0
}

// Order returns len(taps) - 1.
func (f *Filter) Order() int {
	return len(f.taps) - 1
}

// Taps returns a copy of the filter taps.
func (f *Filter) Taps() []float64 {
	c := make([]float64, len(f.taps))
	copy(c, f.taps)

	return c
}

// GroupDelay returns (N-1)/2, the delay in samples of a linear-phase
// (symmetric) filter.
func (f *Filter) GroupDelay() float64 {
	return float64(len(f.taps)-1) / 2
}

// Response computes H(e^{jw}) at freqHz for the given sample rate.
func (f *Filter) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate

	var h complex128
	for k, c := range f.taps {
		h += complex(c, 0) * cmplx.Exp(complex(0, -w*float64(k)))
	}

	return h
}

// MagnitudeDB returns 20*log10|H| at freqHz.
func (f *Filter) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return core.LinearToDB(cmplx.Abs(f.Response(freqHz, sampleRate)))
}
