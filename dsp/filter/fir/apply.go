package fir

import (
	"fmt"

	"github.com/cwbudde/algo-lowpass/dsp/conv"
	"github.com/cwbudde/algo-lowpass/dsp/core"
)

// FastConvolutionThreshold is the tap count at and above which Apply uses
// FFT overlap-add instead of the direct-form Filter.
const FastConvolutionThreshold = conv.DirectThreshold

// Option configures NewDesign, Apply and Lowpass.
type Option func(*config)

type config struct {
	transitionHz float64
	rippleDB     float64
	compensate   bool
}

func applyOptions(opts []Option) config {
	cfg := config{
		transitionHz: DefaultTransitionWidthHz,
		rippleDB:     DefaultRippleDB,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// WithTransitionWidth sets the width of the transition band in Hz.
func WithTransitionWidth(hz float64) Option {
	return func(c *config) { c.transitionHz = hz }
}

// WithRipple sets the stop-band attenuation target in dB.
func WithRipple(db float64) Option {
	return func(c *config) { c.rippleDB = db }
}

// WithDelayCompensation advances the output by the group delay, so it lines
// up with the input. The last (N-1)/2 samples then include the decay of the
// kernel past the end of x.
func WithDelayCompensation() Option {
	return func(c *config) { c.compensate = true }
}

// Apply convolves x with taps and returns len(x) samples: the causal output
// y[n] = sum h[k]*x[n-k], or with WithDelayCompensation the same output
// advanced by (len(taps)-1)/2 samples.
func Apply(taps, x []float64, opts ...Option) ([]float64, error) {
	return apply(taps, x, applyOptions(opts))
}

func apply(taps, x []float64, cfg config) ([]float64, error) {
	if len(taps) == 0 {
		return nil, fmt.Errorf("fir: no taps: %w", core.ErrInvalidParameter)
	}

	if len(x) == 0 {
		return nil, fmt.Errorf("fir: empty signal: %w", core.ErrInvalidInput)
	}

	full, err := convolve(taps, x)
	if err != nil {
		return nil, err
	}

	start := 0
	if cfg.compensate {
		start = (len(taps) - 1) / 2
	}

	y := full[start : start+len(x)]
	if !core.AllFinite(y) {
		return nil, fmt.Errorf("fir: output is not finite: %w", core.ErrNumericInstability)
	}

	return y, nil
}

// convolve returns the full len(x)+len(taps)-1 convolution.
func convolve(taps, x []float64) ([]float64, error) {
	if len(taps) >= FastConvolutionThreshold {
		return conv.OverlapAddConvolve(x, taps)
	}

	f := New(taps)
	out := make([]float64, len(x)+len(taps)-1)
	f.ProcessBlockTo(out[:len(x)], x)

	for i := len(x); i < len(out); i++ {
		out[i] = f.ProcessSample(0)
	}

	return out, nil
}

// Result is the output of Lowpass.
type Result struct {
	Filtered []float64
	Taps     []float64
	Length   int
	Beta     float64
}

// GroupDelay returns (Length-1)/2 in samples.
func (r Result) GroupDelay() float64 {
	return float64(r.Length-1) / 2
}

// Lowpass designs a Kaiser-windowed low-pass for cutoffHz and applies it to
// x. By default the transition band is 5 Hz wide and the stop band is 20 dB
// down, which at an 80 Hz sample rate gives 15 taps and β = 0.
func Lowpass(x []float64, nyquistHz, cutoffHz float64, opts ...Option) (Result, error) {
	if len(x) == 0 {
		return Result{}, fmt.Errorf("fir: empty signal: %w", core.ErrInvalidInput)
	}

	d, err := NewDesign(nyquistHz, cutoffHz, opts...)
	if err != nil {
		return Result{}, err
	}

	y, err := d.Apply(x, opts...)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Filtered: y,
		Taps:     d.Taps,
		Length:   d.Length,
		Beta:     d.Beta,
	}, nil
}
