package spectrum

import (
	"fmt"
	"math"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-lowpass/dsp/core"
	"github.com/cwbudde/algo-lowpass/dsp/window"
)

// LengthPolicy decides how [Transform] reconciles the supplied sample count
// with the frame length N = sampleRate * duration.
type LengthPolicy int

const (
	// LengthStrict rejects signals whose length differs from N.
	LengthStrict LengthPolicy = iota
	// LengthFit truncates longer signals and zero-pads shorter ones to N.
	LengthFit
)

// Option configures [Transform].
type Option func(*config)

type config struct {
	policy  LengthPolicy
	win     window.Type
	winOpts []window.Option
}

// WithLengthPolicy selects how length mismatches are handled.
func WithLengthPolicy(p LengthPolicy) Option {
	return func(c *config) {
		c.policy = p
	}
}

// WithWindow tapers the frame with the given window before transforming.
// The default is rectangular, i.e. no tapering.
func WithWindow(t window.Type, opts ...window.Option) Option {
	return func(c *config) {
		c.win = t
		c.winOpts = opts
	}
}

// Result is a centred spectrum: Frequencies ascend from -fs/2 and the DC bin
// sits at index len/2.
type Result struct {
	Frequencies []float64
	Bins        []complex128
	SampleRate  float64
}

// Transform computes the DFT of x over N = round(sampleRate*duration) points
// and returns frequency axis and bins reordered so zero frequency is centred.
//
// The transform is unscaled: a full-scale sine whose frequency falls on a bin
// produces two peaks of height N/2.
func Transform(x []float64, sampleRate int, duration float64, opts ...Option) (Result, error) {
	if sampleRate <= 0 || !(duration > 0) || math.IsInf(duration, 0) {
		return Result{}, fmt.Errorf("spectrum: sample rate %d and duration %g must be > 0: %w",
			sampleRate, duration, core.ErrInvalidParameter)
	}

	n := int(math.Round(float64(sampleRate) * duration))
	if n <= 0 {
		return Result{}, fmt.Errorf("spectrum: transform length %d must be > 0: %w", n, core.ErrInvalidParameter)
	}

	if len(x) == 0 {
		return Result{}, fmt.Errorf("spectrum: empty signal: %w", core.ErrInvalidInput)
	}

	cfg := config{policy: LengthStrict, win: window.TypeRectangular}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	frame, err := fitFrame(x, n, cfg.policy)
	if err != nil {
		return Result{}, err
	}

	window.Apply(cfg.win, frame, cfg.winOpts...)

	fs := float64(sampleRate)

	return Result{
		Frequencies: Shift(Frequencies(n, fs)),
		Bins:        Shift(fft.FFTReal(frame)),
		SampleRate:  fs,
	}, nil
}

// fitFrame returns a private copy of x with exactly n samples.
func fitFrame(x []float64, n int, policy LengthPolicy) ([]float64, error) {
	if len(x) != n && policy == LengthStrict {
		return nil, fmt.Errorf("spectrum: signal has %d samples, frame needs %d: %w",
			len(x), n, core.ErrInvalidInput)
	}

	frame := make([]float64, n)
	copy(frame, x)

	return frame, nil
}

// Frequencies returns the bin centre frequencies of an n-point DFT in the
// natural (unshifted) order: 0, df, ..., then the negative frequencies.
func Frequencies(n int, sampleRate float64) []float64 {
	if n <= 0 {
		return nil
	}

	out := make([]float64, n)
	df := sampleRate / float64(n)
	half := (n - 1) / 2

	for k := range out {
		if k <= half {
			out[k] = float64(k) * df
		} else {
			out[k] = float64(k-n) * df
		}
	}

	return out
}

// Shift rotates in right by floor(n/2) so that element 0 moves to the centre.
func Shift[T any](in []T) []T {
	n := len(in)
	out := make([]T, n)
	h := n / 2

	for i, v := range in {
		out[(i+h)%n] = v
	}

	return out
}

// InverseShift undoes [Shift].
func InverseShift[T any](in []T) []T {
	n := len(in)
	out := make([]T, n)
	h := n / 2

	for i, v := range in {
		out[(i-h+n)%n] = v
	}

	return out
}

// Energy returns sum(|X[k]|^2) / N, which equals the time-domain energy
// sum(x[n]^2) of the signal that produced the bins.
func Energy(bins []complex128) float64 {
	if len(bins) == 0 {
		return 0
	}

	return floats.Sum(Power(bins)) / float64(len(bins))
}

// Len returns the number of bins.
func (r Result) Len() int { return len(r.Bins) }

// Resolution returns the bin spacing in Hz.
func (r Result) Resolution() float64 {
	if len(r.Bins) == 0 {
		return 0
	}

	return r.SampleRate / float64(len(r.Bins))
}

// Magnitude returns |X| for every bin, in centred order.
func (r Result) Magnitude() []float64 {
	return Magnitude(r.Bins)
}

// Dominant returns the frequency and magnitude of the strongest bin at or
// above 0 Hz. For a real input the negative half mirrors the positive one.
func (r Result) Dominant() (freq, magnitude float64) {
	if len(r.Bins) == 0 {
		return 0, 0
	}

	dc := len(r.Bins) / 2
	mags := Magnitude(r.Bins[dc:])
	idx := floats.MaxIdx(mags)

	return r.Frequencies[dc+idx], mags[idx]
}

// BinNear returns the index of the bin whose frequency is closest to freq.
func (r Result) BinNear(freq float64) int {
	n := len(r.Bins)
	if n == 0 {
		return -1
	}

	idx := n/2 + int(math.Round(freq/r.Resolution()))

	return max(0, min(n-1, idx))
}

// PeakNear returns the largest bin magnitude within ±span Hz of freq.
func (r Result) PeakNear(freq, span float64) float64 {
	peak := 0.0
	for i, f := range r.Frequencies {
		if math.Abs(f-freq) <= span {
			peak = math.Max(peak, cmplxAbs(r.Bins[i]))
		}
	}

	return peak
}

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}
