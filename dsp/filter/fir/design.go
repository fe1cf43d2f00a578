package fir

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-lowpass/dsp/core"
	"github.com/cwbudde/algo-lowpass/dsp/window"
	"gonum.org/v1/gonum/floats"
)

// Design defaults: a 5 Hz transition band and 20 dB stop-band attenuation.
const (
	DefaultTransitionWidthHz = 5.0
	DefaultRippleDB          = 20.0
)

// KaiserBeta returns Kaiser's empirical window shape for a stop-band
// attenuation in dB.
func KaiserBeta(attenuationDB float64) float64 {
	a := attenuationDB

	switch {
	case a > 50:
		return 0.1102 * (a - 8.7)
	case a > 21:
		return 0.5842*math.Pow(a-21, 0.4) + 0.07886*(a-21)
	default:
		return 0
	}
}

// KaiserOrder returns the tap count and β needed for rippleDB of stop-band
// attenuation across a transition of width, given as a fraction of the
// Nyquist rate. The count is rounded up to odd so the filter has an integer
// group delay.
func KaiserOrder(rippleDB, width float64) (numTaps int, beta float64, err error) {
	if !core.IsFinite(rippleDB) || rippleDB < 8 {
		return 0, 0, fmt.Errorf("fir: ripple must be >= 8 dB: %g: %w", rippleDB, core.ErrInvalidParameter)
	}

	if !core.IsFinite(width) || width <= 0 {
		return 0, 0, fmt.Errorf("fir: transition width must be > 0: %g: %w", width, core.ErrInvalidParameter)
	}

	n := int(math.Ceil((rippleDB-7.95)/2.285/(math.Pi*width) + 1))
	if n%2 == 0 {
		n++
	}

	return n, KaiserBeta(rippleDB), nil
}

// WindowedSinc returns numTaps low-pass taps with cutoff given as a fraction
// of the Nyquist rate, tapered by a symmetric Kaiser window of shape beta
// and scaled so the taps sum to 1.
//
//	h[m] = cutoff * sinc(cutoff * (m - (N-1)/2)) * w[m]
func WindowedSinc(numTaps int, cutoff, beta float64) ([]float64, error) {
	if numTaps <= 0 {
		return nil, fmt.Errorf("fir: tap count must be > 0: %d: %w", numTaps, core.ErrInvalidParameter)
	}

	if !core.IsFinite(cutoff) || cutoff <= 0 || cutoff >= 1 {
		return nil, fmt.Errorf("fir: normalized cutoff must be in (0, 1): %g: %w", cutoff, core.ErrInvalidParameter)
	}

	taps, err := window.Kaiser(numTaps, beta)
	if err != nil {
		return nil, err
	}

	alpha := float64(numTaps-1) / 2
	for m := range taps {
		taps[m] *= cutoff * sinc(cutoff*(float64(m)-alpha))
	}

	sum := floats.Sum(taps)
	if sum == 0 || !core.IsFinite(sum) {
		return nil, fmt.Errorf("fir: taps sum to %g: %w", sum, core.ErrNumericInstability)
	}

	floats.Scale(1/sum, taps)

	return taps, nil
}

// Design is a windowed-sinc low-pass ready to apply.
type Design struct {
	Taps   []float64
	Length int
	Beta   float64

	CutoffHz          float64
	NyquistHz         float64
	TransitionWidthHz float64
	RippleDB          float64
}

// NewDesign designs a low-pass whose transition band is centred on cutoffHz,
// for a signal with the given Nyquist rate.
func NewDesign(nyquistHz, cutoffHz float64, opts ...Option) (Design, error) {
	switch {
	case !core.IsFinite(nyquistHz) || nyquistHz <= 0:
		return Design{}, fmt.Errorf("fir: nyquist rate must be > 0: %g: %w", nyquistHz, core.ErrInvalidParameter)
	case !core.IsFinite(cutoffHz) || cutoffHz <= 0:
		return Design{}, fmt.Errorf("fir: cutoff must be > 0: %g: %w", cutoffHz, core.ErrInvalidParameter)
	case cutoffHz >= nyquistHz:
		return Design{}, fmt.Errorf("fir: cutoff %g Hz must be below Nyquist %g Hz: %w",
			cutoffHz, nyquistHz, core.ErrInvalidParameter)
	}

	cfg := applyOptions(opts)

	numTaps, beta, err := KaiserOrder(cfg.rippleDB, cfg.transitionHz/nyquistHz)
	if err != nil {
		return Design{}, err
	}

	taps, err := WindowedSinc(numTaps, cutoffHz/nyquistHz, beta)
	if err != nil {
		return Design{}, err
	}

	return Design{
		Taps:              taps,
		Length:            numTaps,
		Beta:              beta,
		CutoffHz:          cutoffHz,
		NyquistHz:         nyquistHz,
		TransitionWidthHz: cfg.transitionHz,
		RippleDB:          cfg.rippleDB,
	}, nil
}

// GroupDelay returns the constant delay (Length-1)/2 in samples.
func (d Design) GroupDelay() float64 {
	return float64(d.Length-1) / 2
}

// Filter returns a direct-form runtime for the taps.
func (d Design) Filter() *Filter {
	return New(d.Taps)
}

// MagnitudeDB returns the design's magnitude response at freqHz.
func (d Design) MagnitudeDB(freqHz float64) float64 {
	return d.Filter().MagnitudeDB(freqHz, 2*d.NyquistHz)
}

// Apply filters x with the designed taps. See the package-level Apply.
func (d Design) Apply(x []float64, opts ...Option) ([]float64, error) {
	return apply(d.Taps, x, applyOptions(opts))
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}

	px := math.Pi * x

	return math.Sin(px) / px
}
