package iir

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-lowpass/dsp/core"
	"github.com/cwbudde/algo-lowpass/dsp/filter/biquad"
)

// Design returns the transfer function of a Butterworth low-pass with -3 dB
// at cutoffHz. The order defaults to 4 (five B and five A coefficients).
func Design(cutoffHz, sampleRate float64, opts ...Option) (Coefficients, error) {
	cfg := applyOptions(opts)

	zpk, err := Butterworth(cutoffHz, sampleRate, cfg.order)
	if err != nil {
		return Coefficients{}, err
	}

	return realize(zpk, cutoffHz, sampleRate)
}

// dcGainTolerance bounds how far the expanded polynomials may drift from the
// unity DC gain of the factored design.
const dcGainTolerance = 1e-2

// realize expands zpk into direct form and rejects expansions that rounding
// has pushed unstable. Clustered poles near z = 1 (cutoffs far below the
// sample rate) lose precision here even though the factored form is fine.
func realize(zpk ZPK, cutoffHz, sampleRate float64) (Coefficients, error) {
	c := zpk.TransferFunction()

	switch {
	case !core.AllFinite(c.B) || !core.AllFinite(c.A):
		return Coefficients{}, fmt.Errorf("iir: non-finite coefficients for cutoff %g Hz at %g Hz: %w",
			cutoffHz, sampleRate, core.ErrNumericInstability)
	case !c.IsStable():
		return Coefficients{}, fmt.Errorf("iir: direct form for cutoff %g Hz at %g Hz is unstable, use WithSections: %w",
			cutoffHz, sampleRate, core.ErrNumericInstability)
	case math.Abs(c.DCGain()-1) > dcGainTolerance:
		return Coefficients{}, fmt.Errorf("iir: direct form for cutoff %g Hz at %g Hz has DC gain %g, use WithSections: %w",
			cutoffHz, sampleRate, c.DCGain(), core.ErrNumericInstability)
	}

	return c, nil
}

// Lowpass designs a Butterworth low-pass and applies it to x, returning a new
// slice of the same length.
//
// By default the filter runs once, causally, as a single recursion.
// WithZeroPhase runs it forward and backward; WithSections runs it as a
// biquad cascade.
func Lowpass(x []float64, cutoffHz, sampleRate float64, opts ...Option) ([]float64, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("iir: empty signal: %w", core.ErrInvalidInput)
	}

	cfg := applyOptions(opts)

	zpk, err := Butterworth(cutoffHz, sampleRate, cfg.order)
	if err != nil {
		return nil, err
	}

	if cfg.sections {
		return lowpassSections(zpk, x, cfg)
	}

	c, err := realize(zpk, cutoffHz, sampleRate)
	if err != nil {
		return nil, err
	}

	if cfg.zeroPhase {
		return FiltFilt(c, x, opts...)
	}

	return Filter(c, x)
}

func lowpassSections(zpk ZPK, x []float64, cfg config) ([]float64, error) {
	secs, gain := zpk.Sections()

	chain := biquad.NewChain(secs, biquad.WithGain(gain))
	if !chain.IsStable() {
		return nil, fmt.Errorf("iir: second-order sections are unstable: %w", core.ErrNumericInstability)
	}

	if cfg.zeroPhase {
		padLen, err := cfg.resolvePadLen(zpk.Order() + 1)
		if err != nil {
			return nil, err
		}

		return filtFiltSections(secs, gain, x, padLen)
	}

	y := make([]float64, len(x))
	copy(y, x)
	chain.ProcessBlock(y)

	if !core.AllFinite(y) {
		return nil, fmt.Errorf("iir: output diverged: %w", core.ErrNumericInstability)
	}

	return y, nil
}
