package iir

import (
	"fmt"
	"slices"

	"github.com/cwbudde/algo-lowpass/dsp/core"
	"github.com/cwbudde/algo-lowpass/dsp/filter/biquad"
)

// FiltFilt applies c forward and then backward over x, which cancels the
// phase response and squares the magnitude response.
//
// Both ends of x are extended by an odd-symmetric reflection and the delay
// line is seeded with SteadyState scaled to the first sample of each pass,
// which suppresses start-up transients at the edges. x must be longer than
// the pad length.
func FiltFilt(c Coefficients, x []float64, opts ...Option) ([]float64, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}

	cfg := applyOptions(opts)

	padLen, err := cfg.resolvePadLen(max(len(c.A), len(c.B)))
	if err != nil {
		return nil, err
	}

	if err := checkPadding(len(x), padLen); err != nil {
		return nil, err
	}

	b, a := c.normalized()
	z := make([]float64, len(b)-1)

	var zi []float64
	if padLen > 0 {
		zi, err = SteadyState(c)
		if err != nil {
			return nil, err
		}
	}

	pass := func(buf []float64) {
		seed(z, zi, buf[0])
		runDF2T(b, a, z, buf, buf)
	}

	ext := oddExtension(x, padLen)
	pass(ext)
	slices.Reverse(ext)
	pass(ext)
	slices.Reverse(ext)

	y := ext[padLen : padLen+len(x)]
	if !core.AllFinite(y) {
		return nil, fmt.Errorf("iir: output diverged: %w", core.ErrNumericInstability)
	}

	return y, nil
}

// filtFiltSections is FiltFilt for a cascade of second-order sections with
// an input gain. Each section is seeded with its own steady state, scaled by
// the DC level that reaches it.
func filtFiltSections(secs []biquad.Coefficients, gain float64, x []float64, padLen int) ([]float64, error) {
	if err := checkPadding(len(x), padLen); err != nil {
		return nil, err
	}

	chain := biquad.NewChain(secs, biquad.WithGain(gain))

	var zi [][2]float64
	if padLen > 0 {
		zi = make([][2]float64, len(secs))
		level := gain

		for i, s := range secs {
			tf := sectionTransferFunction(s)

			ss, err := SteadyState(tf)
			if err != nil {
				return nil, err
			}

			zi[i] = [2]float64{ss[0] * level, ss[1] * level}
			level *= tf.DCGain()
		}
	}

	pass := func(buf []float64) {
		chain.Reset()

		if zi != nil {
			state := make([][2]float64, len(zi))
			for i, s := range zi {
				state[i] = [2]float64{s[0] * buf[0], s[1] * buf[0]}
			}

			chain.SetState(state)
		}

		chain.ProcessBlock(buf)
	}

	ext := oddExtension(x, padLen)
	pass(ext)
	slices.Reverse(ext)
	pass(ext)
	slices.Reverse(ext)

	y := ext[padLen : padLen+len(x)]
	if !core.AllFinite(y) {
		return nil, fmt.Errorf("iir: output diverged: %w", core.ErrNumericInstability)
	}

	return y, nil
}

func checkPadding(n, padLen int) error {
	switch {
	case n == 0:
		return fmt.Errorf("iir: empty signal: %w", core.ErrInvalidInput)
	case n <= padLen:
		return fmt.Errorf("iir: signal of %d samples must be longer than the pad length %d: %w",
			n, padLen, core.ErrInvalidInput)
	}

	return nil
}

// oddExtension returns x with padLen samples reflected through each end
// point:
//
//	left[i]  = 2*x[0]   - x[padLen-i]
//	right[i] = 2*x[n-1] - x[n-2-i]
func oddExtension(x []float64, padLen int) []float64 {
	n := len(x)
	ext := make([]float64, n+2*padLen)

	for i := range padLen {
		ext[i] = 2*x[0] - x[padLen-i]
		ext[padLen+n+i] = 2*x[n-1] - x[n-2-i]
	}

	copy(ext[padLen:], x)

	return ext
}

func seed(z, zi []float64, level float64) {
	if zi == nil {
		clear(z)
		return
	}

	for i, v := range zi {
		z[i] = v * level
	}
}

func sectionTransferFunction(s biquad.Coefficients) Coefficients {
	return Coefficients{
		B: []float64{s.B0, s.B1, s.B2},
		A: []float64{1, s.A1, s.A2},
	}
}
