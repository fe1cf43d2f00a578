package iir

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-lowpass/dsp/core"
)

// Coefficients is a transfer function in z^-1:
//
//	H(z) = (B[0] + B[1]z^-1 + ...) / (A[0] + A[1]z^-1 + ...)
//
// Designs produced by this package have A[0] = 1. Filter and FiltFilt accept
// any non-zero A[0] and normalize by it.
type Coefficients struct {
	B []float64 // feedforward
	A []float64 // feedback
}

// Order returns the larger polynomial degree of B and A.
func (c Coefficients) Order() int {
	return max(len(c.B), len(c.A)) - 1
}

// Response evaluates H(e^{jw}) at freqHz for the given sample rate.
func (c Coefficients) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	return evalPoly(c.B, w) / evalPoly(c.A, w)
}

// MagnitudeDB returns 20*log10|H| at freqHz.
func (c Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return core.LinearToDB(cmplx.Abs(c.Response(freqHz, sampleRate)))
}

// Phase returns arg(H) in radians at freqHz, wrapped to (-pi, pi].
func (c Coefficients) Phase(freqHz, sampleRate float64) float64 {
	return cmplx.Phase(c.Response(freqHz, sampleRate))
}

// DCGain returns H(1) = sum(B)/sum(A).
func (c Coefficients) DCGain() float64 {
	var nb, na float64
	for _, v := range c.B {
		nb += v
	}

	for _, v := range c.A {
		na += v
	}

	return nb / na
}

// IsStable reports whether every root of A lies strictly inside the unit
// circle. It runs the Schur-Cohn step-down recursion on the normalized
// denominator, so it judges the polynomial that Filter actually runs.
func (c Coefficients) IsStable() bool {
	if len(c.A) == 0 || c.A[0] == 0 || !core.AllFinite(c.A) {
		return false
	}

	a := make([]float64, len(c.A))
	for i, v := range c.A {
		a[i] = v / c.A[0]
	}

	next := make([]float64, len(a))
	for m := len(a) - 1; m > 0; m-- {
		k := a[m]
		if !(math.Abs(k) < 1) {
			return false
		}

		scale := 1 - k*k
		for i := range m {
			next[i] = (a[i] - k*a[m-i]) / scale
		}

		a, next = next[:m], a
	}

	return true
}

func (c Coefficients) validate() error {
	switch {
	case len(c.B) == 0:
		return fmt.Errorf("iir: empty feedforward coefficients: %w", core.ErrInvalidParameter)
	case len(c.A) == 0 || c.A[0] == 0:
		return fmt.Errorf("iir: leading feedback coefficient must be non-zero: %w", core.ErrInvalidParameter)
	case !core.AllFinite(c.B) || !core.AllFinite(c.A):
		return fmt.Errorf("iir: non-finite coefficients: %w", core.ErrNumericInstability)
	}

	return nil
}

// normalized returns copies of B and A padded to a common length and divided
// by A[0]. The caller must have validated c.
func (c Coefficients) normalized() (b, a []float64) {
	n := max(len(c.B), len(c.A))
	b = make([]float64, n)
	a = make([]float64, n)

	a0 := c.A[0]
	for i, v := range c.B {
		b[i] = v / a0
	}

	for i, v := range c.A {
		a[i] = v / a0
	}

	return b, a
}

func evalPoly(p []float64, w float64) complex128 {
	var sum complex128
	for k, v := range p {
		sum += complex(v, 0) * cmplx.Exp(complex(0, -w*float64(k)))
	}

	return sum
}
