package iir

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-lowpass/dsp/core"
	"gonum.org/v1/gonum/mat"
)

// Filter applies c causally to x from a zero initial state and returns a new
// slice of the same length. x is not modified.
func Filter(c Coefficients, x []float64) ([]float64, error) {
	y, _, err := FilterWithState(c, x, nil)
	return y, err
}

// FilterWithState applies c to x starting from the delay-line state zi and
// returns the output together with the final state. A nil zi means rest.
// The state has Order() entries and uses the Direct Form II transposed
// layout of the normalized coefficients, so the final state of one call can
// seed the next.
func FilterWithState(c Coefficients, x, zi []float64) (y, zf []float64, err error) {
	if err := c.validate(); err != nil {
		return nil, nil, err
	}

	if len(x) == 0 {
		return nil, nil, fmt.Errorf("iir: empty signal: %w", core.ErrInvalidInput)
	}

	b, a := c.normalized()

	zf = make([]float64, len(b)-1)
	if zi != nil {
		if len(zi) != len(zf) {
			return nil, nil, fmt.Errorf("iir: initial state has %d entries, want %d: %w",
				len(zi), len(zf), core.ErrInvalidParameter)
		}

		copy(zf, zi)
	}

	y = make([]float64, len(x))
	runDF2T(b, a, zf, x, y)

	if !core.AllFinite(y) {
		return nil, nil, fmt.Errorf("iir: output diverged: %w", core.ErrNumericInstability)
	}

	return y, zf, nil
}

// runDF2T filters src into dst with normalized, equal-length b and a,
// updating z in place. dst and src may alias.
//
//	y    = b0*x + z0
//	z[j] = b[j+1]*x - a[j+1]*y + z[j+1]
func runDF2T(b, a, z, src, dst []float64) {
	m := len(z)
	if m == 0 {
		for i, x := range src {
			dst[i] = b[0] * x
		}

		return
	}

	for i, x := range src {
		y := b[0]*x + z[0]
		for j := 0; j < m-1; j++ {
			z[j] = b[j+1]*x - a[j+1]*y + z[j+1]
		}

		z[m-1] = b[m]*x - a[m]*y
		dst[i] = y
	}
}

// SteadyState returns the delay-line state of c after an infinitely long
// unit step, so that FilterWithState(c, x, zi*x[0]) starts without a
// transient when x begins at a constant level.
//
// It solves (I - C^T) zi = B[1:] - A[1:]*B[0], where C is the companion
// matrix of the normalized feedback polynomial.
func SteadyState(c Coefficients) ([]float64, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}

	b, a := c.normalized()

	m := len(b) - 1
	if m == 0 {
		return []float64{}, nil
	}

	lhs := mat.NewDense(m, m, nil)
	rhs := mat.NewVecDense(m, nil)

	for i := range m {
		lhs.Set(i, i, 1)
		lhs.Set(i, 0, lhs.At(i, 0)+a[i+1])

		if i+1 < m {
			lhs.Set(i, i+1, -1)
		}

		rhs.SetVec(i, b[i+1]-a[i+1]*b[0])
	}

	var zi mat.VecDense
	if err := zi.SolveVec(lhs, rhs); err != nil {
		// A finite condition number is a warning; the solution is still set.
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
			return nil, fmt.Errorf("iir: steady state: %v: %w", err, core.ErrNumericInstability)
		}
	}

	out := make([]float64, m)
	for i := range m {
		out[i] = zi.AtVec(i)
	}

	if !core.AllFinite(out) {
		return nil, fmt.Errorf("iir: steady state is not finite: %w", core.ErrNumericInstability)
	}

	return out, nil
}
