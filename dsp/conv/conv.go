package conv

import (
	"fmt"

	"github.com/cwbudde/algo-lowpass/dsp/core"
	vecmath "github.com/cwbudde/algo-vecmath"
)

// Errors returned by convolution functions.
var (
	ErrEmptyInput  = fmt.Errorf("conv: empty input: %w", core.ErrInvalidInput)
	ErrEmptyKernel = fmt.Errorf("conv: empty kernel: %w", core.ErrInvalidParameter)
)

// DirectThreshold is the kernel length at and above which Convolve switches
// from direct to overlap-add convolution.
const DirectThreshold = 64

// Direct performs time-domain linear convolution of a and b.
// Returns a new slice of length len(a) + len(b) - 1.
func Direct(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}

	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	result := make([]float64, len(a)+len(b)-1)
	DirectTo(result, a, b)

	return result, nil
}

// DirectTo convolves a and b into dst, which must have length
// len(a) + len(b) - 1.
func DirectTo(dst, a, b []float64) {
	clear(dst)

	m := len(b)
	if m < 4 {
		for i, x := range a {
			for j, h := range b {
				dst[i+j] += x * h
			}
		}

		return
	}

	// Accumulate one scaled copy of the kernel per input sample.
	scaled := make([]float64, m)
	for i, x := range a {
		vecmath.ScaleBlock(scaled, b, x)
		vecmath.AddBlockInPlace(dst[i:i+m], scaled)
	}
}

// Convolve performs linear convolution, using Direct for kernels shorter
// than DirectThreshold and OverlapAdd otherwise. The shorter input is
// treated as the kernel.
func Convolve(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}

	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	if len(b) > len(a) {
		a, b = b, a
	}

	if len(b) < DirectThreshold {
		return Direct(a, b)
	}

	return OverlapAddConvolve(a, b)
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
