package conv

import (
	"slices"

	"gonum.org/v1/gonum/floats"
)

// Correlate computes the full cross-correlation of a and b:
//
//	c[k] = sum_n a[n+lag] * b[n],  lag = k - (len(b) - 1)
//
// The result has length len(a) + len(b) - 1, with lag 0 at index len(b)-1.
func Correlate(a, b []float64) ([]float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptyInput
	}

	reversed := slices.Clone(b)
	slices.Reverse(reversed)

	return Convolve(a, reversed)
}

// CorrelateNormalized is Correlate divided by the product of the L2 norms of
// a and b, so values fall in [-1, 1]. All-zero inputs are returned
// unnormalized.
func CorrelateNormalized(a, b []float64) ([]float64, error) {
	corr, err := Correlate(a, b)
	if err != nil {
		return nil, err
	}

	norm := floats.Norm(a, 2) * floats.Norm(b, 2)
	if norm == 0 {
		return corr, nil
	}

	floats.Scale(1/norm, corr)

	return corr, nil
}

// FindPeak returns the index and value of the largest element of corr, or
// -1 for an empty slice.
func FindPeak(corr []float64) (index int, value float64) {
	if len(corr) == 0 {
		return -1, 0
	}

	index = floats.MaxIdx(corr)

	return index, corr[index]
}

// LagFromIndex converts a correlation index to a lag, given the length of
// the second correlated signal.
func LagFromIndex(index, lenB int) int {
	return index - (lenB - 1)
}

// PeakLag returns the lag of the correlation maximum.
func PeakLag(corr []float64, lenB int) int {
	idx, _ := FindPeak(corr)
	return LagFromIndex(idx, lenB)
}
