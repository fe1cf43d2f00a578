package conv

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-lowpass/dsp/core"
	"github.com/cwbudde/algo-lowpass/internal/testutil"
)

func TestDirect(t *testing.T) {
	tests := []struct {
		name     string
		a        []float64
		b        []float64
		expected []float64
	}{
		{
			name:     "simple 3x3",
			a:        []float64{1, 2, 3},
			b:        []float64{1, 1, 1},
			expected: []float64{1, 3, 6, 5, 3},
		},
		{
			name:     "impulse",
			a:        []float64{1, 2, 3, 4, 5},
			b:        []float64{1},
			expected: []float64{1, 2, 3, 4, 5},
		},
		{
			name:     "delayed impulse",
			a:        []float64{1, 2, 3, 4, 5},
			b:        []float64{0, 0, 1},
			expected: []float64{0, 0, 1, 2, 3, 4, 5},
		},
		{
			name:     "symmetric",
			a:        []float64{1, 2, 1},
			b:        []float64{1, 2, 1},
			expected: []float64{1, 4, 6, 4, 1},
		},
		{
			name:     "vector path",
			a:        []float64{1, -1},
			b:        []float64{1, 2, 3, 4, 5},
			expected: []float64{1, 1, 1, 1, 1, -5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Direct(tt.a, tt.b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			testutil.RequireSliceNearlyEqual(t, result, tt.expected, 1e-12)
		})
	}
}

func TestDirectErrors(t *testing.T) {
	_, err := Direct(nil, []float64{1, 2})
	if !errors.Is(err, ErrEmptyInput) || !errors.Is(err, core.ErrInvalidInput) {
		t.Errorf("expected ErrEmptyInput wrapping ErrInvalidInput, got %v", err)
	}

	_, err = Direct([]float64{1, 2}, nil)
	if !errors.Is(err, ErrEmptyKernel) || !errors.Is(err, core.ErrInvalidParameter) {
		t.Errorf("expected ErrEmptyKernel wrapping ErrInvalidParameter, got %v", err)
	}
}

func TestOverlapAddMatchesDirect(t *testing.T) {
	signal := testutil.DeterministicNoise(3, 1, 1000)

	for _, kernelLen := range []int{1, 7, 64, 129, 300} {
		kernel := testutil.DeterministicNoise(int64(kernelLen), 1, kernelLen)

		want, err := Direct(signal, kernel)
		if err != nil {
			t.Fatal(err)
		}

		for _, blockSize := range []int{0, 100, 512} {
			oa, err := NewOverlapAdd(kernel, blockSize)
			if err != nil {
				t.Fatalf("NewOverlapAdd(%d, %d): %v", kernelLen, blockSize, err)
			}

			got, err := oa.Process(signal)
			if err != nil {
				t.Fatal(err)
			}

			testutil.RequireSliceNearlyEqual(t, got, want, 1e-9)
		}
	}
}

func TestOverlapAddSizes(t *testing.T) {
	oa, err := NewOverlapAdd(make([]float64, 100), 0)
	if err != nil {
		t.Fatal(err)
	}

	if oa.BlockSize() != 256 {
		t.Errorf("BlockSize = %d, want 256", oa.BlockSize())
	}

	if oa.FFTSize() != 512 {
		t.Errorf("FFTSize = %d, want 512", oa.FFTSize())
	}

	if oa.KernelLen() != 100 {
		t.Errorf("KernelLen = %d, want 100", oa.KernelLen())
	}

	if _, err := NewOverlapAdd(nil, 0); !errors.Is(err, ErrEmptyKernel) {
		t.Errorf("empty kernel: got %v", err)
	}

	if _, err := NewOverlapAdd([]float64{1}, -1); !errors.Is(err, core.ErrInvalidParameter) {
		t.Errorf("negative block size: got %v", err)
	}

	if _, err := oa.Process(nil); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("empty input: got %v", err)
	}
}

func TestConvolveCommutes(t *testing.T) {
	a := testutil.DeterministicNoise(1, 1, 200)
	b := testutil.DeterministicNoise(2, 1, 90)

	ab, err := Convolve(a, b)
	if err != nil {
		t.Fatal(err)
	}

	ba, err := Convolve(b, a)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, ab, ba, 1e-9)
}

func TestCorrelateLag(t *testing.T) {
	ref := testutil.DeterministicNoise(9, 1, 256)

	for _, delay := range []int{0, 3, 17} {
		delayed := make([]float64, len(ref))
		copy(delayed[delay:], ref)

		corr, err := Correlate(delayed, ref)
		if err != nil {
			t.Fatal(err)
		}

		if len(corr) != 2*len(ref)-1 {
			t.Fatalf("len = %d, want %d", len(corr), 2*len(ref)-1)
		}

		if lag := PeakLag(corr, len(ref)); lag != delay {
			t.Errorf("delay %d: PeakLag = %d", delay, lag)
		}
	}
}

func TestCorrelateNormalized(t *testing.T) {
	x := testutil.Sine(5, 100, 1, 0, 100)

	corr, err := CorrelateNormalized(x, x)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(corr[len(x)-1]-1) > 1e-12 {
		t.Errorf("zero-lag auto-correlation = %v, want 1", corr[len(x)-1])
	}

	for i, v := range corr {
		if v > 1+1e-12 || v < -1-1e-12 {
			t.Fatalf("corr[%d] = %v outside [-1, 1]", i, v)
		}
	}
}

func TestFindPeak(t *testing.T) {
	idx, val := FindPeak([]float64{0, 2, 5, -7, 1})
	if idx != 2 || val != 5 {
		t.Errorf("FindPeak = (%d, %v), want (2, 5)", idx, val)
	}

	if idx, _ := FindPeak(nil); idx != -1 {
		t.Errorf("FindPeak(nil) index = %d, want -1", idx)
	}

	if lag := LagFromIndex(4, 3); lag != 2 {
		t.Errorf("LagFromIndex(4, 3) = %d, want 2", lag)
	}
}
