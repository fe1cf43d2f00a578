package spectrum

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-lowpass/dsp/core"
	"github.com/cwbudde/algo-lowpass/dsp/window"
	"github.com/cwbudde/algo-lowpass/internal/testutil"
)

func TestFrequenciesLayout(t *testing.T) {
	testutil.RequireSliceNearlyEqual(t, Frequencies(4, 8), []float64{0, 2, -4, -2}, 0)
	testutil.RequireSliceNearlyEqual(t, Frequencies(5, 5), []float64{0, 1, 2, -2, -1}, 1e-15)
	if Frequencies(0, 8) != nil {
		t.Fatal("Frequencies(0) must be nil")
	}
}

func TestShiftCentresZero(t *testing.T) {
	for _, n := range []int{1, 2, 7, 8, 400} {
		shifted := Shift(Frequencies(n, 80))
		if shifted[n/2] != 0 {
			t.Fatalf("n=%d: zero bin at %d holds %v", n, n/2, shifted[n/2])
		}
		for i := 1; i < n; i++ {
			if !(shifted[i] > shifted[i-1]) {
				t.Fatalf("n=%d: frequencies not ascending at %d", n, i)
			}
		}

		back := InverseShift(shifted)
		testutil.RequireSliceNearlyEqual(t, back, Frequencies(n, 80), 0)
	}
}

func TestTransformEvenLengthRange(t *testing.T) {
	x := testutil.Sine(1, 80, 1, 0, 400)
	res, err := Transform(x, 80, 5)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if res.Len() != 400 {
		t.Fatalf("len=%d, want 400", res.Len())
	}
	if res.Frequencies[0] != -40 {
		t.Fatalf("first frequency = %v, want -40", res.Frequencies[0])
	}
	if math.Abs(res.Frequencies[399]-39.8) > 1e-12 {
		t.Fatalf("last frequency = %v, want 39.8", res.Frequencies[399])
	}
	if res.Resolution() != 0.2 {
		t.Fatalf("resolution = %v, want 0.2", res.Resolution())
	}
}

func TestTransformSinePeaks(t *testing.T) {
	// 3 Hz over 5 s is a whole number of periods, so all energy lands in the
	// ±3 Hz bins with height N/2.
	x := testutil.Sine(3, 80, 1, 0, 400)
	res, err := Transform(x, 80, 5)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}

	freq, mag := res.Dominant()
	if math.Abs(freq-3) > 1e-12 {
		t.Fatalf("dominant frequency = %v, want 3", freq)
	}
	if math.Abs(mag-200) > 1e-9 {
		t.Fatalf("dominant magnitude = %v, want 200", mag)
	}

	neg := cmplx.Abs(res.Bins[res.BinNear(-3)])
	if math.Abs(neg-200) > 1e-9 {
		t.Fatalf("-3 Hz magnitude = %v, want 200", neg)
	}
}

func TestTransformOddLength(t *testing.T) {
	// 7 Hz * 3 s = 21 samples: exercises a non-power-of-two, odd transform.
	x := testutil.Sine(2, 7, 1, 0, 21)
	res, err := Transform(x, 7, 3)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if res.Frequencies[10] != 0 {
		t.Fatalf("centre frequency = %v, want 0", res.Frequencies[10])
	}
	if math.Abs(res.Frequencies[0]+10.0/3) > 1e-12 {
		t.Fatalf("first frequency = %v, want -10/3", res.Frequencies[0])
	}

	freq, _ := res.Dominant()
	if math.Abs(freq-2) > 1e-12 {
		t.Fatalf("dominant = %v, want 2", freq)
	}
}

func TestTransformMatchesNaiveDFT(t *testing.T) {
	x := testutil.DeterministicNoise(3, 1, 30)
	res, err := Transform(x, 10, 3)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}

	want := make([]complex128, len(x))
	for k := range want {
		var sum complex128
		for n, v := range x {
			sum += complex(v, 0) * cmplx.Exp(complex(0, -2*math.Pi*float64(k*n)/float64(len(x))))
		}
		want[k] = sum
	}

	testutil.RequireComplexNearlyEqual(t, res.Bins, Shift(want), 1e-9)
}

func TestTransformLinearity(t *testing.T) {
	const n = 400
	x := testutil.DeterministicNoise(1, 1, n)
	y := testutil.DeterministicNoise(2, 1, n)
	alpha, beta := 2.5, -0.75

	mix := make([]float64, n)
	for i := range mix {
		mix[i] = alpha*x[i] + beta*y[i]
	}

	rx, err := Transform(x, 80, 5)
	if err != nil {
		t.Fatal(err)
	}
	ry, err := Transform(y, 80, 5)
	if err != nil {
		t.Fatal(err)
	}
	rm, err := Transform(mix, 80, 5)
	if err != nil {
		t.Fatal(err)
	}

	scale := floats.Max(rm.Magnitude())
	for k := range rm.Bins {
		want := complex(alpha, 0)*rx.Bins[k] + complex(beta, 0)*ry.Bins[k]
		if cmplx.Abs(rm.Bins[k]-want) > 1e-9*scale {
			t.Fatalf("bin %d: got %v, want %v", k, rm.Bins[k], want)
		}
	}
}

func TestTransformParseval(t *testing.T) {
	for _, n := range []int{64, 400, 243} {
		x := testutil.DeterministicNoise(int64(n), 1, n)
		res, err := Transform(x, n, 1)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}

		timeEnergy := floats.Dot(x, x)
		freqEnergy := Energy(res.Bins)
		if !core.NearlyEqual(timeEnergy, freqEnergy, 1e-9) {
			t.Fatalf("n=%d: time energy %v, spectral energy %v", n, timeEnergy, freqEnergy)
		}
	}
}

func TestTransformInvalidParameters(t *testing.T) {
	x := []float64{1, 2, 3}
	tests := []struct {
		name     string
		rate     int
		duration float64
	}{
		{"zero rate", 0, 1},
		{"negative rate", -8, 1},
		{"zero duration", 8, 0},
		{"nan duration", 8, math.NaN()},
		{"rounds to zero", 3, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Transform(x, tt.rate, tt.duration)
			if !errors.Is(err, core.ErrInvalidParameter) {
				t.Fatalf("error = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestTransformLengthPolicy(t *testing.T) {
	if _, err := Transform(nil, 80, 5); !errors.Is(err, core.ErrInvalidInput) {
		t.Fatalf("empty signal error = %v, want ErrInvalidInput", err)
	}

	short := testutil.Sine(1, 80, 1, 0, 100)
	if _, err := Transform(short, 80, 5); !errors.Is(err, core.ErrInvalidInput) {
		t.Fatalf("strict mismatch error = %v, want ErrInvalidInput", err)
	}

	res, err := Transform(short, 80, 5, WithLengthPolicy(LengthFit))
	if err != nil {
		t.Fatalf("fit policy error = %v", err)
	}
	if res.Len() != 400 {
		t.Fatalf("fit length = %d, want 400", res.Len())
	}

	long := testutil.Sine(1, 80, 1, 0, 800)
	res, err = Transform(long, 80, 5, WithLengthPolicy(LengthFit))
	if err != nil {
		t.Fatalf("fit policy error = %v", err)
	}
	full, _ := Transform(long[:400], 80, 5)
	testutil.RequireComplexNearlyEqual(t, res.Bins, full.Bins, 1e-12)
}

func TestTransformDoesNotMutateInput(t *testing.T) {
	x := testutil.DC(1, 16)
	if _, err := Transform(x, 16, 1, WithWindow(window.TypeHann)); err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, x, testutil.DC(1, 16), 0)
}

func TestWindowReducesLeakage(t *testing.T) {
	// 10.1 Hz is between bins; far from the tone a Hann taper suppresses the
	// rectangular window's sidelobes.
	x := testutil.Sine(10.1, 80, 1, 0, 400)

	rect, err := Transform(x, 80, 5)
	if err != nil {
		t.Fatal(err)
	}
	hann, err := Transform(x, 80, 5, WithWindow(window.TypeHann, window.WithPeriodic()))
	if err != nil {
		t.Fatal(err)
	}

	far := rect.BinNear(30)
	if cmplx.Abs(hann.Bins[far]) >= cmplx.Abs(rect.Bins[far]) {
		t.Fatalf("hann leakage %v not below rectangular %v",
			cmplx.Abs(hann.Bins[far]), cmplx.Abs(rect.Bins[far]))
	}
}

func TestResultHelpers(t *testing.T) {
	x := testutil.Sine(4, 40, 1, 0, 40)
	res, err := Transform(x, 40, 1)
	if err != nil {
		t.Fatal(err)
	}
	if idx := res.BinNear(4.2); res.Frequencies[idx] != 4 {
		t.Fatalf("BinNear(4.2) -> %v Hz, want 4", res.Frequencies[idx])
	}
	if idx := res.BinNear(1000); idx != res.Len()-1 {
		t.Fatalf("BinNear clamps to %d, want %d", idx, res.Len()-1)
	}
	if peak := res.PeakNear(4, 0.5); math.Abs(peak-20) > 1e-9 {
		t.Fatalf("PeakNear(4)=%v, want 20", peak)
	}
	if empty := (Result{}); empty.BinNear(1) != -1 || empty.Resolution() != 0 {
		t.Fatal("empty result helpers must be inert")
	}
}
