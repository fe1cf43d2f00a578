package window

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-lowpass/dsp/core"
)

func TestGenerateAllTypes(t *testing.T) {
	types := []Type{TypeRectangular, TypeHann, TypeHamming, TypeBlackman, TypeKaiser}

	for _, typ := range types {
		t.Run(typ.String(), func(t *testing.T) {
			w := Generate(typ, 65, WithBeta(6))
			if len(w) != 65 {
				t.Fatalf("len=%d, want 65", len(w))
			}

			for i, v := range w {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("coefficient[%d] invalid: %v", i, v)
				}
				if !core.NearlyEqual(v, w[len(w)-1-i], 1e-12) {
					t.Fatalf("window not symmetric at %d: %v != %v", i, v, w[len(w)-1-i])
				}
			}

			if !core.NearlyEqual(w[32], 1, 1e-12) {
				t.Fatalf("center = %v, want 1", w[32])
			}
		})
	}
}

func TestGenerateInvalidLength(t *testing.T) {
	if w := Generate(TypeHann, 0); w != nil {
		t.Fatalf("Generate(0) = %v, want nil", w)
	}
	if _, err := Kaiser(-3, 1); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("Kaiser(-3, 1) error = %v, want ErrInvalidParameter", err)
	}
}

func TestValidateBeta(t *testing.T) {
	for _, beta := range []float64{0, 0.5, 8.6} {
		if err := ValidateBeta(beta); err != nil {
			t.Errorf("ValidateBeta(%g) = %v, want nil", beta, err)
		}
	}

	for _, beta := range []float64{-0.1, math.NaN()} {
		if err := ValidateBeta(beta); !errors.Is(err, core.ErrInvalidParameter) {
			t.Errorf("ValidateBeta(%g) = %v, want ErrInvalidParameter", beta, err)
		}

		if _, err := Kaiser(16, beta); !errors.Is(err, core.ErrInvalidParameter) {
			t.Errorf("Kaiser(16, %g) = %v, want ErrInvalidParameter", beta, err)
		}
	}
}

func TestSingleSampleWindowIsUnity(t *testing.T) {
	for _, typ := range []Type{TypeHann, TypeBlackman, TypeKaiser} {
		w := Generate(typ, 1, WithBeta(8))
		if !core.NearlyEqual(w[0], 1, 1e-12) {
			t.Fatalf("%s: w[0]=%v, want 1", typ, w[0])
		}
	}
}

func TestKaiserZeroBetaIsRectangular(t *testing.T) {
	w, err := Kaiser(15, 0)
	if err != nil {
		t.Fatalf("Kaiser() error = %v", err)
	}
	for i, v := range w {
		if v != 1 {
			t.Fatalf("w[%d]=%v, want 1", i, v)
		}
	}
}

func TestKaiserEdgesMatchBesselRatio(t *testing.T) {
	beta := 5.0
	w, err := Kaiser(11, beta)
	if err != nil {
		t.Fatalf("Kaiser() error = %v", err)
	}

	want := 1 / BesselI0(beta)
	if !core.NearlyEqual(w[0], want, 1e-12) {
		t.Fatalf("edge=%v, want %v", w[0], want)
	}
}

func TestKaiserRejectsNegativeBeta(t *testing.T) {
	if _, err := Kaiser(8, -1); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("error = %v, want ErrInvalidParameter", err)
	}
	if _, err := Kaiser(0, 1); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("error = %v, want ErrInvalidParameter", err)
	}
}

func TestBesselI0KnownValues(t *testing.T) {
	tests := []struct {
		x    float64
		want float64
	}{
		{0, 1},
		{1, 1.2660658777520082},
		{5, 27.239871823604442},
		{10, 2815.716628466254},
	}

	for _, tt := range tests {
		if got := BesselI0(tt.x); !core.NearlyEqual(got, tt.want, 1e-12) {
			t.Fatalf("BesselI0(%v)=%v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestPeriodicHannStartsAtZeroWithoutEndZero(t *testing.T) {
	w := Generate(TypeHann, 8, WithPeriodic())
	if math.Abs(w[0]) > 1e-15 {
		t.Fatalf("w[0]=%v, want 0", w[0])
	}
	if w[7] < 0.1 {
		t.Fatalf("w[7]=%v, periodic form must not end at zero", w[7])
	}
}

func TestApplyMatchesGenerate(t *testing.T) {
	buf := []float64{2, 2, 2, 2, 2}
	Apply(TypeHamming, buf)

	w := Generate(TypeHamming, 5)
	for i := range buf {
		if !core.NearlyEqual(buf[i], 2*w[i], 1e-12) {
			t.Fatalf("buf[%d]=%v, want %v", i, buf[i], 2*w[i])
		}
	}
}

func TestParseTypeRoundTrip(t *testing.T) {
	for _, typ := range []Type{TypeRectangular, TypeHann, TypeHamming, TypeBlackman, TypeKaiser} {
		got, err := ParseType(typ.String())
		if err != nil || got != typ {
			t.Fatalf("ParseType(%q) = %v, %v", typ.String(), got, err)
		}
	}
	if _, err := ParseType("bogus"); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("ParseType(bogus) error = %v", err)
	}
}
