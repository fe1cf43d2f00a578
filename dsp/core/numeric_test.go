package core

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
	if !NearlyEqual(1e6, 1e6*(1+1e-13), 0) {
		t.Fatal("expected relative comparison with default epsilon")
	}
}

func TestIsFinite(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		want bool
	}{
		{name: "zero", x: 0, want: true},
		{name: "nan", x: math.NaN(), want: false},
		{name: "+inf", x: math.Inf(1), want: false},
		{name: "-inf", x: math.Inf(-1), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFinite(tt.x); got != tt.want {
				t.Fatalf("IsFinite(%v) = %v, want %v", tt.x, got, tt.want)
			}
		})
	}

	if AllFinite([]float64{1, math.NaN()}) {
		t.Fatal("AllFinite accepted NaN")
	}
	if !AllFinite(nil) {
		t.Fatal("AllFinite(nil) = false, want true")
	}
}

func TestDBConversions(t *testing.T) {
	linear := DBToLinear(-6)
	db := LinearToDB(linear)
	if !NearlyEqual(db, -6, 1e-10) {
		t.Fatalf("LinearToDB(DBToLinear(-6)) = %v, want -6", db)
	}
	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("expected -Inf for zero")
	}
	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatal("expected NaN for negative amplitude")
	}
	if got := LinearPowerToDB(100); !NearlyEqual(got, 20, 1e-12) {
		t.Fatalf("LinearPowerToDB(100) = %v, want 20", got)
	}
}

func TestErrorKindsSurviveWrapping(t *testing.T) {
	err := fmt.Errorf("iir: cutoff 50 Hz at or above Nyquist 40 Hz: %w", ErrInvalidParameter)
	if !errors.Is(err, ErrInvalidParameter) {
		t.Fatal("wrapped error lost its kind")
	}
	if errors.Is(err, ErrInvalidInput) {
		t.Fatal("error kinds must be distinct")
	}
}
