package window

import (
	"fmt"

	"github.com/cwbudde/algo-lowpass/dsp/core"
)

func validateLength(size int) error {
	if size <= 0 {
		return fmt.Errorf("window: size must be > 0: %d: %w", size, core.ErrInvalidParameter)
	}
	return nil
}

func validateKaiser(size int, beta float64) error {
	if size <= 0 {
		return validateLength(size)
	}
	return ValidateBeta(beta)
}

// ValidateBeta rejects a negative or NaN Kaiser shape parameter.
func ValidateBeta(beta float64) error {
	if !(beta >= 0) {
		return fmt.Errorf("window: kaiser beta must be >= 0: %f: %w", beta, core.ErrInvalidParameter)
	}
	return nil
}

func errUnknownType(name string) error {
	return fmt.Errorf("window: unknown type %q: %w", name, core.ErrInvalidParameter)
}
