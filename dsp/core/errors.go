package core

import "errors"

// Error kinds shared by every package in this module. Public functions wrap
// exactly one of them, so callers can branch with errors.Is.
var (
	// ErrInvalidParameter reports a design parameter outside its domain,
	// such as a cutoff at or above Nyquist or a non-positive filter order.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidInput reports an unusable sample buffer, for example an
	// empty signal.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNumericInstability reports a design whose coefficients are not
	// finite or whose poles are not strictly inside the unit circle.
	ErrNumericInstability = errors.New("numeric instability")
)
