package iir

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-lowpass/dsp/core"
	"github.com/cwbudde/algo-lowpass/dsp/filter/biquad"
)

// ZPK is a digital filter in zeros/poles/gain form:
//
//	H(z) = Gain * prod(1 - Zeros[k]/z) / prod(1 - Poles[k]/z)
//
// Butterworth designs list poles so that Poles[k] and Poles[len-1-k] are
// complex conjugates; for odd orders the middle pole is real.
type ZPK struct {
	Zeros []complex128
	Poles []complex128
	Gain  float64
}

// Butterworth designs an order-N Butterworth low-pass with -3 dB at cutoffHz.
//
// The analog prototype poles sit on the left half of the unit circle at
// angles theta_k = pi*(2k+1)/(2N) from the imaginary axis. They are scaled to
// the pre-warped cutoff 2*fs*tan(pi*fc/fs) and mapped by
// z = (2fs + s)/(2fs - s). All N zeros land at z = -1.
func Butterworth(cutoffHz, sampleRate float64, order int) (ZPK, error) {
	if err := validateDesign(cutoffHz, sampleRate, order); err != nil {
		return ZPK{}, err
	}

	fs2 := complex(2*sampleRate, 0)
	warped := 2 * sampleRate * math.Tan(math.Pi*cutoffHz/sampleRate)

	zpk := ZPK{
		Zeros: make([]complex128, order),
		Poles: make([]complex128, order),
	}

	gain := complex(1, 0)
	for k := range order {
		theta := math.Pi * float64(2*k+1) / float64(2*order)

		im := warped * math.Cos(theta)
		if 2*k+1 == order {
			im = 0
		}

		s := complex(-warped*math.Sin(theta), im)
		zpk.Poles[k] = (fs2 + s) / (fs2 - s)
		zpk.Zeros[k] = -1
		gain *= complex(warped, 0) / (fs2 - s)
	}

	zpk.Gain = real(gain)

	if err := zpk.checkStable(); err != nil {
		return ZPK{}, err
	}

	return zpk, nil
}

// Order returns the number of poles.
func (z ZPK) Order() int {
	return len(z.Poles)
}

// TransferFunction expands the factored form into b and a polynomials in
// z^-1. A[0] is 1.
func (z ZPK) TransferFunction() Coefficients {
	b := realParts(polyFromRoots(z.Zeros))
	for i := range b {
		b[i] *= z.Gain
	}

	return Coefficients{
		B: b,
		A: realParts(polyFromRoots(z.Poles)),
	}
}

// Sections factors the filter into second-order sections, one per conjugate
// pole pair plus a first-order section for an odd order, and returns them
// with the overall gain to apply in front of the cascade.
func (z ZPK) Sections() ([]biquad.Coefficients, float64) {
	n := len(z.Poles)
	secs := make([]biquad.Coefficients, 0, (n+1)/2)

	for k := range n / 2 {
		p := z.Poles[k]
		q := z.Zeros[k]
		secs = append(secs, biquad.Coefficients{
			B0: 1,
			B1: -2 * real(q),
			B2: real(q)*real(q) + imag(q)*imag(q),
			A1: -2 * real(p),
			A2: real(p)*real(p) + imag(p)*imag(p),
		})
	}

	if n%2 == 1 {
		mid := n / 2
		secs = append(secs, biquad.Coefficients{
			B0: 1,
			B1: -real(z.Zeros[mid]),
			A1: -real(z.Poles[mid]),
		})
	}

	return secs, z.Gain
}

func (z ZPK) checkStable() error {
	if !core.IsFinite(z.Gain) || z.Gain == 0 {
		return fmt.Errorf("iir: design gain %g is not usable: %w", z.Gain, core.ErrNumericInstability)
	}

	for k, p := range z.Poles {
		if cmplx.IsNaN(p) || cmplx.IsInf(p) || cmplx.Abs(p) >= 1 {
			return fmt.Errorf("iir: pole %d at %v is not inside the unit circle: %w",
				k, p, core.ErrNumericInstability)
		}
	}

	return nil
}

func validateDesign(cutoffHz, sampleRate float64, order int) error {
	switch {
	case !core.IsFinite(sampleRate) || sampleRate <= 0:
		return fmt.Errorf("iir: sample rate must be > 0: %g: %w", sampleRate, core.ErrInvalidParameter)
	case !core.IsFinite(cutoffHz) || cutoffHz <= 0:
		return fmt.Errorf("iir: cutoff must be > 0: %g: %w", cutoffHz, core.ErrInvalidParameter)
	case cutoffHz >= sampleRate/2:
		return fmt.Errorf("iir: cutoff %g Hz must be below Nyquist %g Hz: %w",
			cutoffHz, sampleRate/2, core.ErrInvalidParameter)
	case order <= 0:
		return fmt.Errorf("iir: order must be > 0: %d: %w", order, core.ErrInvalidParameter)
	}

	return nil
}

// polyFromRoots returns the coefficients of prod(1 - r*z^-1), highest power
// of z first, i.e. out[0] = 1.
func polyFromRoots(roots []complex128) []complex128 {
	out := make([]complex128, 1, len(roots)+1)
	out[0] = 1

	for _, r := range roots {
		out = append(out, 0)
		for i := len(out) - 1; i > 0; i-- {
			out[i] -= r * out[i-1]
		}
	}

	return out
}

func realParts(c []complex128) []float64 {
	out := make([]float64, len(c))
	for i, v := range c {
		out[i] = real(v)
	}

	return out
}
