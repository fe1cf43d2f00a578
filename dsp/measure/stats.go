package measure

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-lowpass/dsp/core"
)

// Stats holds time-domain signal statistics.
type Stats struct {
	Length        int
	DC            float64 // mean
	RMS           float64
	Peak          float64 // max |x|
	CrestFactor   float64 // peak / RMS
	Variance      float64 // population variance
	Energy        float64 // sum of squares
	ZeroCrossings int
}

// RMSdB returns RMS in dB, -Inf for silence.
func (s Stats) RMSdB() float64 { return core.LinearToDB(s.RMS) }

// PeakdB returns Peak in dB, -Inf for silence.
func (s Stats) PeakdB() float64 { return core.LinearToDB(s.Peak) }

// Calculate computes all statistics of x. An empty signal gives the zero
// Stats.
func Calculate(x []float64) Stats {
	n := len(x)
	if n == 0 {
		return Stats{}
	}

	mean, variance := stat.PopMeanVariance(x, nil)
	energy := floats.Dot(x, x)
	rms := math.Sqrt(energy / float64(n))
	peak := vecmath.MaxAbs(x)

	var crest float64
	if rms > 0 {
		crest = peak / rms
	}

	return Stats{
		Length:        n,
		DC:            mean,
		RMS:           rms,
		Peak:          peak,
		CrestFactor:   crest,
		Variance:      variance,
		Energy:        energy,
		ZeroCrossings: ZeroCrossings(x),
	}
}

// RMS returns the root-mean-square of x.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	return math.Sqrt(floats.Dot(x, x) / float64(len(x)))
}

// Peak returns the largest absolute sample of x.
func Peak(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	return vecmath.MaxAbs(x)
}

// ZeroCrossings counts sign changes between consecutive samples.
func ZeroCrossings(x []float64) int {
	var count int

	for i := 1; i < len(x); i++ {
		if x[i-1]*x[i] < 0 {
			count++
		}
	}

	return count
}

// Residual describes how far a filtered signal lies from its reference.
type Residual struct {
	RMS   float64
	Peak  float64
	SNRdB float64 // reference RMS over residual RMS; +Inf for a perfect match
}

// Compare measures output against reference, ignoring skip samples at each
// end where filter transients dominate.
func Compare(reference, output []float64, skip int) (Residual, error) {
	if len(reference) != len(output) {
		return Residual{}, fmt.Errorf("measure: reference has %d samples, output %d: %w",
			len(reference), len(output), core.ErrInvalidInput)
	}

	if skip < 0 || 2*skip >= len(reference) {
		return Residual{}, fmt.Errorf("measure: cannot skip %d samples at each end of %d: %w",
			skip, len(reference), core.ErrInvalidParameter)
	}

	ref := reference[skip : len(reference)-skip]
	diff := make([]float64, len(ref))
	floats.SubTo(diff, output[skip:len(output)-skip], ref)

	r := Residual{RMS: RMS(diff), Peak: Peak(diff)}

	if r.RMS == 0 {
		r.SNRdB = math.Inf(1)
	} else {
		r.SNRdB = core.LinearToDB(RMS(ref) / r.RMS)
	}

	return r, nil
}
