package cli

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-lowpass/dsp/conv"
	"github.com/cwbudde/algo-lowpass/dsp/core"
	"github.com/cwbudde/algo-lowpass/dsp/measure"
	"github.com/cwbudde/algo-lowpass/dsp/signal"
	"github.com/cwbudde/algo-lowpass/dsp/spectrum"
	"github.com/cwbudde/algo-lowpass/dsp/window"
)

// peakSpan is the half-width in Hz searched around each tone when comparing
// spectra. It keeps the comparison on the main lobe instead of a leakage
// null.
const peakSpan = 0.4

// input generates the configured test signal.
func (a *app) input() ([]float64, error) {
	s := a.cfg.Signal
	gen := signal.NewGeneratorWithOptions(s.options(), signal.WithSeed(s.Seed))

	x, err := gen.Tones(s.Tones)
	if err != nil {
		return nil, err
	}

	if s.Noise > 0 {
		noise, err := gen.WhiteNoise(s.Noise)
		if err != nil {
			return nil, err
		}

		if x, err = signal.Mix(x, noise); err != nil {
			return nil, err
		}
	}

	a.log.Debug("generated signal",
		zap.Int("samples", len(x)),
		zap.Float64("sample_rate", s.SampleRate),
		zap.Int("tones", len(s.Tones)),
		zap.Float64("noise", s.Noise))

	return x, nil
}

// transform computes the centred spectrum of x with the configured window.
func (a *app) transform(x []float64) (spectrum.Result, error) {
	sc := a.cfg.Spectrum

	win, err := window.ParseType(sc.Window)
	if err != nil {
		return spectrum.Result{}, err
	}

	s := a.cfg.Signal

	return spectrum.Transform(x, int(s.SampleRate), s.Duration,
		spectrum.WithWindow(win, window.WithBeta(sc.Beta)))
}

// toneTable compares each tone's spectral peak before and after filtering.
func toneTable(name string, tones []signal.Tone, before, after spectrum.Result) Table {
	t := Table{
		Name:    name,
		Columns: []string{"freq_hz", "amplitude", "input_peak", "output_peak", "reduction_db"},
	}

	for _, tone := range tones {
		in := before.PeakNear(tone.FreqHz, peakSpan)
		out := after.PeakNear(tone.FreqHz, peakSpan)

		t.AddRow(tone.FreqHz, tone.Amplitude, in, out, reductionDB(in, out))
	}

	return t
}

// Table values in dB are clamped to [minDB, maxDB] so silence and perfect
// cancellation still encode as finite JSON numbers.
const (
	minDB = -300
	maxDB = 300
)

func clampDB(v float64) float64 {
	return max(min(v, maxDB), minDB)
}

// reductionDB returns how far out lies below in, in dB.
func reductionDB(in, out float64) float64 {
	if in == 0 {
		return 0
	}

	return clampDB(core.LinearToDB(in) - core.LinearToDB(out))
}

// edgeFraction sets how much of each end residuals ignore: len/edgeFraction
// samples, where start-up and end transients dominate.
const edgeFraction = 20

// reference generates the tones below cutoffHz, which is what an ideal
// low-pass would leave of the input.
func (a *app) reference(cutoffHz float64) ([]float64, error) {
	var keep []signal.Tone

	for _, tone := range a.cfg.Signal.Tones {
		if tone.FreqHz < cutoffHz {
			keep = append(keep, tone)
		}
	}

	s := a.cfg.Signal

	return signal.NewGeneratorWithOptions(s.options()).Tones(keep)
}

// addResidualRow appends how far y lies from ref outside the edges, and by
// how many samples y trails ref at the peak of their normalized
// cross-correlation.
func addResidualRow(t *Table, name string, ref, y []float64) error {
	skip := len(y) / edgeFraction

	r, err := measure.Compare(ref, y, skip)
	if err != nil {
		return err
	}

	refMid := ref[skip : len(ref)-skip]

	corr, err := conv.CorrelateNormalized(y[skip:len(y)-skip], refMid)
	if err != nil {
		return err
	}

	idx, peak := conv.FindPeak(corr)

	t.AddRow(name, r.RMS, r.Peak, clampDB(r.SNRdB), conv.LagFromIndex(idx, len(refMid)), peak)

	return nil
}

// samplesTable lists input and output side by side with the time axis.
func samplesTable(name string, sampleRate float64, x, y []float64) (Table, error) {
	if len(x) != len(y) {
		return Table{}, fmt.Errorf("%s: input has %d samples, output %d", name, len(x), len(y))
	}

	t := Table{Name: name, Columns: []string{"index", "time_s", "input", "output"}}
	for i := range x {
		t.AddRow(i, float64(i)/sampleRate, x[i], y[i])
	}

	return t, nil
}
