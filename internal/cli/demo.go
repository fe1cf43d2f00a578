package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-lowpass/dsp/spectrum"
)

func newDemoCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Compare causal IIR, zero-phase IIR and FIR on the test signal",
		Long: `demo filters the test signal three ways with the configured cutoffs. It
reports, per filter, the dominant output frequency, how far each tone's
spectral peak dropped, and the residual and lag against the tones an ideal
low-pass would keep.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			x, err := a.input()
			if err != nil {
				return err
			}

			before, err := a.transform(x)
			if err != nil {
				return err
			}

			runs := []struct {
				name   string
				cutoff float64
				run    func() ([]float64, error)
			}{
				{"iir-causal", a.cfg.IIR.CutoffHz, func() ([]float64, error) {
					return a.withIIRMode(false, x)
				}},
				{"iir-zero-phase", a.cfg.IIR.CutoffHz, func() ([]float64, error) {
					return a.withIIRMode(true, x)
				}},
				{"fir", a.cfg.FIR.CutoffHz, func() ([]float64, error) {
					res, err := a.filterFIR(x)
					return res.Filtered, err
				}},
			}

			summary := Table{
				Name:    "summary",
				Columns: []string{"filter", "dominant_hz", "freq_hz", "reduction_db"},
			}
			residual := Table{
				Name:    "residual",
				Columns: []string{"filter", "rms", "peak", "snr_db", "lag_samples", "correlation"},
			}

			for _, r := range runs {
				y, err := r.run()
				if err != nil {
					return err
				}

				after, err := a.transform(y)
				if err != nil {
					return err
				}

				a.addDemoRows(&summary, r.name, before, after)

				ref, err := a.reference(r.cutoff)
				if err != nil {
					return err
				}

				if err := addResidualRow(&residual, r.name, ref, y); err != nil {
					return err
				}
			}

			return Render(cmd.OutOrStdout(), a.cfg.OutputFormat, summary, residual)
		},
	}
}

// withIIRMode runs the IIR low-pass with the zero-phase setting overridden.
func (a *app) withIIRMode(zeroPhase bool, x []float64) ([]float64, error) {
	saved := a.cfg.IIR
	defer func() { a.cfg.IIR = saved }()

	a.cfg.IIR.ZeroPhase = zeroPhase

	return a.filterIIR(x)
}

func (a *app) addDemoRows(t *Table, name string, before, after spectrum.Result) {
	dominant, _ := after.Dominant()

	for _, tone := range a.cfg.Signal.Tones {
		in := before.PeakNear(tone.FreqHz, peakSpan)
		out := after.PeakNear(tone.FreqHz, peakSpan)
		t.AddRow(name, dominant, tone.FreqHz, reductionDB(in, out))
	}

	a.log.Debug("demo run", zap.String("filter", name), zap.Float64("dominant_hz", dominant))
}
