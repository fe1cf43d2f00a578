package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-lowpass/dsp/filter/biquad"
	"github.com/cwbudde/algo-lowpass/dsp/filter/iir"
)

func newIIRCommand(a *app) *cobra.Command {
	var withSamples bool

	cmd := &cobra.Command{
		Use:   "iir",
		Short: "Butterworth low-pass: coefficients and tone attenuation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			x, err := a.input()
			if err != nil {
				return err
			}

			designTables, err := a.iirDesignTables()
			if err != nil {
				return err
			}

			y, err := a.filterIIR(x)
			if err != nil {
				return err
			}

			before, err := a.transform(x)
			if err != nil {
				return err
			}

			after, err := a.transform(y)
			if err != nil {
				return err
			}

			tables := append(designTables, toneTable("tones", a.cfg.Signal.Tones, before, after))

			if withSamples {
				st, err := samplesTable("samples", a.cfg.Signal.SampleRate, x, y)
				if err != nil {
					return err
				}

				tables = append(tables, st)
			}

			return Render(cmd.OutOrStdout(), a.cfg.OutputFormat, tables...)
		},
	}

	f := cmd.Flags()
	f.Float64("cutoff", 10, "cutoff frequency in Hz (-3 dB point)")
	f.Int("order", iir.DefaultOrder, "filter order")
	f.Bool("zero-phase", false, "run forward and backward for zero phase")
	f.Bool("sections", false, "run as cascaded second-order sections")
	f.BoolVar(&withSamples, "samples", false, "include input and output samples")

	a.bind(f, map[string]string{
		"iir.cutoff_hz":  "cutoff",
		"iir.order":      "order",
		"iir.zero_phase": "zero-phase",
		"iir.sections":   "sections",
	})

	return cmd
}

// filterIIR applies the configured Butterworth low-pass to x.
func (a *app) filterIIR(x []float64) ([]float64, error) {
	c := a.cfg.IIR

	a.log.Info("iir low-pass",
		zap.Float64("cutoff_hz", c.CutoffHz),
		zap.Int("order", c.Order),
		zap.Bool("zero_phase", c.ZeroPhase),
		zap.Bool("sections", c.Sections))

	return iir.Lowpass(x, c.CutoffHz, a.cfg.Signal.SampleRate, c.options()...)
}

func iirMode(c IIRConfig) string {
	if c.ZeroPhase {
		return "zero-phase"
	}

	return "causal"
}

// iirDesignTables describes the configured filter: the direct-form B/A
// coefficients, or with sections the biquad cascade that actually runs.
func (a *app) iirDesignTables() ([]Table, error) {
	c := a.cfg.IIR
	fs := a.cfg.Signal.SampleRate

	design := Table{Name: "design", Columns: []string{"parameter", "value"}}
	design.AddRow("order", c.Order)
	design.AddRow("cutoff_hz", c.CutoffHz)
	design.AddRow("sample_rate", fs)
	design.AddRow("mode", iirMode(c))

	if c.Sections {
		zpk, err := iir.Butterworth(c.CutoffHz, fs, c.Order)
		if err != nil {
			return nil, err
		}

		secs, gain := zpk.Sections()
		chain := biquad.NewChain(secs, biquad.WithGain(gain))

		design.AddRow("dc_gain", real(chain.Response(0, fs)))
		design.AddRow("gain_at_cutoff_db", chain.MagnitudeDB(c.CutoffHz, fs))

		return []Table{design, sectionTable(secs, c.CutoffHz, fs)}, nil
	}

	coeffs, err := iir.Design(c.CutoffHz, fs, c.options()...)
	if err != nil {
		return nil, err
	}

	design.AddRow("dc_gain", coeffs.DCGain())
	design.AddRow("gain_at_cutoff_db", coeffs.MagnitudeDB(c.CutoffHz, fs))

	return []Table{design, coefficientTable(coeffs)}, nil
}

func sectionTable(secs []biquad.Coefficients, cutoffHz, sampleRate float64) Table {
	t := Table{
		Name:    "sections",
		Columns: []string{"index", "b0", "b1", "b2", "a1", "a2", "stable", "gain_at_cutoff_db"},
	}

	for i := range secs {
		s := &secs[i]
		t.AddRow(i, s.B0, s.B1, s.B2, s.A1, s.A2, s.IsStable(), s.MagnitudeDB(cutoffHz, sampleRate))
	}

	return t
}

func coefficientTable(c iir.Coefficients) Table {
	t := Table{Name: "coefficients", Columns: []string{"index", "b", "a"}}
	for i := range max(len(c.B), len(c.A)) {
		var b, a float64
		if i < len(c.B) {
			b = c.B[i]
		}

		if i < len(c.A) {
			a = c.A[i]
		}

		t.AddRow(i, b, a)
	}

	return t
}
