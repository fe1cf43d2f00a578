package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-lowpass/dsp/filter/fir"
)

func newFIRCommand(a *app) *cobra.Command {
	var withSamples bool

	cmd := &cobra.Command{
		Use:   "fir",
		Short: "Kaiser windowed-sinc low-pass: taps and tone attenuation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			x, err := a.input()
			if err != nil {
				return err
			}

			res, err := a.filterFIR(x)
			if err != nil {
				return err
			}

			before, err := a.transform(x)
			if err != nil {
				return err
			}

			after, err := a.transform(res.Filtered)
			if err != nil {
				return err
			}

			tables := []Table{
				firDesignTable(a.cfg, res),
				tapTable(res.Taps),
				toneTable("tones", a.cfg.Signal.Tones, before, after),
			}

			if withSamples {
				st, err := samplesTable("samples", a.cfg.Signal.SampleRate, x, res.Filtered)
				if err != nil {
					return err
				}

				tables = append(tables, st)
			}

			return Render(cmd.OutOrStdout(), a.cfg.OutputFormat, tables...)
		},
	}

	f := cmd.Flags()
	f.Float64("cutoff", 10, "cutoff frequency in Hz (centre of the transition band)")
	f.Float64("transition-width", fir.DefaultTransitionWidthHz, "transition band width in Hz")
	f.Float64("ripple", fir.DefaultRippleDB, "stop-band attenuation in dB")
	f.Bool("compensate-delay", false, "advance the output by the group delay")
	f.BoolVar(&withSamples, "samples", false, "include input and output samples")

	a.bind(f, map[string]string{
		"fir.cutoff_hz":           "cutoff",
		"fir.transition_width_hz": "transition-width",
		"fir.ripple_db":           "ripple",
		"fir.compensate_delay":    "compensate-delay",
	})

	return cmd
}

// filterFIR designs and applies the configured Kaiser low-pass to x.
func (a *app) filterFIR(x []float64) (fir.Result, error) {
	c := a.cfg.FIR
	nyquist := a.cfg.Signal.SampleRate / 2

	res, err := fir.Lowpass(x, nyquist, c.CutoffHz, c.options()...)
	if err != nil {
		return fir.Result{}, err
	}

	a.log.Info("fir low-pass",
		zap.Float64("cutoff_hz", c.CutoffHz),
		zap.Int("taps", res.Length),
		zap.Float64("beta", res.Beta),
		zap.Bool("compensate_delay", c.CompensateDelay))

	return res, nil
}

func firDesignTable(cfg Config, res fir.Result) Table {
	c := cfg.FIR

	t := Table{Name: "design", Columns: []string{"parameter", "value"}}
	t.AddRow("taps", res.Length)
	t.AddRow("beta", res.Beta)
	t.AddRow("group_delay", res.GroupDelay())
	t.AddRow("cutoff_hz", c.CutoffHz)
	t.AddRow("transition_width_hz", c.TransitionWidthHz)
	t.AddRow("ripple_db", c.RippleDB)
	t.AddRow("compensate_delay", c.CompensateDelay)

	return t
}

func tapTable(taps []float64) Table {
	t := Table{Name: "taps", Columns: []string{"index", "value"}}
	for i, h := range taps {
		t.AddRow(i, h)
	}

	return t
}
