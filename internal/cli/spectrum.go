package cli

import (
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-lowpass/dsp/core"
	"github.com/cwbudde/algo-lowpass/dsp/spectrum"
)

func newSpectrumCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spectrum",
		Short: "Centred magnitude spectrum of the test signal",
		Long: `spectrum prints the centred DFT of the test signal, optionally after one of
the low-pass filters. With --top N only the N strongest non-negative
frequency bins are listed, strongest first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			x, err := a.input()
			if err != nil {
				return err
			}

			switch a.cfg.Spectrum.Filter {
			case "iir":
				if x, err = a.filterIIR(x); err != nil {
					return err
				}
			case "fir":
				res, err := a.filterFIR(x)
				if err != nil {
					return err
				}

				x = res.Filtered
			}

			res, err := a.transform(x)
			if err != nil {
				return err
			}

			freq, mag := res.Dominant()

			summary := Table{Name: "summary", Columns: []string{"parameter", "value"}}
			summary.AddRow("bins", res.Len())
			summary.AddRow("resolution_hz", res.Resolution())
			summary.AddRow("window", a.cfg.Spectrum.Window)
			summary.AddRow("filter", a.cfg.Spectrum.Filter)
			summary.AddRow("dominant_hz", freq)
			summary.AddRow("dominant_magnitude", mag)

			return Render(cmd.OutOrStdout(), a.cfg.OutputFormat,
				summary, binTable(res, a.cfg.Spectrum.Top))
		},
	}

	f := cmd.Flags()
	f.String("window", "rectangular", "analysis window (rectangular, hann, hamming, blackman, kaiser)")
	f.Float64("beta", 0, "Kaiser window beta")
	f.Int("top", 0, "list only the N strongest non-negative bins (0 lists all bins)")
	f.String("filter", "none", "filter the signal first (none, iir, fir)")

	a.bind(f, map[string]string{
		"spectrum.window": "window",
		"spectrum.beta":   "beta",
		"spectrum.top":    "top",
		"spectrum.filter": "filter",
	})

	return cmd
}

// binTable lists spectrum bins. With top > 0 it keeps the strongest top bins
// at or above 0 Hz, ordered by magnitude.
func binTable(res spectrum.Result, top int) Table {
	t := Table{Name: "bins", Columns: []string{"freq_hz", "magnitude", "magnitude_db"}}
	mags := res.Magnitude()

	if top <= 0 {
		for i, m := range mags {
			t.AddRow(res.Frequencies[i], m, finiteDB(m))
		}

		return t
	}

	dc := res.Len() / 2
	positive := append([]float64(nil), mags[dc:]...)
	idx := make([]int, len(positive))
	floats.Argsort(positive, idx)

	for k := len(idx) - 1; k >= 0 && len(t.Rows) < top; k-- {
		i := dc + idx[k]
		t.AddRow(res.Frequencies[i], mags[i], finiteDB(mags[i]))
	}

	return t
}

func finiteDB(m float64) float64 {
	return clampDB(core.LinearToDB(m))
}
