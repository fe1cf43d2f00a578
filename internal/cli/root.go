package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// app carries state shared by the subcommands of one root command.
type app struct {
	v   *viper.Viper
	cfg Config
	log *zap.Logger

	configFile string
}

// NewRootCommand builds the lowpass command tree. Each call has its own viper
// instance so tests can run commands side by side.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New(), log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "lowpass",
		Short: "Spectral analysis and low-pass filtering of synthetic signals",
		Long: `lowpass synthesises a sum of sinusoids, inspects its centred spectrum and
removes components above a cutoff with a Butterworth IIR or a Kaiser
windowed-sinc FIR filter.

Settings come from defaults, a YAML config file, LOWPASS_* environment
variables and flags, in increasing order of precedence.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { _ = a.log.Sync() },
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default ./lowpass.yaml or ~/.config/lowpass/lowpass.yaml)")
	pf.String("log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringP("output", "o", FormatTable, "output format (table, json, yaml, csv)")
	pf.Float64("sample-rate", 80, "sample rate in Hz")
	pf.Float64("duration", 5, "signal duration in seconds")
	pf.Int64("seed", 42, "noise seed")
	pf.Float64("noise", 0, "white noise amplitude added to the signal")

	a.bind(pf, map[string]string{
		"log_level":          "log-level",
		"output_format":      "output",
		"signal.sample_rate": "sample-rate",
		"signal.duration":    "duration",
		"signal.seed":        "seed",
		"signal.noise":       "noise",
	})

	root.AddCommand(
		newSpectrumCommand(a),
		newIIRCommand(a),
		newFIRCommand(a),
		newDemoCommand(a),
	)

	return root
}

// bind maps config keys to flags in fs.
func (a *app) bind(fs *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := a.v.BindPFlag(key, fs.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(a.v, a.configFile)
	if err != nil {
		return err
	}

	log, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = log

	if used := a.v.ConfigFileUsed(); used != "" {
		a.log.Debug("loaded config", zap.String("file", used))
	}

	return nil
}
