package cli

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/cwbudde/algo-lowpass/dsp/core"
	"github.com/cwbudde/algo-lowpass/dsp/filter/fir"
	"github.com/cwbudde/algo-lowpass/dsp/filter/iir"
	"github.com/cwbudde/algo-lowpass/dsp/signal"
	"github.com/cwbudde/algo-lowpass/dsp/window"
)

// EnvPrefix prefixes environment overrides, e.g. LOWPASS_IIR_CUTOFF_HZ.
const EnvPrefix = "LOWPASS"

// Config is the resolved CLI configuration: defaults, then config file, then
// environment, then flags.
type Config struct {
	LogLevel     string `mapstructure:"log_level"`
	OutputFormat string `mapstructure:"output_format"`

	Signal   SignalConfig   `mapstructure:"signal"`
	Spectrum SpectrumConfig `mapstructure:"spectrum"`
	IIR      IIRConfig      `mapstructure:"iir"`
	FIR      FIRConfig      `mapstructure:"fir"`
}

// SignalConfig describes the synthetic input signal.
type SignalConfig struct {
	SampleRate float64       `mapstructure:"sample_rate"`
	Duration   float64       `mapstructure:"duration"`
	Seed       int64         `mapstructure:"seed"`
	Noise      float64       `mapstructure:"noise"`
	Tones      []signal.Tone `mapstructure:"tones"`
}

// SpectrumConfig controls the spectrum command.
type SpectrumConfig struct {
	Window string  `mapstructure:"window"`
	Beta   float64 `mapstructure:"beta"`
	Top    int     `mapstructure:"top"`
	Filter string  `mapstructure:"filter"`
}

// IIRConfig controls the Butterworth low-pass.
type IIRConfig struct {
	CutoffHz  float64 `mapstructure:"cutoff_hz"`
	Order     int     `mapstructure:"order"`
	ZeroPhase bool    `mapstructure:"zero_phase"`
	Sections  bool    `mapstructure:"sections"`
}

// FIRConfig controls the Kaiser windowed-sinc low-pass.
type FIRConfig struct {
	CutoffHz          float64 `mapstructure:"cutoff_hz"`
	TransitionWidthHz float64 `mapstructure:"transition_width_hz"`
	RippleDB          float64 `mapstructure:"ripple_db"`
	CompensateDelay   bool    `mapstructure:"compensate_delay"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "warn")
	v.SetDefault("output_format", FormatTable)

	def := core.DefaultSignalConfig()
	v.SetDefault("signal.sample_rate", def.SampleRate)
	v.SetDefault("signal.duration", def.Duration)
	v.SetDefault("signal.seed", 42)
	v.SetDefault("signal.noise", 0.0)
	v.SetDefault("signal.tones", signal.DemoTones())

	v.SetDefault("spectrum.window", window.TypeRectangular.String())
	v.SetDefault("spectrum.beta", 0.0)
	v.SetDefault("spectrum.top", 0)
	v.SetDefault("spectrum.filter", "none")

	v.SetDefault("iir.cutoff_hz", 10.0)
	v.SetDefault("iir.order", iir.DefaultOrder)
	v.SetDefault("iir.zero_phase", false)
	v.SetDefault("iir.sections", false)

	v.SetDefault("fir.cutoff_hz", 10.0)
	v.SetDefault("fir.transition_width_hz", fir.DefaultTransitionWidthHz)
	v.SetDefault("fir.ripple_db", fir.DefaultRippleDB)
	v.SetDefault("fir.compensate_delay", false)
}

// loadConfig reads the optional config file and environment into cfg. An
// explicitly named file must exist; the search path may come up empty.
func loadConfig(v *viper.Viper, file string) (Config, error) {
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("lowpass")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "lowpass"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks settings that the library packages cannot check for the
// CLI. Filter parameters are validated by the filter packages themselves.
func (c Config) Validate() error {
	if _, err := parseFormat(c.OutputFormat); err != nil {
		return err
	}

	s := c.Signal
	if !core.IsFinite(s.SampleRate) || s.SampleRate <= 0 || s.SampleRate != math.Trunc(s.SampleRate) {
		return fmt.Errorf("signal.sample_rate must be a positive whole number of Hz: %g", s.SampleRate)
	}

	if !core.IsFinite(s.Duration) || s.Duration <= 0 {
		return fmt.Errorf("signal.duration must be > 0: %g", s.Duration)
	}

	if s.Noise < 0 {
		return fmt.Errorf("signal.noise must be >= 0: %g", s.Noise)
	}

	if len(s.Tones) == 0 {
		return errors.New("signal.tones must not be empty")
	}

	switch c.Spectrum.Filter {
	case "none", "iir", "fir":
	default:
		return fmt.Errorf("spectrum.filter must be none, iir or fir: %q", c.Spectrum.Filter)
	}

	if _, err := window.ParseType(c.Spectrum.Window); err != nil {
		return err
	}

	if err := window.ValidateBeta(c.Spectrum.Beta); err != nil {
		return fmt.Errorf("spectrum.beta: %w", err)
	}

	return nil
}

func (c SignalConfig) options() []core.SignalOption {
	return []core.SignalOption{
		core.WithSampleRate(c.SampleRate),
		core.WithDuration(c.Duration),
	}
}

func (c IIRConfig) options() []iir.Option {
	opts := []iir.Option{iir.WithOrder(c.Order)}
	if c.ZeroPhase {
		opts = append(opts, iir.WithZeroPhase())
	}

	if c.Sections {
		opts = append(opts, iir.WithSections())
	}

	return opts
}

func (c FIRConfig) options() []fir.Option {
	opts := []fir.Option{
		fir.WithTransitionWidth(c.TransitionWidthHz),
		fir.WithRipple(c.RippleDB),
	}
	if c.CompensateDelay {
		opts = append(opts, fir.WithDelayCompensation())
	}

	return opts
}
