package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-lowpass/dsp/core"
	vecmath "github.com/cwbudde/algo-vecmath"
)

// Generator creates deterministic test signals of a fixed sample rate and
// duration. Every signal it returns has Samples() elements.
type Generator struct {
	cfg  core.SignalConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the random seed used by WhiteNoise. Default 1.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a generator for the given sample rate and duration
// (80 Hz for 5 s by default).
func NewGenerator(opts ...core.SignalOption) *Generator {
	return NewGeneratorWithOptions(opts)
}

// NewGeneratorWithOptions creates a generator with signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.SignalOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplySignalOptions(coreOpts...),
		seed: 1,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	return g
}

// Config returns the generator's sample rate and duration.
func (g *Generator) Config() core.SignalConfig {
	return g.cfg
}

// Samples returns the length of every generated signal.
func (g *Generator) Samples() int {
	return g.cfg.Samples()
}

// Seed returns the noise seed.
func (g *Generator) Seed() int64 {
	return g.seed
}

// SetSeed changes the noise seed for subsequent WhiteNoise calls.
func (g *Generator) SetSeed(seed int64) {
	g.seed = seed
}

// TimeAxis returns the sample instants n/fs in seconds.
func (g *Generator) TimeAxis() ([]float64, error) {
	n, err := g.length()
	if err != nil {
		return nil, err
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) / g.cfg.SampleRate
	}

	return out, nil
}

// Sine generates amplitude*sin(2*pi*freqHz*t + phase).
func (g *Generator) Sine(freqHz, amplitude, phase float64) ([]float64, error) {
	return g.Tones([]Tone{{FreqHz: freqHz, Amplitude: amplitude, Phase: phase}})
}

// Tone is one sinusoidal component of a test signal.
type Tone struct {
	FreqHz    float64 `json:"freq_hz" yaml:"freq_hz" mapstructure:"freq_hz"`
	Amplitude float64 `json:"amplitude" yaml:"amplitude" mapstructure:"amplitude"`
	Phase     float64 `json:"phase" yaml:"phase" mapstructure:"phase"`
}

// Tones generates the sum of the given sinusoids.
func (g *Generator) Tones(tones []Tone) ([]float64, error) {
	n, err := g.length()
	if err != nil {
		return nil, err
	}

	out := make([]float64, n)
	for _, tone := range tones {
		if !core.IsFinite(tone.FreqHz) || !core.IsFinite(tone.Amplitude) || !core.IsFinite(tone.Phase) {
			return nil, fmt.Errorf("signal: tone %+v is not finite: %w", tone, core.ErrInvalidParameter)
		}

		step := 2 * math.Pi * tone.FreqHz / g.cfg.SampleRate
		for i := range out {
			out[i] += tone.Amplitude * math.Sin(step*float64(i)+tone.Phase)
		}
	}

	return out, nil
}

// WhiteNoise generates uniform noise in [-amplitude, amplitude] from the
// generator's seed. Equal seeds give equal sequences.
func (g *Generator) WhiteNoise(amplitude float64) ([]float64, error) {
	if amplitude < 0 || !core.IsFinite(amplitude) {
		return nil, fmt.Errorf("signal: noise amplitude must be >= 0: %g: %w", amplitude, core.ErrInvalidParameter)
	}

	n, err := g.length()
	if err != nil {
		return nil, err
	}

	out := make([]float64, n)
	rng := rand.New(rand.NewSource(g.seed))

	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out, nil
}

// DemoTones returns the components of the demonstration signal: a 1 Hz
// carrier and three interferers above a 10 Hz cutoff.
func DemoTones() []Tone {
	return []Tone{
		{FreqHz: 1, Amplitude: 1},
		{FreqHz: 15.3, Amplitude: 0.2},
		{FreqHz: 16.7, Amplitude: 0.1, Phase: 0.1},
		{FreqHz: 23.45, Amplitude: 0.1, Phase: 0.8},
	}
}

// Demo generates the sum of DemoTones.
func (g *Generator) Demo() ([]float64, error) {
	return g.Tones(DemoTones())
}

// Mix returns the element-wise sum of equally long signals.
func Mix(signals ...[]float64) ([]float64, error) {
	if len(signals) == 0 || len(signals[0]) == 0 {
		return nil, fmt.Errorf("signal: nothing to mix: %w", core.ErrInvalidInput)
	}

	out := make([]float64, len(signals[0]))
	for i, s := range signals {
		if len(s) != len(out) {
			return nil, fmt.Errorf("signal: mix input %d has %d samples, want %d: %w",
				i, len(s), len(out), core.ErrInvalidInput)
		}

		vecmath.AddBlockInPlace(out, s)
	}

	return out, nil
}

func (g *Generator) length() (int, error) {
	if g.cfg.SampleRate <= 0 || !core.IsFinite(g.cfg.SampleRate) {
		return 0, fmt.Errorf("signal: sample rate must be > 0: %g: %w", g.cfg.SampleRate, core.ErrInvalidParameter)
	}

	n := g.cfg.Samples()
	if n <= 0 {
		return 0, fmt.Errorf("signal: duration %g s at %g Hz yields no samples: %w",
			g.cfg.Duration, g.cfg.SampleRate, core.ErrInvalidParameter)
	}

	return n, nil
}
