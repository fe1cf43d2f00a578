package core

import "math"

// SignalConfig describes a uniformly sampled, fixed-length signal frame.
type SignalConfig struct {
	SampleRate float64 // Hz
	Duration   float64 // seconds
}

// SignalOption mutates a SignalConfig.
type SignalOption func(*SignalConfig)

// DefaultSignalConfig returns the 80 Hz / 5 s frame used by the demo signal.
func DefaultSignalConfig() SignalConfig {
	return SignalConfig{
		SampleRate: 80,
		Duration:   5,
	}
}

// WithSampleRate sets the sample rate. Non-positive values are ignored.
func WithSampleRate(sampleRate float64) SignalOption {
	return func(cfg *SignalConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithDuration sets the frame duration. Non-positive values are ignored.
func WithDuration(seconds float64) SignalOption {
	return func(cfg *SignalConfig) {
		if seconds > 0 {
			cfg.Duration = seconds
		}
	}
}

// ApplySignalOptions applies zero or more options to the default config.
func ApplySignalOptions(opts ...SignalOption) SignalConfig {
	cfg := DefaultSignalConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// Samples returns round(SampleRate * Duration), the frame length.
func (c SignalConfig) Samples() int {
	return int(math.Round(c.SampleRate * c.Duration))
}

// Nyquist returns half the sample rate.
func (c SignalConfig) Nyquist() float64 {
	return c.SampleRate / 2
}
