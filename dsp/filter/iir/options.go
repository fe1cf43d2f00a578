package iir

import (
	"fmt"

	"github.com/cwbudde/algo-lowpass/dsp/core"
)

// DefaultOrder is the Butterworth order used by Design and Lowpass.
const DefaultOrder = 4

// Option configures Design, FiltFilt and Lowpass.
type Option func(*config)

type config struct {
	order     int
	zeroPhase bool
	sections  bool
	padLen    int
	padSet    bool
}

func defaultConfig() config {
	return config{order: DefaultOrder}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithOrder sets the Butterworth order. Default 4.
func WithOrder(order int) Option {
	return func(c *config) { c.order = order }
}

// WithZeroPhase makes Lowpass run the filter forward and backward.
func WithZeroPhase() Option {
	return func(c *config) { c.zeroPhase = true }
}

// WithSections makes Lowpass run the design as a cascade of second-order
// sections instead of one high-order recursion.
func WithSections() Option {
	return func(c *config) { c.sections = true }
}

// WithPadLength sets the number of samples of odd extension added at each
// end for zero-phase filtering. Zero disables both the extension and the
// steady-state seeding of the delay line. The default is three times the
// filter length.
func WithPadLength(n int) Option {
	return func(c *config) {
		c.padLen = n
		c.padSet = true
	}
}

func (c config) resolvePadLen(filterLen int) (int, error) {
	switch {
	case !c.padSet:
		return 3 * filterLen, nil
	case c.padLen < 0:
		return 0, fmt.Errorf("iir: pad length must be >= 0: %d: %w", c.padLen, core.ErrInvalidParameter)
	}

	return c.padLen, nil
}
