package dispatcher

import (
	"slices"

	"github.com/dshills/stagehook/internal/signal"
)

// Config holds dispatcher configuration options.
type Config struct {
	// DisabledKinds are suppressed from the start.
	DisabledKinds []signal.Kind

	// RecoverPanics isolates a panicking container from the rest of the
	// dispatch.
	RecoverPanics bool

	// EnableMetrics enables per-kind dispatch counters.
	EnableMetrics bool
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		RecoverPanics: true,
		EnableMetrics: false,
	}
}

// WithDisabledKinds returns a copy of the config with the given kinds disabled.
func (c Config) WithDisabledKinds(kinds ...signal.Kind) Config {
	c.DisabledKinds = slices.Clone(kinds)
	return c
}

// WithMetrics returns a copy of the config with metrics enabled.
func (c Config) WithMetrics() Config {
	c.EnableMetrics = true
	return c
}

// WithPanicRecovery returns a copy of the config with panic recovery set.
func (c Config) WithPanicRecovery(recover bool) Config {
	c.RecoverPanics = recover
	return c
}
