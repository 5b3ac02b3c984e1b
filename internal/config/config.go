package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/dshills/stagehook/internal/dispatcher"
	"github.com/dshills/stagehook/internal/signal"
	"github.com/dshills/stagehook/internal/trigger"
)

// Config is the complete stagehook configuration.
type Config struct {
	Dispatcher DispatcherConfig `toml:"dispatcher"`
	Trigger    TriggerConfig    `toml:"trigger"`
	Logging    LoggingConfig    `toml:"logging"`
}

// DispatcherConfig configures signal routing.
type DispatcherConfig struct {
	// DisabledKinds names signal kinds that are never matched.
	DisabledKinds []string `toml:"disabled_kinds"`

	// RecoverPanics isolates a panicking container.
	RecoverPanics bool `toml:"recover_panics"`

	// Metrics enables per-kind counters.
	Metrics bool `toml:"metrics"`
}

// TriggerConfig configures completion delivery.
type TriggerConfig struct {
	Workers   int      `toml:"workers"`
	QueueSize int      `toml:"queue_size"`
	Timeout   Duration `toml:"timeout"`

	// Script is a Lua file defining on_trigger. Empty disables scripting.
	Script string `toml:"script"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Dispatcher: DispatcherConfig{
			DisabledKinds: []string{},
			RecoverPanics: true,
		},
		Trigger: TriggerConfig{
			Workers:   4,
			QueueSize: 256,
			Timeout:   Duration(5 * time.Second),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks every value and returns the first problem, wrapped in
// ErrInvalidConfig.
func (c Config) Validate() error {
	if _, err := c.Dispatcher.Kinds(); err != nil {
		return err
	}
	if c.Trigger.Workers <= 0 {
		return fmt.Errorf("%w: trigger.workers must be positive, got %d", ErrInvalidConfig, c.Trigger.Workers)
	}
	if c.Trigger.QueueSize <= 0 {
		return fmt.Errorf("%w: trigger.queue_size must be positive, got %d", ErrInvalidConfig, c.Trigger.QueueSize)
	}
	if c.Trigger.Timeout < 0 {
		return fmt.Errorf("%w: trigger.timeout must not be negative", ErrInvalidConfig)
	}
	if _, err := parseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: logging.format %q", ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}

// Kinds parses the disabled kind names.
func (c DispatcherConfig) Kinds() ([]signal.Kind, error) {
	kinds := make([]signal.Kind, 0, len(c.DisabledKinds))
	for _, name := range c.DisabledKinds {
		k, err := signal.ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("%w: dispatcher.disabled_kinds: %w", ErrInvalidConfig, err)
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// DispatcherConfig converts the section into a dispatcher configuration.
func (c Config) DispatcherConfig() (dispatcher.Config, error) {
	kinds, err := c.Dispatcher.Kinds()
	if err != nil {
		return dispatcher.Config{}, err
	}
	dc := dispatcher.DefaultConfig().
		WithDisabledKinds(kinds...).
		WithPanicRecovery(c.Dispatcher.RecoverPanics)
	if c.Dispatcher.Metrics {
		dc = dc.WithMetrics()
	}
	return dc, nil
}

// PoolOptions converts the trigger section into pool options.
func (c Config) PoolOptions() []trigger.PoolOption {
	return []trigger.PoolOption{
		trigger.WithWorkerCount(c.Trigger.Workers),
		trigger.WithQueueSize(c.Trigger.QueueSize),
		trigger.WithTimeout(c.Trigger.Timeout.Std()),
	}
}
