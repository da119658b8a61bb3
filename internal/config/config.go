// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New returns a Config populated with defaults.
// - Load layers a YAML file and environment variables on top.
// - Errors are wrapped around this package's sentinels.
package config

import (
	"fmt"
	"strings"

	"github.com/okian/dhand/internal/domain/handedness"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory tap queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of workers folding taps into the score.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets how many tap ids are remembered for idempotency.
	DedupeSize int `koanf:"dedupe_size"`

	// ResetOnStop discards the tally when the service stops observing.
	ResetOnStop bool `koanf:"reset_on_stop"`

	// MaximumScreenWidth is the widest viewport still scored, in pixels.
	MaximumScreenWidth float64 `koanf:"maximum_screen_width"`

	// FullWidthThreshold is the fraction of the viewport a target must span.
	FullWidthThreshold float64 `koanf:"full_width_threshold"`

	// CenterDiscardThreshold is the inconclusive band around a target's center.
	CenterDiscardThreshold float64 `koanf:"center_discard_threshold"`

	// TouchEventsOnly requires a touch-capable device.
	TouchEventsOnly bool `koanf:"touch_events_only"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:               "info",
		Addr:                   ":9080",
		QueueSize:              10_000,
		WorkerCount:            1,
		DedupeSize:             50_000,
		ResetOnStop:            false,
		MaximumScreenWidth:     handedness.DefaultMaximumScreenWidth,
		FullWidthThreshold:     handedness.DefaultFullWidthThreshold,
		CenterDiscardThreshold: handedness.DefaultCenterDiscardThreshold,
		TouchEventsOnly:        handedness.DefaultTouchEventsOnly,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.QueueSize <= 0:
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	case c.WorkerCount <= 0:
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	case c.MaximumScreenWidth <= 0:
		return fmt.Errorf("%w: maximum_screen_width must be positive", ErrInvalidConfig)
	case c.FullWidthThreshold < 0 || c.FullWidthThreshold > 1:
		return fmt.Errorf("%w: full_width_threshold must be within [0, 1]", ErrInvalidConfig)
	case c.CenterDiscardThreshold < 0 || c.CenterDiscardThreshold > 1:
		return fmt.Errorf("%w: center_discard_threshold must be within [0, 1]", ErrInvalidConfig)
	}
	return nil
}

// ScorerOptions translates the classifier settings into scorer options.
func (c *Config) ScorerOptions() []handedness.Option {
	return []handedness.Option{
		handedness.WithMaximumScreenWidth(c.MaximumScreenWidth),
		handedness.WithFullWidthThreshold(c.FullWidthThreshold),
		handedness.WithCenterDiscardThreshold(c.CenterDiscardThreshold),
		handedness.WithTouchEventsOnly(c.TouchEventsOnly),
	}
}
