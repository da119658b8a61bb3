package handedness

import "math"

// Default classifier thresholds.
const (
	DefaultMaximumScreenWidth     = 767
	DefaultFullWidthThreshold     = 0.8
	DefaultCenterDiscardThreshold = 0.2
	DefaultTouchEventsOnly        = true
)

// Config holds the classifier thresholds. It is fixed once a Scorer is built.
type Config struct {
	// MaximumScreenWidth is the widest viewport, in pixels, still considered
	// a mobile layout. Wider viewports are ignored.
	MaximumScreenWidth float64

	// FullWidthThreshold is the fraction of the viewport width a target must
	// span to count as full-width.
	FullWidthThreshold float64

	// CenterDiscardThreshold is the half-width of the band around the target
	// center within which taps are inconclusive.
	CenterDiscardThreshold float64

	// TouchEventsOnly requires a touch-capable platform before recording.
	TouchEventsOnly bool
}

// DefaultConfig returns the default thresholds.
func DefaultConfig() Config {
	return Config{
		MaximumScreenWidth:     DefaultMaximumScreenWidth,
		FullWidthThreshold:     DefaultFullWidthThreshold,
		CenterDiscardThreshold: DefaultCenterDiscardThreshold,
		TouchEventsOnly:        DefaultTouchEventsOnly,
	}
}

// Option applies a configuration option to the Scorer. An option given an
// out-of-range value is a silent no-op and the current setting stays;
// config.Config.Validate rejects such values before they reach the scorer.
type Option func(*Config)

// WithMaximumScreenWidth sets the widest viewport still scored.
func WithMaximumScreenWidth(width float64) Option {
	return func(c *Config) {
		if width > 0 && !math.IsInf(width, 0) {
			c.MaximumScreenWidth = width
		}
	}
}

// WithFullWidthThreshold sets the fraction of the viewport a target must span.
func WithFullWidthThreshold(fraction float64) Option {
	return func(c *Config) {
		if isFraction(fraction) {
			c.FullWidthThreshold = fraction
		}
	}
}

// WithCenterDiscardThreshold sets the inconclusive band around the center.
func WithCenterDiscardThreshold(fraction float64) Option {
	return func(c *Config) {
		if isFraction(fraction) {
			c.CenterDiscardThreshold = fraction
		}
	}
}

// WithTouchEventsOnly toggles the touch-capability gate.
func WithTouchEventsOnly(enabled bool) Option {
	return func(c *Config) {
		c.TouchEventsOnly = enabled
	}
}

// WithConfig replaces every threshold at once. Out-of-range values keep
// their defaults, the same as the individual options.
func WithConfig(cfg Config) Option {
	return func(c *Config) {
		WithMaximumScreenWidth(cfg.MaximumScreenWidth)(c)
		WithFullWidthThreshold(cfg.FullWidthThreshold)(c)
		WithCenterDiscardThreshold(cfg.CenterDiscardThreshold)(c)
		WithTouchEventsOnly(cfg.TouchEventsOnly)(c)
	}
}

func isFraction(v float64) bool {
	return v >= 0 && v <= 1
}
