// Package simulate drives a running dhand server with synthetic taps.
package simulate

import (
	"fmt"
	"time"
)

// Bias selects which side of the target synthetic taps favour.
type Bias string

const (
	BiasLeft   Bias = "left"
	BiasRight  Bias = "right"
	BiasCenter Bias = "center"
	BiasMixed  Bias = "mixed"
)

// ParseBias validates a bias name.
func ParseBias(s string) (Bias, error) {
	switch b := Bias(s); b {
	case BiasLeft, BiasRight, BiasCenter, BiasMixed:
		return b, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBias, s)
}

// Config holds configuration for a simulation run.
type Config struct {
	BaseURL       string        // Base URL of the service
	Taps          int           // Number of taps to generate
	Bias          Bias          // Side the taps favour
	ViewportWidth float64       // Simulated phone viewport in pixels
	Seed          uint64        // Generator seed; 0 picks one from the clock
	Workers       int           // Number of concurrent senders
	Timeout       time.Duration // HTTP request timeout
}

// DefaultConfig returns a small right-handed run against localhost.
func DefaultConfig() Config {
	return Config{
		BaseURL:       "http://localhost:9080",
		Taps:          200,
		Bias:          BiasRight,
		ViewportWidth: 390,
		Workers:       4,
		Timeout:       10 * time.Second,
	}
}

// Report summarises a run.
type Report struct {
	Generated int           `json:"generated"`
	Accepted  int           `json:"accepted"`
	Duplicate int           `json:"duplicate"`
	Failed    int           `json:"failed"`
	Score     ScoreResponse `json:"score"`
	Expected  string        `json:"expected_hand"`
	Matched   bool          `json:"matched"`
	Duration  time.Duration `json:"duration"`
}

// ScoreResponse mirrors GET /score.
type ScoreResponse struct {
	TapCount int     `json:"tap_count"`
	TapScore float64 `json:"tap_score"`
	Score    float64 `json:"score"`
	Hand     string  `json:"hand"`
}

// AckResponse mirrors the body of POST /taps.
type AckResponse struct {
	Status    string `json:"status"`
	EventID   string `json:"event_id"`
	Duplicate bool   `json:"duplicate"`
}
