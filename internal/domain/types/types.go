// Package types contains common types used across the application
package types

import "github.com/okian/dhand/internal/domain/handedness"

// Score is the read shape of the handedness tally.
type Score struct {
	TapCount int     `json:"tap_count"`
	TapScore float64 `json:"tap_score"`
	Score    float64 `json:"score"`
	Hand     string  `json:"hand"`
}

// ScoreFromTally converts a tally into its API shape.
func ScoreFromTally(t handedness.Tally) Score {
	return Score{
		TapCount: t.Count,
		TapScore: t.Sum,
		Score:    t.Score,
		Hand:     string(t.Hand()),
	}
}

// Decision is the API shape of a single classification.
type Decision struct {
	Admitted bool    `json:"admitted"`
	Position float64 `json:"position,omitempty"`
	Stage    string  `json:"stage,omitempty"`
}

// DecisionFrom converts a classifier decision into its API shape.
func DecisionFrom(d handedness.Decision) Decision {
	return Decision{
		Admitted: d.Admitted,
		Position: d.Position,
		Stage:    string(d.Stage),
	}
}
