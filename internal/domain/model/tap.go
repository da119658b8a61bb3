// Package model contains domain models passed between layers.
package model

import (
	"time"

	"github.com/okian/dhand/internal/domain/handedness"
)

// Tap is one pointer interaction delivered by a client page.
type Tap struct {
	EventID    string    `json:"event_id"`              // unique id for idempotency
	ClientX    float64   `json:"client_x"`              // viewport-relative x
	ClientY    float64   `json:"client_y"`              // viewport-relative y
	Target     Element   `json:"target"`                // element the tap landed on
	Signals    Signals   `json:"signals"`               // platform facts at delivery time
	ReceivedAt time.Time `json:"received_at,omitempty"` // server receive time
}

// PointerEvent returns the classifier's view of the tap.
func (t *Tap) PointerEvent() handedness.PointerEvent {
	return handedness.PointerEvent{
		ClientX: t.ClientX,
		ClientY: t.ClientY,
		Target:  t.Target,
	}
}

// Environment derives the environment snapshot from the tap's signals.
func (t *Tap) Environment() handedness.Environment {
	return handedness.Snapshot(t.Signals)
}

// Signals are the raw platform readings a page reports with each tap.
type Signals struct {
	DocumentClientWidth float64 `json:"document_client_width"`
	InnerWidth          float64 `json:"inner_width"`
	HasTouchStart       bool    `json:"has_touch_start"`
	MaxTouchPoints      int     `json:"max_touch_points"`
	MsMaxTouchPoints    int     `json:"ms_max_touch_points"`
}

// ViewportWidth implements handedness.Platform.
func (s Signals) ViewportWidth() float64 {
	return handedness.ViewportWidth(s.DocumentClientWidth, s.InnerWidth)
}

// TouchCapable implements handedness.Platform.
func (s Signals) TouchCapable() bool {
	return handedness.IsTouchDevice(handedness.TouchSignals{
		HasTouchStart:    s.HasTouchStart,
		MaxTouchPoints:   s.MaxTouchPoints,
		MsMaxTouchPoints: s.MsMaxTouchPoints,
	})
}
