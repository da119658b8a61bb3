package handedness

import "math"

// ViewportWidth returns the layout viewport width from the document and
// window reported widths, whichever is larger. Non-numeric or negative
// readings count as zero.
func ViewportWidth(documentWidth, windowWidth float64) float64 {
	return math.Max(sanitize(documentWidth), sanitize(windowWidth))
}

// TouchSignals are the platform hints used to detect touch support.
type TouchSignals struct {
	HasTouchStart    bool
	MaxTouchPoints   int
	MsMaxTouchPoints int
}

// IsTouchDevice reports whether any touch signal is present.
func IsTouchDevice(s TouchSignals) bool {
	return s.HasTouchStart || s.MaxTouchPoints > 0 || s.MsMaxTouchPoints > 0
}

// IsVisible reports whether t has a layout box or any rendered rectangle.
func IsVisible(t Target) bool {
	if t == nil {
		return false
	}
	return sanitize(t.OffsetWidth()) != 0 ||
		sanitize(t.OffsetHeight()) != 0 ||
		len(t.ClientRects()) > 0
}

// TapPercent returns where the event landed within its target's width as a
// whole percentage, 0 at the left edge and 100 at the right.
// The target must have a non-zero width.
func TapPercent(ev PointerEvent) float64 {
	ratio := (ev.ClientX - ev.Target.OffsetLeft()) / ev.Target.OffsetWidth()
	return roundHalfUp(ratio * 100)
}

// Normalize maps a percentage onto [-1, +1] with 0 at the center.
func Normalize(percent float64) float64 {
	return (percent - 50) / 50
}

// targetWidth is the target's offset width, zero when unknown.
func targetWidth(t Target) float64 {
	if t == nil {
		return 0
	}
	return sanitize(t.OffsetWidth())
}

// roundHalfUp rounds .5 toward positive infinity; math.Round would send
// -2.5 to -3 instead of -2. Adding 0.5 before flooring is not exact:
// 0.49999999999999994 + 0.5 rounds up to 1.
func roundHalfUp(v float64) float64 {
	if v-math.Floor(v) == 0.5 {
		return math.Ceil(v)
	}
	return math.Round(v)
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
