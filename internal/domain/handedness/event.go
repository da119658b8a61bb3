package handedness

// Rect is one rendered bounding box of an element.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Target is the element a pointer event landed on.
type Target interface {
	OffsetLeft() float64
	OffsetWidth() float64
	OffsetHeight() float64

	// Matches reports whether the element is any of the given selectors.
	Matches(selectors []string) bool

	// ClientRects returns the rendered boxes; empty when not rendered.
	ClientRects() []Rect
}

// PointerEvent is a single observed tap or click. Coordinates are relative
// to the viewport.
type PointerEvent struct {
	ClientX float64
	ClientY float64
	Target  Target
}

// Environment is the platform state at the moment an event is classified.
type Environment struct {
	ViewportWidth float64
	TouchCapable  bool
}

// Platform supplies environment lookups at classification time.
type Platform interface {
	ViewportWidth() float64
	TouchCapable() bool
}

// Snapshot reads the current environment from p.
func Snapshot(p Platform) Environment {
	if p == nil {
		return Environment{}
	}
	return Environment{
		ViewportWidth: p.ViewportWidth(),
		TouchCapable:  p.TouchCapable(),
	}
}
