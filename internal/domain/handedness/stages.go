package handedness

import "math"

// evaluation carries one event through the stage chain.
type evaluation struct {
	cfg      Config
	event    PointerEvent
	env      Environment
	position float64
}

// stage is one named admissibility predicate. Stages run in order and the
// first one that fails rejects the event.
type stage struct {
	name Stage
	pass func(ev *evaluation) bool
}

// chain is the evaluation order. The full-width stage must stay ahead of
// the position stage: it is what keeps zero-width targets out of the
// division in TapPercent.
var chain = []stage{
	{name: StageTouch, pass: passTouch},
	{name: StageViewport, pass: passViewport},
	{name: StageSynthetic, pass: passSynthetic},
	{name: StageFullWidth, pass: passFullWidth},
	{name: StageInteractive, pass: passInteractive},
	{name: StageVisible, pass: passVisible},
	{name: StagePosition, pass: passPosition},
	{name: StageCenter, pass: passCenter},
}

// Stages returns the stage names in evaluation order.
func Stages() []Stage {
	names := make([]Stage, len(chain))
	for i, s := range chain {
		names[i] = s.name
	}
	return names
}

// classify runs the chain and returns the first rejection, or the admission.
func classify(cfg Config, event PointerEvent, env Environment) Decision {
	ev := &evaluation{cfg: cfg, event: event, env: env}
	for _, s := range chain {
		if !s.pass(ev) {
			return Rejected(s.name)
		}
	}
	return Admitted(ev.position)
}

func passTouch(ev *evaluation) bool {
	return !ev.cfg.TouchEventsOnly || ev.env.TouchCapable
}

func passViewport(ev *evaluation) bool {
	return !(ev.env.ViewportWidth > ev.cfg.MaximumScreenWidth)
}

// passSynthetic drops keyboard-triggered clicks, which report (0, 0). A real
// tap on the exact top-left pixel is dropped as well.
func passSynthetic(ev *evaluation) bool {
	return !(ev.event.ClientX == 0 && ev.event.ClientY == 0)
}

func passFullWidth(ev *evaluation) bool {
	consideredFullWidth := ev.env.ViewportWidth * ev.cfg.FullWidthThreshold
	return !(targetWidth(ev.event.Target) < consideredFullWidth)
}

func passInteractive(ev *evaluation) bool {
	if ev.event.Target == nil {
		return false
	}
	return ev.event.Target.Matches(FocusableSelectors)
}

func passVisible(ev *evaluation) bool {
	return IsVisible(ev.event.Target)
}

// passPosition computes the normalized position. It fails for a zero-width
// target, reachable only when the viewport itself reports zero width, and
// for a non-finite result. Taps slightly outside the box, where the offset
// is relative to a shifted parent, still count with |p| a little above 1.
func passPosition(ev *evaluation) bool {
	if targetWidth(ev.event.Target) == 0 {
		return false
	}
	p := Normalize(TapPercent(ev.event))
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return false
	}
	ev.position = p
	return true
}

// passCenter rejects the two bands (-t, 0] and [0, t). A position of
// exactly -t or +t is kept.
func passCenter(ev *evaluation) bool {
	t := ev.cfg.CenterDiscardThreshold
	p := ev.position
	inLeftBand := p > -t && p <= 0
	inRightBand := p >= 0 && p < t
	return !(inLeftBand || inRightBand)
}
