package handedness

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

type box struct {
	left, width, height float64
	interactive         bool
	rects               []Rect
}

func (b box) OffsetLeft() float64     { return b.left }
func (b box) OffsetWidth() float64    { return b.width }
func (b box) OffsetHeight() float64   { return b.height }
func (b box) Matches(_ []string) bool { return b.interactive }
func (b box) ClientRects() []Rect     { return b.rects }

func eval(event PointerEvent, env Environment) *evaluation {
	return &evaluation{cfg: DefaultConfig(), event: event, env: env}
}

func TestStages_Order(t *testing.T) {
	Convey("The stage chain runs in a fixed order", t, func() {
		So(Stages(), ShouldResemble, []Stage{
			StageTouch, StageViewport, StageSynthetic, StageFullWidth,
			StageInteractive, StageVisible, StagePosition, StageCenter,
		})
	})
}

func TestStages_Isolated(t *testing.T) {
	wide := box{width: 410, height: 40, interactive: true}
	env := Environment{ViewportWidth: 500, TouchCapable: true}

	Convey("Given the touch stage", t, func() {
		ev := eval(PointerEvent{}, Environment{})
		So(passTouch(ev), ShouldBeFalse)
		ev.cfg.TouchEventsOnly = false
		So(passTouch(ev), ShouldBeTrue)
	})

	Convey("Given the viewport stage", t, func() {
		So(passViewport(eval(PointerEvent{}, Environment{ViewportWidth: 767})), ShouldBeTrue)
		So(passViewport(eval(PointerEvent{}, Environment{ViewportWidth: 768})), ShouldBeFalse)
	})

	Convey("Given the synthetic stage", t, func() {
		So(passSynthetic(eval(PointerEvent{ClientX: 0, ClientY: 0}, env)), ShouldBeFalse)
		So(passSynthetic(eval(PointerEvent{ClientX: 0, ClientY: 1}, env)), ShouldBeTrue)
		So(passSynthetic(eval(PointerEvent{ClientX: 1, ClientY: 0}, env)), ShouldBeTrue)
	})

	Convey("Given the full-width stage", t, func() {
		Convey("A target exactly at the threshold passes", func() {
			So(passFullWidth(eval(PointerEvent{Target: box{width: 400}}, env)), ShouldBeTrue)
		})
		Convey("A narrower target fails", func() {
			So(passFullWidth(eval(PointerEvent{Target: box{width: 399}}, env)), ShouldBeFalse)
		})
		Convey("An unknown width counts as zero", func() {
			So(passFullWidth(eval(PointerEvent{Target: box{width: math.NaN()}}, env)), ShouldBeFalse)
			So(passFullWidth(eval(PointerEvent{}, env)), ShouldBeFalse)
		})
	})

	Convey("Given the interactive stage", t, func() {
		So(passInteractive(eval(PointerEvent{Target: wide}, env)), ShouldBeTrue)
		So(passInteractive(eval(PointerEvent{Target: box{width: 410}}, env)), ShouldBeFalse)
		So(passInteractive(eval(PointerEvent{}, env)), ShouldBeFalse)
	})

	Convey("Given the visible stage", t, func() {
		So(passVisible(eval(PointerEvent{Target: box{}}, env)), ShouldBeFalse)
		So(passVisible(eval(PointerEvent{Target: box{height: 1}}, env)), ShouldBeTrue)
		So(passVisible(eval(PointerEvent{Target: box{rects: []Rect{{Width: 1}}}}, env)), ShouldBeTrue)
	})

	Convey("Given the position stage", t, func() {
		Convey("It computes the normalized position", func() {
			ev := eval(PointerEvent{ClientX: 100, ClientY: 10, Target: wide}, env)
			So(passPosition(ev), ShouldBeTrue)
			So(ev.position, ShouldEqual, -0.52)
		})
		Convey("It accounts for the target's left offset", func() {
			shifted := wide
			shifted.left = 50
			ev := eval(PointerEvent{ClientX: 150, ClientY: 10, Target: shifted}, env)
			So(passPosition(ev), ShouldBeTrue)
			So(ev.position, ShouldEqual, -0.52)
		})
		Convey("A zero-width target is rejected instead of dividing by zero", func() {
			ev := eval(PointerEvent{ClientX: 10, ClientY: 10, Target: box{height: 10}}, env)
			So(passPosition(ev), ShouldBeFalse)
		})
		Convey("A tap just past either edge still counts", func() {
			shifted := wide
			shifted.left = 10

			right := eval(PointerEvent{ClientX: 425, ClientY: 10, Target: shifted}, env)
			So(passPosition(right), ShouldBeTrue)
			So(right.position, ShouldAlmostEqual, 1.02, 1e-9)

			left := eval(PointerEvent{ClientX: 5, ClientY: 10, Target: shifted}, env)
			So(passPosition(left), ShouldBeTrue)
			So(left.position, ShouldAlmostEqual, -1.02, 1e-9)
		})
		Convey("An infinite coordinate is rejected", func() {
			ev := eval(PointerEvent{ClientX: math.Inf(1), ClientY: 10, Target: wide}, env)
			So(passPosition(ev), ShouldBeFalse)
		})
	})

	Convey("Given the center stage", t, func() {
		at := func(p float64) bool {
			ev := eval(PointerEvent{}, env)
			ev.position = p
			return passCenter(ev)
		}

		Convey("Positions strictly inside the band are dropped", func() {
			So(at(0), ShouldBeFalse)
			So(at(0.1), ShouldBeFalse)
			So(at(-0.1), ShouldBeFalse)
			So(at(0.18), ShouldBeFalse)
			So(at(-0.18), ShouldBeFalse)
		})
		Convey("Positions exactly on the threshold are kept", func() {
			So(at(0.2), ShouldBeTrue)
			So(at(-0.2), ShouldBeTrue)
		})
		Convey("Positions outside the band are kept", func() {
			So(at(0.52), ShouldBeTrue)
			So(at(-1), ShouldBeTrue)
		})
	})
}

func TestClassify_ShortCircuit(t *testing.T) {
	Convey("Given an event that fails an early stage", t, func() {
		probe := &countingTarget{box: box{width: 410, height: 40, interactive: true}}
		d := classify(DefaultConfig(), PointerEvent{ClientX: 100, ClientY: 10, Target: probe}, Environment{ViewportWidth: 1000, TouchCapable: true})

		Convey("Then later stages never touch the target", func() {
			So(d.Stage, ShouldEqual, StageViewport)
			So(probe.matchCalls, ShouldEqual, 0)
		})
	})
}

type countingTarget struct {
	box
	matchCalls int
}

func (c *countingTarget) Matches(s []string) bool {
	c.matchCalls++
	return c.box.Matches(s)
}

func TestGeometry(t *testing.T) {
	Convey("Given the geometry helpers", t, func() {
		Convey("ViewportWidth takes the larger reading", func() {
			So(ViewportWidth(375, 390), ShouldEqual, 390.0)
			So(ViewportWidth(412, 0), ShouldEqual, 412.0)
			So(ViewportWidth(math.NaN(), -5), ShouldEqual, 0.0)
		})

		Convey("IsTouchDevice accepts any touch signal", func() {
			So(IsTouchDevice(TouchSignals{}), ShouldBeFalse)
			So(IsTouchDevice(TouchSignals{HasTouchStart: true}), ShouldBeTrue)
			So(IsTouchDevice(TouchSignals{MaxTouchPoints: 5}), ShouldBeTrue)
			So(IsTouchDevice(TouchSignals{MsMaxTouchPoints: 1}), ShouldBeTrue)
		})

		Convey("TapPercent rounds halves upward", func() {
			b := box{width: 8}
			So(TapPercent(PointerEvent{ClientX: 1, Target: b}), ShouldEqual, 13.0)   // 12.5
			So(TapPercent(PointerEvent{ClientX: -1, Target: b}), ShouldEqual, -12.0) // -12.5
			So(TapPercent(PointerEvent{ClientX: 8, Target: b}), ShouldEqual, 100.0)
		})
		Convey("roundHalfUp matches browser rounding near one half", func() {
			So(roundHalfUp(0.49999999999999994), ShouldEqual, 0.0)
			So(roundHalfUp(0.5), ShouldEqual, 1.0)
			So(roundHalfUp(-0.5), ShouldAlmostEqual, 0.0, 1e-12)
			So(roundHalfUp(-2.5), ShouldEqual, -2.0)
			So(roundHalfUp(-2.6), ShouldEqual, -3.0)
			So(roundHalfUp(101.22), ShouldEqual, 101.0)
		})

		Convey("Normalize centers on 50", func() {
			So(Normalize(50), ShouldEqual, 0.0)
			So(Normalize(0), ShouldEqual, -1.0)
			So(Normalize(100), ShouldEqual, 1.0)
		})
	})
}
