package model_test

import (
	"testing"

	"github.com/okian/dhand/internal/domain/handedness"
	"github.com/okian/dhand/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func element(tag string, attrs map[string]string, ancestors ...model.Node) model.Element {
	return model.Element{
		Node:      model.Node{Tag: tag, Attributes: attrs},
		Ancestors: ancestors,
		Width:     410,
		Height:    40,
	}
}

func focusable(e model.Element) bool {
	return e.Matches(handedness.FocusableSelectors)
}

func TestElement_Matches(t *testing.T) {
	convey.Convey("Given elements of various kinds", t, func() {
		body := model.Node{Tag: "body"}

		convey.Convey("Then interactive elements are focusable", func() {
			convey.So(focusable(element("button", nil, body)), convey.ShouldBeTrue)
			convey.So(focusable(element("BUTTON", nil, body)), convey.ShouldBeTrue)
			convey.So(focusable(element("a", map[string]string{"href": "/next"}, body)), convey.ShouldBeTrue)
			convey.So(focusable(element("input", map[string]string{"type": "text"}, body)), convey.ShouldBeTrue)
			convey.So(focusable(element("input", map[string]string{"type": "radio"}, body)), convey.ShouldBeTrue)
			convey.So(focusable(element("select", nil, body)), convey.ShouldBeTrue)
			convey.So(focusable(element("textarea", nil, body)), convey.ShouldBeTrue)
			convey.So(focusable(element("div", map[string]string{"tabindex": "0"}, body)), convey.ShouldBeTrue)
			convey.So(focusable(element("div", map[string]string{"contenteditable": "true"}, body)), convey.ShouldBeTrue)
			convey.So(focusable(element("video", map[string]string{"controls": ""}, body)), convey.ShouldBeTrue)
			convey.So(focusable(element("summary", nil, body, model.Node{Tag: "details"})), convey.ShouldBeTrue)
		})

		convey.Convey("Then static and disabled elements are not", func() {
			convey.So(focusable(element("div", nil, body)), convey.ShouldBeFalse)
			convey.So(focusable(element("p", nil, body)), convey.ShouldBeFalse)
			convey.So(focusable(element("a", nil, body)), convey.ShouldBeFalse)
			convey.So(focusable(element("video", nil, body)), convey.ShouldBeFalse)
			convey.So(focusable(element("input", map[string]string{"type": "hidden"}, body)), convey.ShouldBeFalse)
			convey.So(focusable(element("button", map[string]string{"disabled": ""}, body)), convey.ShouldBeFalse)
			convey.So(focusable(element("button", map[string]string{"tabindex": "-1"}, body)), convey.ShouldBeFalse)
			convey.So(focusable(element("summary", nil, body)), convey.ShouldBeFalse)
		})

		convey.Convey("Then ancestors are taken into account", func() {
			inert := model.Node{Tag: "div", Attributes: map[string]string{"inert": ""}}
			fieldset := model.Node{Tag: "fieldset", Attributes: map[string]string{"disabled": ""}}
			convey.So(focusable(element("button", nil, body, inert)), convey.ShouldBeFalse)
			convey.So(focusable(element("button", nil, body, fieldset)), convey.ShouldBeFalse)
			convey.So(focusable(element("button", nil, body, model.Node{Tag: "form"})), convey.ShouldBeTrue)
		})

		convey.Convey("Then an element without a tag never matches", func() {
			convey.So(focusable(model.Element{}), convey.ShouldBeFalse)
		})

		convey.Convey("Then an invalid selector is ignored", func() {
			e := element("button", nil, body)
			convey.So(e.Matches([]string{"button[", "button"}), convey.ShouldBeTrue)
			convey.So(e.Matches([]string{"button["}), convey.ShouldBeFalse)
		})
	})
}

func TestTap_Environment(t *testing.T) {
	convey.Convey("Given a tap reported by a phone", t, func() {
		tap := model.Tap{
			ClientX: 100,
			ClientY: 10,
			Target:  element("button", nil),
			Signals: model.Signals{DocumentClientWidth: 480, InnerWidth: 500, MaxTouchPoints: 5},
		}

		convey.Convey("Then the environment uses the wider viewport reading", func() {
			env := tap.Environment()
			convey.So(env.ViewportWidth, convey.ShouldEqual, 500.0)
			convey.So(env.TouchCapable, convey.ShouldBeTrue)
		})

		convey.Convey("Then the pointer event is admitted by a default scorer", func() {
			d := handedness.New().Classify(tap.PointerEvent(), tap.Environment())
			convey.So(d.Admitted, convey.ShouldBeTrue)
			convey.So(d.Position, convey.ShouldEqual, -0.52)
		})

		convey.Convey("Then a desktop reading without touch is rejected", func() {
			tap.Signals = model.Signals{InnerWidth: 500}
			d := handedness.New().Classify(tap.PointerEvent(), tap.Environment())
			convey.So(d.Stage, convey.ShouldEqual, handedness.StageTouch)
		})
	})
}
