package types_test

import (
	"testing"

	"github.com/okian/dhand/internal/domain/handedness"
	types "github.com/okian/dhand/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestScoreFromTally(t *testing.T) {
	Convey("Given a tally leaning left", t, func() {
		s := types.ScoreFromTally(handedness.Tally{Count: 2, Sum: -0.8, Score: -0.4})

		Convey("Then the API shape carries the count, sum, score and hand", func() {
			So(s.TapCount, ShouldEqual, 2)
			So(s.TapScore, ShouldEqual, -0.8)
			So(s.Score, ShouldEqual, -0.4)
			So(s.Hand, ShouldEqual, "left")
		})
	})

	Convey("Given an empty tally", t, func() {
		s := types.ScoreFromTally(handedness.Tally{})

		Convey("Then the hand is unknown", func() {
			So(s.Score, ShouldEqual, 0.0)
			So(s.Hand, ShouldEqual, "unknown")
		})
	})
}

func TestDecisionFrom(t *testing.T) {
	Convey("Given a rejection", t, func() {
		d := types.DecisionFrom(handedness.Rejected(handedness.StageCenter))
		So(d.Admitted, ShouldBeFalse)
		So(d.Stage, ShouldEqual, "center")
	})

	Convey("Given an admission", t, func() {
		d := types.DecisionFrom(handedness.Admitted(0.46))
		So(d.Admitted, ShouldBeTrue)
		So(d.Position, ShouldEqual, 0.46)
		So(d.Stage, ShouldEqual, "")
	})
}
