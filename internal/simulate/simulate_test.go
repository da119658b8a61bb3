package simulate_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okian/dhand/internal/adapters/http/api"
	service "github.com/okian/dhand/internal/app"
	"github.com/okian/dhand/internal/domain/handedness"
	"github.com/okian/dhand/internal/simulate"
	"github.com/okian/dhand/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.InitWithWriter(io.Discard); err != nil {
		panic(err)
	}
}

func newServer(svc *service.Service) *httptest.Server {
	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

func TestParseBias(t *testing.T) {
	Convey("Given bias names", t, func() {
		for _, name := range []string{"left", "right", "center", "mixed"} {
			b, err := simulate.ParseBias(name)
			So(err, ShouldBeNil)
			So(string(b), ShouldEqual, name)
		}

		_, err := simulate.ParseBias("ambidextrous")
		So(errors.Is(err, simulate.ErrUnknownBias), ShouldBeTrue)
	})
}

func TestGenerator(t *testing.T) {
	Convey("Given generators with the same seed", t, func() {
		a := simulate.NewGenerator(simulate.BiasLeft, 390, 7).Batch(20)
		b := simulate.NewGenerator(simulate.BiasLeft, 390, 7).Batch(20)

		Convey("Then they produce the same coordinates with fresh ids", func() {
			for i := range a {
				So(a[i].ClientX, ShouldEqual, b[i].ClientX)
				So(a[i].ClientY, ShouldEqual, b[i].ClientY)
				So(a[i].EventID, ShouldNotEqual, b[i].EventID)
			}
		})

		Convey("Then every left-biased tap is admitted on the left", func() {
			scorer := handedness.New()
			for i := range a {
				d := scorer.Classify(a[i].PointerEvent(), a[i].Environment())
				So(d.Admitted, ShouldBeTrue)
				So(d.Position, ShouldBeLessThan, 0)
			}
		})
	})

	Convey("Given a center-biased generator", t, func() {
		taps := simulate.NewGenerator(simulate.BiasCenter, 390, 3).Batch(20)

		Convey("Then every tap falls in the discard band", func() {
			scorer := handedness.New()
			for i := range taps {
				d := scorer.Classify(taps[i].PointerEvent(), taps[i].Environment())
				So(d.Admitted, ShouldBeFalse)
				So(d.Stage, ShouldEqual, handedness.StageCenter)
			}
		})
	})

	Convey("Then expected hands follow the bias", t, func() {
		So(simulate.ExpectedHand(simulate.BiasLeft), ShouldEqual, "left")
		So(simulate.ExpectedHand(simulate.BiasRight), ShouldEqual, "right")
		So(simulate.ExpectedHand(simulate.BiasMixed), ShouldEqual, "right")
		So(simulate.ExpectedHand(simulate.BiasCenter), ShouldEqual, "unknown")
	})
}

func TestRun(t *testing.T) {
	Convey("Given a running server", t, func() {
		svc := service.New()
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()
		srv := newServer(svc)
		defer srv.Close()

		cfg := simulate.DefaultConfig()
		cfg.BaseURL = srv.URL
		cfg.Taps = 50
		cfg.Seed = 11

		Convey("When simulating a right-handed user", func() {
			report, err := simulate.Run(context.Background(), cfg)

			Convey("Then every tap is scored on the right", func() {
				So(err, ShouldBeNil)
				So(report.Accepted, ShouldEqual, 50)
				So(report.Failed, ShouldEqual, 0)
				So(report.Score.TapCount, ShouldEqual, 50)
				So(report.Score.Hand, ShouldEqual, "right")
				So(report.Matched, ShouldBeTrue)
			})
		})

		Convey("When simulating a left-handed user", func() {
			cfg.Bias = simulate.BiasLeft
			report, err := simulate.Run(context.Background(), cfg)

			Convey("Then the score is negative", func() {
				So(err, ShouldBeNil)
				So(report.Score.Score, ShouldBeLessThan, 0)
				So(report.Matched, ShouldBeTrue)
			})
		})

		Convey("When simulating central taps only", func() {
			cfg.Bias = simulate.BiasCenter
			cfg.Taps = 10
			report, err := simulate.Run(context.Background(), cfg)

			Convey("Then they are accepted but never counted", func() {
				So(err, ShouldBeNil)
				So(report.Accepted, ShouldEqual, 10)
				So(report.Score.TapCount, ShouldEqual, 0)
				So(report.Score.Hand, ShouldEqual, "unknown")
			})
		})
	})
}

func TestRun_Invalid(t *testing.T) {
	Convey("Given invalid simulation configs", t, func() {
		cfg := simulate.DefaultConfig()

		Convey("Then zero taps are refused", func() {
			cfg.Taps = 0
			_, err := simulate.Run(context.Background(), cfg)
			So(errors.Is(err, simulate.ErrInvalidSimulation), ShouldBeTrue)
		})

		Convey("Then an unknown bias is refused", func() {
			cfg.Bias = "both"
			_, err := simulate.Run(context.Background(), cfg)
			So(errors.Is(err, simulate.ErrUnknownBias), ShouldBeTrue)
		})
	})
}

func TestClient_Errors(t *testing.T) {
	Convey("Given a server that refuses everything", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "nope", http.StatusTooManyRequests)
		}))
		defer srv.Close()
		client := simulate.NewClient(srv.URL, time.Second)

		Convey("Then posting reports the status", func() {
			tap := simulate.NewGenerator(simulate.BiasRight, 390, 1).Next()
			outcome, err := client.PostTap(context.Background(), &tap)
			So(outcome, ShouldEqual, simulate.OutcomeFailed)
			So(errors.Is(err, simulate.ErrUnexpectedStatus), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "429")
		})

		Convey("Then reading the score reports the status", func() {
			_, err := client.Score(context.Background())
			So(errors.Is(err, simulate.ErrUnexpectedStatus), ShouldBeTrue)
		})
	})
}
