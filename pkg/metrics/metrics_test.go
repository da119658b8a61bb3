package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

// gathered returns the metric families of reg keyed by name.
func gathered(reg *prometheus.Registry) map[string]float64 {
	mfs, err := reg.Gather()
	So(err, ShouldBeNil)
	out := make(map[string]float64)
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				out[mf.GetName()] += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				out[mf.GetName()] = m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				out[mf.GetName()] += float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return out
}

func TestManager(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		reg := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(reg), WithNamespace("test"), WithSubsystem("hand"))

		Convey("When decisions are recorded", func() {
			m.RecordTapReceived()
			m.RecordTapReceived()
			m.RecordTapReceived()
			m.RecordDecision(true, "", -0.52)
			m.RecordDecision(false, "center", 0)
			m.RecordDecision(false, "viewport", 0)
			m.UpdateTally(1, -0.52, -0.52)

			Convey("Then the counters and gauges reflect them", func() {
				got := gathered(reg)
				So(got["test_hand_taps_received_total"], ShouldEqual, 3.0)
				So(got["test_hand_taps_admitted_total"], ShouldEqual, 1.0)
				So(got["test_hand_taps_rejected_total"], ShouldEqual, 2.0)
				So(got["test_hand_tap_position"], ShouldEqual, 1.0)
				So(got["test_hand_tap_count"], ShouldEqual, 1.0)
				So(got["test_hand_score"], ShouldEqual, -0.52)
			})
		})

		Convey("When the queue is updated", func() {
			m.UpdateQueue(25, 100)

			Convey("Then utilization is size over capacity", func() {
				got := gathered(reg)
				So(got["test_hand_queue_size"], ShouldEqual, 25.0)
				So(got["test_hand_queue_utilization"], ShouldEqual, 0.25)
			})
		})
	})

	Convey("Given a disabled manager", t, func() {
		reg := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(reg), WithMetricsEnabled(false))

		Convey("When events are recorded", func() {
			m.RecordTapReceived()
			m.RecordHTTPRequest("/taps", "POST", "202", 1)

			Convey("Then nothing is counted", func() {
				got := gathered(reg)
				So(got["dhand_scorer_taps_received_total"], ShouldEqual, 0.0)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Then every helper records without panicking", func() {
			So(func() {
				RecordTapReceived()
				RecordTapDuplicate()
				RecordDecision(true, "", 0.46)
				RecordDecision(false, "touch", 0)
				UpdateTally(1, 0.46, 0.46)
				UpdateQueue(0, 10)
				RecordQueueEnqueue()
				RecordQueueDequeue()
				RecordQueueEnqueueError("full")
				UpdateWorkerCount(1)
				RecordWorkerProcessingLatency(0.2)
				RecordHTTPRequest("/score", "GET", "200", 0.5)
				RecordError("worker", "panic")
			}, ShouldNotPanic)
		})

		Convey("Then the registry exposes dhand metrics", func() {
			mfs, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			So(len(mfs), ShouldBeGreaterThan, 0)
		})
	})
}

func TestRegisterRuntimeCollectors(t *testing.T) {
	Convey("Given runtime collectors registered twice", t, func() {
		So(func() {
			RegisterRuntimeCollectors()
			RegisterRuntimeCollectors()
		}, ShouldNotPanic)

		Convey("Then go runtime families are gathered", func() {
			mfs, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			found := false
			for _, mf := range mfs {
				if mf.GetName() == "go_goroutines" {
					found = true
				}
			}
			So(found, ShouldBeTrue)
		})
	})
}
