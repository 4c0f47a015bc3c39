package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then metrics are registered under the diarium namespace", func() {
				So(manager, ShouldNotBeNil)
				manager.analyses.WithLabelValues("keyword").Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				found := false
				for _, f := range families {
					if f.GetName() == "diarium_mood_analyses_total" {
						found = true
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithMetricPrefix("x_"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.entriesAnalyzed.Inc()

			Convey("Then names and constant labels follow the options", func() {
				expected := `
# HELP test_unit_x_entries_analyzed_total Diary entries analyzed by workers
# TYPE test_unit_x_entries_analyzed_total counter
test_unit_x_entries_analyzed_total{env="test"} 1
`
				err := testutil.GatherAndCompare(registry, strings.NewReader(expected), "test_unit_x_entries_analyzed_total")
				So(err, ShouldBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics", t, func() {
		Convey("When recording cascade outcomes", func() {
			before := testutil.ToFloat64(globalManager.tierDemotions.WithLabelValues("remote", "transient"))
			RecordTierDemotion("remote", "transient")
			RecordAnalysis("keyword")
			RecordTierLatency("keyword", 0.2)

			Convey("Then the demotion counter moves", func() {
				after := testutil.ToFloat64(globalManager.tierDemotions.WithLabelValues("remote", "transient"))
				So(after-before, ShouldEqual, 1)
			})
		})

		Convey("When recording model load state", func() {
			UpdateModelLoadState("statistical", LoadStateFailed)
			RecordModelLoadDuration("statistical", "failed", 3)

			Convey("Then the gauge holds the state code", func() {
				So(testutil.ToFloat64(globalManager.modelLoadState.WithLabelValues("statistical")), ShouldEqual, LoadStateFailed)
			})
		})

		Convey("When recording operational metrics", func() {
			So(func() {
				UpdateQueueCapacity(10)
				UpdateQueueSize(5)
				UpdateQueueUtilization(0.5)
				RecordQueueEnqueue()
				RecordQueueDequeue()
				RecordQueueEnqueueError()
				RecordQueueProcessingLatency(1)
				UpdateWorkerActiveCount(2)
				UpdateWorkerMessagesPerSecond(3)
				RecordWorkerProcessingLatency(4)
				RecordWorkerError()
				RecordErrorByComponent("queue", "full")
				RecordHTTPRequest("/api/analyze-mood", "POST", "200")
				RecordHTTPRequestDuration("/api/analyze-mood", "POST", "200", 5)
				RecordEntrySubmitted()
				RecordEntryDuplicate()
				RecordEntryAnalyzed()
				UpdateStoreRecords(1)
				RecordRemoteResponse("5xx")
				RecordTextAnalysis()
			}, ShouldNotPanic)
		})

		Convey("Then the custom registry is exposed", func() {
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
