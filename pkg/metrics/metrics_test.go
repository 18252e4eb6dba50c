package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/staffscope/staffscope/pkg/metrics"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNewManager(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		reg := prometheus.NewRegistry()
		m := metrics.NewManager(
			metrics.WithPrometheusRegistry(reg),
			metrics.WithNamespace("testns"),
			metrics.WithSubsystem("testsub"),
			metrics.WithHistogramBuckets([]float64{1, 10, 100}),
		)

		Convey("Then construction registers instruments without panicking", func() {
			So(m, ShouldNotBeNil)
			families, err := reg.Gather()
			So(err, ShouldBeNil)
			// Gauges and histograms only appear after first use; counters with
			// vec labels are lazy too, so an empty gather is acceptable here.
			So(families, ShouldNotBeNil)
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Then every recording helper is callable", func() {
			So(func() {
				metrics.UpdateDatasetRowsLoaded(100)
				metrics.UpdateDatasetRowsDropped(3)
				metrics.UpdateDatasetLoadSeconds(0.25)
				metrics.RecordDerivationLatency(1.2)
				metrics.RecordAssessment()
				metrics.RecordEvaluation()
				metrics.RecordEvaluationRejected("employee_id")
				metrics.RecordHighRiskFlagged()
				metrics.RecordReportRender()
				metrics.RecordExportRender()
				metrics.RecordEmailDraft("retention")
				metrics.UpdatePipelineQueueSize(10)
				metrics.UpdatePipelineQueueCapacity(1000)
				metrics.RecordPipelineEnqueueError()
				metrics.UpdatePipelineWorkerCount(4)
				metrics.RecordHTTPRequest("summary", "GET", "200")
				metrics.RecordHTTPRequestDuration("summary", "GET", "200", 3.5)
				metrics.UpdateSystemMemoryUsage(1 << 20)
				metrics.UpdateSystemGoroutineCount(12)
				metrics.RecordSystemGCPauseTime(0.4)
			}, ShouldNotPanic)
		})

		Convey("Then the registry gathers the touched instruments", func() {
			families, err := metrics.GetRegistry().Gather()
			So(err, ShouldBeNil)
			names := make(map[string]bool, len(families))
			for _, f := range families {
				names[f.GetName()] = true
			}
			So(names["staffscope_analytics_dataset_rows_loaded"], ShouldBeTrue)
			So(names["staffscope_analytics_http_requests_total"], ShouldBeTrue)
			So(names["staffscope_analytics_evaluations_total"], ShouldBeTrue)
		})
	})
}
