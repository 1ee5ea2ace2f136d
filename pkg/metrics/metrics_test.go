package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			metricsEnabledOpt := WithMetricsEnabled(true)
			refreshIntervalOpt := WithRefreshInterval(5 * time.Second)

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(metricsEnabledOpt, ShouldNotBeNil)
				So(refreshIntervalOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithRefreshInterval(10*time.Second),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestGlobalRecordFunctions(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording submission outcomes", func() {
			So(func() {
				RecordSubmissionReceived()
				RecordSubmissionAccepted()
				RecordSubmissionRejected("potential plagiarism detected")
				RecordExtractionFailure()
			}, ShouldNotPanic)
		})

		Convey("When recording pipeline latencies and scores", func() {
			So(func() {
				RecordLexicalLatency(12.5)
				RecordSemanticLatency(3.2)
				RecordPipelineLatency(20.0)
				RecordLexicalMaxScore(0.42)
				RecordVocabularySize(128)
			}, ShouldNotPanic)
		})

		Convey("When updating gauges", func() {
			So(func() {
				UpdateCorpusDocuments(7)
				UpdateAuditQueueSize(3)
				UpdateAuditQueueCapacity(1024)
				UpdateAuditWriterCount(2)
				RecordAuditEnqueueError()
				RecordAuditWrite()
				RecordAuditWriteError()
			}, ShouldNotPanic)
		})

		Convey("When reading the registry", func() {
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
