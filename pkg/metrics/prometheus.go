// Package metrics provides Prometheus metrics for the SCRIBE originality service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the SCRIBE service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Core Business Metrics - submission pipeline outcomes
	submissionsReceived prometheus.Counter
	submissionsAccepted prometheus.Counter
	submissionsRejected *prometheus.CounterVec

	// Scoring Metrics - pipeline stage performance
	extractionFailures prometheus.Counter
	lexicalLatency     prometheus.Histogram
	semanticLatency    prometheus.Histogram
	pipelineLatency    prometheus.Histogram
	lexicalMaxScore    prometheus.Histogram
	vocabularySize     prometheus.Histogram

	// Corpus Metrics
	corpusDocuments prometheus.Gauge

	// Audit Pipeline Metrics
	auditQueueSize      prometheus.Gauge
	auditQueueCapacity  prometheus.Gauge
	auditEnqueueErrors  prometheus.Counter
	auditRecordsWritten prometheus.Counter
	auditWriterCount    prometheus.Gauge
	auditWriteErrors    prometheus.Counter
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "scribe",
		subsystem:        "originality",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.submissionsReceived = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "submissions_received_total",
		Help:      "Total number of submission attempts received",
	})

	m.submissionsAccepted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "submissions_accepted_total",
		Help:      "Total number of submissions accepted into the corpus",
	})

	m.submissionsRejected = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "submissions_rejected_total",
			Help:      "Total number of rejected submission attempts by reason",
		},
		[]string{"reason"},
	)

	m.extractionFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "extraction_failures_total",
		Help:      "Total number of uploads that yielded no extractable text",
	})

	m.lexicalLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "lexical_latency_milliseconds",
		Help:      "Histogram of TF-IDF fit and comparison latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.semanticLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "semantic_latency_milliseconds",
		Help:      "Histogram of embedding and similarity latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.pipelineLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pipeline_latency_milliseconds",
		Help:      "Histogram of full submit pipeline latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.lexicalMaxScore = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "lexical_max_similarity",
		Help:      "Distribution of max lexical similarity vs the prior corpus",
		Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
	})

	m.vocabularySize = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "lexical_vocabulary_size",
		Help:      "Distribution of per-batch TF-IDF vocabulary sizes",
		Buckets:   prometheus.ExponentialBuckets(16, 2, 12),
	})

	m.corpusDocuments = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "corpus_documents",
		Help:      "Number of accepted documents across all assignment corpora",
	})

	m.auditQueueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "audit_queue_size",
		Help:      "Current size of the audit attempt queue (backlog indicator)",
	})

	m.auditQueueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "audit_queue_capacity",
		Help:      "Configured capacity of the audit attempt queue",
	})

	m.auditEnqueueErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "audit_enqueue_errors_total",
		Help:      "Total number of audit records dropped on enqueue",
	})

	m.auditRecordsWritten = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "audit_records_written_total",
		Help:      "Total number of audit records persisted by writers",
	})

	m.auditWriterCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "audit_writer_count",
		Help:      "Current number of audit writer goroutines",
	})

	m.auditWriteErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "audit_write_errors_total",
		Help:      "Total number of failed audit record writes",
	})
}

// Submission pipeline metrics.

// RecordSubmissionReceived increments the received-attempts counter.
func RecordSubmissionReceived() {
	globalManager.submissionsReceived.Inc()
}

// RecordSubmissionAccepted increments the accepted-submissions counter.
func RecordSubmissionAccepted() {
	globalManager.submissionsAccepted.Inc()
}

// RecordSubmissionRejected increments the rejection counter for a reason.
func RecordSubmissionRejected(reason string) {
	globalManager.submissionsRejected.WithLabelValues(reason).Inc()
}

// RecordExtractionFailure increments the failed-extraction counter.
func RecordExtractionFailure() {
	globalManager.extractionFailures.Inc()
}

// RecordLexicalLatency records TF-IDF stage latency in milliseconds.
func RecordLexicalLatency(latencyMs float64) {
	globalManager.lexicalLatency.Observe(latencyMs)
}

// RecordSemanticLatency records embedding stage latency in milliseconds.
func RecordSemanticLatency(latencyMs float64) {
	globalManager.semanticLatency.Observe(latencyMs)
}

// RecordPipelineLatency records full pipeline latency in milliseconds.
func RecordPipelineLatency(latencyMs float64) {
	globalManager.pipelineLatency.Observe(latencyMs)
}

// RecordLexicalMaxScore records the max similarity observed for an attempt.
func RecordLexicalMaxScore(score float64) {
	globalManager.lexicalMaxScore.Observe(score)
}

// RecordVocabularySize records the vocabulary size of one fit batch.
func RecordVocabularySize(size int) {
	globalManager.vocabularySize.Observe(float64(size))
}

// Corpus metrics.

// UpdateCorpusDocuments sets the accepted-document gauge.
func UpdateCorpusDocuments(count int) {
	globalManager.corpusDocuments.Set(float64(count))
}

// Audit pipeline metrics.

// UpdateAuditQueueSize sets the audit queue backlog gauge.
func UpdateAuditQueueSize(size int) {
	globalManager.auditQueueSize.Set(float64(size))
}

// UpdateAuditQueueCapacity sets the audit queue capacity gauge.
func UpdateAuditQueueCapacity(capacity int) {
	globalManager.auditQueueCapacity.Set(float64(capacity))
}

// RecordAuditEnqueueError increments the dropped-audit-record counter.
func RecordAuditEnqueueError() {
	globalManager.auditEnqueueErrors.Inc()
}

// RecordAuditWrite increments the persisted-audit-record counter.
func RecordAuditWrite() {
	globalManager.auditRecordsWritten.Inc()
}

// RecordAuditWriteError increments the failed-audit-write counter.
func RecordAuditWriteError() {
	globalManager.auditWriteErrors.Inc()
}

// UpdateAuditWriterCount sets the audit writer gauge.
func UpdateAuditWriterCount(count int) {
	globalManager.auditWriterCount.Set(float64(count))
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
