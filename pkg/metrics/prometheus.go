// Package metrics provides Prometheus metrics for the StaffScope analytics service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus instruments for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Dataset metrics - the one-time load and its outcome
	datasetRowsLoaded  prometheus.Gauge
	datasetRowsDropped prometheus.Gauge
	datasetLoadSeconds prometheus.Gauge
	derivationLatency  prometheus.Histogram

	// Scoring metrics - per-request engine activity
	assessmentsTotal    prometheus.Counter
	evaluationsTotal    prometheus.Counter
	evaluationsRejected *prometheus.CounterVec
	highRiskFlagged     prometheus.Counter

	// Output metrics
	reportRenders prometheus.Counter
	exportRenders prometheus.Counter
	emailDrafts   *prometheus.CounterVec

	// Load pipeline metrics
	pipelineQueueSize     prometheus.Gauge
	pipelineQueueCapacity prometheus.Gauge
	pipelineEnqueueErrors prometheus.Counter
	pipelineWorkerCount   prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "staffscope",
		subsystem:        "analytics",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all Prometheus instruments on the configured registry.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.datasetRowsLoaded = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_rows_loaded",
		Help:      "Number of employee rows loaded into the dataset",
	})

	m.datasetRowsDropped = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_rows_dropped",
		Help:      "Number of rows excluded at load time due to coercion failures",
	})

	m.datasetLoadSeconds = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_load_seconds",
		Help:      "Wall time of the one-time dataset load",
	})

	m.derivationLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "derivation_latency_milliseconds",
		Help:      "Histogram of per-row derivation latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.assessmentsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "assessments_total",
		Help:      "Total number of per-employee assessments computed",
	})

	m.evaluationsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "evaluations_total",
		Help:      "Total number of candidate evaluations scored",
	})

	m.evaluationsRejected = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "evaluations_rejected_total",
		Help:      "Candidate submissions rejected before scoring, by offending field",
	}, []string{"field"})

	m.highRiskFlagged = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "high_risk_flagged_total",
		Help:      "Employees classified as high resignation risk during assessments",
	})

	m.reportRenders = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "report_renders_total",
		Help:      "Total number of PDF evaluation reports generated",
	})

	m.exportRenders = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "export_renders_total",
		Help:      "Total number of XLSX department exports generated",
	})

	m.emailDrafts = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "email_drafts_total",
		Help:      "Total number of email drafts generated, by scenario",
	}, []string{"scenario"})

	m.pipelineQueueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pipeline_queue_size",
		Help:      "Rows waiting in the load pipeline queue",
	})

	m.pipelineQueueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pipeline_queue_capacity",
		Help:      "Capacity of the load pipeline queue",
	})

	m.pipelineEnqueueErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pipeline_enqueue_errors_total",
		Help:      "Rows that could not be enqueued into the load pipeline",
	})

	m.pipelineWorkerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pipeline_worker_count",
		Help:      "Derivation workers active during the load",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by endpoint, method, and status code",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration by endpoint, method, and status code",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "System memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_time_milliseconds",
		Help:      "GC pause time in milliseconds",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	})
}

// Dataset metrics.

// UpdateDatasetRowsLoaded sets the loaded row count gauge.
func UpdateDatasetRowsLoaded(count int) {
	globalManager.datasetRowsLoaded.Set(float64(count))
}

// UpdateDatasetRowsDropped sets the dropped row count gauge.
func UpdateDatasetRowsDropped(count int) {
	globalManager.datasetRowsDropped.Set(float64(count))
}

// UpdateDatasetLoadSeconds records the wall time of the dataset load.
func UpdateDatasetLoadSeconds(seconds float64) {
	globalManager.datasetLoadSeconds.Set(seconds)
}

// RecordDerivationLatency records per-row derivation latency in milliseconds.
func RecordDerivationLatency(latencyMs float64) {
	globalManager.derivationLatency.Observe(latencyMs)
}

// Scoring metrics.

// RecordAssessment increments the per-employee assessment counter.
func RecordAssessment() {
	globalManager.assessmentsTotal.Inc()
}

// RecordEvaluation increments the candidate evaluation counter.
func RecordEvaluation() {
	globalManager.evaluationsTotal.Inc()
}

// RecordEvaluationRejected counts a rejected submission by offending field.
func RecordEvaluationRejected(field string) {
	globalManager.evaluationsRejected.WithLabelValues(field).Inc()
}

// RecordHighRiskFlagged counts a high resignation risk classification.
func RecordHighRiskFlagged() {
	globalManager.highRiskFlagged.Inc()
}

// Output metrics.

// RecordReportRender counts a generated PDF report.
func RecordReportRender() {
	globalManager.reportRenders.Inc()
}

// RecordExportRender counts a generated XLSX export.
func RecordExportRender() {
	globalManager.exportRenders.Inc()
}

// RecordEmailDraft counts a generated email draft by scenario.
func RecordEmailDraft(scenario string) {
	globalManager.emailDrafts.WithLabelValues(scenario).Inc()
}

// Pipeline metrics.

// UpdatePipelineQueueSize sets the load pipeline queue size gauge.
func UpdatePipelineQueueSize(size int) {
	globalManager.pipelineQueueSize.Set(float64(size))
}

// UpdatePipelineQueueCapacity sets the load pipeline capacity gauge.
func UpdatePipelineQueueCapacity(capacity int) {
	globalManager.pipelineQueueCapacity.Set(float64(capacity))
}

// RecordPipelineEnqueueError counts a failed pipeline enqueue.
func RecordPipelineEnqueueError() {
	globalManager.pipelineEnqueueErrors.Inc()
}

// UpdatePipelineWorkerCount sets the derivation worker gauge.
func UpdatePipelineWorkerCount(count int) {
	globalManager.pipelineWorkerCount.Set(float64(count))
}

// HTTP metrics.

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// System metrics.

// UpdateSystemMemoryUsage sets the memory usage gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry backing all instruments.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
