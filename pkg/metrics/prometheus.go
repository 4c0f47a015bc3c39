// Package metrics provides Prometheus metrics for the diarium mood service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Model load states exported by the model_load_state gauge.
const (
	LoadStateUnloaded = 0
	LoadStateLoading  = 1
	LoadStateLoaded   = 2
	LoadStateFailed   = 3
)

// Manager manages all Prometheus metrics for the diarium service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Classification cascade
	analyses        *prometheus.CounterVec
	tierDemotions   *prometheus.CounterVec
	tierLatency     *prometheus.HistogramVec
	modelLoadState  *prometheus.GaugeVec
	modelLoadTime   *prometheus.HistogramVec
	remoteResponses *prometheus.CounterVec
	textAnalyses    prometheus.Counter

	// Entry pipeline
	entriesSubmitted prometheus.Counter
	entriesDuplicate prometheus.Counter
	entriesAnalyzed  prometheus.Counter
	storeRecords     prometheus.Gauge

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Queue Metrics
	queueSize              prometheus.Gauge
	queueCapacity          prometheus.Gauge
	queueUtilization       prometheus.Gauge
	queueEnqueueRate       prometheus.Counter
	queueDequeueRate       prometheus.Counter
	queueEnqueueErrors     prometheus.Counter
	queueProcessingLatency prometheus.Histogram

	// Worker Metrics
	workerActiveCount       prometheus.Gauge
	workerMessagesPerSecond prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrors            prometheus.Counter

	errorRateByComponent *prometheus.CounterVec
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
		namespace:        "diarium",
		subsystem:        "mood",
		histogramBuckets: prometheus.DefBuckets,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.metricPrefix + name,
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.metricPrefix + name,
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.metricPrefix + name,
		Help:        help,
		ConstLabels: m.customLabels,
		Buckets:     m.histogramBuckets,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.analyses = auto.NewCounterVec(
		m.counterOpts("analyses_total", "Mood analyses by the tier whose result was accepted"),
		[]string{"tier"},
	)
	m.tierDemotions = auto.NewCounterVec(
		m.counterOpts("tier_demotions_total", "Cascade demotions by tier and reason"),
		[]string{"tier", "reason"},
	)
	m.tierLatency = auto.NewHistogramVec(
		m.histogramOpts("tier_latency_milliseconds", "Per-tier classification latency in milliseconds"),
		[]string{"tier"},
	)
	m.modelLoadState = auto.NewGaugeVec(
		m.gaugeOpts("model_load_state", "Lazy model state: 0 unloaded, 1 loading, 2 loaded, 3 failed"),
		[]string{"model"},
	)
	m.modelLoadTime = auto.NewHistogramVec(
		m.histogramOpts("model_load_duration_milliseconds", "Lazy model load duration in milliseconds"),
		[]string{"model", "outcome"},
	)
	m.remoteResponses = auto.NewCounterVec(
		m.counterOpts("remote_responses_total", "Remote inference responses by status class"),
		[]string{"status"},
	)
	m.textAnalyses = auto.NewCounter(
		m.counterOpts("text_analyses_total", "Temporal and category analyses"),
	)

	m.entriesSubmitted = auto.NewCounter(m.counterOpts("entries_submitted_total", "Diary entries accepted for asynchronous analysis"))
	m.entriesDuplicate = auto.NewCounter(m.counterOpts("entries_duplicate_total", "Diary entry submissions rejected as duplicates"))
	m.entriesAnalyzed = auto.NewCounter(m.counterOpts("entries_analyzed_total", "Diary entries analyzed by workers"))
	m.storeRecords = auto.NewGauge(m.gaugeOpts("store_records", "Stored entry analyses"))

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds"),
		[]string{"endpoint", "method", "status_code"},
	)

	m.queueSize = auto.NewGauge(m.gaugeOpts("queue_size", "Current size of the entry queue"))
	m.queueCapacity = auto.NewGauge(m.gaugeOpts("queue_capacity", "Maximum queue capacity"))
	m.queueUtilization = auto.NewGauge(m.gaugeOpts("queue_utilization_ratio", "Queue utilization ratio (current size / capacity)"))
	m.queueEnqueueRate = auto.NewCounter(m.counterOpts("queue_enqueue_total", "Total number of entries enqueued"))
	m.queueDequeueRate = auto.NewCounter(m.counterOpts("queue_dequeue_total", "Total number of entries dequeued"))
	m.queueEnqueueErrors = auto.NewCounter(m.counterOpts("queue_enqueue_errors_total", "Total number of enqueue errors"))
	m.queueProcessingLatency = auto.NewHistogram(m.histogramOpts("queue_processing_latency_milliseconds", "Queue processing latency in milliseconds"))

	m.workerActiveCount = auto.NewGauge(m.gaugeOpts("worker_active_count", "Number of active workers"))
	m.workerMessagesPerSecond = auto.NewGauge(m.gaugeOpts("worker_messages_per_second", "Average entries analyzed per second by workers"))
	m.workerProcessingLatency = auto.NewHistogram(m.histogramOpts("worker_processing_latency_milliseconds", "Worker processing latency in milliseconds"))
	m.workerErrors = auto.NewCounter(m.counterOpts("worker_errors_total", "Total number of worker errors"))

	m.errorRateByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Total number of errors by component"),
		[]string{"component", "error_type"},
	)
}

// RecordAnalysis counts an analysis accepted from tier.
func RecordAnalysis(tier string) {
	globalManager.analyses.WithLabelValues(tier).Inc()
}

// RecordTierDemotion counts a cascade demotion away from tier.
func RecordTierDemotion(tier, reason string) {
	globalManager.tierDemotions.WithLabelValues(tier, reason).Inc()
}

// RecordTierLatency records how long tier took to answer.
func RecordTierLatency(tier string, latencyMs float64) {
	globalManager.tierLatency.WithLabelValues(tier).Observe(latencyMs)
}

// UpdateModelLoadState sets the lazy load state of model.
func UpdateModelLoadState(model string, state int) {
	globalManager.modelLoadState.WithLabelValues(model).Set(float64(state))
}

// RecordModelLoadDuration records a finished load of model.
func RecordModelLoadDuration(model, outcome string, latencyMs float64) {
	globalManager.modelLoadTime.WithLabelValues(model, outcome).Observe(latencyMs)
}

// RecordRemoteResponse counts a remote inference response by status class.
func RecordRemoteResponse(status string) {
	globalManager.remoteResponses.WithLabelValues(status).Inc()
}

// RecordTextAnalysis counts a temporal/category analysis.
func RecordTextAnalysis() {
	globalManager.textAnalyses.Inc()
}

// RecordEntrySubmitted counts an accepted entry submission.
func RecordEntrySubmitted() {
	globalManager.entriesSubmitted.Inc()
}

// RecordEntryDuplicate counts a duplicate entry submission.
func RecordEntryDuplicate() {
	globalManager.entriesDuplicate.Inc()
}

// RecordEntryAnalyzed counts an entry analyzed by a worker.
func RecordEntryAnalyzed() {
	globalManager.entriesAnalyzed.Inc()
}

// UpdateStoreRecords sets the number of stored analyses.
func UpdateStoreRecords(count int) {
	globalManager.storeRecords.Set(float64(count))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateQueueUtilization sets the queue utilization ratio.
func UpdateQueueUtilization(utilization float64) {
	globalManager.queueUtilization.Set(utilization)
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueueRate.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	globalManager.queueDequeueRate.Inc()
}

// RecordQueueEnqueueError increments the enqueue error counter.
func RecordQueueEnqueueError() {
	globalManager.queueEnqueueErrors.Inc()
}

// RecordQueueProcessingLatency records queue processing latency.
func RecordQueueProcessingLatency(latencyMs float64) {
	globalManager.queueProcessingLatency.Observe(latencyMs)
}

// UpdateWorkerActiveCount sets the number of active workers.
func UpdateWorkerActiveCount(count int) {
	globalManager.workerActiveCount.Set(float64(count))
}

// UpdateWorkerMessagesPerSecond sets the average entries processed per second.
func UpdateWorkerMessagesPerSecond(rate float64) {
	globalManager.workerMessagesPerSecond.Set(rate)
}

// RecordWorkerProcessingLatency records worker processing latency.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() {
	globalManager.workerErrors.Inc()
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
