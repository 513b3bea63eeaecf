// Package metrics provides Prometheus metrics for the asana pose analysis service.
package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Analysis outcomes.
const (
	OutcomeOK          = "ok"
	OutcomeUnsupported = "unsupported"
	OutcomeInvalid     = "invalid"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	scoreBuckets     []float64
	latencyBuckets   []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer
	gatherer         *prometheus.Registry

	// Analysis
	analyses        *prometheus.CounterVec
	globalScore     *prometheus.HistogramVec
	skillLevels     *prometheus.CounterVec
	analysisLatency prometheus.Histogram

	// Sessions and leaderboard
	sessionsProcessed  prometheus.Counter
	sessionsDuplicate  prometheus.Counter
	sessionsRejected   *prometheus.CounterVec
	leaderboardUpdates prometheus.Counter
	totalUsers         prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Repository and history
	repositoryUpdateLatency prometheus.Histogram
	repositoryQueryLatency  prometheus.Histogram
	historyWrites           *prometheus.CounterVec
	historyQueryLatency     prometheus.Histogram

	// Queue
	queueSize              prometheus.Gauge
	queueCapacity          prometheus.Gauge
	queueUtilization       prometheus.Gauge
	queueEnqueued          prometheus.Counter
	queueDequeued          prometheus.Counter
	queueEnqueueErrors     prometheus.Counter
	queueProcessingLatency prometheus.Histogram

	// Workers
	workerCount             prometheus.Gauge
	workerActiveCount       prometheus.Gauge
	workerIdleCount         prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrors            prometheus.Counter

	// Errors
	errorsByComponent *prometheus.CounterVec
	errorsByEndpoint  *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// global is the manager behind the package-level helpers, registered on a
// custom registry that avoids the default Go collectors.
var global atomic.Pointer[Manager] //nolint:gochecknoglobals // package-level recording helpers

func init() { //nolint:gochecknoinits // global metrics setup
	Configure()
}

func current() *Manager { return global.Load() }

// Configure rebuilds the package-level manager on a fresh registry. Values
// recorded before the call, and handlers built from an earlier GetRegistry,
// stay with the old registry, so call it once at startup.
func Configure(opts ...Option) {
	registry := prometheus.NewRegistry()
	m := NewManager(append(opts, WithPrometheusRegistry(registry))...)
	m.gatherer = registry
	global.Store(m)
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "asana",
		subsystem:        "pose",
		scoreBuckets:     prometheus.LinearBuckets(10, 10, 10),
		latencyBuckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) gauge(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.HistogramOpts {
	if buckets == nil {
		buckets = m.latencyBuckets
	}
	return prometheus.HistogramOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, Buckets: buckets, ConstLabels: m.constLabels}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.analyses = auto.NewCounterVec(m.counter("analyses_total", "Pose analyses by pose and outcome"), []string{"pose", "outcome"})
	m.globalScore = auto.NewHistogramVec(m.histogram("global_score", "Distribution of global scores by pose", m.scoreBuckets), []string{"pose"})
	m.skillLevels = auto.NewCounterVec(m.counter("skill_level_total", "Analyses by pose and resulting skill level"), []string{"pose", "level"})
	m.analysisLatency = auto.NewHistogram(m.histogram("analysis_latency_milliseconds", "Engine latency per analysis", nil))

	m.sessionsProcessed = auto.NewCounter(m.counter("sessions_processed_total", "Sessions analyzed by the worker pool"))
	m.sessionsDuplicate = auto.NewCounter(m.counter("sessions_duplicate_total", "Sessions rejected as duplicates"))
	m.sessionsRejected = auto.NewCounterVec(m.counter("sessions_rejected_total", "Sessions rejected before analysis"), []string{"reason"})
	m.leaderboardUpdates = auto.NewCounter(m.counter("leaderboard_updates_total", "Improvements of a user's best score"))
	m.totalUsers = auto.NewGauge(m.gauge("total_users", "Users on the leaderboard"))

	m.httpRequests = auto.NewCounterVec(m.counter("http_requests_total", "HTTP requests by endpoint, method and status"), []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogram("http_request_duration_milliseconds", "HTTP request duration", nil), []string{"endpoint", "method", "status_code"})

	m.repositoryUpdateLatency = auto.NewHistogram(m.histogram("repository_update_latency_milliseconds", "Leaderboard update latency", nil))
	m.repositoryQueryLatency = auto.NewHistogram(m.histogram("repository_query_latency_milliseconds", "Leaderboard query latency", nil))
	m.historyWrites = auto.NewCounterVec(m.counter("history_writes_total", "Session history writes by outcome"), []string{"outcome"})
	m.historyQueryLatency = auto.NewHistogram(m.histogram("history_query_latency_milliseconds", "Session history query latency", nil))

	m.queueSize = auto.NewGauge(m.gauge("queue_size", "Sessions waiting in the queue"))
	m.queueCapacity = auto.NewGauge(m.gauge("queue_capacity", "Queue capacity"))
	m.queueUtilization = auto.NewGauge(m.gauge("queue_utilization_ratio", "Queue size over capacity"))
	m.queueEnqueued = auto.NewCounter(m.counter("queue_enqueue_total", "Sessions enqueued"))
	m.queueDequeued = auto.NewCounter(m.counter("queue_dequeue_total", "Sessions dequeued"))
	m.queueEnqueueErrors = auto.NewCounter(m.counter("queue_enqueue_errors_total", "Failed enqueue attempts"))
	m.queueProcessingLatency = auto.NewHistogram(m.histogram("queue_processing_latency_milliseconds", "Enqueue latency", nil))

	m.workerCount = auto.NewGauge(m.gauge("worker_count", "Workers in the pool"))
	m.workerActiveCount = auto.NewGauge(m.gauge("worker_active_count", "Workers currently analyzing a session"))
	m.workerIdleCount = auto.NewGauge(m.gauge("worker_idle_count", "Workers waiting for a session"))
	m.workerProcessingLatency = auto.NewHistogram(m.histogram("worker_processing_latency_milliseconds", "End-to-end session processing latency", nil))
	m.workerErrors = auto.NewCounter(m.counter("worker_errors_total", "Session processing failures"))

	m.errorsByComponent = auto.NewCounterVec(m.counter("errors_by_component_total", "Errors by component and type"), []string{"component", "error_type"})
	m.errorsByEndpoint = auto.NewCounterVec(m.counter("errors_by_endpoint_total", "Errors by endpoint, method and type"), []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(m.gauge("system_memory_usage_bytes", "Heap memory in use"))
	m.systemGoroutineCount = auto.NewGauge(m.gauge("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogram("system_gc_pause_time_milliseconds", "Most recent GC pause",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100}))
}

// RecordAnalysis records one engine run. score and level are ignored unless
// outcome is OutcomeOK and aggregates were computed.
func RecordAnalysis(pose, outcome string, score float64, level string, latencyMs float64) {
	current().analyses.WithLabelValues(pose, outcome).Inc()
	current().analysisLatency.Observe(latencyMs)
	if outcome == OutcomeOK && level != "" {
		current().globalScore.WithLabelValues(pose).Observe(score)
		current().skillLevels.WithLabelValues(pose, level).Inc()
	}
}

// RecordSessionProcessed increments the processed sessions counter.
func RecordSessionProcessed() {
	current().sessionsProcessed.Inc()
}

// RecordSessionDuplicate increments the duplicate sessions counter.
func RecordSessionDuplicate() {
	current().sessionsDuplicate.Inc()
}

// RecordSessionRejected counts a session refused before analysis.
func RecordSessionRejected(reason string) {
	current().sessionsRejected.WithLabelValues(reason).Inc()
}

// RecordLeaderboardUpdate increments the leaderboard updates counter.
func RecordLeaderboardUpdate() {
	current().leaderboardUpdates.Inc()
}

// UpdateTotalUsers sets the number of users on the leaderboard.
func UpdateTotalUsers(count int) {
	current().totalUsers.Set(float64(count))
}

// RecordHTTPRequest records an HTTP request and its duration.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	current().httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	current().httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordRepositoryUpdateLatency records leaderboard update latency.
func RecordRepositoryUpdateLatency(latencyMs float64) {
	current().repositoryUpdateLatency.Observe(latencyMs)
}

// RecordRepositoryQueryLatency records leaderboard query latency.
func RecordRepositoryQueryLatency(latencyMs float64) {
	current().repositoryQueryLatency.Observe(latencyMs)
}

// RecordHistoryWrite counts a history write by outcome.
func RecordHistoryWrite(outcome string) {
	current().historyWrites.WithLabelValues(outcome).Inc()
}

// RecordHistoryQueryLatency records history query latency.
func RecordHistoryQueryLatency(latencyMs float64) {
	current().historyQueryLatency.Observe(latencyMs)
}

// UpdateQueue sets queue size and utilization.
func UpdateQueue(size, capacity int) {
	current().queueSize.Set(float64(size))
	if capacity > 0 {
		current().queueUtilization.Set(float64(size) / float64(capacity))
	}
}

// UpdateQueueCapacity sets the queue capacity.
func UpdateQueueCapacity(capacity int) {
	current().queueCapacity.Set(float64(capacity))
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	current().queueEnqueued.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	current().queueDequeued.Inc()
}

// RecordQueueEnqueueError increments the enqueue error counter.
func RecordQueueEnqueueError() {
	current().queueEnqueueErrors.Inc()
}

// RecordQueueProcessingLatency records enqueue latency.
func RecordQueueProcessingLatency(latencyMs float64) {
	current().queueProcessingLatency.Observe(latencyMs)
}

// UpdateWorkerCount sets the pool size.
func UpdateWorkerCount(count int) {
	current().workerCount.Set(float64(count))
}

// UpdateWorkerActivity sets the number of busy and idle workers.
func UpdateWorkerActivity(active, idle int) {
	current().workerActiveCount.Set(float64(active))
	current().workerIdleCount.Set(float64(idle))
}

// RecordWorkerProcessingLatency records end-to-end session processing latency.
func RecordWorkerProcessingLatency(latencyMs float64) {
	current().workerProcessingLatency.Observe(latencyMs)
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() {
	current().workerErrors.Inc()
}

// RecordErrorByComponent counts an error raised by a component.
func RecordErrorByComponent(component, errorType string) {
	current().errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint counts an error returned by an HTTP endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	current().errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets heap memory in use.
func UpdateSystemMemoryUsage(bytes uint64) {
	current().systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count.
func UpdateSystemGoroutineCount(count int) {
	current().systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records a GC pause.
func RecordSystemGCPauseTime(pauseMs float64) {
	current().systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the registry behind the package-level helpers.
func GetRegistry() *prometheus.Registry {
	return current().gatherer
}
