package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// searchResultBuckets covers result sizes for a 25-hero catalog.
var searchResultBuckets = []float64{0, 1, 2, 3, 5, 10, 25}

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec

	// Query Metrics
	pageRequests  *prometheus.CounterVec
	searchResults prometheus.Histogram
	catalogHeroes prometheus.Gauge

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager and the registry it is registered on.
//
//nolint:gochecknoglobals // process-wide metrics singleton
var (
	globalRegistry = prometheus.NewRegistry()
	globalManager  = NewManager(WithPrometheusRegistry(globalRegistry))
)

// Init replaces the global manager with one built from opts on a fresh
// registry. Call it once at startup, before serving requests.
func Init(opts ...Option) {
	reg := prometheus.NewRegistry()
	globalManager = NewManager(append(opts, WithPrometheusRegistry(reg))...)
	globalRegistry = reg
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "boruto",
		subsystem:        "api",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration in seconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_endpoint_total",
		Help:      "Total number of error responses by endpoint and error type",
	}, []string{"endpoint", "method", "error_type"})

	m.pageRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "page_requests_total",
		Help:      "Total number of hero page lookups by outcome",
	}, []string{"outcome"})

	m.searchResults = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "search_results",
		Help:      "Number of heroes returned per search",
		Buckets:   searchResultBuckets,
	})

	m.catalogHeroes = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_heroes",
		Help:      "Number of heroes in the catalog",
	})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "Heap bytes allocated",
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
		Help:      "Average GC pause time in milliseconds",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	})
}

// RecordHTTPRequest records a served request and its duration in seconds.
func (m *Manager) RecordHTTPRequest(endpoint, method string, statusCode int, seconds float64) {
	code := strconv.Itoa(statusCode)
	m.httpRequests.WithLabelValues(endpoint, method, code).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, code).Observe(seconds)
}

// RecordErrorByEndpoint records an error response.
func (m *Manager) RecordErrorByEndpoint(endpoint, method, errorType string) {
	m.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordPageRequest counts a page lookup by outcome.
func (m *Manager) RecordPageRequest(outcome string) {
	m.pageRequests.WithLabelValues(outcome).Inc()
}

// RecordSearchResults observes the size of a search result.
func (m *Manager) RecordSearchResults(n int) {
	m.searchResults.Observe(float64(n))
}

// UpdateCatalogHeroes sets the catalog size.
func (m *Manager) UpdateCatalogHeroes(n int) {
	m.catalogHeroes.Set(float64(n))
}

// UpdateSystemMemoryUsage sets the heap allocation in bytes.
func (m *Manager) UpdateSystemMemoryUsage(bytes uint64) {
	m.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func (m *Manager) UpdateSystemGoroutineCount(count int) {
	m.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func (m *Manager) RecordSystemGCPauseTime(pauseMs float64) {
	m.systemGCPauseTime.Observe(pauseMs)
}

// Package-level helpers write to the global manager.

// RecordHTTPRequest records a served request on the global manager.
func RecordHTTPRequest(endpoint, method string, statusCode int, seconds float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, seconds)
}

// RecordErrorByEndpoint records an error response on the global manager.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.RecordErrorByEndpoint(endpoint, method, errorType)
}

// RecordPageRequest counts a page lookup on the global manager.
func RecordPageRequest(outcome string) {
	globalManager.RecordPageRequest(outcome)
}

// RecordSearchResults observes a search result size on the global manager.
func RecordSearchResults(n int) {
	globalManager.RecordSearchResults(n)
}

// UpdateCatalogHeroes sets the catalog size on the global manager.
func UpdateCatalogHeroes(n int) {
	globalManager.UpdateCatalogHeroes(n)
}

// UpdateSystemMemoryUsage sets the heap allocation on the global manager.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.UpdateSystemMemoryUsage(bytes)
}

// UpdateSystemGoroutineCount sets the goroutine count on the global manager.
func UpdateSystemGoroutineCount(count int) {
	globalManager.UpdateSystemGoroutineCount(count)
}

// RecordSystemGCPauseTime records GC pause time on the global manager.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.RecordSystemGCPauseTime(pauseMs)
}

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return globalRegistry
}
