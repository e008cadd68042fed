// Package metrics provides Prometheus metrics for the Audible draft service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns all Prometheus instruments for the service.
type Manager struct {
	namespace string
	subsystem string
	buckets   []float64
	enabled   bool
	registry  *prometheus.Registry

	// Suggestion pipeline
	suggestionRequests prometheus.Counter
	suggestionErrors   prometheus.Counter
	suggestionLatency  prometheus.Histogram
	suggestionPoolSize prometheus.Gauge

	// Draft mutations
	picksApplied   prometheus.Counter
	picksDuplicate prometheus.Counter
	picksUndone    prometheus.Counter
	picksRejected  prometheus.Counter
	poolSize       prometheus.Gauge

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global manager on a custom registry to avoid the default Go collectors.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager()
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "audible",
		subsystem: "draft",
		buckets:   prometheus.DefBuckets,
		enabled:   true,
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initialize()
	return m
}

func (m *Manager) initialize() {
	factory := promauto.With(m.registry)

	m.suggestionRequests = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "suggestion_requests_total",
		Help: "Total suggestion (ranking) requests served.",
	})
	m.suggestionErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "suggestion_errors_total",
		Help: "Suggestion requests rejected for contract violations.",
	})
	m.suggestionLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "suggestion_latency_ms",
		Help:    "End-to-end ranking latency in milliseconds.",
		Buckets: m.buckets,
	})
	m.suggestionPoolSize = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "suggestion_pool_size",
		Help: "Undrafted candidates considered by the last ranking pass.",
	})

	m.picksApplied = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "picks_applied_total",
		Help: "Draft picks applied to the shared state.",
	})
	m.picksDuplicate = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "picks_duplicate_total",
		Help: "Pick events acknowledged as idempotent replays.",
	})
	m.picksUndone = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "picks_undone_total",
		Help: "Draft picks reversed via undo.",
	})
	m.picksRejected = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "picks_rejected_total",
		Help: "Pick events rejected (unknown candidate, already drafted).",
	})
	m.poolSize = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "pool_size",
		Help: "Total candidates loaded into the draft pool.",
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "http",
		Name: "requests_total",
		Help: "HTTP requests by endpoint, method, and status.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: "http",
		Name:    "request_duration_ms",
		Help:    "HTTP request duration in milliseconds.",
		Buckets: m.buckets,
	}, []string{"endpoint", "method", "status"})
}

// Handler returns an http.Handler exposing the manager's registry.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Handler exposes the global registry for the /metrics endpoint.
func Handler() http.Handler {
	return globalManager.Handler()
}

// Package-level helpers against the global manager.

func RecordSuggestionRequest() {
	if globalManager.enabled {
		globalManager.suggestionRequests.Inc()
	}
}

func RecordSuggestionError() {
	if globalManager.enabled {
		globalManager.suggestionErrors.Inc()
	}
}

func RecordSuggestionLatency(latencyMs float64) {
	if globalManager.enabled {
		globalManager.suggestionLatency.Observe(latencyMs)
	}
}

func UpdateSuggestionPoolSize(n int) {
	if globalManager.enabled {
		globalManager.suggestionPoolSize.Set(float64(n))
	}
}

func RecordPickApplied() {
	if globalManager.enabled {
		globalManager.picksApplied.Inc()
	}
}

func RecordPickDuplicate() {
	if globalManager.enabled {
		globalManager.picksDuplicate.Inc()
	}
}

func RecordPickUndone() {
	if globalManager.enabled {
		globalManager.picksUndone.Inc()
	}
}

func RecordPickRejected() {
	if globalManager.enabled {
		globalManager.picksRejected.Inc()
	}
}

func UpdatePoolSize(n int) {
	if globalManager.enabled {
		globalManager.poolSize.Set(float64(n))
	}
}

func RecordHTTPRequest(endpoint, method, status string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
	}
}

func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
	}
}
