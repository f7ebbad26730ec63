// Package observability provides Prometheus metrics and OpenTelemetry
// tracing for the GICS client. Both are optional: a client constructed
// without them records nothing.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsConfig configures the client metrics.
type MetricsConfig struct {
	// Namespace is the Prometheus namespace (default: gics)
	Namespace string
	// Subsystem is the Prometheus subsystem (default: client)
	Subsystem string
	// Registerer receives the collectors; nil means a fresh registry
	Registerer prometheus.Registerer
	// HistogramBuckets overrides the latency buckets
	HistogramBuckets []float64
	// ConstLabels are added to every metric
	ConstLabels prometheus.Labels
}

// ClientMetrics holds the Prometheus collectors for one client instance.
// It implements the transport layer's ConnMetrics and RequestMetrics
// interfaces.
type ClientMetrics struct {
	registry *prometheus.Registry

	requestsTotal     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	retriesTotal      *prometheus.CounterVec
	connectionsOpened prometheus.Counter
	connectionsClosed prometheus.Counter
	idleConnections   prometheus.Gauge
}

// NewClientMetrics creates and registers the client metrics.
func NewClientMetrics(config MetricsConfig) (*ClientMetrics, error) {
	if config.Namespace == "" {
		config.Namespace = "gics"
	}
	if config.Subsystem == "" {
		config.Subsystem = "client"
	}
	if config.HistogramBuckets == nil {
		// Local IPC latencies: sub-millisecond on the happy path, the
		// configured timeout on the worst.
		config.HistogramBuckets = []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}
	}

	m := &ClientMetrics{}

	registerer := config.Registerer
	if registerer == nil {
		m.registry = prometheus.NewRegistry()
		registerer = m.registry
	}

	m.requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   config.Namespace,
		Subsystem:   config.Subsystem,
		Name:        "requests_total",
		Help:        "Total daemon calls by method and outcome.",
		ConstLabels: config.ConstLabels,
	}, []string{"method", "status"})

	m.requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   config.Namespace,
		Subsystem:   config.Subsystem,
		Name:        "request_duration_seconds",
		Help:        "Daemon call latency, including retries.",
		Buckets:     config.HistogramBuckets,
		ConstLabels: config.ConstLabels,
	}, []string{"method"})

	m.retriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   config.Namespace,
		Subsystem:   config.Subsystem,
		Name:        "retries_total",
		Help:        "Retry attempts by method.",
		ConstLabels: config.ConstLabels,
	}, []string{"method"})

	m.connectionsOpened = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   config.Namespace,
		Subsystem:   config.Subsystem,
		Name:        "connections_opened_total",
		Help:        "Connections opened to the daemon.",
		ConstLabels: config.ConstLabels,
	})

	m.connectionsClosed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   config.Namespace,
		Subsystem:   config.Subsystem,
		Name:        "connections_closed_total",
		Help:        "Connections closed, whether unhealthy or over pool capacity.",
		ConstLabels: config.ConstLabels,
	})

	m.idleConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   config.Namespace,
		Subsystem:   config.Subsystem,
		Name:        "idle_connections",
		Help:        "Connections currently idle in the pool.",
		ConstLabels: config.ConstLabels,
	})

	collectors := []prometheus.Collector{
		m.requestsTotal,
		m.requestDuration,
		m.retriesTotal,
		m.connectionsOpened,
		m.connectionsClosed,
		m.idleConnections,
	}
	for _, c := range collectors {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// RecordRequest records one logical call outcome.
func (m *ClientMetrics) RecordRequest(method, status string, duration time.Duration) {
	m.requestsTotal.WithLabelValues(method, status).Inc()
	m.requestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordRetry records one retry attempt.
func (m *ClientMetrics) RecordRetry(method string) {
	m.retriesTotal.WithLabelValues(method).Inc()
}

// ConnOpened records a newly opened daemon connection.
func (m *ClientMetrics) ConnOpened() {
	m.connectionsOpened.Inc()
}

// ConnClosed records a closed daemon connection.
func (m *ClientMetrics) ConnClosed() {
	m.connectionsClosed.Inc()
}

// SetIdleConns records the current idle pool size.
func (m *ClientMetrics) SetIdleConns(n int) {
	m.idleConnections.Set(float64(n))
}

// Handler exposes the metrics over HTTP. It returns nil when the metrics
// were registered on an external registerer; in that case the embedding
// application owns the scrape endpoint.
func (m *ClientMetrics) Handler() http.Handler {
	if m.registry == nil {
		return nil
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
