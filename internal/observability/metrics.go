package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the report service.
type Metrics struct {
	HTTPRequests        *prometheus.CounterVec   // labels: route, status
	HTTPRequestDuration *prometheus.HistogramVec // labels: route

	StoreQueries       *prometheus.CounterVec   // labels: op, outcome={success,error}
	StoreQueryDuration *prometheus.HistogramVec // labels: op
}

func newMetrics() *Metrics {
	return &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_report",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern and status code.",
		}, []string{"route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "quake_report",
			Name:      "http_request_duration_seconds",
			Help:      "Time to produce a response, by route pattern.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route"}),
		StoreQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_report",
			Name:      "store_queries_total",
			Help:      "Read queries against the event store by operation and outcome.",
		}, []string{"op", "outcome"}),
		StoreQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "quake_report",
			Name:      "store_query_duration_seconds",
			Help:      "Event store query duration in seconds.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"op"}),
	}
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.HTTPRequests,
		m.HTTPRequestDuration,
		m.StoreQueries,
		m.StoreQueryDuration,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, so tests can
// build as many as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

// ObserveQuery records one store query.
func (m *Metrics) ObserveQuery(op string, seconds float64, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.StoreQueries.WithLabelValues(op, outcome).Inc()
	m.StoreQueryDuration.WithLabelValues(op).Observe(seconds)
}
