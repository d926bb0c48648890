package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "ghevents"

// PrometheusMetrics owns the scrape registry served on /metrics.
type PrometheusMetrics struct {
	registry        *prometheus.Registry
	webhookOutcomes *prometheus.CounterVec
	queryDuration   *prometheus.HistogramVec
}

// NewPrometheusMetrics registers process, runtime, webhook, and DB collectors.
// storedEvents is sampled on every scrape; nil skips the stored-events gauge.
func NewPrometheusMetrics(storedEvents func() float64) *PrometheusMetrics {
	registry := prometheus.NewRegistry()
	m := &PrometheusMetrics{
		registry: registry,
		webhookOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "webhook_deliveries_total",
			Help:      "GitHub webhook deliveries by event kind and outcome status",
		}, []string{"event", "status"}),
		queryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "db_query_duration_seconds",
			Help:      "SQLite query latency by query name",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		}, []string{"query"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.webhookOutcomes,
		m.queryDuration,
	)
	if storedEvents != nil {
		registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "stored_events",
			Help:      "Number of event records in the store",
		}, storedEvents))
	}
	return m
}

// ObserveWebhook counts one handled delivery.
func (m *PrometheusMetrics) ObserveWebhook(eventKind, status string) {
	if m == nil {
		return
	}
	if eventKind == "" {
		eventKind = "other"
	}
	m.webhookOutcomes.WithLabelValues(eventKind, status).Inc()
}

// ObserveQuery records one DB query latency sample.
func (m *PrometheusMetrics) ObserveQuery(name string, duration time.Duration) {
	if m == nil {
		return
	}
	m.queryDuration.WithLabelValues(name).Observe(duration.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
