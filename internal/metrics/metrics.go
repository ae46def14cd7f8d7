// Package metrics exposes Prometheus metrics for the HTTP server and the
// promotion snapshot.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cafe"

// Metrics holds every collector the site exports.
type Metrics struct {
	registry *prometheus.Registry

	Requests          *prometheus.CounterVec
	Latency           *prometheus.HistogramVec
	PromotionsLoaded  prometheus.Gauge
	PromotionsRefresh prometheus.Gauge
	OrdersPlaced      prometheus.Counter
}

// New creates the collectors on a private registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		Latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		PromotionsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "promotion_snapshot",
			Name:      "size",
			Help:      "Number of promotions in the in-memory snapshot.",
		}),
		PromotionsRefresh: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "promotion_snapshot",
			Name:      "last_refresh_timestamp_seconds",
			Help:      "Unix time of the last successful snapshot refresh.",
		}),
		OrdersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_placed_total",
			Help:      "Total number of orders placed.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.Requests,
		m.Latency,
		m.PromotionsLoaded,
		m.PromotionsRefresh,
		m.OrdersPlaced,
	)
	return m
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.Requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.Latency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// SnapshotRefreshed records a successful promotion snapshot refresh.
func (m *Metrics) SnapshotRefreshed(size int) {
	m.PromotionsLoaded.Set(float64(size))
	m.PromotionsRefresh.SetToCurrentTime()
}

// OrderPlaced counts a stored order.
func (m *Metrics) OrderPlaced() {
	m.OrdersPlaced.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
