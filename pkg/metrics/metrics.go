package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "b2b_inventory"

// ServerMetrics holds HTTP-level collectors.
type ServerMetrics struct {
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec
}

// NewServerMetrics creates and registers HTTP collectors on reg.
func NewServerMetrics(reg prometheus.Registerer) *ServerMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"route", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"route"})

	reg.MustRegister(requests, latency)
	return &ServerMetrics{Requests: requests, LatencyMS: latency}
}

// NewRegistry returns a registry preloaded with Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// DomainMetrics counts business events.
type DomainMetrics struct {
	Movements   *prometheus.CounterVec
	Orders      *prometheus.CounterVec
	RateLookups *prometheus.CounterVec
}

// NewDomainMetrics creates and registers business collectors on reg.
func NewDomainMetrics(reg prometheus.Registerer) *DomainMetrics {
	movements := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "inventory_movements_total",
		Help:      "Applied inventory movements by type and outcome.",
	}, []string{"type", "result"})
	orders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_operations_total",
		Help:      "Order operations by kind and outcome.",
	}, []string{"operation", "result"})
	lookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_lookups_total",
		Help:      "Exchange rate lookups by source and outcome.",
	}, []string{"source", "result"})

	reg.MustRegister(movements, orders, lookups)
	return &DomainMetrics{Movements: movements, Orders: orders, RateLookups: lookups}
}

// Result labels a metric with the outcome of err.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// HandlerFor exposes a specific gatherer.
func HandlerFor(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
