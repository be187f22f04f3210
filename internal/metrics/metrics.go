// Package metrics exposes Prometheus collectors for upstream fetches and
// served requests on a private registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "countries"

// Fetch results.
const (
	ResultOK     = "ok"
	ResultError  = "error"
	ResultCached = "cached"
)

// Metrics groups the application's collectors.
type Metrics struct {
	registry      *prometheus.Registry
	fetchTotal    *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	requestsTotal *prometheus.CounterVec
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		fetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "fetch_total",
			Help:      "Country list loads by result.",
		}, []string{"result"}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "fetch_duration_seconds",
			Help:      "Latency of upstream country list requests.",
			Buckets:   prometheus.DefBuckets,
		}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Served HTTP requests by route and status code.",
		}, []string{"route", "code"}),
	}
	m.registry.MustRegister(
		m.fetchTotal,
		m.fetchDuration,
		m.requestsTotal,
		collectors.NewGoCollector(),
	)
	return m
}

// ObserveFetch records one snapshot load.
func (m *Metrics) ObserveFetch(result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.fetchTotal.WithLabelValues(result).Inc()
	if result != ResultCached {
		m.fetchDuration.Observe(elapsed.Seconds())
	}
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(route string, code int) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
