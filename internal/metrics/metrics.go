// Package metrics exposes Prometheus instrumentation for the web front end.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "healthtrack"

// Collector holds the process's metrics on its own registry.
type Collector struct {
	registry *prometheus.Registry

	apiRequests *prometheus.CounterVec
	apiDuration *prometheus.HistogramVec
	expiries    *prometheus.CounterVec
	alerts      *prometheus.CounterVec
}

// New registers the collectors, plus the Go and process collectors, on a
// fresh registry.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Backend API requests by operation and status code (0 for transport failures).",
		}, []string{"op", "code"}),
		apiDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Backend API request latency by operation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		expiries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "expired_total",
			Help:      "Sessions reset after the backend rejected their token.",
		}, []string{"reason"}),
		alerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "alerts_total",
			Help:      "Health alerts shown on dashboard loads, by type.",
		}, []string{"type"}),
	}
	c.registry.MustRegister(
		c.apiRequests,
		c.apiDuration,
		c.expiries,
		c.alerts,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// ObserveRequest records one backend call.
func (c *Collector) ObserveRequest(op string, status int, elapsed time.Duration) {
	c.apiRequests.WithLabelValues(op, strconv.Itoa(status)).Inc()
	c.apiDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

// SessionExpired counts one forced reset.
func (c *Collector) SessionExpired(_ context.Context, reason string) {
	c.expiries.WithLabelValues(reason).Inc()
}

// AlertShown counts one alert rendered on the dashboard.
func (c *Collector) AlertShown(alertType string) {
	c.alerts.WithLabelValues(alertType).Inc()
}

// Registry returns the underlying registry, for tests and extra collectors.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
