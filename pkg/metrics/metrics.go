// Package metrics defines the Prometheus collectors for the supply service.
//
// Metric naming follows Prometheus conventions:
//   - supply_ prefix for all custom metrics
//   - _total suffix for counters
//   - _seconds suffix for duration histograms
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeAllowed = "allowed"
	OutcomeDenied  = "denied"

	unmatchedPath = "unmatched"
)

// Metrics owns a dedicated registry so tests and multiple servers never
// collide on the process-wide default registry.
type Metrics struct {
	registry *prometheus.Registry

	// AuthzDecisionsTotal counts authorization decisions by module, action and outcome.
	AuthzDecisionsTotal *prometheus.CounterVec

	// StockClassificationsTotal counts stock classifications by resulting status.
	StockClassificationsTotal *prometheus.CounterVec

	// HTTPRequestsTotal counts handled requests by method, route template and status.
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDurationSeconds is a histogram of request latency by method and route template.
	HTTPRequestDurationSeconds *prometheus.HistogramVec

	// ActiveRequests is the number of requests currently in flight.
	ActiveRequests prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		AuthzDecisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "supply_authz_decisions_total",
				Help: "Total authorization decisions by module, action and outcome.",
			},
			[]string{"module", "action", "outcome"},
		),
		StockClassificationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "supply_stock_classifications_total",
				Help: "Total stock classifications by status.",
			},
			[]string{"status"},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "supply_http_requests_total",
				Help: "Total HTTP requests by method, path and status.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "supply_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		ActiveRequests: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "supply_http_active_requests",
				Help: "Number of HTTP requests currently being served.",
			},
		),
	}

	m.registry.MustRegister(
		m.AuthzDecisionsTotal,
		m.StockClassificationsTotal,
		m.HTTPRequestsTotal,
		m.HTTPRequestDurationSeconds,
		m.ActiveRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry for scraping and tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordAuthzDecision records a single allow or deny outcome.
func (m *Metrics) RecordAuthzDecision(module, action string, allowed bool) {
	outcome := OutcomeDenied
	if allowed {
		outcome = OutcomeAllowed
	}
	m.AuthzDecisionsTotal.WithLabelValues(module, action, outcome).Inc()
}

// RecordStockClassification records one classified quantity.
func (m *Metrics) RecordStockClassification(status string) {
	m.StockClassificationsTotal.WithLabelValues(status).Inc()
}

// RecordStockClassifications records n classifications of one status, as
// produced by a report run.
func (m *Metrics) RecordStockClassifications(status string, n int) {
	if n <= 0 {
		return
	}
	m.StockClassificationsTotal.WithLabelValues(status).Add(float64(n))
}

// Middleware tracks request count, latency and in-flight requests.
// Paths are labelled by route template to keep cardinality bounded.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			m.ActiveRequests.Inc()
			start := time.Now()

			err := next(c)
			if err != nil {
				// let the error handler write the response so the status is final
				c.Error(err)
			}

			m.ActiveRequests.Dec()

			path := c.Path()
			if path == "" {
				path = unmatchedPath
			}
			method := c.Request().Method
			status := strconv.Itoa(c.Response().Status)

			m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
			m.HTTPRequestDurationSeconds.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

			return nil
		}
	}
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RegisterMetricsRoute adds the /metrics scrape endpoint
func (m *Metrics) RegisterMetricsRoute(e *echo.Echo) {
	e.GET("/metrics", echo.WrapHandler(m.Handler()))
}
