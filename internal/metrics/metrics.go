// Package metrics exposes Prometheus collectors for the HTTP API and the
// job board's domain events.
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

const namespace = "pegawe"

// Metrics holds the collectors registered on one registry
type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	applications     prometheus.Counter
	duplicateApplies prometheus.Counter
	bookmarkToggles  *prometheus.CounterVec
	reviews          *prometheus.CounterVec
	bulkUpdatedJobs  prometheus.Counter
}

// New creates the collectors on a fresh registry, together with the Go and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		applications: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "applications_submitted_total",
			Help:      "Applications accepted.",
		}),
		duplicateApplies: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "applications_duplicate_total",
			Help:      "Applications rejected because the user already applied.",
		}),
		bookmarkToggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookmark_toggles_total",
			Help:      "Bookmark toggles by resulting state.",
		}, []string{"state"}),
		reviews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reviews_submitted_total",
			Help:      "Review submissions by outcome (created or updated).",
		}, []string{"outcome"}),
		bulkUpdatedJobs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bulk_updated_jobs_total",
			Help:      "Jobs changed by admin bulk updates.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.requestDuration,
		m.applications,
		m.duplicateApplies,
		m.bookmarkToggles,
		m.reviews,
		m.bulkUpdatedJobs,
	)
	return m
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the exposition format for the registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records one request sample per handled request. The route label
// is the registered path pattern, so ids do not explode cardinality.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			// Errors are rendered here so the recorded status is the one sent.
			if err := next(c); err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method

			m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			m.requestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}

// ApplicationSubmitted counts an accepted application
func (m *Metrics) ApplicationSubmitted() {
	m.applications.Inc()
}

// DuplicateApplication counts an application rejected as a duplicate
func (m *Metrics) DuplicateApplication() {
	m.duplicateApplies.Inc()
}

// BookmarkToggled counts a toggle by its resulting state
func (m *Metrics) BookmarkToggled(bookmarked bool) {
	state := "removed"
	if bookmarked {
		state = "added"
	}
	m.bookmarkToggles.WithLabelValues(state).Inc()
}

// ReviewSubmitted counts a review by whether it created a row
func (m *Metrics) ReviewSubmitted(created bool) {
	outcome := "updated"
	if created {
		outcome = "created"
	}
	m.reviews.WithLabelValues(outcome).Inc()
}

// JobsBulkUpdated adds the number of rows a bulk update changed
func (m *Metrics) JobsBulkUpdated(n int64) {
	m.bulkUpdatedJobs.Add(float64(n))
}
