// Package metrics holds the Prometheus collectors for catalog queries,
// report builds and HTTP traffic.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_query_duration_seconds",
			Help:    "Duration of catalog queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"query"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_query_errors_total",
			Help: "Total number of failed catalog queries",
		},
		[]string{"query"},
	)

	ImportedTitles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_imported_titles_total",
			Help: "Titles written by catalog imports",
		},
		[]string{"kind"},
	)

	// Report Metrics
	ReportBuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_report_build_duration_seconds",
			Help:    "Time to build the full report",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"locale"},
	)

	// HTTP Metrics
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
)

// ObserveQuery records the duration of a named query and counts it as an
// error when err is non-nil.
func ObserveQuery(query string, start time.Time, err error) {
	DBQueryDuration.WithLabelValues(query).Observe(time.Since(start).Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(query).Inc()
	}
}

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	HTTPRequestDuration.WithLabelValues(method, route, code).Observe(duration.Seconds())
	HTTPRequestsTotal.WithLabelValues(method, route, code).Inc()
}
