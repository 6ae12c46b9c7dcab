// Package metrics provides Prometheus metrics collection for the plan service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// ReadinessEvaluationsTotal counts readiness evaluations by outcome.
	ReadinessEvaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readiness_evaluations_total",
			Help: "Total number of readiness evaluations",
		},
		[]string{"status"},
	)

	// ReadinessEvaluationDuration tracks one evaluation's wall time.
	ReadinessEvaluationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "readiness_evaluation_duration_seconds",
			Help:    "Readiness evaluation duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
	)

	// ReadinessItemsByStatus counts evaluated items by their readiness status.
	ReadinessItemsByStatus = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readiness_items_total",
			Help: "Total evaluated plan items by readiness status",
		},
		[]string{"status"},
	)

	// VarianceReportsTotal counts variance reports by outcome.
	VarianceReportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "variance_reports_total",
			Help: "Total number of variance reports built",
		},
		[]string{"status"},
	)

	// VarianceReportDuration tracks one report build's wall time.
	VarianceReportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "variance_report_duration_seconds",
			Help:    "Variance report build duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
	)

	// CacheOperationsTotal tracks readiness cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"operation", "result"},
	)

	// CacheSize tracks current cache size.
	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Current cache size",
		},
	)

	// CacheCapacity tracks cache capacity.
	CacheCapacity = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_capacity",
			Help: "Cache capacity",
		},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordReadinessEvaluation records one readiness evaluation plus the
// per-item status counts it produced.
func RecordReadinessEvaluation(duration time.Duration, status string, ready, onOrder, blocking int) {
	ReadinessEvaluationDuration.Observe(duration.Seconds())
	ReadinessEvaluationsTotal.WithLabelValues(status).Inc()
	ReadinessItemsByStatus.WithLabelValues("READY").Add(float64(ready))
	ReadinessItemsByStatus.WithLabelValues("ON_ORDER").Add(float64(onOrder))
	ReadinessItemsByStatus.WithLabelValues("BLOCKING").Add(float64(blocking))
}

// RecordVarianceReport records one variance report build.
func RecordVarianceReport(duration time.Duration, status string) {
	VarianceReportDuration.Observe(duration.Seconds())
	VarianceReportsTotal.WithLabelValues(status).Inc()
}

// RecordCacheOperation records one cache operation.
func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// UpdateCacheMetrics publishes the cache's current size and capacity.
func UpdateCacheMetrics(size, capacity int) {
	CacheSize.Set(float64(size))
	CacheCapacity.Set(float64(capacity))
}
