// Package metrics defines the Prometheus collectors for the content
// publisher service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Publishing metrics.
var (
	ContentPublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "content_published_total",
		Help: "Total number of content items published",
	}, []string{"platform", "content_type", "status"})

	ContentPublishDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "content_publish_duration_seconds",
		Help:    "Time spent publishing content",
		Buckets: prometheus.DefBuckets,
	}, []string{"platform", "content_type"})

	ContentValidationTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "content_validation_total",
		Help: "Total number of content validations",
	}, []string{"status", "platform"})

	ContentValidationScore = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "content_validation_score",
		Help:    "Content validation scores",
		Buckets: prometheus.LinearBuckets(0, 10, 11),
	}, []string{"platform"})

	PlatformConnectionTests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "platform_connection_tests_total",
		Help: "Total number of platform connection tests",
	}, []string{"platform", "status"})
)

// Batch metrics.
var (
	BatchPublishTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "batch_publish_total",
		Help: "Total number of batch publish operations",
	}, []string{"status"})

	BatchPublishSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "batch_publish_size",
		Help:    "Number of items in batch publish operations",
		Buckets: prometheus.ExponentialBuckets(1, 2, 8),
	})

	BatchPublishDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "batch_publish_duration_seconds",
		Help:    "Time spent on batch publish operations",
		Buckets: prometheus.DefBuckets,
	})
)

// HTTP metrics.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status_code"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	HTTPActiveRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "active_requests",
		Help: "Number of active HTTP requests",
	})
)

// statusLabel converts a success flag to the label value used across
// counters.
func statusLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

// RecordPublish records the outcome and duration of one platform publish
// call.
func RecordPublish(platform, contentType string, success bool, elapsed time.Duration) {
	ContentPublishedTotal.WithLabelValues(platform, contentType, statusLabel(success)).Inc()
	ContentPublishDuration.WithLabelValues(platform, contentType).Observe(elapsed.Seconds())
}

// RecordValidation records one validation run. Platform is empty for the
// generic validator.
func RecordValidation(platform string, valid bool, score int) {
	if platform == "" {
		platform = "generic"
	}
	status := "valid"
	if !valid {
		status = "invalid"
	}
	ContentValidationTotal.WithLabelValues(status, platform).Inc()
	ContentValidationScore.WithLabelValues(platform).Observe(float64(score))
}

// RecordConnectionTest records one platform connectivity check.
func RecordConnectionTest(platform string, connected bool) {
	PlatformConnectionTests.WithLabelValues(platform, statusLabel(connected)).Inc()
}

// RecordBatch records one batch publish operation.
func RecordBatch(success bool, size int, elapsed time.Duration) {
	BatchPublishTotal.WithLabelValues(statusLabel(success)).Inc()
	BatchPublishSize.Observe(float64(size))
	BatchPublishDuration.Observe(elapsed.Seconds())
}
