// internal/app/system/metrics/metrics.go

// Package metrics instruments the HTTP surface with Prometheus counters and
// exposes them on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "brainhive_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "brainhive_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	mailDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "brainhive_mail_deliveries_total",
		Help: "Count of group notification email deliveries by result",
	}, []string{"result"})

	blobUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "brainhive_blob_uploads_total",
		Help: "Count of material blob uploads by result",
	}, []string{"result"})
)

// ObserveHTTPRequest records one HTTP request.
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveMailDelivery increments the mail counter with result "ok" or "error".
func ObserveMailDelivery(result string) {
	mailDeliveries.WithLabelValues(result).Inc()
}

// ObserveBlobUpload increments the upload counter with result "ok" or "error".
func ObserveBlobUpload(result string) {
	blobUploads.WithLabelValues(result).Inc()
}
