package cloudagents

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cloudagents_client",
			Name:      "requests_total",
			Help:      "API requests by HTTP method and status code (\"error\" for transport failures).",
		},
		[]string{"method", "code"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cloudagents_client",
			Name:      "request_duration_seconds",
			Help:      "Time from sending an API request to reading its full response.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

func observeRequest(method, code string, elapsed time.Duration) {
	requestsTotal.WithLabelValues(method, code).Inc()
	requestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

func statusLabel(statusCode int) string {
	return strconv.Itoa(statusCode)
}
