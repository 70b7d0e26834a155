package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "auraboard",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "auraboard",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	transfersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "auraboard",
			Name:      "aura_transfers_total",
			Help:      "Total number of aura transfer attempts by outcome",
		},
		[]string{"outcome"},
	)

	quotaRejectionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "auraboard",
			Name:      "aura_quota_rejections_total",
			Help:      "Total number of transfers rejected by the daily quota",
		},
	)
)

func init() {
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(transfersTotal)
	prometheus.MustRegister(quotaRejectionsTotal)
}

// ObserveTransfer counts one transfer attempt with the given outcome label.
func ObserveTransfer(outcome string) {
	transfersTotal.WithLabelValues(outcome).Inc()
}

// ObserveQuotaRejection counts one quota-rejected transfer.
func ObserveQuotaRejection() {
	quotaRejectionsTotal.Inc()
}

// Middleware records HTTP request duration and count per route pattern.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		// Use the route pattern to keep label cardinality bounded.
		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}

		httpRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}
