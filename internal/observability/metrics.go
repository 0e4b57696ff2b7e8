package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RidesPublished = promauto.NewCounter(prometheus.CounterOpts{Namespace: "jamride", Name: "rides_published_total", Help: "Total number of rides published"})
	RidesExpired   = promauto.NewCounter(prometheus.CounterOpts{Namespace: "jamride", Name: "rides_expired_total", Help: "Total number of rides evicted by expiry"})
	ThreadsStarted = promauto.NewCounter(prometheus.CounterOpts{Namespace: "jamride", Name: "chat_threads_started_total", Help: "Total number of join-request threads opened"})
	MessagesSent   = promauto.NewCounter(prometheus.CounterOpts{Namespace: "jamride", Name: "chat_messages_total", Help: "Total number of chat messages appended"})

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "jamride", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jamride",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// GinMiddleware records per-route request counts and latency.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		HTTPRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}
