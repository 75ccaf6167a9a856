package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// routeUnmatched labels every request that hit no registered route.
const routeUnmatched = "unmatched"

var (
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "payhook",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"route", "method", "status_code"},
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "payhook",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"route", "method", "status_code"},
	)

	HTTPRequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "payhook",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Requests currently being served",
		},
	)

	// HTTPRequestBytes tracks declared body sizes; webhook bodies are capped
	// at 1 MiB.
	HTTPRequestBytes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "payhook",
			Subsystem: "http",
			Name:      "request_size_bytes",
			Help:      "Declared HTTP request body size",
			Buckets:   prometheus.ExponentialBuckets(256, 4, 8),
		},
		[]string{"route"},
	)
)

func init() {
	Registry.MustRegister(HTTPRequestDuration, HTTPRequestsTotal, HTTPRequestsInFlight, HTTPRequestBytes)
}

// GinMiddleware records latency, status and body size per route template.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		HTTPRequestsInFlight.Inc()
		defer HTTPRequestsInFlight.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = routeUnmatched
		}
		status := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(route, method, status).Observe(time.Since(start).Seconds())
		HTTPRequestsTotal.WithLabelValues(route, method, status).Inc()
		if c.Request.ContentLength > 0 {
			HTTPRequestBytes.WithLabelValues(route).Observe(float64(c.Request.ContentLength))
		}
	}
}
