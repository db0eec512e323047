// Package monitoring exposes Prometheus metrics for the API.
package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the API.
type Metrics struct {
	HTTPRequestsTotal *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec
	CacheReadsTotal   *prometheus.CounterVec
	ExportsPublished  prometheus.Counter
}

// NewMetrics creates a new metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "openmusic_http_requests_total",
			Help: "The total number of HTTP requests served",
		}, []string{"method", "path", "status"}),
		HTTPDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "openmusic_http_request_duration_seconds",
			Help:    "The duration of HTTP request handling in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		CacheReadsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "openmusic_cache_reads_total",
			Help: "The total number of cache-aside reads by data source",
		}, []string{"source"}),
		ExportsPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "openmusic_exports_published_total",
			Help: "The total number of playlist export requests published",
		}),
	}
}

// RequestMiddleware tracks request counts and latencies per route.
func (m *Metrics) RequestMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		startedAt := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(startedAt).Seconds())
	}
}

// ObserveCacheRead records the source tag of one cache-aside read.
func (m *Metrics) ObserveCacheRead(source string) {
	m.CacheReadsTotal.WithLabelValues(source).Inc()
}

// Handler serves the /metrics endpoint.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
