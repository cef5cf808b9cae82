package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPMetricsConfig holds configuration for HTTP metrics middleware.
type HTTPMetricsConfig struct {
	// Registerer receives the collectors; prometheus.DefaultRegisterer when nil.
	Registerer prometheus.Registerer
	// Namespace prefixes every metric name.
	Namespace string
	// Enabled controls whether metrics collection is active.
	Enabled bool
}

// DefaultHTTPMetricsConfig returns default HTTP metrics configuration.
func DefaultHTTPMetricsConfig() HTTPMetricsConfig {
	return HTTPMetricsConfig{
		Namespace: "easybill",
		Enabled:   true,
	}
}

// httpMetrics holds all HTTP-related collectors.
type httpMetrics struct {
	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestSize     *prometheus.HistogramVec
	responseSize    *prometheus.HistogramVec
	activeRequests  prometheus.Gauge
}

func newHTTPMetrics(namespace string) *httpMetrics {
	sizeBuckets := []float64{100, 500, 1000, 5000, 10000, 50000, 100000, 500000, 1000000, 5000000}
	labels := []string{"method", "route"}

	return &httpMetrics{
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_server_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status_code", "status_group"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_server_request_duration_seconds",
			Help:      "HTTP request latency distribution in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, labels),
		requestSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_server_request_size_bytes",
			Help:      "HTTP request body size distribution in bytes",
			Buckets:   sizeBuckets,
		}, labels),
		responseSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_server_response_size_bytes",
			Help:      "HTTP response body size distribution in bytes",
			Buckets:   sizeBuckets,
		}, labels),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_server_active_requests",
			Help:      "Number of currently active HTTP requests",
		}),
	}
}

func (m *httpMetrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.requestTotal, m.requestDuration, m.requestSize, m.responseSize, m.activeRequests}
}

// HTTPMetrics returns a Gin middleware that records request count, latency,
// request and response sizes and in-flight requests, labelled by route pattern.
// Registration failures (e.g. a second registration on the same registry)
// panic, as prometheus.MustRegister does.
func HTTPMetrics(cfg HTTPMetricsConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	reg := cfg.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	metrics := newHTTPMetrics(cfg.Namespace)
	reg.MustRegister(metrics.collectors()...)

	return httpMetricsMiddleware(metrics)
}

// httpMetricsMiddleware is the core middleware logic, extracted for reuse.
func httpMetricsMiddleware(metrics *httpMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestSize := getRequestSize(c)

		metrics.activeRequests.Inc()
		c.Next()
		metrics.activeRequests.Dec()

		route := getRoutePattern(c)
		method := c.Request.Method
		statusCode := c.Writer.Status()

		metrics.requestTotal.WithLabelValues(method, route, strconv.Itoa(statusCode), HTTPMetricsStatusGroup(statusCode)).Inc()
		metrics.requestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		if requestSize > 0 {
			metrics.requestSize.WithLabelValues(method, route).Observe(float64(requestSize))
		}
		if responseSize := c.Writer.Size(); responseSize > 0 {
			metrics.responseSize.WithLabelValues(method, route).Observe(float64(responseSize))
		}
	}
}

// MetricsHandler exposes the gatherer in the Prometheus text format.
// prometheus.DefaultGatherer is used when g is nil.
func MetricsHandler(g prometheus.Gatherer) gin.HandlerFunc {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	return gin.WrapH(promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
}

// getRoutePattern returns the route pattern (e.g., "/api/bills/:id")
// instead of the actual path to keep label cardinality bounded.
func getRoutePattern(c *gin.Context) string {
	route := c.FullPath()
	if route == "" {
		return "unknown"
	}
	return route
}

// getRequestSize returns the declared size of the request body.
func getRequestSize(c *gin.Context) int64 {
	if cl := c.Request.ContentLength; cl > 0 {
		return cl
	}
	return 0
}

// HTTPMetricsStatusGroup buckets a status code into its class (2xx, 4xx, ...).
func HTTPMetricsStatusGroup(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return "2xx"
	case statusCode >= 300 && statusCode < 400:
		return "3xx"
	case statusCode >= 400 && statusCode < 500:
		return "4xx"
	case statusCode >= 500:
		return "5xx"
	default:
		return "other"
	}
}
