package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/grafana/pyroscope-go"
)

// Pyroscope label keys attached to request profiles
const (
	ProfilingLabelMethod    = "method"
	ProfilingLabelRoute     = "route"
	ProfilingLabelResource  = "resource"
	ProfilingLabelAccountID = "account_id"
)

// ProfilingConfig holds configuration for the profiling middleware.
type ProfilingConfig struct {
	// Enabled controls whether profiling labels are added to requests.
	Enabled bool
}

// ProfilingWithConfig tags CPU samples taken while a request runs with its
// method, route pattern, resource and account, so profiles can be filtered
// in Pyroscope. Mount it after the auth gate to get the account label.
func ProfilingWithConfig(cfg ProfilingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		labels := extractProfilingLabels(c)
		pyroscope.TagWrapper(c.Request.Context(), pyroscope.Labels(labels...), func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

// extractProfilingLabels returns alternating key/value pairs
func extractProfilingLabels(c *gin.Context) []string {
	labels := make([]string, 0, 8)
	labels = append(labels, ProfilingLabelMethod, c.Request.Method)

	route := c.FullPath()
	if route != "" {
		labels = append(labels, ProfilingLabelRoute, route)
	}
	if resource := extractResourceFromRoute(route); resource != "" {
		labels = append(labels, ProfilingLabelResource, resource)
	}
	if id := GetAccountID(c); id != uuid.Nil {
		labels = append(labels, ProfilingLabelAccountID, id.String())
	}
	return labels
}

// extractResourceFromRoute returns the first literal segment after "/api".
// Example: "/api/bills/:id/pdf" -> "bills"
func extractResourceFromRoute(route string) string {
	for _, part := range strings.Split(route, "/") {
		if part == "" || part == "api" || strings.HasPrefix(part, ":") || strings.HasPrefix(part, "*") {
			continue
		}
		return part
	}
	return ""
}
