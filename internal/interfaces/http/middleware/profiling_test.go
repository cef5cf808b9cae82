package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestExtractResourceFromRoute(t *testing.T) {
	tests := map[string]string{
		"/api/bills/:id/pdf":      "bills",
		"/api/customers":          "customers",
		"/api/statements/monthly": "statements",
		"/health":                 "health",
		"/swagger/*any":           "swagger",
		"":                        "",
	}
	for route, expected := range tests {
		assert.Equal(t, expected, extractResourceFromRoute(route), route)
	}
}

func TestProfilingWithConfig(t *testing.T) {
	accountID := uuid.New()
	var labels []string

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(AccountIDKey, accountID)
		c.Next()
	}, ProfilingWithConfig(ProfilingConfig{Enabled: true}))
	r.GET("/api/bills/:id", func(c *gin.Context) {
		labels = extractProfilingLabels(c)
		c.Status(http.StatusOK)
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/bills/1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{
		ProfilingLabelMethod, "GET",
		ProfilingLabelRoute, "/api/bills/:id",
		ProfilingLabelResource, "bills",
		ProfilingLabelAccountID, accountID.String(),
	}, labels)
}

func TestProfilingWithConfig_Disabled(t *testing.T) {
	r := okRouter(ProfilingWithConfig(ProfilingConfig{}))
	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/test", nil)).Code)
}
