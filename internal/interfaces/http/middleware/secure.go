package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// SecurityConfig holds configuration for security headers
type SecurityConfig struct {
	HSTSEnabled           bool
	HSTSMaxAge            int // seconds
	HSTSIncludeSubdomains bool

	// CSPDirective applies to every response except paths under CSPSkipPrefixes.
	CSPDirective    string
	CSPSkipPrefixes []string
}

// DefaultSecurityConfig returns header settings for a JSON and PDF API.
// The Swagger UI needs scripts and styles, so it is exempt from the CSP.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		HSTSMaxAge:            31536000,
		HSTSIncludeSubdomains: true,
		CSPDirective:          "default-src 'none'; frame-ancestors 'none'; base-uri 'none'",
		CSPSkipPrefixes:       []string{"/swagger"},
	}
}

// SecurityConfigFor returns the defaults with HSTS switched on in production,
// where the service sits behind TLS.
func SecurityConfigFor(env string) SecurityConfig {
	cfg := DefaultSecurityConfig()
	cfg.HSTSEnabled = env == "production"
	return cfg
}

// Secure adds security headers to responses using default configuration
func Secure() gin.HandlerFunc {
	return SecureWithConfig(DefaultSecurityConfig())
}

// SecureWithConfig adds security headers to responses with custom configuration
func SecureWithConfig(cfg SecurityConfig) gin.HandlerFunc {
	var hsts string
	if cfg.HSTSEnabled {
		hsts = fmt.Sprintf("max-age=%d", cfg.HSTSMaxAge)
		if cfg.HSTSIncludeSubdomains {
			hsts += "; includeSubDomains"
		}
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Cross-Origin-Resource-Policy", "same-origin")

		if cfg.CSPDirective != "" && !hasAnyPrefix(c.Request.URL.Path, cfg.CSPSkipPrefixes) {
			h.Set("Content-Security-Policy", cfg.CSPDirective)
		}
		if hsts != "" {
			h.Set("Strict-Transport-Security", hsts)
		}

		c.Next()
	}
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
