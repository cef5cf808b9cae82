package middleware

import (
	"net/http"
	"net/netip"
	"strings"

	"github.com/easybill/backend/internal/infrastructure/config"
	"github.com/easybill/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// SwaggerConfig holds configuration for Swagger endpoint protection
type SwaggerConfig struct {
	Enabled     bool
	RequireAuth bool
	AllowedIPs  []string // single IPs or CIDR ranges, empty allows every client
}

// SwaggerConfigFrom builds the protection settings from the swagger config section
func SwaggerConfigFrom(cfg config.SwaggerConfig) SwaggerConfig {
	return SwaggerConfig{
		Enabled:     cfg.Enabled,
		RequireAuth: cfg.RequireAuth,
		AllowedIPs:  cfg.AllowedIPs,
	}
}

// SwaggerProtection guards the API documentation: 404 when disabled, 403
// outside the IP allow-list, and the auth gate when RequireAuth is set.
// Unparsable allow-list entries are ignored.
func SwaggerProtection(cfg SwaggerConfig, authGate gin.HandlerFunc) gin.HandlerFunc {
	allowed := parseAllowList(cfg.AllowedIPs)
	restricted := len(cfg.AllowedIPs) > 0

	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.AbortWithStatusJSON(http.StatusNotFound,
				dto.NewErrorResponse(dto.ErrCodeNotFound, "API documentation is not available"))
			return
		}

		if restricted && !ipAllowed(clientAddr(c), allowed) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": "Access to API documentation is restricted",
				"code":    "FORBIDDEN",
			})
			return
		}

		if cfg.RequireAuth && authGate != nil {
			authGate(c)
			if c.IsAborted() {
				return
			}
		}

		c.Next()
	}
}

// parseAllowList turns "10.0.0.1" and "10.0.0.0/8" entries into prefixes
func parseAllowList(entries []string) []netip.Prefix {
	prefixes := make([]netip.Prefix, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if strings.Contains(entry, "/") {
			if p, err := netip.ParsePrefix(entry); err == nil {
				prefixes = append(prefixes, p.Masked())
			}
			continue
		}
		if addr, err := netip.ParseAddr(entry); err == nil {
			prefixes = append(prefixes, netip.PrefixFrom(addr.Unmap(), addr.Unmap().BitLen()))
		}
	}
	return prefixes
}

// clientAddr uses gin's ClientIP, which honours the trusted proxies
func clientAddr(c *gin.Context) netip.Addr {
	addr, err := netip.ParseAddr(c.ClientIP())
	if err != nil {
		return netip.Addr{}
	}
	return addr.Unmap()
}

func ipAllowed(addr netip.Addr, allowed []netip.Prefix) bool {
	if !addr.IsValid() {
		return false
	}
	for _, p := range allowed {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
