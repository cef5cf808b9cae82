package handler

import (
	"context"
	"time"

	"github.com/easybill/backend/internal/infrastructure/logger"
	"github.com/easybill/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger reports whether a backing store is reachable
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports liveness and database reachability
type HealthHandler struct {
	BaseHandler
	db      Pinger
	timeout time.Duration
	now     func() time.Time
}

// NewHealthHandler creates a new HealthHandler. db may be nil, in which case
// the database is reported as "unknown".
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{
		db:      db,
		timeout: 2 * time.Second,
		now:     time.Now,
	}
}

// Health godoc
// @ID           getHealth
// @Summary      Health check
// @Description  Liveness plus the result of a database ping
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	resp := dto.HealthResponse{
		OK:       true,
		Time:     h.now().UTC(),
		Database: "unknown",
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
		defer cancel()

		if err := h.db.PingContext(ctx); err != nil {
			logger.GetGinLogger(c).Warn("database ping failed", zap.Error(err))
			resp.Database = "unreachable"
		} else {
			resp.Database = "connected"
		}
	}

	h.Success(c, resp)
}
