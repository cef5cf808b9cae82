package handler

import (
	"errors"
	"net/http"

	"github.com/easybill/backend/internal/domain/shared"
	"github.com/easybill/backend/internal/infrastructure/logger"
	"github.com/easybill/backend/internal/interfaces/http/dto"
	"github.com/easybill/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString(middleware.RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(middleware.RequestIDHeader)
}

// Success sends a 200 response with the body as-is
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// OK sends the {"ok":true} acknowledgement used by delete endpoints
func (h *BaseHandler) OK(c *gin.Context) {
	c.JSON(http.StatusOK, dto.OKResponse{OK: true})
}

// Error sends an error response, deriving the status code from the error code
func (h *BaseHandler) Error(c *gin.Context, code, message string, fields ...shared.FieldError) {
	resp := dto.NewErrorResponse(code, message).WithRequestID(getRequestID(c))
	if len(fields) > 0 {
		resp = resp.WithFields(fields)
	}
	c.JSON(dto.GetHTTPStatus(code), resp)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, dto.ErrCodeNotFound, message)
}

// HandleError converts domain errors to HTTP responses. Anything that is not a
// domain error is logged and reported as INTERNAL_ERROR without details.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.Error(c, domainErr.Code, domainErr.Message, domainErr.Fields...)
		return
	}

	_ = c.Error(err)
	logger.GetGinLogger(c).Error("request failed",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	h.Error(c, dto.ErrCodeInternal, "Internal server error")
}

// bindJSON binds the request body and reports binding failures as VALIDATION_FAILED.
// It returns false once a response has been written.
func (h *BaseHandler) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.HandleError(c, middleware.BindingError(err))
		return false
	}
	return true
}

// parseID parses a path id. A malformed id cannot match any record, so it is
// reported as NOT_FOUND with the given message.
func (h *BaseHandler) parseID(c *gin.Context, param, notFound string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		h.NotFound(c, notFound)
		return uuid.Nil, false
	}
	return id, true
}

// listFilter reads q/page/limit leniently
func listFilter(c *gin.Context) shared.Filter {
	var q dto.ListQuery
	_ = c.ShouldBindQuery(&q)
	return shared.ParseFilter(q.Q, q.Page, q.Limit)
}
