package dto

import (
	"time"

	"github.com/easybill/backend/internal/domain/shared"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Message   string              `json:"message"`
	Code      string              `json:"code"`
	Errors    []shared.FieldError `json:"errors,omitempty"`
	RequestID string              `json:"request_id,omitempty"`
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Code:    code,
		Message: message,
	}
}

// WithFields attaches per-field details
func (r ErrorResponse) WithFields(fields []shared.FieldError) ErrorResponse {
	r.Errors = fields
	return r
}

// WithRequestID attaches the request id when one is known
func (r ErrorResponse) WithRequestID(id string) ErrorResponse {
	r.RequestID = id
	return r
}

// OKResponse is returned by delete endpoints
type OKResponse struct {
	OK bool `json:"ok"`
}

// HealthResponse is the body of the health endpoints
type HealthResponse struct {
	OK       bool      `json:"ok"`
	Time     time.Time `json:"time"`
	Database string    `json:"database"`
}

// ListQuery holds the raw pagination query parameters. Values are coerced
// leniently by shared.ParseFilter, so no binding rules apply.
type ListQuery struct {
	Q     string `form:"q"`
	Page  string `form:"page"`
	Limit string `form:"limit"`
}
