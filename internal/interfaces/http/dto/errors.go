package dto

import (
	"net/http"

	"github.com/easybill/backend/internal/domain/shared"
)

// Error codes returned in the "code" field of error bodies.
// The domain codes are re-exported so handlers need a single import.
const (
	ErrCodeValidation       = shared.CodeValidationFailed
	ErrCodeUnauthorized     = shared.CodeUnauthorized
	ErrCodeInvalidReference = shared.CodeInvalidReference
	ErrCodeDuplicateKey     = shared.CodeDuplicateKey
	ErrCodeNotFound         = shared.CodeNotFound
	ErrCodeInternal         = shared.CodeInternal
)

// Transport-only error codes
const (
	// ErrCodeRateLimited is used when a client exceeds its request budget
	ErrCodeRateLimited = "RATE_LIMITED"
	// ErrCodePayloadTooLarge is used when the body exceeds the configured limit
	ErrCodePayloadTooLarge = "PAYLOAD_TOO_LARGE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeValidation:       http.StatusBadRequest,
	ErrCodeUnauthorized:     http.StatusUnauthorized,
	ErrCodeInvalidReference: http.StatusBadRequest,
	ErrCodeDuplicateKey:     http.StatusBadRequest,
	ErrCodeNotFound:         http.StatusNotFound,
	ErrCodeInternal:         http.StatusInternalServerError,

	ErrCodeRateLimited:     http.StatusTooManyRequests,
	ErrCodePayloadTooLarge: http.StatusRequestEntityTooLarge,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
