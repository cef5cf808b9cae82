package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/easybill/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeInvalidReference, http.StatusBadRequest},
		{ErrCodeDuplicateKey, http.StatusBadRequest},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{ErrCodePayloadTooLarge, http.StatusRequestEntityTooLarge},
		// Unknown code should return 500
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestErrorResponse_JSON(t *testing.T) {
	t.Run("omits empty optional fields", func(t *testing.T) {
		raw, err := json.Marshal(NewErrorResponse(ErrCodeNotFound, "Bill not found"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"message":"Bill not found","code":"NOT_FOUND"}`, string(raw))
	})

	t.Run("includes field errors and request id", func(t *testing.T) {
		resp := NewErrorResponse(ErrCodeValidation, "Validation failed").
			WithFields([]shared.FieldError{{Field: "billNumber", Message: "Bill number is required"}}).
			WithRequestID("req-1")
		raw, err := json.Marshal(resp)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"message":"Validation failed",
			"code":"VALIDATION_FAILED",
			"errors":[{"field":"billNumber","message":"Bill number is required"}],
			"request_id":"req-1"
		}`, string(raw))
	})
}
