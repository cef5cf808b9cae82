package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/easybill/backend/internal/domain/account"
	"github.com/easybill/backend/internal/domain/shared"
	"github.com/easybill/backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator struct {
	tokens map[string]*account.Account
	err    error
}

func (s stubValidator) ValidateToken(_ context.Context, token string) (*account.Account, error) {
	if s.err != nil {
		return nil, s.err
	}
	if a, ok := s.tokens[token]; ok {
		return a, nil
	}
	return nil, shared.ErrUnauthorized
}

func TestJWTAuthMiddleware(t *testing.T) {
	acct, err := account.NewAccount("Acme", "owner@acme.test", "secret1", "", "12 MG Road", 560001)
	require.NoError(t, err)
	validator := stubValidator{tokens: map[string]*account.Account{"good-token": acct}}

	r := gin.New()
	r.Use(JWTAuthMiddleware(validator))
	r.GET("/api/me", func(c *gin.Context) {
		assert.Equal(t, acct, GetAccount(c))
		assert.Equal(t, acct.ID.String(), logger.GetAccountID(c.Request.Context()))
		c.String(http.StatusOK, GetAccountID(c).String())
	})

	tests := []struct {
		name   string
		header string
		code   int
	}{
		{"valid bearer token", "Bearer good-token", http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good-token", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"unknown token", "Bearer bad-token", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
			if tt.header != "" {
				req.Header.Set(AuthHeaderKey, tt.header)
			}
			w := serve(r, req)
			assert.Equal(t, tt.code, w.Code)
			if tt.code == http.StatusOK {
				assert.Equal(t, acct.ID.String(), w.Body.String())
			} else {
				assert.JSONEq(t, `{"message":"Unauthorized"}`, w.Body.String())
			}
		})
	}
}

func TestJWTAuthMiddleware_StoreFailureIsInternal(t *testing.T) {
	validator := stubValidator{err: fmt.Errorf("find account: %w", errors.New("connection refused"))}

	r := gin.New()
	r.Use(RequestID(), JWTAuthMiddleware(validator))
	r.GET("/api/me", func(c *gin.Context) {
		t.Fatal("handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set(AuthHeaderKey, "Bearer good-token")
	req.Header.Set(RequestIDHeader, "req-500")
	w := serve(r, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"code":"INTERNAL_ERROR","message":"Internal server error","request_id":"req-500"}`, w.Body.String())
}

func TestJWTAuthMiddleware_WrappedUnauthorizedIs401(t *testing.T) {
	validator := stubValidator{err: fmt.Errorf("resolve: %w", shared.ErrUnauthorized)}

	r := gin.New()
	r.Use(JWTAuthMiddleware(validator))
	r.GET("/api/me", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set(AuthHeaderKey, "Bearer good-token")
	w := serve(r, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetAccountID_OutsideGate(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, uuid.Nil, GetAccountID(c))
	assert.Nil(t, GetAccount(c))
}
