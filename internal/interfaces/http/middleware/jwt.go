package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/easybill/backend/internal/domain/account"
	"github.com/easybill/backend/internal/domain/shared"
	"github.com/easybill/backend/internal/infrastructure/logger"
	"github.com/easybill/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Auth context keys
const (
	AccountKey    = "account"
	AccountIDKey  = "account_id"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// TokenValidator resolves a bearer token to the account it was issued for.
// shared.ErrUnauthorized means the token is not acceptable; any other error
// is a fault while checking it.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*account.Account, error)
}

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	Validator TokenValidator
	// Logger receives a warning per rejected request when set
	Logger *zap.Logger
}

// JWTAuthMiddleware rejects requests without a valid bearer token
func JWTAuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return JWTAuthMiddlewareWithConfig(JWTMiddlewareConfig{Validator: validator})
}

// JWTAuthMiddlewareWithConfig creates JWT authentication middleware with custom config
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			rejectUnauthorized(c, cfg, "Missing authorization header", nil)
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			rejectUnauthorized(c, cfg, "Invalid authorization header format", nil)
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerPrefix))
		if tokenString == "" {
			rejectUnauthorized(c, cfg, "Missing token", nil)
			return
		}

		acct, err := cfg.Validator.ValidateToken(c.Request.Context(), tokenString)
		if errors.Is(err, shared.ErrUnauthorized) {
			rejectUnauthorized(c, cfg, "Token validation failed", err)
			return
		}
		if err != nil {
			abortInternal(c, cfg, err)
			return
		}

		c.Set(AccountKey, acct)
		c.Set(AccountIDKey, acct.ID)

		ctx := c.Request.Context()
		ctx, reqLogger := logger.WithAccountID(ctx, logger.FromContext(ctx), acct.ID.String())
		c.Request = c.Request.WithContext(ctx)
		c.Set("logger", reqLogger)

		c.Next()
	}
}

func rejectUnauthorized(c *gin.Context, cfg JWTMiddlewareConfig, reason string, err error) {
	if cfg.Logger != nil {
		cfg.Logger.Warn("JWT authentication failed",
			zap.String("reason", reason),
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
}

// abortInternal answers 500 when the account could not be looked up, so a
// store outage is not reported as a bad credential
func abortInternal(c *gin.Context, cfg JWTMiddlewareConfig, err error) {
	if cfg.Logger != nil {
		cfg.Logger.Error("JWT authentication could not resolve account",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError,
		dto.NewErrorResponse(dto.ErrCodeInternal, "Internal server error").WithRequestID(c.GetString(RequestIDKey)))
}

// GetAccountID returns the authenticated account ID, or uuid.Nil outside the gate
func GetAccountID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(AccountIDKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

// GetAccount returns the authenticated account, or nil outside the gate
func GetAccount(c *gin.Context) *account.Account {
	if v, ok := c.Get(AccountKey); ok {
		if a, ok := v.(*account.Account); ok {
			return a
		}
	}
	return nil
}
