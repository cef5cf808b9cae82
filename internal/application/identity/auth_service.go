package identity

import (
	"context"
	"fmt"

	"github.com/easybill/backend/internal/domain/account"
	"github.com/easybill/backend/internal/domain/shared"
	"github.com/easybill/backend/internal/infrastructure/auth"
	"github.com/easybill/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService registers accounts, logs them in and resolves bearer tokens
type AuthService struct {
	accountRepo account.AccountRepository
	jwtService  *auth.JWTService
}

// NewAuthService creates a new authentication service
func NewAuthService(accountRepo account.AccountRepository, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		accountRepo: accountRepo,
		jwtService:  jwtService,
	}
}

// Register creates an account and issues a token for it
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	pincode := -1
	if req.Pincode != nil {
		pincode = *req.Pincode
	}

	acct, err := account.NewAccount(req.CompanyName, req.Email, req.Password, req.GSTIN, req.Address, pincode)
	if err != nil {
		return nil, err
	}

	exists, err := s.accountRepo.ExistsByEmail(ctx, acct.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, account.ErrEmailTaken
	}

	// The unique email index is authoritative when two registrations race
	if err := s.accountRepo.Create(ctx, acct); err != nil {
		return nil, err
	}

	logger.L(ctx).Info("Account registered", zap.String("account_id", acct.ID.String()))
	return s.issue(acct)
}

// Login verifies credentials. Unknown email and wrong password fail the same way.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	acct, err := s.accountRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if shared.IsNotFound(err) {
			logger.L(ctx).Warn("Login failed: unknown email")
			return nil, account.ErrInvalidCredentials
		}
		return nil, err
	}

	if !acct.VerifyPassword(req.Password) {
		logger.L(ctx).Warn("Login failed: wrong password", zap.String("account_id", acct.ID.String()))
		return nil, account.ErrInvalidCredentials
	}

	return s.issue(acct)
}

// Resolve confirms that the account behind a token still exists
func (s *AuthService) Resolve(ctx context.Context, accountID uuid.UUID) (*account.Account, error) {
	acct, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.ErrUnauthorized
		}
		return nil, err
	}
	return acct, nil
}

// ValidateToken parses a bearer token and resolves its account
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*account.Account, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	accountID, err := claims.AccountUUID()
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	return s.Resolve(ctx, accountID)
}

func (s *AuthService) issue(acct *account.Account) (*AuthResponse, error) {
	token, err := s.jwtService.GenerateToken(acct.ID, acct.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResponse{
		Token:     token.Value,
		ExpiresAt: token.ExpiresAt,
		User:      ToAccountResponse(acct),
	}, nil
}
