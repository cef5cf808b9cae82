package account

import "github.com/easybill/backend/internal/domain/shared"

// Identity errors
var (
	ErrEmailTaken         = shared.NewFieldError(shared.CodeDuplicateKey, "Email already registered", "email", "Email already registered")
	ErrInvalidCredentials = shared.NewDomainError(shared.CodeUnauthorized, "Invalid credentials")
)
