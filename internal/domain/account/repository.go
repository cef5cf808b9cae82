package account

import (
	"context"

	"github.com/google/uuid"
)

// AccountRepository defines persistence operations for accounts
type AccountRepository interface {
	// FindByID returns shared.ErrNotFound when the account does not exist
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	// FindByEmail looks up by normalized email
	FindByEmail(ctx context.Context, email string) (*Account, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Create inserts a new account; a unique email violation yields shared.ErrDuplicateKey
	Create(ctx context.Context, account *Account) error
}
