package customer

import (
	"context"

	"github.com/easybill/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerRepository defines the interface for customer persistence.
// Every method is scoped to an account; records of other accounts behave as absent.
type CustomerRepository interface {
	// FindByIDForAccount returns shared.ErrNotFound when absent or foreign
	FindByIDForAccount(ctx context.Context, accountID, id uuid.UUID) (*Customer, error)

	// FindAllForAccount lists customers, newest first, optionally filtered by name
	FindAllForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]Customer, error)

	// CountForAccount counts customers matching the filter search
	CountForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) (int64, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// DeleteForAccount hard-deletes the customer. Bills referencing it are detached
	// in the same transaction and keep the customer's name.
	DeleteForAccount(ctx context.Context, accountID, id uuid.UUID) error
}
