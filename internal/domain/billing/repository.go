package billing

import (
	"context"

	"github.com/easybill/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BillRepository defines the interface for bill persistence.
// Every method is scoped to an account; bills of other accounts behave as absent.
type BillRepository interface {
	// FindByIDForAccount returns shared.ErrNotFound when absent or foreign
	FindByIDForAccount(ctx context.Context, accountID, id uuid.UUID) (*Bill, error)

	// FindAllForAccount lists bills by date descending. filter.Search matches the
	// bill number or the customer name, case-insensitively.
	FindAllForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]Bill, error)

	// CountForAccount counts bills matching the filter search
	CountForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) (int64, error)

	// FindByCustomer returns all bills of one customer, date descending
	FindByCustomer(ctx context.Context, accountID, customerID uuid.UUID) ([]Bill, error)

	// FindAllUnpaged returns every bill of the account with items loaded
	FindAllUnpaged(ctx context.Context, accountID uuid.UUID) ([]Bill, error)

	// ExistsByBillNumber checks (account, billNumber) uniqueness, optionally excluding one bill
	ExistsByBillNumber(ctx context.Context, accountID uuid.UUID, billNumber string, excludeID *uuid.UUID) (bool, error)

	// Save creates or updates a bill and replaces its items.
	// A violation of the (account, bill number) unique index yields shared.ErrDuplicateKey.
	Save(ctx context.Context, bill *Bill) error

	// DeleteForAccount hard-deletes a bill and its items
	DeleteForAccount(ctx context.Context, accountID, id uuid.UUID) error
}
