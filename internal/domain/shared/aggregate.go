package shared

import (
	"github.com/google/uuid"
)

// AccountScoped is embedded by every aggregate owned by a single account (tenant).
// Repositories always filter on AccountID, so a record of another account is never
// returned, only reported as not found.
type AccountScoped struct {
	BaseEntity
	AccountID uuid.UUID
}

// OwnedBy reports whether the aggregate belongs to the given account
func (a *AccountScoped) OwnedBy(accountID uuid.UUID) bool {
	return a.AccountID == accountID
}

// NewAccountScoped creates a new account-scoped base with generated ID
func NewAccountScoped(accountID uuid.UUID) AccountScoped {
	return AccountScoped{
		BaseEntity: NewBaseEntity(),
		AccountID:  accountID,
	}
}
