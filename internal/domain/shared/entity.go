package shared

import (
	"time"

	"github.com/google/uuid"
)

// Now is the clock used for entity timestamps and default bill dates.
// Timestamps are kept in UTC so month bucketing does not depend on the host zone.
var Now = func() time.Time {
	return time.Now().UTC()
}

// BaseEntity carries the identity and audit timestamps shared by accounts,
// customers and bills.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity creates a base entity with a fresh ID stamped at Now
func NewBaseEntity() BaseEntity {
	now := Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch records a modification
func (e *BaseEntity) Touch() {
	e.UpdatedAt = Now()
}
