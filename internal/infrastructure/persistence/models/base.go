package models

import (
	"time"

	"github.com/easybill/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// AccountScopedModel adds the owning account to BaseModel
type AccountScopedModel struct {
	BaseModel
	AccountID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// FromDomainAccountScoped populates AccountScopedModel from the domain base
func (m *AccountScopedModel) FromDomainAccountScoped(a shared.AccountScoped) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.AccountID = a.AccountID
}

// ToDomainAccountScoped converts AccountScopedModel to the domain base
func (m *AccountScopedModel) ToDomainAccountScoped() shared.AccountScoped {
	return shared.AccountScoped{
		BaseEntity: m.ToDomain(),
		AccountID:  m.AccountID,
	}
}

// All returns every persistence model in dependency order, for AutoMigrate
func All() []any {
	return []any{
		&AccountModel{},
		&CustomerModel{},
		&BillModel{},
		&BillItemModel{},
	}
}
