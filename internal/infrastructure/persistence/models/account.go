package models

import (
	"github.com/easybill/backend/internal/domain/account"
)

// AccountModel is the persistence model for the Account aggregate
type AccountModel struct {
	BaseModel
	CompanyName  string `gorm:"type:varchar(200);not null"`
	GSTIN        string `gorm:"column:gstin;type:varchar(50);not null"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex:uq_accounts_email"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Address      string `gorm:"type:text;not null"`
	Pincode      int    `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts the persistence model to a domain Account
func (m *AccountModel) ToDomain() *account.Account {
	return &account.Account{
		BaseEntity:   m.BaseModel.ToDomain(),
		CompanyName:  m.CompanyName,
		GSTIN:        m.GSTIN,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Address:      m.Address,
		Pincode:      m.Pincode,
	}
}

// FromDomain populates the persistence model from a domain Account
func (m *AccountModel) FromDomain(a *account.Account) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.CompanyName = a.CompanyName
	m.GSTIN = a.GSTIN
	m.Email = a.Email
	m.PasswordHash = a.PasswordHash
	m.Address = a.Address
	m.Pincode = a.Pincode
}

// AccountModelFromDomain creates a new persistence model from a domain Account
func AccountModelFromDomain(a *account.Account) *AccountModel {
	m := &AccountModel{}
	m.FromDomain(a)
	return m
}
