package models

import (
	"github.com/easybill/backend/internal/domain/customer"
)

// CustomerModel is the persistence model for the Customer aggregate
type CustomerModel struct {
	AccountScopedModel
	Name      string `gorm:"type:varchar(200);not null"`
	Address   string `gorm:"type:text;not null"`
	Phone     string `gorm:"type:varchar(50);not null"`
	GSTNumber string `gorm:"column:gst_number;type:varchar(50);not null"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer
func (m *CustomerModel) ToDomain() *customer.Customer {
	return &customer.Customer{
		AccountScoped: m.ToDomainAccountScoped(),
		Name:          m.Name,
		Address:       m.Address,
		Phone:         m.Phone,
		GSTNumber:     m.GSTNumber,
	}
}

// FromDomain populates the persistence model from a domain Customer
func (m *CustomerModel) FromDomain(c *customer.Customer) {
	m.FromDomainAccountScoped(c.AccountScoped)
	m.Name = c.Name
	m.Address = c.Address
	m.Phone = c.Phone
	m.GSTNumber = c.GSTNumber
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer
func CustomerModelFromDomain(c *customer.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}
