package customer

import (
	"strings"

	"github.com/easybill/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Customer is a party billed by an account. Owned by exactly one account.
type Customer struct {
	shared.AccountScoped
	Name      string
	Address   string
	Phone     string
	GSTNumber string
}

// NewCustomer creates a new customer owned by accountID
func NewCustomer(accountID uuid.UUID, name, address, phone, gstNumber string) (*Customer, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}

	return &Customer{
		AccountScoped: shared.NewAccountScoped(accountID),
		Name:          name,
		Address:       address,
		Phone:         phone,
		GSTNumber:     gstNumber,
	}, nil
}

// Update replaces the customer's details
func (c *Customer) Update(name, address, phone, gstNumber string) error {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return err
	}

	c.Name = name
	c.Address = address
	c.Phone = phone
	c.GSTNumber = gstNumber
	c.Touch()

	return nil
}

func validateName(name string) error {
	if name == "" {
		return shared.NewValidationError(shared.FieldError{Field: "name", Message: "Name is required"})
	}
	if len(name) > 200 {
		return shared.NewValidationError(shared.FieldError{Field: "name", Message: "Name cannot exceed 200 characters"})
	}
	return nil
}
