package customer

import "github.com/easybill/backend/internal/domain/shared"

// ErrCustomerNotFound is returned when a customer is absent or belongs to another account
var ErrCustomerNotFound = shared.NewDomainError(shared.CodeNotFound, "Customer not found")
