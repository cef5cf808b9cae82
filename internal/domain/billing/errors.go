package billing

import "github.com/easybill/backend/internal/domain/shared"

// Billing errors
var (
	ErrBillNotFound        = shared.NewDomainError(shared.CodeNotFound, "Bill not found")
	ErrDuplicateBillNumber = shared.NewFieldError(shared.CodeDuplicateKey, "Duplicate bill number", "billNumber", "This bill number already exists")
	ErrCustomerReference   = shared.NewFieldError(shared.CodeInvalidReference, "Customer not found", "customerId", "Customer does not exist")
)
