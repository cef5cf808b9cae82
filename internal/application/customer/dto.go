package customer

import (
	"time"

	"github.com/easybill/backend/internal/domain/billing"
	"github.com/easybill/backend/internal/domain/customer"
	"github.com/easybill/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CreateCustomerRequest is the body of POST /api/customers
type CreateCustomerRequest struct {
	Name      string `json:"name" binding:"required,max=200"`
	Address   string `json:"address" binding:"max=500"`
	Phone     string `json:"phone" binding:"max=50"`
	GSTNumber string `json:"gstNumber" binding:"max=20"`
}

// UpdateCustomerRequest is the body of PUT /api/customers/:id.
// Omitted fields keep their current value.
type UpdateCustomerRequest struct {
	Name      *string `json:"name" binding:"omitempty,max=200"`
	Address   *string `json:"address" binding:"omitempty,max=500"`
	Phone     *string `json:"phone" binding:"omitempty,max=50"`
	GSTNumber *string `json:"gstNumber" binding:"omitempty,max=20"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	GSTNumber string    `json:"gstNumber"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StatementLineResponse is one bill in a customer statement
type StatementLineResponse struct {
	ID            uuid.UUID     `json:"id"`
	BillNumber    string        `json:"billNumber"`
	Date          time.Time     `json:"date"`
	Subtotal      shared.Amount `json:"subtotal"`
	GST           shared.Amount `json:"gst"`
	Total         shared.Amount `json:"total"`
	PaymentStatus string        `json:"paymentStatus"`
}

// StatementResponse lists a customer's bills and what is still owed
type StatementResponse struct {
	CustomerID  uuid.UUID               `json:"customerId"`
	Bills       []StatementLineResponse `json:"bills"`
	Outstanding shared.Amount           `json:"outstanding"`
}

// ToCustomerResponse converts a domain customer to its response form
func ToCustomerResponse(c *customer.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Address:   c.Address,
		Phone:     c.Phone,
		GSTNumber: c.GSTNumber,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToCustomerResponses converts a slice of customers
func ToCustomerResponses(customers []customer.Customer) []CustomerResponse {
	out := make([]CustomerResponse, len(customers))
	for i := range customers {
		out[i] = ToCustomerResponse(&customers[i])
	}
	return out
}

// ToStatementResponse converts statement lines and the outstanding balance
func ToStatementResponse(customerID uuid.UUID, bills []billing.Bill) StatementResponse {
	lines, outstanding := billing.BuildStatement(bills)
	out := make([]StatementLineResponse, len(lines))
	for i, l := range lines {
		out[i] = StatementLineResponse{
			ID:            l.BillID,
			BillNumber:    l.BillNumber,
			Date:          l.Date,
			Subtotal:      shared.NewAmount(l.Subtotal),
			GST:           shared.NewAmount(l.Tax),
			Total:         shared.NewAmount(l.Total),
			PaymentStatus: string(l.PaymentStatus),
		}
	}
	return StatementResponse{
		CustomerID:  customerID,
		Bills:       out,
		Outstanding: shared.NewAmount(outstanding),
	}
}
