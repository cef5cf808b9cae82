package billing

import (
	"strings"
	"time"

	"github.com/easybill/backend/internal/domain/billing"
	"github.com/easybill/backend/internal/domain/customer"
	"github.com/easybill/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Accepted layouts for the bill date, tried in order
var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// LineItemRequest is one item of a bill body
type LineItemRequest struct {
	Description string        `json:"description" binding:"max=500"`
	Rate        shared.Amount `json:"rate"`
	Quantity    shared.Amount `json:"quantity"`
}

// CreateBillRequest is the body of POST /api/bills
type CreateBillRequest struct {
	BillNumber    string            `json:"billNumber" binding:"max=100"`
	CustomerID    string            `json:"customerId"`
	Date          string            `json:"date"`
	Items         []LineItemRequest `json:"items" binding:"dive"`
	GSTRate       shared.Amount     `json:"gstRate"`
	PaymentStatus string            `json:"paymentStatus"`
	PaymentMethod string            `json:"paymentMethod" binding:"max=100"`
	Notes         string            `json:"notes" binding:"max=2000"`
}

// UpdateBillRequest is the body of PUT /api/bills/:id.
// Omitted fields keep their value; items, when present, replace the whole list.
type UpdateBillRequest struct {
	BillNumber    *string           `json:"billNumber" binding:"omitempty,max=100"`
	CustomerID    *string           `json:"customerId"`
	Date          *string           `json:"date"`
	Items         []LineItemRequest `json:"items" binding:"omitempty,dive"`
	GSTRate       *shared.Amount    `json:"gstRate"`
	PaymentStatus *string           `json:"paymentStatus"`
	PaymentMethod *string           `json:"paymentMethod" binding:"omitempty,max=100"`
	Notes         *string           `json:"notes" binding:"omitempty,max=2000"`
}

// PaymentStatusRequest is the body of PATCH /api/bills/:id/payment
type PaymentStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Method string `json:"method" binding:"max=100"`
}

// LineItemResponse is a bill item with its derived amount
type LineItemResponse struct {
	Description string        `json:"description"`
	Rate        shared.Amount `json:"rate"`
	Quantity    shared.Amount `json:"quantity"`
	Amount      shared.Amount `json:"amount"`
}

// TotalsResponse carries the derived bill amounts
type TotalsResponse struct {
	Subtotal shared.Amount `json:"subtotal"`
	GST      shared.Amount `json:"gst"`
	Total    shared.Amount `json:"total"`
}

// BillCustomer is the customer embedded in a bill response. A deleted
// customer has a nil ID, the name it had and Deleted set.
type BillCustomer struct {
	ID        *uuid.UUID `json:"id"`
	Name      string     `json:"name"`
	Address   string     `json:"address"`
	Phone     string     `json:"phone"`
	GSTNumber string     `json:"gstNumber"`
	Deleted   bool       `json:"deleted"`
}

// BillResponse represents a bill in API responses
type BillResponse struct {
	ID            uuid.UUID          `json:"id"`
	BillNumber    string             `json:"billNumber"`
	CustomerID    *uuid.UUID         `json:"customerId"`
	Customer      *BillCustomer      `json:"customer"`
	Date          time.Time          `json:"date"`
	Items         []LineItemResponse `json:"items"`
	GSTRate       shared.Amount      `json:"gstRate"`
	PaymentStatus string             `json:"paymentStatus"`
	PaymentMethod string             `json:"paymentMethod"`
	Notes         string             `json:"notes"`
	Totals        TotalsResponse     `json:"totals"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// Document is a rendered invoice ready to be streamed
type Document struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ToBillResponse converts a bill and its resolved customer. c may be nil
// when the customer no longer exists.
func ToBillResponse(b *billing.Bill, c *customer.Customer) BillResponse {
	items := make([]LineItemResponse, len(b.Items))
	for i, item := range b.Items {
		items[i] = LineItemResponse{
			Description: item.Description,
			Rate:        shared.NewAmount(item.Rate),
			Quantity:    shared.NewAmount(item.Quantity),
			Amount:      shared.NewAmount(item.Amount()),
		}
	}
	totals := b.Totals()

	return BillResponse{
		ID:            b.ID,
		BillNumber:    b.BillNumber,
		CustomerID:    b.CustomerID,
		Customer:      toBillCustomer(b, c),
		Date:          b.Date,
		Items:         items,
		GSTRate:       shared.NewAmount(b.GSTRate),
		PaymentStatus: string(b.PaymentStatus),
		PaymentMethod: b.PaymentMethod,
		Notes:         b.Notes,
		Totals: TotalsResponse{
			Subtotal: shared.NewAmount(totals.Subtotal),
			GST:      shared.NewAmount(totals.Tax),
			Total:    shared.NewAmount(totals.Total),
		},
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func toBillCustomer(b *billing.Bill, c *customer.Customer) *BillCustomer {
	if c == nil {
		return &BillCustomer{Name: b.DeletedCustomerName, Deleted: true}
	}
	id := c.ID
	return &BillCustomer{
		ID:        &id,
		Name:      c.Name,
		Address:   c.Address,
		Phone:     c.Phone,
		GSTNumber: c.GSTNumber,
	}
}

func toLineItems(in []LineItemRequest) []billing.LineItem {
	items := make([]billing.LineItem, len(in))
	for i, item := range in {
		items[i] = billing.LineItem{
			Description: item.Description,
			Rate:        item.Rate.Decimal,
			Quantity:    item.Quantity.Decimal,
		}
	}
	return items
}

// parseCustomerID maps an empty id to uuid.Nil (left to bill validation)
// and a malformed one to an invalid reference.
func parseCustomerID(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, billing.ErrCustomerReference
	}
	return id, nil
}

// parseDate returns nil for an empty string
func parseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, shared.NewValidationError(shared.FieldError{Field: "date", Message: "Invalid date"})
}
