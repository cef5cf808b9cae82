package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/easybill/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents whether a bill has been settled
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "Paid"
	PaymentStatusPending PaymentStatus = "Pending"
)

// IsValid reports whether the status is one of the known values
func (s PaymentStatus) IsValid() bool {
	return s == PaymentStatusPaid || s == PaymentStatusPending
}

// LineItem is one billed line. Its amount is always derived, never stored.
type LineItem struct {
	Description string
	Rate        decimal.Decimal
	Quantity    decimal.Decimal
}

// Amount returns rate × quantity
func (i LineItem) Amount() decimal.Decimal {
	return i.Rate.Mul(i.Quantity)
}

// Bill is an invoice issued by an account to one of its customers
type Bill struct {
	shared.AccountScoped
	BillNumber string
	// CustomerID is nil once the referenced customer has been deleted;
	// DeletedCustomerName then keeps the name the customer had.
	CustomerID          *uuid.UUID
	DeletedCustomerName string
	Date                time.Time
	Items               []LineItem
	GSTRate             decimal.Decimal
	PaymentStatus       PaymentStatus
	PaymentMethod       string
	Notes               string
}

// BillInput carries the fields needed to create a bill
type BillInput struct {
	BillNumber    string
	CustomerID    uuid.UUID
	Date          *time.Time
	Items         []LineItem
	GSTRate       decimal.Decimal
	PaymentStatus PaymentStatus
	PaymentMethod string
	Notes         string
}

// BillPatch carries a partial update; nil fields are left unchanged
type BillPatch struct {
	BillNumber    *string
	CustomerID    *uuid.UUID
	Date          *time.Time
	Items         []LineItem
	GSTRate       *decimal.Decimal
	PaymentStatus *PaymentStatus
	PaymentMethod *string
	Notes         *string
}

// NewBill validates input and creates a bill. Date defaults to now and
// payment status to Pending.
func NewBill(accountID uuid.UUID, in BillInput) (*Bill, error) {
	in.BillNumber = strings.TrimSpace(in.BillNumber)
	if in.PaymentStatus == "" {
		in.PaymentStatus = PaymentStatusPending
	}

	var fields []shared.FieldError
	fields = append(fields, validateBillNumber(in.BillNumber)...)
	if in.CustomerID == uuid.Nil {
		fields = append(fields, shared.FieldError{Field: "customerId", Message: "Customer is required"})
	}
	fields = append(fields, ValidateItems(in.Items)...)
	fields = append(fields, validateGSTRate(in.GSTRate)...)
	fields = append(fields, validatePaymentStatus(in.PaymentStatus)...)
	if len(fields) > 0 {
		return nil, shared.NewValidationError(fields...)
	}

	date := shared.Now()
	if in.Date != nil {
		date = *in.Date
	}
	customerID := in.CustomerID

	return &Bill{
		AccountScoped: shared.NewAccountScoped(accountID),
		BillNumber:    in.BillNumber,
		CustomerID:    &customerID,
		Date:          date,
		Items:         normalizeItems(in.Items),
		GSTRate:       in.GSTRate,
		PaymentStatus: in.PaymentStatus,
		PaymentMethod: in.PaymentMethod,
		Notes:         in.Notes,
	}, nil
}

// ValidatePatch checks the supplied fields of a patch without applying it
func ValidatePatch(p BillPatch) error {
	var fields []shared.FieldError
	if p.BillNumber != nil {
		fields = append(fields, validateBillNumber(strings.TrimSpace(*p.BillNumber))...)
	}
	if p.CustomerID != nil && *p.CustomerID == uuid.Nil {
		fields = append(fields, shared.FieldError{Field: "customerId", Message: "Customer is required"})
	}
	if p.Items != nil {
		fields = append(fields, ValidateItems(p.Items)...)
	}
	if p.GSTRate != nil {
		fields = append(fields, validateGSTRate(*p.GSTRate)...)
	}
	if p.PaymentStatus != nil {
		fields = append(fields, validatePaymentStatus(*p.PaymentStatus)...)
	}
	if len(fields) > 0 {
		return shared.NewValidationError(fields...)
	}
	return nil
}

// Apply validates and applies a partial update
func (b *Bill) Apply(p BillPatch) error {
	if err := ValidatePatch(p); err != nil {
		return err
	}

	if p.BillNumber != nil {
		b.BillNumber = strings.TrimSpace(*p.BillNumber)
	}
	if p.CustomerID != nil {
		id := *p.CustomerID
		b.CustomerID = &id
		b.DeletedCustomerName = ""
	}
	if p.Date != nil {
		b.Date = *p.Date
	}
	if p.Items != nil {
		b.Items = normalizeItems(p.Items)
	}
	if p.GSTRate != nil {
		b.GSTRate = *p.GSTRate
	}
	if p.PaymentStatus != nil {
		b.PaymentStatus = *p.PaymentStatus
	}
	if p.PaymentMethod != nil {
		b.PaymentMethod = *p.PaymentMethod
	}
	if p.Notes != nil {
		b.Notes = *p.Notes
	}
	b.Touch()

	return nil
}

// SetPaymentStatus changes the status and, when method is non-empty, the payment method
func (b *Bill) SetPaymentStatus(status PaymentStatus, method string) error {
	if !status.IsValid() {
		return shared.NewFieldError(shared.CodeValidationFailed, "Invalid status", "status", "Must be one of: Paid Pending")
	}
	b.PaymentStatus = status
	if method != "" {
		b.PaymentMethod = method
	}
	b.Touch()
	return nil
}

// Totals recomputes the bill's derived amounts
func (b *Bill) Totals() Totals {
	return GrandTotal(b.Items, b.GSTRate)
}

// IsPending reports whether the bill is still unpaid
func (b *Bill) IsPending() bool {
	return b.PaymentStatus == PaymentStatusPending
}

// HasCustomer reports whether the referenced customer still exists
func (b *Bill) HasCustomer() bool {
	return b.CustomerID != nil
}

// ValidateItems checks the line-item rules: at least one item, non-empty
// description, rate >= 0 and quantity >= 1.
func ValidateItems(items []LineItem) []shared.FieldError {
	if len(items) == 0 {
		return []shared.FieldError{{Field: "items", Message: "At least one item is required"}}
	}

	var fields []shared.FieldError
	for i, item := range items {
		if strings.TrimSpace(item.Description) == "" {
			fields = append(fields, shared.FieldError{
				Field:   fmt.Sprintf("items[%d].description", i),
				Message: "Item description is required",
			})
		}
		if item.Rate.IsNegative() {
			fields = append(fields, shared.FieldError{
				Field:   fmt.Sprintf("items[%d].rate", i),
				Message: "Rate must be a positive number",
			})
		}
		if item.Quantity.LessThan(decimal.NewFromInt(1)) {
			fields = append(fields, shared.FieldError{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: "Quantity must be at least 1",
			})
		}
	}
	return fields
}

func validateBillNumber(number string) []shared.FieldError {
	if number == "" {
		return []shared.FieldError{{Field: "billNumber", Message: "Bill number is required"}}
	}
	if len(number) > 100 {
		return []shared.FieldError{{Field: "billNumber", Message: "Bill number cannot exceed 100 characters"}}
	}
	return nil
}

func validateGSTRate(rate decimal.Decimal) []shared.FieldError {
	if rate.IsNegative() {
		return []shared.FieldError{{Field: "gstRate", Message: "GST rate must be a positive number"}}
	}
	return nil
}

func validatePaymentStatus(status PaymentStatus) []shared.FieldError {
	if !status.IsValid() {
		return []shared.FieldError{{Field: "paymentStatus", Message: "Invalid payment status"}}
	}
	return nil
}

func normalizeItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	for i, item := range items {
		out[i] = LineItem{
			Description: strings.TrimSpace(item.Description),
			Rate:        item.Rate,
			Quantity:    item.Quantity,
		}
	}
	return out
}
