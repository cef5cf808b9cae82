package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Party is one side of an invoice (the issuing company or the billed customer)
type Party struct {
	Name    string
	Address string
	Phone   string
	TaxID   string
}

// InvoiceDocument is everything needed to lay out a printable invoice.
// Totals are filled by NewInvoiceDocument from the bill's items.
type InvoiceDocument struct {
	Seller        Party
	BillTo        Party
	BillNumber    string
	Date          time.Time
	Items         []LineItem
	GSTRate       decimal.Decimal
	Totals        Totals
	PaymentStatus PaymentStatus
	PaymentMethod string
	Notes         string
}

// NewInvoiceDocument builds the printable view of a bill
func NewInvoiceDocument(b *Bill, seller, billTo Party) *InvoiceDocument {
	return &InvoiceDocument{
		Seller:        seller,
		BillTo:        billTo,
		BillNumber:    b.BillNumber,
		Date:          b.Date,
		Items:         b.Items,
		GSTRate:       b.GSTRate,
		Totals:        b.Totals(),
		PaymentStatus: b.PaymentStatus,
		PaymentMethod: b.PaymentMethod,
		Notes:         b.Notes,
	}
}

// Filename is the download name of the rendered document
func (d *InvoiceDocument) Filename() string {
	return d.BillNumber + ".pdf"
}

// DocumentRenderer turns an invoice into PDF bytes
type DocumentRenderer interface {
	Render(ctx context.Context, doc *InvoiceDocument) ([]byte, error)
}

// DocumentArchive stores rendered invoices outside the database
type DocumentArchive interface {
	Archive(ctx context.Context, key string, content []byte) error
	Remove(ctx context.Context, key string) error
}

// ArchiveKey is the storage key of a bill's rendered invoice
func ArchiveKey(b *Bill) string {
	return b.AccountID.String() + "/" + b.ID.String() + ".pdf"
}
