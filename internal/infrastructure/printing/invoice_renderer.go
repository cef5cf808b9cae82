package printing

import (
	"context"
	"time"

	"github.com/easybill/backend/internal/domain/billing"
)

// InvoiceRenderer lays out invoices as HTML and converts them with a PDFRenderer
type InvoiceRenderer struct {
	template *InvoiceTemplate
	pdf      PDFRenderer
	timeout  time.Duration
}

// NewInvoiceRenderer creates a billing.DocumentRenderer backed by pdf
func NewInvoiceRenderer(pdf PDFRenderer, timeout time.Duration) (*InvoiceRenderer, error) {
	tmpl, err := NewInvoiceTemplate()
	if err != nil {
		return nil, err
	}
	return &InvoiceRenderer{template: tmpl, pdf: pdf, timeout: timeout}, nil
}

// Render produces the PDF bytes of an invoice
func (r *InvoiceRenderer) Render(ctx context.Context, doc *billing.InvoiceDocument) ([]byte, error) {
	html, err := r.template.Execute(doc)
	if err != nil {
		return nil, err
	}

	result, err := r.pdf.Render(ctx, &RenderRequest{
		HTML:      html,
		PaperSize: PaperA4,
		Margins:   DefaultMargins(),
		Title:     doc.BillNumber,
		Timeout:   r.timeout,
	})
	if err != nil {
		return nil, err
	}
	return result.PDFData, nil
}

var _ billing.DocumentRenderer = (*InvoiceRenderer)(nil)
