package printing

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/easybill/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// InvoiceDateLayout is how bill dates appear on the printed invoice
const InvoiceDateLayout = "02 Jan 2006"

// InvoiceFooter closes every printed invoice
const InvoiceFooter = "Thank you for your business!"

var numberPrinter = message.NewPrinter(language.English)

// InvoiceTemplate lays out an InvoiceDocument as a single A4 HTML page
type InvoiceTemplate struct {
	tmpl *template.Template
}

// NewInvoiceTemplate parses the built-in invoice layout
func NewInvoiceTemplate() (*InvoiceTemplate, error) {
	tmpl, err := template.New("invoice").Funcs(template.FuncMap{
		"money":   formatMoney,
		"qty":     formatQuantity,
		"percent": formatPercent,
		"date":    formatDate,
		"amount":  func(i billing.LineItem) string { return formatMoney(i.Amount()) },
		"footer":  func() string { return InvoiceFooter },
	}).Parse(invoiceLayout)
	if err != nil {
		return nil, fmt.Errorf("parse invoice template: %w", err)
	}
	return &InvoiceTemplate{tmpl: tmpl}, nil
}

// Execute renders the document to HTML
func (t *InvoiceTemplate) Execute(doc *billing.InvoiceDocument) (string, error) {
	if doc == nil {
		return "", NewRenderError(ErrCodeInvalidHTML, "invoice document is nil", nil)
	}
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, doc); err != nil {
		return "", NewRenderError(ErrCodeRenderFailed, "execute invoice template", err)
	}
	return buf.String(), nil
}

// formatMoney prints a decimal with thousands separators and two decimals.
// Example: 1234.5 -> "1,234.50"
func formatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	fixed := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")
	whole, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return sign + fixed
	}
	return sign + numberPrinter.Sprintf("%d", whole) + "." + frac
}

// formatQuantity drops trailing zeros, so 2 prints as "2" and 1.5 as "1.5"
func formatQuantity(d decimal.Decimal) string {
	return d.String()
}

func formatPercent(d decimal.Decimal) string {
	return d.String()
}

func formatDate(t time.Time) string {
	return t.UTC().Format(InvoiceDateLayout)
}

const invoiceLayout = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.BillNumber}}</title>
<style>
  @page { size: A4; margin: 18mm; }
  body { font-family: Helvetica, Arial, sans-serif; font-size: 10pt; color: #000; }
  .header { display: flex; justify-content: space-between; border-bottom: 1px solid #ccc; padding-bottom: 8px; }
  .company { font-size: 20pt; }
  .muted { color: #555; }
  .meta { text-align: right; }
  .bill-to { margin: 16px 0; }
  .bill-to h3 { font-size: 12pt; margin: 0 0 4px; }
  table.items { width: 100%; border-collapse: collapse; }
  table.items th { text-align: left; border-bottom: 1px solid #ccc; font-weight: normal; font-size: 11pt; }
  table.items td.num, table.items th.num { text-align: right; }
  table.totals { margin-left: auto; margin-top: 12px; }
  table.totals td { padding: 2px 0 2px 24px; text-align: right; }
  table.totals tr.grand td { font-size: 12pt; font-weight: bold; }
  .payment { margin-top: 24px; }
  .notes { color: #333; font-size: 9pt; width: 60%; white-space: pre-wrap; }
  .footer { position: fixed; bottom: 0; width: 100%; text-align: center; color: #666; font-size: 9pt; border-top: 1px solid #ccc; padding-top: 6px; }
</style>
</head>
<body>
<div class="header">
  <div>
    <div class="company">{{if .Seller.Name}}{{.Seller.Name}}{{else}}Company{{end}}</div>
    {{- if .Seller.TaxID}}
    <div class="muted">GSTIN: {{.Seller.TaxID}}</div>
    {{- end}}
  </div>
  <div class="meta">
    <div>Bill No: {{.BillNumber}}</div>
    <div>Bill Date: {{date .Date}}</div>
  </div>
</div>

<div class="bill-to">
  <h3>Bill To:</h3>
  <div>{{.BillTo.Name}}</div>
  {{- if .BillTo.Address}}
  <div>{{.BillTo.Address}}</div>
  {{- end}}
  {{- if .BillTo.Phone}}
  <div>Phone: {{.BillTo.Phone}}</div>
  {{- end}}
  {{- if .BillTo.TaxID}}
  <div>GST: {{.BillTo.TaxID}}</div>
  {{- end}}
</div>

<table class="items">
  <thead>
    <tr><th>Description</th><th class="num">Rate</th><th class="num">Qty</th><th class="num">Amount</th></tr>
  </thead>
  <tbody>
  {{- range .Items}}
    <tr><td>{{.Description}}</td><td class="num">{{money .Rate}}</td><td class="num">{{qty .Quantity}}</td><td class="num">{{amount .}}</td></tr>
  {{- end}}
  </tbody>
</table>

<table class="totals">
  <tr><td>Subtotal</td><td>{{money .Totals.Subtotal}}</td></tr>
  <tr><td>GST ({{percent .GSTRate}}%)</td><td>{{money .Totals.Tax}}</td></tr>
  <tr class="grand"><td>Grand Total</td><td>{{money .Totals.Total}}</td></tr>
</table>

<div class="payment">
  <div>Payment Status: {{if .PaymentStatus}}{{.PaymentStatus}}{{else}}Pending{{end}}</div>
  {{- if .PaymentMethod}}
  <div>Payment Method: {{.PaymentMethod}}</div>
  {{- end}}
  {{- if .Notes}}
  <div>Notes:</div>
  <div class="notes">{{.Notes}}</div>
  {{- end}}
</div>

<div class="footer">{{footer}}</div>
</body>
</html>
`
