// Package printing renders invoices to PDF.
//
// InvoiceTemplate lays out a billing.InvoiceDocument as an A4 HTML page and
// ChromedpRenderer prints that page through headless Chrome (local or remote
// via the DevTools protocol). InvoiceRenderer joins the two and satisfies
// billing.DocumentRenderer.
package printing
