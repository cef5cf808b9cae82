// Package billing holds the Bill aggregate and the calculation engine that derives
// subtotal, tax and grand total from a bill's line items.
//
// Totals are never stored. Every read path (API responses, customer statements,
// monthly summaries, rendered invoices) recomputes them with the same functions so
// the figures cannot drift apart.
package billing
