package billing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Totals are the derived amounts of a bill
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Subtotal sums rate × quantity over items. An empty list yields zero.
func Subtotal(items []LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Amount())
	}
	return sum
}

// TaxAmount returns subtotal × rate / 100. No rounding is applied.
func TaxAmount(subtotal, rate decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(rate).Div(hundred)
}

// GrandTotal computes subtotal, tax and total = subtotal + tax
func GrandTotal(items []LineItem, rate decimal.Decimal) Totals {
	sub := Subtotal(items)
	tax := TaxAmount(sub, rate)
	return Totals{
		Subtotal: sub,
		Tax:      tax,
		Total:    sub.Add(tax),
	}
}
