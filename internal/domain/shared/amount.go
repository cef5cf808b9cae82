package shared

import (
	"github.com/shopspring/decimal"
)

// Amount is a decimal that marshals as a bare JSON number ("118.5", not "\"118.5\"")
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps d
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// MarshalJSON implements json.Marshaler
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

// UnmarshalJSON accepts both numbers and numeric strings
func (a *Amount) UnmarshalJSON(data []byte) error {
	return a.Decimal.UnmarshalJSON(data)
}
