package models

import (
	"github.com/shopspring/decimal"
)

// Money is a fixed-point amount stored as DECIMAL(12,2).
type Money struct {
	decimal.Decimal
}

// MaxMoney is the first value that no longer fits DECIMAL(12,2).
var MaxMoney = decimal.New(1, 10)

func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d.Round(2)}
}

// MustMoney parses s and panics on malformed input. Meant for constants and tests.
func MustMoney(s string) Money {
	return NewMoney(decimal.RequireFromString(s))
}

// Fits reports whether m is representable with 12 digits and 2 decimals.
func (m Money) Fits() bool {
	return m.Abs().LessThan(MaxMoney)
}

func (m Money) String() string {
	return m.StringFixed(2)
}

// MarshalJSON renders a quoted string with exactly two decimals.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(2) + `"`), nil
}
