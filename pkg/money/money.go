// Package money represents naira amounts as integer kobo so statement
// totals add without float drift. Formatting comes from go-money and
// precision conversions from shopspring/decimal.
package money

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// NGN is the ISO-4217 code for the Nigerian naira.
const NGN = "NGN"

// Money is a naira amount held in kobo. A nil *Money reads as ₦0.00.
type Money struct {
	m *money.Money
}

// New creates a Money value from an amount in kobo.
func New(kobo int64) *Money {
	return &Money{m: money.New(kobo, NGN)}
}

// NewFromFloat creates Money from a naira amount. Extraction emits
// amounts as float64; converting through decimal keeps the kobo value
// exact where a plain multiply would drift.
func NewFromFloat(naira float64) *Money {
	return NewFromDecimal(decimal.NewFromFloat(naira))
}

// NewFromDecimal creates Money from a decimal naira amount, rounding
// to the nearest kobo.
func NewFromDecimal(naira decimal.Decimal) *Money {
	kobo := naira.Mul(decimal.New(1, 2)).Round(0).IntPart()
	return New(kobo)
}

// Zero returns ₦0.00.
func Zero() *Money {
	return New(0)
}

// Sum folds float64 naira amounts into one total.
func Sum(amounts []float64) *Money {
	total := Zero()
	for _, a := range amounts {
		total = total.Add(NewFromFloat(a))
	}
	return total
}

// Kobo returns the amount in minor units.
func (m *Money) Kobo() int64 {
	if m == nil || m.m == nil {
		return 0
	}
	return m.m.Amount()
}

// Add returns m + other. Every value here is naira, so the go-money
// currency check cannot fail.
func (m *Money) Add(other *Money) *Money {
	if m == nil || m.m == nil {
		if other == nil || other.m == nil {
			return Zero()
		}
		return other
	}
	if other == nil || other.m == nil {
		return m
	}
	sum, _ := m.m.Add(other.m)
	return &Money{m: sum}
}

// IsZero returns true if the amount is zero
func (m *Money) IsZero() bool {
	return m == nil || m.m == nil || m.m.IsZero()
}

// IsPositive returns true if the amount is greater than zero
func (m *Money) IsPositive() bool {
	return m != nil && m.m != nil && m.m.IsPositive()
}

// ToDecimal converts to naira as a decimal.Decimal.
func (m *Money) ToDecimal() decimal.Decimal {
	if m == nil || m.m == nil {
		return decimal.Zero
	}
	return decimal.NewFromInt(m.m.Amount()).Div(decimal.New(1, 2))
}

// ToFloat64 converts to float64 naira (use for display only).
func (m *Money) ToFloat64() float64 {
	return m.ToDecimal().InexactFloat64()
}

// Display returns the formatted naira string, e.g. "₦1,234.56".
func (m *Money) Display() string {
	if m == nil || m.m == nil {
		return money.New(0, NGN).Display()
	}
	return m.m.Display()
}

// String returns the plain decimal amount, e.g. "1234.56".
func (m *Money) String() string {
	return m.ToDecimal().StringFixed(2)
}
