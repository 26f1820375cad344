package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is a monetary amount with exactly two fraction digits.
//
// Construction rejects negative input; rounding is half-up (half away from
// zero, which is the same thing for the non-negative inputs we accept).
// Sub can still yield a negative Money because derived balances may go
// below zero after an overpayment.
type Money struct {
	d decimal.Decimal
}

// Zero is the zero monetary amount.
var Zero = Money{d: decimal.Zero}

// NewMoney builds a Money from a decimal, rounding to two fraction digits.
func NewMoney(d decimal.Decimal) (Money, error) {
	if d.IsNegative() {
		return Money{}, fmt.Errorf("%w: %s", ErrNegativeAmount, d)
	}

	return Money{d: d.Round(2)}, nil
}

// MoneyFromFloat builds a Money from a float64 (e.g. a JSON number).
func MoneyFromFloat(f float64) (Money, error) {
	return NewMoney(decimal.NewFromFloat(f))
}

// MoneyFromString builds a Money from a decimal string.
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	return NewMoney(d)
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return Money{d: m.d.Add(o.d)}
}

// Sub returns m - o. The result may be negative.
func (m Money) Sub(o Money) Money {
	return Money{d: m.d.Sub(o.d)}
}

// MulInt returns m * n. Multiplication by an integer quantity is exact.
func (m Money) MulInt(n int) Money {
	return Money{d: m.d.Mul(decimal.NewFromInt(int64(n)))}
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.d.IsZero()
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.d.IsNegative()
}

// IsPositive reports whether the amount is above zero.
func (m Money) IsPositive() bool {
	return m.d.IsPositive()
}

// Equal reports whether two amounts are numerically equal.
func (m Money) Equal(o Money) bool {
	return m.d.Equal(o.d)
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.d
}

// String formats the amount with two fraction digits.
func (m Money) String() string {
	return m.d.StringFixed(2)
}

// MarshalJSON encodes the amount as a bare number with two fraction digits.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.d.StringFixed(2)), nil
}

// UnmarshalJSON decodes a JSON number (or quoted decimal string).
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}

	m.d = d.Round(2)

	return nil
}
