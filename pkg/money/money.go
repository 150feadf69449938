package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a fixed-point monetary value in minor units (cents).
// It marshals to and from plain JSON decimal numbers, so the API
// speaks major units while all arithmetic stays on integers.
type Amount int64

// FromDecimal converts a decimal value to minor units. Values with more
// than two fractional digits are rejected rather than silently rounded.
func FromDecimal(d decimal.Decimal) (Amount, error) {
	cents := d.Mul(decimal.New(100, 0))
	if !cents.IsInteger() {
		return 0, fmt.Errorf("amount %s has more than two decimal places", d)
	}
	if !cents.BigInt().IsInt64() {
		return 0, fmt.Errorf("amount %s out of range", d)
	}
	return Amount(cents.IntPart()), nil
}

// Parse converts a decimal string like "1000.50" to minor units.
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return FromDecimal(d)
}

// Decimal returns the value in major units.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -2)
}

// String renders the amount in major units without trailing zeros
// ("600", "42.5").
func (a Amount) String() string {
	s := a.Decimal().String()
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

// MarshalJSON renders the amount as a bare decimal number (600, 42.5).
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
func (a *Amount) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}
