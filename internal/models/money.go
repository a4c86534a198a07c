package models

import (
	"errors"

	"github.com/shopspring/decimal"
)

// MinorUnitExponent is the number of fractional digits stored for every amount.
const MinorUnitExponent = 2

// MaxCents is the largest amount or balance magnitude the ledger stores (9,999,999,999,999.99).
// The accounts table enforces the same range on current_balance.
const MaxCents int64 = 999_999_999_999_999

var (
	ErrNegativeAmount  = errors.New("amount must not be negative")
	ErrAmountPrecision = errors.New("amount must have at most 2 decimal places")
	ErrAmountTooLarge  = errors.New("amount must not exceed 9999999999999.99")
)

var maxAmount = decimal.New(MaxCents, 0)

// ToCents converts a decimal amount into integer minor units without rounding.
func ToCents(d decimal.Decimal) (int64, error) {
	if d.IsNegative() {
		return 0, ErrNegativeAmount
	}
	shifted := d.Shift(MinorUnitExponent)
	if !shifted.Equal(shifted.Truncate(0)) {
		return 0, ErrAmountPrecision
	}
	if shifted.GreaterThan(maxAmount) {
		return 0, ErrAmountTooLarge
	}
	return shifted.IntPart(), nil
}

// FromCents converts stored minor units back to a decimal amount.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -MinorUnitExponent)
}

// Money is a decimal amount that always serializes with two fractional digits.
type Money struct {
	decimal.Decimal
}

// MoneyFromCents wraps stored minor units as Money.
func MoneyFromCents(cents int64) Money {
	return Money{FromCents(cents)}
}

// Cents returns the amount in minor units. Money is only built from whole cents.
func (m Money) Cents() int64 {
	return m.Shift(MinorUnitExponent).IntPart()
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(MinorUnitExponent) + `"`), nil
}

func (m Money) String() string {
	return m.StringFixed(MinorUnitExponent)
}
