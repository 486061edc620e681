// Package moneypkg converts between user facing rupee strings and the
// integer paise amounts stored in the database.
package moneypkg

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrMalformed indicates that the amount string is not a valid decimal number.
	ErrMalformed = errors.New("malformed amount")
	// ErrTooPrecise indicates that the amount has more than two decimal places.
	ErrTooPrecise = errors.New("amount has more than two decimal places")
	// ErrOutOfRange indicates that the amount does not fit the allowed range.
	ErrOutOfRange = errors.New("amount out of range")
)

// MaxPaise caps a single operation at 10 lakh rupees.
const MaxPaise int64 = 1_000_000_00

// ToPaise parses a rupee string ("400", "400.50") into paise.
//
// The input is never rounded. Anything that is not an exact paise amount
// within (-MaxPaise, MaxPaise] boundaries fails.
func ToPaise(amount string) (int64, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, ErrMalformed
	}

	if d.Exponent() < -2 {
		return 0, ErrTooPrecise
	}

	paise := d.Shift(2)
	if !paise.IsInteger() {
		return 0, ErrTooPrecise
	}

	if paise.Abs().GreaterThan(decimal.NewFromInt(MaxPaise)) {
		return 0, ErrOutOfRange
	}

	return paise.IntPart(), nil
}

// FromPaise formats paise as a rupee string with two decimal places.
func FromPaise(paise int64) string {
	return decimal.NewFromInt(paise).Shift(-2).StringFixed(2)
}
