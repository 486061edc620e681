// Package randompkg provides functionality for generating random application common items.
package randompkg

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"
const digits = "0123456789"

// Intn is a shortcut for generating a random integer between 0 and max using crypto/rand.
func Intn(max int) int64 {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic(err)
	}

	return nBig.Int64()
}

// String generates a random string of length n.
func String(n int) string {
	var sb strings.Builder

	k := len(alphabet)

	for i := 0; i < n; i++ {
		c := alphabet[Intn(k)]

		_ = sb.WriteByte(c) // The returned err is always nil.
	}

	return sb.String()
}

// Name generates a random capitalized name.
func Name() string {
	s := String(6)
	return strings.ToUpper(s[:1]) + s[1:]
}

// Phone generates a random 10-digit phone number starting with 9.
func Phone() string {
	var sb strings.Builder

	_ = sb.WriteByte('9')

	for i := 0; i < 9; i++ {
		_ = sb.WriteByte(digits[Intn(10)])
	}

	return sb.String()
}

// AmountBetween generates a random rupee amount string between min and max
// with two decimal places.
func AmountBetween(min, max int64) string {
	paise := min*100 + Intn(int((max-min)*100))
	return decimal.NewFromInt(paise).Shift(-2).StringFixed(2)
}

// PaiseBetween generates a random paise amount between min and max.
func PaiseBetween(min, max int64) int64 {
	return min + Intn(int(max-min))
}
