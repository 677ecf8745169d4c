package utils

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ToCents converts a major-unit currency amount to integer cents, rounding
// to the nearest cent with ties away from zero. This is the only place a
// float currency value is ever rounded; everything downstream works on the
// integer result.
func ToCents(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(hundred).Round(0).IntPart()
}
