package model

import "github.com/shopspring/decimal"

// Amounts are persisted as integer cents so SQL SUM stays exact. These two
// helpers are the only conversion points between storage and decimal.

// Cents rounds d to 2 decimal places and returns it as integer cents.
func Cents(d decimal.Decimal) int64 {
	return d.Round(2).Shift(2).IntPart()
}

// FromCents converts integer cents back to a 2-decimal amount.
func FromCents(c int64) decimal.Decimal {
	return decimal.New(c, -2)
}
