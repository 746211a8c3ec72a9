package dto

import "github.com/shopspring/decimal"

// FormatAmount renders minor currency units as a fixed two-decimal string.
func FormatAmount(minor int64) string {
	return decimal.New(minor, -2).StringFixed(2)
}
