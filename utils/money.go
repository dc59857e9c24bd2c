package utils

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a user-supplied money amount. Amounts must be positive
// and carry at most two fraction digits.
func ParseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("amount must be positive")
	}
	if amount.Exponent() < -2 {
		return decimal.Zero, fmt.Errorf("amount must have at most two decimal places")
	}
	return amount, nil
}

// FormatAmount renders an amount with the two-digit display convention.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
