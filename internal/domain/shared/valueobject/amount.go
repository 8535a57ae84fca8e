// Package valueobject holds the precision rules for stored money and quantities.
package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// MoneyScale is the number of decimal places kept for persisted money
	MoneyScale int32 = 2
	// QuantityScale is the number of decimal places kept for stock quantities
	QuantityScale int32 = 1
)

// RoundMoney rounds half away from zero to MoneyScale places
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// RoundQuantity rounds half away from zero to QuantityScale places
func RoundQuantity(d decimal.Decimal) decimal.Decimal {
	return d.Round(QuantityScale)
}

// ValidateQuantity rejects non-positive quantities and anything finer than one decimal place
func ValidateQuantity(d decimal.Decimal) error {
	if !d.IsPositive() {
		return fmt.Errorf("quantity must be positive, got %s", d)
	}
	if !d.Equal(RoundQuantity(d)) {
		return fmt.Errorf("quantity %s has more than %d decimal place", d, QuantityScale)
	}
	return nil
}

// WithinTolerance reports whether a and b differ by at most one cent
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(decimal.New(1, -MoneyScale))
}
