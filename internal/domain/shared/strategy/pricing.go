// Package strategy contains the chained pricing strategies that resolve the
// unit price of a product line.
package strategy

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PriceKind records which rule produced a unit price
type PriceKind string

const (
	PriceKindCustom PriceKind = "CUSTOM"
	PriceKindTier   PriceKind = "TIER"
	PriceKindOffer  PriceKind = "OFFER"
	PriceKindBase   PriceKind = "BASE"
)

// String returns the string representation of the price kind
func (k PriceKind) String() string {
	return string(k)
}

// IsValid returns true if the price kind is known
func (k PriceKind) IsValid() bool {
	switch k {
	case PriceKindCustom, PriceKindTier, PriceKindOffer, PriceKindBase:
		return true
	default:
		return false
	}
}

// PriceTier is a quantity-indexed price break
type PriceTier struct {
	MinQuantity decimal.Decimal // threshold, inclusive
	UnitPrice   decimal.Decimal
}

// SpecialOffer is a time-boxed promotional price
type SpecialOffer struct {
	Price     decimal.Decimal
	StartDate time.Time // inclusive
	EndDate   time.Time // inclusive
}

// Contains reports whether t falls inside the offer window
func (o SpecialOffer) Contains(t time.Time) bool {
	return !t.Before(o.StartDate) && !t.After(o.EndDate)
}

// PricingContext provides context for pricing calculation.
// Tiers and Offers are kept in declared order.
type PricingContext struct {
	ProductID   string
	Quantity    decimal.Decimal
	BasePrice   decimal.Decimal
	Tiers       []PriceTier
	Offers      []SpecialOffer
	AsOf        time.Time
	ManualPrice *decimal.Decimal
}

// PricingResult contains the result of pricing calculation
type PricingResult struct {
	UnitPrice    decimal.Decimal
	TotalPrice   decimal.Decimal
	Kind         PriceKind
	AppliedRules []string
}

// PricingStrategy computes a unit price. Strategies are chained: each one
// either answers or defers to its fallback.
type PricingStrategy interface {
	// Name identifies the strategy in AppliedRules and logs
	Name() string
	CalculatePrice(ctx context.Context, pricingCtx PricingContext) (PricingResult, error)
}

type named string

func (n named) Name() string { return string(n) }

func newResult(unitPrice decimal.Decimal, pricingCtx PricingContext, kind PriceKind, rule string) PricingResult {
	return PricingResult{
		UnitPrice:    unitPrice,
		TotalPrice:   unitPrice.Mul(pricingCtx.Quantity),
		Kind:         kind,
		AppliedRules: []string{rule},
	}
}
