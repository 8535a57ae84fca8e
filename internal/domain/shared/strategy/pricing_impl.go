package strategy

import (
	"context"

	"github.com/shopspring/decimal"
)

// StandardPricingStrategy uses the base product price directly
type StandardPricingStrategy struct {
	named
}

// NewStandardPricingStrategy creates a new standard pricing strategy
func NewStandardPricingStrategy() *StandardPricingStrategy {
	return &StandardPricingStrategy{
		named: "standard",
	}
}

// CalculatePrice returns the base price
func (s *StandardPricingStrategy) CalculatePrice(ctx context.Context, pricingCtx PricingContext) (PricingResult, error) {
	return newResult(pricingCtx.BasePrice, pricingCtx, PriceKindBase, "standard_pricing"), nil
}

// SpecialOfferPricingStrategy applies the first offer whose window contains AsOf
type SpecialOfferPricingStrategy struct {
	named
	FallbackStrategy PricingStrategy
}

// NewSpecialOfferPricingStrategy creates a special offer strategy
func NewSpecialOfferPricingStrategy(fallback PricingStrategy) *SpecialOfferPricingStrategy {
	if fallback == nil {
		fallback = NewStandardPricingStrategy()
	}
	return &SpecialOfferPricingStrategy{
		named:            "special_offer",
		FallbackStrategy: fallback,
	}
}

// CalculatePrice picks the first active offer, or defers to the fallback
func (s *SpecialOfferPricingStrategy) CalculatePrice(ctx context.Context, pricingCtx PricingContext) (PricingResult, error) {
	for _, offer := range pricingCtx.Offers {
		if offer.Contains(pricingCtx.AsOf) {
			return newResult(offer.Price, pricingCtx, PriceKindOffer, "special_offer"), nil
		}
	}
	return s.FallbackStrategy.CalculatePrice(ctx, pricingCtx)
}

// TieredPricingStrategy applies pricing based on quantity tiers
type TieredPricingStrategy struct {
	named
	FallbackStrategy PricingStrategy
}

// NewTieredPricingStrategy creates a new tiered pricing strategy
func NewTieredPricingStrategy(fallback PricingStrategy) *TieredPricingStrategy {
	if fallback == nil {
		fallback = NewStandardPricingStrategy()
	}
	return &TieredPricingStrategy{
		named:            "tiered",
		FallbackStrategy: fallback,
	}
}

// CalculatePrice applies the qualifying tier with the largest threshold
func (s *TieredPricingStrategy) CalculatePrice(ctx context.Context, pricingCtx PricingContext) (PricingResult, error) {
	tier, ok := findApplicableTier(pricingCtx.Tiers, pricingCtx.Quantity)
	if !ok {
		return s.FallbackStrategy.CalculatePrice(ctx, pricingCtx)
	}
	result := newResult(tier.UnitPrice, pricingCtx, PriceKindTier, "tiered_pricing")
	if tier.UnitPrice.LessThan(pricingCtx.BasePrice) {
		result.AppliedRules = append(result.AppliedRules, "quantity_discount")
	}
	return result, nil
}

// findApplicableTier scans tiers in declared order and keeps the largest
// threshold not above quantity. Equal thresholds keep the earlier entry.
func findApplicableTier(tiers []PriceTier, quantity decimal.Decimal) (PriceTier, bool) {
	var (
		best  PriceTier
		found bool
	)
	for _, tier := range tiers {
		if tier.MinQuantity.GreaterThan(quantity) {
			continue
		}
		if !found || tier.MinQuantity.GreaterThan(best.MinQuantity) {
			best = tier
			found = true
		}
	}
	return best, found
}

// CustomPricingStrategy honors a manually overridden line price
type CustomPricingStrategy struct {
	named
	FallbackStrategy PricingStrategy
}

// NewCustomPricingStrategy creates a manual override strategy
func NewCustomPricingStrategy(fallback PricingStrategy) *CustomPricingStrategy {
	if fallback == nil {
		fallback = NewStandardPricingStrategy()
	}
	return &CustomPricingStrategy{
		named:            "custom",
		FallbackStrategy: fallback,
	}
}

// CalculatePrice returns the manual price when one is set
func (s *CustomPricingStrategy) CalculatePrice(ctx context.Context, pricingCtx PricingContext) (PricingResult, error) {
	if pricingCtx.ManualPrice == nil {
		return s.FallbackStrategy.CalculatePrice(ctx, pricingCtx)
	}
	return newResult(*pricingCtx.ManualPrice, pricingCtx, PriceKindCustom, "manual_override"), nil
}

var (
	_ PricingStrategy = (*StandardPricingStrategy)(nil)
	_ PricingStrategy = (*SpecialOfferPricingStrategy)(nil)
	_ PricingStrategy = (*TieredPricingStrategy)(nil)
	_ PricingStrategy = (*CustomPricingStrategy)(nil)
)
