package strategy

import (
	"context"

	"github.com/erp/tradecore/internal/domain/shared"
)

// PriceResolver chooses the unit price of a line.
// Precedence, highest first: manual override, quantity tier, special offer, base price.
type PriceResolver struct {
	chain PricingStrategy
}

// NewPriceResolver wires the strategies in precedence order
func NewPriceResolver() *PriceResolver {
	standard := NewStandardPricingStrategy()
	offer := NewSpecialOfferPricingStrategy(standard)
	tiered := NewTieredPricingStrategy(offer)
	return &PriceResolver{chain: NewCustomPricingStrategy(tiered)}
}

// Resolve returns the unit price and the rule that produced it
func (r *PriceResolver) Resolve(ctx context.Context, pricingCtx PricingContext) (PricingResult, error) {
	if !pricingCtx.Quantity.IsPositive() {
		return PricingResult{}, shared.NewValidationError("quantity must be positive, got %s", pricingCtx.Quantity)
	}
	if pricingCtx.ManualPrice != nil && pricingCtx.ManualPrice.IsNegative() {
		return PricingResult{}, shared.NewValidationError("manual price cannot be negative")
	}
	return r.chain.CalculatePrice(ctx, pricingCtx)
}
