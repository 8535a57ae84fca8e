package catalog

import (
	"time"

	"github.com/erp/tradecore/internal/domain/catalog"
	"github.com/erp/tradecore/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Code       string          `json:"code" binding:"required,min=1,max=50"`
	Name       string          `json:"name" binding:"required,min=1,max=200"`
	Unit       string          `json:"unit" binding:"max=20"`
	UnitPrice  decimal.Decimal `json:"unit_price" binding:"decimal_gte0"`
	PacketSize int             `json:"packet_size" binding:"min=0"`
	TaxRuleID  *uuid.UUID      `json:"tax_rule_id"`
}

// UpdateProductRequest represents a request to update descriptive product fields
type UpdateProductRequest struct {
	Name       string     `json:"name" binding:"required,min=1,max=200"`
	Unit       string     `json:"unit" binding:"max=20"`
	PacketSize *int       `json:"packet_size" binding:"omitempty,min=0"`
	TaxRuleID  *uuid.UUID `json:"tax_rule_id"`
	// ClearTaxRule removes the tax rule when TaxRuleID is nil
	ClearTaxRule bool  `json:"clear_tax_rule"`
	Active       *bool `json:"active"`
}

// TierPriceInput is one quantity break
type TierPriceInput struct {
	MinQuantity decimal.Decimal `json:"min_quantity" binding:"decimal_gt0"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"decimal_gte0"`
}

// SpecialOfferInput is one dated promotional price
type SpecialOfferInput struct {
	Price     decimal.Decimal `json:"price" binding:"decimal_gte0"`
	StartDate time.Time       `json:"start_date" binding:"required"`
	EndDate   time.Time       `json:"end_date" binding:"required"`
}

// UpdatePricingRequest replaces the base price, tiers and offers of a product.
// Nil lists are left as they are; an empty list clears them.
type UpdatePricingRequest struct {
	UnitPrice     *decimal.Decimal    `json:"unit_price"`
	TierPrices    []TierPriceInput    `json:"tier_prices" binding:"omitempty,dive"`
	SpecialOffers []SpecialOfferInput `json:"special_offers" binding:"omitempty,dive"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
}

// PriceQuoteQuery represents the inputs of a price quote
type PriceQuoteQuery struct {
	Quantity  decimal.Decimal  `form:"quantity"`
	AsOf      *time.Time       `form:"as_of" time_format:"2006-01-02T15:04:05Z07:00"`
	UnitPrice *decimal.Decimal `form:"unit_price"`
}

// TierPriceResponse represents one tier
type TierPriceResponse struct {
	MinQuantity decimal.Decimal `json:"min_quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// SpecialOfferResponse represents one offer
type SpecialOfferResponse struct {
	Price     decimal.Decimal `json:"price"`
	StartDate time.Time       `json:"start_date"`
	EndDate   time.Time       `json:"end_date"`
}

// StockView is the on-hand quantity shown with a product
type StockView struct {
	Quantity decimal.Decimal `json:"quantity"`
	// Packets and Loose are set when the product has a packet size
	Packets *int64           `json:"packets,omitempty"`
	Loose   *decimal.Decimal `json:"loose,omitempty"`
}

// ProductResponse represents a product with pricing rules and stock
type ProductResponse struct {
	ID              uuid.UUID              `json:"id"`
	Code            string                 `json:"code"`
	Name            string                 `json:"name"`
	Unit            string                 `json:"unit"`
	UnitPrice       decimal.Decimal        `json:"unit_price"`
	LastBuyingPrice decimal.Decimal        `json:"last_buying_price"`
	PacketSize      int                    `json:"packet_size"`
	Status          string                 `json:"status"`
	TaxRule         *TaxRuleResponse       `json:"tax_rule,omitempty"`
	TierPrices      []TierPriceResponse    `json:"tier_prices"`
	SpecialOffers   []SpecialOfferResponse `json:"special_offers"`
	Stock           *StockView             `json:"stock,omitempty"`
	Version         int                    `json:"version"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// PriceQuoteResponse is the would-be line for a product and quantity
type PriceQuoteResponse struct {
	ProductID    uuid.UUID       `json:"product_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	PriceKind    string          `json:"price_kind"`
	TaxAmount    decimal.Decimal `json:"tax_amount"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	AsOf         time.Time       `json:"as_of"`
	AppliedRules []string        `json:"applied_rules,omitempty"`
}

// CreateTaxRuleRequest represents a request to create a tax rule
type CreateTaxRuleRequest struct {
	Title string          `json:"title" binding:"required,min=1,max=100"`
	Rate  decimal.Decimal `json:"rate" binding:"decimal_gte0"`
	Type  string          `json:"type" binding:"required,oneof=PERCENTAGE FIXED percentage fixed"`
}

// TaxRuleResponse represents a tax rule
type TaxRuleResponse struct {
	ID    uuid.UUID       `json:"id"`
	Title string          `json:"title"`
	Rate  decimal.Decimal `json:"rate"`
	Type  string          `json:"type"`
}

// StockMovementResponse represents one stock journal row
type StockMovementResponse struct {
	ID            uuid.UUID       `json:"id"`
	MovementType  string          `json:"movement_type"`
	Quantity      decimal.Decimal `json:"quantity"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	SourceType    string          `json:"source_type"`
	SourceID      uuid.UUID       `json:"source_id"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToProductResponse converts a domain product to a response DTO.
// stock may be nil when the product has never been stocked.
func ToProductResponse(p *catalog.Product, stock *inventory.StockItem) ProductResponse {
	resp := ProductResponse{
		ID:              p.ID,
		Code:            p.Code,
		Name:            p.Name,
		Unit:            p.Unit,
		UnitPrice:       p.UnitPrice,
		LastBuyingPrice: p.LastBuyingPrice,
		PacketSize:      p.PacketSize,
		Status:          string(p.Status),
		TierPrices:      make([]TierPriceResponse, 0, len(p.TierPrices)),
		SpecialOffers:   make([]SpecialOfferResponse, 0, len(p.SpecialOffers)),
		Version:         p.Version,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if p.TaxRule != nil {
		r := ToTaxRuleResponse(p.TaxRule)
		resp.TaxRule = &r
	}
	for _, t := range p.TierPrices {
		resp.TierPrices = append(resp.TierPrices, TierPriceResponse{MinQuantity: t.MinQuantity, UnitPrice: t.UnitPrice})
	}
	for _, o := range p.SpecialOffers {
		resp.SpecialOffers = append(resp.SpecialOffers, SpecialOfferResponse{Price: o.Price, StartDate: o.StartDate, EndDate: o.EndDate})
	}

	if stock == nil {
		stock = &inventory.StockItem{ProductID: p.ID, Quantity: decimal.Zero}
	}
	view := &StockView{Quantity: stock.Quantity}
	if packets, loose, ok := stock.Packets(p.PacketSize); ok {
		view.Packets = &packets
		view.Loose = &loose
	}
	resp.Stock = view
	return resp
}

// ToTaxRuleResponse converts a domain tax rule to a response DTO
func ToTaxRuleResponse(r *catalog.TaxRule) TaxRuleResponse {
	return TaxRuleResponse{ID: r.ID, Title: r.Title, Rate: r.Rate, Type: string(r.Type)}
}

// ToStockMovementResponse converts a stock movement to a response DTO
func ToStockMovementResponse(m *inventory.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		ID:            m.ID,
		MovementType:  string(m.MovementType),
		Quantity:      m.Quantity,
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter,
		SourceType:    string(m.SourceType),
		SourceID:      m.SourceID,
		CreatedAt:     m.CreatedAt,
	}
}
