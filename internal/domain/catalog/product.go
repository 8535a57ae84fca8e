package catalog

import (
	"sort"
	"strings"
	"time"

	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/erp/tradecore/internal/domain/shared/strategy"
	"github.com/erp/tradecore/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// Product represents a sellable item in the catalog.
// Stock on hand is owned by the inventory context, not by Product.
type Product struct {
	shared.BaseAggregateRoot
	Code            string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name            string          `gorm:"type:varchar(200);not null"`
	Unit            string          `gorm:"type:varchar(20);not null"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	LastBuyingPrice decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	PacketSize      int             `gorm:"not null;default:0"`
	TaxRuleID       *uuid.UUID      `gorm:"type:uuid;index"`
	TaxRule         *TaxRule        `gorm:"foreignKey:TaxRuleID"`
	Status          ProductStatus   `gorm:"type:varchar(20);not null;default:'active'"`
	TierPrices      []TierPrice     `gorm:"foreignKey:ProductID"`
	SpecialOffers   []SpecialOffer  `gorm:"foreignKey:ProductID"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// TierPrice is a quantity break for a product
type TierPrice struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	MinQuantity decimal.Decimal `gorm:"type:decimal(18,1);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	SortOrder   int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (TierPrice) TableName() string {
	return "product_tier_prices"
}

// SpecialOffer is a promotional price active inside [StartDate, EndDate]
type SpecialOffer struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Price     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	StartDate time.Time       `gorm:"not null"`
	EndDate   time.Time       `gorm:"not null"`
	SortOrder int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (SpecialOffer) TableName() string {
	return "product_special_offers"
}

// TierPriceInput describes one tier when replacing a product's tier list
type TierPriceInput struct {
	MinQuantity decimal.Decimal
	UnitPrice   decimal.Decimal
}

// SpecialOfferInput describes one offer when replacing a product's offer list
type SpecialOfferInput struct {
	Price     decimal.Decimal
	StartDate time.Time
	EndDate   time.Time
}

// NewProduct creates a new product
func NewProduct(code, name, unit string, unitPrice decimal.Decimal) (*Product, error) {
	if err := validateProductCode(code); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if strings.TrimSpace(unit) == "" {
		unit = "pcs"
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewValidationError("Unit price cannot be negative")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Unit:              unit,
		UnitPrice:         valueobject.RoundMoney(unitPrice),
		LastBuyingPrice:   decimal.Zero,
		Status:            ProductStatusActive,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update changes name and unit
func (p *Product) Update(name, unit string) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	p.Name = name
	if strings.TrimSpace(unit) != "" {
		p.Unit = unit
	}
	p.Touch()
	p.IncrementVersion()
	return nil
}

// SetUnitPrice changes the base selling price
func (p *Product) SetUnitPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewValidationError("Unit price cannot be negative")
	}
	old := p.UnitPrice
	p.UnitPrice = valueobject.RoundMoney(price)
	p.Touch()
	p.IncrementVersion()
	p.AddDomainEvent(NewProductPriceChangedEvent(p, old, p.LastBuyingPrice))
	return nil
}

// SetPacketSize sets the number of base units per packet. Zero disables packets.
func (p *Product) SetPacketSize(size int) error {
	if size < 0 {
		return shared.NewValidationError("Packet size cannot be negative")
	}
	p.PacketSize = size
	p.Touch()
	return nil
}

// AssignTaxRule links a tax rule, or clears it when rule is nil
func (p *Product) AssignTaxRule(rule *TaxRule) {
	if rule == nil {
		p.TaxRuleID = nil
		p.TaxRule = nil
	} else {
		id := rule.ID
		p.TaxRuleID = &id
		p.TaxRule = rule
	}
	p.Touch()
	p.IncrementVersion()
}

// ReplaceTierPrices swaps the tier list. Declared order is kept and used
// to break ties between equal thresholds.
func (p *Product) ReplaceTierPrices(inputs []TierPriceInput) error {
	tiers := make([]TierPrice, 0, len(inputs))
	for i, in := range inputs {
		if !in.MinQuantity.IsPositive() {
			return shared.NewValidationError("Tier %d: threshold must be positive", i+1)
		}
		if in.UnitPrice.IsNegative() {
			return shared.NewValidationError("Tier %d: price cannot be negative", i+1)
		}
		tiers = append(tiers, TierPrice{
			ID:          uuid.New(),
			ProductID:   p.ID,
			MinQuantity: valueobject.RoundQuantity(in.MinQuantity),
			UnitPrice:   valueobject.RoundMoney(in.UnitPrice),
			SortOrder:   i,
		})
	}
	p.TierPrices = tiers
	p.Touch()
	p.IncrementVersion()
	return nil
}

// ReplaceSpecialOffers swaps the offer list, keeping declared order
func (p *Product) ReplaceSpecialOffers(inputs []SpecialOfferInput) error {
	offers := make([]SpecialOffer, 0, len(inputs))
	for i, in := range inputs {
		if in.Price.IsNegative() {
			return shared.NewValidationError("Offer %d: price cannot be negative", i+1)
		}
		if in.StartDate.IsZero() || in.EndDate.IsZero() {
			return shared.NewValidationError("Offer %d: start and end dates are required", i+1)
		}
		if in.EndDate.Before(in.StartDate) {
			return shared.NewValidationError("Offer %d: end date is before start date", i+1)
		}
		offers = append(offers, SpecialOffer{
			ID:        uuid.New(),
			ProductID: p.ID,
			Price:     valueobject.RoundMoney(in.Price),
			StartDate: in.StartDate,
			EndDate:   in.EndDate,
			SortOrder: i,
		})
	}
	p.SpecialOffers = offers
	p.Touch()
	p.IncrementVersion()
	return nil
}

// Activate marks the product as sellable
func (p *Product) Activate() {
	p.Status = ProductStatusActive
	p.Touch()
	p.IncrementVersion()
}

// Deactivate hides the product from new sales
func (p *Product) Deactivate() {
	p.Status = ProductStatusInactive
	p.Touch()
	p.IncrementVersion()
}

// IsActive returns true if the product is active
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// PricingContext builds the input for the price resolver.
// Tiers and offers are passed in their stored SortOrder.
func (p *Product) PricingContext(quantity decimal.Decimal, asOf time.Time, manualPrice *decimal.Decimal) strategy.PricingContext {
	tiers := make([]TierPrice, len(p.TierPrices))
	copy(tiers, p.TierPrices)
	sort.SliceStable(tiers, func(i, j int) bool { return tiers[i].SortOrder < tiers[j].SortOrder })

	offers := make([]SpecialOffer, len(p.SpecialOffers))
	copy(offers, p.SpecialOffers)
	sort.SliceStable(offers, func(i, j int) bool { return offers[i].SortOrder < offers[j].SortOrder })

	pc := strategy.PricingContext{
		ProductID:   p.ID.String(),
		Quantity:    quantity,
		BasePrice:   p.UnitPrice,
		AsOf:        asOf,
		ManualPrice: manualPrice,
		Tiers:       make([]strategy.PriceTier, 0, len(tiers)),
		Offers:      make([]strategy.SpecialOffer, 0, len(offers)),
	}
	for _, t := range tiers {
		pc.Tiers = append(pc.Tiers, strategy.PriceTier{MinQuantity: t.MinQuantity, UnitPrice: t.UnitPrice})
	}
	for _, o := range offers {
		pc.Offers = append(pc.Offers, strategy.SpecialOffer{Price: o.Price, StartDate: o.StartDate, EndDate: o.EndDate})
	}
	return pc
}

// CalculateTax returns the tax owed on a line of this product
func (p *Product) CalculateTax(unitPrice, quantity decimal.Decimal) decimal.Decimal {
	return p.TaxRule.Calculate(unitPrice, quantity)
}

func validateProductCode(code string) error {
	if code == "" {
		return shared.NewValidationError("Product code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewValidationError("Product code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewValidationError("Product code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validateProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewValidationError("Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewValidationError("Product name cannot exceed 200 characters")
	}
	return nil
}
