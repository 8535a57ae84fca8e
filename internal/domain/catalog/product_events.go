package catalog

import (
	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeProduct = "Product"

// Event type constants
const (
	EventTypeProductCreated      = "ProductCreated"
	EventTypeProductPriceChanged = "ProductPriceChanged"
)

// ProductCreatedEvent is published when a new product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID       `json:"product_id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		Code:            product.Code,
		Name:            product.Name,
		UnitPrice:       product.UnitPrice,
	}
}

// ProductPriceChangedEvent is published when the base selling price changes
type ProductPriceChangedEvent struct {
	shared.BaseDomainEvent
	ProductID       uuid.UUID       `json:"product_id"`
	Code            string          `json:"code"`
	OldUnitPrice    decimal.Decimal `json:"old_unit_price"`
	NewUnitPrice    decimal.Decimal `json:"new_unit_price"`
	LastBuyingPrice decimal.Decimal `json:"last_buying_price"`
}

// NewProductPriceChangedEvent creates a new ProductPriceChangedEvent
func NewProductPriceChangedEvent(product *Product, oldUnitPrice, lastBuyingPrice decimal.Decimal) *ProductPriceChangedEvent {
	return &ProductPriceChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductPriceChanged, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		Code:            product.Code,
		OldUnitPrice:    oldUnitPrice,
		NewUnitPrice:    product.UnitPrice,
		LastBuyingPrice: lastBuyingPrice,
	}
}
