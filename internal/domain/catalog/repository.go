package catalog

import (
	"context"

	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductRepository defines the interface for product persistence.
// Read methods preload tier prices, special offers and the tax rule.
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDs finds multiple products by their IDs; missing IDs are simply absent
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// FindByCode finds a product by its code
	FindByCode(ctx context.Context, code string) (*Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a product including its tier and offer lists
	Save(ctx context.Context, product *Product) error

	// ExistsByCode checks if a product with the given code exists
	ExistsByCode(ctx context.Context, code string) (bool, error)

	// UpdateLastBuyingPrice overwrites the cached buying price
	UpdateLastBuyingPrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) error
}

// TaxRuleRepository defines the interface for tax rule persistence
type TaxRuleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*TaxRule, error)
	FindAll(ctx context.Context) ([]TaxRule, error)
	Save(ctx context.Context, rule *TaxRule) error
}
