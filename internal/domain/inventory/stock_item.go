package inventory

import (
	"time"

	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/erp/tradecore/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockItem holds the on-hand quantity of one product in base units.
// Quantity is never negative once a unit of work commits.
type StockItem struct {
	shared.BaseAggregateRoot
	ProductID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,1);not null;default:0"`
}

// TableName returns the table name for GORM
func (StockItem) TableName() string {
	return "stock_items"
}

// NewStockItem creates an empty stock record for a product
func NewStockItem(productID uuid.UUID) (*StockItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("Product ID cannot be empty")
	}
	return &StockItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		Quantity:          decimal.Zero,
	}, nil
}

// Adjust applies a signed delta and returns the new quantity.
// A negative delta that would take stock below zero fails with INSUFFICIENT_STOCK
// and leaves the item unchanged. label names the product in the error message.
func (s *StockItem) Adjust(delta decimal.Decimal, label string) (decimal.Decimal, error) {
	delta = valueobject.RoundQuantity(delta)
	if delta.IsZero() {
		return s.Quantity, nil
	}
	next := s.Quantity.Add(delta)
	if next.IsNegative() {
		return s.Quantity, shared.NewInsufficientStockError(label, delta.Neg(), s.Quantity)
	}
	s.Quantity = next
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return s.Quantity, nil
}

// Packets splits the quantity into whole packets and loose units for display.
// It returns ok=false when packetSize is not positive.
func (s *StockItem) Packets(packetSize int) (packets int64, loose decimal.Decimal, ok bool) {
	if packetSize <= 0 {
		return 0, s.Quantity, false
	}
	size := decimal.NewFromInt(int64(packetSize))
	whole := s.Quantity.Div(size).Floor()
	return whole.IntPart(), s.Quantity.Sub(whole.Mul(size)), true
}
