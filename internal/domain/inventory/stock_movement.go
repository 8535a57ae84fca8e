package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementType classifies a stock mutation
type MovementType string

const (
	// MovementTypeSale is stock leaving through a sales order
	MovementTypeSale MovementType = "SALE"
	// MovementTypePurchase is stock received from a supplier
	MovementTypePurchase MovementType = "PURCHASE"
	// MovementTypeRestock is stock returned by an order cancellation
	MovementTypeRestock MovementType = "RESTOCK"
)

// IsIncrease returns true if the movement adds stock
func (t MovementType) IsIncrease() bool {
	return t == MovementTypePurchase || t == MovementTypeRestock
}

// IsValid returns true if the movement type is known
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeSale, MovementTypePurchase, MovementTypeRestock:
		return true
	}
	return false
}

// SourceType names the document that caused a movement
type SourceType string

const (
	SourceTypeOrder    SourceType = "ORDER"
	SourceTypePurchase SourceType = "PURCHASE"
)

// StockMovement is an append-only journal row written with every adjustment
type StockMovement struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	MovementType  MovementType    `gorm:"type:varchar(20);not null"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,1);not null"`
	BalanceBefore decimal.Decimal `gorm:"type:decimal(18,1);not null"`
	BalanceAfter  decimal.Decimal `gorm:"type:decimal(18,1);not null"`
	SourceType    SourceType      `gorm:"type:varchar(20);not null"`
	SourceID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	CreatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement records a change from before to after
func NewStockMovement(productID uuid.UUID, movementType MovementType, before, after decimal.Decimal, sourceType SourceType, sourceID uuid.UUID) *StockMovement {
	return &StockMovement{
		ID:            uuid.New(),
		ProductID:     productID,
		MovementType:  movementType,
		Quantity:      after.Sub(before),
		BalanceBefore: before,
		BalanceAfter:  after,
		SourceType:    sourceType,
		SourceID:      sourceID,
		CreatedAt:     time.Now(),
	}
}
