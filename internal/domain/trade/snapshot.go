package trade

import (
	"strings"

	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductSnapshot is the product identity copied onto a document line at
// write time. Later renames or deletions of the product do not touch it.
type ProductSnapshot struct {
	ProductID   uuid.UUID
	ProductCode string
	ProductName string
}

// NewProductSnapshot validates and builds a snapshot
func NewProductSnapshot(productID uuid.UUID, code, name string) (ProductSnapshot, error) {
	if productID == uuid.Nil {
		return ProductSnapshot{}, shared.NewValidationError("Product ID cannot be empty")
	}
	if strings.TrimSpace(code) == "" {
		return ProductSnapshot{}, shared.NewValidationError("Product code cannot be empty")
	}
	return ProductSnapshot{ProductID: productID, ProductCode: code, ProductName: name}, nil
}

// ProductQuantity is a product with the total quantity requested across lines
type ProductQuantity struct {
	Product  ProductSnapshot
	Quantity decimal.Decimal
}

// sumByProduct folds line quantities per product, keeping first-appearance order
func sumByProduct(n int, at func(i int) (ProductSnapshot, decimal.Decimal)) []ProductQuantity {
	index := make(map[uuid.UUID]int, n)
	result := make([]ProductQuantity, 0, n)
	for i := 0; i < n; i++ {
		snap, qty := at(i)
		if pos, ok := index[snap.ProductID]; ok {
			result[pos].Quantity = result[pos].Quantity.Add(qty)
			continue
		}
		index[snap.ProductID] = len(result)
		result = append(result, ProductQuantity{Product: snap, Quantity: qty})
	}
	return result
}
