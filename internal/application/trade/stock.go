package trade

import (
	"bytes"
	"context"
	"errors"
	"sort"

	"github.com/erp/tradecore/internal/domain/inventory"
	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/erp/tradecore/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// sortedProductIDs returns the product IDs in ascending byte order. Stock rows
// are always locked in this order so concurrent carts cannot deadlock.
func sortedProductIDs(quantities []trade.ProductQuantity) []uuid.UUID {
	ids := make([]uuid.UUID, len(quantities))
	for i, q := range quantities {
		ids[i] = q.Product.ProductID
	}
	sort.Slice(ids, func(i, j int) bool { return bytes.Compare(ids[i][:], ids[j][:]) < 0 })
	return ids
}

// lockExistingStock locks the stock rows of the given products. Products with
// no stock row are absent from the result.
func lockExistingStock(ctx context.Context, repo inventory.StockRepository, quantities []trade.ProductQuantity) (map[uuid.UUID]*inventory.StockItem, error) {
	items := make(map[uuid.UUID]*inventory.StockItem, len(quantities))
	for _, id := range sortedProductIDs(quantities) {
		item, err := repo.FindByProductIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				continue
			}
			return nil, err
		}
		items[id] = item
	}
	return items, nil
}

// lockOrCreateStock locks the stock rows of the given products, creating empty
// rows for products that have none.
func lockOrCreateStock(ctx context.Context, repo inventory.StockRepository, quantities []trade.ProductQuantity) (map[uuid.UUID]*inventory.StockItem, error) {
	items := make(map[uuid.UUID]*inventory.StockItem, len(quantities))
	for _, id := range sortedProductIDs(quantities) {
		item, err := repo.GetOrCreateForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		items[id] = item
	}
	return items, nil
}

// adjustStock applies delta to a locked item, saves it and journals the movement
func adjustStock(
	ctx context.Context,
	repo inventory.StockRepository,
	item *inventory.StockItem,
	delta decimal.Decimal,
	label string,
	movementType inventory.MovementType,
	sourceType inventory.SourceType,
	sourceID uuid.UUID,
) error {
	before := item.Quantity
	after, err := item.Adjust(delta, label)
	if err != nil {
		return err
	}
	if err := repo.Save(ctx, item); err != nil {
		return err
	}
	return repo.SaveMovement(ctx, inventory.NewStockMovement(item.ProductID, movementType, before, after, sourceType, sourceID))
}
