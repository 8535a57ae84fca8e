package inventory

import (
	"context"

	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/google/uuid"
)

// StockRepository persists stock items and their movement journal.
// Implementations built on a transaction handle make the ForUpdate
// methods hold a row lock until that transaction ends.
type StockRepository interface {
	// FindByProductID returns the stock row without locking
	FindByProductID(ctx context.Context, productID uuid.UUID) (*StockItem, error)

	// FindByProductIDs returns stock rows for the given products; missing rows are absent
	FindByProductIDs(ctx context.Context, productIDs []uuid.UUID) ([]StockItem, error)

	// FindByProductIDForUpdate reads and locks the row
	FindByProductIDForUpdate(ctx context.Context, productID uuid.UUID) (*StockItem, error)

	// GetOrCreateForUpdate locks the row, creating a zero row first if none exists
	GetOrCreateForUpdate(ctx context.Context, productID uuid.UUID) (*StockItem, error)

	// Save persists the stock row
	Save(ctx context.Context, item *StockItem) error

	// SaveMovement appends a journal row
	SaveMovement(ctx context.Context, movement *StockMovement) error

	// FindMovements lists journal rows for a product, newest first
	FindMovements(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]StockMovement, int64, error)
}
