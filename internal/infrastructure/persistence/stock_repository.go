package persistence

import (
	"context"

	"github.com/erp/tradecore/internal/domain/inventory"
	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockRepository implements StockRepository using GORM.
// The ForUpdate finders issue SELECT ... FOR UPDATE, so they must run inside a transaction.
type GormStockRepository struct {
	db *gorm.DB
}

// NewGormStockRepository creates a new GormStockRepository
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// FindByProductID returns the stock row without locking
func (r *GormStockRepository) FindByProductID(ctx context.Context, productID uuid.UUID) (*inventory.StockItem, error) {
	var item inventory.StockItem
	if err := r.db.WithContext(ctx).First(&item, "product_id = ?", productID).Error; err != nil {
		return nil, notFound("stock item for product", productID, err)
	}
	return &item, nil
}

// FindByProductIDs returns stock rows for the given products
func (r *GormStockRepository) FindByProductIDs(ctx context.Context, productIDs []uuid.UUID) ([]inventory.StockItem, error) {
	if len(productIDs) == 0 {
		return []inventory.StockItem{}, nil
	}
	var items []inventory.StockItem
	if err := r.db.WithContext(ctx).Where("product_id IN ?", productIDs).Find(&items).Error; err != nil {
		return nil, WrapError("find stock items", err)
	}
	return items, nil
}

// FindByProductIDForUpdate reads the row with SELECT ... FOR UPDATE
func (r *GormStockRepository) FindByProductIDForUpdate(ctx context.Context, productID uuid.UUID) (*inventory.StockItem, error) {
	var item inventory.StockItem
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&item, "product_id = ?", productID).Error; err != nil {
		return nil, notFound("stock item for product", productID, err)
	}
	return &item, nil
}

// GetOrCreateForUpdate inserts a zero row when missing, then locks it.
// Concurrent creators collide on the product_id unique index and the loser
// falls through to the locking read.
func (r *GormStockRepository) GetOrCreateForUpdate(ctx context.Context, productID uuid.UUID) (*inventory.StockItem, error) {
	fresh, err := inventory.NewStockItem(productID)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "product_id"}}, DoNothing: true}).
		Create(fresh).Error; err != nil {
		return nil, WrapError("create stock item", err)
	}
	return r.FindByProductIDForUpdate(ctx, productID)
}

// Save persists quantity and version. The row must still carry the version
// the item was loaded with.
func (r *GormStockRepository) Save(ctx context.Context, item *inventory.StockItem) error {
	result := r.db.WithContext(ctx).
		Model(&inventory.StockItem{}).
		Where("id = ? AND version = ?", item.ID, item.Version-1).
		Updates(map[string]any{
			"quantity":   item.Quantity,
			"version":    item.Version,
			"updated_at": item.UpdatedAt,
		})
	if result.Error != nil {
		return WrapError("save stock item", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError(shared.CodeConcurrencyConflict,
			"stock item was modified by another transaction, please retry")
	}
	return nil
}

// SaveMovement appends a journal row
func (r *GormStockRepository) SaveMovement(ctx context.Context, movement *inventory.StockMovement) error {
	return WrapError("save stock movement", r.db.WithContext(ctx).Create(movement).Error)
}

// FindMovements lists journal rows for a product, newest first by default
func (r *GormStockRepository) FindMovements(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]inventory.StockMovement, int64, error) {
	base := func() *gorm.DB {
		query := r.db.WithContext(ctx).Model(&inventory.StockMovement{}).Where("product_id = ?", productID)
		if mt, ok := filter.Filters["movement_type"]; ok && mt != "" {
			query = query.Where("movement_type = ?", mt)
		}
		return query
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, WrapError("count stock movements", err)
	}

	var movements []inventory.StockMovement
	if err := base().
		Order(orderClause(filter.OrderBy, filter.OrderDir, StockMovementSortFields, "created_at", "DESC")).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&movements).Error; err != nil {
		return nil, 0, WrapError("list stock movements", err)
	}
	return movements, total, nil
}

var _ inventory.StockRepository = (*GormStockRepository)(nil)
