package persistence

import (
	"context"
	"strings"

	"github.com/erp/tradecore/internal/domain/trade"
	"github.com/erp/tradecore/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPurchaseRepository implements PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// FindByID finds a purchase with its lines
func (r *GormPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.PurchaseTransaction, error) {
	var model models.PurchaseModel
	if err := r.db.WithContext(ctx).
		Preload("Lines", orderedLines).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound("purchase", id, err)
	}
	return model.ToDomain(), nil
}

// FindAll lists purchases matching the filter and returns the total count
func (r *GormPurchaseRepository) FindAll(ctx context.Context, filter trade.PurchaseFilter) ([]trade.PurchaseTransaction, int64, error) {
	var total int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.PurchaseModel{}), filter).
		Count(&total).Error; err != nil {
		return nil, 0, WrapError("count purchases", err)
	}

	var rows []models.PurchaseModel
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.PurchaseModel{}), filter).
		Preload("Lines", orderedLines).
		Order(orderClause(filter.OrderBy, filter.OrderDir, PurchaseSortFields, "purchase_date", "DESC")).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&rows).Error; err != nil {
		return nil, 0, WrapError("list purchases", err)
	}

	purchases := make([]trade.PurchaseTransaction, len(rows))
	for i := range rows {
		purchases[i] = *rows[i].ToDomain()
	}
	return purchases, total, nil
}

func (r *GormPurchaseRepository) applyFilter(query *gorm.DB, filter trade.PurchaseFilter) *gorm.DB {
	if filter.SupplierRef != "" {
		query = query.Where("supplier_ref = ?", filter.SupplierRef)
	}
	if filter.DateFrom != nil {
		query = query.Where("purchase_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("purchase_date <= ?", *filter.DateTo)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(supplier_ref) LIKE ? OR LOWER(reference) LIKE ?", pattern, pattern)
	}
	return query
}

// Create inserts the header and all lines
func (r *GormPurchaseRepository) Create(ctx context.Context, purchase *trade.PurchaseTransaction) error {
	return WrapError("create purchase", r.db.WithContext(ctx).Create(models.PurchaseModelFromDomain(purchase)).Error)
}

var _ trade.PurchaseRepository = (*GormPurchaseRepository)(nil)
