package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/erp/tradecore/internal/domain/trade"
	"github.com/erp/tradecore/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func orderedLines(db *gorm.DB) *gorm.DB {
	return db.Order("line_no ASC")
}

// FindByID finds an order with its lines
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.OrderTransaction, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Lines", orderedLines).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound("order", id, err)
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate locks the order header row, then loads its lines
func (r *GormOrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trade.OrderTransaction, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound("order", id, err)
	}
	if err := orderedLines(r.db.WithContext(ctx)).
		Where("order_id = ?", id).
		Find(&model.Lines).Error; err != nil {
		return nil, WrapError("load order lines", err)
	}
	return model.ToDomain(), nil
}

// FindAll lists orders matching the filter and returns the total count
func (r *GormOrderRepository) FindAll(ctx context.Context, filter trade.OrderFilter) ([]trade.OrderTransaction, int64, error) {
	var total int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter).
		Count(&total).Error; err != nil {
		return nil, 0, WrapError("count orders", err)
	}

	var rows []models.OrderModel
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter).
		Preload("Lines", orderedLines).
		Order(orderClause(filter.OrderBy, filter.OrderDir, OrderSortFields, "order_date", "DESC")).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&rows).Error; err != nil {
		return nil, 0, WrapError("list orders", err)
	}

	orders := make([]trade.OrderTransaction, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders, total, nil
}

func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter trade.OrderFilter) *gorm.DB {
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CustomerRef != "" {
		query = query.Where("customer_ref = ?", filter.CustomerRef)
	}
	if filter.DateFrom != nil {
		query = query.Where("order_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("order_date <= ?", *filter.DateTo)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(order_number) LIKE ? OR LOWER(customer_ref) LIKE ?", pattern, pattern)
	}
	return query
}

// Create inserts the header and all lines in one statement batch
func (r *GormOrderRepository) Create(ctx context.Context, order *trade.OrderTransaction) error {
	model := models.OrderModelFromDomain(order)
	return WrapError("create order", r.db.WithContext(ctx).Create(model).Error)
}

// UpdateStatus persists the status change guarded by the version the order was loaded with
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, order *trade.OrderTransaction) error {
	result := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ? AND version = ?", order.ID, order.Version-1).
		Updates(map[string]any{
			"status":         order.Status,
			"payment_method": order.PaymentMethod,
			"confirmed_at":   order.ConfirmedAt,
			"cancelled_at":   order.CancelledAt,
			"version":        order.Version,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return WrapError("update order status", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError(shared.CodeConcurrencyConflict,
			"order was modified by another transaction, please retry")
	}
	return nil
}

var _ trade.OrderRepository = (*GormOrderRepository)(nil)
