package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/erp/tradecore/internal/domain/catalog"
	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// withPricing preloads the tax rule and the tier and offer lists in declared order
func withPricing(db *gorm.DB) *gorm.DB {
	return db.
		Preload("TaxRule").
		Preload("TierPrices", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Preload("SpecialOffers", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") })
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := withPricing(r.db.WithContext(ctx)).First(&product, "id = ?", id).Error; err != nil {
		return nil, notFound("product", id, err)
	}
	return &product, nil
}

// FindByIDs finds multiple products by their IDs
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}
	var products []catalog.Product
	if err := withPricing(r.db.WithContext(ctx)).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, WrapError("find products", err)
	}
	return products, nil
}

// FindByCode finds a product by its code
func (r *GormProductRepository) FindByCode(ctx context.Context, code string) (*catalog.Product, error) {
	var product catalog.Product
	code = strings.ToUpper(code)
	if err := withPricing(r.db.WithContext(ctx)).First(&product, "code = ?", code).Error; err != nil {
		return nil, notFound("product", code, err)
	}
	return &product, nil
}

// FindAll finds all products matching the filter
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	query := r.applyFilter(withPricing(r.db.WithContext(ctx)).Model(&catalog.Product{}), filter)
	if err := query.Find(&products).Error; err != nil {
		return nil, WrapError("list products", err)
	}
	return products, nil
}

// Count counts products matching the filter
func (r *GormProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&catalog.Product{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, WrapError("count products", err)
	}
	return count, nil
}

// Save creates or updates a product. The tier and offer lists are replaced
// wholesale so removed entries disappear.
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(product).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&catalog.TierPrice{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&catalog.SpecialOffer{}).Error; err != nil {
			return err
		}
		for i := range product.TierPrices {
			product.TierPrices[i].ProductID = product.ID
		}
		for i := range product.SpecialOffers {
			product.SpecialOffers[i].ProductID = product.ID
		}
		if len(product.TierPrices) > 0 {
			if err := tx.Create(&product.TierPrices).Error; err != nil {
				return err
			}
		}
		if len(product.SpecialOffers) > 0 {
			if err := tx.Create(&product.SpecialOffers).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return WrapError("save product", err)
}

// ExistsByCode checks if a product with the given code exists
func (r *GormProductRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("code = ?", strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, WrapError("check product code", err)
	}
	return count > 0, nil
}

// UpdateLastBuyingPrice overwrites the cached buying price
func (r *GormProductRepository) UpdateLastBuyingPrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"last_buying_price": price,
			"updated_at":        time.Now(),
		})
	if result.Error != nil {
		return WrapError("update last buying price", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("product", id)
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormProductRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)
	query = query.Order(orderClause(filter.OrderBy, filter.OrderDir, ProductSortFields, "code", "ASC"))
	return query.Offset(filter.Offset()).Limit(filter.Limit())
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormProductRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(code) LIKE ? OR LOWER(name) LIKE ?", pattern, pattern)
	}
	if status, ok := filter.Filters["status"]; ok && status != "" {
		query = query.Where("status = ?", status)
	}
	return query
}

// GormTaxRuleRepository implements TaxRuleRepository using GORM
type GormTaxRuleRepository struct {
	db *gorm.DB
}

// NewGormTaxRuleRepository creates a new GormTaxRuleRepository
func NewGormTaxRuleRepository(db *gorm.DB) *GormTaxRuleRepository {
	return &GormTaxRuleRepository{db: db}
}

// FindByID finds a tax rule by its ID
func (r *GormTaxRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.TaxRule, error) {
	var rule catalog.TaxRule
	if err := r.db.WithContext(ctx).First(&rule, "id = ?", id).Error; err != nil {
		return nil, notFound("tax rule", id, err)
	}
	return &rule, nil
}

// FindAll lists every tax rule by title
func (r *GormTaxRuleRepository) FindAll(ctx context.Context) ([]catalog.TaxRule, error) {
	var rules []catalog.TaxRule
	if err := r.db.WithContext(ctx).Order("title ASC").Find(&rules).Error; err != nil {
		return nil, WrapError("list tax rules", err)
	}
	return rules, nil
}

// Save creates or updates a tax rule
func (r *GormTaxRuleRepository) Save(ctx context.Context, rule *catalog.TaxRule) error {
	return WrapError("save tax rule", r.db.WithContext(ctx).Save(rule).Error)
}

var (
	_ catalog.ProductRepository = (*GormProductRepository)(nil)
	_ catalog.TaxRuleRepository = (*GormTaxRuleRepository)(nil)
)
