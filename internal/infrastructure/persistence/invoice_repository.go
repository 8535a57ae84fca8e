package persistence

import (
	"context"
	"errors"

	"github.com/erp/tradecore/internal/domain/trade"
	"github.com/erp/tradecore/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// invoiceSequenceRow is the primary key of the single counter row
const invoiceSequenceRow = 1

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db          *gorm.DB
	startNumber int64
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository.
// startNumber is the first number issued on an empty invoice table.
func NewGormInvoiceRepository(db *gorm.DB, startNumber int64) *GormInvoiceRepository {
	if startNumber < 1 {
		startNumber = 1
	}
	return &GormInvoiceRepository{db: db, startNumber: startNumber}
}

// NextInvoiceNumber locks the counter row and returns max(invoice_number)+1.
// The lock is held until the surrounding transaction ends, which serializes
// numbering across concurrent confirmations.
func (r *GormInvoiceRepository) NextInvoiceNumber(ctx context.Context) (int64, error) {
	db := r.db.WithContext(ctx)

	var seq models.InvoiceSequenceModel
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&seq, "id = ?", invoiceSequenceRow).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		seq = models.InvoiceSequenceModel{ID: invoiceSequenceRow}
		if err = db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seq).Error; err == nil {
			err = db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&seq, "id = ?", invoiceSequenceRow).Error
		}
	}
	if err != nil {
		return 0, WrapError("lock invoice sequence", err)
	}

	var maxNumber int64
	if err := db.Model(&models.InvoiceModel{}).
		Select("COALESCE(MAX(invoice_number), 0)").
		Scan(&maxNumber).Error; err != nil {
		return 0, WrapError("read invoice numbers", err)
	}

	next := maxNumber + 1
	if next < r.startNumber {
		next = r.startNumber
	}
	if err := db.Model(&seq).Update("last_number", next).Error; err != nil {
		return 0, WrapError("advance invoice sequence", err)
	}
	return next, nil
}

// Create inserts an invoice
func (r *GormInvoiceRepository) Create(ctx context.Context, invoice *trade.Invoice) error {
	return WrapError("create invoice", r.db.WithContext(ctx).Create(models.InvoiceModelFromDomain(invoice)).Error)
}

// FindByOrderID finds the invoice issued for an order
func (r *GormInvoiceRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*trade.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).First(&model, "order_id = ?", orderID).Error; err != nil {
		return nil, notFound("invoice for order", orderID, err)
	}
	return model.ToDomain(), nil
}

var _ trade.InvoiceRepository = (*GormInvoiceRepository)(nil)
