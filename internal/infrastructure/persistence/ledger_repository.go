package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/erp/tradecore/internal/domain/ledger"
	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/erp/tradecore/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLedgerAccountRepository implements ledger.AccountRepository using GORM
type GormLedgerAccountRepository struct {
	db *gorm.DB
}

// NewGormLedgerAccountRepository creates a new GormLedgerAccountRepository
func NewGormLedgerAccountRepository(db *gorm.DB) *GormLedgerAccountRepository {
	return &GormLedgerAccountRepository{db: db}
}

// FindByID finds an account without locking
func (r *GormLedgerAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.LedgerAccount, error) {
	var model models.LedgerAccountModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound("ledger account", id, err)
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds an account with SELECT ... FOR UPDATE
func (r *GormLedgerAccountRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*ledger.LedgerAccount, error) {
	var model models.LedgerAccountModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound("ledger account", id, err)
	}
	return model.ToDomain(), nil
}

// FindAll lists accounts matching the filter and returns the total count
func (r *GormLedgerAccountRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.LedgerAccount, int64, error) {
	var total int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.LedgerAccountModel{}), filter).
		Count(&total).Error; err != nil {
		return nil, 0, WrapError("count ledger accounts", err)
	}

	var rows []models.LedgerAccountModel
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.LedgerAccountModel{}), filter).
		Order(orderClause(filter.OrderBy, filter.OrderDir, LedgerAccountSortFields, "name", "ASC")).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&rows).Error; err != nil {
		return nil, 0, WrapError("list ledger accounts", err)
	}

	accounts := make([]ledger.LedgerAccount, len(rows))
	for i := range rows {
		accounts[i] = *rows[i].ToDomain()
	}
	return accounts, total, nil
}

func (r *GormLedgerAccountRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR phone LIKE ?", pattern, pattern)
	}
	return query
}

// Create inserts a new account
func (r *GormLedgerAccountRepository) Create(ctx context.Context, account *ledger.LedgerAccount) error {
	return WrapError("create ledger account", r.db.WithContext(ctx).Create(models.LedgerAccountModelFromDomain(account)).Error)
}

// Update persists balance, sequence and contact fields guarded by version
func (r *GormLedgerAccountRepository) Update(ctx context.Context, account *ledger.LedgerAccount) error {
	result := r.db.WithContext(ctx).
		Model(&models.LedgerAccountModel{}).
		Where("id = ? AND version = ?", account.ID, account.Version-1).
		Updates(map[string]any{
			"name":          account.Name,
			"phone":         account.Phone,
			"address":       account.Address,
			"remark":        account.Remark,
			"total_balance": account.TotalBalance,
			"last_sequence": account.LastSequence,
			"version":       account.Version,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return WrapError("update ledger account", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError(shared.CodeConcurrencyConflict,
			"ledger account was modified by another transaction, please retry")
	}
	return nil
}

// GormLedgerTransactionRepository implements ledger.TransactionRepository using GORM
type GormLedgerTransactionRepository struct {
	db *gorm.DB
}

// NewGormLedgerTransactionRepository creates a new GormLedgerTransactionRepository
func NewGormLedgerTransactionRepository(db *gorm.DB) *GormLedgerTransactionRepository {
	return &GormLedgerTransactionRepository{db: db}
}

// FindByID finds an entry by ID
func (r *GormLedgerTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.LedgerTransaction, error) {
	var model models.LedgerTransactionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound("ledger transaction", id, err)
	}
	entry := model.ToDomain()
	return &entry, nil
}

// FindByAccountID lists entries ordered by sequence ascending
func (r *GormLedgerTransactionRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]ledger.LedgerTransaction, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.LedgerTransactionModel{}).
		Where("account_id = ?", accountID).
		Count(&total).Error; err != nil {
		return nil, 0, WrapError("count ledger transactions", err)
	}

	dir := "ASC"
	if filter.OrderDir != "" {
		dir = sortDirection(filter.OrderDir)
	}
	var rows []models.LedgerTransactionModel
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("sequence " + dir).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&rows).Error; err != nil {
		return nil, 0, WrapError("list ledger transactions", err)
	}
	return toLedgerTransactions(rows), total, nil
}

// FindFromSequence returns every entry with sequence >= fromSequence in sequence order
func (r *GormLedgerTransactionRepository) FindFromSequence(ctx context.Context, accountID uuid.UUID, fromSequence int64) ([]ledger.LedgerTransaction, error) {
	var rows []models.LedgerTransactionModel
	if err := r.db.WithContext(ctx).
		Where("account_id = ? AND sequence >= ?", accountID, fromSequence).
		Order("sequence ASC").
		Find(&rows).Error; err != nil {
		return nil, WrapError("load ledger history", err)
	}
	return toLedgerTransactions(rows), nil
}

// BalanceBefore returns the closing balance of the last entry before sequence
func (r *GormLedgerTransactionRepository) BalanceBefore(ctx context.Context, accountID uuid.UUID, sequence int64) (decimal.Decimal, error) {
	var model models.LedgerTransactionModel
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND sequence < ?", accountID, sequence).
		Order("sequence DESC").
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, WrapError("read opening balance", err)
	}
	return model.NewBalance, nil
}

// Create inserts an entry
func (r *GormLedgerTransactionRepository) Create(ctx context.Context, entry *ledger.LedgerTransaction) error {
	return WrapError("create ledger transaction", r.db.WithContext(ctx).Create(models.LedgerTransactionModelFromDomain(entry)).Error)
}

// Update persists an amended entry including its balances
func (r *GormLedgerTransactionRepository) Update(ctx context.Context, entry *ledger.LedgerTransaction) error {
	result := r.db.WithContext(ctx).
		Model(&models.LedgerTransactionModel{}).
		Where("id = ?", entry.ID).
		Updates(map[string]any{
			"type":             entry.Type,
			"amount":           entry.Amount,
			"previous_balance": entry.PreviousBalance,
			"new_balance":      entry.NewBalance,
			"reference":        entry.Reference,
			"description":      entry.Description,
			"transaction_date": entry.TransactionDate,
			"author":           entry.Author,
			"updated_at":       time.Now(),
		})
	if result.Error != nil {
		return WrapError("update ledger transaction", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("ledger transaction", entry.ID)
	}
	return nil
}

// Delete removes an entry
func (r *GormLedgerTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.LedgerTransactionModel{}, "id = ?", id)
	if result.Error != nil {
		return WrapError("delete ledger transaction", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("ledger transaction", id)
	}
	return nil
}

func toLedgerTransactions(rows []models.LedgerTransactionModel) []ledger.LedgerTransaction {
	entries := make([]ledger.LedgerTransaction, len(rows))
	for i := range rows {
		entries[i] = rows[i].ToDomain()
	}
	return entries
}

var (
	_ ledger.AccountRepository     = (*GormLedgerAccountRepository)(nil)
	_ ledger.TransactionRepository = (*GormLedgerTransactionRepository)(nil)
)
