package persistence

import (
	"context"

	appledger "github.com/erp/tradecore/internal/application/ledger"
	apptrade "github.com/erp/tradecore/internal/application/trade"
	"github.com/erp/tradecore/internal/domain/catalog"
	"github.com/erp/tradecore/internal/domain/inventory"
	"github.com/erp/tradecore/internal/domain/ledger"
	"github.com/erp/tradecore/internal/domain/trade"
	"gorm.io/gorm"
)

// TradeTransactionScope implements the trade TransactionScope using GORM transactions.
// Everything fn writes commits together or not at all.
type TradeTransactionScope struct {
	db                 *gorm.DB
	invoiceStartNumber int64
}

// NewTradeTransactionScope creates a new TradeTransactionScope
func NewTradeTransactionScope(db *gorm.DB, invoiceStartNumber int64) *TradeTransactionScope {
	return &TradeTransactionScope{db: db, invoiceStartNumber: invoiceStartNumber}
}

// Execute runs fn within a database transaction.
// If fn returns an error, the transaction is rolled back.
func (s *TradeTransactionScope) Execute(ctx context.Context, fn func(repos apptrade.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&tradeRepositories{tx: tx, invoiceStartNumber: s.invoiceStartNumber})
	})
}

type tradeRepositories struct {
	tx                 *gorm.DB
	invoiceStartNumber int64
}

func (r *tradeRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *tradeRepositories) StockRepo() inventory.StockRepository {
	return NewGormStockRepository(r.tx)
}

func (r *tradeRepositories) OrderRepo() trade.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

func (r *tradeRepositories) InvoiceRepo() trade.InvoiceRepository {
	return NewGormInvoiceRepository(r.tx, r.invoiceStartNumber)
}

func (r *tradeRepositories) PurchaseRepo() trade.PurchaseRepository {
	return NewGormPurchaseRepository(r.tx)
}

// LedgerTransactionScope implements the ledger TransactionScope using GORM transactions
type LedgerTransactionScope struct {
	db *gorm.DB
}

// NewLedgerTransactionScope creates a new LedgerTransactionScope
func NewLedgerTransactionScope(db *gorm.DB) *LedgerTransactionScope {
	return &LedgerTransactionScope{db: db}
}

// Execute runs fn within a database transaction.
// If fn returns an error, the transaction is rolled back.
func (s *LedgerTransactionScope) Execute(ctx context.Context, fn func(repos appledger.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ledgerRepositories{tx: tx})
	})
}

type ledgerRepositories struct {
	tx *gorm.DB
}

func (r *ledgerRepositories) AccountRepo() ledger.AccountRepository {
	return NewGormLedgerAccountRepository(r.tx)
}

func (r *ledgerRepositories) TransactionRepo() ledger.TransactionRepository {
	return NewGormLedgerTransactionRepository(r.tx)
}

var (
	_ apptrade.TransactionScope           = (*TradeTransactionScope)(nil)
	_ apptrade.TransactionalRepositories  = (*tradeRepositories)(nil)
	_ appledger.TransactionScope          = (*LedgerTransactionScope)(nil)
	_ appledger.TransactionalRepositories = (*ledgerRepositories)(nil)
)
