package trade

import (
	"context"

	"github.com/erp/tradecore/internal/domain/catalog"
	"github.com/erp/tradecore/internal/domain/inventory"
	"github.com/erp/tradecore/internal/domain/trade"
)

// TransactionScope provides transactional access to the repositories an order
// or purchase touches. Everything done inside Execute commits or rolls back together.
type TransactionScope interface {
	// Execute runs fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories are repositories bound to one database transaction.
//
// Row locks taken through StockRepo and OrderRepo (the ForUpdate finders) are
// held until Execute returns.
type TransactionalRepositories interface {
	ProductRepo() catalog.ProductRepository
	StockRepo() inventory.StockRepository
	OrderRepo() trade.OrderRepository
	InvoiceRepo() trade.InvoiceRepository
	PurchaseRepo() trade.PurchaseRepository
}

// NoOpTransactionScope runs fn against plain repositories without a transaction.
// Useful for tests.
type NoOpTransactionScope struct {
	productRepo  catalog.ProductRepository
	stockRepo    inventory.StockRepository
	orderRepo    trade.OrderRepository
	invoiceRepo  trade.InvoiceRepository
	purchaseRepo trade.PurchaseRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	productRepo catalog.ProductRepository,
	stockRepo inventory.StockRepository,
	orderRepo trade.OrderRepository,
	invoiceRepo trade.InvoiceRepository,
	purchaseRepo trade.PurchaseRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		productRepo:  productRepo,
		stockRepo:    stockRepo,
		orderRepo:    orderRepo,
		invoiceRepo:  invoiceRepo,
		purchaseRepo: purchaseRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ProductRepo returns the product repository.
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository { return s.productRepo }

// StockRepo returns the stock repository.
func (s *NoOpTransactionScope) StockRepo() inventory.StockRepository { return s.stockRepo }

// OrderRepo returns the order repository.
func (s *NoOpTransactionScope) OrderRepo() trade.OrderRepository { return s.orderRepo }

// InvoiceRepo returns the invoice repository.
func (s *NoOpTransactionScope) InvoiceRepo() trade.InvoiceRepository { return s.invoiceRepo }

// PurchaseRepo returns the purchase repository.
func (s *NoOpTransactionScope) PurchaseRepo() trade.PurchaseRepository { return s.purchaseRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
