package trade

import (
	"context"

	"github.com/erp/tradecore/internal/domain/catalog"
	"github.com/erp/tradecore/internal/domain/inventory"
	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/erp/tradecore/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCode(ctx context.Context, code string) (*catalog.Product, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) UpdateLastBuyingPrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) error {
	args := m.Called(ctx, id, price)
	return args.Error(0)
}

// MockStockRepository is a mock implementation of inventory.StockRepository
type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) FindByProductID(ctx context.Context, productID uuid.UUID) (*inventory.StockItem, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockItem), args.Error(1)
}

func (m *MockStockRepository) FindByProductIDs(ctx context.Context, productIDs []uuid.UUID) ([]inventory.StockItem, error) {
	args := m.Called(ctx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockItem), args.Error(1)
}

func (m *MockStockRepository) FindByProductIDForUpdate(ctx context.Context, productID uuid.UUID) (*inventory.StockItem, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockItem), args.Error(1)
}

func (m *MockStockRepository) GetOrCreateForUpdate(ctx context.Context, productID uuid.UUID) (*inventory.StockItem, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockItem), args.Error(1)
}

func (m *MockStockRepository) Save(ctx context.Context, item *inventory.StockItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockStockRepository) SaveMovement(ctx context.Context, movement *inventory.StockMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockStockRepository) FindMovements(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]inventory.StockMovement, int64, error) {
	args := m.Called(ctx, productID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]inventory.StockMovement), args.Get(1).(int64), args.Error(2)
}

// MockOrderRepository is a mock implementation of trade.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.OrderTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.OrderTransaction), args.Error(1)
}

func (m *MockOrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trade.OrderTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.OrderTransaction), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter trade.OrderFilter) ([]trade.OrderTransaction, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]trade.OrderTransaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) Create(ctx context.Context, order *trade.OrderTransaction) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, order *trade.OrderTransaction) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

// MockInvoiceRepository is a mock implementation of trade.InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) NextInvoiceNumber(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) Create(ctx context.Context, invoice *trade.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*trade.Invoice, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Invoice), args.Error(1)
}

// MockPurchaseRepository is a mock implementation of trade.PurchaseRepository
type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.PurchaseTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.PurchaseTransaction), args.Error(1)
}

func (m *MockPurchaseRepository) FindAll(ctx context.Context, filter trade.PurchaseFilter) ([]trade.PurchaseTransaction, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]trade.PurchaseTransaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockPurchaseRepository) Create(ctx context.Context, purchase *trade.PurchaseTransaction) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}

// MockEventPublisher captures published events
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

type tradeMocks struct {
	products  *MockProductRepository
	stock     *MockStockRepository
	orders    *MockOrderRepository
	invoices  *MockInvoiceRepository
	purchases *MockPurchaseRepository
	scope     *NoOpTransactionScope
}

func newTradeMocks() *tradeMocks {
	m := &tradeMocks{
		products:  new(MockProductRepository),
		stock:     new(MockStockRepository),
		orders:    new(MockOrderRepository),
		invoices:  new(MockInvoiceRepository),
		purchases: new(MockPurchaseRepository),
	}
	m.scope = NewNoOpTransactionScope(m.products, m.stock, m.orders, m.invoices, m.purchases)
	return m
}

func (m *tradeMocks) assertExpectations(t mock.TestingT) {
	m.products.AssertExpectations(t)
	m.stock.AssertExpectations(t)
	m.orders.AssertExpectations(t)
	m.invoices.AssertExpectations(t)
	m.purchases.AssertExpectations(t)
}
