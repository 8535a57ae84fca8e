package handler

import (
	"context"

	catalogapp "github.com/erp/tradecore/internal/application/catalog"
	ledgerapp "github.com/erp/tradecore/internal/application/ledger"
	tradeapp "github.com/erp/tradecore/internal/application/trade"
	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) Create(ctx context.Context, req catalogapp.CreateProductRequest) (*catalogapp.ProductResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ProductResponse), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, productID uuid.UUID) (*catalogapp.ProductResponse, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ProductResponse), args.Error(1)
}

func (m *MockProductService) List(ctx context.Context, filter catalogapp.ProductListFilter) ([]catalogapp.ProductResponse, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalogapp.ProductResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductService) Update(ctx context.Context, productID uuid.UUID, req catalogapp.UpdateProductRequest) (*catalogapp.ProductResponse, error) {
	args := m.Called(ctx, productID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ProductResponse), args.Error(1)
}

func (m *MockProductService) UpdatePricing(ctx context.Context, productID uuid.UUID, req catalogapp.UpdatePricingRequest) (*catalogapp.ProductResponse, error) {
	args := m.Called(ctx, productID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ProductResponse), args.Error(1)
}

func (m *MockProductService) QuotePrice(ctx context.Context, productID uuid.UUID, q catalogapp.PriceQuoteQuery) (*catalogapp.PriceQuoteResponse, error) {
	args := m.Called(ctx, productID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.PriceQuoteResponse), args.Error(1)
}

func (m *MockProductService) ListMovements(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]catalogapp.StockMovementResponse, int64, error) {
	args := m.Called(ctx, productID, filter)
	return args.Get(0).([]catalogapp.StockMovementResponse), args.Get(1).(int64), args.Error(2)
}

type MockTaxRuleService struct {
	mock.Mock
}

func (m *MockTaxRuleService) Create(ctx context.Context, req catalogapp.CreateTaxRuleRequest) (*catalogapp.TaxRuleResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.TaxRuleResponse), args.Error(1)
}

func (m *MockTaxRuleService) List(ctx context.Context) ([]catalogapp.TaxRuleResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalogapp.TaxRuleResponse), args.Error(1)
}

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) PlaceOrder(ctx context.Context, req tradeapp.PlaceOrderRequest) (*tradeapp.OrderResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tradeapp.OrderResponse), args.Error(1)
}

func (m *MockOrderService) SetStatus(ctx context.Context, orderID uuid.UUID, req tradeapp.SetOrderStatusRequest) (*tradeapp.OrderResponse, error) {
	args := m.Called(ctx, orderID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tradeapp.OrderResponse), args.Error(1)
}

func (m *MockOrderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*tradeapp.OrderResponse, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tradeapp.OrderResponse), args.Error(1)
}

func (m *MockOrderService) GetInvoice(ctx context.Context, orderID uuid.UUID) (*tradeapp.InvoiceResponse, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tradeapp.InvoiceResponse), args.Error(1)
}

func (m *MockOrderService) ListOrders(ctx context.Context, filter tradeapp.OrderListFilter) ([]tradeapp.OrderListItemResponse, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]tradeapp.OrderListItemResponse), args.Get(1).(int64), args.Error(2)
}

type MockPurchaseService struct {
	mock.Mock
}

func (m *MockPurchaseService) RecordPurchase(ctx context.Context, req tradeapp.RecordPurchaseRequest) (*tradeapp.PurchaseResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tradeapp.PurchaseResponse), args.Error(1)
}

func (m *MockPurchaseService) GetPurchase(ctx context.Context, id uuid.UUID) (*tradeapp.PurchaseResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tradeapp.PurchaseResponse), args.Error(1)
}

func (m *MockPurchaseService) ListPurchases(ctx context.Context, filter tradeapp.PurchaseListFilter) ([]tradeapp.PurchaseResponse, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]tradeapp.PurchaseResponse), args.Get(1).(int64), args.Error(2)
}

type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) CreateAccount(ctx context.Context, req ledgerapp.CreateAccountRequest) (*ledgerapp.AccountResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledgerapp.AccountResponse), args.Error(1)
}

func (m *MockLedgerService) UpdateAccount(ctx context.Context, accountID uuid.UUID, req ledgerapp.UpdateAccountRequest) (*ledgerapp.AccountResponse, error) {
	args := m.Called(ctx, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledgerapp.AccountResponse), args.Error(1)
}

func (m *MockLedgerService) GetAccount(ctx context.Context, accountID uuid.UUID) (*ledgerapp.AccountResponse, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledgerapp.AccountResponse), args.Error(1)
}

func (m *MockLedgerService) ListAccounts(ctx context.Context, filter ledgerapp.AccountListFilter) ([]ledgerapp.AccountResponse, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ledgerapp.AccountResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockLedgerService) ListTransactions(ctx context.Context, accountID uuid.UUID, filter ledgerapp.TransactionListFilter) ([]ledgerapp.TransactionResponse, int64, error) {
	args := m.Called(ctx, accountID, filter)
	return args.Get(0).([]ledgerapp.TransactionResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockLedgerService) Record(ctx context.Context, accountID uuid.UUID, req ledgerapp.RecordEntryRequest) (*ledgerapp.EntryResult, error) {
	args := m.Called(ctx, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledgerapp.EntryResult), args.Error(1)
}

func (m *MockLedgerService) Edit(ctx context.Context, transactionID uuid.UUID, req ledgerapp.EditEntryRequest) (*ledgerapp.EntryResult, error) {
	args := m.Called(ctx, transactionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledgerapp.EntryResult), args.Error(1)
}

func (m *MockLedgerService) Delete(ctx context.Context, transactionID uuid.UUID) (*ledgerapp.EntryResult, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledgerapp.EntryResult), args.Error(1)
}

func (m *MockLedgerService) RebuildBalance(ctx context.Context, accountID uuid.UUID) (*ledgerapp.EntryResult, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledgerapp.EntryResult), args.Error(1)
}
