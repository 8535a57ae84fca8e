package handler

import (
	"context"

	catalogapp "github.com/erp/tradecore/internal/application/catalog"
	ledgerapp "github.com/erp/tradecore/internal/application/ledger"
	tradeapp "github.com/erp/tradecore/internal/application/trade"
	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductService is the catalog use case surface used by ProductHandler
type ProductService interface {
	Create(ctx context.Context, req catalogapp.CreateProductRequest) (*catalogapp.ProductResponse, error)
	GetByID(ctx context.Context, productID uuid.UUID) (*catalogapp.ProductResponse, error)
	List(ctx context.Context, filter catalogapp.ProductListFilter) ([]catalogapp.ProductResponse, int64, error)
	Update(ctx context.Context, productID uuid.UUID, req catalogapp.UpdateProductRequest) (*catalogapp.ProductResponse, error)
	UpdatePricing(ctx context.Context, productID uuid.UUID, req catalogapp.UpdatePricingRequest) (*catalogapp.ProductResponse, error)
	QuotePrice(ctx context.Context, productID uuid.UUID, q catalogapp.PriceQuoteQuery) (*catalogapp.PriceQuoteResponse, error)
	ListMovements(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]catalogapp.StockMovementResponse, int64, error)
}

// TaxRuleService is the tax rule use case surface
type TaxRuleService interface {
	Create(ctx context.Context, req catalogapp.CreateTaxRuleRequest) (*catalogapp.TaxRuleResponse, error)
	List(ctx context.Context) ([]catalogapp.TaxRuleResponse, error)
}

// OrderService is the order coordinator surface
type OrderService interface {
	PlaceOrder(ctx context.Context, req tradeapp.PlaceOrderRequest) (*tradeapp.OrderResponse, error)
	SetStatus(ctx context.Context, orderID uuid.UUID, req tradeapp.SetOrderStatusRequest) (*tradeapp.OrderResponse, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*tradeapp.OrderResponse, error)
	GetInvoice(ctx context.Context, orderID uuid.UUID) (*tradeapp.InvoiceResponse, error)
	ListOrders(ctx context.Context, filter tradeapp.OrderListFilter) ([]tradeapp.OrderListItemResponse, int64, error)
}

// PurchaseService is the purchase coordinator surface
type PurchaseService interface {
	RecordPurchase(ctx context.Context, req tradeapp.RecordPurchaseRequest) (*tradeapp.PurchaseResponse, error)
	GetPurchase(ctx context.Context, id uuid.UUID) (*tradeapp.PurchaseResponse, error)
	ListPurchases(ctx context.Context, filter tradeapp.PurchaseListFilter) ([]tradeapp.PurchaseResponse, int64, error)
}

// LedgerService is the account ledger surface
type LedgerService interface {
	CreateAccount(ctx context.Context, req ledgerapp.CreateAccountRequest) (*ledgerapp.AccountResponse, error)
	UpdateAccount(ctx context.Context, accountID uuid.UUID, req ledgerapp.UpdateAccountRequest) (*ledgerapp.AccountResponse, error)
	GetAccount(ctx context.Context, accountID uuid.UUID) (*ledgerapp.AccountResponse, error)
	ListAccounts(ctx context.Context, filter ledgerapp.AccountListFilter) ([]ledgerapp.AccountResponse, int64, error)
	ListTransactions(ctx context.Context, accountID uuid.UUID, filter ledgerapp.TransactionListFilter) ([]ledgerapp.TransactionResponse, int64, error)
	Record(ctx context.Context, accountID uuid.UUID, req ledgerapp.RecordEntryRequest) (*ledgerapp.EntryResult, error)
	Edit(ctx context.Context, transactionID uuid.UUID, req ledgerapp.EditEntryRequest) (*ledgerapp.EntryResult, error)
	Delete(ctx context.Context, transactionID uuid.UUID) (*ledgerapp.EntryResult, error)
	RebuildBalance(ctx context.Context, accountID uuid.UUID) (*ledgerapp.EntryResult, error)
}

var (
	_ ProductService  = (*catalogapp.ProductService)(nil)
	_ TaxRuleService  = (*catalogapp.TaxRuleService)(nil)
	_ OrderService    = (*tradeapp.OrderService)(nil)
	_ PurchaseService = (*tradeapp.PurchaseService)(nil)
	_ LedgerService   = (*ledgerapp.Service)(nil)
)
