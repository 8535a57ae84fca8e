package integration

import (
	"context"
	"testing"

	catalogapp "github.com/erp/tradecore/internal/application/catalog"
	ledgerapp "github.com/erp/tradecore/internal/application/ledger"
	tradeapp "github.com/erp/tradecore/internal/application/trade"
	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/erp/tradecore/internal/infrastructure/event"
	"github.com/erp/tradecore/internal/infrastructure/persistence"
	"github.com/erp/tradecore/tests/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const invoiceStart = int64(1000)

// stack is the application wired to a real database the way cmd/server does it
type stack struct {
	db       *TestDB
	products *catalogapp.ProductService
	taxRules *catalogapp.TaxRuleService
	orders   *tradeapp.OrderService
	purchase *tradeapp.PurchaseService
	ledger   *ledgerapp.Service
	events   *testutil.RecordingHandler
}

func newStack(t *testing.T) *stack {
	t.Helper()
	tdb := NewTestDB(t)
	db := tdb.DB
	log := zap.NewNop()

	bus := event.NewInMemoryEventBus(log)
	events := testutil.NewRecordingHandler()
	bus.Subscribe(events)
	require.NoError(t, bus.Start(context.Background()))

	taxRuleRepo := persistence.NewGormTaxRuleRepository(db)
	tradeScope := persistence.NewTradeTransactionScope(db, invoiceStart)

	s := &stack{
		db:       tdb,
		events:   events,
		taxRules: catalogapp.NewTaxRuleService(taxRuleRepo, log),
		products: catalogapp.NewProductService(
			persistence.NewGormProductRepository(db), taxRuleRepo, persistence.NewGormStockRepository(db), nil, nil, log),
		orders: tradeapp.NewOrderService(
			persistence.NewGormOrderRepository(db), persistence.NewGormInvoiceRepository(db, invoiceStart),
			tradeScope, nil, nil, tradeapp.OrderServiceConfig{}, log),
		purchase: tradeapp.NewPurchaseService(persistence.NewGormPurchaseRepository(db), tradeScope, nil, log),
		ledger: ledgerapp.NewService(
			persistence.NewGormLedgerAccountRepository(db), persistence.NewGormLedgerTransactionRepository(db),
			persistence.NewLedgerTransactionScope(db), nil, log),
	}
	s.products.SetEventPublisher(bus)
	s.orders.SetEventPublisher(bus)
	s.purchase.SetEventPublisher(bus)
	s.ledger.SetEventPublisher(bus)
	return s
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func decPtr(v string) *decimal.Decimal {
	d := dec(v)
	return &d
}

// newStockedProduct creates a product and receives qty units through a purchase
func (s *stack) newStockedProduct(t *testing.T, code, price, qty string) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	product, err := s.products.Create(ctx, catalogapp.CreateProductRequest{Code: code, Name: "Product " + code, UnitPrice: dec(price)})
	require.NoError(t, err)
	if qty != "" {
		_, err = s.purchase.RecordPurchase(ctx, tradeapp.RecordPurchaseRequest{
			SupplierRef: "supplier-1",
			Lines:       []tradeapp.PurchaseLineInput{{ProductID: product.ID, Quantity: dec(qty), UnitPrice: decPtr("1.00")}},
		})
		require.NoError(t, err)
	}
	return product.ID
}

func (s *stack) stockOf(t *testing.T, productID uuid.UUID) decimal.Decimal {
	t.Helper()
	product, err := s.products.GetByID(context.Background(), productID)
	require.NoError(t, err)
	if product.Stock == nil {
		return decimal.Zero
	}
	return product.Stock.Quantity
}

func cart(paymentMethod string, lines ...tradeapp.CartLineInput) tradeapp.PlaceOrderRequest {
	return tradeapp.PlaceOrderRequest{CustomerRef: "customer-1", PaymentMethod: paymentMethod, Lines: lines}
}

func line(productID uuid.UUID, qty string) tradeapp.CartLineInput {
	return tradeapp.CartLineInput{ProductID: productID, Quantity: dec(qty)}
}

func codeOf(err error) string {
	return shared.ErrorCode(err)
}
