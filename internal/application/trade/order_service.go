package trade

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/erp/tradecore/internal/domain/catalog"
	"github.com/erp/tradecore/internal/domain/inventory"
	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/erp/tradecore/internal/domain/shared/strategy"
	"github.com/erp/tradecore/internal/domain/shared/valueobject"
	"github.com/erp/tradecore/internal/domain/trade"
	"github.com/erp/tradecore/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderServiceConfig holds order settlement settings
type OrderServiceConfig struct {
	// SettledPaymentMethod replaces "pending" when an order is confirmed
	SettledPaymentMethod string
}

// OrderService places orders and drives their status changes.
// Every write runs inside one TransactionScope.Execute call.
type OrderService struct {
	orderRepo      trade.OrderRepository
	invoiceRepo    trade.InvoiceRepository
	txScope        TransactionScope
	resolver       *strategy.PriceResolver
	clock          shared.Clock
	config         OrderServiceConfig
	eventPublisher shared.EventPublisher
	metrics        BusinessMetrics
	logger         *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo trade.OrderRepository,
	invoiceRepo trade.InvoiceRepository,
	txScope TransactionScope,
	resolver *strategy.PriceResolver,
	clock shared.Clock,
	config OrderServiceConfig,
	logger *zap.Logger,
) *OrderService {
	if resolver == nil {
		resolver = strategy.NewPriceResolver()
	}
	if clock == nil {
		clock = shared.SystemClock{}
	}
	if config.SettledPaymentMethod == "" {
		config.SettledPaymentMethod = trade.DefaultSettledPaymentMethod
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orderRepo:   orderRepo,
		invoiceRepo: invoiceRepo,
		txScope:     txScope,
		resolver:    resolver,
		clock:       clock,
		config:      config,
		metrics:     noopMetrics{},
		logger:      logger,
	}
}

// SetEventPublisher sets the publisher that receives events after commit
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetMetrics sets the business metrics sink
func (s *OrderService) SetMetrics(m BusinessMetrics) {
	if m != nil {
		s.metrics = m
	}
}

// PlaceOrder prices, taxes and persists a cart as one unit of work.
// Stock is checked under row locks; the first short product fails the whole order.
func (s *OrderService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "place",
		telemetry.Attr("order.lines", len(req.Lines)),
		telemetry.Attr("payment_method", req.PaymentMethod),
	)
	resp, err := s.placeOrder(ctx, req)
	telemetry.EndSpan(span, err)
	return resp, err
}

func (s *OrderService) placeOrder(ctx context.Context, req PlaceOrderRequest) (*OrderResponse, error) {
	if err := validateCart(req); err != nil {
		return nil, err
	}
	asOf := shared.EffectiveDate(s.clock, req.OrderDate)

	var (
		order   *trade.OrderTransaction
		invoice *trade.Invoice
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		ids := cartProductIDs(req.Lines)
		products, err := loadProducts(ctx, repos.ProductRepo(), ids)
		if err != nil {
			return err
		}
		if err := requireSellable(products, ids); err != nil {
			return err
		}

		lines := make([]trade.OrderLine, 0, len(req.Lines))
		for i, in := range req.Lines {
			line, err := s.priceLine(ctx, i+1, products[in.ProductID], in, asOf)
			if err != nil {
				return err
			}
			lines = append(lines, *line)
		}

		order, err = trade.NewOrderTransaction(req.CustomerRef, asOf, req.PaymentMethod, req.Discount, lines)
		if err != nil {
			return err
		}
		order.Remark = strings.TrimSpace(req.Remark)

		quantities := order.QuantitiesByProduct()
		stock, err := lockExistingStock(ctx, repos.StockRepo(), quantities)
		if err != nil {
			return err
		}
		// Check in cart order so the error names the first short product.
		for _, q := range quantities {
			available := decimal.Zero
			if item, ok := stock[q.Product.ProductID]; ok {
				available = item.Quantity
			}
			if available.LessThan(q.Quantity) {
				s.metrics.RecordInsufficientStock(ctx)
				return shared.NewInsufficientStockError(q.Product.ProductCode, q.Quantity, available)
			}
		}

		if err := repos.OrderRepo().Create(ctx, order); err != nil {
			return err
		}

		for _, q := range quantities {
			if err := adjustStock(ctx, repos.StockRepo(), stock[q.Product.ProductID], q.Quantity.Neg(), q.Product.ProductCode,
				inventory.MovementTypeSale, inventory.SourceTypeOrder, order.ID); err != nil {
				return err
			}
		}

		if order.RequiresInvoice() {
			invoice, err = s.issueInvoice(ctx, repos.InvoiceRepo(), order)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("order rejected",
			zap.String("customer_ref", req.CustomerRef),
			zap.Int("lines", len(req.Lines)),
			zap.String("code", shared.ErrorCode(err)),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("status", order.Status.String()),
		zap.String("grand_total", order.GrandTotal.String()),
	)
	s.metrics.RecordOrderPlaced(ctx, order.Status.String())
	s.publish(ctx, order, invoice)

	response := ToOrderResponse(order, invoice)
	return &response, nil
}

// SetStatus confirms or cancels a pending order. Confirming settles payment
// and issues the invoice; cancelling puts every line back into stock.
func (s *OrderService) SetStatus(ctx context.Context, orderID uuid.UUID, req SetOrderStatusRequest) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "set_status", telemetry.Attr("order.id", orderID), telemetry.Attr("order.status", req.Status))
	resp, err := s.setStatus(ctx, orderID, req)
	telemetry.EndSpan(span, err)
	return resp, err
}

func (s *OrderService) setStatus(ctx context.Context, orderID uuid.UUID, req SetOrderStatusRequest) (*OrderResponse, error) {
	target, err := trade.ParseOrderStatus(req.Status)
	if err != nil {
		return nil, err
	}

	var (
		order   *trade.OrderTransaction
		invoice *trade.Invoice
	)
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err = repos.OrderRepo().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}

		switch target {
		case trade.OrderStatusConfirmed:
			if err := order.Confirm(s.config.SettledPaymentMethod); err != nil {
				return err
			}
			if err := repos.OrderRepo().UpdateStatus(ctx, order); err != nil {
				return err
			}
			invoice, err = s.issueInvoice(ctx, repos.InvoiceRepo(), order)
			return err

		case trade.OrderStatusCancelled:
			if err := order.Cancel(); err != nil {
				return err
			}
			if err := repos.OrderRepo().UpdateStatus(ctx, order); err != nil {
				return err
			}
			quantities := order.QuantitiesByProduct()
			stock, err := lockOrCreateStock(ctx, repos.StockRepo(), quantities)
			if err != nil {
				return err
			}
			for _, q := range quantities {
				if err := adjustStock(ctx, repos.StockRepo(), stock[q.Product.ProductID], q.Quantity, q.Product.ProductCode,
					inventory.MovementTypeRestock, inventory.SourceTypeOrder, order.ID); err != nil {
					return err
				}
			}
			return nil

		default:
			return shared.NewInvalidStateTransitionError("order", order.Status.String(), target.String())
		}
	})
	if err != nil {
		s.logger.Warn("order status change rejected",
			zap.String("order_id", orderID.String()),
			zap.String("target", req.Status),
			zap.String("code", shared.ErrorCode(err)),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("order status changed",
		zap.String("order_id", order.ID.String()),
		zap.String("status", order.Status.String()),
	)
	s.publish(ctx, order, invoice)

	response := ToOrderResponse(order, invoice)
	return &response, nil
}

// GetOrder retrieves an order with its invoice, if one was issued
func (s *OrderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	var invoice *trade.Invoice
	if order.RequiresInvoice() {
		invoice, err = s.invoiceRepo.FindByOrderID(ctx, orderID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}
	response := ToOrderResponse(order, invoice)
	return &response, nil
}

// GetInvoice retrieves the invoice issued for an order
func (s *OrderService) GetInvoice(ctx context.Context, orderID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// ListOrders retrieves orders with filtering and pagination
func (s *OrderService) ListOrders(ctx context.Context, filter OrderListFilter) ([]OrderListItemResponse, int64, error) {
	domainFilter := trade.OrderFilter{
		Filter:      shared.Filter{Page: filter.Page, PageSize: filter.PageSize, OrderBy: "order_date", OrderDir: filter.OrderDir, Search: strings.TrimSpace(filter.Search)},
		CustomerRef: strings.TrimSpace(filter.CustomerRef),
		DateFrom:    filter.DateFrom,
		DateTo:      filter.DateTo,
	}
	if domainFilter.OrderDir == "" {
		domainFilter.OrderDir = "desc"
	}
	if filter.Status != "" {
		status, err := trade.ParseOrderStatus(filter.Status)
		if err != nil {
			return nil, 0, err
		}
		domainFilter.Status = status
	}

	orders, total, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToOrderListItemResponses(orders), total, nil
}

func (s *OrderService) priceLine(ctx context.Context, lineNo int, product *catalog.Product, in CartLineInput, asOf time.Time) (*trade.OrderLine, error) {
	quantity := valueobject.RoundQuantity(in.Quantity)
	priced, err := s.resolver.Resolve(ctx, product.PricingContext(quantity, asOf, in.UnitPrice))
	if err != nil {
		return nil, err
	}
	snapshot, err := trade.NewProductSnapshot(product.ID, product.Code, product.Name)
	if err != nil {
		return nil, err
	}
	tax := product.CalculateTax(priced.UnitPrice, quantity)
	return trade.NewOrderLine(lineNo, snapshot, quantity, priced.UnitPrice, priced.Kind, tax)
}

func (s *OrderService) issueInvoice(ctx context.Context, repo trade.InvoiceRepository, order *trade.OrderTransaction) (*trade.Invoice, error) {
	number, err := repo.NextInvoiceNumber(ctx)
	if err != nil {
		return nil, err
	}
	invoice, err := trade.NewInvoice(order, number)
	if err != nil {
		return nil, err
	}
	if err := repo.Create(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// publish forwards the order's events after commit. A publish failure is
// logged only; the order is already durable.
func (s *OrderService) publish(ctx context.Context, order *trade.OrderTransaction, invoice *trade.Invoice) {
	events := order.PullDomainEvents()
	if invoice != nil {
		events = append(events, trade.NewInvoiceIssuedEvent(invoice))
	}
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish order events",
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
	}
}

func validateCart(req PlaceOrderRequest) error {
	if strings.TrimSpace(req.CustomerRef) == "" {
		return shared.NewValidationError("Customer reference is required")
	}
	if strings.TrimSpace(req.PaymentMethod) == "" {
		return shared.NewValidationError("Payment method is required")
	}
	if len(req.Lines) == 0 {
		return shared.NewValidationError("Cart cannot be empty")
	}
	if req.Discount.IsNegative() {
		return shared.NewValidationError("Discount cannot be negative")
	}
	for i, line := range req.Lines {
		if line.ProductID == uuid.Nil {
			return shared.NewValidationError("Line %d: product is required", i+1)
		}
		if err := valueobject.ValidateQuantity(line.Quantity); err != nil {
			return shared.NewValidationError("Line %d: %v", i+1, err)
		}
		if line.UnitPrice != nil && line.UnitPrice.IsNegative() {
			return shared.NewValidationError("Line %d: unit price cannot be negative", i+1)
		}
	}
	return nil
}

func cartProductIDs(lines []CartLineInput) []uuid.UUID {
	ids := make([]uuid.UUID, len(lines))
	for i, l := range lines {
		ids[i] = l.ProductID
	}
	return ids
}

// loadProducts fetches the distinct products and fails with NOT_FOUND on the
// first unknown ID.
func loadProducts(ctx context.Context, repo catalog.ProductRepository, ids []uuid.UUID) (map[uuid.UUID]*catalog.Product, error) {
	distinct := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			distinct = append(distinct, id)
		}
	}
	found, err := repo.FindByIDs(ctx, distinct)
	if err != nil {
		return nil, err
	}
	products := make(map[uuid.UUID]*catalog.Product, len(found))
	for i := range found {
		products[found[i].ID] = &found[i]
	}
	for _, id := range distinct {
		if _, ok := products[id]; !ok {
			return nil, shared.NewNotFoundError("product", id)
		}
	}
	return products, nil
}

// requireSellable rejects the cart when any product is inactive. Purchases
// skip this so inactive products can still be restocked.
func requireSellable(products map[uuid.UUID]*catalog.Product, ids []uuid.UUID) error {
	for _, id := range ids {
		if p := products[id]; !p.IsActive() {
			return shared.NewValidationError("Product %s is inactive", p.Code)
		}
	}
	return nil
}
