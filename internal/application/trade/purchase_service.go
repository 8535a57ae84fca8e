package trade

import (
	"context"
	"strings"

	"github.com/erp/tradecore/internal/domain/inventory"
	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/erp/tradecore/internal/domain/shared/valueobject"
	"github.com/erp/tradecore/internal/domain/trade"
	"github.com/erp/tradecore/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PurchaseService records supplier purchases. Recording a purchase adds stock
// and refreshes each product's last buying price in the same transaction.
type PurchaseService struct {
	purchaseRepo   trade.PurchaseRepository
	txScope        TransactionScope
	clock          shared.Clock
	eventPublisher shared.EventPublisher
	metrics        BusinessMetrics
	logger         *zap.Logger
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(purchaseRepo trade.PurchaseRepository, txScope TransactionScope, clock shared.Clock, logger *zap.Logger) *PurchaseService {
	if clock == nil {
		clock = shared.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		txScope:      txScope,
		clock:        clock,
		metrics:      noopMetrics{},
		logger:       logger,
	}
}

// SetEventPublisher sets the publisher that receives events after commit
func (s *PurchaseService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetMetrics sets the business metrics sink
func (s *PurchaseService) SetMetrics(m BusinessMetrics) {
	if m != nil {
		s.metrics = m
	}
}

// RecordPurchase persists the purchase, increments stock for every line and
// overwrites last buying prices. There is no stock sufficiency check.
func (s *PurchaseService) RecordPurchase(ctx context.Context, req RecordPurchaseRequest) (*PurchaseResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "purchase", "record", telemetry.Attr("purchase.lines", len(req.Lines)))
	resp, err := s.recordPurchase(ctx, req)
	telemetry.EndSpan(span, err)
	return resp, err
}

func (s *PurchaseService) recordPurchase(ctx context.Context, req RecordPurchaseRequest) (*PurchaseResponse, error) {
	if err := validatePurchase(req); err != nil {
		return nil, err
	}
	purchaseDate := shared.EffectiveDate(s.clock, req.PurchaseDate)

	ids := make([]uuid.UUID, len(req.Lines))
	for i, l := range req.Lines {
		ids[i] = l.ProductID
	}

	var purchase *trade.PurchaseTransaction
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		products, err := loadProducts(ctx, repos.ProductRepo(), ids)
		if err != nil {
			return err
		}

		lines := make([]trade.PurchaseLine, 0, len(req.Lines))
		for i, in := range req.Lines {
			p := products[in.ProductID]
			snapshot, err := trade.NewProductSnapshot(p.ID, p.Code, p.Name)
			if err != nil {
				return err
			}
			line, err := trade.NewPurchaseLine(i+1, snapshot, valueobject.RoundQuantity(in.Quantity), *in.UnitPrice)
			if err != nil {
				return err
			}
			lines = append(lines, *line)
		}

		purchase, err = trade.NewPurchaseTransaction(req.SupplierRef, purchaseDate, req.Reference, req.PaymentMethod, lines)
		if err != nil {
			return err
		}
		if err := repos.PurchaseRepo().Create(ctx, purchase); err != nil {
			return err
		}

		quantities := purchase.QuantitiesByProduct()
		stock, err := lockOrCreateStock(ctx, repos.StockRepo(), quantities)
		if err != nil {
			return err
		}
		for _, q := range quantities {
			if err := adjustStock(ctx, repos.StockRepo(), stock[q.Product.ProductID], q.Quantity, q.Product.ProductCode,
				inventory.MovementTypePurchase, inventory.SourceTypePurchase, purchase.ID); err != nil {
				return err
			}
		}

		for productID, price := range purchase.LastPriceByProduct() {
			if err := repos.ProductRepo().UpdateLastBuyingPrice(ctx, productID, price); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("purchase rejected",
			zap.String("supplier_ref", req.SupplierRef),
			zap.String("code", shared.ErrorCode(err)),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("purchase recorded",
		zap.String("purchase_id", purchase.ID.String()),
		zap.String("supplier_ref", purchase.SupplierRef),
		zap.String("grand_total", purchase.GrandTotal.String()),
		zap.Int("lines", len(purchase.Lines)),
	)
	s.metrics.RecordPurchaseRecorded(ctx)

	events := purchase.PullDomainEvents()
	if s.eventPublisher != nil && len(events) > 0 {
		if err := s.eventPublisher.Publish(ctx, events...); err != nil {
			s.logger.Error("failed to publish purchase events",
				zap.String("purchase_id", purchase.ID.String()),
				zap.Error(err),
			)
		}
	}

	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// GetPurchase retrieves a purchase with its lines
func (s *PurchaseService) GetPurchase(ctx context.Context, id uuid.UUID) (*PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// ListPurchases retrieves purchases with filtering and pagination
func (s *PurchaseService) ListPurchases(ctx context.Context, filter PurchaseListFilter) ([]PurchaseResponse, int64, error) {
	purchases, total, err := s.purchaseRepo.FindAll(ctx, trade.PurchaseFilter{
		Filter:      shared.Filter{Page: filter.Page, PageSize: filter.PageSize, OrderBy: "purchase_date", OrderDir: "desc", Search: strings.TrimSpace(filter.Search)},
		SupplierRef: strings.TrimSpace(filter.SupplierRef),
		DateFrom:    filter.DateFrom,
		DateTo:      filter.DateTo,
	})
	if err != nil {
		return nil, 0, err
	}
	return ToPurchaseResponses(purchases), total, nil
}

func validatePurchase(req RecordPurchaseRequest) error {
	if strings.TrimSpace(req.SupplierRef) == "" {
		return shared.NewValidationError("Supplier reference is required")
	}
	if len(req.Lines) == 0 {
		return shared.NewValidationError("Purchase must have at least one line")
	}
	for i, line := range req.Lines {
		if line.ProductID == uuid.Nil {
			return shared.NewValidationError("Line %d: product is required", i+1)
		}
		if err := valueobject.ValidateQuantity(line.Quantity); err != nil {
			return shared.NewValidationError("Line %d: %v", i+1, err)
		}
		if line.UnitPrice == nil {
			return shared.NewValidationError("Line %d: unit price is required", i+1)
		}
		if line.UnitPrice.IsNegative() {
			return shared.NewValidationError("Line %d: unit price cannot be negative", i+1)
		}
	}
	return nil
}
