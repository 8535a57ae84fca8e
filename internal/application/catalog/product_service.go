package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/erp/tradecore/internal/domain/catalog"
	"github.com/erp/tradecore/internal/domain/inventory"
	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/erp/tradecore/internal/domain/shared/strategy"
	"github.com/erp/tradecore/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductService handles product administration and price quotes
type ProductService struct {
	productRepo catalog.ProductRepository
	taxRuleRepo catalog.TaxRuleRepository
	stockRepo   inventory.StockRepository
	resolver    *strategy.PriceResolver
	clock       shared.Clock
	publisher   shared.EventPublisher
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	taxRuleRepo catalog.TaxRuleRepository,
	stockRepo inventory.StockRepository,
	resolver *strategy.PriceResolver,
	clock shared.Clock,
	logger *zap.Logger,
) *ProductService {
	if resolver == nil {
		resolver = strategy.NewPriceResolver()
	}
	if clock == nil {
		clock = shared.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		productRepo: productRepo,
		taxRuleRepo: taxRuleRepo,
		stockRepo:   stockRepo,
		resolver:    resolver,
		clock:       clock,
		logger:      logger,
	}
}

// SetEventPublisher sets the publisher for product events
func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.productRepo.ExistsByCode(ctx, strings.ToUpper(strings.TrimSpace(req.Code)))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, "Product with this code already exists")
	}

	product, err := catalog.NewProduct(strings.TrimSpace(req.Code), strings.TrimSpace(req.Name), req.Unit, req.UnitPrice)
	if err != nil {
		return nil, err
	}
	if err := product.SetPacketSize(req.PacketSize); err != nil {
		return nil, err
	}
	if req.TaxRuleID != nil {
		rule, err := s.taxRuleRepo.FindByID(ctx, *req.TaxRuleID)
		if err != nil {
			return nil, err
		}
		product.AssignTaxRule(rule)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.logger.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("code", product.Code),
	)
	s.publish(ctx, product)

	response := ToProductResponse(product, nil)
	return &response, nil
}

// GetByID retrieves a product with its on-hand stock
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	stock, err := s.stockFor(ctx, productID)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product, stock)
	return &response, nil
}

// List retrieves products with their stock
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Search:   strings.TrimSpace(filter.Search),
		OrderBy:  "code",
		OrderDir: "asc",
		Filters:  map[string]interface{}{},
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uuid.UUID, len(products))
	for i := range products {
		ids[i] = products[i].ID
	}
	items, err := s.stockRepo.FindByProductIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	stock := make(map[uuid.UUID]*inventory.StockItem, len(items))
	for i := range items {
		stock[items[i].ProductID] = &items[i]
	}

	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i], stock[products[i].ID])
	}
	return out, total, nil
}

// Update changes descriptive fields, packet size, tax rule and active flag
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := product.Update(strings.TrimSpace(req.Name), req.Unit); err != nil {
		return nil, err
	}
	if req.PacketSize != nil {
		if err := product.SetPacketSize(*req.PacketSize); err != nil {
			return nil, err
		}
	}
	switch {
	case req.TaxRuleID != nil:
		rule, err := s.taxRuleRepo.FindByID(ctx, *req.TaxRuleID)
		if err != nil {
			return nil, err
		}
		product.AssignTaxRule(rule)
	case req.ClearTaxRule:
		product.AssignTaxRule(nil)
	}
	if req.Active != nil {
		if *req.Active {
			product.Activate()
		} else {
			product.Deactivate()
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, productID)
}

// UpdatePricing replaces the base price, tier list and offer list
func (s *ProductService) UpdatePricing(ctx context.Context, productID uuid.UUID, req UpdatePricingRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if req.UnitPrice != nil {
		if err := product.SetUnitPrice(*req.UnitPrice); err != nil {
			return nil, err
		}
	}
	if req.TierPrices != nil {
		tiers := make([]catalog.TierPriceInput, len(req.TierPrices))
		for i, t := range req.TierPrices {
			tiers[i] = catalog.TierPriceInput{MinQuantity: t.MinQuantity, UnitPrice: t.UnitPrice}
		}
		if err := product.ReplaceTierPrices(tiers); err != nil {
			return nil, err
		}
	}
	if req.SpecialOffers != nil {
		offers := make([]catalog.SpecialOfferInput, len(req.SpecialOffers))
		for i, o := range req.SpecialOffers {
			offers[i] = catalog.SpecialOfferInput{Price: o.Price, StartDate: o.StartDate, EndDate: o.EndDate}
		}
		if err := product.ReplaceSpecialOffers(offers); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.logger.Info("product pricing updated",
		zap.String("product_id", product.ID.String()),
		zap.String("unit_price", product.UnitPrice.String()),
		zap.Int("tiers", len(product.TierPrices)),
		zap.Int("offers", len(product.SpecialOffers)),
	)
	s.publish(ctx, product)
	return s.GetByID(ctx, productID)
}

// QuotePrice resolves the unit price and tax a line would get, without writing anything
func (s *ProductService) QuotePrice(ctx context.Context, productID uuid.UUID, q PriceQuoteQuery) (*PriceQuoteResponse, error) {
	if err := valueobject.ValidateQuantity(q.Quantity); err != nil {
		return nil, shared.NewValidationError("%v", err)
	}
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	asOf := shared.EffectiveDate(s.clock, q.AsOf)

	result, err := s.resolver.Resolve(ctx, product.PricingContext(q.Quantity, asOf, q.UnitPrice))
	if err != nil {
		return nil, err
	}
	tax := valueobject.RoundMoney(product.CalculateTax(result.UnitPrice, q.Quantity))

	return &PriceQuoteResponse{
		ProductID:    product.ID,
		Quantity:     q.Quantity,
		UnitPrice:    result.UnitPrice,
		PriceKind:    result.Kind.String(),
		TaxAmount:    tax,
		Subtotal:     valueobject.RoundMoney(q.Quantity.Mul(result.UnitPrice).Add(tax)),
		AsOf:         asOf,
		AppliedRules: result.AppliedRules,
	}, nil
}

// ListMovements retrieves a product's stock journal, newest first
func (s *ProductService) ListMovements(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]StockMovementResponse, int64, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, 0, err
	}
	movements, total, err := s.stockRepo.FindMovements(ctx, productID, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]StockMovementResponse, len(movements))
	for i := range movements {
		out[i] = ToStockMovementResponse(&movements[i])
	}
	return out, total, nil
}

func (s *ProductService) stockFor(ctx context.Context, productID uuid.UUID) (*inventory.StockItem, error) {
	item, err := s.stockRepo.FindByProductID(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return item, nil
}

func (s *ProductService) publish(ctx context.Context, product *catalog.Product) {
	events := product.PullDomainEvents()
	if s.publisher == nil || len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish product events",
			zap.String("product_id", product.ID.String()),
			zap.Error(err),
		)
	}
}
