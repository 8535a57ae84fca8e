package handler

import (
	"net/http"
	"testing"
	"time"

	catalogapp "github.com/erp/tradecore/internal/application/catalog"
	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupProductRouter(svc *MockProductService, taxSvc *MockTaxRuleService) *gin.Engine {
	engine := newTestEngine()
	h := NewProductHandler(svc)
	engine.POST("/catalog/products", h.Create)
	engine.GET("/catalog/products", h.List)
	engine.GET("/catalog/products/:id", h.GetByID)
	engine.PUT("/catalog/products/:id", h.Update)
	engine.PUT("/catalog/products/:id/pricing", h.UpdatePricing)
	engine.GET("/catalog/products/:id/price", h.QuotePrice)
	engine.GET("/catalog/products/:id/movements", h.ListMovements)

	th := NewTaxRuleHandler(taxSvc)
	engine.POST("/catalog/tax-rules", th.Create)
	engine.GET("/catalog/tax-rules", th.List)
	return engine
}

func TestProductHandler_Create(t *testing.T) {
	t.Run("creates product", func(t *testing.T) {
		svc := new(MockProductService)
		engine := setupProductRouter(svc, new(MockTaxRuleService))
		id := uuid.New()
		svc.On("Create", mock.Anything, mock.MatchedBy(func(req catalogapp.CreateProductRequest) bool {
			return req.Code == "SKU-1" && req.UnitPrice.Equal(decimal.RequireFromString("12.50"))
		})).Return(&catalogapp.ProductResponse{ID: id, Code: "SKU-1", Status: "active"}, nil)

		w := doJSON(engine, http.MethodPost, "/catalog/products", map[string]any{
			"code": "SKU-1", "name": "Widget", "unit_price": "12.50",
		})

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var got catalogapp.ProductResponse
		resp := decodeResponse(t, w, &got)
		assert.True(t, resp.Success)
		assert.Equal(t, id, got.ID)
		svc.AssertExpectations(t)
	})

	t.Run("negative price rejected before the service", func(t *testing.T) {
		svc := new(MockProductService)
		engine := setupProductRouter(svc, new(MockTaxRuleService))

		w := doJSON(engine, http.MethodPost, "/catalog/products", map[string]any{
			"code": "SKU-1", "name": "Widget", "unit_price": "-1",
		})

		assertErrorCode(t, w, http.StatusBadRequest, shared.CodeValidation)
		resp := decodeResponse(t, w, nil)
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "unit_price", resp.Error.Details[0].Field)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate code", func(t *testing.T) {
		svc := new(MockProductService)
		engine := setupProductRouter(svc, new(MockTaxRuleService))
		svc.On("Create", mock.Anything, mock.Anything).
			Return(nil, shared.NewDomainError(shared.CodeAlreadyExists, "Product code already exists"))

		w := doJSON(engine, http.MethodPost, "/catalog/products", map[string]any{
			"code": "SKU-1", "name": "Widget", "unit_price": "1",
		})

		assertErrorCode(t, w, http.StatusConflict, shared.CodeAlreadyExists)
	})
}

func TestProductHandler_GetByID(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		engine := setupProductRouter(new(MockProductService), new(MockTaxRuleService))
		w := doJSON(engine, http.MethodGet, "/catalog/products/not-a-uuid", nil)
		assertErrorCode(t, w, http.StatusBadRequest, "BAD_REQUEST")
	})

	t.Run("not found", func(t *testing.T) {
		svc := new(MockProductService)
		engine := setupProductRouter(svc, new(MockTaxRuleService))
		id := uuid.New()
		svc.On("GetByID", mock.Anything, id).Return(nil, shared.NewNotFoundError("Product", id))

		w := doJSON(engine, http.MethodGet, "/catalog/products/"+id.String(), nil)

		assertErrorCode(t, w, http.StatusNotFound, shared.CodeNotFound)
	})
}

func TestProductHandler_List(t *testing.T) {
	svc := new(MockProductService)
	engine := setupProductRouter(svc, new(MockTaxRuleService))
	svc.On("List", mock.Anything, catalogapp.ProductListFilter{Page: 2, PageSize: 20, Search: "wid"}).
		Return([]catalogapp.ProductResponse{{Code: "SKU-1"}}, int64(21), nil)

	w := doJSON(engine, http.MethodGet, "/catalog/products?page=2&search=wid", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeResponse(t, w, nil)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(21), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 2, resp.Meta.TotalPages)
}

func TestProductHandler_QuotePrice(t *testing.T) {
	t.Run("parses query", func(t *testing.T) {
		svc := new(MockProductService)
		engine := setupProductRouter(svc, new(MockTaxRuleService))
		id := uuid.New()
		asOf := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		svc.On("QuotePrice", mock.Anything, id, mock.MatchedBy(func(q catalogapp.PriceQuoteQuery) bool {
			return q.Quantity.Equal(decimal.NewFromInt(10)) && q.AsOf != nil && q.AsOf.Equal(asOf) && q.UnitPrice == nil
		})).Return(&catalogapp.PriceQuoteResponse{
			ProductID: id,
			Quantity:  decimal.NewFromInt(10),
			UnitPrice: decimal.RequireFromString("8.00"),
			PriceKind: "TIER",
		}, nil)

		w := doJSON(engine, http.MethodGet, "/catalog/products/"+id.String()+"/price?quantity=10&as_of=2024-03-01T12:00:00Z", nil)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var got catalogapp.PriceQuoteResponse
		decodeResponse(t, w, &got)
		assert.Equal(t, "TIER", got.PriceKind)
		assert.True(t, got.UnitPrice.Equal(decimal.NewFromInt(8)))
		svc.AssertExpectations(t)
	})

	tests := []struct {
		name  string
		query string
	}{
		{"missing quantity", ""},
		{"bad quantity", "?quantity=abc"},
		{"bad as_of", "?quantity=1&as_of=yesterday"},
		{"bad unit price", "?quantity=1&unit_price=x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockProductService)
			engine := setupProductRouter(svc, new(MockTaxRuleService))

			w := doJSON(engine, http.MethodGet, "/catalog/products/"+uuid.NewString()+"/price"+tt.query, nil)

			assertErrorCode(t, w, http.StatusBadRequest, "BAD_REQUEST")
			svc.AssertNotCalled(t, "QuotePrice", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestProductHandler_UpdatePricing(t *testing.T) {
	svc := new(MockProductService)
	engine := setupProductRouter(svc, new(MockTaxRuleService))
	id := uuid.New()
	svc.On("UpdatePricing", mock.Anything, id, mock.MatchedBy(func(req catalogapp.UpdatePricingRequest) bool {
		return len(req.TierPrices) == 2 && req.SpecialOffers == nil
	})).Return(&catalogapp.ProductResponse{ID: id}, nil)

	w := doJSON(engine, http.MethodPut, "/catalog/products/"+id.String()+"/pricing", map[string]any{
		"tier_prices": []map[string]string{
			{"min_quantity": "10", "unit_price": "9"},
			{"min_quantity": "50", "unit_price": "8"},
		},
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	svc.AssertExpectations(t)

	t.Run("zero threshold rejected", func(t *testing.T) {
		w := doJSON(engine, http.MethodPut, "/catalog/products/"+id.String()+"/pricing", map[string]any{
			"tier_prices": []map[string]string{{"min_quantity": "0", "unit_price": "9"}},
		})
		assertErrorCode(t, w, http.StatusBadRequest, shared.CodeValidation)
	})
}

func TestProductHandler_ListMovements(t *testing.T) {
	svc := new(MockProductService)
	engine := setupProductRouter(svc, new(MockTaxRuleService))
	id := uuid.New()
	svc.On("ListMovements", mock.Anything, id, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 1 && f.PageSize == 20
	})).Return([]catalogapp.StockMovementResponse{{MovementType: "SALE"}}, int64(1), nil)

	w := doJSON(engine, http.MethodGet, "/catalog/products/"+id.String()+"/movements", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	svc.AssertExpectations(t)
}

func TestTaxRuleHandler(t *testing.T) {
	taxSvc := new(MockTaxRuleService)
	engine := setupProductRouter(new(MockProductService), taxSvc)
	taxSvc.On("Create", mock.Anything, mock.MatchedBy(func(req catalogapp.CreateTaxRuleRequest) bool {
		return req.Title == "VAT" && req.Rate.Equal(decimal.NewFromInt(15)) && req.Type == "PERCENTAGE"
	})).Return(&catalogapp.TaxRuleResponse{ID: uuid.New(), Title: "VAT"}, nil)
	taxSvc.On("List", mock.Anything).Return([]catalogapp.TaxRuleResponse{{Title: "VAT"}}, nil)

	w := doJSON(engine, http.MethodPost, "/catalog/tax-rules", map[string]any{
		"title": "VAT", "rate": 15, "type": "PERCENTAGE",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(engine, http.MethodGet, "/catalog/tax-rules", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rules []catalogapp.TaxRuleResponse
	decodeResponse(t, w, &rules)
	assert.Len(t, rules, 1)

	w = doJSON(engine, http.MethodPost, "/catalog/tax-rules", map[string]any{
		"title": "VAT", "rate": 15, "type": "COMPOUND",
	})
	assertErrorCode(t, w, http.StatusBadRequest, shared.CodeValidation)
	taxSvc.AssertExpectations(t)
}
