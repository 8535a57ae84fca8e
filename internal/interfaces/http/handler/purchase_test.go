package handler

import (
	"net/http"
	"testing"

	tradeapp "github.com/erp/tradecore/internal/application/trade"
	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupPurchaseRouter(svc *MockPurchaseService) *gin.Engine {
	engine := newTestEngine()
	h := NewPurchaseHandler(svc)
	engine.POST("/trade/purchases", h.RecordPurchase)
	engine.GET("/trade/purchases", h.ListPurchases)
	engine.GET("/trade/purchases/:id", h.GetPurchase)
	return engine
}

func TestPurchaseHandler_RecordPurchase(t *testing.T) {
	productID := uuid.New()

	t.Run("created", func(t *testing.T) {
		svc := new(MockPurchaseService)
		engine := setupPurchaseRouter(svc)
		svc.On("RecordPurchase", mock.Anything, mock.MatchedBy(func(req tradeapp.RecordPurchaseRequest) bool {
			return req.SupplierRef == "acme" && len(req.Lines) == 1 &&
				req.Lines[0].UnitPrice != nil && req.Lines[0].UnitPrice.Equal(decimal.RequireFromString("4.20"))
		})).Return(&tradeapp.PurchaseResponse{ID: uuid.New(), GrandTotal: decimal.RequireFromString("42.00")}, nil)

		w := doJSON(engine, http.MethodPost, "/trade/purchases", map[string]any{
			"supplier_ref": "acme",
			"lines": []map[string]any{
				{"product_id": productID.String(), "quantity": "10", "unit_price": "4.20"},
			},
		})

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var got tradeapp.PurchaseResponse
		decodeResponse(t, w, &got)
		assert.True(t, got.GrandTotal.Equal(decimal.NewFromInt(42)))
		svc.AssertExpectations(t)
	})

	t.Run("unit price required", func(t *testing.T) {
		svc := new(MockPurchaseService)
		engine := setupPurchaseRouter(svc)

		w := doJSON(engine, http.MethodPost, "/trade/purchases", map[string]any{
			"supplier_ref": "acme",
			"lines":        []map[string]any{{"product_id": productID.String(), "quantity": "10"}},
		})

		assertErrorCode(t, w, http.StatusBadRequest, shared.CodeValidation)
		svc.AssertNotCalled(t, "RecordPurchase", mock.Anything, mock.Anything)
	})

	t.Run("unknown product", func(t *testing.T) {
		svc := new(MockPurchaseService)
		engine := setupPurchaseRouter(svc)
		svc.On("RecordPurchase", mock.Anything, mock.Anything).Return(nil, shared.NewNotFoundError("Product", productID))

		w := doJSON(engine, http.MethodPost, "/trade/purchases", map[string]any{
			"supplier_ref": "acme",
			"lines": []map[string]any{
				{"product_id": productID.String(), "quantity": "1", "unit_price": "1"},
			},
		})

		assertErrorCode(t, w, http.StatusNotFound, shared.CodeNotFound)
	})
}

func TestPurchaseHandler_Reads(t *testing.T) {
	svc := new(MockPurchaseService)
	engine := setupPurchaseRouter(svc)
	id := uuid.New()
	svc.On("GetPurchase", mock.Anything, id).Return(&tradeapp.PurchaseResponse{ID: id, SupplierRef: "acme"}, nil)
	svc.On("ListPurchases", mock.Anything, mock.MatchedBy(func(f tradeapp.PurchaseListFilter) bool {
		return f.SupplierRef == "acme" && f.Page == 1 && f.PageSize == 20
	})).Return([]tradeapp.PurchaseResponse{{ID: id}}, int64(1), nil)

	w := doJSON(engine, http.MethodGet, "/trade/purchases/"+id.String(), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(engine, http.MethodGet, "/trade/purchases?supplier_ref=acme", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var list []tradeapp.PurchaseResponse
	decodeResponse(t, w, &list)
	assert.Len(t, list, 1)

	svc.AssertExpectations(t)
}
