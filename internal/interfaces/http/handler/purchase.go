package handler

import (
	tradeapp "github.com/erp/tradecore/internal/application/trade"
	"github.com/gin-gonic/gin"
)

// PurchaseHandler exposes the purchase transaction coordinator
type PurchaseHandler struct {
	BaseHandler
	purchaseService PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(purchaseService PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// RecordPurchase godoc
// @ID           recordTradePurchase
// @Summary      Record a supplier purchase
// @Description  Adds stock for every line and updates each product's last buying price.
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Makes the request safe to resend"
// @Param        request body tradeapp.RecordPurchaseRequest true "Purchase"
// @Success      201 {object} APIResponse[tradeapp.PurchaseResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /trade/purchases [post]
func (h *PurchaseHandler) RecordPurchase(c *gin.Context) {
	var req tradeapp.RecordPurchaseRequest
	if !bindJSON(c, &req) {
		return
	}

	purchase, err := h.purchaseService.RecordPurchase(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, purchase)
}

// GetPurchase godoc
// @ID           getTradePurchase
// @Summary      Get a purchase
// @Tags         purchases
// @Produce      json
// @Param        id path string true "Purchase ID" format(uuid)
// @Success      200 {object} APIResponse[tradeapp.PurchaseResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /trade/purchases/{id} [get]
func (h *PurchaseHandler) GetPurchase(c *gin.Context) {
	id, ok := h.pathUUID(c, "id", "purchase")
	if !ok {
		return
	}

	purchase, err := h.purchaseService.GetPurchase(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchase)
}

// ListPurchases godoc
// @ID           listTradePurchases
// @Summary      List purchases
// @Tags         purchases
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        supplier_ref query string false "Supplier reference"
// @Param        search query string false "Matches supplier reference or document reference"
// @Param        date_from query string false "From date (YYYY-MM-DD)"
// @Param        date_to query string false "To date (YYYY-MM-DD)"
// @Success      200 {object} ListResponse[tradeapp.PurchaseResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /trade/purchases [get]
func (h *PurchaseHandler) ListPurchases(c *gin.Context) {
	var filter tradeapp.PurchaseListFilter
	if !bindQuery(c, &filter) {
		return
	}
	filter.Page, filter.PageSize = pageOf(filter.Page, filter.PageSize)

	purchases, total, err := h.purchaseService.ListPurchases(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, purchases, total, filter.Page, filter.PageSize)
}
