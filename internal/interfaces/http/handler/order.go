package handler

import (
	tradeapp "github.com/erp/tradecore/internal/application/trade"
	"github.com/gin-gonic/gin"
)

// OrderHandler exposes the order transaction coordinator
type OrderHandler struct {
	BaseHandler
	orderService OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// PlaceOrder godoc
// @ID           placeTradeOrder
// @Summary      Place an order
// @Description  Prices every line, deducts stock and stores the order in one transaction.
// @Description  Orders with any payment method other than "pending" are confirmed and invoiced immediately.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Makes the request safe to resend"
// @Param        request body tradeapp.PlaceOrderRequest true "Cart"
// @Success      201 {object} APIResponse[tradeapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Router       /trade/orders [post]
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req tradeapp.PlaceOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.PlaceOrder(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// SetStatus godoc
// @ID           setTradeOrderStatus
// @Summary      Confirm or cancel a pending order
// @Description  Confirming issues the invoice. Cancelling returns the stock.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body tradeapp.SetOrderStatusRequest true "Target status"
// @Success      200 {object} APIResponse[tradeapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /trade/orders/{id}/status [put]
func (h *OrderHandler) SetStatus(c *gin.Context) {
	orderID, ok := h.pathUUID(c, "id", "order")
	if !ok {
		return
	}
	var req tradeapp.SetOrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.SetStatus(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// GetOrder godoc
// @ID           getTradeOrder
// @Summary      Get an order with its lines and invoice
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[tradeapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /trade/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, ok := h.pathUUID(c, "id", "order")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// GetInvoice godoc
// @ID           getTradeOrderInvoice
// @Summary      Get the invoice of a confirmed order
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[tradeapp.InvoiceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /trade/orders/{id}/invoice [get]
func (h *OrderHandler) GetInvoice(c *gin.Context) {
	orderID, ok := h.pathUUID(c, "id", "order")
	if !ok {
		return
	}

	invoice, err := h.orderService.GetInvoice(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// ListOrders godoc
// @ID           listTradeOrders
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        status query string false "Status" Enums(PENDING, CONFIRMED, CANCELLED)
// @Param        customer_ref query string false "Customer reference"
// @Param        search query string false "Matches order number or customer reference"
// @Param        date_from query string false "From date (YYYY-MM-DD)"
// @Param        date_to query string false "To date (YYYY-MM-DD)"
// @Param        order_dir query string false "Sort by order date" Enums(asc, desc)
// @Success      200 {object} ListResponse[tradeapp.OrderListItemResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /trade/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var filter tradeapp.OrderListFilter
	if !bindQuery(c, &filter) {
		return
	}
	filter.Page, filter.PageSize = pageOf(filter.Page, filter.PageSize)

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}
