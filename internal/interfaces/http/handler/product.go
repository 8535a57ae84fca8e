package handler

import (
	"time"

	catalogapp "github.com/erp/tradecore/internal/application/catalog"
	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductHandler handles product-related API endpoints
type ProductHandler struct {
	BaseHandler
	productService ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create godoc
// @ID           createCatalogProduct
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateProductRequest true "Product creation request"
// @Success      201 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /catalog/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// GetByID godoc
// @ID           getCatalogProduct
// @Summary      Get a product with its pricing rules and stock
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /catalog/products/{id} [get]
func (h *ProductHandler) GetByID(c *gin.Context) {
	productID, ok := h.pathUUID(c, "id", "product")
	if !ok {
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// List godoc
// @ID           listCatalogProducts
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        search query string false "Code or name contains"
// @Param        status query string false "Status" Enums(active, inactive)
// @Success      200 {object} ListResponse[catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /catalog/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var filter catalogapp.ProductListFilter
	if !bindQuery(c, &filter) {
		return
	}
	filter.Page, filter.PageSize = pageOf(filter.Page, filter.PageSize)

	products, total, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, products, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updateCatalogProduct
// @Summary      Update product name, unit, packet size, tax rule or status
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body catalogapp.UpdateProductRequest true "Product update request"
// @Success      200 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /catalog/products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	productID, ok := h.pathUUID(c, "id", "product")
	if !ok {
		return
	}
	var req catalogapp.UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.Update(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// UpdatePricing godoc
// @ID           updateCatalogProductPricing
// @Summary      Replace the base price, tier prices and special offers of a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body catalogapp.UpdatePricingRequest true "Pricing rules"
// @Success      200 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /catalog/products/{id}/pricing [put]
func (h *ProductHandler) UpdatePricing(c *gin.Context) {
	productID, ok := h.pathUUID(c, "id", "product")
	if !ok {
		return
	}
	var req catalogapp.UpdatePricingRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.UpdatePricing(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// QuotePrice godoc
// @ID           quoteCatalogProductPrice
// @Summary      Resolve the unit price, price kind and tax for a quantity
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        quantity query string true "Quantity, e.g. 2.5"
// @Param        as_of query string false "Pricing date (RFC 3339), defaults to now"
// @Param        unit_price query string false "Manual price override"
// @Success      200 {object} APIResponse[catalogapp.PriceQuoteResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /catalog/products/{id}/price [get]
func (h *ProductHandler) QuotePrice(c *gin.Context) {
	productID, ok := h.pathUUID(c, "id", "product")
	if !ok {
		return
	}

	var q catalogapp.PriceQuoteQuery
	quantity, err := decimal.NewFromString(c.Query("quantity"))
	if err != nil {
		h.BadRequest(c, "quantity must be a decimal number")
		return
	}
	q.Quantity = quantity

	if raw := c.Query("as_of"); raw != "" {
		asOf, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.BadRequest(c, "as_of must be an RFC 3339 timestamp")
			return
		}
		q.AsOf = &asOf
	}
	if raw := c.Query("unit_price"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			h.BadRequest(c, "unit_price must be a decimal number")
			return
		}
		q.UnitPrice = &price
	}

	quote, err := h.productService.QuotePrice(c.Request.Context(), productID, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, quote)
}

// ListMovements godoc
// @ID           listCatalogProductMovements
// @Summary      List the stock journal of a product
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} ListResponse[catalogapp.StockMovementResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /catalog/products/{id}/movements [get]
func (h *ProductHandler) ListMovements(c *gin.Context) {
	productID, ok := h.pathUUID(c, "id", "product")
	if !ok {
		return
	}
	var page struct {
		Page     int `form:"page" binding:"omitempty,min=1"`
		PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
	}
	if !bindQuery(c, &page) {
		return
	}
	filter := shared.DefaultFilter()
	filter.Page, filter.PageSize = pageOf(page.Page, page.PageSize)

	movements, total, err := h.productService.ListMovements(c.Request.Context(), productID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, movements, total, filter.Page, filter.PageSize)
}
