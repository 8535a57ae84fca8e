package trade

import (
	"time"

	"github.com/erp/tradecore/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==================== Order DTOs ====================

// CartLineInput is one requested line of an order
type CartLineInput struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"decimal_gt0"`
	// UnitPrice, when present, overrides every pricing rule
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// PlaceOrderRequest represents a request to place an order
type PlaceOrderRequest struct {
	CustomerRef   string          `json:"customer_ref" binding:"required,max=200"`
	Lines         []CartLineInput `json:"lines" binding:"required,min=1,dive"`
	Discount      decimal.Decimal `json:"discount"`
	PaymentMethod string          `json:"payment_method" binding:"required,max=50"`
	OrderDate     *time.Time      `json:"order_date"`
	Remark        string          `json:"remark" binding:"max=500"`
}

// SetOrderStatusRequest represents a request to confirm or cancel a pending order
type SetOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=CONFIRMED CANCELLED confirmed cancelled"`
}

// OrderListFilter represents filter options for the order list
type OrderListFilter struct {
	Page        int        `form:"page" binding:"omitempty,min=1"`
	PageSize    int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	Status      string     `form:"status"`
	CustomerRef string     `form:"customer_ref"`
	Search      string     `form:"search" binding:"max=100"`
	DateFrom    *time.Time `form:"date_from" time_format:"2006-01-02"`
	DateTo      *time.Time `form:"date_to" time_format:"2006-01-02"`
	OrderDir    string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// OrderLineResponse represents one order line
type OrderLineResponse struct {
	LineNo      int             `json:"line_no"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductCode string          `json:"product_code"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	PriceKind   string          `json:"price_kind"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// InvoiceResponse represents an issued invoice
type InvoiceResponse struct {
	ID            uuid.UUID       `json:"id"`
	OrderID       uuid.UUID       `json:"order_id"`
	InvoiceNumber int64           `json:"invoice_number"`
	InvoiceDate   time.Time       `json:"invoice_date"`
	Amount        decimal.Decimal `json:"amount"`
}

// OrderResponse represents an order with its lines
type OrderResponse struct {
	ID            uuid.UUID           `json:"id"`
	OrderNumber   string              `json:"order_number"`
	CustomerRef   string              `json:"customer_ref"`
	OrderDate     time.Time           `json:"order_date"`
	PaymentMethod string              `json:"payment_method"`
	Status        string              `json:"status"`
	Discount      decimal.Decimal     `json:"discount"`
	TaxTotal      decimal.Decimal     `json:"tax_total"`
	GrandTotal    decimal.Decimal     `json:"grand_total"`
	Remark        string              `json:"remark,omitempty"`
	Lines         []OrderLineResponse `json:"lines"`
	Invoice       *InvoiceResponse    `json:"invoice,omitempty"`
	ConfirmedAt   *time.Time          `json:"confirmed_at,omitempty"`
	CancelledAt   *time.Time          `json:"cancelled_at,omitempty"`
	Version       int                 `json:"version"`
	CreatedAt     time.Time           `json:"created_at"`
}

// OrderListItemResponse represents an order in a list, without lines
type OrderListItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	OrderNumber   string          `json:"order_number"`
	CustomerRef   string          `json:"customer_ref"`
	OrderDate     time.Time       `json:"order_date"`
	PaymentMethod string          `json:"payment_method"`
	Status        string          `json:"status"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	LineCount     int             `json:"line_count"`
}

// ToOrderResponse converts a domain order to a response DTO
func ToOrderResponse(o *trade.OrderTransaction, inv *trade.Invoice) OrderResponse {
	lines := make([]OrderLineResponse, len(o.Lines))
	for i, l := range o.Lines {
		lines[i] = OrderLineResponse{
			LineNo:      l.LineNo,
			ProductID:   l.Product.ProductID,
			ProductCode: l.Product.ProductCode,
			ProductName: l.Product.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			PriceKind:   l.PriceKind.String(),
			TaxAmount:   l.TaxAmount,
			Subtotal:    l.Subtotal,
		}
	}
	resp := OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		CustomerRef:   o.CustomerRef,
		OrderDate:     o.OrderDate,
		PaymentMethod: o.PaymentMethod,
		Status:        o.Status.String(),
		Discount:      o.Discount,
		TaxTotal:      o.TaxTotal(),
		GrandTotal:    o.GrandTotal,
		Remark:        o.Remark,
		Lines:         lines,
		ConfirmedAt:   o.ConfirmedAt,
		CancelledAt:   o.CancelledAt,
		Version:       o.Version,
		CreatedAt:     o.CreatedAt,
	}
	if inv != nil {
		r := ToInvoiceResponse(inv)
		resp.Invoice = &r
	}
	return resp
}

// ToInvoiceResponse converts a domain invoice to a response DTO
func ToInvoiceResponse(inv *trade.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:            inv.ID,
		OrderID:       inv.OrderID,
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceDate:   inv.InvoiceDate,
		Amount:        inv.Amount,
	}
}

// ToOrderListItemResponses converts domain orders to list item DTOs
func ToOrderListItemResponses(orders []trade.OrderTransaction) []OrderListItemResponse {
	items := make([]OrderListItemResponse, len(orders))
	for i := range orders {
		o := &orders[i]
		items[i] = OrderListItemResponse{
			ID:            o.ID,
			OrderNumber:   o.OrderNumber,
			CustomerRef:   o.CustomerRef,
			OrderDate:     o.OrderDate,
			PaymentMethod: o.PaymentMethod,
			Status:        o.Status.String(),
			GrandTotal:    o.GrandTotal,
			LineCount:     len(o.Lines),
		}
	}
	return items
}

// ==================== Purchase DTOs ====================

// PurchaseLineInput is one line of a supplier purchase
type PurchaseLineInput struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal  `json:"quantity" binding:"decimal_gt0"`
	UnitPrice *decimal.Decimal `json:"unit_price" binding:"required"`
}

// RecordPurchaseRequest represents a request to record a purchase
type RecordPurchaseRequest struct {
	SupplierRef   string              `json:"supplier_ref" binding:"required,max=200"`
	Lines         []PurchaseLineInput `json:"lines" binding:"required,min=1,dive"`
	Reference     string              `json:"reference" binding:"max=100"`
	PaymentMethod string              `json:"payment_method" binding:"max=50"`
	PurchaseDate  *time.Time          `json:"purchase_date"`
}

// PurchaseListFilter represents filter options for the purchase list
type PurchaseListFilter struct {
	Page        int        `form:"page" binding:"omitempty,min=1"`
	PageSize    int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	SupplierRef string     `form:"supplier_ref"`
	Search      string     `form:"search" binding:"max=100"`
	DateFrom    *time.Time `form:"date_from" time_format:"2006-01-02"`
	DateTo      *time.Time `form:"date_to" time_format:"2006-01-02"`
}

// PurchaseLineResponse represents one purchase line
type PurchaseLineResponse struct {
	LineNo      int             `json:"line_no"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductCode string          `json:"product_code"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// PurchaseResponse represents a recorded purchase
type PurchaseResponse struct {
	ID            uuid.UUID              `json:"id"`
	SupplierRef   string                 `json:"supplier_ref"`
	PurchaseDate  time.Time              `json:"purchase_date"`
	Reference     string                 `json:"reference,omitempty"`
	PaymentMethod string                 `json:"payment_method,omitempty"`
	GrandTotal    decimal.Decimal        `json:"grand_total"`
	Lines         []PurchaseLineResponse `json:"lines"`
	CreatedAt     time.Time              `json:"created_at"`
}

// ToPurchaseResponse converts a domain purchase to a response DTO
func ToPurchaseResponse(p *trade.PurchaseTransaction) PurchaseResponse {
	lines := make([]PurchaseLineResponse, len(p.Lines))
	for i, l := range p.Lines {
		lines[i] = PurchaseLineResponse{
			LineNo:      l.LineNo,
			ProductID:   l.Product.ProductID,
			ProductCode: l.Product.ProductCode,
			ProductName: l.Product.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Subtotal:    l.Subtotal,
		}
	}
	return PurchaseResponse{
		ID:            p.ID,
		SupplierRef:   p.SupplierRef,
		PurchaseDate:  p.PurchaseDate,
		Reference:     p.Reference,
		PaymentMethod: p.PaymentMethod,
		GrandTotal:    p.GrandTotal,
		Lines:         lines,
		CreatedAt:     p.CreatedAt,
	}
}

// ToPurchaseResponses converts domain purchases to response DTOs
func ToPurchaseResponses(purchases []trade.PurchaseTransaction) []PurchaseResponse {
	out := make([]PurchaseResponse, len(purchases))
	for i := range purchases {
		out[i] = ToPurchaseResponse(&purchases[i])
	}
	return out
}
