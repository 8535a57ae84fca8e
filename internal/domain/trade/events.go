package trade

import (
	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypeOrder    = "OrderTransaction"
	AggregateTypePurchase = "PurchaseTransaction"
)

// Event type constants
const (
	EventTypeOrderPlaced      = "OrderPlaced"
	EventTypeOrderConfirmed   = "OrderConfirmed"
	EventTypeOrderCancelled   = "OrderCancelled"
	EventTypeInvoiceIssued    = "InvoiceIssued"
	EventTypePurchaseRecorded = "PurchaseRecorded"
)

// OrderLineInfo represents line information carried on events
type OrderLineInfo struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductCode string          `json:"product_code"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

func orderLineInfos(o *OrderTransaction) []OrderLineInfo {
	infos := make([]OrderLineInfo, len(o.Lines))
	for i, line := range o.Lines {
		infos[i] = OrderLineInfo{
			ProductID:   line.Product.ProductID,
			ProductCode: line.Product.ProductCode,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
		}
	}
	return infos
}

// OrderPlacedEvent is raised when an order is committed
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	CustomerRef string          `json:"customer_ref"`
	Status      OrderStatus     `json:"status"`
	GrandTotal  decimal.Decimal `json:"grand_total"`
	Lines       []OrderLineInfo `json:"lines"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(o *OrderTransaction) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerRef:     o.CustomerRef,
		Status:          o.Status,
		GrandTotal:      o.GrandTotal,
		Lines:           orderLineInfos(o),
	}
}

// OrderConfirmedEvent is raised when a pending order is settled
type OrderConfirmedEvent struct {
	shared.BaseDomainEvent
	OrderID       uuid.UUID       `json:"order_id"`
	OrderNumber   string          `json:"order_number"`
	PaymentMethod string          `json:"payment_method"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
}

// NewOrderConfirmedEvent creates a new OrderConfirmedEvent
func NewOrderConfirmedEvent(o *OrderTransaction) *OrderConfirmedEvent {
	return &OrderConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderConfirmed, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		PaymentMethod:   o.PaymentMethod,
		GrandTotal:      o.GrandTotal,
	}
}

// OrderCancelledEvent is raised when a pending order is cancelled and restocked
type OrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	Lines       []OrderLineInfo `json:"lines"`
}

// NewOrderCancelledEvent creates a new OrderCancelledEvent
func NewOrderCancelledEvent(o *OrderTransaction) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCancelled, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		Lines:           orderLineInfos(o),
	}
}

// InvoiceIssuedEvent is raised when an invoice number is allocated
type InvoiceIssuedEvent struct {
	shared.BaseDomainEvent
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	OrderID       uuid.UUID       `json:"order_id"`
	InvoiceNumber int64           `json:"invoice_number"`
	Amount        decimal.Decimal `json:"amount"`
}

// NewInvoiceIssuedEvent creates a new InvoiceIssuedEvent
func NewInvoiceIssuedEvent(inv *Invoice) *InvoiceIssuedEvent {
	return &InvoiceIssuedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceIssued, AggregateTypeOrder, inv.OrderID),
		InvoiceID:       inv.ID,
		OrderID:         inv.OrderID,
		InvoiceNumber:   inv.InvoiceNumber,
		Amount:          inv.Amount,
	}
}

// PurchaseRecordedEvent is raised when a purchase is committed
type PurchaseRecordedEvent struct {
	shared.BaseDomainEvent
	PurchaseID  uuid.UUID       `json:"purchase_id"`
	SupplierRef string          `json:"supplier_ref"`
	Reference   string          `json:"reference"`
	GrandTotal  decimal.Decimal `json:"grand_total"`
	LineCount   int             `json:"line_count"`
}

// NewPurchaseRecordedEvent creates a new PurchaseRecordedEvent
func NewPurchaseRecordedEvent(p *PurchaseTransaction) *PurchaseRecordedEvent {
	return &PurchaseRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseRecorded, AggregateTypePurchase, p.ID),
		PurchaseID:      p.ID,
		SupplierRef:     p.SupplierRef,
		Reference:       p.Reference,
		GrandTotal:      p.GrandTotal,
		LineCount:       len(p.Lines),
	}
}
