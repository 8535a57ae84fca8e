package models

import (
	"time"

	"github.com/erp/tradecore/internal/domain/shared/strategy"
	"github.com/erp/tradecore/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the OrderTransaction aggregate root.
type OrderModel struct {
	AggregateModel
	OrderNumber   string            `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerRef   string            `gorm:"type:varchar(200);not null;index"`
	OrderDate     time.Time         `gorm:"not null;index"`
	PaymentMethod string            `gorm:"type:varchar(50);not null"`
	Discount      decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0"`
	GrandTotal    decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0"`
	Status        trade.OrderStatus `gorm:"type:varchar(20);not null;index"`
	Remark        string            `gorm:"type:text"`
	ConfirmedAt   *time.Time
	CancelledAt   *time.Time
	Lines         []OrderLineModel `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain OrderTransaction.
func (m *OrderModel) ToDomain() *trade.OrderTransaction {
	order := &trade.OrderTransaction{
		BaseAggregateRoot: m.AggregateModel.root(),
		OrderNumber:       m.OrderNumber,
		CustomerRef:       m.CustomerRef,
		OrderDate:         m.OrderDate,
		PaymentMethod:     m.PaymentMethod,
		Discount:          m.Discount,
		GrandTotal:        m.GrandTotal,
		Status:            m.Status,
		Remark:            m.Remark,
		ConfirmedAt:       m.ConfirmedAt,
		CancelledAt:       m.CancelledAt,
		Lines:             make([]trade.OrderLine, len(m.Lines)),
	}
	for i := range m.Lines {
		order.Lines[i] = m.Lines[i].ToDomain()
	}
	return order
}

// FromDomain populates the persistence model from a domain OrderTransaction.
func (m *OrderModel) FromDomain(o *trade.OrderTransaction) {
	m.AggregateModel = aggregateModelOf(o.BaseAggregateRoot)
	m.OrderNumber = o.OrderNumber
	m.CustomerRef = o.CustomerRef
	m.OrderDate = o.OrderDate
	m.PaymentMethod = o.PaymentMethod
	m.Discount = o.Discount
	m.GrandTotal = o.GrandTotal
	m.Status = o.Status
	m.Remark = o.Remark
	m.ConfirmedAt = o.ConfirmedAt
	m.CancelledAt = o.CancelledAt
	m.Lines = make([]OrderLineModel, len(o.Lines))
	for i := range o.Lines {
		m.Lines[i] = OrderLineModelFromDomain(&o.Lines[i], o.CreatedAt)
	}
}

// OrderModelFromDomain creates a new persistence model from a domain OrderTransaction.
func OrderModelFromDomain(o *trade.OrderTransaction) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderLineModel is the persistence model for an order line with its product snapshot.
type OrderLineModel struct {
	ID          uuid.UUID          `gorm:"type:uuid;primary_key"`
	OrderID     uuid.UUID          `gorm:"type:uuid;not null;index"`
	LineNo      int                `gorm:"not null"`
	ProductID   uuid.UUID          `gorm:"type:uuid;not null;index"`
	ProductCode string             `gorm:"type:varchar(50);not null"`
	ProductName string             `gorm:"type:varchar(200);not null"`
	Quantity    decimal.Decimal    `gorm:"type:decimal(18,1);not null"`
	UnitPrice   decimal.Decimal    `gorm:"type:decimal(18,2);not null"`
	PriceKind   strategy.PriceKind `gorm:"type:varchar(10);not null"`
	TaxAmount   decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	Subtotal    decimal.Decimal    `gorm:"type:decimal(18,2);not null"`
	CreatedAt   time.Time          `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderLineModel) TableName() string {
	return "order_lines"
}

// ToDomain converts the persistence model to a domain OrderLine.
func (m *OrderLineModel) ToDomain() trade.OrderLine {
	return trade.OrderLine{
		ID:      m.ID,
		OrderID: m.OrderID,
		LineNo:  m.LineNo,
		Product: trade.ProductSnapshot{
			ProductID:   m.ProductID,
			ProductCode: m.ProductCode,
			ProductName: m.ProductName,
		},
		Quantity:  m.Quantity,
		UnitPrice: m.UnitPrice,
		PriceKind: m.PriceKind,
		TaxAmount: m.TaxAmount,
		Subtotal:  m.Subtotal,
	}
}

// OrderLineModelFromDomain creates a persistence model from a domain OrderLine.
func OrderLineModelFromDomain(l *trade.OrderLine, createdAt time.Time) OrderLineModel {
	return OrderLineModel{
		ID:          l.ID,
		OrderID:     l.OrderID,
		LineNo:      l.LineNo,
		ProductID:   l.Product.ProductID,
		ProductCode: l.Product.ProductCode,
		ProductName: l.Product.ProductName,
		Quantity:    l.Quantity,
		UnitPrice:   l.UnitPrice,
		PriceKind:   l.PriceKind,
		TaxAmount:   l.TaxAmount,
		Subtotal:    l.Subtotal,
		CreatedAt:   createdAt,
	}
}

// InvoiceModel is the persistence model for an invoice.
type InvoiceModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	InvoiceNumber int64           `gorm:"not null;uniqueIndex"`
	InvoiceDate   time.Time       `gorm:"not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice.
func (m *InvoiceModel) ToDomain() *trade.Invoice {
	return &trade.Invoice{
		ID:            m.ID,
		OrderID:       m.OrderID,
		InvoiceNumber: m.InvoiceNumber,
		InvoiceDate:   m.InvoiceDate,
		Amount:        m.Amount,
		CreatedAt:     m.CreatedAt,
	}
}

// InvoiceModelFromDomain creates a persistence model from a domain Invoice.
func InvoiceModelFromDomain(inv *trade.Invoice) *InvoiceModel {
	return &InvoiceModel{
		ID:            inv.ID,
		OrderID:       inv.OrderID,
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceDate:   inv.InvoiceDate,
		Amount:        inv.Amount,
		CreatedAt:     inv.CreatedAt,
	}
}

// InvoiceSequenceModel is the single-row counter locked while numbering invoices.
type InvoiceSequenceModel struct {
	ID         int   `gorm:"primaryKey"`
	LastNumber int64 `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (InvoiceSequenceModel) TableName() string {
	return "invoice_sequences"
}

// PurchaseModel is the persistence model for the PurchaseTransaction aggregate root.
type PurchaseModel struct {
	AggregateModel
	SupplierRef   string              `gorm:"type:varchar(200);not null;index"`
	PurchaseDate  time.Time           `gorm:"not null;index"`
	Reference     string              `gorm:"type:varchar(100)"`
	PaymentMethod string              `gorm:"type:varchar(50)"`
	GrandTotal    decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	Lines         []PurchaseLineModel `gorm:"foreignKey:PurchaseID;references:ID"`
}

// TableName returns the table name for GORM
func (PurchaseModel) TableName() string {
	return "purchases"
}

// ToDomain converts the persistence model to a domain PurchaseTransaction.
func (m *PurchaseModel) ToDomain() *trade.PurchaseTransaction {
	p := &trade.PurchaseTransaction{
		BaseAggregateRoot: m.AggregateModel.root(),
		SupplierRef:       m.SupplierRef,
		PurchaseDate:      m.PurchaseDate,
		Reference:         m.Reference,
		PaymentMethod:     m.PaymentMethod,
		GrandTotal:        m.GrandTotal,
		Lines:             make([]trade.PurchaseLine, len(m.Lines)),
	}
	for i, l := range m.Lines {
		p.Lines[i] = trade.PurchaseLine{
			ID:         l.ID,
			PurchaseID: l.PurchaseID,
			LineNo:     l.LineNo,
			Product: trade.ProductSnapshot{
				ProductID:   l.ProductID,
				ProductCode: l.ProductCode,
				ProductName: l.ProductName,
			},
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal,
		}
	}
	return p
}

// PurchaseModelFromDomain creates a persistence model from a domain PurchaseTransaction.
func PurchaseModelFromDomain(p *trade.PurchaseTransaction) *PurchaseModel {
	m := &PurchaseModel{
		SupplierRef:   p.SupplierRef,
		PurchaseDate:  p.PurchaseDate,
		Reference:     p.Reference,
		PaymentMethod: p.PaymentMethod,
		GrandTotal:    p.GrandTotal,
		Lines:         make([]PurchaseLineModel, len(p.Lines)),
	}
	m.AggregateModel = aggregateModelOf(p.BaseAggregateRoot)
	for i, l := range p.Lines {
		m.Lines[i] = PurchaseLineModel{
			ID:          l.ID,
			PurchaseID:  p.ID,
			LineNo:      l.LineNo,
			ProductID:   l.Product.ProductID,
			ProductCode: l.Product.ProductCode,
			ProductName: l.Product.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Subtotal:    l.Subtotal,
			CreatedAt:   p.CreatedAt,
		}
	}
	return m
}

// PurchaseLineModel is the persistence model for a purchase line with its product snapshot.
type PurchaseLineModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	PurchaseID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	LineNo      int             `gorm:"not null"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductCode string          `gorm:"type:varchar(50);not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,1);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseLineModel) TableName() string {
	return "purchase_lines"
}
