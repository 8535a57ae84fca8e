package trade

import (
	"time"

	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice is issued once for an order that leaves PENDING as CONFIRMED,
// or immediately for an order placed with a settled payment method.
type Invoice struct {
	ID            uuid.UUID
	OrderID       uuid.UUID
	InvoiceNumber int64
	InvoiceDate   time.Time
	Amount        decimal.Decimal
	CreatedAt     time.Time
}

// NewInvoice creates an invoice for a confirmed order
func NewInvoice(order *OrderTransaction, number int64) (*Invoice, error) {
	if order == nil {
		return nil, shared.NewValidationError("Order is required")
	}
	if !order.RequiresInvoice() {
		return nil, shared.NewInvalidStateTransitionError("order", string(order.Status), "INVOICED")
	}
	if number <= 0 {
		return nil, shared.NewValidationError("Invoice number must be positive")
	}
	return &Invoice{
		ID:            uuid.New(),
		OrderID:       order.ID,
		InvoiceNumber: number,
		InvoiceDate:   order.OrderDate,
		Amount:        order.GrandTotal,
		CreatedAt:     time.Now(),
	}, nil
}
