package trade

import (
	"context"
	"time"

	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderFilter narrows order listings
type OrderFilter struct {
	shared.Filter
	Status      OrderStatus
	CustomerRef string
	DateFrom    *time.Time
	DateTo      *time.Time
}

// PurchaseFilter narrows purchase listings
type PurchaseFilter struct {
	shared.Filter
	SupplierRef string
	DateFrom    *time.Time
	DateTo      *time.Time
}

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order with its lines
	FindByID(ctx context.Context, id uuid.UUID) (*OrderTransaction, error)

	// FindByIDForUpdate finds an order and locks its header row
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*OrderTransaction, error)

	// FindAll lists orders matching the filter and returns the total count
	FindAll(ctx context.Context, filter OrderFilter) ([]OrderTransaction, int64, error)

	// Create inserts the header and all lines
	Create(ctx context.Context, order *OrderTransaction) error

	// UpdateStatus persists status, payment method and timestamps.
	// It fails with CONCURRENCY_CONFLICT when the stored version moved.
	UpdateStatus(ctx context.Context, order *OrderTransaction) error
}

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	// NextInvoiceNumber returns max(invoice_number)+1 while holding the
	// invoice sequence lock for the rest of the transaction
	NextInvoiceNumber(ctx context.Context) (int64, error)

	// Create inserts an invoice
	Create(ctx context.Context, invoice *Invoice) error

	// FindByOrderID finds the invoice issued for an order
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*Invoice, error)
}

// PurchaseRepository defines the interface for purchase persistence
type PurchaseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseTransaction, error)
	FindAll(ctx context.Context, filter PurchaseFilter) ([]PurchaseTransaction, int64, error)
	Create(ctx context.Context, purchase *PurchaseTransaction) error
}
