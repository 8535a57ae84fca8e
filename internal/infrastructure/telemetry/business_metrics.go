package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// BusinessMetrics counts committed trade and ledger operations.
// It satisfies the metrics interfaces of both the trade and ledger services.
type BusinessMetrics struct {
	ordersPlaced      *Counter
	purchasesRecorded *Counter
	ledgerEntries     *Counter
	insufficientStock *Counter
}

// NewBusinessMetrics registers the business counters on meter
func NewBusinessMetrics(meter metric.Meter) (*BusinessMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	var (
		bm  BusinessMetrics
		err error
	)
	if bm.ordersPlaced, err = NewCounter(meter, "orders_placed_total", "Orders committed", "{order}"); err != nil {
		return nil, err
	}
	if bm.purchasesRecorded, err = NewCounter(meter, "purchases_recorded_total", "Purchases committed", "{purchase}"); err != nil {
		return nil, err
	}
	if bm.ledgerEntries, err = NewCounter(meter, "ledger_entries_total", "Ledger entries recorded", "{entry}"); err != nil {
		return nil, err
	}
	if bm.insufficientStock, err = NewCounter(meter, "insufficient_stock_total", "Orders rejected for insufficient stock", "{order}"); err != nil {
		return nil, err
	}
	return &bm, nil
}

// RecordOrderPlaced counts a committed order by its initial status
func (m *BusinessMetrics) RecordOrderPlaced(ctx context.Context, status string) {
	m.ordersPlaced.Inc(ctx, attribute.String("status", status))
}

// RecordPurchaseRecorded counts a committed purchase
func (m *BusinessMetrics) RecordPurchaseRecorded(ctx context.Context) {
	m.purchasesRecorded.Inc(ctx)
}

// RecordInsufficientStock counts an order rejected for lack of stock
func (m *BusinessMetrics) RecordInsufficientStock(ctx context.Context) {
	m.insufficientStock.Inc(ctx)
}

// RecordLedgerEntry counts a recorded ledger entry by type
func (m *BusinessMetrics) RecordLedgerEntry(ctx context.Context, entryType string) {
	m.ledgerEntries.Inc(ctx, attribute.String("type", entryType))
}
