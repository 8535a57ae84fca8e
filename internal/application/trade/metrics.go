package trade

import "context"

// BusinessMetrics receives counters for committed trade operations
type BusinessMetrics interface {
	RecordOrderPlaced(ctx context.Context, status string)
	RecordPurchaseRecorded(ctx context.Context)
	RecordInsufficientStock(ctx context.Context)
}

type noopMetrics struct{}

func (noopMetrics) RecordOrderPlaced(context.Context, string) {}
func (noopMetrics) RecordPurchaseRecorded(context.Context)    {}
func (noopMetrics) RecordInsufficientStock(context.Context)   {}
