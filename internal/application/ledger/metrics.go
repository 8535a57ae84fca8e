package ledger

import "context"

// BusinessMetrics receives counters for committed ledger writes
type BusinessMetrics interface {
	RecordLedgerEntry(ctx context.Context, entryType string)
}

type noopMetrics struct{}

func (noopMetrics) RecordLedgerEntry(context.Context, string) {}
