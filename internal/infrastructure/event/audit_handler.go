package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/erp/tradecore/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// AuditLogHandler writes every domain event to the log as a structured
// audit record with its JSON payload
type AuditLogHandler struct {
	logger *zap.Logger
}

// NewAuditLogHandler creates the handler
func NewAuditLogHandler(logger *zap.Logger) *AuditLogHandler {
	return &AuditLogHandler{logger: logger.Named("audit")}
}

// EventTypes subscribes to all events
func (h *AuditLogHandler) EventTypes() []string {
	return nil
}

// Handle logs the event
func (h *AuditLogHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", event.EventType(), err)
	}
	logger.For(ctx, h.logger).Info("Domain event",
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.Time("occurred_at", event.OccurredAt()),
		zap.ByteString("payload", payload),
	)
	return nil
}

var _ shared.EventHandler = (*AuditLogHandler)(nil)
