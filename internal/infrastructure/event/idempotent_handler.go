package event

import (
	"context"

	"github.com/erp/tradecore/internal/domain/shared"
	"go.uber.org/zap"
)

const eventKeyPrefix = "event:"

// IdempotentHandler makes sure a handler sees each event ID once, even when
// an event is delivered twice
type IdempotentHandler struct {
	handler shared.EventHandler
	store   shared.IdempotencyStore
	config  shared.IdempotencyConfig
	logger  *zap.Logger
}

// NewIdempotentHandler wraps handler with event-ID deduplication
func NewIdempotentHandler(handler shared.EventHandler, store shared.IdempotencyStore, config shared.IdempotencyConfig, logger *zap.Logger) *IdempotentHandler {
	return &IdempotentHandler{
		handler: handler,
		store:   store,
		config:  config,
		logger:  logger,
	}
}

// EventTypes returns the wrapped handler's event types
func (h *IdempotentHandler) EventTypes() []string {
	return h.handler.EventTypes()
}

// Handle claims the event ID before delegating. A store failure does not
// block handling; a handler failure releases the claim so redelivery is possible.
func (h *IdempotentHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if !h.config.Enabled {
		return h.handler.Handle(ctx, event)
	}

	key := eventKeyPrefix + event.EventID().String()
	isNew, err := h.store.MarkProcessed(ctx, key, h.config.TTL)
	switch {
	case err != nil:
		h.logger.Warn("Idempotency check failed, handling anyway",
			zap.String("event_id", event.EventID().String()),
			zap.Error(err),
		)
	case !isNew:
		h.logger.Debug("Duplicate event skipped",
			zap.String("event_id", event.EventID().String()),
			zap.String("event_type", event.EventType()),
		)
		return nil
	}

	if err := h.handler.Handle(ctx, event); err != nil {
		if relErr := h.store.Release(ctx, key); relErr != nil {
			h.logger.Warn("Failed to release event key", zap.String("key", key), zap.Error(relErr))
		}
		return err
	}
	return nil
}

var _ shared.EventHandler = (*IdempotentHandler)(nil)
