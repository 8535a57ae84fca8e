// Package testutil holds helpers shared by the integration tests.
package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/stretchr/testify/require"
)

// RecordingHandler captures every event delivered to it
type RecordingHandler struct {
	mu         sync.Mutex
	eventTypes []string
	handled    []shared.DomainEvent
	err        error
}

// NewRecordingHandler subscribes to eventTypes, or to every event when none are given
func NewRecordingHandler(eventTypes ...string) *RecordingHandler {
	return &RecordingHandler{eventTypes: eventTypes}
}

// EventTypes returns the event types this handler subscribes to
func (h *RecordingHandler) EventTypes() []string {
	return h.eventTypes
}

// Handle records the event and returns the configured error
func (h *RecordingHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = append(h.handled, event)
	return h.err
}

// Handled returns a copy of the recorded events
func (h *RecordingHandler) Handled() []shared.DomainEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]shared.DomainEvent, len(h.handled))
	copy(out, h.handled)
	return out
}

// Types returns the recorded event types in delivery order
func (h *RecordingHandler) Types() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.handled))
	for i, e := range h.handled {
		out[i] = e.EventType()
	}
	return out
}

// CountOf returns how many events of eventType were recorded
func (h *RecordingHandler) CountOf(eventType string) int {
	n := 0
	for _, t := range h.Types() {
		if t == eventType {
			n++
		}
	}
	return n
}

// SetError makes subsequent Handle calls fail with err
func (h *RecordingHandler) SetError(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.err = err
}

// Reset clears recorded events and the configured error
func (h *RecordingHandler) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = nil
	h.err = nil
}

// RequireEventCount waits until eventType has been recorded count times
func RequireEventCount(t *testing.T, h *RecordingHandler, eventType string, count int, timeout time.Duration) {
	t.Helper()
	require.Eventually(t, func() bool {
		return h.CountOf(eventType) >= count
	}, timeout, 10*time.Millisecond, "expected %d %s events, got %d", count, eventType, h.CountOf(eventType))
}
