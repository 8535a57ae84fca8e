package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func startedBus(t *testing.T, log *zap.Logger) *InMemoryEventBus {
	t.Helper()
	bus := NewInMemoryEventBus(log)
	require.NoError(t, bus.Start(context.Background()))
	t.Cleanup(func() { _ = bus.Stop(context.Background()) })
	return bus
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	bus := startedBus(t, zap.NewNop())

	placed := newRecordingHandler("OrderPlaced")
	all := newRecordingHandler()
	bus.Subscribe(placed)
	bus.Subscribe(all)

	err := bus.Publish(context.Background(),
		newTestEvent("OrderPlaced"),
		newTestEvent("InvoiceIssued"),
	)

	require.NoError(t, err)
	assert.Equal(t, 1, placed.count())
	assert.Equal(t, 2, all.count())
}

func TestInMemoryEventBus_ExplicitTypesOverrideHandler(t *testing.T) {
	bus := startedBus(t, zap.NewNop())

	h := newRecordingHandler("OrderPlaced")
	bus.Subscribe(h, "PurchaseRecorded")

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("OrderPlaced")))
	assert.Equal(t, 0, h.count())

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("PurchaseRecorded")))
	assert.Equal(t, 1, h.count())
}

func TestInMemoryEventBus_HandlerFailureDoesNotStopOthers(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	bus := startedBus(t, zap.New(core))

	failing := newRecordingHandler("OrderPlaced")
	failing.err = errors.New("downstream unavailable")
	panicking := newRecordingHandler("OrderPlaced")
	panicking.panicWith = "nil map"
	healthy := newRecordingHandler("OrderPlaced")

	bus.Subscribe(failing)
	bus.Subscribe(panicking)
	bus.Subscribe(healthy)

	err := bus.Publish(context.Background(), newTestEvent("OrderPlaced"))

	require.NoError(t, err)
	assert.Equal(t, 1, healthy.count())
	assert.Equal(t, 2, logs.FilterMessage("Event handler failed").Len())
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := startedBus(t, zap.NewNop())
	h := newRecordingHandler("OrderPlaced")
	bus.Subscribe(h)
	bus.Unsubscribe(h)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("OrderPlaced")))
	assert.Equal(t, 0, h.count())
}

func TestInMemoryEventBus_StoppedDropsEvents(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	h := newRecordingHandler()
	bus.Subscribe(h)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("OrderPlaced")))
	assert.Equal(t, 0, h.count())

	require.NoError(t, bus.Start(context.Background()))
	require.NoError(t, bus.Publish(context.Background(), newTestEvent("OrderPlaced")))
	assert.Equal(t, 1, h.count())

	require.NoError(t, bus.Stop(context.Background()))
	require.NoError(t, bus.Publish(context.Background(), newTestEvent("OrderPlaced")))
	assert.Equal(t, 1, h.count())
}
