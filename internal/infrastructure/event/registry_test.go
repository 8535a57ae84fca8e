package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandlerRegistry_Register(t *testing.T) {
	r := NewHandlerRegistry()
	placed := newRecordingHandler("placed")
	all := newRecordingHandler()

	r.Register(placed, "OrderPlaced", "OrderConfirmed")
	r.Register(all)

	assert.Equal(t, []any{placed, all}, toAny(r.GetHandlers("OrderPlaced")))
	assert.Equal(t, []any{placed, all}, toAny(r.GetHandlers("OrderConfirmed")))
	assert.Equal(t, []any{all}, toAny(r.GetHandlers("PurchaseRecorded")))
	assert.Equal(t, 2, r.Count())
}

func TestHandlerRegistry_Unregister(t *testing.T) {
	r := NewHandlerRegistry()
	a := newRecordingHandler("a")
	b := newRecordingHandler("b")

	r.Register(a, "OrderPlaced")
	r.Register(b, "OrderPlaced")
	r.Register(a)

	r.Unregister(a)

	assert.Equal(t, []any{b}, toAny(r.GetHandlers("OrderPlaced")))
	assert.Equal(t, 1, r.Count())

	r.Unregister(b)
	assert.Empty(t, r.GetHandlers("OrderPlaced"))
	assert.Equal(t, 0, r.Count())
}

func toAny[T any](in []T) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
