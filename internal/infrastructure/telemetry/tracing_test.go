package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

func TestStartServiceSpan(t *testing.T) {
	recorder := withSpanRecorder(t)

	ctx, span := StartServiceSpan(context.Background(), "order", "place", attribute.Int("lines", 2))
	assert.True(t, span.SpanContext().IsValid())
	_, child := StartServiceSpan(ctx, "order", "price_line")
	EndSpan(child, nil)
	EndSpan(span, nil)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "order.price_line", spans[0].Name())
	assert.Equal(t, "order.place", spans[1].Name())
	assert.Equal(t, spans[1].SpanContext().SpanID(), spans[0].Parent().SpanID())
	assert.Equal(t, codes.Ok, spans[1].Status().Code)
	assert.Contains(t, spans[1].Attributes(), attribute.Int("lines", 2))
}

func TestEndSpan_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus codes.Code
		wantCode   string
	}{
		{"validation", shared.NewValidationError("empty cart"), codes.Unset, shared.CodeValidation},
		{"insufficient stock", shared.ErrInsufficientStock, codes.Unset, shared.CodeInsufficientStock},
		{"persistence", shared.NewPersistenceError("save order", errors.New("conn reset"), true), codes.Error, shared.CodePersistence},
		{"plain", errors.New("boom"), codes.Error, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := withSpanRecorder(t)
			_, span := StartServiceSpan(context.Background(), "svc", "op")
			EndSpan(span, tt.err)

			ended := recorder.Ended()
			require.Len(t, ended, 1)
			assert.Equal(t, tt.wantStatus, ended[0].Status().Code)
			if tt.wantCode != "" {
				assert.Contains(t, ended[0].Attributes(), attribute.String("error.code", tt.wantCode))
			}
		})
	}
}

func TestAttr(t *testing.T) {
	id := uuid.MustParse("7f1b2c1e-5b0a-4f7e-9a55-3f1d2f0c9e11")
	assert.Equal(t, attribute.String("k", "v"), Attr("k", "v"))
	assert.Equal(t, attribute.Int("k", 3), Attr("k", 3))
	assert.Equal(t, attribute.Int64("k", 3), Attr("k", int64(3)))
	assert.Equal(t, attribute.Bool("k", true), Attr("k", true))
	assert.Equal(t, attribute.String("k", id.String()), Attr("k", id))
	assert.Equal(t, attribute.String("k", "[1 2]"), Attr("k", []int{1, 2}))
}
