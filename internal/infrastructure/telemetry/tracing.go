package telemetry

import (
	"context"
	"errors"
	"fmt"

	"github.com/erp/tradecore/internal/domain/shared"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName names the tracer used for service spans
const TracerName = "tradecore"

// StartServiceSpan starts an internal span named "{service}.{method}".
//
//	ctx, span := telemetry.StartServiceSpan(ctx, "order", "place")
//	defer span.End()
func StartServiceSpan(ctx context.Context, service, method string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(TracerName).Start(ctx, service+"."+method,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// EndSpan records the outcome of err on span and ends it. Caller-side
// failures (validation, stock, state) are tagged with their code but keep
// the span status unset; everything else marks the span as an error.
func EndSpan(span trace.Span, err error) {
	defer span.End()
	if err == nil {
		span.SetStatus(codes.Ok, "")
		return
	}

	var de *shared.DomainError
	if errors.As(err, &de) {
		span.SetAttributes(attribute.String("error.code", de.Code))
		if de.Code != shared.CodePersistence {
			return
		}
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// Attr converts a Go value into an attribute, falling back to its string form
func Attr(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	case bool:
		return attribute.Bool(key, v)
	case fmt.Stringer:
		return attribute.String(key, v.String())
	default:
		return attribute.String(key, fmt.Sprintf("%v", v))
	}
}
