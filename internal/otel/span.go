// Package otel holds span helpers shared by the validation engine and the
// entry sheet pipeline.
package otel

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys
const (
	AttrEntityType      = attribute.Key("entity.type")
	AttrEntityID        = attribute.Key("entity.id")
	AttrSheetCount      = attribute.Key("entry_sheet.count")
	AttrSheetsInserted  = attribute.Key("entry_sheet.inserted")
	AttrSheetsUpdated   = attribute.Key("entry_sheet.updated")
	AttrValidationCount = attribute.Key("validation.count")
)

// StartSpan starts a span on tracer. A nil tracer yields the span already in
// ctx, which is a no-op span when tracing is off.
func StartSpan(
	ctx context.Context,
	tracer trace.Tracer,
	name string,
	attrs ...attribute.KeyValue,
) (context.Context, trace.Span) {
	if tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	if len(attrs) == 0 {
		return tracer.Start(ctx, name)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// EntityAttributes identifies the entity a span works on
func EntityAttributes(entityType, entityID string) []attribute.KeyValue {
	return []attribute.KeyValue{
		AttrEntityType.String(entityType),
		AttrEntityID.String(entityID),
	}
}

// End marks the span failed when err is set and ends it. The status
// description stays generic so SQL and upstream URLs only reach the
// exception event.
func End(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "operation failed")
	}
	span.End()
}
