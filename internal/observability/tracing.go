package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer wraps an OpenTelemetry tracer with catalog-specific span creation
// methods.
type Tracer struct {
	tracer      trace.Tracer
	serviceName string
}

// NewTracer creates a new Tracer using the given TracerProvider.
func NewTracer(tp trace.TracerProvider, serviceName string) *Tracer {
	return &Tracer{
		tracer:      tp.Tracer(TracerName),
		serviceName: serviceName,
	}
}

// StartSpan starts a new span with the given name and attributes.
func (t *Tracer) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// StartCatalogRead starts a span for a read-path resolver operation.
func (t *Tracer) StartCatalogRead(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, OperationAttr(op))
	return t.tracer.Start(ctx, "catalog.read", trace.WithAttributes(attrs...))
}

// StartOrderCreate starts a span for the order-creation transaction.
func (t *Tracer) StartOrderCreate(ctx context.Context, lineCount int) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "catalog.order.create", trace.WithAttributes(
		OperationAttr(OpCreateOrder),
		attribute.Int(AttrOrderLines, lineCount),
	))
}

// EndSpan finalizes a span, recording the error if one occurred.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
