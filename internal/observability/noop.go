package observability

import (
	"go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// NewNoopTracer creates a tracer that does nothing.
func NewNoopTracer() *Tracer {
	return &Tracer{
		tracer:      tracenoop.NewTracerProvider().Tracer(""),
		serviceName: "",
	}
}

// NewNoopMetrics creates metrics that do nothing.
func NewNoopMetrics() *Metrics {
	meter := noop.NewMeterProvider().Meter("")
	m := &Metrics{}

	// Note: noop meter never returns errors, but we must check them to satisfy the linter.
	m.queryDuration, _ = meter.Float64Histogram("catalog.query.duration") //nolint:errcheck
	m.queryCount, _ = meter.Int64Counter("catalog.query.count")           //nolint:errcheck
	m.resultCount, _ = meter.Int64Histogram("catalog.result.count")       //nolint:errcheck
	m.orderCount, _ = meter.Int64Counter("catalog.order.count")           //nolint:errcheck
	m.orderTotal, _ = meter.Float64Histogram("catalog.order.total")       //nolint:errcheck
	m.errorCount, _ = meter.Int64Counter("catalog.error.count")           //nolint:errcheck

	return m
}
