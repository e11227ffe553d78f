package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the catalog-specific metric instruments.
type Metrics struct {
	queryDuration metric.Float64Histogram
	queryCount    metric.Int64Counter
	resultCount   metric.Int64Histogram
	orderCount    metric.Int64Counter
	orderTotal    metric.Float64Histogram
	errorCount    metric.Int64Counter
}

// NewMetrics creates a new Metrics instance with the given MeterProvider.
func NewMetrics(mp metric.MeterProvider) *Metrics {
	meter := mp.Meter(MeterName)
	m := &Metrics{}

	// Instrument creation only fails on invalid parameters; fall back to the
	// bare instrument so partial metrics keep flowing.
	var err error

	m.queryDuration, err = meter.Float64Histogram(
		"catalog.query.duration",
		metric.WithDescription("Duration of catalog read operations in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		m.queryDuration, _ = meter.Float64Histogram("catalog.query.duration")
	}

	m.queryCount, err = meter.Int64Counter(
		"catalog.query.count",
		metric.WithDescription("Total number of catalog read operations"),
		metric.WithUnit("{query}"),
	)
	if err != nil {
		m.queryCount, _ = meter.Int64Counter("catalog.query.count")
	}

	m.resultCount, err = meter.Int64Histogram(
		"catalog.result.count",
		metric.WithDescription("Number of entities returned by list operations"),
		metric.WithUnit("{entity}"),
	)
	if err != nil {
		m.resultCount, _ = meter.Int64Histogram("catalog.result.count")
	}

	m.orderCount, err = meter.Int64Counter(
		"catalog.order.count",
		metric.WithDescription("Total number of order placement attempts by outcome"),
		metric.WithUnit("{order}"),
	)
	if err != nil {
		m.orderCount, _ = meter.Int64Counter("catalog.order.count")
	}

	m.orderTotal, err = meter.Float64Histogram(
		"catalog.order.total",
		metric.WithDescription("Total amount of successfully placed orders"),
	)
	if err != nil {
		m.orderTotal, _ = meter.Float64Histogram("catalog.order.total")
	}

	m.errorCount, err = meter.Int64Counter(
		"catalog.error.count",
		metric.WithDescription("Total number of catalog errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		m.errorCount, _ = meter.Int64Counter("catalog.error.count")
	}

	return m
}

// RecordQuery records a completed read operation.
func (m *Metrics) RecordQuery(ctx context.Context, op string, results int, duration time.Duration) {
	attrs := metric.WithAttributes(OperationAttr(op))
	m.queryCount.Add(ctx, 1, attrs)
	m.queryDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
	if results >= 0 {
		m.resultCount.Record(ctx, int64(results), attrs)
	}
}

// RecordOrder records an order placement attempt.
func (m *Metrics) RecordOrder(ctx context.Context, success bool, total float64) {
	m.orderCount.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("catalog.order.success", success),
	))
	if success {
		m.orderTotal.Record(ctx, total)
	}
}

// RecordError records an error for the given operation.
func (m *Metrics) RecordError(ctx context.Context, op string) {
	m.errorCount.Add(ctx, 1, metric.WithAttributes(OperationAttr(op)))
}
