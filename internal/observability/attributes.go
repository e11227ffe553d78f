// Package observability provides OpenTelemetry-based instrumentation for the
// catalog service: tracing around resolver and checkout operations, metric
// instruments for queries and orders, and Server-Timing response headers.
//
// All features are opt-in. When not configured, no-op implementations are
// used with zero overhead.
package observability

import "go.opentelemetry.io/otel/attribute"

// Instrumentation identity constants.
const (
	// TracerName is the instrumentation name for tracing.
	TracerName = "github.com/merchkit/catalog"
	// MeterName is the instrumentation name for metrics.
	MeterName = "github.com/merchkit/catalog"
)

// Semantic attribute keys used on catalog spans and metrics.
const (
	AttrOperation    = "catalog.operation"
	AttrProductID    = "catalog.product_id"
	AttrCategoryName = "catalog.category_name"
	AttrResultCount  = "catalog.result.count"
	AttrOrderID      = "catalog.order_id"
	AttrOrderLines   = "catalog.order.lines"
	AttrErrorMessage = "catalog.error.message"
)

// Operation names recorded under AttrOperation.
const (
	OpListCategories = "categories.list"
	OpGetCategory    = "categories.get"
	OpListProducts   = "products.list"
	OpGetProduct     = "products.get"
	OpCreateOrder    = "orders.create"
	OpImport         = "catalog.import"
)

// OperationAttr builds the operation attribute.
func OperationAttr(op string) attribute.KeyValue {
	return attribute.String(AttrOperation, op)
}

// ProductIDAttr builds the product id attribute.
func ProductIDAttr(id string) attribute.KeyValue {
	return attribute.String(AttrProductID, id)
}

// CategoryNameAttr builds the category name attribute.
func CategoryNameAttr(name string) attribute.KeyValue {
	return attribute.String(AttrCategoryName, name)
}

// ResultCountAttr builds the result count attribute.
func ResultCountAttr(n int) attribute.KeyValue {
	return attribute.Int(AttrResultCount, n)
}
