package resolve

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/merchkit/catalog/internal/model"
	"github.com/merchkit/catalog/internal/observability"
	"github.com/merchkit/catalog/internal/store"
)

// CategoryAll is the literal category name that means "no category filter"
// on the products listing.
const CategoryAll = "all"

// ProductFilter collects the optional inputs of the products listing.
// Nil pointer fields are not filtered on. Sort direction defaults to
// ascending; no secondary sort key is applied, so rows with equal sort-key
// values keep store-defined order.
type ProductFilter struct {
	CategoryID   *int
	CategoryName *string
	InStock      *bool
	Brand        *string
	SortBy       string
	SortOrder    string
	Limit        int
}

// Resolver implements the read-path query operations. Lookups that find
// nothing return nil, never an error; store failures on the products path
// are wrapped with context, while the categories path degrades to a fixed
// fallback list.
type Resolver struct {
	catalog *Catalog
	logger  *slog.Logger
	obs     *observability.Config
}

// NewResolver creates a resolver over the given catalog.
// A nil logger falls back to slog.Default().
func NewResolver(catalog *Catalog, logger *slog.Logger, obs *observability.Config) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{catalog: catalog, logger: logger, obs: obs}
}

// Categories returns all stored categories, or the fixed fallback list when
// the store holds none or cannot be reached. The API never serves an empty
// or broken category list.
func (r *Resolver) Categories(ctx context.Context) []map[string]any {
	ctx, span := r.obs.Tracer().StartCatalogRead(ctx, observability.OpListCategories)
	start := time.Now()

	categories, err := r.catalog.Categories(ctx)
	if err != nil {
		r.logger.Warn("categories lookup failed, serving fallback list", "error", err)
		r.obs.Metrics().RecordError(ctx, observability.OpListCategories)
		categories = nil
	}
	if len(categories) == 0 {
		categories = model.FallbackCategories()
	}

	out := make([]map[string]any, 0, len(categories))
	for _, category := range categories {
		out = append(out, category.AsMap())
	}

	r.obs.Metrics().RecordQuery(ctx, observability.OpListCategories, len(out), time.Since(start))
	observability.EndSpan(span, nil)
	return out
}

// Category returns one category selected by id or, failing that, by name.
// It returns nil when neither selector is supplied or nothing matches.
func (r *Resolver) Category(ctx context.Context, id *int, name *string) (map[string]any, error) {
	ctx, span := r.obs.Tracer().StartCatalogRead(ctx, observability.OpGetCategory)
	defer observability.EndSpan(span, nil)

	if id != nil {
		category, err := r.catalog.CategoryByID(ctx, *id)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, nil
		}
		return category.AsMap(), nil
	}

	if name != nil {
		category, err := r.catalog.CategoryByName(ctx, *name)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, nil
		}
		return category.AsMap(), nil
	}

	return nil, nil
}

// Products lists products matching the filter, each assembled with its
// gallery, attributes, prices, and category name. Store failures are
// rewrapped with context rather than masked.
func (r *Resolver) Products(ctx context.Context, filter ProductFilter) ([]map[string]any, error) {
	ctx, span := r.obs.Tracer().StartCatalogRead(ctx, observability.OpListProducts)
	start := time.Now()

	conditions := map[string]any{}
	if filter.CategoryID != nil {
		conditions["category_id"] = *filter.CategoryID
	}
	if filter.CategoryName != nil && *filter.CategoryName != CategoryAll {
		category, err := r.catalog.CategoryByName(ctx, *filter.CategoryName)
		if err != nil {
			observability.EndSpan(span, err)
			return nil, fmt.Errorf("failed to fetch products: %w", err)
		}
		if category == nil {
			// Unknown category names match nothing.
			observability.EndSpan(span, nil)
			return []map[string]any{}, nil
		}
		conditions["category_id"] = category.ID
	}
	if filter.InStock != nil {
		conditions["in_stock"] = *filter.InStock
	}
	if filter.Brand != nil {
		conditions["brand"] = *filter.Brand
	}

	var orderBy []store.Sort
	if filter.SortBy != "" {
		orderBy = append(orderBy, store.Sort{Field: filter.SortBy, Direction: filter.SortOrder})
	}

	products, err := r.catalog.FindProducts(ctx, conditions, orderBy, filter.Limit)
	if err != nil {
		r.obs.Metrics().RecordError(ctx, observability.OpListProducts)
		observability.EndSpan(span, err)
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	out := make([]map[string]any, 0, len(products))
	for i := range products {
		if err := r.catalog.Load(ctx, &products[i]); err != nil {
			r.obs.Metrics().RecordError(ctx, observability.OpListProducts)
			observability.EndSpan(span, err)
			return nil, fmt.Errorf("failed to fetch products: %w", err)
		}
		out = append(out, products[i].AsMap())
	}

	r.obs.Metrics().RecordQuery(ctx, observability.OpListProducts, len(out), time.Since(start))
	observability.EndSpan(span, nil)
	return out, nil
}

// Product returns one product by id with its nested data assembled, or nil
// when no such product exists.
func (r *Resolver) Product(ctx context.Context, id string) (map[string]any, error) {
	ctx, span := r.obs.Tracer().StartCatalogRead(ctx, observability.OpGetProduct,
		observability.ProductIDAttr(id))
	start := time.Now()

	product, err := r.catalog.ProductByID(ctx, id)
	if err != nil {
		r.obs.Metrics().RecordError(ctx, observability.OpGetProduct)
		observability.EndSpan(span, err)
		return nil, err
	}
	if product == nil {
		observability.EndSpan(span, nil)
		return nil, nil
	}
	if err := r.catalog.Load(ctx, product); err != nil {
		r.obs.Metrics().RecordError(ctx, observability.OpGetProduct)
		observability.EndSpan(span, err)
		return nil, err
	}

	r.obs.Metrics().RecordQuery(ctx, observability.OpGetProduct, 1, time.Since(start))
	observability.EndSpan(span, nil)
	return product.AsMap(), nil
}
