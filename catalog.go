package catalog

// Package catalog provides a product-catalog query layer and an
// order-placement transaction behind a GraphQL API, backed by a relational
// store through gorm. Construct a Service around an existing *gorm.DB and
// either mount it as an http.Handler or call the query and checkout methods
// directly.

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/merchkit/catalog/internal/checkout"
	"github.com/merchkit/catalog/internal/graph"
	"github.com/merchkit/catalog/internal/model"
	"github.com/merchkit/catalog/internal/observability"
	"github.com/merchkit/catalog/internal/resolve"
)

// ServiceConfig controls optional service behaviours.
type ServiceConfig struct {
	// Logger is used for structured logging throughout the service.
	// If nil, slog.Default() is used.
	Logger *slog.Logger

	// TracerProvider enables OpenTelemetry tracing when set.
	TracerProvider trace.TracerProvider

	// MeterProvider enables OpenTelemetry metrics when set.
	MeterProvider metric.MeterProvider

	// ServiceName identifies this service in traces and metrics.
	ServiceName string

	// EnableServerTiming adds Server-Timing headers to GraphQL responses.
	EnableServerTiming bool
}

// Service is the catalog and checkout service. All reads and the one
// mutation run against the gorm connection the service was constructed with;
// cross-request coordination is delegated to the store's own concurrency
// control.
type Service struct {
	db       *gorm.DB
	logger   *slog.Logger
	obs      *observability.Config
	catalog  *resolve.Catalog
	resolver *resolve.Resolver
	orders   *checkout.Service
	handler  http.Handler
}

// NewService creates a catalog service with default configuration.
func NewService(db *gorm.DB) *Service {
	service, err := NewServiceWithConfig(db, ServiceConfig{})
	if err != nil {
		panic(err)
	}
	return service
}

// NewServiceWithConfig creates a catalog service with additional
// configuration.
func NewServiceWithConfig(db *gorm.DB, cfg ServiceConfig) (*Service, error) {
	if db == nil {
		return nil, fmt.Errorf("catalog: database handle is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	opts := []observability.Option{
		observability.WithServiceName(cfg.ServiceName),
	}
	if cfg.TracerProvider != nil {
		opts = append(opts, observability.WithTracerProvider(cfg.TracerProvider))
	}
	if cfg.MeterProvider != nil {
		opts = append(opts, observability.WithMeterProvider(cfg.MeterProvider))
	}
	if cfg.EnableServerTiming {
		opts = append(opts, observability.WithServerTiming())
	}
	obs := observability.NewConfig(opts...)

	entities := resolve.NewCatalog(db)
	resolver := resolve.NewResolver(entities, logger, obs)
	orders := checkout.NewService(db, entities, logger, obs)

	schema, err := graph.BuildSchema(resolver, orders)
	if err != nil {
		return nil, fmt.Errorf("catalog: building schema: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/graphql", graph.NewHandler(schema, logger))

	return &Service{
		db:       db,
		logger:   logger,
		obs:      obs,
		catalog:  entities,
		resolver: resolver,
		orders:   orders,
		handler:  observability.ServerTimingMiddleware(obs, mux),
	}, nil
}

// SetLogger replaces the service logger.
// If nil is passed, slog.Default() is used.
func (s *Service) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	s.logger = logger
}

// AutoMigrate creates or updates the catalog and order tables.
func (s *Service) AutoMigrate() error {
	return s.db.AutoMigrate(
		&model.Category{},
		&model.Product{},
		&model.ProductImage{},
		&model.AttributeSet{},
		&model.AttributeItem{},
		&model.Price{},
		&model.Order{},
		&model.OrderItem{},
	)
}

// ServeHTTP serves the GraphQL endpoint at /graphql.
func (s *Service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe starts an HTTP server for the service on the given address.
func (s *Service) ListenAndServe(addr string) error {
	s.logger.Info("catalog service listening", "addr", addr)
	return http.ListenAndServe(addr, s)
}

// ProductQuery collects the optional filters of the Products listing.
// Nil pointer fields are not filtered on.
type ProductQuery struct {
	CategoryID   *int
	CategoryName *string
	InStock      *bool
	Brand        *string
	SortBy       string
	SortOrder    string
	Limit        int
}

// OrderLine is one entry of an order request.
type OrderLine struct {
	ProductID string
	Quantity  int
	// SelectedAttributes is a JSON object of attribute name to selected
	// value; stored verbatim on the order line.
	SelectedAttributes string
}

// OrderInput is the payload of CreateOrder. Customer fields are optional and
// default to a placeholder identity.
type OrderInput struct {
	CustomerEmail string
	CustomerName  string
	Items         []OrderLine
}

// OrderResult is the uniform outcome of CreateOrder. Success=false with a
// non-empty Message is the one failure signal; no error codes exist.
type OrderResult struct {
	Success bool
	Order   map[string]any
	Message string
}

// Categories returns all categories, or the fixed fallback list (all,
// clothes, tech) when the store is empty or unreachable.
func (s *Service) Categories(ctx context.Context) []map[string]any {
	return s.resolver.Categories(ctx)
}

// Category returns one category by id or name. Absence is reported as
// ErrNotFound, store failures as ErrStoreUnavailable.
func (s *Service) Category(ctx context.Context, id *int, name *string) (map[string]any, error) {
	result, err := s.resolver.Category(ctx, id, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if result == nil {
		return nil, ErrNotFound
	}
	return result, nil
}

// Products lists products matching the query, each with its nested gallery,
// attributes, prices, and category name.
func (s *Service) Products(ctx context.Context, query ProductQuery) ([]map[string]any, error) {
	results, err := s.resolver.Products(ctx, resolve.ProductFilter{
		CategoryID:   query.CategoryID,
		CategoryName: query.CategoryName,
		InStock:      query.InStock,
		Brand:        query.Brand,
		SortBy:       query.SortBy,
		SortOrder:    query.SortOrder,
		Limit:        query.Limit,
	})
	if err != nil {
		if errors.Is(err, resolve.ErrInvalidFilter) {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return results, nil
}

// Product returns one product by id. Absence is reported as ErrNotFound.
func (s *Service) Product(ctx context.Context, id string) (map[string]any, error) {
	result, err := s.resolver.Product(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if result == nil {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
	}
	return result, nil
}

// CreateOrder runs the order-placement transaction. Failures of any kind are
// reported inside the result, never as an error.
func (s *Service) CreateOrder(ctx context.Context, input OrderInput) OrderResult {
	items := make([]checkout.LineInput, 0, len(input.Items))
	for _, line := range input.Items {
		items = append(items, checkout.LineInput{
			ProductID:          line.ProductID,
			Quantity:           line.Quantity,
			SelectedAttributes: line.SelectedAttributes,
		})
	}
	result := s.orders.PlaceOrder(ctx, checkout.Input{
		CustomerEmail: input.CustomerEmail,
		CustomerName:  input.CustomerName,
		Items:         items,
	})
	return OrderResult{Success: result.Success, Order: result.Order, Message: result.Message}
}
