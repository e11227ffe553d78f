// Package checkout implements the order-creation transaction: validating a
// cart against live catalog state, snapshotting unit prices, and persisting
// the order with its line items atomically.
package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/merchkit/catalog/internal/model"
	"github.com/merchkit/catalog/internal/observability"
	"github.com/merchkit/catalog/internal/resolve"
)

// Placeholder identity used when the cart carries no customer details.
// No email format validation is performed.
const (
	defaultCustomerEmail = "guest@example.com"
	defaultCustomerName  = "Guest"
)

// LineInput is one entry of a checkout request.
type LineInput struct {
	ProductID string
	Quantity  int
	// SelectedAttributes is a JSON object mapping attribute set names to the
	// selected item value. It is stored verbatim on the order line.
	SelectedAttributes string
}

// Input is the cart-like payload of the createOrder operation.
type Input struct {
	CustomerEmail string
	CustomerName  string
	Items         []LineInput
}

// Result is the uniform outcome shape of order placement. Failures of any
// kind surface here as Success=false plus a human-readable message; no error
// ever escapes to the transport layer.
type Result struct {
	Success bool
	Order   map[string]any
	Message string
}

func failure(message string) Result {
	return Result{Success: false, Order: nil, Message: message}
}

// Service runs the order-creation transaction.
type Service struct {
	db      *gorm.DB
	catalog *resolve.Catalog
	logger  *slog.Logger
	obs     *observability.Config
}

// NewService creates a checkout service. A nil logger falls back to
// slog.Default().
func NewService(db *gorm.DB, catalog *resolve.Catalog, logger *slog.Logger, obs *observability.Config) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{db: db, catalog: catalog, logger: logger, obs: obs}
}

// PlaceOrder validates the cart and persists the order. The order row, all
// line items, and the total patch run in one transaction: any line failure
// rolls the whole order back, so partial orders cannot be observed after the
// call returns.
//
// Validation per line: the product must exist, be in stock, and carry at
// least one price row; the unit price is snapshotted from the first price
// row. A supplied attribute selection must name attribute sets that exist on
// the product and pass that set's type-specific validation.
func (s *Service) PlaceOrder(ctx context.Context, in Input) Result {
	ctx, span := s.obs.Tracer().StartOrderCreate(ctx, len(in.Items))

	if len(in.Items) == 0 {
		observability.EndSpan(span, nil)
		s.obs.Metrics().RecordOrder(ctx, false, 0)
		return failure("items are required")
	}

	email := strings.TrimSpace(in.CustomerEmail)
	if email == "" {
		email = defaultCustomerEmail
	}
	name := strings.TrimSpace(in.CustomerName)
	if name == "" {
		name = defaultCustomerName
	}

	var placed model.Order

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		catalog := s.catalog.WithTx(tx)

		order := model.Order{
			Reference:     uuid.NewString(),
			CustomerEmail: email,
			CustomerName:  name,
			TotalAmount:   decimal.Zero,
			Status:        model.StatusPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		total := decimal.Zero
		for _, line := range in.Items {
			item, subtotal, err := s.placeLine(ctx, tx, catalog, order.ID, line)
			if err != nil {
				return err
			}
			order.Items = append(order.Items, *item)
			total = total.Add(subtotal)
		}

		// Patch the computed total onto the order as a second write, after
		// all lines are persisted.
		if err := tx.Model(&order).Update("total_amount", total).Error; err != nil {
			return fmt.Errorf("failed to update order total: %w", err)
		}
		order.TotalAmount = total

		placed = order
		return nil
	})
	if err != nil {
		s.logger.Warn("order placement failed", "error", err)
		s.obs.Metrics().RecordOrder(ctx, false, 0)
		observability.EndSpan(span, err)
		return failure(err.Error())
	}

	s.logger.Info("order placed",
		"order_id", placed.ID,
		"reference", placed.Reference,
		"lines", len(placed.Items),
		"total", placed.TotalAmount.String())
	s.obs.Metrics().RecordOrder(ctx, true, placed.TotalAmount.InexactFloat64())
	observability.EndSpan(span, nil)

	return Result{
		Success: true,
		Order:   placed.AsMap(),
		Message: "Order created successfully",
	}
}

func (s *Service) placeLine(ctx context.Context, tx *gorm.DB, catalog *resolve.Catalog, orderID uint, line LineInput) (*model.OrderItem, decimal.Decimal, error) {
	if line.ProductID == "" || line.Quantity <= 0 {
		return nil, decimal.Zero, fmt.Errorf("each item must have productId and quantity")
	}

	product, err := catalog.ProductByID(ctx, line.ProductID)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to look up product %s: %w", line.ProductID, err)
	}
	if product == nil {
		return nil, decimal.Zero, fmt.Errorf("product with ID %s not found", line.ProductID)
	}
	if !product.InStock {
		return nil, decimal.Zero, fmt.Errorf("product %s is out of stock", product.Name)
	}

	prices, err := catalog.PricesFor(ctx, product.ID)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to load prices for product %s: %w", product.ID, err)
	}
	if len(prices) == 0 {
		return nil, decimal.Zero, fmt.Errorf("product %s has no price information", product.Name)
	}

	if line.SelectedAttributes != "" {
		if err := s.validateSelection(ctx, catalog, product, line.SelectedAttributes); err != nil {
			return nil, decimal.Zero, err
		}
	}

	unitPrice := prices[0].Amount
	subtotal := unitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))

	item := model.OrderItem{
		OrderID:            orderID,
		ProductID:          line.ProductID,
		Quantity:           line.Quantity,
		UnitPrice:          unitPrice,
		SelectedAttributes: line.SelectedAttributes,
	}
	if err := tx.Create(&item).Error; err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to create order item: %w", err)
	}
	return &item, subtotal, nil
}

// validateSelection checks a line's attribute selection against the
// product's own attribute sets, using the set type's behavior. The stored
// form stays the verbatim JSON the request carried.
func (s *Service) validateSelection(ctx context.Context, catalog *resolve.Catalog, product *model.Product, raw string) error {
	var selection map[string]string
	if err := json.Unmarshal([]byte(raw), &selection); err != nil {
		return fmt.Errorf("invalid selectedAttributes for product %s: not a JSON object of attribute values", product.Name)
	}

	sets, err := catalog.AttributeSetsFor(ctx, product.ID)
	if err != nil {
		return fmt.Errorf("failed to load attributes for product %s: %w", product.ID, err)
	}
	byName := make(map[string]model.AttributeSet, len(sets))
	for _, set := range sets {
		byName[set.Name] = set
	}

	for attrName, value := range selection {
		set, ok := byName[attrName]
		if !ok {
			return fmt.Errorf("product %s has no attribute %s", product.Name, attrName)
		}
		if !model.BehaviorFor(set).ValidateValue(value) {
			return fmt.Errorf("invalid value %q for attribute %s of product %s", value, attrName, product.Name)
		}
	}
	return nil
}
