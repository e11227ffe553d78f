package checkout

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/merchkit/catalog/internal/model"
	"github.com/merchkit/catalog/internal/resolve"
)

func setupCheckoutTest(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Category{}, &model.Product{}, &model.ProductImage{},
		&model.AttributeSet{}, &model.AttributeItem{}, &model.Price{},
		&model.Order{}, &model.OrderItem{},
	); err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}

	seedCheckoutCatalog(t, db)
	return NewService(db, resolve.NewCatalog(db), nil, nil), db
}

func seedCheckoutCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()

	tech := model.Category{Name: "tech"}
	if err := db.Create(&tech).Error; err != nil {
		t.Fatalf("Failed to seed category: %v", err)
	}

	products := []model.Product{
		{ID: "imac", Name: "iMac 2021", InStock: true, CategoryID: tech.ID, Brand: "Apple"},
		{ID: "iphone", Name: "iPhone 12 Pro", InStock: false, CategoryID: tech.ID, Brand: "Apple"},
		{ID: "unpriced", Name: "Prototype", InStock: true, CategoryID: tech.ID, Brand: "Apple"},
	}
	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			t.Fatalf("Failed to seed product: %v", err)
		}
	}

	capacity := model.AttributeSet{ProductID: "imac", Name: "Capacity", Type: model.AttributeSelect}
	if err := db.Create(&capacity).Error; err != nil {
		t.Fatalf("Failed to seed attribute set: %v", err)
	}
	if err := db.Create(&model.AttributeItem{
		AttributeID: capacity.ID, DisplayValue: "256GB", Value: "256GB", ItemID: "256GB",
	}).Error; err != nil {
		t.Fatalf("Failed to seed attribute item: %v", err)
	}

	color := model.AttributeSet{ProductID: "imac", Name: "Color", Type: model.AttributeSwatch}
	if err := db.Create(&color).Error; err != nil {
		t.Fatalf("Failed to seed attribute set: %v", err)
	}

	prices := []model.Price{
		{ProductID: "imac", Amount: decimal.NewFromFloat(1688.03), CurrencyLabel: "USD", CurrencySymbol: "$"},
		{ProductID: "imac", Amount: decimal.NewFromFloat(1549.00), CurrencyLabel: "EUR", CurrencySymbol: "€"},
	}
	for i := range prices {
		if err := db.Create(&prices[i]).Error; err != nil {
			t.Fatalf("Failed to seed price: %v", err)
		}
	}
}

func countRows(t *testing.T, db *gorm.DB, value any) int64 {
	t.Helper()
	var count int64
	if err := db.Model(value).Count(&count).Error; err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	return count
}

func TestPlaceOrder(t *testing.T) {
	service, db := setupCheckoutTest(t)

	result := service.PlaceOrder(context.Background(), Input{
		CustomerEmail: "jane@example.com",
		CustomerName:  "Jane Doe",
		Items: []LineInput{
			{ProductID: "imac", Quantity: 2},
		},
	})

	if !result.Success {
		t.Fatalf("Expected success, got message %q", result.Message)
	}
	if result.Message != "Order created successfully" {
		t.Errorf("Unexpected message: %q", result.Message)
	}

	// Total is unit price times quantity, from the first price row.
	want := 1688.03 * 2
	got := result.Order["totalAmount"].(float64)
	if got != want {
		t.Errorf("Expected total %v, got %v", want, got)
	}
	if result.Order["status"] != model.StatusPending {
		t.Errorf("Expected pending status, got %v", result.Order["status"])
	}
	if result.Order["reference"] == "" {
		t.Error("Expected the order to carry a reference")
	}

	items := result.Order["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("Expected exactly one order item, got %d", len(items))
	}
	item := items[0].(map[string]any)
	if item["unitPrice"].(float64) != 1688.03 {
		t.Errorf("Expected snapshotted unit price 1688.03, got %v", item["unitPrice"])
	}

	// The snapshot survives later price changes.
	if err := db.Model(&model.Price{}).Where("product_id = ?", "imac").
		Update("amount", decimal.NewFromInt(1)).Error; err != nil {
		t.Fatalf("Failed to change price: %v", err)
	}
	var stored model.OrderItem
	if err := db.First(&stored).Error; err != nil {
		t.Fatalf("Failed to load order item: %v", err)
	}
	if !stored.UnitPrice.Equal(decimal.NewFromFloat(1688.03)) {
		t.Errorf("Expected stored snapshot to be immune to price changes, got %v", stored.UnitPrice)
	}
}

func TestPlaceOrderMultipleLines(t *testing.T) {
	service, _ := setupCheckoutTest(t)

	result := service.PlaceOrder(context.Background(), Input{
		Items: []LineInput{
			{ProductID: "imac", Quantity: 1},
			{ProductID: "imac", Quantity: 3},
		},
	})
	if !result.Success {
		t.Fatalf("Expected success, got message %q", result.Message)
	}
	want := 1688.03 * 4
	if got := result.Order["totalAmount"].(float64); got != want {
		t.Errorf("Expected total %v, got %v", want, got)
	}
	// Customer identity defaults to the placeholder when omitted.
	if result.Order["customerEmail"] != "guest@example.com" || result.Order["customerName"] != "Guest" {
		t.Errorf("Expected placeholder identity, got %v / %v",
			result.Order["customerEmail"], result.Order["customerName"])
	}
}

func TestPlaceOrderEmptyItems(t *testing.T) {
	service, db := setupCheckoutTest(t)

	for _, input := range []Input{
		{},
		{CustomerEmail: "jane@example.com", Items: []LineInput{}},
	} {
		result := service.PlaceOrder(context.Background(), input)
		if result.Success {
			t.Error("Expected failure for a cart without items")
		}
		if result.Message != "items are required" {
			t.Errorf("Unexpected message: %q", result.Message)
		}
		if result.Order != nil {
			t.Error("Expected no order in the failure response")
		}
	}

	if n := countRows(t, db, &model.Order{}); n != 0 {
		t.Errorf("Expected no order rows to be written, found %d", n)
	}
}

func TestPlaceOrderLineValidation(t *testing.T) {
	service, db := setupCheckoutTest(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		line    LineInput
		message string
	}{
		{"Missing product id", LineInput{Quantity: 1}, "each item must have productId and quantity"},
		{"Zero quantity", LineInput{ProductID: "imac"}, "each item must have productId and quantity"},
		{"Unknown product", LineInput{ProductID: "ghost", Quantity: 1}, "product with ID ghost not found"},
		{"Out of stock", LineInput{ProductID: "iphone", Quantity: 1}, "product iPhone 12 Pro is out of stock"},
		{"No price rows", LineInput{ProductID: "unpriced", Quantity: 1}, "product Prototype has no price information"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := service.PlaceOrder(ctx, Input{Items: []LineInput{tc.line}})
			if result.Success {
				t.Fatal("Expected failure")
			}
			if result.Message != tc.message {
				t.Errorf("Expected message %q, got %q", tc.message, result.Message)
			}
		})
	}

	if n := countRows(t, db, &model.Order{}); n != 0 {
		t.Errorf("Expected validation failures to leave no order rows, found %d", n)
	}
}

func TestPlaceOrderRollsBackPartialOrders(t *testing.T) {
	service, db := setupCheckoutTest(t)

	// First line is valid, second fails: the transaction must roll back the
	// order row and the already-persisted first line.
	result := service.PlaceOrder(context.Background(), Input{
		Items: []LineInput{
			{ProductID: "imac", Quantity: 1},
			{ProductID: "ghost", Quantity: 1},
		},
	})
	if result.Success {
		t.Fatal("Expected failure")
	}
	if !strings.Contains(result.Message, "ghost") {
		t.Errorf("Expected the message to name the missing product id, got %q", result.Message)
	}

	if n := countRows(t, db, &model.Order{}); n != 0 {
		t.Errorf("Expected no order rows after rollback, found %d", n)
	}
	if n := countRows(t, db, &model.OrderItem{}); n != 0 {
		t.Errorf("Expected no order item rows after rollback, found %d", n)
	}
}

func TestPlaceOrderSelectedAttributes(t *testing.T) {
	service, db := setupCheckoutTest(t)
	ctx := context.Background()

	t.Run("Valid selection is stored verbatim", func(t *testing.T) {
		raw := `{"Capacity":"256GB","Color":"#44FF03"}`
		result := service.PlaceOrder(ctx, Input{
			Items: []LineInput{{ProductID: "imac", Quantity: 1, SelectedAttributes: raw}},
		})
		if !result.Success {
			t.Fatalf("Expected success, got message %q", result.Message)
		}

		var stored model.OrderItem
		if err := db.First(&stored).Error; err != nil {
			t.Fatalf("Failed to load order item: %v", err)
		}
		if stored.SelectedAttributes != raw {
			t.Errorf("Expected verbatim storage, got %q", stored.SelectedAttributes)
		}
	})

	t.Run("Value not in the set is rejected", func(t *testing.T) {
		result := service.PlaceOrder(ctx, Input{
			Items: []LineInput{{ProductID: "imac", Quantity: 1, SelectedAttributes: `{"Capacity":"1TB"}`}},
		})
		if result.Success {
			t.Fatal("Expected failure for a value missing from the set")
		}
	})

	t.Run("Unknown attribute name is rejected", func(t *testing.T) {
		result := service.PlaceOrder(ctx, Input{
			Items: []LineInput{{ProductID: "imac", Quantity: 1, SelectedAttributes: `{"Size":"M"}`}},
		})
		if result.Success {
			t.Fatal("Expected failure for an attribute the product does not have")
		}
		if !strings.Contains(result.Message, "Size") {
			t.Errorf("Expected the message to name the attribute, got %q", result.Message)
		}
	})

	t.Run("Swatch selection must be a hex code", func(t *testing.T) {
		result := service.PlaceOrder(ctx, Input{
			Items: []LineInput{{ProductID: "imac", Quantity: 1, SelectedAttributes: `{"Color":"green"}`}},
		})
		if result.Success {
			t.Fatal("Expected failure for a non-hex swatch value")
		}
	})

	t.Run("Malformed JSON is rejected", func(t *testing.T) {
		result := service.PlaceOrder(ctx, Input{
			Items: []LineInput{{ProductID: "imac", Quantity: 1, SelectedAttributes: `not-json`}},
		})
		if result.Success {
			t.Fatal("Expected failure for malformed selectedAttributes")
		}
	})
}
