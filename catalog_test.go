package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/merchkit/catalog/internal/model"
)

func setupServiceTest(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	service, err := NewServiceWithConfig(db, ServiceConfig{ServiceName: "catalog-test"})
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}
	if err := service.AutoMigrate(); err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}

	seedServiceCatalog(t, db)
	return service
}

func seedServiceCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()

	categories := []model.Category{{Name: "all"}, {Name: "clothes"}, {Name: "tech"}}
	for i := range categories {
		if err := db.Create(&categories[i]).Error; err != nil {
			t.Fatalf("Failed to seed category: %v", err)
		}
	}

	products := []model.Product{
		{ID: "jacket", Name: "Jacket", InStock: true, CategoryID: categories[1].ID, Brand: "Canada Goose"},
		{ID: "imac", Name: "iMac 2021", InStock: true, CategoryID: categories[2].ID, Brand: "Apple"},
	}
	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			t.Fatalf("Failed to seed product: %v", err)
		}
	}

	prices := []model.Price{
		{ProductID: "jacket", Amount: decimal.NewFromFloat(518.47), CurrencyLabel: "USD", CurrencySymbol: "$"},
		{ProductID: "imac", Amount: decimal.NewFromFloat(1688.03), CurrencyLabel: "USD", CurrencySymbol: "$"},
	}
	for i := range prices {
		if err := db.Create(&prices[i]).Error; err != nil {
			t.Fatalf("Failed to seed price: %v", err)
		}
	}
}

func TestNewServiceWithConfigRequiresDB(t *testing.T) {
	if _, err := NewServiceWithConfig(nil, ServiceConfig{}); err == nil {
		t.Error("Expected an error for a nil database handle")
	}
}

func TestServiceCategories(t *testing.T) {
	service := setupServiceTest(t)

	categories := service.Categories(context.Background())
	if len(categories) != 3 {
		t.Fatalf("Expected 3 categories, got %d", len(categories))
	}
}

func TestServiceCategory(t *testing.T) {
	service := setupServiceTest(t)
	ctx := context.Background()

	name := "tech"
	category, err := service.Category(ctx, nil, &name)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if category["name"] != "tech" {
		t.Errorf("Expected tech, got %v", category["name"])
	}

	missing := "books"
	_, err = service.Category(ctx, nil, &missing)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestServiceProducts(t *testing.T) {
	service := setupServiceTest(t)
	ctx := context.Background()

	name := "tech"
	results, err := service.Products(ctx, ProductQuery{CategoryName: &name})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(results) != 1 || results[0]["id"] != "imac" {
		t.Errorf("Unexpected results: %v", results)
	}

	_, err = service.Products(ctx, ProductQuery{SortBy: "name; DROP TABLE products"})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation for a hostile sort field, got %v", err)
	}
}

func TestServiceProduct(t *testing.T) {
	service := setupServiceTest(t)
	ctx := context.Background()

	product, err := service.Product(ctx, "jacket")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if product["name"] != "Jacket" {
		t.Errorf("Unexpected product: %v", product)
	}

	_, err = service.Product(ctx, "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if !IsNotFound(err) {
		t.Error("Expected IsNotFound to report true")
	}
}

func TestServiceCreateOrder(t *testing.T) {
	service := setupServiceTest(t)

	result := service.CreateOrder(context.Background(), OrderInput{
		Items: []OrderLine{{ProductID: "jacket", Quantity: 3}},
	})
	if !result.Success {
		t.Fatalf("Expected success, got message %q", result.Message)
	}
	if got := result.Order["totalAmount"].(float64); got != 518.47*3 {
		t.Errorf("Unexpected total: %v", got)
	}

	result = service.CreateOrder(context.Background(), OrderInput{})
	if result.Success || result.Message != "items are required" {
		t.Errorf("Expected the empty-cart failure, got %+v", result)
	}
}

func TestServiceHTTP(t *testing.T) {
	service := setupServiceTest(t)
	server := httptest.NewServer(service)
	defer server.Close()

	body, err := json.Marshal(map[string]any{
		"query": `{ products(categoryName: "clothes") { id name prices { amount } } }`,
	})
	if err != nil {
		t.Fatalf("Failed to marshal request: %v", err)
	}

	resp, err := http.Post(server.URL+"/graphql", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var response struct {
		Data struct {
			Products []struct {
				ID     string `json:"id"`
				Name   string `json:"name"`
				Prices []struct {
					Amount float64 `json:"amount"`
				} `json:"prices"`
			} `json:"products"`
		} `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(response.Errors) > 0 {
		t.Fatalf("Unexpected errors: %v", response.Errors)
	}
	if len(response.Data.Products) != 1 || response.Data.Products[0].ID != "jacket" {
		t.Errorf("Unexpected products: %+v", response.Data.Products)
	}
	if response.Data.Products[0].Prices[0].Amount != 518.47 {
		t.Errorf("Unexpected price: %+v", response.Data.Products[0].Prices)
	}
}
