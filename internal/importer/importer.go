// Package importer loads a catalog data file into the store. The whole
// import runs inside one transaction: a malformed product or a dangling
// category reference rolls everything back.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/merchkit/catalog/internal/model"
)

// File is the envelope of a catalog data file.
type File struct {
	Data Payload `json:"data"`
}

// Payload carries the categories and products to import.
type Payload struct {
	Categories []CategoryData `json:"categories"`
	Products   []ProductData  `json:"products"`
}

// CategoryData is one category entry.
type CategoryData struct {
	Name string `json:"name"`
}

// ProductData is one product entry with its nested gallery, attribute sets,
// and prices.
type ProductData struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	InStock     bool            `json:"inStock"`
	Gallery     []string        `json:"gallery"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Attributes  []AttributeData `json:"attributes"`
	Prices      []PriceData     `json:"prices"`
	Brand       string          `json:"brand"`
}

// AttributeData is one attribute set entry.
type AttributeData struct {
	Name  string              `json:"name"`
	Type  string              `json:"type"`
	Items []AttributeItemData `json:"items"`
}

// AttributeItemData is one selectable attribute value.
type AttributeItemData struct {
	DisplayValue string `json:"displayValue"`
	Value        string `json:"value"`
	ID           string `json:"id"`
}

// PriceData is one price entry.
type PriceData struct {
	Amount   float64 `json:"amount"`
	Currency struct {
		Label  string `json:"label"`
		Symbol string `json:"symbol"`
	} `json:"currency"`
}

// Summary reports what an import wrote.
type Summary struct {
	Categories int
	Products   int
}

// Importer writes catalog data files into the store.
type Importer struct {
	db     *gorm.DB
	logger *slog.Logger
}

// New creates an importer. A nil logger falls back to slog.Default().
func New(db *gorm.DB, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{db: db, logger: logger}
}

// Run decodes the data file and imports it. When replace is true, existing
// catalog rows are deleted first (orders are never touched).
func (im *Importer) Run(ctx context.Context, r io.Reader, replace bool) (Summary, error) {
	var file File
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return Summary{}, fmt.Errorf("importer: invalid data file: %w", err)
	}
	if len(file.Data.Categories) == 0 && len(file.Data.Products) == 0 {
		return Summary{}, fmt.Errorf("importer: data file holds no categories or products")
	}
	return im.Import(ctx, file.Data, replace)
}

// Import writes the payload inside one transaction.
func (im *Importer) Import(ctx context.Context, payload Payload, replace bool) (Summary, error) {
	var summary Summary

	err := im.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if replace {
			if err := clearCatalog(tx); err != nil {
				return err
			}
		}

		categoryIDs := make(map[string]uint, len(payload.Categories))
		for _, data := range payload.Categories {
			category := model.Category{Name: data.Name}
			if err := tx.Create(&category).Error; err != nil {
				return fmt.Errorf("importer: category %s: %w", data.Name, err)
			}
			categoryIDs[category.Name] = category.ID
			summary.Categories++
		}

		for _, data := range payload.Products {
			categoryID, ok := categoryIDs[data.Category]
			if !ok {
				return fmt.Errorf("importer: product %s references unknown category %s", data.ID, data.Category)
			}

			product := model.Product{
				ID:          data.ID,
				Name:        data.Name,
				Description: data.Description,
				InStock:     data.InStock,
				CategoryID:  categoryID,
				Brand:       data.Brand,
			}
			if err := tx.Create(&product).Error; err != nil {
				return fmt.Errorf("importer: product %s: %w", data.ID, err)
			}

			for i, url := range data.Gallery {
				image := model.ProductImage{ProductID: product.ID, URL: url, SortOrder: i}
				if err := tx.Create(&image).Error; err != nil {
					return fmt.Errorf("importer: product %s gallery: %w", data.ID, err)
				}
			}

			for _, attr := range data.Attributes {
				set := model.AttributeSet{ProductID: product.ID, Name: attr.Name, Type: attr.Type}
				if err := tx.Create(&set).Error; err != nil {
					return fmt.Errorf("importer: product %s attribute %s: %w", data.ID, attr.Name, err)
				}
				for _, item := range attr.Items {
					row := model.AttributeItem{
						AttributeID:  set.ID,
						DisplayValue: item.DisplayValue,
						Value:        item.Value,
						ItemID:       item.ID,
					}
					if err := tx.Create(&row).Error; err != nil {
						return fmt.Errorf("importer: product %s attribute item %s: %w", data.ID, item.ID, err)
					}
				}
			}

			for _, price := range data.Prices {
				row := model.Price{
					ProductID:      product.ID,
					Amount:         decimal.NewFromFloat(price.Amount),
					CurrencyLabel:  price.Currency.Label,
					CurrencySymbol: price.Currency.Symbol,
				}
				if err := tx.Create(&row).Error; err != nil {
					return fmt.Errorf("importer: product %s price: %w", data.ID, err)
				}
			}

			summary.Products++
		}

		return nil
	})
	if err != nil {
		return Summary{}, err
	}

	im.logger.Info("catalog import complete",
		"categories", summary.Categories,
		"products", summary.Products)
	return summary, nil
}

func clearCatalog(tx *gorm.DB) error {
	// Child tables first; session-level foreign key toggles are not portable
	// across the supported drivers.
	for _, table := range []string{"attribute_items", "attributes", "prices", "product_images", "products", "categories"} {
		if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("importer: clearing %s: %w", table, err)
		}
	}
	return nil
}
