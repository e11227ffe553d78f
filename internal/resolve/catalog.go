// Package resolve implements the read side of the catalog: entity lookups,
// list filtering and sorting, and assembly of a product's nested gallery,
// attributes, prices, and category into the public response shape.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/merchkit/catalog/internal/model"
	"github.com/merchkit/catalog/internal/store"
)

var columnPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ErrInvalidFilter marks product queries carrying an illegal condition or
// sort term. Distinguishes caller mistakes from store failures.
var ErrInvalidFilter = errors.New("resolve: invalid filter")

// Catalog provides access to the catalog entity graph. Both the read-path
// resolver and the checkout transaction sit on top of it.
type Catalog struct {
	db         *gorm.DB
	categories *store.Repository[model.Category]
	images     *store.Repository[model.ProductImage]
	sets       *store.Repository[model.AttributeSet]
	items      *store.Repository[model.AttributeItem]
	prices     *store.Repository[model.Price]
}

// NewCatalog creates a catalog bound to the given connection.
func NewCatalog(db *gorm.DB) *Catalog {
	return &Catalog{
		db:         db,
		categories: store.NewRepository[model.Category](db),
		images:     store.NewRepository[model.ProductImage](db),
		sets:       store.NewRepository[model.AttributeSet](db),
		items:      store.NewRepository[model.AttributeItem](db),
		prices:     store.NewRepository[model.Price](db),
	}
}

// WithTx returns a catalog running against the given transaction handle.
func (c *Catalog) WithTx(tx *gorm.DB) *Catalog {
	return NewCatalog(tx)
}

// Categories returns all stored categories.
func (c *Catalog) Categories(ctx context.Context) ([]model.Category, error) {
	return c.categories.FindAll(ctx, nil, nil, 0)
}

// CategoryByID returns the category with the given id, or nil if absent.
func (c *Catalog) CategoryByID(ctx context.Context, id int) (*model.Category, error) {
	return c.categories.FindByID(ctx, id)
}

// CategoryByName returns the first category with the given name, or nil.
func (c *Catalog) CategoryByName(ctx context.Context, name string) (*model.Category, error) {
	matches, err := c.categories.FindAll(ctx, map[string]any{"name": name}, nil, 1)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return &matches[0], nil
}

// productRow carries one joined products+categories row.
type productRow struct {
	model.Product `gorm:"embedded"`
	CategoryName  string `gorm:"column:category_name"`
}

func (row productRow) toProduct() model.Product {
	product := row.Product
	product.CategoryName = row.CategoryName
	product.Kind = model.KindForCategory(row.CategoryName)
	return product
}

// ProductByID joins the product with its category to resolve the variant
// before returning it. A product whose row does not join (missing product or
// dangling category reference) is absent, not an error.
func (c *Catalog) ProductByID(ctx context.Context, id string) (*model.Product, error) {
	var row productRow
	err := c.db.WithContext(ctx).
		Table("products").
		Select("products.*, categories.name AS category_name").
		Joins("JOIN categories ON categories.id = products.category_id").
		Where("products.id = ?", id).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	product := row.toProduct()
	return &product, nil
}

// FindProducts performs the join-based bulk lookup: equality conditions on
// product columns, optional ordering, optional row cap. Each row is annotated
// with its resolved category name before variant dispatch.
func (c *Catalog) FindProducts(ctx context.Context, conditions map[string]any, orderBy []store.Sort, limit int) ([]model.Product, error) {
	tx := c.db.WithContext(ctx).
		Table("products").
		Select("products.*, categories.name AS category_name").
		Joins("JOIN categories ON categories.id = products.category_id")

	for field, value := range conditions {
		if !columnPattern.MatchString(field) {
			return nil, fmt.Errorf("%w: condition field %q", ErrInvalidFilter, field)
		}
		tx = tx.Where(fmt.Sprintf("products.%s = ?", field), value)
	}

	for _, sort := range orderBy {
		if !columnPattern.MatchString(sort.Field) {
			return nil, fmt.Errorf("%w: sort field %q", ErrInvalidFilter, sort.Field)
		}
		direction := strings.ToUpper(strings.TrimSpace(sort.Direction))
		if direction == "" {
			direction = "ASC"
		}
		if direction != "ASC" && direction != "DESC" {
			return nil, fmt.Errorf("%w: sort direction %q", ErrInvalidFilter, sort.Direction)
		}
		tx = tx.Order("products." + sort.Field + " " + direction)
	}

	if limit > 0 {
		tx = tx.Limit(limit)
	}

	var rows []productRow
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}

	products := make([]model.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.toProduct())
	}
	return products, nil
}

// GalleryFor returns the product's images ordered by sort_order.
func (c *Catalog) GalleryFor(ctx context.Context, productID string) ([]model.ProductImage, error) {
	return c.images.FindAll(ctx,
		map[string]any{"product_id": productID},
		[]store.Sort{{Field: "sort_order", Direction: "ASC"}},
		0)
}

// AttributeSetsFor returns the product's attribute sets with their items
// loaded in item-id order.
func (c *Catalog) AttributeSetsFor(ctx context.Context, productID string) ([]model.AttributeSet, error) {
	sets, err := c.sets.FindAll(ctx, map[string]any{"product_id": productID}, nil, 0)
	if err != nil {
		return nil, err
	}
	for i := range sets {
		items, err := c.items.FindAll(ctx,
			map[string]any{"attribute_id": sets[i].ID},
			[]store.Sort{{Field: "id", Direction: "ASC"}},
			0)
		if err != nil {
			return nil, err
		}
		sets[i].Items = items
	}
	return sets, nil
}

// PricesFor returns the product's price rows. The first row is the
// authoritative unit price on the checkout path.
func (c *Catalog) PricesFor(ctx context.Context, productID string) ([]model.Price, error) {
	return c.prices.FindAll(ctx,
		map[string]any{"product_id": productID},
		[]store.Sort{{Field: "id", Direction: "ASC"}},
		0)
}

// Load fills the product's gallery, attribute sets, and prices.
func (c *Catalog) Load(ctx context.Context, product *model.Product) error {
	gallery, err := c.GalleryFor(ctx, product.ID)
	if err != nil {
		return err
	}
	sets, err := c.AttributeSetsFor(ctx, product.ID)
	if err != nil {
		return err
	}
	prices, err := c.PricesFor(ctx, product.ID)
	if err != nil {
		return err
	}
	product.Gallery = gallery
	product.AttributeSets = sets
	product.Prices = prices
	return nil
}
