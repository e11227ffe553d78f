package model

import (
	"strings"
	"time"
)

// ProductKind tags the polymorphic product variant. The kind is derived from
// the owning category's name at load time; it adds presentation-only
// projections and the productType marker in the serialized shape, and never
// changes how the product persists.
type ProductKind string

const (
	KindGeneric  ProductKind = "generic"
	KindClothing ProductKind = "clothing"
	KindTech     ProductKind = "tech"
)

// KindForCategory maps a category name to the product kind: "clothes" and
// "tech" (case-insensitive) select their variants, anything else is generic.
func KindForCategory(name string) ProductKind {
	switch strings.ToLower(name) {
	case "clothes":
		return KindClothing
	case "tech":
		return KindTech
	default:
		return KindGeneric
	}
}

// Product is a catalog item. Its id is assigned externally by the import
// pipeline and is immutable; it is never generated by the store.
type Product struct {
	ID          string    `gorm:"primaryKey;column:id;size:255"`
	Name        string    `gorm:"column:name;size:255"`
	Description string    `gorm:"column:description;type:text"`
	InStock     bool      `gorm:"column:in_stock"`
	CategoryID  uint      `gorm:"column:category_id;index"`
	Brand       string    `gorm:"column:brand;size:255"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`

	// CategoryName is resolved by joining categories at load time.
	CategoryName string `gorm:"-"`
	// Kind is derived from CategoryName at load time.
	Kind ProductKind `gorm:"-"`

	// Loaded aggregates. Populated by the catalog loaders, not by gorm
	// associations.
	Gallery       []ProductImage `gorm:"-"`
	AttributeSets []AttributeSet `gorm:"-"`
	Prices        []Price        `gorm:"-"`
}

func (Product) TableName() string { return "products" }

func (Product) PrimaryKeyColumn() string { return "id" }

func (p Product) HasKey() bool { return p.ID != "" }

// ProductType returns the serialized productType tag for the variant.
func (p Product) ProductType() string {
	if p.Kind == "" {
		return string(KindGeneric)
	}
	return string(p.Kind)
}

// AttributeSetsNamed filters the loaded attribute sets by name. Presentation
// helper only; it never affects validation or persistence.
func (p Product) AttributeSetsNamed(names ...string) []AttributeSet {
	var matched []AttributeSet
	for _, set := range p.AttributeSets {
		for _, name := range names {
			if set.Name == name {
				matched = append(matched, set)
				break
			}
		}
	}
	return matched
}

// SizeAttributes returns the clothing size sets; nil for other kinds.
func (p Product) SizeAttributes() []AttributeSet {
	if p.Kind != KindClothing {
		return nil
	}
	return p.AttributeSetsNamed("Size")
}

// ColorAttributes returns the color sets for clothing and tech products.
func (p Product) ColorAttributes() []AttributeSet {
	if p.Kind != KindClothing && p.Kind != KindTech {
		return nil
	}
	return p.AttributeSetsNamed("Color")
}

// MaterialAttributes returns the clothing material sets; nil for other kinds.
func (p Product) MaterialAttributes() []AttributeSet {
	if p.Kind != KindClothing {
		return nil
	}
	return p.AttributeSetsNamed("Material")
}

// CapacityAttributes returns the tech capacity sets; nil for other kinds.
func (p Product) CapacityAttributes() []AttributeSet {
	if p.Kind != KindTech {
		return nil
	}
	return p.AttributeSetsNamed("Capacity")
}

// FeatureAttributes returns the tech feature toggle sets; nil for other kinds.
func (p Product) FeatureAttributes() []AttributeSet {
	if p.Kind != KindTech {
		return nil
	}
	return p.AttributeSetsNamed("With USB 3 ports", "Touch ID in keyboard", "Wireless")
}

const techWarrantyInfo = "Standard 1-year warranty"

// AsMap serializes the product with its loaded aggregates into the public
// response shape. Serialization reads only; calling it repeatedly on the
// same loaded product yields identical structures.
func (p Product) AsMap() map[string]any {
	gallery := make([]any, 0, len(p.Gallery))
	for _, image := range p.Gallery {
		gallery = append(gallery, image.URL)
	}

	attributes := make([]any, 0, len(p.AttributeSets))
	for _, set := range p.AttributeSets {
		attributes = append(attributes, set.AsMap())
	}

	prices := make([]any, 0, len(p.Prices))
	for _, price := range p.Prices {
		prices = append(prices, price.AsMap())
	}

	out := map[string]any{
		"id":          p.ID,
		"name":        p.Name,
		"inStock":     p.InStock,
		"gallery":     gallery,
		"description": p.Description,
		"category":    p.CategoryName,
		"attributes":  attributes,
		"prices":      prices,
		"brand":       p.Brand,
		"productType": p.ProductType(),
		"__typename":  "Product",
	}
	if p.Kind == KindTech {
		out["warrantyInfo"] = techWarrantyInfo
	}
	return out
}

// ProductImage is one gallery entry, ordered by sort_order.
type ProductImage struct {
	ID        uint   `gorm:"primaryKey;column:id"`
	ProductID string `gorm:"column:product_id;size:255;index"`
	URL       string `gorm:"column:url;type:text"`
	SortOrder int    `gorm:"column:sort_order"`
}

func (ProductImage) TableName() string { return "product_images" }

func (ProductImage) PrimaryKeyColumn() string { return "id" }

func (i ProductImage) HasKey() bool { return i.ID != 0 }
