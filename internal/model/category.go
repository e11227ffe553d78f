package model

import (
	"time"

	"github.com/cespare/xxhash/v2"
)

// Category is a named grouping of products. Products reference it by
// category_id; the category does not own them.
type Category struct {
	ID        uint      `gorm:"primaryKey;column:id"`
	Name      string    `gorm:"column:name;size:255;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at"`

	// Synthesized marks categories fabricated in memory when the store has
	// no rows (the fixed fallback list). Such categories have no durable id.
	Synthesized bool `gorm:"-"`
}

func (Category) TableName() string { return "categories" }

func (Category) PrimaryKeyColumn() string { return "id" }

func (c Category) HasKey() bool { return c.ID != 0 }

// EffectiveID returns the stored id, or for synthesized categories a
// deterministic hash of the name. The hashed form exists only to satisfy the
// non-null id contract of the API and must not be treated as durable.
func (c Category) EffectiveID() int64 {
	if c.ID != 0 {
		return int64(c.ID)
	}
	return int64(xxhash.Sum64String(c.Name) & 0x7fffffff)
}

// AsMap serializes the category into its public response shape.
func (c Category) AsMap() map[string]any {
	return map[string]any{
		"id":         c.EffectiveID(),
		"name":       c.Name,
		"__typename": "Category",
	}
}

// FallbackCategories is the fixed list served when the store holds no
// categories or cannot be reached, so the API never returns an empty or
// broken category list.
func FallbackCategories() []Category {
	return []Category{
		{Name: "all", Synthesized: true},
		{Name: "clothes", Synthesized: true},
		{Name: "tech", Synthesized: true},
	}
}
