package model

import "time"

// Attribute set types. The type selects the behavior used for validation and
// display formatting (see behavior.go).
const (
	AttributeText   = "text"
	AttributeSwatch = "swatch"
	AttributeSelect = "select"
)

// AttributeSet is a named group of selectable attribute items belonging to
// one product, e.g. "Size" or "Color".
type AttributeSet struct {
	ID        uint      `gorm:"primaryKey;column:id"`
	ProductID string    `gorm:"column:product_id;size:255;index"`
	Name      string    `gorm:"column:name;size:255"`
	Type      string    `gorm:"column:type;size:16"`
	CreatedAt time.Time `gorm:"column:created_at"`

	// Items are loaded by the catalog loaders, not by gorm associations.
	Items []AttributeItem `gorm:"-"`
}

func (AttributeSet) TableName() string { return "attributes" }

func (AttributeSet) PrimaryKeyColumn() string { return "id" }

func (s AttributeSet) HasKey() bool { return s.ID != 0 }

// AsMap serializes the set into its public response shape. The set's name
// doubles as its public id, matching the source data structure.
func (s AttributeSet) AsMap() map[string]any {
	items := make([]any, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, item.AsMap())
	}
	return map[string]any{
		"id":         s.Name,
		"name":       s.Name,
		"type":       s.Type,
		"items":      items,
		"__typename": "AttributeSet",
	}
}

// AttributeItem is one selectable value of an attribute set. Value is the
// machine value used for equality and cart matching; ItemID is a stable
// external id distinct from the row id.
type AttributeItem struct {
	ID           uint      `gorm:"primaryKey;column:id"`
	AttributeID  uint      `gorm:"column:attribute_id;index"`
	DisplayValue string    `gorm:"column:display_value;size:255"`
	Value        string    `gorm:"column:value;size:255"`
	ItemID       string    `gorm:"column:item_id;size:255"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (AttributeItem) TableName() string { return "attribute_items" }

func (AttributeItem) PrimaryKeyColumn() string { return "id" }

func (i AttributeItem) HasKey() bool { return i.ID != 0 }

// AsMap serializes the item into its public response shape.
func (i AttributeItem) AsMap() map[string]any {
	return map[string]any{
		"id":           i.ItemID,
		"displayValue": i.DisplayValue,
		"value":        i.Value,
		"__typename":   "Attribute",
	}
}
