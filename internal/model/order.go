package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses. Orders are created pending; nothing in this service moves
// them further along.
const StatusPending = "pending"

// Order is a placed checkout. TotalAmount is computed from the line items
// and written in a second update after they are persisted; it is never
// user-supplied.
type Order struct {
	ID            uint            `gorm:"primaryKey;column:id"`
	Reference     string          `gorm:"column:reference;size:36;uniqueIndex"`
	CustomerEmail string          `gorm:"column:customer_email;size:255"`
	CustomerName  string          `gorm:"column:customer_name;size:255"`
	TotalAmount   decimal.Decimal `gorm:"column:total_amount;type:decimal(12,2)"`
	Status        string          `gorm:"column:status;size:32"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at"`

	// Items are loaded explicitly, not by gorm associations.
	Items []OrderItem `gorm:"-"`
}

func (Order) TableName() string { return "orders" }

func (Order) PrimaryKeyColumn() string { return "id" }

func (o Order) HasKey() bool { return o.ID != 0 }

// CalculateTotal sums unit price times quantity over the loaded items.
func (o Order) CalculateTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// AsMap serializes the order with its loaded items into the public response
// shape.
func (o Order) AsMap() map[string]any {
	items := make([]any, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, item.AsMap())
	}
	return map[string]any{
		"id":            int64(o.ID),
		"reference":     o.Reference,
		"customerEmail": o.CustomerEmail,
		"customerName":  o.CustomerName,
		"totalAmount":   o.TotalAmount.InexactFloat64(),
		"status":        o.Status,
		"items":         items,
		"createdAt":     o.CreatedAt.UTC().Format(time.RFC3339),
		"updatedAt":     o.UpdatedAt.UTC().Format(time.RFC3339),
		"__typename":    "Order",
	}
}

// OrderItem is one line of an order. UnitPrice is a snapshot copied from the
// product's price at checkout time; later price changes never affect it.
// SelectedAttributes holds the customer's attribute selection as the verbatim
// JSON it arrived in.
type OrderItem struct {
	ID                 uint            `gorm:"primaryKey;column:id"`
	OrderID            uint            `gorm:"column:order_id;index"`
	ProductID          string          `gorm:"column:product_id;size:255"`
	Quantity           int             `gorm:"column:quantity"`
	UnitPrice          decimal.Decimal `gorm:"column:unit_price;type:decimal(12,2)"`
	SelectedAttributes string          `gorm:"column:selected_attributes;type:text"`
	CreatedAt          time.Time       `gorm:"column:created_at"`
}

func (OrderItem) TableName() string { return "order_items" }

func (OrderItem) PrimaryKeyColumn() string { return "id" }

func (i OrderItem) HasKey() bool { return i.ID != 0 }

// Subtotal is unit price times quantity.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// AsMap serializes the line into its public response shape.
func (i OrderItem) AsMap() map[string]any {
	return map[string]any{
		"id":                 int64(i.ID),
		"productId":          i.ProductID,
		"quantity":           i.Quantity,
		"unitPrice":          i.UnitPrice.InexactFloat64(),
		"selectedAttributes": i.SelectedAttributes,
		"__typename":         "OrderItem",
	}
}
