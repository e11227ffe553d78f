package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Price is one currency row for a product. A product may carry several; the
// checkout path treats the first row returned as the authoritative unit
// price.
type Price struct {
	ID             uint            `gorm:"primaryKey;column:id"`
	ProductID      string          `gorm:"column:product_id;size:255;index"`
	Amount         decimal.Decimal `gorm:"column:amount;type:decimal(12,2)"`
	CurrencyLabel  string          `gorm:"column:currency_label;size:8"`
	CurrencySymbol string          `gorm:"column:currency_symbol;size:8"`
	CreatedAt      time.Time       `gorm:"column:created_at"`
}

func (Price) TableName() string { return "prices" }

func (Price) PrimaryKeyColumn() string { return "id" }

func (p Price) HasKey() bool { return p.ID != 0 }

// AsMap serializes the price into its public response shape.
func (p Price) AsMap() map[string]any {
	return map[string]any{
		"amount": p.Amount.InexactFloat64(),
		"currency": map[string]any{
			"label":  p.CurrencyLabel,
			"symbol": p.CurrencySymbol,
		},
		"__typename": "Price",
	}
}
