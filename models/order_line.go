package models

import (
	"github.com/shopspring/decimal"
)

// OrderLine keeps a snapshot of the menu item at order time. MenuItemID is a
// plain reference: the item may later change or be deleted.
type OrderLine struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	OrderID      uint            `gorm:"not null;index" json:"order_id"`
	MenuItemID   uint            `gorm:"not null" json:"menu_item_id"`
	MenuItemName string          `gorm:"type:varchar(255);not null" json:"menu_item_name"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Subtotal     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
}

// NewOrderLine snapshots the item name and current price for quantity units.
func NewOrderLine(item MenuItem, quantity int) OrderLine {
	return OrderLine{
		MenuItemID:   item.ID,
		MenuItemName: item.Name,
		Quantity:     quantity,
		UnitPrice:    item.Price,
		Subtotal:     item.Price.Mul(decimal.NewFromInt(int64(quantity))),
	}
}
