package models

import (
	"time"
)

// Order is an immutable snapshot of a cart at placement time. Only the
// status fields change after creation.
type Order struct {
	ID           string      `gorm:"primaryKey;size:36" json:"id"`
	UserID       string      `gorm:"not null;size:36;index" json:"user_id"`
	Subtotal     float64     `gorm:"not null" json:"subtotal"`
	Tax          float64     `gorm:"not null" json:"tax"`
	Total        float64     `gorm:"not null" json:"total"`
	Status       OrderStatus `gorm:"not null;size:32;default:'placed'" json:"status"`
	ItemsSummary string      `json:"items_summary"`
	NextStatusAt *time.Time  `gorm:"index" json:"-"`
	CreatedAt    time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`

	Items    []OrderLine `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Customer *User       `gorm:"foreignKey:UserID" json:"customer,omitempty"`
}

// OrderLine is the price and name of one menu item as it was when the order was placed
type OrderLine struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	OrderID    string  `gorm:"not null;size:36;index" json:"order_id"`
	MenuItemID uint    `gorm:"not null" json:"menu_item_id"`
	Name       string  `gorm:"not null" json:"name"`
	Price      float64 `gorm:"not null" json:"price"`
	Quantity   int     `gorm:"not null" json:"quantity"`
}

func (OrderLine) TableName() string {
	return "order_items"
}
