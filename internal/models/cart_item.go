package models

// CartItem is a (user, menu item) quantity pair. The pair is unique.
type CartItem struct {
	ID         uint   `gorm:"primaryKey" json:"-"`
	UserID     string `gorm:"not null;size:36;uniqueIndex:idx_cart_user_item" json:"-"`
	MenuItemID uint   `gorm:"not null;uniqueIndex:idx_cart_user_item" json:"menu_item_id"`
	Quantity   int    `gorm:"not null;default:1" json:"quantity"`
}

// CartRow is a cart entry joined with the live catalog price and labels
type CartRow struct {
	MenuItemID uint    `json:"menu_item_id"`
	Quantity   int     `json:"quantity"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	ImageURL   string  `json:"image_url"`
	Category   string  `json:"category"`
}
