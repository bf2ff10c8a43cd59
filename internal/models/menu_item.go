package models

// MenuItem is a read-only catalog entry shared by every user
type MenuItem struct {
	ID            uint     `gorm:"primaryKey" json:"id"`
	Name          string   `gorm:"not null" json:"name"`
	Description   string   `json:"description"`
	Price         float64  `gorm:"not null" json:"price"`
	OriginalPrice *float64 `json:"original_price"`
	Category      string   `gorm:"not null;index" json:"category"`
	ImageURL      string   `json:"image_url"`
	Rating        float64  `gorm:"default:4.5" json:"rating"`
	PrepTime      string   `gorm:"default:'15-20 min'" json:"prep_time"`
	IsSpicy       bool     `json:"is_spicy"`
	IsVeg         bool     `json:"is_veg"`
}

// MenuFilter narrows a menu listing. Empty fields are ignored.
type MenuFilter struct {
	Category string
	Search   string
}
