package models

import (
	"time"
)

// DefaultLoyaltyTier is assigned to every user created through OTP login
const DefaultLoyaltyTier = "Standard"

// User is a customer identified by phone number
type User struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"not null;default:''" json:"name"`
	// Phone is unique when set, see database.Migrate
	Phone       string    `gorm:"default:''" json:"phone"`
	Email       *string   `gorm:"uniqueIndex" json:"email"`
	Address     string    `gorm:"default:''" json:"address"`
	LoyaltyTier string    `gorm:"default:'Standard'" json:"loyalty_tier"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
