package models

import (
	"time"
)

// OTPCode is the pending one-time code for a phone number
type OTPCode struct {
	Phone     string    `gorm:"primaryKey;size:10"`
	Code      string    `gorm:"not null;size:4"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

func (OTPCode) TableName() string {
	return "otp_store"
}
