package models

import (
	"time"
)

// OAuthToken records an access token issued to an admin client
type OAuthToken struct {
	ID          uint   `gorm:"primaryKey"`
	ClientID    string `gorm:"not null;index"`
	AccessToken string `gorm:"uniqueIndex;not null"`
	Scopes      string
	ExpiresAt   time.Time `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (OAuthToken) TableName() string {
	return "oauth_tokens"
}
