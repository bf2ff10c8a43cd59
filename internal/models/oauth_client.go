package models

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ScopeOrdersAdmin allows reading every order and overriding order status
const ScopeOrdersAdmin = "orders:admin"

// OAuthClient is an operator credential for the admin surface.
// It satisfies oauth2.ClientInfo and oauth2.ClientPasswordVerifier.
type OAuthClient struct {
	ID         string `gorm:"primaryKey"`
	Secret     string `gorm:"not null"` // bcrypt hash
	Name       string
	Domain     string
	Scopes     string // Space-separated list of allowed scopes
	GrantTypes string // Space-separated list, only "client_credentials" is served
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (OAuthClient) TableName() string {
	return "oauth_clients"
}

func (c *OAuthClient) GetID() string     { return c.ID }
func (c *OAuthClient) GetSecret() string { return c.Secret }
func (c *OAuthClient) GetDomain() string { return c.Domain }
func (c *OAuthClient) IsPublic() bool    { return false }
func (c *OAuthClient) GetUserID() string { return "" }

// VerifyPassword compares a plain secret against the stored bcrypt hash
func (c *OAuthClient) VerifyPassword(secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(c.Secret), []byte(secret)) == nil
}

// AllowsScopes reports whether every space-separated scope in requested is
// granted to the client.
func (c *OAuthClient) AllowsScopes(requested string) bool {
	allowed := make(map[string]bool)
	for _, s := range strings.Fields(c.Scopes) {
		allowed[s] = true
	}
	for _, s := range strings.Fields(requested) {
		if !allowed[s] {
			return false
		}
	}
	return true
}
