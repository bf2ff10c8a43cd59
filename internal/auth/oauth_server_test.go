package auth

import (
	"context"
	"testing"
	"time"

	"github.com/franciscosanchezn/gin-mexitoes-api/internal/database"
	"github.com/franciscosanchezn/gin-mexitoes-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "test-jwt-secret-key-32-characters"

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := database.NewInMemory()
	require.NoError(t, err)
	return db
}

func createClient(t *testing.T, db *gorm.DB, id, secret, scopes string) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.OAuthClient{
		ID:         id,
		Secret:     string(hashed),
		Name:       "ops dashboard",
		Scopes:     scopes,
		GrantTypes: "client_credentials",
	}).Error)
}

func TestOAuthServerInitialization(t *testing.T) {
	oauthService := NewOAuthService(setupTestDB(t), testSecret, time.Hour)
	assert.NotNil(t, oauthService)
	assert.NotNil(t, oauthService.GetServer())
}

func TestIssueClientTokenStoresToken(t *testing.T) {
	db := setupTestDB(t)
	oauthService := NewOAuthService(db, testSecret, time.Hour)
	createClient(t, db, "ops", "s3cret", models.ScopeOrdersAdmin)

	ti, err := oauthService.IssueClientToken(context.Background(), "ops", "s3cret", "")
	require.NoError(t, err)
	assert.Equal(t, models.ScopeOrdersAdmin, ti.GetScope())
	assert.Equal(t, time.Hour, ti.GetAccessExpiresIn())

	var stored models.OAuthToken
	require.NoError(t, db.Where("access_token = ?", ti.GetAccess()).First(&stored).Error)
	assert.Equal(t, "ops", stored.ClientID)

	// The access token is a JWT signed with the configured secret
	parsed, err := jwt.Parse(ti.GetAccess(), func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "ops", claims["sub"])
	assert.Equal(t, "client", claims["typ"])
	assert.Equal(t, models.ScopeOrdersAdmin, claims["scope"])
}

func TestIssueClientTokenWrongSecret(t *testing.T) {
	db := setupTestDB(t)
	oauthService := NewOAuthService(db, testSecret, time.Hour)
	createClient(t, db, "ops", "s3cret", models.ScopeOrdersAdmin)

	_, err := oauthService.IssueClientToken(context.Background(), "ops", "guess", "")
	assert.Error(t, err)
}

func TestIssueClientTokenRejectsUnregisteredScope(t *testing.T) {
	db := setupTestDB(t)
	oauthService := NewOAuthService(db, testSecret, time.Hour)
	createClient(t, db, "reader", "s3cret", "menu:read")

	_, err := oauthService.IssueClientToken(context.Background(), "reader", "s3cret", models.ScopeOrdersAdmin)
	assert.ErrorIs(t, err, ErrInsufficientScope)
}

func TestValidateAdminToken(t *testing.T) {
	db := setupTestDB(t)
	oauthService := NewOAuthService(db, testSecret, time.Hour)
	createClient(t, db, "ops", "s3cret", models.ScopeOrdersAdmin)
	createClient(t, db, "reader", "s3cret", "menu:read")
	ctx := context.Background()

	t.Run("admin scope accepted", func(t *testing.T) {
		ti, err := oauthService.IssueClientToken(ctx, "ops", "s3cret", "")
		require.NoError(t, err)

		clientID, err := oauthService.ValidateAdminToken(ctx, ti.GetAccess())
		require.NoError(t, err)
		assert.Equal(t, "ops", clientID)
	})

	t.Run("missing scope rejected", func(t *testing.T) {
		ti, err := oauthService.IssueClientToken(ctx, "reader", "s3cret", "")
		require.NoError(t, err)

		_, err = oauthService.ValidateAdminToken(ctx, ti.GetAccess())
		assert.ErrorIs(t, err, ErrInsufficientScope)
	})

	t.Run("unknown token rejected", func(t *testing.T) {
		_, err := oauthService.ValidateAdminToken(ctx, "not-a-token")
		assert.Error(t, err)
	})

	t.Run("empty token rejected", func(t *testing.T) {
		_, err := oauthService.ValidateAdminToken(ctx, "")
		assert.Error(t, err)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		created := time.Now().Add(-2 * time.Hour)
		require.NoError(t, db.Create(&models.OAuthToken{
			ClientID:    "ops",
			AccessToken: "stale-token",
			Scopes:      models.ScopeOrdersAdmin,
			CreatedAt:   created,
			ExpiresAt:   created.Add(time.Hour),
		}).Error)

		_, err := oauthService.ValidateAdminToken(ctx, "stale-token")
		assert.Error(t, err)
	})
}

func TestGormTokenStoreGetByAccess(t *testing.T) {
	db := setupTestDB(t)
	store := NewGormTokenStore(db)
	created := time.Now().Add(-10 * time.Minute).Truncate(time.Second)
	require.NoError(t, db.Create(&models.OAuthToken{
		ClientID:    "ops",
		AccessToken: "abc",
		Scopes:      models.ScopeOrdersAdmin,
		CreatedAt:   created,
		ExpiresAt:   created.Add(time.Hour),
	}).Error)

	ti, err := store.GetByAccess(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "ops", ti.GetClientID())
	assert.True(t, ti.GetAccessCreateAt().Equal(created))
	assert.Equal(t, time.Hour, ti.GetAccessExpiresIn())

	require.NoError(t, store.RemoveByAccess(context.Background(), "abc"))
	_, err = store.GetByAccess(context.Background(), "abc")
	assert.Error(t, err)
}
