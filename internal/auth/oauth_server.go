package auth

import (
	"time"

	internalmodels "github.com/franciscosanchezn/gin-mexitoes-api/internal/models"
	"github.com/go-oauth2/oauth2/v4"
	"github.com/go-oauth2/oauth2/v4/errors"
	"github.com/go-oauth2/oauth2/v4/manage"
	"github.com/go-oauth2/oauth2/v4/server"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

// OAuthService issues and validates access tokens for admin clients
type OAuthService struct {
	server  *server.Server
	manager *manage.Manager
	db      *gorm.DB
}

func NewOAuthService(db *gorm.DB, jwtSecret string, tokenTTL time.Duration) *OAuthService {
	manager := manage.NewDefaultManager()
	manager.SetClientTokenCfg(&manage.Config{AccessTokenExp: tokenTTL})

	// Use JWT for access tokens
	manager.MapAccessGenerate(NewClientJWTAccessGenerate([]byte(jwtSecret), jwt.SigningMethodHS512))

	manager.MustTokenStorage(NewGormTokenStore(db), nil)
	manager.MapClientStorage(NewGormClientStore(db))

	o := &OAuthService{
		manager: manager,
		db:      db,
	}

	srv := server.NewDefaultServer(manager)
	srv.SetAllowedGrantType(oauth2.ClientCredentials)
	srv.SetClientInfoHandler(server.ClientFormHandler)
	srv.SetClientScopeHandler(o.clientScopeHandler)
	srv.SetInternalErrorHandler(func(err error) *errors.Response {
		log.WithError(err).Error("OAuth2 internal error")
		return nil
	})
	o.server = srv

	return o
}

func (o *OAuthService) GetServer() *server.Server {
	return o.server
}

// clientScopeHandler grants the client's registered scopes when none are
// requested, and rejects scopes the client was not registered for.
func (o *OAuthService) clientScopeHandler(tgr *oauth2.TokenGenerateRequest) (bool, error) {
	var client internalmodels.OAuthClient
	if err := o.db.Where("id = ?", tgr.ClientID).First(&client).Error; err != nil {
		return false, errors.ErrInvalidClient
	}
	if tgr.Scope == "" {
		tgr.Scope = client.Scopes
	}
	return client.AllowsScopes(tgr.Scope), nil
}
