package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/franciscosanchezn/gin-mexitoes-api/internal/auth"
	"github.com/franciscosanchezn/gin-mexitoes-api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

// Context keys set by the auth middlewares
const (
	ContextUserID   = "userID"
	ContextClientID = "clientID"
)

// SessionVerifier validates customer session tokens
type SessionVerifier interface {
	Verify(token string) (*auth.SessionClaims, error)
}

// AdminTokenValidator validates admin access tokens and returns the client id
type AdminTokenValidator interface {
	ValidateAdminToken(ctx context.Context, token string) (string, error)
}

// SessionAuth requires a valid customer session token and stores the user id
// in the context under ContextUserID.
func SessionAuth(verifier SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			return
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			log.WithError(err).WithField("path", c.Request.URL.Path).Debug("Session token rejected")
			abortWithError(c, http.StatusUnauthorized, models.ErrUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Next()
	}
}

// RequireAdmin requires an OAuth2 access token carrying the orders:admin scope
func RequireAdmin(validator AdminTokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			return
		}

		clientID, err := validator.ValidateAdminToken(c.Request.Context(), token)
		if errors.Is(err, auth.ErrInsufficientScope) {
			abortWithError(c, http.StatusForbidden, models.ErrForbidden, "Admin scope required")
			return
		}
		if err != nil {
			log.WithError(err).WithField("path", c.Request.URL.Path).Debug("Admin token rejected")
			abortWithError(c, http.StatusUnauthorized, models.ErrUnauthorized, "Invalid or expired admin token")
			return
		}

		c.Set(ContextClientID, clientID)
		c.Next()
	}
}

// UserID returns the session user set by SessionAuth
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

// bearerToken extracts the token from the Authorization header, aborting the
// request when it is absent or malformed.
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		abortWithError(c, http.StatusUnauthorized, models.ErrUnauthorized, "No token provided")
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		abortWithError(c, http.StatusUnauthorized, models.ErrUnauthorized, "Authorization header must use Bearer scheme")
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		abortWithError(c, http.StatusUnauthorized, models.ErrUnauthorized, "Bearer token is empty")
		return "", false
	}
	return token, true
}

func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, models.NewAPIError(code, message))
}
