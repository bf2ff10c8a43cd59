package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/franciscosanchezn/gin-mexitoes-api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/go-oauth2/oauth2/v4"
	oautherrors "github.com/go-oauth2/oauth2/v4/errors"
)

var ErrInsufficientScope = errors.New("token does not carry the orders:admin scope")

// HandleToken serves the client_credentials token endpoint
// @Summary Admin token endpoint
// @Description Obtain an admin access token with the client_credentials grant
// @Tags OAuth2
// @Accept application/x-www-form-urlencoded
// @Produce json
// @Param grant_type formData string true "Must be client_credentials"
// @Param client_id formData string true "Client ID"
// @Param client_secret formData string true "Client Secret"
// @Param scope formData string false "Requested scope, defaults to the client's scopes"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /oauth/token [post]
func (o *OAuthService) HandleToken(c *gin.Context) {
	if grantType := c.PostForm("grant_type"); grantType != oauth2.ClientCredentials.String() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":             oautherrors.ErrUnsupportedGrantType.Error(),
			"error_description": oautherrors.Descriptions[oautherrors.ErrUnsupportedGrantType],
		})
		return
	}
	if err := o.server.HandleTokenRequest(c.Writer, c.Request); err != nil {
		log.WithError(err).Warn("Token request failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

// IssueClientToken generates a token for a client without going through HTTP
func (o *OAuthService) IssueClientToken(ctx context.Context, clientID, clientSecret, scope string) (oauth2.TokenInfo, error) {
	tgr := &oauth2.TokenGenerateRequest{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Scope:        scope,
	}
	allowed, err := o.clientScopeHandler(tgr)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrInsufficientScope
	}
	return o.manager.GenerateAccessToken(ctx, oauth2.ClientCredentials, tgr)
}

// ValidateAdminToken loads a stored access token, checks its expiry and
// requires the orders:admin scope. It returns the owning client id.
func (o *OAuthService) ValidateAdminToken(ctx context.Context, access string) (string, error) {
	ti, err := o.manager.LoadAccessToken(ctx, access)
	if err != nil {
		return "", err
	}
	for _, scope := range strings.Fields(ti.GetScope()) {
		if scope == models.ScopeOrdersAdmin {
			return ti.GetClientID(), nil
		}
	}
	return "", ErrInsufficientScope
}
