package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminClientEndpoints(t *testing.T) {
	s := newTestServer(t)
	admin := s.adminToken(t)

	w := s.do(t, http.MethodPost, "/api/admin/clients", admin, gin.H{"name": "kitchen display"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ClientID     string `json:"client_id"`
		ClientSecret string `json:"client_secret"`
	}
	decode(t, w, &created)
	require.NotEmpty(t, created.ClientSecret)

	// The new client can obtain a token through the token endpoint
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {created.ClientID},
		"client_secret": {created.ClientSecret},
	}
	req := httptest.NewRequest(http.MethodPost, "/api/oauth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	tokenResp := httptest.NewRecorder()
	s.router.ServeHTTP(tokenResp, req)
	require.Equal(t, http.StatusOK, tokenResp.Code, tokenResp.Body.String())
	assert.Contains(t, tokenResp.Body.String(), "access_token")

	w = s.do(t, http.MethodGet, "/api/admin/clients", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "kitchen display")
	assert.NotContains(t, w.Body.String(), created.ClientSecret)

	w = s.do(t, http.MethodDelete, "/api/admin/clients/"+created.ClientID, admin, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = s.do(t, http.MethodDelete, "/api/admin/clients/"+created.ClientID, admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, "/api/admin/clients", admin, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/health", "/api/health"} {
		w := s.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"ok"`)
	}
}

type downDB struct{}

func (downDB) PingContext(context.Context) error { return errors.New("connection refused") }

func TestHealthDatabaseDown(t *testing.T) {
	router := gin.New()
	router.GET("/health", NewHealthController(downDB{}).HealthCheck)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"down"`)
}
