package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/franciscosanchezn/gin-mexitoes-api/internal/auth"
	"github.com/franciscosanchezn/gin-mexitoes-api/internal/database"
	"github.com/franciscosanchezn/gin-mexitoes-api/internal/events"
	"github.com/franciscosanchezn/gin-mexitoes-api/internal/middleware"
	"github.com/franciscosanchezn/gin-mexitoes-api/internal/models"
	"github.com/franciscosanchezn/gin-mexitoes-api/internal/otp"
	"github.com/franciscosanchezn/gin-mexitoes-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testSecret = "controllers-test-secret"
	testPhone  = "9876543210"
)

type captureSender struct {
	mu    sync.Mutex
	codes map[string]string
}

func (s *captureSender) Send(_ context.Context, phone, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[phone] = code
	return nil
}

func (s *captureSender) CodeFor(phone string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.codes[phone]
}

type testServer struct {
	router   *gin.Engine
	db       *gorm.DB
	sender   *captureSender
	recorder *events.Recorder
	oauth    *auth.OAuthService
	clients  services.ClientService
}

func newTestServer(t *testing.T) *testServer {
	gin.SetMode(gin.TestMode)

	db, err := database.NewInMemory()
	require.NoError(t, err)
	_, err = database.SeedMenu(db)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	sender := &captureSender{codes: map[string]string{}}
	recorder := &events.Recorder{}
	sessions := auth.NewSessionIssuer(testSecret, 30*24*time.Hour)
	oauthService := auth.NewOAuthService(db, testSecret, time.Hour)
	clientService := services.NewClientService(db)

	r := &Router{
		Auth:         NewAuthController(services.NewAuthService(db, otp.NewGormStore(db), sender, sessions, 5*time.Minute)),
		Menu:         NewMenuController(services.NewMenuService(db)),
		Cart:         NewCartController(services.NewCartService(db)),
		Orders:       NewOrderController(services.NewOrderService(db, recorder)),
		Profile:      NewProfileController(services.NewUserService(db)),
		Clients:      NewClientController(clientService),
		Health:       NewHealthController(sqlDB),
		TokenHandler: oauthService.HandleToken,
		SessionAuth:  middleware.SessionAuth(sessions),
		AdminAuth:    middleware.RequireAdmin(oauthService),
	}
	router := gin.New()
	r.RegisterRoutes(router)

	return &testServer{
		router:   router,
		db:       db,
		sender:   sender,
		recorder: recorder,
		oauth:    oauthService,
		clients:  clientService,
	}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// login runs the OTP flow and returns the session token
func (s *testServer) login(t *testing.T, phone, name string) string {
	w := s.do(t, http.MethodPost, "/api/auth/send-otp", "", gin.H{"phone": phone})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/auth/verify-otp", "", gin.H{
		"phone": phone,
		"otp":   s.sender.CodeFor(phone),
		"name":  name,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result struct {
		Token string `json:"token"`
	}
	decode(t, w, &result)
	return result.Token
}

// adminToken registers an admin client and issues a token for it
func (s *testServer) adminToken(t *testing.T) string {
	client, secret, err := s.clients.CreateClient(context.Background(), "ops dashboard", "", models.ScopeOrdersAdmin)
	require.NoError(t, err)
	ti, err := s.oauth.IssueClientToken(context.Background(), client.ID, secret, "")
	require.NoError(t, err)
	return ti.GetAccess()
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
