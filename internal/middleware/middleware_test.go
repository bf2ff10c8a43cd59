package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/franciscosanchezn/gin-mexitoes-api/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func sessionRouter(issuer *auth.SessionIssuer) *gin.Engine {
	router := gin.New()
	router.GET("/me", SessionAuth(issuer), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserID(c)})
	})
	return router
}

func get(router http.Handler, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSessionAuth(t *testing.T) {
	now := time.Now()
	issuer := newTestIssuer(now)
	router := sessionRouter(issuer)

	token, _, err := issuer.Issue("user-1")
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		w := get(router, "/me", "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "user-1")
	})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic " + token},
		{"empty bearer", "Bearer "},
		{"garbage token", "Bearer abc.def.ghi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(router, "/me", tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
		})
	}

	t.Run("expired token", func(t *testing.T) {
		old := newTestIssuer(now.Add(-31 * 24 * time.Hour))
		stale, _, err := old.Issue("user-1")
		require.NoError(t, err)
		w := get(router, "/me", "Bearer "+stale)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("issued in the future", func(t *testing.T) {
		ahead := newTestIssuer(now.Add(time.Hour))
		future, _, err := ahead.Issue("user-1")
		require.NoError(t, err)
		w := get(router, "/me", "Bearer "+future)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func newTestIssuer(at time.Time) *auth.SessionIssuer {
	return auth.NewSessionIssuer("middleware-test-secret", 30*24*time.Hour).WithClock(func() time.Time { return at })
}

type stubValidator struct {
	clientID string
	err      error
}

func (s stubValidator) ValidateAdminToken(_ context.Context, _ string) (string, error) {
	return s.clientID, s.err
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name      string
		validator stubValidator
		header    string
		status    int
	}{
		{"admin token", stubValidator{clientID: "ops"}, "Bearer tok", http.StatusOK},
		{"missing token", stubValidator{clientID: "ops"}, "", http.StatusUnauthorized},
		{"rejected token", stubValidator{err: errors.New("expired")}, "Bearer tok", http.StatusUnauthorized},
		{"missing scope", stubValidator{err: auth.ErrInsufficientScope}, "Bearer tok", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/admin", RequireAdmin(tt.validator), func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"client_id": c.GetString(ContextClientID)})
			})

			w := get(router, "/admin", tt.header)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Contains(t, w.Body.String(), "ops")
			}
		})
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	router := gin.New()
	router.Use(RequestLogger(logger))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	get(router, "/ok", "")
	assert.Contains(t, buf.String(), `"path":"/ok"`)
	assert.Contains(t, buf.String(), `"status":200`)
	assert.Contains(t, buf.String(), `"level":"info"`)

	buf.Reset()
	get(router, "/boom", "")
	assert.Contains(t, buf.String(), `"level":"error"`)
}

func TestCORS(t *testing.T) {
	router := gin.New()
	router.GET("/api/menu", func(c *gin.Context) { c.Status(http.StatusOK) })
	handler := CORS([]string{"http://localhost:5173"}, router)

	req := httptest.NewRequest(http.MethodOptions, "/api/menu", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/menu", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
