package otp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFast2SMSSender(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"authorization":    r.URL.Query().Get("authorization"),
			"route":            r.URL.Query().Get("route"),
			"variables_values": r.URL.Query().Get("variables_values"),
			"numbers":          r.URL.Query().Get("numbers"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"return": true, "request_id": "abc", "message": ["SMS sent successfully."]}`))
	}))
	defer server.Close()

	sender := NewFast2SMSSender(server.URL, "api-key")
	err := sender.Send(context.Background(), "9876543210", "4321")
	require.NoError(t, err)

	assert.Equal(t, "api-key", gotQuery["authorization"])
	assert.Equal(t, "otp", gotQuery["route"])
	assert.Equal(t, "4321", gotQuery["variables_values"])
	assert.Equal(t, "9876543210", gotQuery["numbers"])
}

func TestFast2SMSSenderRejected(t *testing.T) {
	testCases := []struct {
		name   string
		status int
		body   string
	}{
		{name: "gateway returns false", status: http.StatusOK, body: `{"return": false, "message": "Invalid Authentication"}`},
		{name: "gateway error status", status: http.StatusUnauthorized, body: `{"return": false, "message": "Invalid API key"}`},
		{name: "unreadable body", status: http.StatusBadGateway, body: `<html>bad gateway</html>`},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			err := NewFast2SMSSender(server.URL, "api-key").Send(context.Background(), "9876543210", "4321")
			assert.Error(t, err)
		})
	}
}

func TestLogSender(t *testing.T) {
	assert.NoError(t, LogSender{}.Send(context.Background(), "9876543210", "4321"))
}
