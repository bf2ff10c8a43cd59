package otp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

// Sender delivers a code to a phone
type Sender interface {
	Send(ctx context.Context, phone, code string) error
}

// LogSender prints codes to the server log instead of sending them (demo mode)
type LogSender struct{}

func (LogSender) Send(_ context.Context, phone, code string) error {
	log.WithFields(logrus.Fields{
		"phone": phone,
		"otp":   code,
	}).Warn("[DEMO MODE] SMS gateway not configured, OTP written to log")
	return nil
}

// Fast2SMSSender sends codes through the Fast2SMS OTP route
type Fast2SMSSender struct {
	APIURL string
	APIKey string
	Client *http.Client
}

func NewFast2SMSSender(apiURL, apiKey string) *Fast2SMSSender {
	return &Fast2SMSSender{
		APIURL: apiURL,
		APIKey: apiKey,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

type fast2smsResponse struct {
	Return  bool            `json:"return"`
	Message json.RawMessage `json:"message"`
}

func (s *Fast2SMSSender) Send(ctx context.Context, phone, code string) error {
	endpoint, err := url.Parse(s.APIURL)
	if err != nil {
		return fmt.Errorf("invalid sms api url: %w", err)
	}
	q := endpoint.Query()
	q.Set("authorization", s.APIKey)
	q.Set("route", "otp")
	q.Set("variables_values", code)
	q.Set("numbers", phone)
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("cache-control", "no-cache")

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("sms gateway request: %w", err)
	}
	defer resp.Body.Close()

	var body fast2smsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("sms gateway status %d: unreadable response: %w", resp.StatusCode, err)
	}
	if resp.StatusCode >= 300 || !body.Return {
		return fmt.Errorf("sms gateway rejected request: status %d: %s", resp.StatusCode, string(body.Message))
	}

	log.WithField("phone", phone).Info("OTP sent via Fast2SMS")
	return nil
}
