package controllers

import (
	"net/http"
	"testing"

	"github.com/franciscosanchezn/gin-mexitoes-api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendOTP(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/auth/send-otp", "", gin.H{"phone": testPhone})
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	decode(t, w, &body)
	assert.Equal(t, true, body["success"])
	assert.NotContains(t, w.Body.String(), s.sender.CodeFor(testPhone), "code must never be echoed")
}

func TestSendOTPInvalidPhone(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/auth/send-otp", "", gin.H{"phone": "12345"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var apiErr models.APIError
	decode(t, w, &apiErr)
	assert.Equal(t, models.ErrValidationFailed, apiErr.Code)
	assert.Equal(t, "Please enter a valid 10-digit phone number", apiErr.Message)

	w = s.do(t, http.MethodPost, "/api/auth/send-otp", "", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "phone is required")
}

func TestVerifyOTP(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/auth/send-otp", "", gin.H{"phone": testPhone})
	require.Equal(t, http.StatusOK, w.Code)
	code := s.sender.CodeFor(testPhone)

	w = s.do(t, http.MethodPost, "/api/auth/verify-otp", "", gin.H{"phone": testPhone, "otp": code})
	require.Equal(t, http.StatusOK, w.Code)

	var result struct {
		Token     string      `json:"token"`
		User      models.User `json:"user"`
		IsNewUser bool        `json:"isNewUser"`
	}
	decode(t, w, &result)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "User3210", result.User.Name)
	assert.Equal(t, testPhone, result.User.Phone)
	assert.True(t, result.IsNewUser)

	// The code is single use
	w = s.do(t, http.MethodPost, "/api/auth/verify-otp", "", gin.H{"phone": testPhone, "otp": code})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var apiErr models.APIError
	decode(t, w, &apiErr)
	assert.Equal(t, models.ErrOTPNotFound, apiErr.Code)
}

func TestVerifyOTPErrors(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/auth/verify-otp", "", gin.H{"phone": testPhone})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "otp is required")

	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/auth/send-otp", "", gin.H{"phone": testPhone}).Code)
	wrong := "0000"
	if s.sender.CodeFor(testPhone) == wrong {
		wrong = "1111"
	}
	w = s.do(t, http.MethodPost, "/api/auth/verify-otp", "", gin.H{"phone": testPhone, "otp": wrong})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var apiErr models.APIError
	decode(t, w, &apiErr)
	assert.Equal(t, models.ErrOTPMismatch, apiErr.Code)
	assert.Equal(t, "Invalid OTP. Please try again.", apiErr.Message)
}
