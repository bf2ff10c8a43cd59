package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/gin-mexitoes-api/internal/services"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService services.AuthService
}

func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

type sendOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
}

type verifyOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
	OTP   string `json:"otp" binding:"required"`
	Name  string `json:"name"`
}

// SendOTP godoc
// @Summary Request a login code
// @Description Generate a 4 digit code valid for 5 minutes and send it by SMS
// @Tags auth
// @Accept json
// @Produce json
// @Param request body sendOTPRequest true "10 digit phone number"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Router /api/auth/send-otp [post]
func (ac *AuthController) SendOTP(c *gin.Context) {
	var req sendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	if err := ac.authService.RequestCode(c.Request.Context(), req.Phone); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "OTP sent to your number",
	})
}

// VerifyOTP godoc
// @Summary Log in with a code
// @Description Consume the pending code and return a session token. Creates the user on first login.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body verifyOTPRequest true "Phone, code and optional display name"
// @Success 200 {object} services.LoginResult
// @Failure 400 {object} models.APIError
// @Router /api/auth/verify-otp [post]
func (ac *AuthController) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	result, err := ac.authService.VerifyCode(c.Request.Context(), req.Phone, req.OTP, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
