package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"github.com/franciscosanchezn/gin-mexitoes-api/internal/models"
	"github.com/franciscosanchezn/gin-mexitoes-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

// respondError maps a service error to a status code and APIError body.
// Unknown errors are logged and hidden behind a generic 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrOTPNotFound):
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrOTPNotFound, "OTP not found. Please request a new one."))
	case errors.Is(err, services.ErrOTPExpired):
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrOTPExpired, "OTP has expired. Please request a new one."))
	case errors.Is(err, services.ErrOTPMismatch):
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrOTPMismatch, "Invalid OTP. Please try again."))
	case errors.Is(err, services.ErrDispatch):
		log.WithError(err).Error("OTP dispatch failed")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrOTPDispatch, "Failed to send OTP. Please try again."))
	case errors.Is(err, services.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrEmptyCart, "Cart is empty"))
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, detail(err, services.ErrValidation)))
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrConflict, detail(err, services.ErrConflict)))
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrUnauthorized, "Unauthorized"))
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, models.NewAPIError(models.ErrNotFound, "Not found"))
	default:
		log.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Error("Request failed")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Internal server error"))
	}
}

// respondNotFoundAs is respondError with a resource specific 404 body
func respondNotFoundAs(c *gin.Context, err error, code, message string) {
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.NewAPIError(code, message))
		return
	}
	respondError(c, err)
}

// respondBindingError reports request body problems, listing failed fields
// when the validator produced them.
func respondBindingError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			field := snakeCase(fieldError.Field())
			switch fieldError.Tag() {
			case "required":
				fields = append(fields, fmt.Sprintf("%s is required", field))
			default:
				fields = append(fields, fmt.Sprintf("%s is invalid", field))
			}
		}
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Validation failed", map[string]interface{}{
			"fields": fields,
		}))
		return
	}

	c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body"))
}

// detail strips the sentinel prefix from a wrapped error message
func detail(err, sentinel error) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
	if msg == "" {
		return sentinel.Error()
	}
	return msg
}

func snakeCase(field string) string {
	runes := []rune(field)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && unicode.IsLower(runes[i-1])
			nextLower := i > 0 && i+1 < len(runes) && unicode.IsLower(runes[i+1]) && unicode.IsUpper(runes[i-1])
			if prevLower || nextLower {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
