package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"clientbook/backend/internal/phone"
	"clientbook/backend/internal/security"
	"clientbook/backend/internal/service"
)

// respondError maps service sentinels to HTTP statuses. Unrecognized
// errors surface as a generic 500 without internal detail.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	detail := err.Error()
	if status == http.StatusInternalServerError {
		detail = "Internal server error"
	}
	c.JSON(status, gin.H{"detail": detail})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrAccountExists),
		errors.Is(err, service.ErrClientEmailExists),
		errors.Is(err, service.ErrClientPhoneExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrEmailNotConfirmed),
		errors.Is(err, service.ErrInvalidPassword),
		errors.Is(err, service.ErrInvalidRefreshToken),
		errors.Is(err, security.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrVerification),
		errors.Is(err, service.ErrUnsupportedImage),
		errors.Is(err, phone.ErrInvalidFormat):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrClientNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
