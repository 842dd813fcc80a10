package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"clientbook/backend/internal/phone"
	"clientbook/backend/internal/security"
	"clientbook/backend/internal/service"
)

func TestStatusFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{service.ErrAccountExists, http.StatusConflict},
		{service.ErrClientEmailExists, http.StatusConflict},
		{service.ErrClientPhoneExists, http.StatusConflict},
		{service.ErrInvalidEmail, http.StatusUnauthorized},
		{service.ErrEmailNotConfirmed, http.StatusUnauthorized},
		{service.ErrInvalidPassword, http.StatusUnauthorized},
		{service.ErrInvalidRefreshToken, http.StatusUnauthorized},
		{security.ErrInvalidToken, http.StatusUnauthorized},
		{service.ErrVerification, http.StatusBadRequest},
		{service.ErrUnsupportedImage, http.StatusBadRequest},
		{phone.ErrInvalidFormat, http.StatusBadRequest},
		{service.ErrClientNotFound, http.StatusNotFound},
		{errors.New("pgx: connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), "error %q", tt.err)
	}
}
