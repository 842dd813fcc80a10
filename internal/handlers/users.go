package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clientbook/backend/internal/middleware"
)

func (h HandlerSet) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

func (h HandlerSet) UpdateAvatar(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "File required"})
		return
	}
	defer file.Close()

	updated, err := h.avatars.Upload(c.Request.Context(), user, file, header)
	if err != nil {
		h.log.Error().Err(err).Str("email", user.Email).Msg("avatar upload failed")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(updated))
}
