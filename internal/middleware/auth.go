package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"clientbook/backend/internal/models"
	"clientbook/backend/internal/security"
)

const currentUserKey = "current_user"

// UserFinder resolves the account behind an access token's subject.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
}

// Auth requires a bearer access token and loads the account it names
// into the request context.
func Auth(tokens *security.TokenService, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		email, err := tokens.Decode(tokenStr, security.KindAccess)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
			return
		}

		user, err := users.FindByEmail(c.Request.Context(), email)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
			return
		}

		c.Set(currentUserKey, user)

		c.Next()
	}
}

// CurrentUser returns the account loaded by Auth.
func CurrentUser(c *gin.Context) (models.User, bool) {
	val, exists := c.Get(currentUserKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := val.(models.User)
	return user, ok
}
