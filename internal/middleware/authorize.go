package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clientbook/backend/internal/models"
)

// RequireRoles gates a route on the authenticated account's role.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	roleSet := make(map[models.Role]struct{}, len(roles))
	for _, role := range roles {
		roleSet[role] = struct{}{}
	}

	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
			return
		}

		if _, ok := roleSet[user.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "Operation forbidden"})
			return
		}

		c.Next()
	}
}
