package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRole protege rotas exclusivas de um papel (student / counselor)
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.MustGet(ContextUserRole).(string)

		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient_role"})
	}
}
