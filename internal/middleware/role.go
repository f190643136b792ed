package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRole gates a route group on the role claim set by JWTAuth. The role
// must match exactly; there is no hierarchy between admin and owner.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got, exists := c.Get("userRole")
		if !exists {
			// JWTAuth always sets the role, so this only trips when the
			// group was mounted without it
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Role not established"})
			return
		}

		if got != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":         "Insufficient role",
				"required_role": role,
			})
			return
		}

		c.Next()
	}
}
