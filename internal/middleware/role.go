package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kayexpress/internal/domain"
	"kayexpress/internal/pkg/response"
)

// RequireRole rejects requests whose JWT role does not match. It must
// run after JWTAuth, which puts the role on the context.
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		}

		if r, ok := role.(string); !ok || r != requiredRole {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

func AdminOnly() gin.HandlerFunc {
	return RequireRole(string(domain.RoleAdmin))
}
