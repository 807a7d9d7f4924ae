package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/linsok/housing-analyzer-sub000/internal/domain"
	"github.com/linsok/housing-analyzer-sub000/internal/pkg/response"
)

// RequireRole gates a route on the role claim set by Auth.
func RequireRole(required domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		if role.(string) != string(required) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// OwnerOnly guards listing management and the owner booking dashboard.
func OwnerOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleOwner)
}

// AdminOnly guards the verification review endpoints.
func AdminOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin)
}
