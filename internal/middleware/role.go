package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"fleet-mileage-monitor/pkg/utils"
)

const RoleAdmin = "admin"

// RoleMiddleware must run after AuthMiddleware.
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		if role == "" {
			utils.ErrorResponse(c, http.StatusForbidden, "Role not found in context")
			c.Abort()
			return
		}

		if !slices.Contains(allowedRoles, role) {
			utils.ErrorResponse(c, http.StatusForbidden, "Insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

func AdminOnly() gin.HandlerFunc {
	return RoleMiddleware(RoleAdmin)
}
