package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/macquiz/admin-console-api/internal/models"
	appErrors "github.com/macquiz/admin-console-api/pkg/errors"
	"github.com/macquiz/admin-console-api/pkg/response"
)

// RBAC enforces role-based access control for routes.
func RBAC(allowed ...models.Role) gin.HandlerFunc {
	allowedRoles := make(map[models.Role]struct{}, len(allowed))
	for _, r := range allowed {
		allowedRoles[r] = struct{}{}
	}

	return func(c *gin.Context) {
		claimsValue, exists := c.Get(ContextUserKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims := claimsValue.(*models.JWTClaims)

		if _, ok := allowedRoles[claims.Role]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAdmin gates the provisioning surface to administrator tokens.
func RequireAdmin() gin.HandlerFunc {
	return RBAC(models.RoleAdmin)
}
