package middlewares

import (
	"net/http"

	"bitbucket.org/mmdatafocus/depot_backend/models"
	"bitbucket.org/mmdatafocus/depot_backend/utils"
	"github.com/gin-gonic/gin"
)

// CollectionsGate restricts the collections worklist to roles that are
// allowed to manage it. Everyone else gets a static denial.
func CollectionsGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		roleValue, ok := utils.GetUserRoleFromContext(c.Request.Context())
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "you do not have access to collections"})
			c.Abort()
			return
		}
		role, err := models.ParseUserRole(roleValue)
		if err != nil || !role.CanManageCollections() {
			c.JSON(http.StatusForbidden, gin.H{"error": "you do not have access to collections"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRoles allows only the named roles through.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleValue, ok := utils.GetUserRoleFromContext(c.Request.Context())
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			c.Abort()
			return
		}
		for _, role := range roles {
			if string(role) == roleValue {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		c.Abort()
	}
}
