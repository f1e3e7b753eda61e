package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/markethub/admin-backend/internal/domain/role"
)

// PermissionResolver maps a role slug to the permission keys it grants.
type PermissionResolver interface {
	PermissionsForSlug(ctx context.Context, tenantID, slug string) ([]string, error)
}

// RequirePermission gates a route on a single permission key. Admin holds the
// full catalog and never hits the resolver.
func RequirePermission(resolver PermissionResolver, key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.GetString(CtxUserRole)
		if slug == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "forbidden"})
			return
		}
		if slug == role.SlugAdmin {
			c.Next()
			return
		}

		perms, err := resolver.PermissionsForSlug(c.Request.Context(), c.GetString(CtxTenantID), slug)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "forbidden"})
			return
		}
		for _, p := range perms {
			if p == key {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "forbidden"})
	}
}
