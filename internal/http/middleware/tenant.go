package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// TenantHeader is how API clients name the tenant they act on.
const TenantHeader = "X-Tenant-ID"

// RequireTenant checks that the header, when present, matches the tenant the
// token was minted for. The claim is authoritative; a mismatched header means
// the client is confused about which storefront it is driving.
func RequireTenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		claimTenant := c.GetString(CtxTenantID)
		if claimTenant == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "missing_tenant"})
			return
		}

		if header := c.GetHeader(TenantHeader); header != "" && header != claimTenant {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "tenant_mismatch"})
			return
		}
		c.Next()
	}
}
