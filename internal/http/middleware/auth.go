package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/markethub/admin-backend/internal/auth"
)

// Context keys set by RequireAuth for downstream handlers.
const (
	CtxUserID   = "user_id"
	CtxUserRole = "user_role"
	CtxTenantID = "tenant_id"
)

// RequireAuth accepts the access token from the auth cookie or, for
// programmatic clients, a Bearer header. The cookie wins when both are set.
func RequireAuth(jwt *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if cookie, err := c.Request.Cookie(auth.AccessCookieName); err == nil {
			token = cookie.Value
		}
		if token == "" {
			header := c.GetHeader("Authorization")
			if strings.HasPrefix(header, "Bearer ") {
				token = strings.TrimPrefix(header, "Bearer ")
			}
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
			return
		}

		claims, err := jwt.Parse(token)
		if err != nil || claims.Type != "access" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUserRole, claims.Role)
		c.Set(CtxTenantID, claims.TenantID)
		c.Next()
	}
}
