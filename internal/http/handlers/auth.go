package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/markethub/admin-backend/internal/auth"
	"github.com/markethub/admin-backend/internal/http/middleware"
)

type AuthHandler struct {
	authService *auth.Service
	cookieCfg   auth.CookieConfig
	accessTTL   time.Duration
	refreshTTL  time.Duration
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func NewAuthHandler(authService *auth.Service, cookieCfg auth.CookieConfig, accessTTL, refreshTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, cookieCfg: cookieCfg, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	userAgent := c.GetHeader("User-Agent")
	ipAddress := auth.ClientIP(c.Request)
	tokens, err := h.authService.Login(c.Request.Context(), req.Email, req.Password, userAgent, ipAddress)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "authentication_failed", "invalid email or password")
		return
	}

	auth.SetAuthCookies(c.Writer, h.cookieCfg, tokens.AccessToken, tokens.RefreshToken, h.accessTTL, h.refreshTTL)
	respondOK(c, http.StatusOK, gin.H{
		"user": gin.H{
			"id":        tokens.User.ID,
			"email":     tokens.User.Email,
			"full_name": tokens.User.FullName,
			"role":      tokens.User.RoleSlug,
			"tenant_id": tokens.User.TenantID,
		},
		"session": gin.H{"authenticated": true},
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	cookie, err := c.Request.Cookie(auth.RefreshCookieName)
	if err != nil || cookie.Value == "" {
		respondError(c, http.StatusUnauthorized, "missing_refresh_cookie", "no refresh token")
		return
	}

	userAgent := c.GetHeader("User-Agent")
	ipAddress := auth.ClientIP(c.Request)
	tokens, err := h.authService.Refresh(c.Request.Context(), cookie.Value, userAgent, ipAddress)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "refresh_failed", "could not refresh session")
		return
	}

	auth.SetAuthCookies(c.Writer, h.cookieCfg, tokens.AccessToken, tokens.RefreshToken, h.accessTTL, h.refreshTTL)
	respondOK(c, http.StatusOK, gin.H{"refreshed": true})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	cookie, err := c.Request.Cookie(auth.RefreshCookieName)
	if err == nil && cookie.Value != "" {
		_ = h.authService.Logout(c.Request.Context(), cookie.Value)
	}
	auth.ClearAuthCookies(c.Writer, h.cookieCfg)
	respondOK(c, http.StatusOK, gin.H{"logged_out": true})
}

func (h *AuthHandler) Me(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserID)
	if uid == "" {
		respondError(c, http.StatusUnauthorized, "unauthorized", "no session")
		return
	}

	user, err := h.authService.Me(c.Request.Context(), uid)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "unauthorized", "no session")
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"user": gin.H{
			"id":        user.ID,
			"email":     user.Email,
			"full_name": user.FullName,
			"role":      user.RoleSlug,
			"tenant_id": user.TenantID,
		},
	})
}
