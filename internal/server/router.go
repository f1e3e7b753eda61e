package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/markethub/admin-backend/internal/auth"
	"github.com/markethub/admin-backend/internal/config"
	"github.com/markethub/admin-backend/internal/http/handlers"
	"github.com/markethub/admin-backend/internal/http/middleware"
	"github.com/markethub/admin-backend/internal/version"
)

type Dependencies struct {
	Pinger             handlers.Pinger
	AuthHandler        *handlers.AuthHandler
	VendorHandler      *handlers.VendorHandler
	AffiliateHandler   *handlers.AffiliateHandler
	ProductHandler     *handlers.ProductHandler
	CategoryHandler    *handlers.CategoryHandler
	LoanPartnerHandler *handlers.LoanPartnerHandler
	RoleHandler        *handlers.RoleHandler
	AnalyticsHandler   *handlers.AnalyticsHandler
	JWTManager         *auth.JWTManager
	Permissions        middleware.PermissionResolver
	RateLimiter        *middleware.RateLimiter
}

func NewRouter(cfg config.Config, logger *slog.Logger, deps Dependencies) *gin.Engine {
	if cfg.Env == "prod" || cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestBodyLimit(cfg.MaxBodyBytes, cfg.MaxUploadBytes))
	if deps.RateLimiter != nil {
		r.Use(deps.RateLimiter.Middleware())
	}
	r.Use(func(c *gin.Context) {
		logger.Info("request", "method", c.Request.Method, "path", c.Request.URL.Path)
		c.Next()
	})

	health := handlers.NewHealthHandler(deps.Pinger)
	meta := handlers.NewMetaHandler(cfg.Env, version.Version)

	r.GET("/health", health.Health)
	r.GET("/ready", health.Ready)
	r.GET("/v1/meta", meta.GetMeta)

	if deps.AuthHandler != nil && deps.JWTManager != nil {
		authGroup := r.Group("/v1/auth")
		authGroup.POST("/login", deps.AuthHandler.Login)
		authGroup.POST("/refresh", deps.AuthHandler.Refresh)
		authGroup.POST("/logout", deps.AuthHandler.Logout)

		sessionGroup := authGroup.Group("")
		sessionGroup.Use(middleware.RequireAuth(deps.JWTManager))
		sessionGroup.GET("/me", deps.AuthHandler.Me)

		api := r.Group("/v1")
		api.Use(middleware.RequireAuth(deps.JWTManager), middleware.RequireTenant())
		perm := func(key string) gin.HandlerFunc {
			return middleware.RequirePermission(deps.Permissions, key)
		}

		if deps.VendorHandler != nil {
			api.GET("/vendors", perm("vendors.view"), deps.VendorHandler.List)
			api.POST("/vendors", perm("vendors.create"), deps.VendorHandler.Create)
			api.GET("/vendors/:id", perm("vendors.view"), deps.VendorHandler.Get)
			api.PUT("/vendors/:id", perm("vendors.update"), deps.VendorHandler.Update)
			api.DELETE("/vendors/:id", perm("vendors.delete"), deps.VendorHandler.Delete)
			api.POST("/vendors/:id/status", perm("vendors.approve"), deps.VendorHandler.ChangeStatus)
			api.POST("/vendors/:id/documents", perm("vendors.update"), deps.VendorHandler.UploadDocument)
			api.POST("/vendors/:id/documents/:docId/review", perm("vendors.approve"), deps.VendorHandler.ReviewDocument)
		}

		if deps.AffiliateHandler != nil && cfg.EnableAffiliatesModule {
			api.GET("/affiliates", perm("affiliates.view"), deps.AffiliateHandler.List)
			api.POST("/affiliates", perm("affiliates.create"), deps.AffiliateHandler.Create)
			api.GET("/affiliates/:id", perm("affiliates.view"), deps.AffiliateHandler.Get)
			api.PUT("/affiliates/:id", perm("affiliates.update"), deps.AffiliateHandler.Update)
			api.POST("/affiliates/:id/status", perm("affiliates.approve"), deps.AffiliateHandler.ChangeStatus)
			api.POST("/affiliates/:id/documents", perm("affiliates.update"), deps.AffiliateHandler.UploadDocument)
			api.POST("/affiliates/:id/documents/:docId/review", perm("affiliates.approve"), deps.AffiliateHandler.ReviewDocument)
		}

		if deps.ProductHandler != nil {
			api.GET("/products", perm("products.view"), deps.ProductHandler.List)
			api.POST("/products", perm("products.create"), deps.ProductHandler.Create)
			api.GET("/products/tab-counts", perm("products.view"), deps.ProductHandler.TabCounts)
			api.POST("/products/bulk-upload", perm("products.create"), deps.ProductHandler.BulkUpload)
			api.GET("/products/:id", perm("products.view"), deps.ProductHandler.Get)
			api.PUT("/products/:id", perm("products.update"), deps.ProductHandler.Update)
			api.DELETE("/products/:id", perm("products.delete"), deps.ProductHandler.Delete)
			api.POST("/products/:id/status", perm("products.approve"), deps.ProductHandler.ChangeStatus)
		}

		if deps.CategoryHandler != nil {
			api.GET("/categories", perm("categories.view"), deps.CategoryHandler.List)
			api.POST("/categories", perm("categories.manage"), deps.CategoryHandler.Create)
			api.GET("/categories/:id", perm("categories.view"), deps.CategoryHandler.Get)
			api.PUT("/categories/:id", perm("categories.manage"), deps.CategoryHandler.Update)
			api.DELETE("/categories/:id", perm("categories.manage"), deps.CategoryHandler.Delete)
		}

		if deps.LoanPartnerHandler != nil {
			api.GET("/loan-providers", perm("loans.view"), deps.LoanPartnerHandler.ListProviders)
			api.POST("/loan-providers", perm("loans.manage"), deps.LoanPartnerHandler.CreateProvider)
			api.GET("/loan-providers/:id", perm("loans.view"), deps.LoanPartnerHandler.GetProvider)
			api.PUT("/loan-providers/:id", perm("loans.manage"), deps.LoanPartnerHandler.UpdateProvider)
			api.POST("/loan-providers/:id/status", perm("loans.manage"), deps.LoanPartnerHandler.SetProviderActive)
			api.GET("/loan-products", perm("loans.view"), deps.LoanPartnerHandler.ListLoanProducts)
			api.POST("/loan-products", perm("loans.manage"), deps.LoanPartnerHandler.CreateLoanProduct)
			api.GET("/loan-products/:id", perm("loans.view"), deps.LoanPartnerHandler.GetLoanProduct)
			api.PUT("/loan-products/:id", perm("loans.manage"), deps.LoanPartnerHandler.UpdateLoanProduct)
			api.POST("/loan-products/:id/status", perm("loans.manage"), deps.LoanPartnerHandler.SetLoanProductActive)
		}

		if deps.RoleHandler != nil {
			api.GET("/roles", perm("roles.view"), deps.RoleHandler.List)
			api.POST("/roles", perm("roles.manage"), deps.RoleHandler.Create)
			api.GET("/roles/:id", perm("roles.view"), deps.RoleHandler.Get)
			api.PUT("/roles/:id", perm("roles.manage"), deps.RoleHandler.Update)
			api.DELETE("/roles/:id", perm("roles.manage"), deps.RoleHandler.Delete)
			api.GET("/permissions", perm("roles.view"), deps.RoleHandler.Permissions)
		}

		if deps.AnalyticsHandler != nil {
			api.GET("/analytics/dashboard", perm("analytics.view"), deps.AnalyticsHandler.Dashboard)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "not_found"})
	})

	return r
}
