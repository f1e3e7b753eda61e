package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/markethub/admin-backend/internal/auth"
	"github.com/markethub/admin-backend/internal/config"
	"github.com/markethub/admin-backend/internal/db"
	affiliatedomain "github.com/markethub/admin-backend/internal/domain/affiliate"
	analyticsdomain "github.com/markethub/admin-backend/internal/domain/analytics"
	categorydomain "github.com/markethub/admin-backend/internal/domain/category"
	loanpartnerdomain "github.com/markethub/admin-backend/internal/domain/loanpartner"
	productdomain "github.com/markethub/admin-backend/internal/domain/product"
	roledomain "github.com/markethub/admin-backend/internal/domain/role"
	vendordomain "github.com/markethub/admin-backend/internal/domain/vendor"
	"github.com/markethub/admin-backend/internal/http/handlers"
	"github.com/markethub/admin-backend/internal/http/middleware"
	"github.com/markethub/admin-backend/internal/observability"
	postgresrepo "github.com/markethub/admin-backend/internal/repository/postgres"
	"github.com/markethub/admin-backend/internal/server"
	"github.com/markethub/admin-backend/internal/storage"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger(cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg)
	if err != nil {
		logger.Error("failed to connect postgres", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	files, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		logger.Error("failed to init upload storage", "err", err)
		os.Exit(1)
	}

	authRepo := db.NewAuthRepository(pool)
	jwtManager := auth.NewJWTManager(cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTSigningKey)
	authService := auth.NewService(authRepo, jwtManager, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
	authHandler := handlers.NewAuthHandler(authService, auth.CookieConfig{Domain: cfg.CookieDomain, Secure: cfg.CookieSecure}, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	docRepo := postgresrepo.NewDocumentRepository(pool)
	auditRepo := postgresrepo.NewAuditRepository(pool)
	outboxRepo := postgresrepo.NewOutboxRepository(pool)
	productRepo := postgresrepo.NewProductRepository(pool)
	categoryRepo := postgresrepo.NewCategoryRepository(pool)

	vendorService := vendordomain.NewService(postgresrepo.NewVendorRepository(pool), docRepo, auditRepo, outboxRepo)
	affiliateService := affiliatedomain.NewService(postgresrepo.NewAffiliateRepository(pool), docRepo, auditRepo, outboxRepo)
	productService := productdomain.NewService(productRepo, categoryRepo, auditRepo, outboxRepo)
	categoryService := categorydomain.NewService(categoryRepo)
	loanPartnerService := loanpartnerdomain.NewService(postgresrepo.NewLoanPartnerRepository(pool), auditRepo)
	roleService := roledomain.NewService(postgresrepo.NewRoleRepository(pool))
	analyticsService := analyticsdomain.NewService(postgresrepo.NewAnalyticsRepository(pool), productRepo)

	r := server.NewRouter(cfg, logger, server.Dependencies{
		Pinger:             pool,
		AuthHandler:        authHandler,
		VendorHandler:      handlers.NewVendorHandler(vendorService, files),
		AffiliateHandler:   handlers.NewAffiliateHandler(affiliateService, files),
		ProductHandler:     handlers.NewProductHandler(productService),
		CategoryHandler:    handlers.NewCategoryHandler(categoryService),
		LoanPartnerHandler: handlers.NewLoanPartnerHandler(loanPartnerService),
		RoleHandler:        handlers.NewRoleHandler(roleService),
		AnalyticsHandler:   handlers.NewAnalyticsHandler(analyticsService),
		JWTManager:         jwtManager,
		Permissions:        roleService,
		RateLimiter:        middleware.NewRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst),
	})
	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("api server starting", "addr", cfg.Addr())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = httpServer.Shutdown(shutdownCtx)
	logger.Info("api server stopped")
}
