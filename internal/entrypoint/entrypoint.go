package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Bayanda-Msibi/library-management-system/internal/auth"
	"github.com/Bayanda-Msibi/library-management-system/internal/catalog"
	"github.com/Bayanda-Msibi/library-management-system/internal/circulation"
	"github.com/Bayanda-Msibi/library-management-system/internal/config"
	"github.com/Bayanda-Msibi/library-management-system/internal/database"
	"github.com/Bayanda-Msibi/library-management-system/internal/exporters"
	http_controllers "github.com/Bayanda-Msibi/library-management-system/internal/http"
	"github.com/Bayanda-Msibi/library-management-system/internal/scheduler"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work before closing listeners
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run wires the application together and serves it.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting Library Management System v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	catalogService := catalog.NewService(db.DB)
	circulationService := circulation.NewService(db.DB, cfg.Loans.PeriodDays)
	exportService := exporters.NewService(db.DB)

	// Initialize authentication if enabled
	var authService *auth.Service
	var authMiddleware *auth.Middleware
	var sessionManager *auth.SessionManager
	var loginRateLimiter *auth.RateLimiter
	var csrfSecret []byte

	if cfg.Auth.Mode == config.AuthModeLocal {
		log.Printf("Authentication mode: local")

		authService = auth.NewService(db.DB, cfg.Auth)

		// Make sure an admin account exists before the first request
		err := authService.EnsureDefaultAdmin(cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminPassword)
		if err != nil {
			log.Fatalf("Failed to ensure default admin: %v", err)
		}

		sqlDB, err := db.DB.DB()
		if err != nil {
			log.Fatalf("Failed to get SQL DB for sessions: %v", err)
		}

		sessionManager, err = auth.NewSessionManager(sqlDB, cfg.Auth)
		if err != nil {
			log.Fatalf("Failed to initialize session manager: %v", err)
		}

		authMiddleware = auth.NewMiddleware(authService, sessionManager, cfg.Auth)

		loginRateLimiter = auth.NewRateLimiter(auth.RateLimitConfig{
			MaxAttempts:     cfg.Auth.MaxLoginAttempts,
			WindowDuration:  cfg.Auth.RateLimitWindow,
			LockoutDuration: cfg.Auth.LockoutDuration,
		})

		// Generate or use configured CSRF secret
		if cfg.Auth.SessionSecret != "" {
			csrfSecret, err = hex.DecodeString(cfg.Auth.SessionSecret)
			if err != nil {
				// Not hex, use as raw bytes
				csrfSecret = []byte(cfg.Auth.SessionSecret)
			}
		} else {
			secret, err := auth.GenerateSessionSecret()
			if err != nil {
				log.Fatalf("Failed to generate CSRF secret: %v", err)
			}
			csrfSecret, _ = hex.DecodeString(secret)
			log.Printf("Generated session secret (set AUTH_SESSION_SECRET to persist)")
		}
	} else {
		log.Printf("Authentication mode: none (no authentication required)")
	}

	// Start the snapshot scheduler if configured
	snapshotScheduler := scheduler.NewSnapshotScheduler(exportService, cfg.Snapshot)
	schedulerCtx, schedulerCancel := context.WithCancel(context.Background())
	if err := snapshotScheduler.Start(schedulerCtx); err != nil {
		log.Fatalf("Failed to start snapshot scheduler: %v", err)
	}

	routerCfg := http_controllers.RouterConfig{
		Database:         db,
		Catalog:          catalogService,
		Circulation:      circulationService,
		Exporter:         exportService,
		Snapshots:        snapshotScheduler,
		AuthService:      authService,
		AuthMiddleware:   authMiddleware,
		SessionManager:   sessionManager,
		AuthConfig:       cfg.Auth,
		LoginRateLimiter: loginRateLimiter,
		CSRFSecret:       csrfSecret,
		SecureCookies:    cfg.Auth.SecureCookies,
		Version:          version,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		snapshotScheduler.Stop()
		schedulerCancel()
		if loginRateLimiter != nil {
			loginRateLimiter.Stop()
		}
	}

	Serve(router, cfg, onShutdown)
}
