package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	loyalty "github.com/yuvrajsharma97/loyalty-saas-sub001"
	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/config"
	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/httpapi"
	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/notify"
	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/repository"
	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/service"
)

const sessionCleanupInterval = time.Hour

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	gin.SetMode(cfg.GinMode)

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Run migrations
	migrationsFS, err := fs.Sub(loyalty.MigrationsFS, "migrations")
	if err != nil {
		slog.Error("failed to load embedded migrations", "error", err)
		os.Exit(1)
	}
	if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize services
	userService := service.NewUserService(pool, cfg)
	storeService := service.NewStoreService(pool)
	redemptionService := service.NewRedemptionService(pool)
	claimService := service.NewClaimService(pool)
	visitService := service.NewVisitService(pool)
	previewService := service.NewPreviewService()

	if err := userService.EnsureSuperAdmin(ctx, cfg); err != nil {
		slog.Error("failed to bootstrap super admin", "error", err)
		os.Exit(1)
	}

	notifier, err := notify.New(cfg)
	if err != nil {
		slog.Error("failed to create notifier", "error", err)
		os.Exit(1)
	}

	// Initialize handler and routes
	h := httpapi.New(httpapi.Deps{
		Cfg:         cfg,
		Users:       userService,
		Stores:      storeService,
		Redemptions: redemptionService,
		Claims:      claimService,
		Visits:      visitService,
		Preview:     previewService,
		Notifier:    notifier,
	})

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           h.Router(),
		ReadHeaderTimeout: config.ReadHeaderTimeout,
	}

	// Start expired session cleanup goroutine
	go func() {
		ticker := time.NewTicker(sessionCleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				userService.CleanupSessions(context.Background())
			}
		}
	}()

	// Start server
	go func() {
		slog.Info("server listening", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
	slog.Info("server stopped gracefully")
}
