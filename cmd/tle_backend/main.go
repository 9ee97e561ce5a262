package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/brokerage_trade_ledger/internal/adapters/accountingapi"
	"github.com/SscSPs/brokerage_trade_ledger/internal/core/services"
	"github.com/SscSPs/brokerage_trade_ledger/internal/handlers"
	"github.com/SscSPs/brokerage_trade_ledger/internal/jobs"
	"github.com/SscSPs/brokerage_trade_ledger/internal/middleware"
	"github.com/SscSPs/brokerage_trade_ledger/internal/platform/config"
	"github.com/SscSPs/brokerage_trade_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/brokerage_trade_ledger/internal/utils"
	"github.com/SscSPs/brokerage_trade_ledger/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 15 * time.Second

// @title Brokerage Trade Ledger API
// @version 1.0
// @description Commission calculation, trade finalization and ledger posting for a real-estate brokerage.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.ClosePgxPool(dbPool)

	logger.Info("Running database migrations...")
	if err := database.RunMigrations(dbPool, "file://migrations"); err != nil {
		return err
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	ledgerClient := accountingapi.NewClient(cfg.AccountingAPIURL, cfg.AccountingAPIToken, cfg.AccountingAPITimeout)
	tracker := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer tracker.Close()

	serviceContainer, err := services.NewServiceContainer(cfg, repos, services.Gateways{
		Ledger:  ledgerClient,
		Tracker: tracker,
	})
	if err != nil {
		return err
	}

	syncJob, err := jobs.NewLedgerSyncJob(serviceContainer.Ledger, jobs.LedgerSyncConfig{
		Schedule: cfg.LedgerSyncSchedule,
		Location: cfg.Timezone,
	}, logger)
	if err != nil {
		return err
	}
	if ledgerClient.Enabled() {
		syncJob.Start()
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := handlers.RegisterValidators(); err != nil {
		return err
	}

	apiLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		return err
	}

	r := gin.New()
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:    []string{"Content-Disposition", middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		middleware.RateLimit(apiLimiter),
		middleware.PosthogMiddleware(tracker),
	)
	if err := r.SetTrustedProxies(nil); err != nil {
		return err
	}
	if err := handlers.RegisterRoutes(r, cfg, serviceContainer); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
	if err := syncJob.Stop(shutdownCtx); err != nil {
		logger.Error("Ledger sync job shutdown failed", slog.String("error", err.Error()))
	}
	logger.Info("Server stopped")
	return nil
}
