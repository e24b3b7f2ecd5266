package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/nexkeep/internal/adapters/email"
	"github.com/SscSPs/nexkeep/internal/adapters/pdf"
	"github.com/SscSPs/nexkeep/internal/adapters/storage"
	"github.com/SscSPs/nexkeep/internal/core/services"
	"github.com/SscSPs/nexkeep/internal/handlers"
	"github.com/SscSPs/nexkeep/internal/middleware"
	"github.com/SscSPs/nexkeep/internal/platform/config"
	"github.com/SscSPs/nexkeep/internal/repositories/database/pgsql"
	"github.com/SscSPs/nexkeep/internal/utils"
	"github.com/SscSPs/nexkeep/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title NexKeep API
// @version 1.0
// @description Budget ledger, invoicing and reimbursement backend.

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

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...", slog.String("source", cfg.MigrationsPath))
	res, err := database.Migrate(cfg.DatabaseURL, cfg.MigrationsPath, 0)
	if err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if res.Dirty {
		logger.Error("Database schema is dirty", slog.Uint64("version", uint64(res.Version)))
		os.Exit(1)
	}
	if res.Changed {
		logger.Info("Database migrations applied successfully.", slog.Uint64("version", uint64(res.Version)))
	} else {
		logger.Info("No new migrations to apply.", slog.Uint64("version", uint64(res.Version)))
	}

	files, err := storage.NewFileStore(ctx, cfg.GCSBucket, cfg.GCSCredentialsFile)
	if err != nil {
		logger.Error("Failed to initialize file storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if c, ok := files.(io.Closer); ok {
		defer c.Close()
	}
	if cfg.GCSBucket == "" {
		logger.Warn("GCS_BUCKET not set, uploads are disabled")
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(cfg, repos, services.Gateways{
		Notifier: email.NewNotifier(cfg.ResendAPIKey, cfg.ResendFrom),
		Files:    files,
		Renderer: pdf.NewInvoiceRenderer(),
	})

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		middleware.MetricsMiddleware(),
		gin.Recovery(),
		cors.New(corsConfig(cfg)),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, posthogClient)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown failed", slog.String("error", err.Error()))
		}
	}()

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Server stopped")
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	c.AllowOrigins = cfg.CORSAllowedOrigins
	c.AllowHeaders = append(c.AllowHeaders, "Authorization")
	c.AllowCredentials = true
	c.ExposeHeaders = []string{"Content-Disposition"}
	return c
}
