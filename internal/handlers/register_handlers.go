package handlers

import (
	"log/slog"

	"github.com/SscSPs/nexkeep/cmd/docs"
	portssvc "github.com/SscSPs/nexkeep/internal/core/ports/services"
	"github.com/SscSPs/nexkeep/internal/middleware"
	"github.com/SscSPs/nexkeep/internal/platform/config"
	"github.com/SscSPs/nexkeep/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

const (
	defaultLoginRate  = "5-M"
	defaultPublicRate = "20-H"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
) {
	registerHomeRoutes(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	loginLimit := middleware.RateLimit(newLimiter(cfg.LoginRateLimit, defaultLoginRate))
	publicLimit := middleware.RateLimit(newLimiter(cfg.PublicRateLimit, defaultPublicRate))

	// Register public authentication routes
	registerAuthRoutes(r, services, loginLimit)
	registerPublicRoutes(r, services, publicLimit, cfg.MaxUploadBytes)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services, posthogClient)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the authenticated /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
) {
	v1 := r.Group("/api/v1",
		middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer),
		middleware.PosthogMiddleware(posthogClient),
	)

	registerUserRoutes(v1, services.User, services.Ledger, services.ShareToken)
	registerLedgerRoutes(v1, services.Ledger, services.Category)
	registerDirectoryRoutes(v1, services.Directory)
	registerInvoiceRoutes(v1, services.Invoice)
	registerReimbursementRoutes(v1, services.Reimbursement)
	registerUploadRoutes(v1, services.Upload, cfg.MaxUploadBytes)
}

// newLimiter builds an in-memory per-IP limiter. An invalid rate falls back to fallback.
func newLimiter(formatted, fallback string) *limiter.Limiter {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		if formatted != "" {
			slog.Warn("Invalid rate limit, using default", slog.String("rate", formatted), slog.String("default", fallback))
		}
		rate, _ = limiter.NewRateFromFormatted(fallback)
	}
	return limiter.New(memory.NewStore(), rate)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
