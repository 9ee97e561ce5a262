package handlers

import (
	"fmt"
	"net/http"

	"github.com/SscSPs/brokerage_trade_ledger/cmd/docs"
	portssvc "github.com/SscSPs/brokerage_trade_ledger/internal/core/ports/services"
	"github.com/SscSPs/brokerage_trade_ledger/internal/middleware"
	"github.com/SscSPs/brokerage_trade_ledger/internal/platform/config"
	"github.com/SscSPs/brokerage_trade_ledger/internal/utils/validation"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// loginRateLimit caps login attempts per client IP.
const loginRateLimit = "5-M"

// RegisterValidators adds the money, percent and date rules to gin's request binding.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}
	return validation.Register(v)
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	loginLimiter, err := middleware.NewRateLimiter(loginRateLimit)
	if err != nil {
		return err
	}
	registerAuthRoutes(r, services, loginLimiter)

	setupAPIV1Routes(r, cfg, services)

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerUserRoutes(v1, services.User)
	registerCommissionRoutes(v1, services.Commission)
	registerEFTRoutes(v1, services.EFT)
	registerLedgerRoutes(v1, services.Ledger)
	trade := registerTradeRoutes(v1, services.Trade, services.Finalization)
	registerReportRoutes(trade, services.Reporting)
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

