package handlers

import (
	"net/http"

	"github.com/SscSPs/vehicle_export_storefront/cmd/docs"
	portssvc "github.com/SscSPs/vehicle_export_storefront/internal/core/ports/services"
	"github.com/SscSPs/vehicle_export_storefront/internal/middleware"
	"github.com/SscSPs/vehicle_export_storefront/internal/platform/config"
	"github.com/SscSPs/vehicle_export_storefront/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	apiLimiter *limiter.Limiter,
	posthog *utils.PosthogClientWrapper,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	registerRootRoutes(r, cfg.DefaultStoreSlug)

	setupAPIRoutes(r, cfg, services, apiLimiter)

	setupStoreRoutes(r, cfg, services, posthog)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIRoutes configures the browser-facing /api group: CORS and per-IP rate limiting.
func setupAPIRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	apiLimiter *limiter.Limiter,
) {
	handlers := []gin.HandlerFunc{}
	if len(cfg.CORSAllowedOrigins) > 0 {
		handlers = append(handlers, cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
			AllowCredentials: true,
		}))
	}
	if apiLimiter != nil {
		handlers = append(handlers, middleware.RateLimit(apiLimiter))
	}

	api := r.Group("/api", handlers...)
	registerExchangeRateRoutes(api, services.ExchangeRate)
	registerERPProxyRoutes(api, cfg.ERPBaseURL, cfg.ERPAPIKey)
}

// setupStoreRoutes configures the /:storeSlug group. Custom-domain requests arrive here already
// rewritten by the host router.
func setupStoreRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthog *utils.PosthogClientWrapper,
) {
	sf := newStorefront(cfg, services.ExchangeRate)

	store := r.Group("/:storeSlug", middleware.TenantContext(services.TenantConfig))

	registerVehicleRoutes(store, services.Catalog, sf, posthog)
	registerContentRoutes(store, services.Catalog, sf, posthog)
	registerPreferencesRoutes(store, sf, posthog)
	registerAuthRoutes(store, cfg, services.Customer, posthog)
	registerDashboardRoutes(store, cfg, services, sf, posthog)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
