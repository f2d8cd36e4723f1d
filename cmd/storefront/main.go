package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/SscSPs/vehicle_export_storefront/internal/apiclient"
	"github.com/SscSPs/vehicle_export_storefront/internal/core/services"
	"github.com/SscSPs/vehicle_export_storefront/internal/fxrate"
	"github.com/SscSPs/vehicle_export_storefront/internal/handlers"
	"github.com/SscSPs/vehicle_export_storefront/internal/hostrouter"
	"github.com/SscSPs/vehicle_export_storefront/internal/middleware"
	"github.com/SscSPs/vehicle_export_storefront/internal/platform/config"
	"github.com/SscSPs/vehicle_export_storefront/internal/utils"
	"github.com/SscSPs/vehicle_export_storefront/internal/utils/retry"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/ulule/limiter/v3"
)

const (
	fxProviderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// @title Vehicle Export Storefront API
// @version 1.0
// @description Multi-tenant storefront for vehicle exporters backed by the ERP public export API.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name session
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	// Prices are numbers on the wire, not strings.
	decimal.MarshalJSONWithoutQuotes = true

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	redisClient := newRedisClient(cfg.RedisURL, logger)
	if redisClient != nil {
		defer func() {
			if cerr := redisClient.Close(); cerr != nil {
				logger.Error("Error closing redis client", slog.String("error", cerr.Error()))
			}
		}()
	}

	apiLimiter := newAPILimiter(cfg.RateLimit, redisClient, logger)

	fxCache := fxrate.NewCache(
		fxrate.NewFrankfurterSource(cfg.FXProviderURL, fxProviderTimeout),
		fxrate.WithTTL(cfg.FXCacheTTL),
		fxrate.WithFallbackRate(cfg.FXFallbackRate),
		fxrate.WithLogger(logger),
	)

	policy := retry.DefaultPolicy()
	policy.MaxRetries = cfg.APIRetryCount
	policy.BaseDelay = cfg.APIRetryBaseWait
	erpClient := apiclient.New(cfg.APIBaseURL,
		apiclient.WithAPIKey(cfg.ERPAPIKey),
		apiclient.WithPolicy(policy),
		apiclient.WithLogger(logger),
	)
	logger.Info("ERP client configured", slog.String("base_url", cfg.APIBaseURL), slog.Int("max_retries", cfg.APIRetryCount))

	serviceContainer := services.NewServiceContainer(apiclient.NewRepositoryProvider(erpClient), fxCache)

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	r := gin.New()
	// Store slugs and custom domains are distinct paths; "/acme/" must not redirect to "/acme".
	r.RedirectTrailingSlash = false

	// Global middleware (logging, recovery)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.RequestMetrics(),
		middleware.VisitorID(cfg.CookieSecure),
		middleware.PosthogMiddleware(posthogClient),
	)

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, apiLimiter, posthogClient)

	router := hostrouter.New(hostrouter.Config{
		PlatformSuffixes: cfg.PlatformDomainSuffixes,
		DefaultHost:      cfg.DefaultHost,
		Logger:           logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.Handler(r),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newRedisClient returns nil when no REDIS_URL is configured; rate limits are then per instance.
func newRedisClient(redisURL string, logger *slog.Logger) *redis.Client {
	if redisURL == "" {
		logger.Info("REDIS_URL not set, rate limiting in process memory")
		return nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.Error("Invalid REDIS_URL, rate limiting in process memory", slog.String("error", err.Error()))
		return nil
	}
	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis not reachable at startup", slog.String("error", err.Error()))
	}
	return client
}

// newAPILimiter returns nil, disabling rate limiting, when RATE_LIMIT is empty.
func newAPILimiter(rate string, redisClient *redis.Client, logger *slog.Logger) *limiter.Limiter {
	if rate == "" {
		logger.Warn("RATE_LIMIT not set, /api is not rate limited")
		return nil
	}
	lim, err := middleware.NewLimiter(rate, redisClient)
	if err != nil {
		logger.Error("Failed to create rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}
	return lim
}
