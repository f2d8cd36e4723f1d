package middleware

import (
	"context"
	"log/slog"

	"github.com/SscSPs/vehicle_export_storefront/internal/tenant"
	"github.com/gin-gonic/gin"
)

// TenantContext mounts a tenant provider for the :storeSlug of the route and exposes its state
// to handlers. A failed load still yields a usable default tenant.
func TenantContext(fetcher tenant.ConfigFetcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param(storeSlugParam)
		enrichLogger(c, slog.String("store_slug", slug))
		logger := GetLoggerFromCtx(c.Request.Context())

		state := tenant.NewProvider(fetcher, logger).Mount(c.Request.Context(), slug)
		if state.Error != "" {
			logger.Warn("Serving store with default configuration", slog.String("error", state.Error))
		}

		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), tenantStateKey, state))
		c.Next()
	}
}
