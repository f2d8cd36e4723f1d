package middleware

import (
	"strconv"
	"time"

	"github.com/SscSPs/vehicle_export_storefront/internal/metrics"
	"github.com/gin-gonic/gin"
)

// RequestMetrics records request latency by matched route, so store slugs never become labels.
func RequestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestDuration.
			WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
