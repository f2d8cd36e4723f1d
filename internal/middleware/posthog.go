package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/SscSPs/vehicle_export_storefront/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// VisitorID assigns every browser an anonymous id kept in a long-lived cookie. It is the
// distinct id for analytics when no customer is signed in.
func VisitorID(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(VisitorCookieName)
		if err != nil || id == "" {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(VisitorCookieName, id, visitorCookieMaxAge, "/", "", secure, true)
		}
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), visitorIDKey, id))
		c.Next()
	}
}

// PosthogMiddleware creates a Gin middleware handler that tracks storefront page views with PostHog
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip if PostHog is not initialized
		if posthogClient == nil || !posthogClient.IsInitialized() {
			c.Next()
			return
		}

		c.Next()

		// Skip failed requests and redirects
		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusMultipleChoices {
			return
		}

		distinctID, ok := distinctID(c)
		if !ok {
			return
		}

		// "/:storeSlug/vehicles/:vehicleId" -> "vehicles_:vehicleId"
		route := strings.TrimPrefix(c.FullPath(), "/:"+storeSlugParam)
		eventName := strings.ReplaceAll(strings.Trim(route, "/"), "/", "_")
		if eventName == "" {
			eventName = "home"
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
			"store_slug":  GetStoreSlug(c),
		}
		if len(c.Params) > 1 {
			params := make(map[string]string)
			for _, param := range c.Params {
				if param.Key != storeSlugParam {
					params[param.Key] = param.Value
				}
			}
			props["params"] = params
		}

		posthogClient.Enqueue(distinctID, "storefront_"+eventName, props)
	}
}

// PosthogEvent is a helper to manually send custom events from handlers when needed
func PosthogEvent(c *gin.Context, posthogClient *utils.PosthogClientWrapper, eventName string, properties map[string]any) {
	if posthogClient == nil || !posthogClient.IsInitialized() {
		return
	}
	distinctID, ok := distinctID(c)
	if !ok {
		return
	}
	if properties == nil {
		properties = make(map[string]any)
	}
	properties["store_slug"] = GetStoreSlug(c)
	properties["path"] = c.Request.URL.Path

	posthogClient.Enqueue(distinctID, eventName, properties)
}

func distinctID(c *gin.Context) (string, bool) {
	if id, ok := GetCustomerIDFromContext(c); ok {
		return id, true
	}
	return GetVisitorID(c)
}
