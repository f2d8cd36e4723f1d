package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

// UpstreamAuthorization decides which credential the ERP proxy forwards: the caller's own
// Authorization header, else the customer's session cookie, else the storefront's API key.
func UpstreamAuthorization(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := strings.TrimSpace(c.GetHeader("Authorization"))
		method := "header"
		if auth == "" {
			if token, err := c.Cookie(SessionCookieName); err == nil && token != "" {
				auth = "Bearer " + token
				method = "session"
			} else if apiKey != "" {
				auth = "Bearer " + apiKey
				method = "api_key"
			} else {
				method = "anonymous"
			}
		}

		c.Set("authMethod", method)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), upstreamAuthKey, auth))
		c.Next()
	}
}
