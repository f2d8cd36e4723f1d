package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SscSPs/vehicle_export_storefront/internal/core/domain"
	"github.com/SscSPs/vehicle_export_storefront/internal/hostrouter"
	"github.com/SscSPs/vehicle_export_storefront/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// SessionGuard protects customer dashboard pages. Visitors without a session are redirected to
// the store's login page with a redirect back to where they were going. When jwtSecret is set
// the session token is verified locally before it is forwarded to the ERP.
func SessionGuard(jwtSecret string, secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			logger.Info("No customer session, redirecting to login")
			redirectToLogin(c)
			return
		}

		ctx := context.WithValue(c.Request.Context(), sessionTokenKey, token)

		if jwtSecret != "" {
			claims, err := utils.ParseSessionToken(token, jwtSecret)
			if err != nil {
				msg := "Invalid session token"
				if errors.Is(err, jwt.ErrTokenExpired) {
					msg = "Session has expired"
				}
				logger.Warn(msg, slog.String("error", err.Error()))
				ClearSessionCookie(c, secureCookies)
				redirectToLogin(c)
				return
			}
			if claims.Subject != "" {
				ctx = context.WithValue(ctx, customerIDKey, claims.Subject)
				ctx = WithLogger(ctx, logger.With(slog.String("customer_id", claims.Subject)))
			}
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// LoginRedirectLocation builds /<slug>/auth/login?redirect=<store-relative path>.
func LoginRedirectLocation(req *http.Request, slug string) string {
	// Routed paths always start with the slug, rewritten or not.
	target := strings.Trim(strings.TrimPrefix(req.URL.EscapedPath(), "/"+url.PathEscape(slug)), "/")
	if target == "" {
		target = "dashboard"
	}
	target = strings.NewReplacer("&", "%26", "+", "%2B").Replace(target)
	return hostrouter.PublicPath(req, slug, "auth/login") + "?redirect=" + target
}

func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, LoginRedirectLocation(c.Request, GetStoreSlug(c)))
	c.Abort()
}

// SetSessionCookie stores the ERP session on the visitor's browser.
func SetSessionCookie(c *gin.Context, session *domain.Session, secure bool) {
	maxAge := sessionCookieFallback
	if !session.ExpiresAt.IsZero() {
		maxAge = int(time.Until(session.ExpiresAt).Seconds())
		if maxAge <= 0 {
			maxAge = -1
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, session.Token, maxAge, "/", "", secure, true)
}

func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", secure, true)
}
