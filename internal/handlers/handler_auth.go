package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/SscSPs/vehicle_export_storefront/internal/apperrors"
	portssvc "github.com/SscSPs/vehicle_export_storefront/internal/core/ports/services"
	"github.com/SscSPs/vehicle_export_storefront/internal/dto"
	"github.com/SscSPs/vehicle_export_storefront/internal/hostrouter"
	"github.com/SscSPs/vehicle_export_storefront/internal/middleware"
	"github.com/SscSPs/vehicle_export_storefront/internal/platform/config"
	"github.com/SscSPs/vehicle_export_storefront/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

const (
	loginRateLimit      = "5-M"
	defaultLoginLanding = "dashboard"
)

// authHandler signs customers in and out of a store.
type authHandler struct {
	authService   portssvc.AuthSvc
	secureCookies bool
	posthog       *utils.PosthogClientWrapper
}

func newAuthHandler(as portssvc.AuthSvc, cfg *config.Config, ph *utils.PosthogClientWrapper) *authHandler {
	return &authHandler{
		authService:   as,
		secureCookies: cfg.CookieSecure,
		posthog:       ph,
	}
}

// registerAuthRoutes sets up the routes for authentication.
func registerAuthRoutes(rg *gin.RouterGroup, cfg *config.Config, as portssvc.AuthSvc, ph *utils.PosthogClientWrapper) {
	h := newAuthHandler(as, cfg, ph)

	// Define rate limit: 5 requests per minute
	rate, _ := limiter.NewRateFromFormatted(loginRateLimit)
	ipLimiter := limiter.New(memory.NewStore(), rate)
	limitMiddleware := limitergin.NewMiddleware(ipLimiter)

	auth := rg.Group("/auth")
	{
		auth.POST("/login", limitMiddleware, h.login)
		auth.POST("/logout", h.logout)
	}
}

// login godoc
// @Summary Customer login
// @Description Authenticates the customer against the ERP and stores the session in a cookie.
// @Description The response tells the client where to go next.
// @Tags auth
// @Accept json
// @Produce json
// @Param storeSlug path string true "Store slug"
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /{storeSlug}/auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Login", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + bindErrorMessage(err)})
		return
	}

	slug := middleware.GetStoreSlug(c)
	session, err := h.authService.Login(c.Request.Context(), slug, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) || errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Login rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
			return
		}
		writeServiceError(c, logger, err, "logging in")
		return
	}

	middleware.SetSessionCookie(c, session, h.secureCookies)
	logger.Info("Customer logged in")
	middleware.PosthogEvent(c, h.posthog, "storefront_customer_logged_in", nil)

	resp := dto.LoginResponse{Redirect: hostrouter.PublicPath(c.Request, slug, loginLanding(req.Redirect))}
	if !session.ExpiresAt.IsZero() {
		expires := dto.FormatISOTime(session.ExpiresAt)
		resp.ExpiresAt = &expires
	}
	c.JSON(http.StatusOK, resp)
}

// logout godoc
// @Summary Customer logout
// @Description Clears the session cookie.
// @Tags auth
// @Produce json
// @Param storeSlug path string true "Store slug"
// @Success 200 {object} dto.LoginResponse
// @Router /{storeSlug}/auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	middleware.ClearSessionCookie(c, h.secureCookies)
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Customer logged out")
	c.JSON(http.StatusOK, dto.LoginResponse{Redirect: hostrouter.PublicPath(c.Request, middleware.GetStoreSlug(c), "/")})
}

// loginLanding keeps redirects inside the store. Anything that could leave it lands on the dashboard.
func loginLanding(redirect string) string {
	redirect = strings.TrimSpace(redirect)
	if redirect == "" || strings.Contains(redirect, `\`) {
		return defaultLoginLanding
	}
	u, err := url.Parse(redirect)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return defaultLoginLanding
	}
	redirect = strings.TrimLeft(redirect, "/")
	if redirect == "" {
		return defaultLoginLanding
	}
	return redirect
}
