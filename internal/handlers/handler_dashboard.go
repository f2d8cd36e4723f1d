package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/vehicle_export_storefront/internal/apperrors"
	portssvc "github.com/SscSPs/vehicle_export_storefront/internal/core/ports/services"
	"github.com/SscSPs/vehicle_export_storefront/internal/dto"
	"github.com/SscSPs/vehicle_export_storefront/internal/middleware"
	"github.com/SscSPs/vehicle_export_storefront/internal/platform/config"
	"github.com/SscSPs/vehicle_export_storefront/internal/utils"
	"github.com/gin-gonic/gin"
)

// dashboardHandler serves the signed-in customer's pages. Everything is read from the ERP with
// the customer's own session.
type dashboardHandler struct {
	customerService portssvc.CustomerSvcFacade
	catalogService  portssvc.VehicleReaderSvc
	storefront      *storefront
	secureCookies   bool
	posthog         *utils.PosthogClientWrapper
}

func newDashboardHandler(cs portssvc.CustomerSvcFacade, vs portssvc.VehicleReaderSvc, sf *storefront, cfg *config.Config, ph *utils.PosthogClientWrapper) *dashboardHandler {
	return &dashboardHandler{
		customerService: cs,
		catalogService:  vs,
		storefront:      sf,
		secureCookies:   cfg.CookieSecure,
		posthog:         ph,
	}
}

// registerDashboardRoutes registers the customer area behind the session guard.
func registerDashboardRoutes(rg *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer, sf *storefront, ph *utils.PosthogClientWrapper) {
	h := newDashboardHandler(services.Customer, services.Catalog, sf, cfg, ph)

	dash := rg.Group("/dashboard", middleware.SessionGuard(cfg.SessionJWTSecret, cfg.CookieSecure))
	{
		dash.GET("", h.getSummary)
		dash.GET("/", h.getSummary)
		dash.GET("/bids", h.listBids)
		dash.GET("/favorites", h.listFavorites)
		dash.GET("/wallet", h.getWallet)
		dash.POST("/wallet/deposit", h.submitDeposit)
		dash.GET("/profile", h.getProfile)
		dash.PUT("/profile", h.updateProfile)
	}
}

// handleError treats a session the ERP rejected like a missing one: the cookie is dropped and
// page requests are sent back to the login page.
func (h *dashboardHandler) handleError(c *gin.Context, logger *slog.Logger, err error, action string) {
	if errors.Is(err, apperrors.ErrUnauthorized) {
		logger.Warn("ERP rejected customer session", slog.String("error", err.Error()))
		middleware.ClearSessionCookie(c, h.secureCookies)
		if c.Request.Method == http.MethodGet {
			c.Redirect(http.StatusFound, middleware.LoginRedirectLocation(c.Request, middleware.GetStoreSlug(c)))
			return
		}
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Your session has expired. Please log in again."})
		return
	}
	writeServiceError(c, logger, err, action)
}

// getSummary godoc
// @Summary Dashboard overview
// @Description Returns the customer's profile, bid counts, pending deposits, wallet balance and watchlist size.
// @Tags dashboard
// @Produce json
// @Param storeSlug path string true "Store slug"
// @Success 200 {object} dto.DashboardSummaryResponse
// @Failure 302 {string} string "Redirect to login"
// @Failure 502 {object} ErrorResponse
// @Security SessionCookie
// @Router /{storeSlug}/dashboard [get]
func (h *dashboardHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	token, _ := middleware.GetSessionToken(c)

	page := h.storefront.load(c)
	summary, err := h.customerService.GetDashboardSummary(c.Request.Context(), page.slug, token)
	if err != nil {
		h.handleError(c, logger, err, "loading dashboard")
		return
	}

	watchlist := len(page.favorites.List())
	c.JSON(http.StatusOK, dto.ToDashboardSummaryResponse(h.storefront.storeResponse(c, page), *summary, watchlist, page.price))
}

// listBids godoc
// @Summary List the customer's bids
// @Tags dashboard
// @Produce json
// @Param storeSlug path string true "Store slug"
// @Success 200 {object} dto.BidsPageResponse
// @Failure 302 {string} string "Redirect to login"
// @Failure 502 {object} ErrorResponse
// @Security SessionCookie
// @Router /{storeSlug}/dashboard/bids [get]
func (h *dashboardHandler) listBids(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	token, _ := middleware.GetSessionToken(c)

	page := h.storefront.load(c)
	bids, err := h.customerService.ListBids(c.Request.Context(), page.slug, token)
	if err != nil {
		h.handleError(c, logger, err, "listing bids")
		return
	}

	c.JSON(http.StatusOK, dto.BidsPageResponse{
		Store: h.storefront.storeResponse(c, page),
		Bids:  dto.ToListBidResponse(bids, page.price),
	})
}

// listFavorites godoc
// @Summary Watchlist
// @Description Resolves the visitor's saved vehicles. Ids the store no longer lists are returned in missing.
// @Tags dashboard
// @Produce json
// @Param storeSlug path string true "Store slug"
// @Success 200 {object} dto.FavoritesPageResponse
// @Failure 302 {string} string "Redirect to login"
// @Failure 502 {object} ErrorResponse
// @Security SessionCookie
// @Router /{storeSlug}/dashboard/favorites [get]
func (h *dashboardHandler) listFavorites(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	page := h.storefront.load(c)
	vehicles, missing, err := h.catalogService.GetVehiclesByID(c.Request.Context(), page.slug, page.favorites.List())
	if err != nil {
		h.handleError(c, logger, err, "loading watchlist")
		return
	}

	c.JSON(http.StatusOK, dto.FavoritesPageResponse{
		Store:    h.storefront.storeResponse(c, page),
		Vehicles: dto.ToListVehicleCardResponse(vehicles, page.price, func(string) bool { return true }),
		Missing:  missing,
	})
}

// getWallet godoc
// @Summary Wallet
// @Description Returns the wallet balance and its transactions.
// @Tags dashboard
// @Produce json
// @Param storeSlug path string true "Store slug"
// @Success 200 {object} dto.WalletPageResponse
// @Failure 302 {string} string "Redirect to login"
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security SessionCookie
// @Router /{storeSlug}/dashboard/wallet [get]
func (h *dashboardHandler) getWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	token, _ := middleware.GetSessionToken(c)

	page := h.storefront.load(c)
	statement, err := h.customerService.GetWalletStatement(c.Request.Context(), page.slug, token)
	if err != nil {
		h.handleError(c, logger, err, "loading wallet")
		return
	}

	c.JSON(http.StatusOK, dto.ToWalletPageResponse(h.storefront.storeResponse(c, page), *statement, page.price))
}

// submitDeposit godoc
// @Summary Announce a deposit
// @Description Records a bank transfer into the wallet. When the store requires deposits the amount
// @Description must reach the store's minimum.
// @Tags dashboard
// @Accept json
// @Produce json
// @Param storeSlug path string true "Store slug"
// @Param deposit body dto.DepositRequest true "Deposit"
// @Success 201 {object} dto.SubmissionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security SessionCookie
// @Router /{storeSlug}/dashboard/wallet/deposit [post]
func (h *dashboardHandler) submitDeposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	token, _ := middleware.GetSessionToken(c)

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SubmitDeposit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + bindErrorMessage(err)})
		return
	}

	page := h.storefront.load(c)
	deposit := req.ToDepositRequest()
	receipt, err := h.customerService.SubmitDeposit(c.Request.Context(), page.slug, *page.state.Tenant, token, deposit)
	if err != nil {
		h.handleError(c, logger, err, "submitting deposit")
		return
	}

	logger.Info("Deposit submitted", slog.String("amount", deposit.Amount.String()), slog.String("currency", string(deposit.Currency)))
	middleware.PosthogEvent(c, h.posthog, "storefront_deposit_submitted", map[string]any{
		"currency": string(deposit.Currency),
	})
	c.JSON(http.StatusCreated, dto.ToSubmissionResponse(receipt, "Your deposit has been submitted and is pending review."))
}

// getProfile godoc
// @Summary Customer profile
// @Tags dashboard
// @Produce json
// @Param storeSlug path string true "Store slug"
// @Success 200 {object} dto.ProfilePageResponse
// @Failure 302 {string} string "Redirect to login"
// @Failure 502 {object} ErrorResponse
// @Security SessionCookie
// @Router /{storeSlug}/dashboard/profile [get]
func (h *dashboardHandler) getProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	token, _ := middleware.GetSessionToken(c)

	page := h.storefront.loadWithoutPrices(c)
	profile, err := h.customerService.GetProfile(c.Request.Context(), page.slug, token)
	if err != nil {
		h.handleError(c, logger, err, "loading profile")
		return
	}

	c.JSON(http.StatusOK, dto.ProfilePageResponse{Store: h.storefront.storeResponse(c, page), Profile: *profile})
}

// updateProfile godoc
// @Summary Update customer profile
// @Tags dashboard
// @Accept json
// @Produce json
// @Param storeSlug path string true "Store slug"
// @Param profile body dto.ProfileUpdateRequest true "Profile"
// @Success 200 {object} dto.ProfilePageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security SessionCookie
// @Router /{storeSlug}/dashboard/profile [put]
func (h *dashboardHandler) updateProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	token, _ := middleware.GetSessionToken(c)

	var req dto.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateProfile", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + bindErrorMessage(err)})
		return
	}

	page := h.storefront.loadWithoutPrices(c)
	profile, err := h.customerService.UpdateProfile(c.Request.Context(), page.slug, token, req.ToProfile())
	if err != nil {
		h.handleError(c, logger, err, "updating profile")
		return
	}

	logger.Info("Customer profile updated")
	c.JSON(http.StatusOK, dto.ProfilePageResponse{Store: h.storefront.storeResponse(c, page), Profile: *profile})
}
