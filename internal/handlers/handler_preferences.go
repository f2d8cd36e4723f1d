package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/vehicle_export_storefront/internal/dto"
	"github.com/SscSPs/vehicle_export_storefront/internal/middleware"
	"github.com/SscSPs/vehicle_export_storefront/internal/utils"
	"github.com/gin-gonic/gin"
)

// preferencesHandler edits the visitor's cookie-held currency, locale and favorites.
type preferencesHandler struct {
	storefront *storefront
	posthog    *utils.PosthogClientWrapper
}

func newPreferencesHandler(sf *storefront, ph *utils.PosthogClientWrapper) *preferencesHandler {
	return &preferencesHandler{storefront: sf, posthog: ph}
}

// registerPreferencesRoutes registers the preference and favorites endpoints.
func registerPreferencesRoutes(rg *gin.RouterGroup, sf *storefront, ph *utils.PosthogClientWrapper) {
	h := newPreferencesHandler(sf, ph)

	prefs := rg.Group("/preferences")
	{
		prefs.GET("", h.getPreferences)
		prefs.POST("/currency", h.setCurrency)
		prefs.POST("/currency/toggle", h.toggleCurrency)
		prefs.POST("/locale", h.setLocale)
		prefs.POST("/locale/toggle", h.toggleLocale)
	}

	favs := rg.Group("/favorites")
	{
		favs.GET("", h.listFavorites)
		favs.POST("/:vehicleId/toggle", h.toggleFavorite)
	}
}

// getPreferences godoc
// @Summary Get display preferences
// @Description Returns the visitor's currency, locale and the exchange rate used for prices.
// @Tags preferences
// @Produce json
// @Param storeSlug path string true "Store slug"
// @Success 200 {object} dto.PreferencesResponse
// @Router /{storeSlug}/preferences [get]
func (h *preferencesHandler) getPreferences(c *gin.Context) {
	page := h.storefront.load(c)
	c.JSON(http.StatusOK, dto.ToPreferencesResponse(page.currency.Preference(), page.currency.IsRateLoading()))
}

// setCurrency godoc
// @Summary Set display currency
// @Tags preferences
// @Accept json
// @Produce json
// @Param storeSlug path string true "Store slug"
// @Param preference body dto.CurrencyPreferenceRequest true "Currency"
// @Success 200 {object} dto.PreferencesResponse
// @Failure 400 {object} ErrorResponse
// @Router /{storeSlug}/preferences/currency [post]
func (h *preferencesHandler) setCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CurrencyPreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetCurrency", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + bindErrorMessage(err)})
		return
	}

	page := h.storefront.load(c)
	if err := page.currency.SetCurrency(req.Currency); err != nil {
		writeServiceError(c, logger, err, "setting currency")
		return
	}
	c.JSON(http.StatusOK, dto.ToPreferencesResponse(page.currency.Preference(), page.currency.IsRateLoading()))
}

// toggleCurrency godoc
// @Summary Toggle display currency
// @Description Switches between USD and JPY.
// @Tags preferences
// @Produce json
// @Param storeSlug path string true "Store slug"
// @Success 200 {object} dto.PreferencesResponse
// @Router /{storeSlug}/preferences/currency/toggle [post]
func (h *preferencesHandler) toggleCurrency(c *gin.Context) {
	page := h.storefront.load(c)
	next := page.currency.ToggleCurrency()
	middleware.GetLoggerFromCtx(c.Request.Context()).Debug("Toggled currency", slog.String("currency", string(next)))
	c.JSON(http.StatusOK, dto.ToPreferencesResponse(page.currency.Preference(), page.currency.IsRateLoading()))
}

// setLocale godoc
// @Summary Set display language
// @Tags preferences
// @Accept json
// @Produce json
// @Param storeSlug path string true "Store slug"
// @Param preference body dto.LocalePreferenceRequest true "Locale"
// @Success 200 {object} dto.PreferencesResponse
// @Failure 400 {object} ErrorResponse
// @Router /{storeSlug}/preferences/locale [post]
func (h *preferencesHandler) setLocale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LocalePreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetLocale", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + bindErrorMessage(err)})
		return
	}

	page := h.storefront.loadWithoutPrices(c)
	if err := page.currency.SetLocale(req.Locale); err != nil {
		writeServiceError(c, logger, err, "setting locale")
		return
	}
	c.JSON(http.StatusOK, dto.ToPreferencesResponse(page.currency.Preference(), page.currency.IsRateLoading()))
}

// toggleLocale godoc
// @Summary Toggle display language
// @Description Switches between English and Japanese.
// @Tags preferences
// @Produce json
// @Param storeSlug path string true "Store slug"
// @Success 200 {object} dto.PreferencesResponse
// @Router /{storeSlug}/preferences/locale/toggle [post]
func (h *preferencesHandler) toggleLocale(c *gin.Context) {
	page := h.storefront.loadWithoutPrices(c)
	page.currency.ToggleLocale()
	c.JSON(http.StatusOK, dto.ToPreferencesResponse(page.currency.Preference(), page.currency.IsRateLoading()))
}

// listFavorites godoc
// @Summary List saved vehicles
// @Description Returns the ids of the vehicles the visitor saved, oldest first.
// @Tags favorites
// @Produce json
// @Param storeSlug path string true "Store slug"
// @Success 200 {object} dto.FavoritesResponse
// @Router /{storeSlug}/favorites [get]
func (h *preferencesHandler) listFavorites(c *gin.Context) {
	page := h.storefront.loadWithoutPrices(c)
	c.JSON(http.StatusOK, dto.FavoritesResponse{Favorites: page.favorites.List()})
}

// toggleFavorite godoc
// @Summary Save or unsave a vehicle
// @Tags favorites
// @Produce json
// @Param storeSlug path string true "Store slug"
// @Param vehicleId path string true "Vehicle ID"
// @Success 200 {object} dto.FavoriteToggleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /{storeSlug}/favorites/{vehicleId}/toggle [post]
func (h *preferencesHandler) toggleFavorite(c *gin.Context) {
	vehicleID := strings.TrimSpace(c.Param("vehicleId"))
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("vehicle_id", vehicleID))
	if vehicleID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Vehicle ID is required"})
		return
	}

	page := h.storefront.loadWithoutPrices(c)
	saved, err := page.favorites.Toggle(vehicleID)
	if err != nil {
		logger.Error("Failed to persist favorites", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to save favorites"})
		return
	}

	middleware.PosthogEvent(c, h.posthog, "storefront_favorite_toggled", map[string]any{
		"vehicle_id": vehicleID,
		"saved":      saved,
	})
	c.JSON(http.StatusOK, dto.FavoriteToggleResponse{VehicleID: vehicleID, IsFavorite: saved})
}
