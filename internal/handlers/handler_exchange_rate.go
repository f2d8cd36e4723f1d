package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/vehicle_export_storefront/internal/core/ports/services"
	"github.com/SscSPs/vehicle_export_storefront/internal/dto"
	"github.com/SscSPs/vehicle_export_storefront/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvc
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(ers portssvc.ExchangeRateSvc) *exchangeRateHandler {
	return &exchangeRateHandler{
		exchangeRateService: ers,
	}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvc) {
	h := newExchangeRateHandler(exchangeRateService)
	rg.GET("/exchange-rate", h.getExchangeRate)
}

// getExchangeRate godoc
// @Summary Get the USD to JPY exchange rate
// @Description Returns the current USD→JPY rate. Served from a shared cache; when the provider
// @Description is unreachable the last known rate is returned with stale=true, or the configured
// @Description fallback rate with fallback=true. This endpoint never fails.
// @Tags exchange rates
// @Produce  json
// @Success 200 {object} dto.ExchangeRateResponse
// @Router /api/exchange-rate [get]
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rate := h.exchangeRateService.GetExchangeRate(c.Request.Context())
	if rate.Fallback || rate.Stale {
		logger.Warn("Serving degraded exchange rate",
			slog.String("rate", rate.Rate.String()),
			slog.Bool("stale", rate.Stale),
			slog.Bool("fallback", rate.Fallback),
		)
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}
