package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/vehicle_export_storefront/internal/core/ports/services"
	"github.com/SscSPs/vehicle_export_storefront/internal/dto"
	"github.com/SscSPs/vehicle_export_storefront/internal/middleware"
	"github.com/SscSPs/vehicle_export_storefront/internal/utils"
	"github.com/SscSPs/vehicle_export_storefront/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// vehicleHandler serves the home page, the inventory and the shipping calculator.
type vehicleHandler struct {
	catalogService portssvc.CatalogSvcFacade
	storefront     *storefront
	posthog        *utils.PosthogClientWrapper
}

func newVehicleHandler(cs portssvc.CatalogSvcFacade, sf *storefront, ph *utils.PosthogClientWrapper) *vehicleHandler {
	return &vehicleHandler{
		catalogService: cs,
		storefront:     sf,
		posthog:        ph,
	}
}

// registerVehicleRoutes registers the store's catalog pages.
func registerVehicleRoutes(rg *gin.RouterGroup, cs portssvc.CatalogSvcFacade, sf *storefront, ph *utils.PosthogClientWrapper) {
	h := newVehicleHandler(cs, sf, ph)

	rg.GET("", h.getHome)
	rg.GET("/", h.getHome)

	vehicles := rg.Group("/vehicles")
	{
		vehicles.GET("", h.listVehicles)
		vehicles.GET("/:vehicleId", h.getVehicle)
		vehicles.GET("/:vehicleId/shipping", h.getShipping)
		vehicles.POST("/:vehicleId/quote", h.requestQuote)
	}
}

// getHome godoc
// @Summary Store home page
// @Description Returns the landing page: store branding, notice bar, hero slides, promo banners and featured vehicles.
// @Tags storefront
// @Produce json
// @Param storeSlug path string true "Store slug"
// @Success 200 {object} dto.HomeResponse
// @Router /{storeSlug} [get]
func (h *vehicleHandler) getHome(c *gin.Context) {
	page := h.storefront.load(c)

	featured := h.catalogService.FeaturedVehicles(c.Request.Context(), page.slug)
	cards := dto.ToListVehicleCardResponse(featured, page.price, page.favorites.IsFavorite)

	c.JSON(http.StatusOK, dto.ToHomeResponse(h.storefront.storeResponse(c, page), cards))
}

// listVehicles godoc
// @Summary List vehicles
// @Description Returns one page of the store's inventory with prices in the visitor's currency.
// @Description A pageToken from a previous page overrides limit and offset.
// @Tags storefront
// @Produce json
// @Param storeSlug path string true "Store slug"
// @Param make query string false "Make"
// @Param model query string false "Model"
// @Param minYear query int false "Minimum year"
// @Param maxYear query int false "Maximum year"
// @Param minPrice query int false "Minimum price"
// @Param maxPrice query int false "Maximum price"
// @Param fuelType query string false "Fuel type"
// @Param transmission query string false "Transmission"
// @Param bodyType query string false "Body type"
// @Param limit query int false "Page size" default(12)
// @Param offset query int false "Offset"
// @Param sort query string false "Sort order"
// @Param clearance query bool false "Clearance stock only"
// @Param pageToken query string false "Token for the next page"
// @Success 200 {object} dto.VehicleListPageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /{storeSlug}/vehicles [get]
func (h *vehicleHandler) listVehicles(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var query dto.VehicleListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Failed to bind vehicle list query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + bindErrorMessage(err)})
		return
	}
	if query.PageToken != "" {
		offset, limit, err := pagination.DecodeOffsetToken(query.PageToken)
		if err != nil {
			logger.Warn("Invalid page token", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid page token"})
			return
		}
		query.Offset = &offset
		query.Limit = &limit
	}

	page := h.storefront.load(c)
	list, err := h.catalogService.ListVehicles(c.Request.Context(), page.slug, query.ToFilter())
	if err != nil {
		writeServiceError(c, logger, err, "listing vehicles")
		return
	}

	c.JSON(http.StatusOK, dto.VehicleListPageResponse{
		Store: h.storefront.storeResponse(c, page),
		VehicleListResponse: dto.VehicleListResponse{
			Vehicles:      dto.ToListVehicleCardResponse(list.Data, page.price, page.favorites.IsFavorite),
			Total:         list.Meta.Total,
			Limit:         list.Meta.Limit,
			Offset:        list.Meta.Offset,
			NextPageToken: pagination.NextOffsetToken(list.Meta.Offset, list.Meta.Limit, list.Meta.Total),
		},
	})
}

// getVehicle godoc
// @Summary Get a vehicle
// @Description Returns the vehicle page with FOB and CIF prices in the visitor's currency.
// @Tags storefront
// @Produce json
// @Param storeSlug path string true "Store slug"
// @Param vehicleId path string true "Vehicle ID"
// @Success 200 {object} dto.VehicleDetailPageResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /{storeSlug}/vehicles/{vehicleId} [get]
func (h *vehicleHandler) getVehicle(c *gin.Context) {
	vehicleID := c.Param("vehicleId")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("vehicle_id", vehicleID))

	page := h.storefront.load(c)
	vehicle, err := h.catalogService.GetVehicle(c.Request.Context(), page.slug, vehicleID)
	if err != nil {
		writeServiceError(c, logger, err, "getting vehicle")
		return
	}

	c.JSON(http.StatusOK, dto.VehicleDetailPageResponse{
		Store:                 h.storefront.storeResponse(c, page),
		VehicleDetailResponse: dto.ToVehicleDetailResponse(*vehicle, page.price, page.favorites.IsFavorite(vehicle.ID)),
	})
}

// getShipping godoc
// @Summary Shipping calculator
// @Description Lists destination countries and, for the chosen country, its ports. When a port is
// @Description selected (or the country has a default port) the CIF breakdown to it is included.
// @Tags storefront
// @Produce json
// @Param storeSlug path string true "Store slug"
// @Param vehicleId path string true "Vehicle ID"
// @Param country query string false "Destination country ID"
// @Param portId query string false "Destination port ID"
// @Success 200 {object} dto.ShippingOptionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /{storeSlug}/vehicles/{vehicleId}/shipping [get]
func (h *vehicleHandler) getShipping(c *gin.Context) {
	vehicleID := c.Param("vehicleId")
	countryID := c.Query("country")
	portID := c.Query("portId")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(
		slog.String("vehicle_id", vehicleID),
		slog.String("country_id", countryID),
		slog.String("port_id", portID),
	)

	page := h.storefront.load(c)
	opts, err := h.catalogService.GetShippingOptions(c.Request.Context(), page.slug, vehicleID, countryID, portID)
	if err != nil {
		writeServiceError(c, logger, err, "calculating shipping")
		return
	}

	c.JSON(http.StatusOK, dto.ToShippingOptionsResponse(*opts, page.price))
}

// requestQuote godoc
// @Summary Request a CIF quote
// @Description Sends a quote request for the vehicle to the chosen port.
// @Tags storefront
// @Accept json
// @Produce json
// @Param storeSlug path string true "Store slug"
// @Param vehicleId path string true "Vehicle ID"
// @Param quote body dto.QuoteRequest true "Quote details"
// @Success 201 {object} dto.SubmissionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /{storeSlug}/vehicles/{vehicleId}/quote [post]
func (h *vehicleHandler) requestQuote(c *gin.Context) {
	vehicleID := c.Param("vehicleId")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("vehicle_id", vehicleID))

	var req dto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RequestQuote", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + bindErrorMessage(err)})
		return
	}

	slug := middleware.GetStoreSlug(c)
	receipt, err := h.catalogService.RequestQuote(c.Request.Context(), req.ToQuoteRequest(slug, vehicleID))
	if err != nil {
		writeServiceError(c, logger, err, "requesting quote")
		return
	}

	logger.Info("Quote requested", slog.String("port_id", req.PortID))
	middleware.PosthogEvent(c, h.posthog, "storefront_quote_requested", map[string]any{
		"vehicle_id": vehicleID,
		"port_id":    req.PortID,
	})
	c.JSON(http.StatusCreated, dto.ToSubmissionResponse(receipt, "Your quote request has been sent."))
}
