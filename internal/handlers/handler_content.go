package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/vehicle_export_storefront/internal/core/domain"
	portssvc "github.com/SscSPs/vehicle_export_storefront/internal/core/ports/services"
	"github.com/SscSPs/vehicle_export_storefront/internal/dto"
	"github.com/SscSPs/vehicle_export_storefront/internal/middleware"
	"github.com/SscSPs/vehicle_export_storefront/internal/utils"
	"github.com/gin-gonic/gin"
)

// contentPage picks the tenant section a page renders. A nil result tells the renderer to use
// its stock copy.
type contentPage struct {
	path    string
	name    string
	content func(t *domain.TenantConfig) any
}

var contentPages = []contentPage{
	{path: "/about", name: "about", content: func(t *domain.TenantConfig) any {
		if t.AboutUs == nil && t.CompanyProfile == nil {
			return nil
		}
		return dto.AboutContent{AboutUs: t.AboutUs, CompanyProfile: t.CompanyProfile}
	}},
	{path: "/faq", name: "faq", content: func(t *domain.TenantConfig) any {
		if len(t.FAQItems) == 0 {
			return nil
		}
		return dto.FAQContent{Items: t.FAQItems}
	}},
	{path: "/contact", name: "contact", content: func(t *domain.TenantConfig) any {
		return dto.ContactContent{
			ContactPage:    t.ContactPage,
			ContactEmail:   t.ContactEmail,
			ContactPhone:   t.ContactPhone,
			WhatsappNumber: t.WhatsappNumber,
			Address:        t.Address,
		}
	}},
	{path: "/bank-info", name: "bank-info", content: func(t *domain.TenantConfig) any {
		return dto.BankInfoContent{
			BankDetails:    t.BankDetails,
			RequireDeposit: t.RequireDeposit,
			MinimumDeposit: t.MinimumDeposit,
		}
	}},
	{path: "/how-to-buy/stock", name: "how-to-buy-stock", content: func(t *domain.TenantConfig) any {
		return steps(t.HowToBuyStockSteps)
	}},
	{path: "/how-to-buy/new", name: "how-to-buy-new", content: noContent},
	{path: "/how-to-bid", name: "how-to-bid", content: func(t *domain.TenantConfig) any {
		return steps(t.HowToBidSteps)
	}},
	{path: "/auctions", name: "auctions", content: noContent},
}

func steps(s []domain.HowToStep) any {
	if len(s) == 0 {
		return nil
	}
	return dto.StepsContent{Steps: s}
}

func noContent(*domain.TenantConfig) any { return nil }

// contentHandler serves the informational pages and the public contact forms.
type contentHandler struct {
	catalogService portssvc.SubmissionSvc
	storefront     *storefront
	posthog        *utils.PosthogClientWrapper
}

func newContentHandler(ss portssvc.SubmissionSvc, sf *storefront, ph *utils.PosthogClientWrapper) *contentHandler {
	return &contentHandler{
		catalogService: ss,
		storefront:     sf,
		posthog:        ph,
	}
}

// registerContentRoutes registers the informational pages and the inquiry forms.
func registerContentRoutes(rg *gin.RouterGroup, ss portssvc.SubmissionSvc, sf *storefront, ph *utils.PosthogClientWrapper) {
	h := newContentHandler(ss, sf, ph)

	for _, p := range contentPages {
		rg.GET(p.path, h.getContentPage(p))
	}
	rg.POST("/inquiries", h.submitInquiry)
	rg.POST("/request-vehicle", h.requestVehicle)
}

// getContentPage godoc
// @Summary Informational page
// @Description Returns the store context and the tenant's copy for one of the informational pages
// @Description (about, faq, contact, bank-info, how-to-buy/stock, how-to-buy/new, how-to-bid, auctions).
// @Description content is null when the store has not configured the section.
// @Tags content
// @Produce json
// @Param storeSlug path string true "Store slug"
// @Success 200 {object} dto.ContentPageResponse
// @Router /{storeSlug}/about [get]
// @Router /{storeSlug}/faq [get]
// @Router /{storeSlug}/contact [get]
// @Router /{storeSlug}/bank-info [get]
// @Router /{storeSlug}/how-to-buy/stock [get]
// @Router /{storeSlug}/how-to-buy/new [get]
// @Router /{storeSlug}/how-to-bid [get]
// @Router /{storeSlug}/auctions [get]
func (h *contentHandler) getContentPage(p contentPage) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := h.storefront.loadWithoutPrices(c)
		c.JSON(http.StatusOK, dto.ContentPageResponse{
			Store:   h.storefront.storeResponse(c, page),
			Page:    p.name,
			Content: p.content(page.state.Tenant),
		})
	}
}

// submitInquiry godoc
// @Summary Submit an inquiry or bid
// @Description Forwards a customer's message, or bid when amount is set, about a vehicle to the store.
// @Tags content
// @Accept json
// @Produce json
// @Param storeSlug path string true "Store slug"
// @Param inquiry body dto.InquiryRequest true "Inquiry"
// @Success 201 {object} dto.SubmissionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /{storeSlug}/inquiries [post]
func (h *contentHandler) submitInquiry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.InquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SubmitInquiry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + bindErrorMessage(err)})
		return
	}

	inquiry := req.ToInquiry(middleware.GetStoreSlug(c))
	receipt, err := h.catalogService.SubmitInquiry(c.Request.Context(), inquiry)
	if err != nil {
		writeServiceError(c, logger, err, "submitting inquiry")
		return
	}

	logger.Info("Inquiry submitted", slog.String("vehicle_id", inquiry.VehicleID), slog.Bool("bid", inquiry.Amount != nil))
	middleware.PosthogEvent(c, h.posthog, "storefront_inquiry_submitted", map[string]any{
		"vehicle_id": inquiry.VehicleID,
		"bid":        inquiry.Amount != nil,
	})
	c.JSON(http.StatusCreated, dto.ToSubmissionResponse(receipt, "Thank you. Our team will contact you shortly."))
}

// requestVehicle godoc
// @Summary Request a vehicle
// @Description Asks the store to source a vehicle that is not in stock.
// @Tags content
// @Accept json
// @Produce json
// @Param storeSlug path string true "Store slug"
// @Param request body dto.VehicleRequestRequest true "Wanted vehicle"
// @Success 201 {object} dto.SubmissionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /{storeSlug}/request-vehicle [post]
func (h *contentHandler) requestVehicle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.VehicleRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RequestVehicle", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + bindErrorMessage(err)})
		return
	}

	inquiry := req.ToInquiry(middleware.GetStoreSlug(c))
	receipt, err := h.catalogService.SubmitInquiry(c.Request.Context(), inquiry)
	if err != nil {
		writeServiceError(c, logger, err, "submitting vehicle request")
		return
	}

	logger.Info("Vehicle request submitted", slog.String("make", inquiry.Make), slog.String("model", inquiry.Model))
	middleware.PosthogEvent(c, h.posthog, "storefront_vehicle_requested", map[string]any{
		"make":  inquiry.Make,
		"model": inquiry.Model,
	})
	c.JSON(http.StatusCreated, dto.ToSubmissionResponse(receipt, "Your request has been received. We will contact you when we find a match."))
}
