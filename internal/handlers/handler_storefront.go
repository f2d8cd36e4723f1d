package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/vehicle_export_storefront/internal/apperrors"
	"github.com/SscSPs/vehicle_export_storefront/internal/clientstate"
	"github.com/SscSPs/vehicle_export_storefront/internal/core/domain"
	portssvc "github.com/SscSPs/vehicle_export_storefront/internal/core/ports/services"
	"github.com/SscSPs/vehicle_export_storefront/internal/currency"
	"github.com/SscSPs/vehicle_export_storefront/internal/dto"
	"github.com/SscSPs/vehicle_export_storefront/internal/favorites"
	"github.com/SscSPs/vehicle_export_storefront/internal/hostrouter"
	"github.com/SscSPs/vehicle_export_storefront/internal/middleware"
	"github.com/SscSPs/vehicle_export_storefront/internal/platform/config"
	"github.com/SscSPs/vehicle_export_storefront/internal/tenant"
	"github.com/SscSPs/vehicle_export_storefront/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ErrorResponse is the body of every failed storefront request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// rateSource adapts the exchange rate service to the visitor's currency store.
type rateSource struct {
	rates portssvc.ExchangeRateSvc
}

func (s rateSource) Current(ctx context.Context) (domain.ExchangeRate, error) {
	return s.rates.GetExchangeRate(ctx), nil
}

// storefront builds the per-request page context shared by every store page.
type storefront struct {
	rates         portssvc.ExchangeRateSvc
	fallbackRate  decimal.Decimal
	secureCookies bool
	now           func() time.Time
}

func newStorefront(cfg *config.Config, rates portssvc.ExchangeRateSvc) *storefront {
	return &storefront{
		rates:         rates,
		fallbackRate:  cfg.FXFallbackRate,
		secureCookies: cfg.CookieSecure,
		now:           time.Now,
	}
}

// storefrontPage is what a page handler knows about the store and the visitor.
type storefrontPage struct {
	slug      string
	state     tenant.State
	currency  *currency.Store
	favorites *favorites.Store
	price     dto.PriceFunc
}

// load restores the visitor's preferences from cookies and refreshes a stale rate before the
// page is rendered. First-time visitors start in the store's default currency.
// load prepares a page that shows prices. The exchange rate is refreshed when due.
func (s *storefront) load(c *gin.Context) *storefrontPage {
	return s.loadPage(c, true)
}

// loadWithoutPrices prepares a page with no prices on it. The rate is only fetched on a
// visitor's first request.
func (s *storefront) loadWithoutPrices(c *gin.Context) *storefrontPage {
	return s.loadPage(c, false)
}

func (s *storefront) loadPage(c *gin.Context, showsPrices bool) *storefrontPage {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	state, ok := middleware.GetTenantState(c)
	if !ok {
		state = tenant.State{StoreSlug: c.Param("storeSlug")}
	}
	if state.Tenant == nil {
		fallback := tenant.FallbackConfig(state.StoreSlug)
		state.Tenant = &fallback
	}

	cur := currency.Load(
		clientstate.NewCookieStorage(c, currency.StorageKey, s.secureCookies),
		rateSource{rates: s.rates},
		currency.WithFallbackRate(s.fallbackRate),
		currency.WithClock(s.now),
		currency.WithLogger(logger),
	)
	if !cur.Restored() {
		def := state.Tenant.DefaultCurrency
		if def.Valid() && def != cur.Preference().Currency {
			if err := cur.SetCurrency(def); err != nil {
				logger.Warn("Failed to apply store default currency", slog.String("currency", string(def)), slog.String("error", err.Error()))
			}
		}
	}
	if showsPrices || !cur.Restored() {
		// Failures are logged by the store and the last known rate stays in place.
		_ = cur.FetchRate(ctx)
	}

	return &storefrontPage{
		slug:      state.StoreSlug,
		state:     state,
		currency:  cur,
		favorites: favorites.Load(clientstate.NewCookieStorage(c, favorites.StorageKey, s.secureCookies)),
		price:     displayPrice(cur),
	}
}

// storeResponse is the store context embedded in every page.
func (s *storefront) storeResponse(c *gin.Context, p *storefrontPage) dto.StoreResponse {
	return dto.ToStoreResponse(
		p.slug,
		basePath(c.Request, p.slug),
		p.state.Tenant,
		p.state.Error,
		dto.ToPreferencesResponse(p.currency.Preference(), p.currency.IsRateLoading()),
		s.now(),
	)
}

// basePath is the prefix of every store link: "" on custom domains, "/<slug>" otherwise.
func basePath(req *http.Request, slug string) string {
	return strings.TrimSuffix(hostrouter.PublicPath(req, slug, "/"), "/")
}

// displayPrice converts prices into the visitor's currency. An amount in a currency the store
// cannot convert is shown as-is.
func displayPrice(cur *currency.Store) dto.PriceFunc {
	return func(amount decimal.Decimal, base domain.CurrencyCode) dto.Price {
		converted, err := cur.Convert(amount, base)
		if err != nil {
			return dto.Price{
				Amount:   amount,
				Currency: base,
				Display:  strings.TrimSpace(utils.FormatWithCurrencyPrecision(amount, base) + " " + string(base)),
			}
		}
		code := cur.Preference().Currency
		return dto.Price{
			Amount:   converted.Round(0),
			Currency: code,
			Display:  currency.Format(converted, code),
		}
	}
}

// writeServiceError maps a service error onto the storefront's error responses.
func writeServiceError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Not found "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		logger.Warn("Unauthorized "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Conflict "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrUpstream), errors.Is(err, apperrors.ErrNonJSON):
		logger.Error("Upstream failure "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "The store backend is unavailable. Please try again later."})
	default:
		logger.Error("Failed "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

// bindErrorMessage turns struct tag violations into "field: rule" pairs; other bind errors pass through.
func bindErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg := fe.Field() + ": " + fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		msgs = append(msgs, msg)
	}
	return strings.Join(msgs, ", ")
}
