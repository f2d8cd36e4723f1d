package dto

import (
	"time"

	"github.com/SscSPs/vehicle_export_storefront/internal/core/domain"
)

// isoMillis matches JavaScript's Date.prototype.toISOString.
const isoMillis = "2006-01-02T15:04:05.000Z"

// ExchangeRateResponse defines the structure for API responses containing the USD→JPY rate.
type ExchangeRateResponse struct {
	Rate      float64 `json:"rate" example:"149.87"`
	UpdatedAt string  `json:"updatedAt" example:"2024-05-01T09:30:00.000Z"`
	Cached    bool    `json:"cached,omitempty"`
	Stale     bool    `json:"stale,omitempty"`
	Fallback  bool    `json:"fallback,omitempty"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		Rate:      rate.Rate.InexactFloat64(),
		UpdatedAt: FormatISOTime(rate.UpdatedAt),
		Cached:    rate.Cached,
		Stale:     rate.Stale,
		Fallback:  rate.Fallback,
	}
}

// FormatISOTime renders t in UTC with millisecond precision.
func FormatISOTime(t time.Time) string {
	return t.UTC().Format(isoMillis)
}
