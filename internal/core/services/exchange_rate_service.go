package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/vehicle_export_storefront/internal/core/domain"
	"github.com/SscSPs/vehicle_export_storefront/internal/fxrate"
)

type exchangeRateService struct {
	BaseService
	cache *fxrate.Cache
}

// NewExchangeRateService serves rates from the process-wide cache.
func NewExchangeRateService(cache *fxrate.Cache) *exchangeRateService {
	return &exchangeRateService{cache: cache}
}

func (s *exchangeRateService) GetExchangeRate(ctx context.Context) domain.ExchangeRate {
	rate := s.cache.Get(ctx)
	s.LogDebug(ctx, "Exchange rate served",
		slog.String("rate", rate.Rate.String()),
		slog.Bool("cached", rate.Cached),
		slog.Bool("stale", rate.Stale),
		slog.Bool("fallback", rate.Fallback))
	return rate
}

