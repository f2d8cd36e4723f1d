package services

import (
	"context"

	"github.com/SscSPs/vehicle_export_storefront/internal/core/domain"
)

// ExchangeRateSvc serves the USD→JPY rate. It never fails; see fxrate.Cache.
type ExchangeRateSvc interface {
	GetExchangeRate(ctx context.Context) domain.ExchangeRate
}
