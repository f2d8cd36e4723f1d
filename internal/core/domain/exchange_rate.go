package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is the USD→JPY rate as served to storefront clients.
// Exactly one of the flags describes where a non-fresh value came from.
type ExchangeRate struct {
	Rate      decimal.Decimal
	UpdatedAt time.Time
	Cached    bool
	Stale     bool
	Fallback  bool
}
