// Package fxrate serves the USD→JPY exchange rate with bounded staleness.
//
// One cached value is kept per process. Reads inside the TTL are answered from the
// cache; later reads refresh from the upstream source. When the upstream fails the
// previous value is served as stale, and with no previous value a fixed fallback
// rate is served. Callers never see an error.
package fxrate

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/SscSPs/vehicle_export_storefront/internal/core/domain"
	"github.com/SscSPs/vehicle_export_storefront/internal/metrics"
	"github.com/shopspring/decimal"
)

const DefaultTTL = time.Hour

// DefaultFallbackRate is served when no rate has ever been fetched successfully.
var DefaultFallbackRate = decimal.RequireFromString("153.50")

type entry struct {
	rate      decimal.Decimal
	updatedAt time.Time
}

// Cache holds a single exchange rate slot. The slot is replaced atomically and is not
// guarded against concurrent refreshes: racing writers all store a freshly fetched rate.
type Cache struct {
	source   Source
	ttl      time.Duration
	fallback decimal.Decimal
	now      func() time.Time
	logger   *slog.Logger

	slot atomic.Pointer[entry]
}

// Option customizes a Cache.
type Option func(*Cache)

func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithFallbackRate(rate decimal.Decimal) Option {
	return func(c *Cache) {
		if rate.IsPositive() {
			c.fallback = rate
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCache creates an empty cache over source.
func NewCache(source Source, opts ...Option) *Cache {
	c := &Cache{
		source:   source,
		ttl:      DefaultTTL,
		fallback: DefaultFallbackRate,
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FallbackRate is the constant served when nothing better is available.
func (c *Cache) FallbackRate() decimal.Decimal {
	return c.fallback
}

// Get returns the best available rate. It never fails.
func (c *Cache) Get(ctx context.Context) domain.ExchangeRate {
	current := c.slot.Load()
	if current != nil && c.now().Sub(current.updatedAt) < c.ttl {
		metrics.ExchangeRateLookups.WithLabelValues("cached").Inc()
		return domain.ExchangeRate{Rate: current.rate, UpdatedAt: current.updatedAt, Cached: true}
	}

	rate, err := c.source.LatestUSDJPY(ctx)
	if err == nil && rate.IsPositive() {
		fresh := &entry{rate: rate, updatedAt: c.now()}
		c.slot.Store(fresh)
		metrics.ExchangeRateLookups.WithLabelValues("fresh").Inc()
		return domain.ExchangeRate{Rate: fresh.rate, UpdatedAt: fresh.updatedAt}
	}

	c.logger.Error("Exchange rate fetch failed", slog.Any("error", err))

	// Re-read: a concurrent refresh may have succeeded meanwhile.
	if previous := c.slot.Load(); previous != nil {
		metrics.ExchangeRateLookups.WithLabelValues("stale").Inc()
		return domain.ExchangeRate{Rate: previous.rate, UpdatedAt: previous.updatedAt, Cached: true, Stale: true}
	}

	metrics.ExchangeRateLookups.WithLabelValues("fallback").Inc()
	return domain.ExchangeRate{Rate: c.fallback, UpdatedAt: c.now(), Fallback: true}
}
