// Package currency holds a visitor's display currency and locale together with the last known
// USD→JPY rate, and converts prices between the two supported currencies.
package currency

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/vehicle_export_storefront/internal/apperrors"
	"github.com/SscSPs/vehicle_export_storefront/internal/clientstate"
	"github.com/SscSPs/vehicle_export_storefront/internal/core/domain"
	"github.com/SscSPs/vehicle_export_storefront/internal/fxrate"
	"github.com/shopspring/decimal"
)

const (
	// StorageKey names the persisted preference.
	StorageKey = "vehicle-currency-storage"
	// SchemaVersion is bumped whenever Preference changes shape; older blobs are discarded.
	SchemaVersion = 1
	// RefreshInterval is how long a fetched rate is trusted before FetchRate asks again.
	RefreshInterval = time.Hour
	// DefaultAutoRefreshDelay lets the first render finish before the initial fetch.
	DefaultAutoRefreshDelay = 100 * time.Millisecond
)

// fallbackTolerance decides whether the held rate is the fallback constant.
var fallbackTolerance = decimal.RequireFromString("0.01")

// Preference is the persisted part of the store.
type Preference struct {
	Currency    domain.CurrencyCode `json:"currency"`
	Locale      domain.Locale       `json:"locale"`
	Rate        decimal.Decimal     `json:"rate"`
	LastUpdated *time.Time          `json:"lastUpdated"`
}

// RateSource supplies the current rate, normally the process-wide exchange rate cache.
type RateSource interface {
	Current(ctx context.Context) (domain.ExchangeRate, error)
}

// CacheSource adapts an fxrate.Cache, which never fails.
type CacheSource struct {
	Cache *fxrate.Cache
}

func (s CacheSource) Current(ctx context.Context) (domain.ExchangeRate, error) {
	return s.Cache.Get(ctx), nil
}

// Store is one visitor's currency state. Every mutation is persisted.
type Store struct {
	source   RateSource
	storage  clientstate.Storage
	fallback decimal.Decimal
	now      func() time.Time
	logger   *slog.Logger

	mu       sync.RWMutex
	pref     Preference
	restored bool
	loading  bool
}

type Option func(*Store)

func WithFallbackRate(rate decimal.Decimal) Option {
	return func(s *Store) {
		if rate.IsPositive() {
			s.fallback = rate
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// DefaultPreference is what a first-time visitor gets.
func DefaultPreference(fallback decimal.Decimal) Preference {
	return Preference{Currency: domain.USD, Locale: domain.LocaleEN, Rate: fallback}
}

// Load restores the store from storage, falling back to defaults for a missing, outdated or
// invalid blob.
func Load(storage clientstate.Storage, source RateSource, opts ...Option) *Store {
	s := &Store{
		source:   source,
		storage:  storage,
		fallback: fxrate.DefaultFallbackRate,
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.pref = DefaultPreference(s.fallback)
	if saved, ok := clientstate.Restore[Preference](storage, SchemaVersion); ok && valid(saved) {
		s.pref = saved
		s.restored = true
	}
	return s
}

func valid(p Preference) bool {
	return p.Currency.Valid() && p.Locale.Valid() && p.Rate.IsPositive()
}

// Restored reports whether a persisted preference was found. False means a first visit.
func (s *Store) Restored() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.restored
}

func (s *Store) Preference() Preference {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pref
}

// IsRateLoading reports whether a FetchRate call is in flight.
func (s *Store) IsRateLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) SetCurrency(c domain.CurrencyCode) error {
	if !c.Valid() {
		return fmt.Errorf("%w: unsupported currency %q", apperrors.ErrValidation, c)
	}
	s.update(func(p *Preference) { p.Currency = c })
	return nil
}

func (s *Store) ToggleCurrency() domain.CurrencyCode {
	var next domain.CurrencyCode
	s.update(func(p *Preference) {
		if p.Currency == domain.USD {
			p.Currency = domain.JPY
		} else {
			p.Currency = domain.USD
		}
		next = p.Currency
	})
	return next
}

func (s *Store) SetLocale(l domain.Locale) error {
	if !l.Valid() {
		return fmt.Errorf("%w: unsupported locale %q", apperrors.ErrValidation, l)
	}
	s.update(func(p *Preference) { p.Locale = l })
	return nil
}

func (s *Store) ToggleLocale() domain.Locale {
	var next domain.Locale
	s.update(func(p *Preference) {
		if p.Locale == domain.LocaleEN {
			p.Locale = domain.LocaleJA
		} else {
			p.Locale = domain.LocaleEN
		}
		next = p.Locale
	})
	return next
}

// Convert expresses amount, priced in base, in the display currency.
func (s *Store) Convert(amount decimal.Decimal, base domain.CurrencyCode) (decimal.Decimal, error) {
	pref := s.Preference()
	return Convert(amount, base, pref.Currency, pref.Rate)
}

// Convert moves amount from one currency to another through the USD→JPY rate.
func Convert(amount decimal.Decimal, from, to domain.CurrencyCode, usdJPY decimal.Decimal) (decimal.Decimal, error) {
	if !from.Valid() || !to.Valid() {
		return decimal.Zero, fmt.Errorf("%w: cannot convert %s to %s", apperrors.ErrValidation, from, to)
	}
	if from == to {
		return amount, nil
	}
	if !usdJPY.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	if from == domain.USD {
		return amount.Mul(usdJPY), nil
	}
	return amount.Div(usdJPY), nil
}

// needsRefresh: the fallback rate is always refreshed, anything else once per RefreshInterval.
func (s *Store) needsRefresh(p Preference) bool {
	if p.Rate.Sub(s.fallback).Abs().LessThan(fallbackTolerance) {
		return true
	}
	if p.LastUpdated == nil {
		return true
	}
	return !p.LastUpdated.After(s.now().Add(-RefreshInterval))
}

// FetchRate refreshes the rate unless the held one is recent. On failure the state is left as is
// and the error is returned for logging only.
func (s *Store) FetchRate(ctx context.Context) error {
	s.mu.Lock()
	if !s.needsRefresh(s.pref) {
		s.mu.Unlock()
		return nil
	}
	s.loading = true
	s.mu.Unlock()

	rate, err := s.source.Current(ctx)

	s.mu.Lock()
	s.loading = false
	if err == nil && !rate.Rate.IsPositive() {
		err = fmt.Errorf("%w: non-positive exchange rate", apperrors.ErrUpstream)
	}
	if err != nil {
		s.mu.Unlock()
		s.logger.Warn("Exchange rate refresh failed, keeping last known rate", slog.String("error", err.Error()))
		return err
	}
	updatedAt := rate.UpdatedAt
	s.pref.Rate = rate.Rate
	s.pref.LastUpdated = &updatedAt
	snapshot := s.pref
	s.mu.Unlock()

	s.persist(snapshot)
	return nil
}

// StartAutoRefresh runs one FetchRate after delay in the background. The returned channel is
// closed when it has finished or ctx ended first. Only use it with storage that outlives the
// caller, such as FileStorage.
func (s *Store) StartAutoRefresh(ctx context.Context, delay time.Duration) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
		_ = s.FetchRate(ctx)
	}()
	return done
}

func (s *Store) update(mutate func(p *Preference)) {
	s.mu.Lock()
	mutate(&s.pref)
	snapshot := s.pref
	s.mu.Unlock()
	s.persist(snapshot)
}

func (s *Store) persist(p Preference) {
	if err := clientstate.Persist(s.storage, p, SchemaVersion); err != nil {
		s.logger.Error("Failed to persist currency preference", slog.String("error", err.Error()))
	}
}
