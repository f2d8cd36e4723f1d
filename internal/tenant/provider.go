package tenant

import (
	"context"
	"log/slog"
	"sync"

	"github.com/SscSPs/vehicle_export_storefront/internal/core/domain"
	"github.com/SscSPs/vehicle_export_storefront/internal/metrics"
)

// ConfigFetcher loads the raw configuration document of a store.
type ConfigFetcher interface {
	GetConfig(ctx context.Context, slug string) (*domain.TenantConfigDocument, error)
}

// State is what views read. Once settled, Tenant is never nil.
type State struct {
	Tenant    *domain.TenantConfig `json:"tenant"`
	Loading   bool                 `json:"loading"`
	Error     string               `json:"error,omitempty"`
	StoreSlug string               `json:"storeSlug"`
}

// Provider holds the configuration of the store currently mounted. It fetches once per slug
// change and never revalidates.
type Provider struct {
	fetcher ConfigFetcher
	logger  *slog.Logger

	mu         sync.Mutex
	mounted    bool
	generation uint64
	state      State
}

func NewProvider(fetcher ConfigFetcher, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{fetcher: fetcher, logger: logger}
}

// Mount makes slug the current store and returns the settled state. Mounting the slug that is
// already current returns the existing state without fetching.
func (p *Provider) Mount(ctx context.Context, slug string) State {
	p.mu.Lock()
	if p.mounted && p.state.StoreSlug == slug {
		current := p.state
		p.mu.Unlock()
		return current
	}
	p.mounted = true
	p.generation++
	gen := p.generation
	p.state = State{StoreSlug: slug, Loading: true}
	p.mu.Unlock()

	settled := p.load(ctx, slug)

	p.mu.Lock()
	defer p.mu.Unlock()
	// A newer Mount for a different slug wins.
	if gen == p.generation {
		p.state = settled
	}
	return settled
}

// State returns a snapshot of the current state.
func (p *Provider) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Provider) load(ctx context.Context, slug string) State {
	doc, err := p.fetcher.GetConfig(ctx, slug)
	if err != nil {
		p.logger.Error("Tenant config fetch failed, using defaults",
			slog.String("store_slug", slug),
			slog.String("error", err.Error()),
		)
		metrics.TenantConfigFallbacks.Inc()
		fallback := FallbackConfig(slug)
		return State{Tenant: &fallback, Error: LoadFailedMessage, StoreSlug: slug}
	}

	cfg := Overlay(DefaultConfig(), doc)
	return State{Tenant: &cfg, StoreSlug: slug}
}
