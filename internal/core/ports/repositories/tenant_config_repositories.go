package repositories

import (
	"context"

	"github.com/SscSPs/vehicle_export_storefront/internal/core/domain"
)

// TenantConfigRepository fetches a store's configuration document.
type TenantConfigRepository interface {
	GetConfig(ctx context.Context, slug string) (*domain.TenantConfigDocument, error)
}
