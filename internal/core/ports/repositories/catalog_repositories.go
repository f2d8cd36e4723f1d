package repositories

import (
	"context"

	"github.com/SscSPs/vehicle_export_storefront/internal/core/domain"
)

// VehicleReader defines read operations for a store's vehicle inventory
type VehicleReader interface {
	// GetVehicles lists vehicles matching the filter. Nil filter fields are not sent.
	GetVehicles(ctx context.Context, slug string, filter domain.VehicleFilter) (*domain.VehicleList, error)

	// GetVehicle retrieves a single vehicle with its specification and pricing.
	GetVehicle(ctx context.Context, slug, vehicleID string) (*domain.VehicleDetail, error)
}

// ShippingReader defines read operations for destination countries, ports and CIF pricing
type ShippingReader interface {
	GetShippingCountries(ctx context.Context, slug string) ([]domain.ShippingCountry, error)
	GetShippingPorts(ctx context.Context, slug, countryID string) ([]domain.ShippingPort, error)
	CalculateShipping(ctx context.Context, slug, vehicleID, portID string) (*domain.ShippingQuote, error)
}

// CatalogRepositoryFacade combines all catalog-related repository interfaces
type CatalogRepositoryFacade interface {
	VehicleReader
	ShippingReader
}

// SubmissionRepository forwards customer forms to the ERP.
type SubmissionRepository interface {
	SubmitInquiry(ctx context.Context, inquiry domain.Inquiry) (*domain.SubmissionReceipt, error)
	SubmitQuote(ctx context.Context, req domain.QuoteRequest) (*domain.SubmissionReceipt, error)
}
