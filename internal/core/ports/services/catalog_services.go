package services

import (
	"context"

	"github.com/SscSPs/vehicle_export_storefront/internal/core/domain"
)

// VehicleReaderSvc defines read operations for a store's inventory
type VehicleReaderSvc interface {
	// ListVehicles retrieves one page of vehicles matching the filter.
	ListVehicles(ctx context.Context, slug string, filter domain.VehicleFilter) (*domain.VehicleList, error)

	// GetVehicle retrieves a single vehicle.
	GetVehicle(ctx context.Context, slug, vehicleID string) (*domain.VehicleDetail, error)

	// FeaturedVehicles retrieves the vehicles shown on the home page. Failures yield an empty list.
	FeaturedVehicles(ctx context.Context, slug string) []domain.Vehicle

	// GetVehiclesByID resolves saved vehicle ids, returning the ids the ERP no longer knows separately.
	GetVehiclesByID(ctx context.Context, slug string, ids []string) ([]domain.Vehicle, []string, error)
}

// ShippingSvc defines the shipping calculator
type ShippingSvc interface {
	// GetShippingOptions lists destinations, selecting the default port of the chosen
	// country when no port is given, and quotes the vehicle to the selected port.
	GetShippingOptions(ctx context.Context, slug, vehicleID, countryID, portID string) (*domain.ShippingOptions, error)
}

// SubmissionSvc defines the customer forms forwarded to the ERP
type SubmissionSvc interface {
	SubmitInquiry(ctx context.Context, inquiry domain.Inquiry) (*domain.SubmissionReceipt, error)
	RequestQuote(ctx context.Context, req domain.QuoteRequest) (*domain.SubmissionReceipt, error)
}

// CatalogSvcFacade combines all catalog-related service interfaces
type CatalogSvcFacade interface {
	VehicleReaderSvc
	ShippingSvc
	SubmissionSvc
}
