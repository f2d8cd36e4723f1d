package services

import (
	"github.com/SscSPs/vehicle_export_storefront/internal/tenant"
)

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Catalog      CatalogSvcFacade
	Customer     CustomerSvcFacade
	ExchangeRate ExchangeRateSvc
	TenantConfig tenant.ConfigFetcher
}
