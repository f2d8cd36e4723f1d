package services

import (
	portsrepo "github.com/SscSPs/vehicle_export_storefront/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/vehicle_export_storefront/internal/core/ports/services"
	"github.com/SscSPs/vehicle_export_storefront/internal/fxrate"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, rates *fxrate.Cache) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Exchange rates first since the customer service converts deposits with them
	container.ExchangeRate = NewExchangeRateService(rates)
	container.Catalog = NewCatalogService(repos.CatalogRepo, repos.SubmissionRepo)
	container.Customer = NewCustomerService(repos.CustomerRepo, container.ExchangeRate)
	container.TenantConfig = repos.TenantConfigRepo

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.CatalogSvcFacade  = (*catalogService)(nil)
	_ portssvc.CustomerSvcFacade = (*customerService)(nil)
	_ portssvc.ExchangeRateSvc   = (*exchangeRateService)(nil)
)
