package apiclient

import (
	portsrepo "github.com/SscSPs/vehicle_export_storefront/internal/core/ports/repositories"
)

// NewRepositoryProvider exposes the client as every repository the services need.
func NewRepositoryProvider(c *Client) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CatalogRepo:      c,
		SubmissionRepo:   c,
		CustomerRepo:     c,
		TenantConfigRepo: c,
	}
}

var (
	_ portsrepo.CatalogRepositoryFacade  = (*Client)(nil)
	_ portsrepo.SubmissionRepository     = (*Client)(nil)
	_ portsrepo.CustomerRepositoryFacade = (*Client)(nil)
	_ portsrepo.TenantConfigRepository   = (*Client)(nil)
)
