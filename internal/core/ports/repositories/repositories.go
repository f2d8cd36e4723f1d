package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// The ERP is the only store behind them; the storefront keeps no database of its own.
type RepositoryProvider struct {
	CatalogRepo      CatalogRepositoryFacade
	SubmissionRepo   SubmissionRepository
	CustomerRepo     CustomerRepositoryFacade
	TenantConfigRepo TenantConfigRepository
}
