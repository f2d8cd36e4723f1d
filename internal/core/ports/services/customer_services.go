package services

import (
	"context"

	"github.com/SscSPs/vehicle_export_storefront/internal/core/domain"
)

// AuthSvc signs customers in against the ERP
type AuthSvc interface {
	Login(ctx context.Context, slug, email, password string) (*domain.Session, error)
}

// CustomerReaderSvc defines read operations for the signed-in customer
type CustomerReaderSvc interface {
	ListBids(ctx context.Context, slug, token string) ([]domain.Bid, error)
	GetWalletStatement(ctx context.Context, slug, token string) (*domain.WalletStatement, error)
	GetProfile(ctx context.Context, slug, token string) (*domain.CustomerProfile, error)
	GetDashboardSummary(ctx context.Context, slug, token string) (*domain.DashboardSummary, error)
}

// CustomerWriterSvc defines write operations for the signed-in customer
type CustomerWriterSvc interface {
	// SubmitDeposit announces a bank transfer. When the store requires deposits the
	// amount must reach the store's minimum.
	SubmitDeposit(ctx context.Context, slug string, store domain.TenantConfig, token string, deposit domain.DepositRequest) (*domain.SubmissionReceipt, error)
	UpdateProfile(ctx context.Context, slug, token string, profile domain.CustomerProfile) (*domain.CustomerProfile, error)
}

// CustomerSvcFacade combines all customer-related service interfaces
type CustomerSvcFacade interface {
	AuthSvc
	CustomerReaderSvc
	CustomerWriterSvc
}
