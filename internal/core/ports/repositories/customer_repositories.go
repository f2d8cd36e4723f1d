package repositories

import (
	"context"

	"github.com/SscSPs/vehicle_export_storefront/internal/core/domain"
)

// SessionIssuer exchanges customer credentials for an ERP session.
type SessionIssuer interface {
	Login(ctx context.Context, slug, email, password string) (*domain.Session, error)
}

// CustomerReader defines read operations scoped to the signed-in customer
type CustomerReader interface {
	ListBids(ctx context.Context, slug, token string) ([]domain.Bid, error)
	GetWallet(ctx context.Context, slug, token string) (*domain.Wallet, error)
	ListWalletTransactions(ctx context.Context, slug, token string) ([]domain.WalletTransaction, error)
	GetProfile(ctx context.Context, slug, token string) (*domain.CustomerProfile, error)
}

// CustomerWriter defines write operations scoped to the signed-in customer
type CustomerWriter interface {
	SubmitDeposit(ctx context.Context, slug, token string, deposit domain.DepositRequest) (*domain.SubmissionReceipt, error)
	UpdateProfile(ctx context.Context, slug, token string, profile domain.CustomerProfile) (*domain.CustomerProfile, error)
}

// CustomerRepositoryFacade combines all customer-related repository interfaces
type CustomerRepositoryFacade interface {
	SessionIssuer
	CustomerReader
	CustomerWriter
}
