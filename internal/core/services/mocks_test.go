package services_test

import (
	"context"

	"github.com/SscSPs/vehicle_export_storefront/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock CatalogRepositoryFacade ---
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) GetVehicles(ctx context.Context, slug string, filter domain.VehicleFilter) (*domain.VehicleList, error) {
	args := m.Called(ctx, slug, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VehicleList), args.Error(1)
}

func (m *MockCatalogRepository) GetVehicle(ctx context.Context, slug, vehicleID string) (*domain.VehicleDetail, error) {
	args := m.Called(ctx, slug, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VehicleDetail), args.Error(1)
}

func (m *MockCatalogRepository) GetShippingCountries(ctx context.Context, slug string) ([]domain.ShippingCountry, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShippingCountry), args.Error(1)
}

func (m *MockCatalogRepository) GetShippingPorts(ctx context.Context, slug, countryID string) ([]domain.ShippingPort, error) {
	args := m.Called(ctx, slug, countryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShippingPort), args.Error(1)
}

func (m *MockCatalogRepository) CalculateShipping(ctx context.Context, slug, vehicleID, portID string) (*domain.ShippingQuote, error) {
	args := m.Called(ctx, slug, vehicleID, portID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShippingQuote), args.Error(1)
}

// --- Mock SubmissionRepository ---
type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) SubmitInquiry(ctx context.Context, inquiry domain.Inquiry) (*domain.SubmissionReceipt, error) {
	args := m.Called(ctx, inquiry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubmissionReceipt), args.Error(1)
}

func (m *MockSubmissionRepository) SubmitQuote(ctx context.Context, req domain.QuoteRequest) (*domain.SubmissionReceipt, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubmissionReceipt), args.Error(1)
}

// --- Mock CustomerRepositoryFacade ---
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Login(ctx context.Context, slug, email, password string) (*domain.Session, error) {
	args := m.Called(ctx, slug, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockCustomerRepository) ListBids(ctx context.Context, slug, token string) ([]domain.Bid, error) {
	args := m.Called(ctx, slug, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bid), args.Error(1)
}

func (m *MockCustomerRepository) GetWallet(ctx context.Context, slug, token string) (*domain.Wallet, error) {
	args := m.Called(ctx, slug, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockCustomerRepository) ListWalletTransactions(ctx context.Context, slug, token string) ([]domain.WalletTransaction, error) {
	args := m.Called(ctx, slug, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WalletTransaction), args.Error(1)
}

func (m *MockCustomerRepository) GetProfile(ctx context.Context, slug, token string) (*domain.CustomerProfile, error) {
	args := m.Called(ctx, slug, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerProfile), args.Error(1)
}

func (m *MockCustomerRepository) SubmitDeposit(ctx context.Context, slug, token string, deposit domain.DepositRequest) (*domain.SubmissionReceipt, error) {
	args := m.Called(ctx, slug, token, deposit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubmissionReceipt), args.Error(1)
}

func (m *MockCustomerRepository) UpdateProfile(ctx context.Context, slug, token string, profile domain.CustomerProfile) (*domain.CustomerProfile, error) {
	args := m.Called(ctx, slug, token, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerProfile), args.Error(1)
}

// --- Mock ExchangeRateSvc ---
type MockExchangeRateSvc struct {
	mock.Mock
}

func (m *MockExchangeRateSvc) GetExchangeRate(ctx context.Context) domain.ExchangeRate {
	args := m.Called(ctx)
	return args.Get(0).(domain.ExchangeRate)
}
