package handlers_test

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/SscSPs/vehicle_export_storefront/internal/core/domain"
	portssvc "github.com/SscSPs/vehicle_export_storefront/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock CatalogService ---
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListVehicles(ctx context.Context, slug string, filter domain.VehicleFilter) (*domain.VehicleList, error) {
	args := m.Called(ctx, slug, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VehicleList), args.Error(1)
}

func (m *MockCatalogService) GetVehicle(ctx context.Context, slug, vehicleID string) (*domain.VehicleDetail, error) {
	args := m.Called(ctx, slug, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VehicleDetail), args.Error(1)
}

func (m *MockCatalogService) FeaturedVehicles(ctx context.Context, slug string) []domain.Vehicle {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.Vehicle)
}

func (m *MockCatalogService) GetVehiclesByID(ctx context.Context, slug string, ids []string) ([]domain.Vehicle, []string, error) {
	args := m.Called(ctx, slug, ids)
	var vehicles []domain.Vehicle
	if v := args.Get(0); v != nil {
		vehicles = v.([]domain.Vehicle)
	}
	var missing []string
	if v := args.Get(1); v != nil {
		missing = v.([]string)
	}
	return vehicles, missing, args.Error(2)
}

func (m *MockCatalogService) GetShippingOptions(ctx context.Context, slug, vehicleID, countryID, portID string) (*domain.ShippingOptions, error) {
	args := m.Called(ctx, slug, vehicleID, countryID, portID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShippingOptions), args.Error(1)
}

func (m *MockCatalogService) SubmitInquiry(ctx context.Context, inquiry domain.Inquiry) (*domain.SubmissionReceipt, error) {
	args := m.Called(ctx, inquiry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubmissionReceipt), args.Error(1)
}

func (m *MockCatalogService) RequestQuote(ctx context.Context, req domain.QuoteRequest) (*domain.SubmissionReceipt, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubmissionReceipt), args.Error(1)
}

var _ portssvc.CatalogSvcFacade = (*MockCatalogService)(nil)

// --- Mock CustomerService ---
type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) Login(ctx context.Context, slug, email, password string) (*domain.Session, error) {
	args := m.Called(ctx, slug, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockCustomerService) ListBids(ctx context.Context, slug, token string) ([]domain.Bid, error) {
	args := m.Called(ctx, slug, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bid), args.Error(1)
}

func (m *MockCustomerService) GetWalletStatement(ctx context.Context, slug, token string) (*domain.WalletStatement, error) {
	args := m.Called(ctx, slug, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WalletStatement), args.Error(1)
}

func (m *MockCustomerService) GetProfile(ctx context.Context, slug, token string) (*domain.CustomerProfile, error) {
	args := m.Called(ctx, slug, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerProfile), args.Error(1)
}

func (m *MockCustomerService) GetDashboardSummary(ctx context.Context, slug, token string) (*domain.DashboardSummary, error) {
	args := m.Called(ctx, slug, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardSummary), args.Error(1)
}

func (m *MockCustomerService) SubmitDeposit(ctx context.Context, slug string, store domain.TenantConfig, token string, deposit domain.DepositRequest) (*domain.SubmissionReceipt, error) {
	args := m.Called(ctx, slug, store, token, deposit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubmissionReceipt), args.Error(1)
}

func (m *MockCustomerService) UpdateProfile(ctx context.Context, slug, token string, profile domain.CustomerProfile) (*domain.CustomerProfile, error) {
	args := m.Called(ctx, slug, token, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerProfile), args.Error(1)
}

var _ portssvc.CustomerSvcFacade = (*MockCustomerService)(nil)

// fixedRates always serves the same fresh rate and counts lookups.
type fixedRates struct {
	rate  domain.ExchangeRate
	calls atomic.Int32
}

func newFixedRates(rate string) *fixedRates {
	return &fixedRates{rate: domain.ExchangeRate{
		Rate:      decimal.RequireFromString(rate),
		UpdatedAt: time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC),
	}}
}

func (f *fixedRates) GetExchangeRate(context.Context) domain.ExchangeRate {
	f.calls.Add(1)
	return f.rate
}

// stubTenants serves one document for every slug, or an error.
type stubTenants struct {
	doc *domain.TenantConfigDocument
	err error
}

func (s *stubTenants) GetConfig(context.Context, string) (*domain.TenantConfigDocument, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.doc == nil {
		return &domain.TenantConfigDocument{}, nil
	}
	return s.doc, nil
}
