package tenant_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/vehicle_export_storefront/internal/core/domain"
	"github.com/SscSPs/vehicle_export_storefront/internal/tenant"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// --- Mock ConfigFetcher ---
type MockConfigFetcher struct {
	mock.Mock
}

func (m *MockConfigFetcher) GetConfig(ctx context.Context, slug string) (*domain.TenantConfigDocument, error) {
	args := m.Called(ctx, slug)
	doc, _ := args.Get(0).(*domain.TenantConfigDocument)
	return doc, args.Error(1)
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

// --- Test Suite ---
type ProviderTestSuite struct {
	suite.Suite
	fetcher  *MockConfigFetcher
	provider *tenant.Provider
	ctx      context.Context
}

func (suite *ProviderTestSuite) SetupTest() {
	suite.fetcher = new(MockConfigFetcher)
	suite.provider = tenant.NewProvider(suite.fetcher, nil)
	suite.ctx = context.Background()
}

func (suite *ProviderTestSuite) TestMount_FailureYieldsDefaultTenant() {
	suite.fetcher.On("GetConfig", suite.ctx, "acme").Return(nil, errors.New("connection refused")).Once()

	state := suite.provider.Mount(suite.ctx, "acme")

	suite.Require().NotNil(state.Tenant)
	suite.False(state.Loading)
	suite.Equal(tenant.LoadFailedMessage, state.Error)
	suite.Equal("acme", state.Tenant.TenantID)
	suite.Equal(tenant.DefaultID, state.Tenant.ID)
	suite.Equal("Vehicle Export", state.Tenant.StoreName)
	suite.Equal("acme", state.StoreSlug)
}

func (suite *ProviderTestSuite) TestMount_SuccessOverlaysDefaults() {
	doc := &domain.TenantConfigDocument{
		ID:        strPtr("cfg-7"),
		TenantID:  strPtr("t-7"),
		StoreName: strPtr("Acme Motors"),
	}
	suite.fetcher.On("GetConfig", suite.ctx, "acme").Return(doc, nil).Once()

	state := suite.provider.Mount(suite.ctx, "acme")

	suite.Empty(state.Error)
	suite.Require().NotNil(state.Tenant)
	suite.Equal("Acme Motors", state.Tenant.StoreName)
	suite.Equal("Premium Japanese Vehicles Direct to You", state.Tenant.Tagline)
	suite.Equal("#c62828", state.Tenant.PrimaryColor)
	suite.Equal(suite.provider.State(), state)
}

func (suite *ProviderTestSuite) TestMount_FetchesOncePerSlug() {
	suite.fetcher.On("GetConfig", suite.ctx, "acme").Return(&domain.TenantConfigDocument{}, nil).Once()
	suite.fetcher.On("GetConfig", suite.ctx, "beta").Return(&domain.TenantConfigDocument{}, nil).Once()

	suite.provider.Mount(suite.ctx, "acme")
	suite.provider.Mount(suite.ctx, "acme")
	suite.provider.Mount(suite.ctx, "beta")
	suite.provider.Mount(suite.ctx, "beta")

	suite.fetcher.AssertExpectations(suite.T())
	suite.fetcher.AssertNumberOfCalls(suite.T(), "GetConfig", 2)
	suite.Equal("beta", suite.provider.State().StoreSlug)
}

func (suite *ProviderTestSuite) TestMount_FailedSlugIsNotRetried() {
	suite.fetcher.On("GetConfig", suite.ctx, "acme").Return(nil, errors.New("503")).Once()

	first := suite.provider.Mount(suite.ctx, "acme")
	second := suite.provider.Mount(suite.ctx, "acme")

	suite.Equal(first, second)
	suite.fetcher.AssertNumberOfCalls(suite.T(), "GetConfig", 1)
}

func TestProvider(t *testing.T) {
	suite.Run(t, new(ProviderTestSuite))
}

func TestOverlay_FieldByField(t *testing.T) {
	base := tenant.DefaultConfig()
	minDeposit := decimal.NewFromInt(500)
	jpy := domain.JPY
	slides := []domain.HeroSlide{{ID: "s1", Title: "Spring sale", ImageURL: "https://cdn.example.com/s1.jpg"}}
	faq := []domain.FAQItem{{Question: "Do you ship to Kenya?", Answer: "Yes"}}

	doc := &domain.TenantConfigDocument{
		LogoURL:          strPtr("https://cdn.example.com/logo.png"),
		PrimaryColor:     strPtr("#0d47a1"),
		ContactEmail:     strPtr("sales@acme.example.com"),
		HeroSlides:       &slides,
		NoticeBarText:    strPtr("Closed on Sunday"),
		NoticeBarEnabled: boolPtr(true),
		RequireDeposit:   boolPtr(false),
		MinimumDeposit:   &minDeposit,
		DefaultCurrency:  &jpy,
		ShowJapanTime:    boolPtr(false),
		FAQItems:         &faq,
		BankDetails:      &domain.BankDetails{BankName: "MUFG", SwiftCode: "BOTKJPJT"},
	}

	got := tenant.Overlay(base, doc)

	// Present fields win.
	require.NotNil(t, got.LogoURL)
	assert.Equal(t, "https://cdn.example.com/logo.png", *got.LogoURL)
	assert.Equal(t, "#0d47a1", got.PrimaryColor)
	require.NotNil(t, got.ContactEmail)
	assert.Equal(t, "sales@acme.example.com", *got.ContactEmail)
	assert.Equal(t, slides, got.HeroSlides)
	require.NotNil(t, got.NoticeBarText)
	assert.True(t, got.NoticeBarEnabled)
	assert.False(t, got.RequireDeposit)
	assert.True(t, got.MinimumDeposit.Equal(minDeposit))
	assert.Equal(t, domain.JPY, got.DefaultCurrency)
	assert.False(t, got.ShowJapanTime)
	assert.Equal(t, faq, got.FAQItems)
	assert.Equal(t, "MUFG", got.BankDetails.BankName)

	// Absent fields keep the defaults.
	assert.Equal(t, "Vehicle Export", got.StoreName)
	assert.Equal(t, "Premium Japanese Vehicles Direct to You", got.Tagline)
	assert.Equal(t, "#1a1a1a", got.SecondaryColor)
	assert.Nil(t, got.FaviconURL)
	assert.Nil(t, got.AboutUs)

	// The base is not mutated.
	assert.Equal(t, "#c62828", base.PrimaryColor)
	assert.True(t, base.RequireDeposit)
}

func TestOverlay_EmptySliceReplacesDefault(t *testing.T) {
	empty := []domain.HeroSlide{}
	got := tenant.Overlay(tenant.DefaultConfig(), &domain.TenantConfigDocument{HeroSlides: &empty})
	assert.NotNil(t, got.HeroSlides)
	assert.Empty(t, got.HeroSlides)
}

func TestOverlay_IgnoresUnsupportedCurrency(t *testing.T) {
	eur := domain.CurrencyCode("EUR")
	got := tenant.Overlay(tenant.DefaultConfig(), &domain.TenantConfigDocument{DefaultCurrency: &eur})
	assert.Equal(t, domain.USD, got.DefaultCurrency)
}

func TestOverlay_NilDocument(t *testing.T) {
	assert.Equal(t, tenant.DefaultConfig(), tenant.Overlay(tenant.DefaultConfig(), nil))
}
