package currency_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/SscSPs/vehicle_export_storefront/internal/apperrors"
	"github.com/SscSPs/vehicle_export_storefront/internal/clientstate"
	"github.com/SscSPs/vehicle_export_storefront/internal/core/domain"
	"github.com/SscSPs/vehicle_export_storefront/internal/currency"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// --- Mock RateSource ---
type MockRateSource struct {
	mock.Mock
}

func (m *MockRateSource) Current(ctx context.Context) (domain.ExchangeRate, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.ExchangeRate), args.Error(1)
}

var now = time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)

func seeded(t *testing.T, pref currency.Preference) *clientstate.MemoryStorage {
	t.Helper()
	storage := &clientstate.MemoryStorage{}
	require.NoError(t, clientstate.Persist(storage, pref, currency.SchemaVersion))
	return storage
}

// --- Test Suite ---
type StoreTestSuite struct {
	suite.Suite
	source  *MockRateSource
	storage *clientstate.MemoryStorage
	ctx     context.Context
}

func (suite *StoreTestSuite) SetupTest() {
	suite.source = new(MockRateSource)
	suite.storage = &clientstate.MemoryStorage{}
	suite.ctx = context.Background()
}

func (suite *StoreTestSuite) load() *currency.Store {
	return currency.Load(suite.storage, suite.source, currency.WithClock(func() time.Time { return now }))
}

func (suite *StoreTestSuite) TestDefaults() {
	store := suite.load()

	pref := store.Preference()
	suite.False(store.Restored())
	suite.Equal(domain.USD, pref.Currency)
	suite.Equal(domain.LocaleEN, pref.Locale)
	suite.True(pref.Rate.Equal(decimal.RequireFromString("153.50")))
	suite.Nil(pref.LastUpdated)
}

func (suite *StoreTestSuite) TestConvert() {
	store := suite.load()
	hundred := decimal.NewFromInt(100)

	got, err := store.Convert(hundred, domain.USD)
	suite.Require().NoError(err)
	suite.True(got.Equal(hundred), "same currency is returned unchanged")

	suite.storage = seeded(suite.T(), currency.Preference{Currency: domain.JPY, Locale: domain.LocaleEN, Rate: decimal.NewFromInt(150)})
	store = suite.load()

	got, err = store.Convert(hundred, domain.USD)
	suite.Require().NoError(err)
	suite.True(got.Equal(decimal.NewFromInt(15000)))

	got, err = store.Convert(decimal.NewFromInt(30000), domain.JPY)
	suite.Require().NoError(err)
	suite.True(got.Equal(decimal.NewFromInt(30000)))

	_, err = store.Convert(hundred, domain.CurrencyCode("EUR"))
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *StoreTestSuite) TestConvert_JPYToUSDDivides() {
	got, err := currency.Convert(decimal.NewFromInt(1500000), domain.JPY, domain.USD, decimal.NewFromInt(150))
	suite.Require().NoError(err)
	suite.True(got.Equal(decimal.NewFromInt(10000)))
}

func (suite *StoreTestSuite) TestSettersPersist() {
	store := suite.load()

	suite.Equal(domain.JPY, store.ToggleCurrency())
	suite.Equal(domain.LocaleJA, store.ToggleLocale())
	suite.ErrorIs(store.SetCurrency("GBP"), apperrors.ErrValidation)
	suite.ErrorIs(store.SetLocale("fr"), apperrors.ErrValidation)

	reloaded := suite.load()
	suite.True(reloaded.Restored())
	suite.Equal(domain.JPY, reloaded.Preference().Currency)
	suite.Equal(domain.LocaleJA, reloaded.Preference().Locale)

	suite.Require().NoError(reloaded.SetCurrency(domain.USD))
	suite.Require().NoError(reloaded.SetLocale(domain.LocaleEN))
	suite.Equal(domain.USD, suite.load().Preference().Currency)
}

func (suite *StoreTestSuite) TestFetchRate_FallbackRateAlwaysRefreshes() {
	recent := now.Add(-time.Minute)
	suite.storage = seeded(suite.T(), currency.Preference{
		Currency: domain.USD, Locale: domain.LocaleEN,
		Rate: decimal.RequireFromString("153.5"), LastUpdated: &recent,
	})
	suite.source.On("Current", suite.ctx).Return(domain.ExchangeRate{Rate: decimal.NewFromInt(149), UpdatedAt: now}, nil).Once()
	store := suite.load()

	suite.Require().NoError(store.FetchRate(suite.ctx))

	pref := store.Preference()
	suite.True(pref.Rate.Equal(decimal.NewFromInt(149)))
	suite.Require().NotNil(pref.LastUpdated)
	suite.Equal(now, *pref.LastUpdated)
	suite.source.AssertExpectations(suite.T())
}

func (suite *StoreTestSuite) TestFetchRate_RecentRateIsKept() {
	recent := now.Add(-59 * time.Minute)
	suite.storage = seeded(suite.T(), currency.Preference{
		Currency: domain.USD, Locale: domain.LocaleEN,
		Rate: decimal.NewFromInt(149), LastUpdated: &recent,
	})
	store := suite.load()

	suite.NoError(store.FetchRate(suite.ctx))

	suite.source.AssertNotCalled(suite.T(), "Current", mock.Anything)
}

func (suite *StoreTestSuite) TestFetchRate_OldRateIsRefreshed() {
	old := now.Add(-2 * time.Hour)
	suite.storage = seeded(suite.T(), currency.Preference{
		Currency: domain.USD, Locale: domain.LocaleEN,
		Rate: decimal.NewFromInt(149), LastUpdated: &old,
	})
	suite.source.On("Current", suite.ctx).Return(domain.ExchangeRate{Rate: decimal.NewFromInt(151), UpdatedAt: now}, nil).Once()
	store := suite.load()

	suite.NoError(store.FetchRate(suite.ctx))

	suite.True(store.Preference().Rate.Equal(decimal.NewFromInt(151)))
	suite.True(suite.load().Preference().Rate.Equal(decimal.NewFromInt(151)), "refreshed rate is persisted")
}

func (suite *StoreTestSuite) TestFetchRate_FailureKeepsState() {
	old := now.Add(-3 * time.Hour)
	suite.storage = seeded(suite.T(), currency.Preference{
		Currency: domain.JPY, Locale: domain.LocaleJA,
		Rate: decimal.NewFromInt(147), LastUpdated: &old,
	})
	suite.source.On("Current", suite.ctx).Return(domain.ExchangeRate{}, errors.New("network down")).Once()
	store := suite.load()
	before := store.Preference()

	err := store.FetchRate(suite.ctx)

	suite.Error(err)
	suite.Equal(before, store.Preference())
	suite.False(store.IsRateLoading())
}

func (suite *StoreTestSuite) TestLoad_DiscardsOtherSchemaVersions() {
	suite.storage = &clientstate.MemoryStorage{}
	require.NoError(suite.T(), clientstate.Persist(suite.storage,
		currency.Preference{Currency: domain.JPY, Locale: domain.LocaleJA, Rate: decimal.NewFromInt(140)}, 0))

	store := suite.load()

	suite.False(store.Restored())
	suite.Equal(domain.USD, store.Preference().Currency)
}

func (suite *StoreTestSuite) TestLoad_DiscardsInvalidState() {
	suite.storage = seeded(suite.T(), currency.Preference{Currency: "EUR", Locale: domain.LocaleEN, Rate: decimal.NewFromInt(140)})

	suite.False(suite.load().Restored())
}

func TestStore(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func TestStartAutoRefresh_FetchesOnceAfterDelay(t *testing.T) {
	source := new(MockRateSource)
	source.On("Current", mock.Anything).Return(domain.ExchangeRate{Rate: decimal.NewFromInt(152), UpdatedAt: now}, nil).Once()
	storage := clientstate.NewFileStorage(filepath.Join(t.TempDir(), "currency.json"))
	store := currency.Load(storage, source)

	<-store.StartAutoRefresh(context.Background(), time.Millisecond)

	assert.True(t, store.Preference().Rate.Equal(decimal.NewFromInt(152)))
	restored := currency.Load(storage, source)
	assert.True(t, restored.Restored())
	source.AssertNumberOfCalls(t, "Current", 1)
}

func TestStartAutoRefresh_CancelledBeforeDelay(t *testing.T) {
	source := new(MockRateSource)
	store := currency.Load(&clientstate.MemoryStorage{}, source)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	<-store.StartAutoRefresh(ctx, time.Hour)

	source.AssertNotCalled(t, "Current", mock.Anything)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "$1,235", currency.Format(decimal.RequireFromString("1234.5"), domain.USD))
	assert.Equal(t, "￥150,000", currency.Format(decimal.NewFromInt(150000), domain.JPY))
	assert.Equal(t, "$0", currency.Format(decimal.Zero, domain.USD))
}

func TestFormatPrice_ConvertsFirst(t *testing.T) {
	storage := seeded(t, currency.Preference{Currency: domain.USD, Locale: domain.LocaleEN, Rate: decimal.NewFromInt(150)})
	store := currency.Load(storage, new(MockRateSource))

	got, err := store.FormatPrice(decimal.NewFromInt(1500000), domain.JPY)

	require.NoError(t, err)
	assert.Equal(t, "$10,000", got)
}
