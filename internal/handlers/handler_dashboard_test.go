package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/vehicle_export_storefront/internal/apperrors"
	"github.com/SscSPs/vehicle_export_storefront/internal/core/domain"
	portssvc "github.com/SscSPs/vehicle_export_storefront/internal/core/ports/services"
	"github.com/SscSPs/vehicle_export_storefront/internal/dto"
	"github.com/SscSPs/vehicle_export_storefront/internal/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type DashboardHandlerTestSuite struct {
	suite.Suite
	handler      http.Handler
	mockCatalog  *MockCatalogService
	mockCustomer *MockCustomerService
	session      *http.Cookie
}

func (suite *DashboardHandlerTestSuite) SetupTest() {
	suite.mockCatalog = new(MockCatalogService)
	suite.mockCustomer = new(MockCustomerService)
	suite.session = &http.Cookie{Name: middleware.SessionCookieName, Value: "erp-token"}

	suite.handler = newTestServer(testConfig(), &portssvc.ServiceContainer{
		Catalog:      suite.mockCatalog,
		Customer:     suite.mockCustomer,
		ExchangeRate: newFixedRates("150"),
		TenantConfig: &stubTenants{},
	})
}

func (suite *DashboardHandlerTestSuite) TearDownTest() {
	suite.mockCatalog.AssertExpectations(suite.T())
	suite.mockCustomer.AssertExpectations(suite.T())
}

func (suite *DashboardHandlerTestSuite) do(method, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Host = "localhost:3000"
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	suite.handler.ServeHTTP(w, req)
	return w
}

func (suite *DashboardHandlerTestSuite) TestRedirectsToLoginWithoutSession() {
	w := suite.do(http.MethodGet, "/acme/dashboard/bids", "")

	suite.Equal(http.StatusFound, w.Code)
	suite.Equal("/acme/auth/login?redirect=dashboard/bids", w.Header().Get("Location"))
}

func (suite *DashboardHandlerTestSuite) TestSummary() {
	suite.mockCustomer.On("GetDashboardSummary", mock.Anything, "acme", "erp-token").Return(&domain.DashboardSummary{
		Profile:         &domain.CustomerProfile{Name: "Jane", Email: "jane@example.com"},
		Wallet:          &domain.Wallet{Balance: decimal.NewFromInt(2500), Currency: domain.USD},
		ActiveBids:      2,
		WonBids:         1,
		PendingDeposits: 1,
	}, nil)

	w := suite.do(http.MethodGet, "/acme/dashboard", "", suite.session)

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.DashboardSummaryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(2, resp.ActiveBids)
	suite.Equal(1, resp.WonBids)
	suite.Equal(0, resp.Watchlist)
	suite.Require().NotNil(resp.WalletBalance)
	suite.Equal("$2,500", resp.WalletBalance.Display)
}

func (suite *DashboardHandlerTestSuite) TestBids() {
	suite.mockCustomer.On("ListBids", mock.Anything, "acme", "erp-token").Return([]domain.Bid{
		{ID: "b1", VehicleName: "Prius", BidAmount: decimal.NewFromInt(4200), Status: domain.BidStatus("ACTIVE")},
	}, nil)

	w := suite.do(http.MethodGet, "/acme/dashboard/bids", "", suite.session)

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.BidsPageResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Bids, 1)
	suite.Equal("$4,200", resp.Bids[0].DisplayAmount.Display)
}

func (suite *DashboardHandlerTestSuite) TestRejectedSessionIsClearedAndRedirected() {
	suite.mockCustomer.On("GetWalletStatement", mock.Anything, "acme", "erp-token").
		Return(nil, fmt.Errorf("%w: token expired", apperrors.ErrUnauthorized))

	w := suite.do(http.MethodGet, "/acme/dashboard/wallet", "", suite.session)

	suite.Equal(http.StatusFound, w.Code)
	suite.Equal("/acme/auth/login?redirect=dashboard/wallet", w.Header().Get("Location"))
	cleared := responseCookie(w, middleware.SessionCookieName)
	suite.Require().NotNil(cleared)
	suite.Equal("", cleared.Value)
	suite.Less(cleared.MaxAge, 0)
}

func (suite *DashboardHandlerTestSuite) TestWatchlistResolvesSavedVehicles() {
	w := suite.do(http.MethodPost, "/acme/favorites/v1/toggle", "")
	saved := responseCookie(w, "v_favorites")
	suite.Require().NotNil(saved)

	suite.mockCatalog.On("GetVehiclesByID", mock.Anything, "acme", []string{"v1"}).
		Return([]domain.Vehicle{{ID: "v1", Price: decimal.NewFromInt(100), Currency: domain.USD}}, []string{}, nil)

	w = suite.do(http.MethodGet, "/acme/dashboard/favorites", "", suite.session, saved)

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.FavoritesPageResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Vehicles, 1)
	suite.True(resp.Vehicles[0].IsFavorite)
}

func (suite *DashboardHandlerTestSuite) TestDeposit() {
	w := suite.do(http.MethodPost, "/acme/dashboard/wallet/deposit", `{"amount":500}`, suite.session)
	suite.Equal(http.StatusBadRequest, w.Code, "reference is required")

	suite.mockCustomer.On("SubmitDeposit", mock.Anything, "acme", mock.MatchedBy(func(t domain.TenantConfig) bool {
		return t.RequireDeposit && t.MinimumDeposit.Equal(decimal.NewFromInt(1000))
	}), "erp-token", mock.MatchedBy(func(d domain.DepositRequest) bool {
		return d.Currency == domain.USD && d.Amount.Equal(decimal.NewFromInt(500))
	})).Return(nil, fmt.Errorf("%w: minimum deposit is 1000.00 USD", apperrors.ErrValidation)).Once()

	w = suite.do(http.MethodPost, "/acme/dashboard/wallet/deposit", `{"amount":500,"reference":"TT-1"}`, suite.session)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "minimum deposit")
}

func (suite *DashboardHandlerTestSuite) TestUpdateProfileWithRejectedSessionIs401() {
	suite.mockCustomer.On("UpdateProfile", mock.Anything, "acme", "erp-token", domain.CustomerProfile{Name: "Jane", Email: "jane@example.com"}).
		Return(nil, fmt.Errorf("%w", apperrors.ErrUnauthorized))

	w := suite.do(http.MethodPut, "/acme/dashboard/profile", `{"name":"Jane","email":"jane@example.com"}`, suite.session)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *DashboardHandlerTestSuite) TestLogin() {
	suite.mockCustomer.On("Login", mock.Anything, "acme", "jane@example.com", "secret").
		Return(&domain.Session{Token: "new-token", ExpiresAt: time.Now().Add(time.Hour)}, nil)

	w := suite.do(http.MethodPost, "/acme/auth/login", `{"email":"jane@example.com","password":"secret","redirect":"dashboard/bids"}`)

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("/acme/dashboard/bids", resp.Redirect)
	suite.NotNil(resp.ExpiresAt)
	session := responseCookie(w, middleware.SessionCookieName)
	suite.Require().NotNil(session)
	suite.Equal("new-token", session.Value)
	suite.True(session.HttpOnly)
}

func (suite *DashboardHandlerTestSuite) TestLogin_RedirectStaysInStore() {
	suite.mockCustomer.On("Login", mock.Anything, "acme", "jane@example.com", "secret").
		Return(&domain.Session{Token: "new-token"}, nil)

	for _, redirect := range []string{"//evil.example", "https://evil.example/x", `\evil.example`, ""} {
		body := fmt.Sprintf(`{"email":"jane@example.com","password":"secret","redirect":%q}`, redirect)
		w := suite.do(http.MethodPost, "/acme/auth/login", body)
		suite.Require().Equal(http.StatusOK, w.Code, redirect)
		suite.Contains(w.Body.String(), `"redirect":"/acme/dashboard"`, redirect)
	}
}

func (suite *DashboardHandlerTestSuite) TestLogin_BadCredentials() {
	suite.mockCustomer.On("Login", mock.Anything, "acme", "jane@example.com", "wrong").
		Return(nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized))

	w := suite.do(http.MethodPost, "/acme/auth/login", `{"email":"jane@example.com","password":"wrong"}`)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Nil(responseCookie(w, middleware.SessionCookieName))
}

func (suite *DashboardHandlerTestSuite) TestLogout() {
	w := suite.do(http.MethodPost, "/acme/auth/logout", "", suite.session)

	suite.Require().Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"redirect":"/acme/"}`, w.Body.String())
	cleared := responseCookie(w, middleware.SessionCookieName)
	suite.Require().NotNil(cleared)
	suite.Less(cleared.MaxAge, 0)
}

func TestDashboardHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(DashboardHandlerTestSuite))
}
