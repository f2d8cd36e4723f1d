package dto

import (
	"github.com/SscSPs/vehicle_export_storefront/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LoginRequest defines the structure for a customer sign-in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Redirect string `json:"redirect" binding:"omitempty,max=500"`
}

// LoginResponse tells the client where to go after signing in.
type LoginResponse struct {
	Redirect  string  `json:"redirect"`
	ExpiresAt *string `json:"expiresAt,omitempty"`
}

// DepositRequest defines the structure for announcing a bank transfer into the wallet.
type DepositRequest struct {
	Amount    decimal.Decimal     `json:"amount"`
	Currency  domain.CurrencyCode `json:"currency" binding:"omitempty,oneof=USD JPY"`
	Reference string              `json:"reference" binding:"required,max=200"`
	ProofURL  string              `json:"proofUrl" binding:"omitempty,url"`
}

// ToDepositRequest converts the request to the ERP deposit. Deposits default to USD.
func (r DepositRequest) ToDepositRequest() domain.DepositRequest {
	cur := r.Currency
	if cur == "" {
		cur = domain.USD
	}
	return domain.DepositRequest{
		Amount:    r.Amount,
		Currency:  cur,
		Reference: r.Reference,
		ProofURL:  r.ProofURL,
	}
}

// ProfileUpdateRequest defines the structure for editing the customer profile.
type ProfileUpdateRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"omitempty,max=50"`
	Address string `json:"address" binding:"omitempty,max=500"`
}

func (r ProfileUpdateRequest) ToProfile() domain.CustomerProfile {
	return domain.CustomerProfile{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Address: r.Address,
	}
}

// BidResponse is a bid with its amount in the visitor's currency.
type BidResponse struct {
	domain.Bid
	DisplayAmount *Price `json:"displayAmount"`
}

// ToListBidResponse converts a slice of domain.Bid. Bids are placed in USD.
func ToListBidResponse(bids []domain.Bid, price PriceFunc) []BidResponse {
	responses := make([]BidResponse, len(bids))
	for i, b := range bids {
		responses[i] = BidResponse{Bid: b, DisplayAmount: priceOrAsk(price, b.BidAmount, domain.USD)}
	}
	return responses
}

// BidsPageResponse is the dashboard bids page.
type BidsPageResponse struct {
	Store StoreResponse `json:"store"`
	Bids  []BidResponse `json:"bids"`
}

// WalletPageResponse is the dashboard wallet page.
type WalletPageResponse struct {
	Store          StoreResponse              `json:"store"`
	Balance        domain.Wallet              `json:"wallet"`
	BalanceDisplay Price                      `json:"balanceDisplay"`
	Transactions   []domain.WalletTransaction `json:"transactions"`
	RequireDeposit bool                       `json:"requireDeposit"`
	MinimumDeposit decimal.Decimal            `json:"minimumDeposit"`
}

// ToWalletPageResponse converts a domain.WalletStatement to WalletPageResponse DTO
func ToWalletPageResponse(store StoreResponse, statement domain.WalletStatement, price PriceFunc) WalletPageResponse {
	base := statement.Wallet.Currency
	if base == "" {
		base = domain.USD
	}
	resp := WalletPageResponse{
		Store:          store,
		Balance:        statement.Wallet,
		BalanceDisplay: price(statement.Wallet.Balance, base),
		Transactions:   statement.Transactions,
	}
	if resp.Transactions == nil {
		resp.Transactions = []domain.WalletTransaction{}
	}
	if store.Tenant != nil {
		resp.RequireDeposit = store.Tenant.RequireDeposit
		resp.MinimumDeposit = store.Tenant.MinimumDeposit
	}
	return resp
}

// DashboardSummaryResponse is the dashboard overview.
type DashboardSummaryResponse struct {
	Store           StoreResponse           `json:"store"`
	Profile         *domain.CustomerProfile `json:"profile"`
	ActiveBids      int                     `json:"activeBids"`
	WonBids         int                     `json:"wonBids"`
	LostBids        int                     `json:"lostBids"`
	PendingDeposits int                     `json:"pendingDeposits"`
	Watchlist       int                     `json:"watchlist"`
	WalletBalance   *Price                  `json:"walletBalance"`
}

// ToDashboardSummaryResponse converts a domain.DashboardSummary to DashboardSummaryResponse DTO
func ToDashboardSummaryResponse(store StoreResponse, s domain.DashboardSummary, watchlist int, price PriceFunc) DashboardSummaryResponse {
	resp := DashboardSummaryResponse{
		Store:           store,
		Profile:         s.Profile,
		ActiveBids:      s.ActiveBids,
		WonBids:         s.WonBids,
		LostBids:        s.LostBids,
		PendingDeposits: s.PendingDeposits,
		Watchlist:       watchlist,
	}
	if s.Wallet != nil {
		base := s.Wallet.Currency
		if base == "" {
			base = domain.USD
		}
		p := price(s.Wallet.Balance, base)
		resp.WalletBalance = &p
	}
	return resp
}

// ProfilePageResponse is the dashboard profile page.
type ProfilePageResponse struct {
	Store   StoreResponse          `json:"store"`
	Profile domain.CustomerProfile `json:"profile"`
}

// FavoritesPageResponse is the dashboard watchlist with the saved vehicles resolved.
type FavoritesPageResponse struct {
	Store    StoreResponse         `json:"store"`
	Vehicles []VehicleCardResponse `json:"vehicles"`
	Missing  []string              `json:"missing,omitempty"`
}
