package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BidStatus string

const (
	BidActive BidStatus = "active"
	BidWon    BidStatus = "won"
	BidLost   BidStatus = "lost"
)

// Bid is one of the signed-in customer's bids.
type Bid struct {
	ID          string          `json:"id"`
	VehicleID   string          `json:"vehicleId,omitempty"`
	VehicleName string          `json:"vehicleName"`
	StockID     string          `json:"stockId"`
	BidAmount   decimal.Decimal `json:"bidAmount"`
	Status      BidStatus       `json:"status"`
	Date        string          `json:"date"`
	Image       string          `json:"image,omitempty"`
}

type WalletTransactionType string

const (
	TxDeposit        WalletTransactionType = "DEPOSIT"
	TxWithdrawal     WalletTransactionType = "WITHDRAWAL"
	TxBidLock        WalletTransactionType = "BID_LOCK"
	TxInvoicePayment WalletTransactionType = "INVOICE_PAYMENT"
	TxRefund         WalletTransactionType = "REFUND"
)

type WalletTransactionStatus string

const (
	TxPending  WalletTransactionStatus = "PENDING"
	TxCleared  WalletTransactionStatus = "CLEARED"
	TxRejected WalletTransactionStatus = "REJECTED"
)

type WalletTransaction struct {
	ID          string                  `json:"id"`
	Amount      decimal.Decimal         `json:"amount"`
	Type        WalletTransactionType   `json:"type"`
	Status      WalletTransactionStatus `json:"status"`
	Reference   string                  `json:"reference"`
	Description string                  `json:"description"`
	CreatedAt   time.Time               `json:"createdAt"`
	ProofURL    string                  `json:"proofUrl,omitempty"`
	AdminNote   string                  `json:"adminNote,omitempty"`
}

// Wallet is the customer's deposit balance held by the ERP.
type Wallet struct {
	Balance  decimal.Decimal `json:"balance"`
	Currency CurrencyCode    `json:"currency"`
}

// DepositRequest announces a bank transfer the customer made into their wallet.
type DepositRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Currency  CurrencyCode    `json:"currency"`
	Reference string          `json:"reference"`
	ProofURL  string          `json:"proofUrl"`
}

type CustomerProfile struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// Session is the credential the ERP issues on login.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}

// DashboardSummary is the signed-in customer's overview.
type DashboardSummary struct {
	Profile         *CustomerProfile
	Wallet          *Wallet
	ActiveBids      int
	WonBids         int
	LostBids        int
	PendingDeposits int
}

// WalletStatement is the wallet balance with its transaction history.
type WalletStatement struct {
	Wallet       Wallet
	Transactions []WalletTransaction
}
