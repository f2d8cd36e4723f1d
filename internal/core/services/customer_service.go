package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/vehicle_export_storefront/internal/apperrors"
	"github.com/SscSPs/vehicle_export_storefront/internal/core/domain"
	portsrepo "github.com/SscSPs/vehicle_export_storefront/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/vehicle_export_storefront/internal/core/ports/services"
	"github.com/SscSPs/vehicle_export_storefront/internal/currency"
	"github.com/SscSPs/vehicle_export_storefront/internal/utils"
)

type customerService struct {
	BaseService
	customerRepo portsrepo.CustomerRepositoryFacade
	rates        portssvc.ExchangeRateSvc
}

// NewCustomerService creates a customer service. rates converts deposits quoted in a
// currency other than the store's when checking the minimum deposit.
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade, rates portssvc.ExchangeRateSvc) *customerService {
	return &customerService{
		customerRepo: customerRepo,
		rates:        rates,
	}
}

func (s *customerService) Login(ctx context.Context, slug, email, password string) (*domain.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", apperrors.ErrValidation)
	}
	session, err := s.customerRepo.Login(ctx, slug, email, password)
	if err != nil {
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}
	if session == nil || session.Token == "" {
		return nil, fmt.Errorf("%w: login response carried no token", apperrors.ErrUpstream)
	}
	s.LogInfo(ctx, "Customer signed in", slog.String("store_slug", slug))
	return session, nil
}

func (s *customerService) ListBids(ctx context.Context, slug, token string) ([]domain.Bid, error) {
	bids, err := s.customerRepo.ListBids(ctx, slug, token)
	if err != nil {
		return nil, fmt.Errorf("failed to list bids: %w", err)
	}
	if bids == nil {
		return []domain.Bid{}, nil
	}
	return bids, nil
}

func (s *customerService) GetWalletStatement(ctx context.Context, slug, token string) (*domain.WalletStatement, error) {
	wallet, err := s.customerRepo.GetWallet(ctx, slug, token)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	txs, err := s.customerRepo.ListWalletTransactions(ctx, slug, token)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallet transactions: %w", err)
	}
	if txs == nil {
		txs = []domain.WalletTransaction{}
	}
	return &domain.WalletStatement{Wallet: *wallet, Transactions: txs}, nil
}

func (s *customerService) GetProfile(ctx context.Context, slug, token string) (*domain.CustomerProfile, error) {
	profile, err := s.customerRepo.GetProfile(ctx, slug, token)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

func (s *customerService) GetDashboardSummary(ctx context.Context, slug, token string) (*domain.DashboardSummary, error) {
	profile, err := s.GetProfile(ctx, slug, token)
	if err != nil {
		return nil, err
	}
	summary := &domain.DashboardSummary{Profile: profile}

	bids, err := s.ListBids(ctx, slug, token)
	if err != nil {
		return nil, err
	}
	for _, b := range bids {
		switch b.Status {
		case domain.BidActive:
			summary.ActiveBids++
		case domain.BidWon:
			summary.WonBids++
		case domain.BidLost:
			summary.LostBids++
		}
	}

	// A customer who never deposited has no wallet yet.
	statement, err := s.GetWalletStatement(ctx, slug, token)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
	case err != nil:
		return nil, err
	default:
		summary.Wallet = &statement.Wallet
		for _, tx := range statement.Transactions {
			if tx.Type == domain.TxDeposit && tx.Status == domain.TxPending {
				summary.PendingDeposits++
			}
		}
	}
	return summary, nil
}

func (s *customerService) SubmitDeposit(ctx context.Context, slug string, store domain.TenantConfig, token string, deposit domain.DepositRequest) (*domain.SubmissionReceipt, error) {
	if !deposit.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: deposit amount must be positive", apperrors.ErrValidation)
	}
	if strings.TrimSpace(deposit.Reference) == "" {
		return nil, fmt.Errorf("%w: transfer reference is required", apperrors.ErrValidation)
	}
	if deposit.Currency == "" {
		deposit.Currency = domain.USD
	}

	if store.RequireDeposit && store.MinimumDeposit.IsPositive() {
		storeCurrency := store.DefaultCurrency
		if !storeCurrency.Valid() {
			storeCurrency = domain.USD
		}
		amount := deposit.Amount
		if deposit.Currency != storeCurrency {
			rate := s.rates.GetExchangeRate(ctx)
			converted, err := currency.Convert(deposit.Amount, deposit.Currency, storeCurrency, rate.Rate)
			if err != nil {
				return nil, err
			}
			amount = converted
		}
		if amount.LessThan(store.MinimumDeposit) {
			return nil, fmt.Errorf("%w: minimum deposit is %s %s", apperrors.ErrValidation, utils.FormatWithCurrencyPrecision(store.MinimumDeposit, storeCurrency), storeCurrency)
		}
	}

	receipt, err := s.customerRepo.SubmitDeposit(ctx, slug, token, deposit)
	if err != nil {
		return nil, fmt.Errorf("failed to submit deposit: %w", err)
	}
	s.LogInfo(ctx, "Deposit submitted",
		slog.String("store_slug", slug),
		slog.String("amount", deposit.Amount.String()),
		slog.String("currency", string(deposit.Currency)))
	return receipt, nil
}

func (s *customerService) UpdateProfile(ctx context.Context, slug, token string, profile domain.CustomerProfile) (*domain.CustomerProfile, error) {
	profile.Name = strings.TrimSpace(profile.Name)
	profile.Email = strings.TrimSpace(profile.Email)
	if profile.Name == "" || profile.Email == "" {
		return nil, fmt.Errorf("%w: name and email are required", apperrors.ErrValidation)
	}
	updated, err := s.customerRepo.UpdateProfile(ctx, slug, token, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return updated, nil
}
