package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/SscSPs/vehicle_export_storefront/internal/core/domain"
)

// GetConfig loads the tenant configuration document for a store slug.
func (c *Client) GetConfig(ctx context.Context, slug string) (*domain.TenantConfigDocument, error) {
	var doc domain.TenantConfigDocument
	err := c.call(ctx, Request{Path: "config", Params: Params{"subdomain": slug}}, &doc)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *Client) GetVehicles(ctx context.Context, slug string, f domain.VehicleFilter) (*domain.VehicleList, error) {
	params := Params{
		"subdomain":    slug,
		"make":         f.Make,
		"model":        f.Model,
		"minYear":      f.MinYear,
		"maxYear":      f.MaxYear,
		"minPrice":     f.MinPrice,
		"maxPrice":     f.MaxPrice,
		"fuelType":     f.FuelType,
		"transmission": f.Transmission,
		"bodyType":     f.BodyType,
		"limit":        f.Limit,
		"offset":       f.Offset,
		"sort":         f.Sort,
		"clearance":    f.Clearance,
	}
	var list domain.VehicleList
	if err := c.call(ctx, Request{Path: "vehicles", Params: params}, &list); err != nil {
		return nil, err
	}
	if list.Data == nil {
		list.Data = []domain.Vehicle{}
	}
	return &list, nil
}

func (c *Client) GetVehicle(ctx context.Context, slug, id string) (*domain.VehicleDetail, error) {
	var v domain.VehicleDetail
	err := c.call(ctx, Request{Path: "vehicles/" + url.PathEscape(id), Params: Params{"subdomain": slug}}, &v)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// SubmitInquiry posts a bid, vehicle request or contact message. The tenant id defaults to the subdomain.
func (c *Client) SubmitInquiry(ctx context.Context, inq domain.Inquiry) (*domain.SubmissionReceipt, error) {
	if inq.TenantID == "" {
		inq.TenantID = inq.Subdomain
	}
	var receipt domain.SubmissionReceipt
	if err := c.call(ctx, Request{Method: http.MethodPost, Path: "bids", Body: inq}, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (c *Client) GetShippingCountries(ctx context.Context, slug string) ([]domain.ShippingCountry, error) {
	return callList[domain.ShippingCountry](ctx, c, Request{Path: "shipping/countries", Params: Params{"subdomain": slug}})
}

func (c *Client) GetShippingPorts(ctx context.Context, slug, countryID string) ([]domain.ShippingPort, error) {
	return callList[domain.ShippingPort](ctx, c, Request{
		Path:   "shipping/ports",
		Params: Params{"subdomain": slug, "countryId": countryID},
	})
}

func (c *Client) CalculateShipping(ctx context.Context, slug, vehicleID, portID string) (*domain.ShippingQuote, error) {
	var q domain.ShippingQuote
	err := c.call(ctx, Request{
		Path:   "shipping/calculate",
		Params: Params{"subdomain": slug, "vehicleId": vehicleID, "portId": portID},
	}, &q)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (c *Client) SubmitQuote(ctx context.Context, req domain.QuoteRequest) (*domain.SubmissionReceipt, error) {
	var receipt domain.SubmissionReceipt
	if err := c.call(ctx, Request{Method: http.MethodPost, Path: "quotes", Body: req}, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// Customer calls below require a session token.

func (c *Client) ListBids(ctx context.Context, slug, token string) ([]domain.Bid, error) {
	return callList[domain.Bid](ctx, c, Request{Path: "bids", Params: Params{"subdomain": slug}, Token: token})
}

func (c *Client) GetWallet(ctx context.Context, slug, token string) (*domain.Wallet, error) {
	var w domain.Wallet
	if err := c.call(ctx, Request{Path: "wallet", Params: Params{"subdomain": slug}, Token: token}, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (c *Client) ListWalletTransactions(ctx context.Context, slug, token string) ([]domain.WalletTransaction, error) {
	return callList[domain.WalletTransaction](ctx, c, Request{
		Path:   "wallet/transactions",
		Params: Params{"subdomain": slug},
		Token:  token,
	})
}

func (c *Client) SubmitDeposit(ctx context.Context, slug, token string, dep domain.DepositRequest) (*domain.SubmissionReceipt, error) {
	var receipt domain.SubmissionReceipt
	err := c.call(ctx, Request{
		Method: http.MethodPost,
		Path:   "wallet/deposit",
		Params: Params{"subdomain": slug},
		Body:   dep,
		Token:  token,
	}, &receipt)
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (c *Client) GetProfile(ctx context.Context, slug, token string) (*domain.CustomerProfile, error) {
	var p domain.CustomerProfile
	if err := c.call(ctx, Request{Path: "customers/me", Params: Params{"subdomain": slug}, Token: token}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpdateProfile(ctx context.Context, slug, token string, profile domain.CustomerProfile) (*domain.CustomerProfile, error) {
	var p domain.CustomerProfile
	err := c.call(ctx, Request{
		Method: http.MethodPut,
		Path:   "customers/me",
		Params: Params{"subdomain": slug},
		Body:   profile,
		Token:  token,
	}, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Login exchanges customer credentials for a session.
func (c *Client) Login(ctx context.Context, slug, email, password string) (*domain.Session, error) {
	body := map[string]string{"subdomain": slug, "email": email, "password": password}
	var s domain.Session
	if err := c.call(ctx, Request{Method: http.MethodPost, Path: "auth/login", Body: body}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
