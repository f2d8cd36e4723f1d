package fxrate

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/vehicle_export_storefront/internal/apperrors"
	"github.com/SscSPs/vehicle_export_storefront/internal/metrics"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

// Source fetches the live USD→JPY rate.
type Source interface {
	LatestUSDJPY(ctx context.Context) (decimal.Decimal, error)
}

// FrankfurterSource reads ECB reference rates from a Frankfurter-compatible API.
type FrankfurterSource struct {
	client *resty.Client
}

type latestResponse struct {
	Rates map[string]decimal.Decimal `json:"rates"`
}

// NewFrankfurterSource creates a source for baseURL (e.g. https://api.frankfurter.app).
// A single attempt is made per call; the cache decides what to do on failure.
func NewFrankfurterSource(baseURL string, timeout time.Duration) *FrankfurterSource {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")
	return &FrankfurterSource{client: client}
}

// LatestUSDJPY calls GET /latest?from=USD&to=JPY.
func (s *FrankfurterSource) LatestUSDJPY(ctx context.Context) (decimal.Decimal, error) {
	var body latestResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"from": "USD", "to": "JPY"}).
		SetResult(&body).
		Get("/latest")
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("fx", metrics.StatusClass(0)).Inc()
		return decimal.Zero, fmt.Errorf("%w: exchange rate request failed: %v", apperrors.ErrUpstream, err)
	}
	metrics.UpstreamRequests.WithLabelValues("fx", metrics.StatusClass(resp.StatusCode())).Inc()
	if resp.IsError() {
		return decimal.Zero, fmt.Errorf("%w: exchange rate API responded with %d", apperrors.ErrUpstream, resp.StatusCode())
	}

	rate, ok := body.Rates["JPY"]
	if !ok || !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: JPY rate not found in response", apperrors.ErrUpstream)
	}
	return rate, nil
}
