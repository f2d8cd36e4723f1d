package dto

import (
	"github.com/SscSPs/vehicle_export_storefront/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Price is an amount already converted into the visitor's display currency.
type Price struct {
	Amount   decimal.Decimal     `json:"amount"`
	Currency domain.CurrencyCode `json:"currency"`
	Display  string              `json:"display" example:"$12,500"`
}

// PriceFunc converts an amount quoted in base into a display Price.
type PriceFunc func(amount decimal.Decimal, base domain.CurrencyCode) Price

// priceOrAsk returns nil for unpriced vehicles, which render as "Ask for Price".
func priceOrAsk(price PriceFunc, amount decimal.Decimal, base domain.CurrencyCode) *Price {
	if !amount.IsPositive() {
		return nil
	}
	if base == "" {
		base = domain.USD
	}
	p := price(amount, base)
	return &p
}

func optionalPrice(price PriceFunc, amount *decimal.Decimal, base domain.CurrencyCode) *Price {
	if amount == nil {
		return nil
	}
	return priceOrAsk(price, *amount, base)
}
