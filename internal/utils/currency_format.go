package utils

import (
	"github.com/SscSPs/vehicle_export_storefront/internal/core/domain"
	"github.com/shopspring/decimal"
)

// currencyPrecision is the number of minor units each priced currency carries.
var currencyPrecision = map[domain.CurrencyCode]int{
	domain.USD: 2,
	domain.JPY: 0,
}

// FormatWithCurrencyPrecision formats an amount with the correct precision for a given currency
// Example: amount 12.3456 with USD (precision 2) returns "12.35"
// Example: amount 12.3456 with JPY (precision 0) returns "12"
// Unknown currencies keep two decimals.
func FormatWithCurrencyPrecision(amount decimal.Decimal, currency domain.CurrencyCode) string {
	precision, ok := currencyPrecision[currency]
	if !ok {
		precision = 2
	}
	return FormatWithPrecision(amount, precision)
}

// FormatWithPrecision formats an amount with the given precision
// This is a convenience function when you only have the precision value
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.Round(int32(precision)).String()
}
