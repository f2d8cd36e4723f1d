package utils

import (
	"testing"

	"github.com/SscSPs/vehicle_export_storefront/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatWithCurrencyPrecision(t *testing.T) {
	amount := decimal.RequireFromString("12.3456")

	assert.Equal(t, "12.35", FormatWithCurrencyPrecision(amount, domain.USD))
	assert.Equal(t, "12", FormatWithCurrencyPrecision(amount, domain.JPY))
	assert.Equal(t, "12.35", FormatWithCurrencyPrecision(amount, "EUR"))
	assert.Equal(t, "1000", FormatWithCurrencyPrecision(decimal.NewFromInt(1000), domain.USD))
}
