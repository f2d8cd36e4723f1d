package currency

import (
	"github.com/SscSPs/vehicle_export_storefront/internal/core/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	usdPrinter = message.NewPrinter(language.AmericanEnglish)
	jpyPrinter = message.NewPrinter(language.Japanese)
)

// Format renders a whole-unit price with locale grouping: $1,234 or ￥150,000.
func Format(amount decimal.Decimal, c domain.CurrencyCode) string {
	whole := amount.Round(0).IntPart()
	sign := ""
	if whole < 0 {
		sign = "-"
		whole = -whole
	}
	if c == domain.JPY {
		return sign + "￥" + jpyPrinter.Sprintf("%d", whole)
	}
	return sign + "$" + usdPrinter.Sprintf("%d", whole)
}

// FormatPrice converts amount from base into the display currency and formats it.
func (s *Store) FormatPrice(amount decimal.Decimal, base domain.CurrencyCode) (string, error) {
	converted, err := s.Convert(amount, base)
	if err != nil {
		return "", err
	}
	return Format(converted, s.Preference().Currency), nil
}
