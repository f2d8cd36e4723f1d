package domain

// CurrencyCode is a display or base currency. Only USD and JPY are priced by the storefront.
type CurrencyCode string

const (
	USD CurrencyCode = "USD"
	JPY CurrencyCode = "JPY"
)

// Valid reports whether the storefront can convert to or from c.
func (c CurrencyCode) Valid() bool {
	return c == USD || c == JPY
}

// Locale is the visitor's language preference.
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleJA Locale = "ja"
)

func (l Locale) Valid() bool {
	return l == LocaleEN || l == LocaleJA
}
