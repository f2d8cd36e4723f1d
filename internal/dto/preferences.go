package dto

import (
	"github.com/SscSPs/vehicle_export_storefront/internal/core/domain"
	"github.com/SscSPs/vehicle_export_storefront/internal/currency"
)

// CurrencyPreferenceRequest selects the display currency.
type CurrencyPreferenceRequest struct {
	Currency domain.CurrencyCode `json:"currency" binding:"required,oneof=USD JPY"`
}

// LocalePreferenceRequest selects the display language.
type LocalePreferenceRequest struct {
	Locale domain.Locale `json:"locale" binding:"required,oneof=en ja"`
}

// PreferencesResponse is the visitor's persisted currency state.
type PreferencesResponse struct {
	Currency    domain.CurrencyCode `json:"currency"`
	Locale      domain.Locale       `json:"locale"`
	Rate        float64             `json:"rate"`
	LastUpdated *string             `json:"lastUpdated"`
	IsLoading   bool                `json:"isLoading"`
}

// ToPreferencesResponse converts a currency.Preference to PreferencesResponse DTO
func ToPreferencesResponse(p currency.Preference, loading bool) PreferencesResponse {
	resp := PreferencesResponse{
		Currency:  p.Currency,
		Locale:    p.Locale,
		Rate:      p.Rate.InexactFloat64(),
		IsLoading: loading,
	}
	if p.LastUpdated != nil {
		s := FormatISOTime(*p.LastUpdated)
		resp.LastUpdated = &s
	}
	return resp
}

// FavoritesResponse lists the vehicle ids the visitor saved.
type FavoritesResponse struct {
	Favorites []string `json:"favorites"`
}

// FavoriteToggleResponse reports the state of one vehicle after a toggle.
type FavoriteToggleResponse struct {
	VehicleID  string `json:"vehicleId"`
	IsFavorite bool   `json:"isFavorite"`
}
