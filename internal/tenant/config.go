// Package tenant resolves a store slug to its configuration.
package tenant

import (
	"github.com/SscSPs/vehicle_export_storefront/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DefaultID marks a configuration that was substituted because the real one could not be loaded.
const DefaultID = "default"

// LoadFailedMessage is the error exposed to views when the configuration could not be loaded.
const LoadFailedMessage = "Failed to load store configuration"

// DefaultConfig returns the configuration every store starts from.
func DefaultConfig() domain.TenantConfig {
	return domain.TenantConfig{
		StoreName:        "Vehicle Export",
		Tagline:          "Premium Japanese Vehicles Direct to You",
		PrimaryColor:     "#c62828",
		SecondaryColor:   "#1a1a1a",
		RequireDeposit:   true,
		MinimumDeposit:   decimal.NewFromInt(1000),
		DefaultCurrency:  domain.USD,
		ShowJapanTime:    true,
		HeroSlides:       []domain.HeroSlide{},
		NoticeBarEnabled: false,
	}
}

// FallbackConfig is the defaults stamped with the requested slug, used when loading fails.
func FallbackConfig(slug string) domain.TenantConfig {
	cfg := DefaultConfig()
	cfg.ID = DefaultID
	cfg.TenantID = slug
	return cfg
}

// Overlay copies every field present in doc over base. Absent (nil) fields keep base's value.
func Overlay(base domain.TenantConfig, doc *domain.TenantConfigDocument) domain.TenantConfig {
	if doc == nil {
		return base
	}
	out := base

	setString(&out.ID, doc.ID)
	setString(&out.TenantID, doc.TenantID)
	setString(&out.StoreName, doc.StoreName)
	setString(&out.Tagline, doc.Tagline)
	setOptional(&out.LogoURL, doc.LogoURL)
	setString(&out.PrimaryColor, doc.PrimaryColor)
	setString(&out.SecondaryColor, doc.SecondaryColor)
	setOptional(&out.FaviconURL, doc.FaviconURL)

	setOptional(&out.ContactEmail, doc.ContactEmail)
	setOptional(&out.ContactPhone, doc.ContactPhone)
	setOptional(&out.WhatsappNumber, doc.WhatsappNumber)
	setOptional(&out.Address, doc.Address)
	setOptional(&out.FacebookURL, doc.FacebookURL)
	setOptional(&out.InstagramURL, doc.InstagramURL)
	setOptional(&out.YoutubeURL, doc.YoutubeURL)

	if doc.HeroSlides != nil {
		out.HeroSlides = *doc.HeroSlides
	}
	setOptional(&out.NoticeBarText, doc.NoticeBarText)
	if doc.NoticeBarEnabled != nil {
		out.NoticeBarEnabled = *doc.NoticeBarEnabled
	}
	if doc.PromoBanners != nil {
		out.PromoBanners = *doc.PromoBanners
	}

	if doc.RequireDeposit != nil {
		out.RequireDeposit = *doc.RequireDeposit
	}
	if doc.MinimumDeposit != nil {
		out.MinimumDeposit = *doc.MinimumDeposit
	}
	if doc.DefaultCurrency != nil && doc.DefaultCurrency.Valid() {
		out.DefaultCurrency = *doc.DefaultCurrency
	}
	if doc.ShowJapanTime != nil {
		out.ShowJapanTime = *doc.ShowJapanTime
	}

	if doc.HowToBuyStockSteps != nil {
		out.HowToBuyStockSteps = *doc.HowToBuyStockSteps
	}
	if doc.HowToBidSteps != nil {
		out.HowToBidSteps = *doc.HowToBidSteps
	}
	if doc.CompanyProfile != nil {
		out.CompanyProfile = doc.CompanyProfile
	}
	if doc.BankDetails != nil {
		out.BankDetails = doc.BankDetails
	}
	if doc.FAQItems != nil {
		out.FAQItems = *doc.FAQItems
	}
	if doc.AboutUs != nil {
		out.AboutUs = doc.AboutUs
	}
	if doc.ContactPage != nil {
		out.ContactPage = doc.ContactPage
	}
	return out
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setOptional(dst **string, src *string) {
	if src != nil {
		v := *src
		*dst = &v
	}
}
