package dto

import (
	"time"

	"github.com/SscSPs/vehicle_export_storefront/internal/core/domain"
	"github.com/shopspring/decimal"
)

var japanTime = time.FixedZone("JST", 9*60*60)

// StoreResponse is the per-page store context: the tenant, the visitor's preferences
// and the path prefix links must carry.
type StoreResponse struct {
	StoreSlug   string               `json:"storeSlug"`
	BasePath    string               `json:"basePath"`
	Tenant      *domain.TenantConfig `json:"tenant"`
	Error       string               `json:"error,omitempty"`
	Preferences PreferencesResponse  `json:"preferences"`
	JapanTime   string               `json:"japanTime,omitempty"`
}

// ToStoreResponse builds the store context. Japan time is included when the store shows it.
func ToStoreResponse(slug, basePath string, tenant *domain.TenantConfig, loadErr string, prefs PreferencesResponse, now time.Time) StoreResponse {
	resp := StoreResponse{
		StoreSlug:   slug,
		BasePath:    basePath,
		Tenant:      tenant,
		Error:       loadErr,
		Preferences: prefs,
	}
	if tenant != nil && tenant.ShowJapanTime {
		resp.JapanTime = now.In(japanTime).Format("2006-01-02 15:04")
	}
	return resp
}

// HomeResponse is the storefront landing page.
type HomeResponse struct {
	Store            StoreResponse         `json:"store"`
	NoticeBar        *string               `json:"noticeBar,omitempty"`
	HeroSlides       []domain.HeroSlide    `json:"heroSlides"`
	PromoBanners     []domain.PromoBanner  `json:"promoBanners"`
	FeaturedVehicles []VehicleCardResponse `json:"featuredVehicles"`
}

// ToHomeResponse assembles the landing page from the store context and featured vehicles.
func ToHomeResponse(store StoreResponse, featured []VehicleCardResponse) HomeResponse {
	resp := HomeResponse{
		Store:            store,
		HeroSlides:       []domain.HeroSlide{},
		PromoBanners:     []domain.PromoBanner{},
		FeaturedVehicles: featured,
	}
	if t := store.Tenant; t != nil {
		if t.NoticeBarEnabled && t.NoticeBarText != nil && *t.NoticeBarText != "" {
			resp.NoticeBar = t.NoticeBarText
		}
		if t.HeroSlides != nil {
			resp.HeroSlides = t.HeroSlides
		}
		if t.PromoBanners != nil {
			resp.PromoBanners = t.PromoBanners
		}
	}
	if resp.FeaturedVehicles == nil {
		resp.FeaturedVehicles = []VehicleCardResponse{}
	}
	return resp
}

// VehicleListPageResponse wraps a listing page with its store context.
type VehicleListPageResponse struct {
	Store StoreResponse `json:"store"`
	VehicleListResponse
}

// VehicleDetailPageResponse wraps a vehicle page with its store context.
type VehicleDetailPageResponse struct {
	Store StoreResponse `json:"store"`
	VehicleDetailResponse
}

// ContentPageResponse is an informational page. Content is nil when the store has not
// configured the section, in which case renderers show their stock copy.
type ContentPageResponse struct {
	Store   StoreResponse `json:"store"`
	Page    string        `json:"page"`
	Content any           `json:"content"`
}

// AboutContent backs the about page.
type AboutContent struct {
	AboutUs        *domain.AboutUs        `json:"aboutUs"`
	CompanyProfile *domain.CompanyProfile `json:"companyProfile"`
}

// ContactContent backs the contact page.
type ContactContent struct {
	ContactPage    *domain.ContactPage `json:"contactPage"`
	ContactEmail   *string             `json:"contactEmail"`
	ContactPhone   *string             `json:"contactPhone"`
	WhatsappNumber *string             `json:"whatsappNumber"`
	Address        *string             `json:"address"`
}

// BankInfoContent backs the bank-info page.
type BankInfoContent struct {
	BankDetails    *domain.BankDetails `json:"bankDetails"`
	RequireDeposit bool                `json:"requireDeposit"`
	MinimumDeposit decimal.Decimal     `json:"minimumDeposit"`
}

// StepsContent backs the how-to pages.
type StepsContent struct {
	Steps []domain.HowToStep `json:"steps"`
}

// FAQContent backs the FAQ page.
type FAQContent struct {
	Items []domain.FAQItem `json:"items"`
}
