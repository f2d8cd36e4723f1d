package domain

import "github.com/shopspring/decimal"

// TenantConfig is the full configuration document of one store.
type TenantConfig struct {
	ID             string  `json:"id"`
	TenantID       string  `json:"tenantId"`
	StoreName      string  `json:"storeName"`
	Tagline        string  `json:"tagline"`
	LogoURL        *string `json:"logoUrl"`
	PrimaryColor   string  `json:"primaryColor"`
	SecondaryColor string  `json:"secondaryColor"`
	FaviconURL     *string `json:"faviconUrl"`

	// Contact
	ContactEmail   *string `json:"contactEmail"`
	ContactPhone   *string `json:"contactPhone"`
	WhatsappNumber *string `json:"whatsappNumber"`
	Address        *string `json:"address"`
	FacebookURL    *string `json:"facebookUrl"`
	InstagramURL   *string `json:"instagramUrl"`
	YoutubeURL     *string `json:"youtubeUrl"`

	// Content
	HeroSlides       []HeroSlide   `json:"heroSlides"`
	NoticeBarText    *string       `json:"noticeBarText"`
	NoticeBarEnabled bool          `json:"noticeBarEnabled"`
	PromoBanners     []PromoBanner `json:"promoBanners,omitempty"`

	// Settings
	RequireDeposit  bool            `json:"requireDeposit"`
	MinimumDeposit  decimal.Decimal `json:"minimumDeposit"`
	DefaultCurrency CurrencyCode    `json:"defaultCurrency"`
	ShowJapanTime   bool            `json:"showJapanTime"`

	HowToBuyStockSteps []HowToStep     `json:"howToBuyStockSteps"`
	HowToBidSteps      []HowToStep     `json:"howToBidSteps"`
	CompanyProfile     *CompanyProfile `json:"companyProfile"`
	BankDetails        *BankDetails    `json:"bankDetails"`
	FAQItems           []FAQItem       `json:"faqItems"`
	AboutUs            *AboutUs        `json:"aboutUs"`
	ContactPage        *ContactPage    `json:"contactPage"`
}

type HeroSlide struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	ImageURL string `json:"imageUrl"`
	Link     string `json:"link,omitempty"`
}

type PromoBanner struct {
	ID       string `json:"id"`
	ImageURL string `json:"imageUrl"`
	Link     string `json:"link,omitempty"`
	BgColor  string `json:"bgColor,omitempty"`
}

type HowToStep struct {
	Step        int    `json:"step"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
}

type CompanyProfile struct {
	Title       string `json:"title,omitempty"`
	Content     string `json:"content,omitempty"`
	FoundedYear string `json:"foundedYear,omitempty"`
	Employees   string `json:"employees,omitempty"`
}

// BankDetails are the wire-transfer instructions shown on the bank-info page.
type BankDetails struct {
	BankName      string `json:"bankName"`
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
	SwiftCode     string `json:"swiftCode"`
	Branch        string `json:"branch,omitempty"`
	IBAN          string `json:"iban,omitempty"`
	BankAddress   string `json:"bankAddress,omitempty"`
}

type FAQItem struct {
	Category string `json:"category,omitempty"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type AboutUs struct {
	Story   string       `json:"story,omitempty"`
	Mission string       `json:"mission,omitempty"`
	Stats   []AboutStat  `json:"stats,omitempty"`
	Values  []AboutValue `json:"values,omitempty"`
}

type AboutStat struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

type AboutValue struct {
	Title string `json:"title"`
	Desc  string `json:"desc"`
}

// ContactPage holds the copy for the contact page. Its bank block is optional and
// may differ from the store's primary BankDetails.
type ContactPage struct {
	Title         string              `json:"title,omitempty"`
	Subtitle      string              `json:"subtitle,omitempty"`
	MapURL        string              `json:"mapUrl,omitempty"`
	BusinessHours string              `json:"businessHours,omitempty"`
	BankDetails   *ContactBankDetails `json:"bankDetails,omitempty"`
}

type ContactBankDetails struct {
	BankName      string `json:"bankName,omitempty"`
	AccountName   string `json:"accountName,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	SwiftCode     string `json:"swiftCode,omitempty"`
	Branch        string `json:"branch,omitempty"`
	BankAddress   string `json:"bankAddress,omitempty"`
}

// TenantConfigDocument is a configuration document as returned by the ERP. Any field may be
// missing; nil means "not provided" and leaves the default in place.
type TenantConfigDocument struct {
	ID             *string `json:"id"`
	TenantID       *string `json:"tenantId"`
	StoreName      *string `json:"storeName"`
	Tagline        *string `json:"tagline"`
	LogoURL        *string `json:"logoUrl"`
	PrimaryColor   *string `json:"primaryColor"`
	SecondaryColor *string `json:"secondaryColor"`
	FaviconURL     *string `json:"faviconUrl"`

	ContactEmail   *string `json:"contactEmail"`
	ContactPhone   *string `json:"contactPhone"`
	WhatsappNumber *string `json:"whatsappNumber"`
	Address        *string `json:"address"`
	FacebookURL    *string `json:"facebookUrl"`
	InstagramURL   *string `json:"instagramUrl"`
	YoutubeURL     *string `json:"youtubeUrl"`

	HeroSlides       *[]HeroSlide   `json:"heroSlides"`
	NoticeBarText    *string        `json:"noticeBarText"`
	NoticeBarEnabled *bool          `json:"noticeBarEnabled"`
	PromoBanners     *[]PromoBanner `json:"promoBanners"`

	RequireDeposit  *bool            `json:"requireDeposit"`
	MinimumDeposit  *decimal.Decimal `json:"minimumDeposit"`
	DefaultCurrency *CurrencyCode    `json:"defaultCurrency"`
	ShowJapanTime   *bool            `json:"showJapanTime"`

	HowToBuyStockSteps *[]HowToStep    `json:"howToBuyStockSteps"`
	HowToBidSteps      *[]HowToStep    `json:"howToBidSteps"`
	CompanyProfile     *CompanyProfile `json:"companyProfile"`
	BankDetails        *BankDetails    `json:"bankDetails"`
	FAQItems           *[]FAQItem      `json:"faqItems"`
	AboutUs            *AboutUs        `json:"aboutUs"`
	ContactPage        *ContactPage    `json:"contactPage"`
}
