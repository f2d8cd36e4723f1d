package domain

import "github.com/shopspring/decimal"

// Vehicle is a listing row as returned by the ERP.
type Vehicle struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	StockNumber  string          `json:"stockNumber"`
	Price        decimal.Decimal `json:"price"`
	Currency     CurrencyCode    `json:"currency"`
	Mileage      int             `json:"mileage"`
	Fuel         string          `json:"fuel"`
	Transmission string          `json:"transmission"`
	MainPhoto    *string         `json:"mainPhoto"`
	Status       string          `json:"status"`
}

// VehicleDetail extends a listing with specification and FOB/CIF pricing.
type VehicleDetail struct {
	Vehicle
	Make          string           `json:"make"`
	Model         string           `json:"model"`
	Year          int              `json:"year"`
	Month         int              `json:"month,omitempty"`
	ChassisNumber string           `json:"chassisNumber"`
	EngineCC      int              `json:"engineCc"`
	FuelType      string           `json:"fuelType"`
	Color         string           `json:"color"`
	Steering      string           `json:"steering,omitempty"`
	Seats         int              `json:"seats,omitempty"`
	Doors         int              `json:"doors,omitempty"`
	DriveType     string           `json:"driveType,omitempty"`
	BodyType      string           `json:"bodyType,omitempty"`
	FOBPrice      decimal.Decimal  `json:"fobPrice"`
	CIFPrice      *decimal.Decimal `json:"cifPrice,omitempty"`
	Location      string           `json:"location,omitempty"`
	AuctionGrade  string           `json:"auctionGrade,omitempty"`
	Photos        []VehiclePhoto   `json:"photos"`
	Features      []string         `json:"features"`
	Description   string           `json:"description,omitempty"`
}

type VehiclePhoto struct {
	URL string `json:"url"`
	Tag string `json:"tag,omitempty"`
}

type ListMeta struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type VehicleList struct {
	Data []Vehicle `json:"data"`
	Meta ListMeta  `json:"meta"`
}

// VehicleFilter mirrors the query the ERP accepts for listings. Nil fields are not sent.
type VehicleFilter struct {
	Make         *string
	Model        *string
	MinYear      *int
	MaxYear      *int
	MinPrice     *int
	MaxPrice     *int
	FuelType     *string
	Transmission *string
	BodyType     *string
	Limit        *int
	Offset       *int
	Sort         *string
	Clearance    *bool
}

type ShippingCountry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type ShippingPort struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ShippingMethod string `json:"shippingMethod"`
	IsDefault      bool   `json:"isDefault"`
}

// ShippingQuote is the CIF breakdown for one vehicle to one port. Nil parts are "ask for price".
type ShippingQuote struct {
	FOB         decimal.Decimal  `json:"fob"`
	Shipping    *decimal.Decimal `json:"shipping"`
	Insurance   *decimal.Decimal `json:"insurance"`
	Inspection  *decimal.Decimal `json:"inspection"`
	CIF         *decimal.Decimal `json:"cif"`
	AskForPrice bool             `json:"askForPrice"`
}

// ShippingOptions is the state of the shipping calculator: the destinations offered,
// the selection, and the quote for it when a port is selected.
type ShippingOptions struct {
	Countries []ShippingCountry
	Ports     []ShippingPort
	CountryID string
	PortID    string
	Quote     *ShippingQuote
}
