package dto

import (
	"strings"

	"github.com/SscSPs/vehicle_export_storefront/internal/core/domain"
)

// DefaultPageSize is the listing page size when the caller does not ask for one.
const DefaultPageSize = 12

// FeaturedVehicleCount is how many vehicles the home page shows.
const FeaturedVehicleCount = 8

// VehicleListQuery defines the query parameters accepted by the vehicle listing.
type VehicleListQuery struct {
	Make         *string `form:"make"`
	Model        *string `form:"model"`
	MinYear      *int    `form:"minYear" binding:"omitempty,min=1900"`
	MaxYear      *int    `form:"maxYear" binding:"omitempty,min=1900"`
	MinPrice     *int    `form:"minPrice" binding:"omitempty,min=0"`
	MaxPrice     *int    `form:"maxPrice" binding:"omitempty,min=0"`
	FuelType     *string `form:"fuelType"`
	Transmission *string `form:"transmission"`
	BodyType     *string `form:"bodyType"`
	Limit        *int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset       *int    `form:"offset" binding:"omitempty,min=0"`
	Sort         *string `form:"sort"`
	Clearance    *bool   `form:"clearance"`
	PageToken    string  `form:"pageToken"`
}

// ToFilter converts the query to the ERP filter. Blank strings count as unset.
func (q VehicleListQuery) ToFilter() domain.VehicleFilter {
	limit := DefaultPageSize
	if q.Limit != nil {
		limit = *q.Limit
	}
	return domain.VehicleFilter{
		Make:         blankToNil(q.Make),
		Model:        blankToNil(q.Model),
		MinYear:      q.MinYear,
		MaxYear:      q.MaxYear,
		MinPrice:     q.MinPrice,
		MaxPrice:     q.MaxPrice,
		FuelType:     blankToNil(q.FuelType),
		Transmission: blankToNil(q.Transmission),
		BodyType:     blankToNil(q.BodyType),
		Limit:        &limit,
		Offset:       q.Offset,
		Sort:         blankToNil(q.Sort),
		Clearance:    q.Clearance,
	}
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// VehicleCardResponse is a listing row priced in the visitor's currency.
type VehicleCardResponse struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	StockNumber  string  `json:"stockNumber"`
	Price        *Price  `json:"price"`
	Mileage      int     `json:"mileage"`
	Fuel         string  `json:"fuel"`
	Transmission string  `json:"transmission"`
	MainPhoto    *string `json:"mainPhoto"`
	Status       string  `json:"status"`
	IsFavorite   bool    `json:"isFavorite"`
}

// VehicleListResponse is one page of the vehicle listing.
type VehicleListResponse struct {
	Vehicles      []VehicleCardResponse `json:"vehicles"`
	Total         int                   `json:"total"`
	Limit         int                   `json:"limit"`
	Offset        int                   `json:"offset"`
	NextPageToken string                `json:"nextPageToken,omitempty"`
}

// ToVehicleCardResponse converts a domain.Vehicle to VehicleCardResponse DTO
func ToVehicleCardResponse(v domain.Vehicle, price PriceFunc, favorite bool) VehicleCardResponse {
	return VehicleCardResponse{
		ID:           v.ID,
		Title:        v.Title,
		StockNumber:  v.StockNumber,
		Price:        priceOrAsk(price, v.Price, v.Currency),
		Mileage:      v.Mileage,
		Fuel:         v.Fuel,
		Transmission: v.Transmission,
		MainPhoto:    v.MainPhoto,
		Status:       v.Status,
		IsFavorite:   favorite,
	}
}

// ToListVehicleCardResponse converts a slice of domain.Vehicle, flagging the visitor's favorites.
func ToListVehicleCardResponse(vehicles []domain.Vehicle, price PriceFunc, isFavorite func(id string) bool) []VehicleCardResponse {
	responses := make([]VehicleCardResponse, len(vehicles))
	for i, v := range vehicles {
		responses[i] = ToVehicleCardResponse(v, price, isFavorite(v.ID))
	}
	return responses
}

// VehicleDetailResponse is the vehicle page: the ERP record plus display prices.
type VehicleDetailResponse struct {
	Vehicle    domain.VehicleDetail `json:"vehicle"`
	FOB        *Price               `json:"fob"`
	CIF        *Price               `json:"cif"`
	IsFavorite bool                 `json:"isFavorite"`
}

// ToVehicleDetailResponse converts a domain.VehicleDetail to VehicleDetailResponse DTO
func ToVehicleDetailResponse(v domain.VehicleDetail, price PriceFunc, favorite bool) VehicleDetailResponse {
	if v.Photos == nil {
		v.Photos = []domain.VehiclePhoto{}
	}
	if v.Features == nil {
		v.Features = []string{}
	}
	fob := v.FOBPrice
	if !fob.IsPositive() {
		fob = v.Price
	}
	return VehicleDetailResponse{
		Vehicle:    v,
		FOB:        priceOrAsk(price, fob, v.Currency),
		CIF:        optionalPrice(price, v.CIFPrice, v.Currency),
		IsFavorite: favorite,
	}
}

// ShippingQuoteResponse is a CIF breakdown in the visitor's currency. Nil parts are "Ask for Price".
type ShippingQuoteResponse struct {
	FOB         *Price `json:"fob"`
	Shipping    *Price `json:"shipping"`
	Insurance   *Price `json:"insurance"`
	Inspection  *Price `json:"inspection"`
	CIF         *Price `json:"cif"`
	AskForPrice bool   `json:"askForPrice"`
}

// ShippingOptionsResponse drives the shipping calculator on the vehicle page.
type ShippingOptionsResponse struct {
	Countries         []domain.ShippingCountry `json:"countries"`
	Ports             []domain.ShippingPort    `json:"ports"`
	SelectedCountryID string                   `json:"selectedCountryId,omitempty"`
	SelectedPortID    string                   `json:"selectedPortId,omitempty"`
	Quote             *ShippingQuoteResponse   `json:"quote,omitempty"`
}

// ToShippingOptionsResponse converts domain.ShippingOptions to ShippingOptionsResponse DTO.
// Shipping quotes are priced in USD by the ERP.
func ToShippingOptionsResponse(opts domain.ShippingOptions, price PriceFunc) ShippingOptionsResponse {
	resp := ShippingOptionsResponse{
		Countries:         opts.Countries,
		Ports:             opts.Ports,
		SelectedCountryID: opts.CountryID,
		SelectedPortID:    opts.PortID,
	}
	if resp.Countries == nil {
		resp.Countries = []domain.ShippingCountry{}
	}
	if resp.Ports == nil {
		resp.Ports = []domain.ShippingPort{}
	}
	if q := opts.Quote; q != nil {
		resp.Quote = &ShippingQuoteResponse{
			FOB:         priceOrAsk(price, q.FOB, domain.USD),
			Shipping:    optionalPrice(price, q.Shipping, domain.USD),
			Insurance:   optionalPrice(price, q.Insurance, domain.USD),
			Inspection:  optionalPrice(price, q.Inspection, domain.USD),
			CIF:         optionalPrice(price, q.CIF, domain.USD),
			AskForPrice: q.AskForPrice,
		}
	}
	return resp
}
