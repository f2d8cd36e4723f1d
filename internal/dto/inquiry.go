package dto

import (
	"fmt"
	"strings"

	"github.com/SscSPs/vehicle_export_storefront/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InquiryRequest defines the structure for a bid or contact message about a vehicle.
type InquiryRequest struct {
	VehicleID string           `json:"vehicleId"`
	Name      string           `json:"name" binding:"required,max=200"`
	Email     string           `json:"email" binding:"required,email"`
	Phone     string           `json:"phone" binding:"omitempty,max=50"`
	Country   string           `json:"country" binding:"omitempty,max=100"`
	Amount    *decimal.Decimal `json:"amount"`
	Message   string           `json:"message" binding:"omitempty,max=5000"`
}

// ToInquiry converts the request to the ERP inquiry for the given store.
func (r InquiryRequest) ToInquiry(slug string) domain.Inquiry {
	return domain.Inquiry{
		TenantID:        slug,
		Subdomain:       slug,
		VehicleID:       strings.TrimSpace(r.VehicleID),
		CustomerEmail:   strings.TrimSpace(r.Email),
		CustomerName:    strings.TrimSpace(r.Name),
		CustomerPhone:   strings.TrimSpace(r.Phone),
		CustomerCountry: strings.TrimSpace(r.Country),
		Amount:          r.Amount,
		Message:         r.Message,
	}
}

// VehicleRequestRequest asks the store to source a vehicle that is not in stock.
type VehicleRequestRequest struct {
	Name         string `json:"name" binding:"required,max=200"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone" binding:"omitempty,max=50"`
	Make         string `json:"make" binding:"omitempty,max=100"`
	Model        string `json:"model" binding:"omitempty,max=100"`
	YearFrom     string `json:"yearFrom" binding:"omitempty,numeric,len=4"`
	YearTo       string `json:"yearTo" binding:"omitempty,numeric,len=4"`
	FuelType     string `json:"fuelType" binding:"omitempty,max=50"`
	Transmission string `json:"transmission" binding:"omitempty,max=50"`
	Message      string `json:"message" binding:"omitempty,max=5000"`
}

// ToInquiry folds the sourcing criteria into the inquiry message.
func (r VehicleRequestRequest) ToInquiry(slug string) domain.Inquiry {
	var details []string
	if r.YearFrom != "" || r.YearTo != "" {
		details = append(details, fmt.Sprintf("Year: %s-%s", r.YearFrom, r.YearTo))
	}
	if r.FuelType != "" {
		details = append(details, "Fuel: "+r.FuelType)
	}
	if r.Transmission != "" {
		details = append(details, "Transmission: "+r.Transmission)
	}
	message := strings.TrimSpace(r.Message)
	if len(details) > 0 {
		header := "Vehicle request (" + strings.Join(details, ", ") + ")"
		if message == "" {
			message = header
		} else {
			message = header + "\n\n" + message
		}
	}
	return domain.Inquiry{
		TenantID:      slug,
		Subdomain:     slug,
		CustomerEmail: strings.TrimSpace(r.Email),
		CustomerName:  strings.TrimSpace(r.Name),
		CustomerPhone: strings.TrimSpace(r.Phone),
		Make:          strings.TrimSpace(r.Make),
		Model:         strings.TrimSpace(r.Model),
		Message:       message,
	}
}

// QuoteRequest defines the structure for requesting a CIF quote to a port.
type QuoteRequest struct {
	Name      string `json:"name" binding:"required,max=200"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"omitempty,max=50"`
	Address   string `json:"address" binding:"omitempty,max=500"`
	CountryID string `json:"countryId" binding:"required"`
	PortID    string `json:"portId" binding:"required"`
}

// ToQuoteRequest converts the request to the ERP quote for a vehicle of the given store.
func (r QuoteRequest) ToQuoteRequest(slug, vehicleID string) domain.QuoteRequest {
	return domain.QuoteRequest{
		Subdomain: slug,
		VehicleID: vehicleID,
		Name:      strings.TrimSpace(r.Name),
		Email:     strings.TrimSpace(r.Email),
		Phone:     strings.TrimSpace(r.Phone),
		Address:   strings.TrimSpace(r.Address),
		CountryID: r.CountryID,
		PortID:    r.PortID,
	}
}

// SubmissionResponse acknowledges a form forwarded to the ERP.
type SubmissionResponse struct {
	ID      string `json:"id,omitempty"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message"`
}

// ToSubmissionResponse converts the ERP receipt, falling back to message when the ERP sent none.
func ToSubmissionResponse(receipt *domain.SubmissionReceipt, message string) SubmissionResponse {
	resp := SubmissionResponse{Message: message}
	if receipt == nil {
		return resp
	}
	resp.ID = receipt.ID
	resp.Status = receipt.Status
	if receipt.Message != "" {
		resp.Message = receipt.Message
	}
	return resp
}

