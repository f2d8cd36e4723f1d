package domain

import "github.com/shopspring/decimal"

// Inquiry is a bid, vehicle request or contact message forwarded to the ERP's bids endpoint.
type Inquiry struct {
	TenantID        string           `json:"tenantId"`
	Subdomain       string           `json:"subdomain"`
	VehicleID       string           `json:"vehicleId,omitempty"`
	CustomerEmail   string           `json:"customerEmail"`
	CustomerName    string           `json:"customerName"`
	CustomerPhone   string           `json:"customerPhone,omitempty"`
	CustomerCountry string           `json:"customerCountry,omitempty"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	Message         string           `json:"message,omitempty"`
	Make            string           `json:"make,omitempty"`
	Model           string           `json:"model,omitempty"`
}

// QuoteRequest asks the store for a CIF quote to a chosen port.
type QuoteRequest struct {
	Subdomain string `json:"subdomain"`
	VehicleID string `json:"vehicleId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	CountryID string `json:"countryId"`
	PortID    string `json:"portId"`
}

// SubmissionReceipt is whatever identifier the ERP hands back for a submitted form.
type SubmissionReceipt struct {
	ID      string `json:"id,omitempty"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}
