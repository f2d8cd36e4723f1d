package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/vehicle_export_storefront/internal/apperrors"
	"github.com/SscSPs/vehicle_export_storefront/internal/core/domain"
	portsrepo "github.com/SscSPs/vehicle_export_storefront/internal/core/ports/repositories"
)

// featuredLimit matches the home page grid.
const featuredLimit = 8

// maxFavoriteLookups caps the vehicles resolved for one watchlist page.
const maxFavoriteLookups = 50

type catalogService struct {
	BaseService
	catalogRepo    portsrepo.CatalogRepositoryFacade
	submissionRepo portsrepo.SubmissionRepository
}

// NewCatalogService creates a catalog service over the ERP repositories.
func NewCatalogService(catalogRepo portsrepo.CatalogRepositoryFacade, submissionRepo portsrepo.SubmissionRepository) *catalogService {
	return &catalogService{
		catalogRepo:    catalogRepo,
		submissionRepo: submissionRepo,
	}
}

func (s *catalogService) ListVehicles(ctx context.Context, slug string, filter domain.VehicleFilter) (*domain.VehicleList, error) {
	if filter.MinYear != nil && filter.MaxYear != nil && *filter.MinYear > *filter.MaxYear {
		return nil, fmt.Errorf("%w: minYear must not exceed maxYear", apperrors.ErrValidation)
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		return nil, fmt.Errorf("%w: minPrice must not exceed maxPrice", apperrors.ErrValidation)
	}

	list, err := s.catalogRepo.GetVehicles(ctx, slug, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	if list.Data == nil {
		list.Data = []domain.Vehicle{}
	}
	if list.Meta.Limit == 0 && filter.Limit != nil {
		list.Meta.Limit = *filter.Limit
	}
	if list.Meta.Offset == 0 && filter.Offset != nil {
		list.Meta.Offset = *filter.Offset
	}
	if list.Meta.Total < list.Meta.Offset+len(list.Data) {
		list.Meta.Total = list.Meta.Offset + len(list.Data)
	}
	return list, nil
}

func (s *catalogService) GetVehicle(ctx context.Context, slug, vehicleID string) (*domain.VehicleDetail, error) {
	vehicleID = strings.TrimSpace(vehicleID)
	if vehicleID == "" {
		return nil, fmt.Errorf("%w: vehicle id is required", apperrors.ErrValidation)
	}
	vehicle, err := s.catalogRepo.GetVehicle(ctx, slug, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle %s: %w", vehicleID, err)
	}
	return vehicle, nil
}

func (s *catalogService) FeaturedVehicles(ctx context.Context, slug string) []domain.Vehicle {
	limit := featuredLimit
	list, err := s.catalogRepo.GetVehicles(ctx, slug, domain.VehicleFilter{Limit: &limit})
	if err != nil {
		s.LogWarn(ctx, err, "Failed to fetch featured vehicles", slog.String("store_slug", slug))
		return []domain.Vehicle{}
	}
	if list.Data == nil {
		return []domain.Vehicle{}
	}
	return list.Data
}

func (s *catalogService) GetVehiclesByID(ctx context.Context, slug string, ids []string) ([]domain.Vehicle, []string, error) {
	if len(ids) > maxFavoriteLookups {
		ids = ids[:maxFavoriteLookups]
	}
	vehicles := make([]domain.Vehicle, 0, len(ids))
	var missing []string
	for _, id := range ids {
		detail, err := s.catalogRepo.GetVehicle(ctx, slug, id)
		if errors.Is(err, apperrors.ErrNotFound) {
			missing = append(missing, id)
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to resolve saved vehicle %s: %w", id, err)
		}
		vehicles = append(vehicles, detail.Vehicle)
	}
	return vehicles, missing, nil
}

func (s *catalogService) GetShippingOptions(ctx context.Context, slug, vehicleID, countryID, portID string) (*domain.ShippingOptions, error) {
	countries, err := s.catalogRepo.GetShippingCountries(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to list shipping countries: %w", err)
	}
	opts := &domain.ShippingOptions{Countries: countries, CountryID: countryID}
	if countryID == "" {
		return opts, nil
	}

	ports, err := s.catalogRepo.GetShippingPorts(ctx, slug, countryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shipping ports for country %s: %w", countryID, err)
	}
	opts.Ports = ports
	opts.PortID = selectPort(ports, portID)
	if opts.PortID == "" {
		return opts, nil
	}

	quote, err := s.catalogRepo.CalculateShipping(ctx, slug, vehicleID, opts.PortID)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate shipping to port %s: %w", opts.PortID, err)
	}
	opts.Quote = quote
	return opts, nil
}

// selectPort keeps a requested port that belongs to the list, else picks the country's
// default port, else the first one.
func selectPort(ports []domain.ShippingPort, requested string) string {
	if len(ports) == 0 {
		return ""
	}
	for _, p := range ports {
		if requested != "" && p.ID == requested {
			return p.ID
		}
	}
	for _, p := range ports {
		if p.IsDefault {
			return p.ID
		}
	}
	return ports[0].ID
}

func (s *catalogService) SubmitInquiry(ctx context.Context, inquiry domain.Inquiry) (*domain.SubmissionReceipt, error) {
	if inquiry.Amount != nil && !inquiry.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: bid amount must be positive", apperrors.ErrValidation)
	}
	receipt, err := s.submissionRepo.SubmitInquiry(ctx, inquiry)
	if err != nil {
		return nil, fmt.Errorf("failed to submit inquiry: %w", err)
	}
	s.LogInfo(ctx, "Inquiry submitted",
		slog.String("store_slug", inquiry.Subdomain),
		slog.String("vehicle_id", inquiry.VehicleID))
	return receipt, nil
}

func (s *catalogService) RequestQuote(ctx context.Context, req domain.QuoteRequest) (*domain.SubmissionReceipt, error) {
	receipt, err := s.submissionRepo.SubmitQuote(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to submit quote request: %w", err)
	}
	s.LogInfo(ctx, "Quote requested",
		slog.String("store_slug", req.Subdomain),
		slog.String("vehicle_id", req.VehicleID),
		slog.String("port_id", req.PortID))
	return receipt, nil
}
