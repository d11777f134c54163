package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mkoren/drivetrack/internal/domain"
	"github.com/mkoren/drivetrack/internal/repo"
)

// VehicleService implements business logic for Vehicle operations.
type VehicleService struct {
	vehicles repo.VehicleRepo
}

// NewVehicleService constructs a VehicleService backed by the provided repo.
func NewVehicleService(vehicles repo.VehicleRepo) *VehicleService {
	return &VehicleService{vehicles: vehicles}
}

// Upsert creates or updates a vehicle keyed by VIN. This is the endpoint the
// registry importer batches into, so an existing row is refreshed in place:
// registry fields are overwritten, but an existing user link is preserved
// when the incoming record carries none.
// Returns domain.ErrValidation for a missing VIN, brand, or model.
func (s *VehicleService) Upsert(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error) {
	if err := validateVehicle(vehicle); err != nil {
		return domain.Vehicle{}, err
	}
	vehicle.VIN = strings.ToUpper(strings.TrimSpace(vehicle.VIN))

	existing, err := s.vehicles.GetByVIN(ctx, vehicle.VIN)
	switch {
	case err == nil:
		vehicle.ID = existing.ID
		if vehicle.UserID == nil {
			vehicle.UserID = existing.UserID
		}
		updated, err := s.vehicles.Update(ctx, vehicle)
		if err != nil {
			return domain.Vehicle{}, fmt.Errorf("service.VehicleService.Upsert: %w", err)
		}
		return updated, nil

	case errors.Is(err, domain.ErrNotFound):
		created, err := s.vehicles.Create(ctx, vehicle)
		if err != nil {
			return domain.Vehicle{}, fmt.Errorf("service.VehicleService.Upsert: %w", err)
		}
		return created, nil

	default:
		return domain.Vehicle{}, fmt.Errorf("service.VehicleService.Upsert: %w", err)
	}
}

// ListPaged returns one page of vehicles plus the total row count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *VehicleService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Vehicle, int64, error) {
	vehicles, total, err := s.vehicles.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.VehicleService.ListPaged: %w", err)
	}
	if vehicles == nil {
		vehicles = []domain.Vehicle{}
	}
	return vehicles, total, nil
}

// ListByUser returns all vehicles linked to the given user.
// Always returns a non-nil slice so callers can safely range over it.
func (s *VehicleService) ListByUser(ctx context.Context, userID int64) ([]domain.Vehicle, error) {
	vehicles, err := s.vehicles.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.VehicleService.ListByUser: %w", err)
	}
	if vehicles == nil {
		return []domain.Vehicle{}, nil
	}
	return vehicles, nil
}

// validateVehicle enforces the minimal identity rules for a registry record.
func validateVehicle(v domain.Vehicle) error {
	if strings.TrimSpace(v.VIN) == "" {
		return fmt.Errorf("%w: vin is required", domain.ErrValidation)
	}
	if strings.TrimSpace(v.Brand) == "" {
		return fmt.Errorf("%w: brand is required", domain.ErrValidation)
	}
	if strings.TrimSpace(v.Model) == "" {
		return fmt.Errorf("%w: model is required", domain.ErrValidation)
	}
	return nil
}
