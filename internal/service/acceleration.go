package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mkoren/drivetrack/internal/domain"
	"github.com/mkoren/drivetrack/internal/repo"
)

// AccelerationService implements business logic for acceleration runs.
// The distance of a run is measured on-device (accelerometer integration),
// so Finish takes a client-supplied end time and distance rather than
// reconstructing anything server-side.
type AccelerationService struct {
	accelerations repo.AccelerationRepo
	vehicles      repo.VehicleRepo
}

// NewAccelerationService constructs an AccelerationService backed by the provided repos.
func NewAccelerationService(accelerations repo.AccelerationRepo, vehicles repo.VehicleRepo) *AccelerationService {
	return &AccelerationService{accelerations: accelerations, vehicles: vehicles}
}

// Start opens a new acceleration run for the given vehicle with zero distance.
// Returns domain.ErrNotFound if the vehicle does not exist.
func (s *AccelerationService) Start(ctx context.Context, vehicleID int64) (domain.Acceleration, error) {
	if _, err := s.vehicles.GetByID(ctx, vehicleID); err != nil {
		return domain.Acceleration{}, fmt.Errorf("service.AccelerationService.Start: %w", err)
	}

	acc := domain.Acceleration{
		VehicleID: vehicleID,
		StartTime: time.Now().UTC(),
		Distance:  0,
	}

	created, err := s.accelerations.Create(ctx, acc)
	if err != nil {
		return domain.Acceleration{}, fmt.Errorf("service.AccelerationService.Start: %w", err)
	}
	return created, nil
}

// Finish records the measured result of a run.
// Returns domain.ErrValidation when distance is negative or endTime precedes
// the recorded start, and domain.ErrNotFound for an unknown run.
func (s *AccelerationService) Finish(ctx context.Context, id int64, endTime time.Time, distance float64) (domain.Acceleration, error) {
	if distance < 0 {
		return domain.Acceleration{}, fmt.Errorf("%w: distance must not be negative", domain.ErrValidation)
	}

	acc, err := s.accelerations.GetByID(ctx, id)
	if err != nil {
		return domain.Acceleration{}, fmt.Errorf("service.AccelerationService.Finish: %w", err)
	}
	if endTime.Before(acc.StartTime) {
		return domain.Acceleration{}, fmt.Errorf("%w: end time must not be before start time", domain.ErrValidation)
	}

	end := endTime.UTC()
	acc.EndTime = &end
	acc.Distance = distance

	updated, err := s.accelerations.Update(ctx, acc)
	if err != nil {
		return domain.Acceleration{}, fmt.Errorf("service.AccelerationService.Finish: %w", err)
	}
	return updated, nil
}

// ListByUser returns the finished runs of the user's vehicles, most recent
// first. Always returns a non-nil slice so callers can safely range over it.
func (s *AccelerationService) ListByUser(ctx context.Context, userID int64) ([]domain.AccelerationWithVehicle, error) {
	runs, err := s.accelerations.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.AccelerationService.ListByUser: %w", err)
	}
	if runs == nil {
		return []domain.AccelerationWithVehicle{}, nil
	}
	return runs, nil
}
