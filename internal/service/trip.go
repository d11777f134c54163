// Package service contains the business logic for the DriveTrack API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mkoren/drivetrack/internal/domain"
	"github.com/mkoren/drivetrack/internal/geo"
	"github.com/mkoren/drivetrack/internal/repo"
)

// TripService owns the trip lifecycle: Start opens an active trip,
// RecordLocation appends GPS breadcrumbs, and Finish reconstructs the driven
// distance from the recorded points and closes the trip.
//
// It holds the vehicle repo as well because starting a trip verifies the
// vehicle exists — orphaned trips are rejected rather than stored.
type TripService struct {
	trips    repo.TripRepo
	vehicles repo.VehicleRepo
	points   repo.LocationRepo
}

// NewTripService constructs a TripService backed by the provided repos.
func NewTripService(trips repo.TripRepo, vehicles repo.VehicleRepo, points repo.LocationRepo) *TripService {
	return &TripService{trips: trips, vehicles: vehicles, points: points}
}

// Start opens a new active trip for the given vehicle.
// The trip begins now (UTC) with zero distance and no end time.
// Returns domain.ErrNotFound if the vehicle does not exist.
func (s *TripService) Start(ctx context.Context, vehicleID int64) (domain.Trip, error) {
	if _, err := s.vehicles.GetByID(ctx, vehicleID); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Start: %w", err)
	}

	trip := domain.Trip{
		VehicleID: vehicleID,
		StartTime: time.Now().UTC(),
		Distance:  0,
		Status:    domain.TripActive,
	}

	created, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Start: %w", err)
	}
	return created, nil
}

// RecordLocation appends one GPS sample to the trip, stamped now (UTC).
// Returns domain.ErrNotFound if the trip does not exist.
//
// There is no deduplication, rate limiting, or ordering enforcement here:
// pings may arrive out of capture order and Finish sorts by timestamp before
// accumulating. Points recorded after a trip has finished are stored but
// only count if Finish runs again.
func (s *TripService) RecordLocation(ctx context.Context, tripID int64, lat, lng float64) (domain.LocationPoint, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return domain.LocationPoint{}, fmt.Errorf("service.TripService.RecordLocation: %w", err)
	}

	point := domain.LocationPoint{
		TripID:     tripID,
		Lat:        lat,
		Lng:        lng,
		RecordedAt: time.Now().UTC(),
	}

	created, err := s.points.Create(ctx, point)
	if err != nil {
		return domain.LocationPoint{}, fmt.Errorf("service.TripService.RecordLocation: %w", err)
	}
	return created, nil
}

// Finish closes the trip: it reads every point recorded so far, sorts them
// ascending by capture timestamp, sums the haversine distance along the
// path, and persists end time, distance, and the finished status.
//
// Zero or one recorded points finish the trip with distance 0 — that is a
// valid terminal state, not an error. A second Finish recomputes and
// overwrites; treating Finish as single-shot is the caller's concern.
// Returns domain.ErrNotFound (with no store mutation) for an unknown trip.
func (s *TripService) Finish(ctx context.Context, tripID int64) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Finish: %w", err)
	}

	points, err := s.points.ListByTripID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Finish: %w", err)
	}

	// Capture order is authoritative, not insertion order. The stable sort
	// keeps equal timestamps in insertion order so the result is deterministic.
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].RecordedAt.Before(points[j].RecordedAt)
	})

	path := make([]geo.Point, len(points))
	for i, p := range points {
		path[i] = geo.Point{Lat: p.Lat, Lng: p.Lng}
	}

	end := time.Now().UTC()
	trip.EndTime = &end
	trip.Distance = geo.PathDistance(path)
	trip.Status = domain.TripFinished

	updated, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Finish: %w", err)
	}
	return updated, nil
}

// ListByUser returns the finished trips of the user's vehicles, most recent
// first. Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListByUser(ctx context.Context, userID int64) ([]domain.TripWithVehicle, error) {
	trips, err := s.trips.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListByUser: %w", err)
	}
	if trips == nil {
		return []domain.TripWithVehicle{}, nil
	}
	return trips, nil
}
