package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mkoren/drivetrack/internal/domain"
)

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Trip, error)

	// Update overwrites the mutable fields of an existing trip (end_time,
	// distance, status) and returns the updated record.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// ListByUser returns the finished trips (distance <> 0) of all vehicles
	// owned by the given user, most recent first, with a vehicle summary
	// joined onto each row.
	ListByUser(ctx context.Context, userID int64) ([]domain.TripWithVehicle, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, vehicle_id, start_time, end_time, distance_km, status, created_at, updated_at`

func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (vehicle_id, start_time, distance_km, status)
		VALUES (@vehicle_id, @start_time, @distance_km, @status)
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"vehicle_id":  trip.VehicleID,
		"start_time":  trip.StartTime,
		"distance_km": trip.Distance,
		"status":      trip.Status,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", mapWriteErr(err))
	}
	return result, nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, id int64) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", mapWriteErr(err))
	}
	return result, nil
}

func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET end_time    = @end_time,
		    distance_km = @distance_km,
		    status      = @status,
		    updated_at  = now()
		WHERE id = @id
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"id":          trip.ID,
		"end_time":    trip.EndTime, // nil becomes NULL
		"distance_km": trip.Distance,
		"status":      trip.Status,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", mapWriteErr(err))
	}
	return result, nil
}

func (r *pgTripRepo) ListByUser(ctx context.Context, userID int64) ([]domain.TripWithVehicle, error) {
	const q = `
		SELECT t.id, t.vehicle_id, t.start_time, t.end_time, t.distance_km, t.status,
		       t.created_at, t.updated_at,
		       v.id, v.vin, v.brand, v.model, v.fuel_type, v.body_type
		FROM trips t
		JOIN vehicles v ON v.id = t.vehicle_id
		WHERE v.user_id = @user_id
		  AND t.distance_km <> 0
		ORDER BY t.start_time DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByUser: %w", err)
	}
	defer rows.Close()

	var trips []domain.TripWithVehicle
	for rows.Next() {
		var tw domain.TripWithVehicle
		err := rows.Scan(
			&tw.ID, &tw.VehicleID, &tw.StartTime, &tw.EndTime, &tw.Distance, &tw.Status,
			&tw.CreatedAt, &tw.UpdatedAt,
			&tw.Vehicle.ID, &tw.Vehicle.VIN, &tw.Vehicle.Brand, &tw.Vehicle.Model,
			&tw.Vehicle.FuelType, &tw.Vehicle.BodyType,
		)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.ListByUser: scan: %w", err)
		}
		trips = append(trips, tw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByUser: rows: %w", err)
	}

	return trips, nil
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var t domain.Trip
	err := s.Scan(&t.ID, &t.VehicleID, &t.StartTime, &t.EndTime, &t.Distance, &t.Status,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.Trip{}, err
	}
	return t, nil
}
