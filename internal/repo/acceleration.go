package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mkoren/drivetrack/internal/domain"
)

// AccelerationRepo defines the persistence operations for Acceleration runs.
type AccelerationRepo interface {
	// Create inserts a new acceleration run and returns the persisted record.
	Create(ctx context.Context, acc domain.Acceleration) (domain.Acceleration, error)

	// GetByID retrieves a single run by its primary key.
	// Returns domain.ErrNotFound if no run with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Acceleration, error)

	// Update overwrites end_time and distance of an existing run and returns
	// the updated record. Returns domain.ErrNotFound if no run with that ID exists.
	Update(ctx context.Context, acc domain.Acceleration) (domain.Acceleration, error)

	// ListByUser returns the finished runs (distance <> 0) of all vehicles
	// owned by the given user, most recent first, with a vehicle summary
	// joined onto each row.
	ListByUser(ctx context.Context, userID int64) ([]domain.AccelerationWithVehicle, error)
}

// pgAccelerationRepo is the Postgres implementation of AccelerationRepo.
type pgAccelerationRepo struct {
	db db
}

// NewAccelerationRepo constructs an AccelerationRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewAccelerationRepo(db db) AccelerationRepo {
	return &pgAccelerationRepo{db: db}
}

const accelerationColumns = `id, vehicle_id, start_time, end_time, distance_km, created_at, updated_at`

func (r *pgAccelerationRepo) Create(ctx context.Context, acc domain.Acceleration) (domain.Acceleration, error) {
	const q = `
		INSERT INTO accelerations (vehicle_id, start_time, distance_km)
		VALUES (@vehicle_id, @start_time, @distance_km)
		RETURNING ` + accelerationColumns

	args := pgx.NamedArgs{
		"vehicle_id":  acc.VehicleID,
		"start_time":  acc.StartTime,
		"distance_km": acc.Distance,
	}

	result, err := scanAcceleration(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Acceleration{}, fmt.Errorf("repo.AccelerationRepo.Create: %w", mapWriteErr(err))
	}
	return result, nil
}

func (r *pgAccelerationRepo) GetByID(ctx context.Context, id int64) (domain.Acceleration, error) {
	const q = `SELECT ` + accelerationColumns + ` FROM accelerations WHERE id = @id`

	result, err := scanAcceleration(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Acceleration{}, fmt.Errorf("repo.AccelerationRepo.GetByID: %w", mapWriteErr(err))
	}
	return result, nil
}

func (r *pgAccelerationRepo) Update(ctx context.Context, acc domain.Acceleration) (domain.Acceleration, error) {
	const q = `
		UPDATE accelerations
		SET end_time    = @end_time,
		    distance_km = @distance_km,
		    updated_at  = now()
		WHERE id = @id
		RETURNING ` + accelerationColumns

	args := pgx.NamedArgs{
		"id":          acc.ID,
		"end_time":    acc.EndTime,
		"distance_km": acc.Distance,
	}

	result, err := scanAcceleration(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Acceleration{}, fmt.Errorf("repo.AccelerationRepo.Update: %w", mapWriteErr(err))
	}
	return result, nil
}

func (r *pgAccelerationRepo) ListByUser(ctx context.Context, userID int64) ([]domain.AccelerationWithVehicle, error) {
	const q = `
		SELECT a.id, a.vehicle_id, a.start_time, a.end_time, a.distance_km,
		       a.created_at, a.updated_at,
		       v.id, v.vin, v.brand, v.model, v.fuel_type, v.body_type
		FROM accelerations a
		JOIN vehicles v ON v.id = a.vehicle_id
		WHERE v.user_id = @user_id
		  AND a.distance_km <> 0
		ORDER BY a.start_time DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.AccelerationRepo.ListByUser: %w", err)
	}
	defer rows.Close()

	var runs []domain.AccelerationWithVehicle
	for rows.Next() {
		var aw domain.AccelerationWithVehicle
		err := rows.Scan(
			&aw.ID, &aw.VehicleID, &aw.StartTime, &aw.EndTime, &aw.Distance,
			&aw.CreatedAt, &aw.UpdatedAt,
			&aw.Vehicle.ID, &aw.Vehicle.VIN, &aw.Vehicle.Brand, &aw.Vehicle.Model,
			&aw.Vehicle.FuelType, &aw.Vehicle.BodyType,
		)
		if err != nil {
			return nil, fmt.Errorf("repo.AccelerationRepo.ListByUser: scan: %w", err)
		}
		runs = append(runs, aw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.AccelerationRepo.ListByUser: rows: %w", err)
	}

	return runs, nil
}

// scanAcceleration maps a single database row into a domain.Acceleration.
func scanAcceleration(s scanner) (domain.Acceleration, error) {
	var a domain.Acceleration
	err := s.Scan(&a.ID, &a.VehicleID, &a.StartTime, &a.EndTime, &a.Distance,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return domain.Acceleration{}, err
	}
	return a, nil
}
