package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mkoren/drivetrack/internal/domain"
)

// LocationRepo defines the persistence operations for LocationPoints.
// Points are append-only; there is no update or delete.
type LocationRepo interface {
	// Create inserts a new location point and returns the persisted record.
	Create(ctx context.Context, point domain.LocationPoint) (domain.LocationPoint, error)

	// ListByTripID returns all points for a trip in insertion order.
	// Callers that need chronological order must sort on RecordedAt
	// themselves — pings can be inserted out of capture order.
	ListByTripID(ctx context.Context, tripID int64) ([]domain.LocationPoint, error)
}

// pgLocationRepo is the Postgres implementation of LocationRepo.
type pgLocationRepo struct {
	db db
}

// NewLocationRepo constructs a LocationRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewLocationRepo(db db) LocationRepo {
	return &pgLocationRepo{db: db}
}

func (r *pgLocationRepo) Create(ctx context.Context, point domain.LocationPoint) (domain.LocationPoint, error) {
	const q = `
		INSERT INTO locations (trip_id, lat, lng, recorded_at)
		VALUES (@trip_id, @lat, @lng, @recorded_at)
		RETURNING id, trip_id, lat, lng, recorded_at`

	args := pgx.NamedArgs{
		"trip_id":     point.TripID,
		"lat":         point.Lat,
		"lng":         point.Lng,
		"recorded_at": point.RecordedAt,
	}

	result, err := scanLocation(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.LocationPoint{}, fmt.Errorf("repo.LocationRepo.Create: %w", mapWriteErr(err))
	}
	return result, nil
}

func (r *pgLocationRepo) ListByTripID(ctx context.Context, tripID int64) ([]domain.LocationPoint, error) {
	const q = `
		SELECT id, trip_id, lat, lng, recorded_at
		FROM locations
		WHERE trip_id = @trip_id
		ORDER BY id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.LocationRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var points []domain.LocationPoint
	for rows.Next() {
		p, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.LocationRepo.ListByTripID: scan: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.LocationRepo.ListByTripID: rows: %w", err)
	}

	return points, nil
}

// scanLocation maps a single database row into a domain.LocationPoint.
func scanLocation(s scanner) (domain.LocationPoint, error) {
	var p domain.LocationPoint
	if err := s.Scan(&p.ID, &p.TripID, &p.Lat, &p.Lng, &p.RecordedAt); err != nil {
		return domain.LocationPoint{}, err
	}
	return p, nil
}
