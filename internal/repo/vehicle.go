package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mkoren/drivetrack/internal/domain"
)

// VehicleRepo defines the persistence operations for Vehicles.
type VehicleRepo interface {
	// Create inserts a new vehicle and returns the persisted record.
	// Returns domain.ErrConflict when the VIN is already registered.
	Create(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error)

	// GetByID retrieves a single vehicle by its primary key.
	// Returns domain.ErrNotFound if no vehicle with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Vehicle, error)

	// GetByVIN retrieves a single vehicle by its unique VIN.
	// Returns domain.ErrNotFound if no vehicle with that VIN exists.
	GetByVIN(ctx context.Context, vin string) (domain.Vehicle, error)

	// Update overwrites the registry fields of an existing vehicle and
	// returns the updated record. Returns domain.ErrNotFound if no vehicle
	// with that ID exists.
	Update(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error)

	// ListPaged returns one page of vehicles ordered by brand, model, id,
	// plus the total row count for pagination metadata.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Vehicle, int64, error)

	// ListByUser returns all vehicles linked to the given user.
	ListByUser(ctx context.Context, userID int64) ([]domain.Vehicle, error)
}

// pgVehicleRepo is the Postgres implementation of VehicleRepo.
type pgVehicleRepo struct {
	db db
}

// NewVehicleRepo constructs a VehicleRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewVehicleRepo(db db) VehicleRepo {
	return &pgVehicleRepo{db: db}
}

const vehicleColumns = `id, user_id, vin, brand, model, first_reg_date, first_reg_date_slo,
	fuel_type, body_type, color, vehicle_category, env_label, origin_country, status,
	max_speed, kilometers, weight, nominal_power, engine_displacement, engine_type,
	location_lat, location_lng, created_at, updated_at`

func (r *pgVehicleRepo) Create(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error) {
	const q = `
		INSERT INTO vehicles (user_id, vin, brand, model, first_reg_date, first_reg_date_slo,
			fuel_type, body_type, color, vehicle_category, env_label, origin_country, status,
			max_speed, kilometers, weight, nominal_power, engine_displacement, engine_type,
			location_lat, location_lng)
		VALUES (@user_id, @vin, @brand, @model, @first_reg_date, @first_reg_date_slo,
			@fuel_type, @body_type, @color, @vehicle_category, @env_label, @origin_country, @status,
			@max_speed, @kilometers, @weight, @nominal_power, @engine_displacement, @engine_type,
			@location_lat, @location_lng)
		RETURNING ` + vehicleColumns

	result, err := scanVehicle(r.db.QueryRow(ctx, q, vehicleArgs(vehicle)))
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("repo.VehicleRepo.Create: %w", mapWriteErr(err))
	}
	return result, nil
}

func (r *pgVehicleRepo) GetByID(ctx context.Context, id int64) (domain.Vehicle, error) {
	const q = `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = @id`

	result, err := scanVehicle(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("repo.VehicleRepo.GetByID: %w", mapWriteErr(err))
	}
	return result, nil
}

func (r *pgVehicleRepo) GetByVIN(ctx context.Context, vin string) (domain.Vehicle, error) {
	const q = `SELECT ` + vehicleColumns + ` FROM vehicles WHERE vin = @vin`

	result, err := scanVehicle(r.db.QueryRow(ctx, q, pgx.NamedArgs{"vin": vin}))
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("repo.VehicleRepo.GetByVIN: %w", mapWriteErr(err))
	}
	return result, nil
}

func (r *pgVehicleRepo) Update(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error) {
	const q = `
		UPDATE vehicles
		SET user_id            = @user_id,
		    brand              = @brand,
		    model              = @model,
		    first_reg_date     = @first_reg_date,
		    first_reg_date_slo = @first_reg_date_slo,
		    fuel_type          = @fuel_type,
		    body_type          = @body_type,
		    color              = @color,
		    vehicle_category   = @vehicle_category,
		    env_label          = @env_label,
		    origin_country     = @origin_country,
		    status             = @status,
		    max_speed          = @max_speed,
		    kilometers         = @kilometers,
		    weight             = @weight,
		    nominal_power      = @nominal_power,
		    engine_displacement = @engine_displacement,
		    engine_type        = @engine_type,
		    location_lat       = @location_lat,
		    location_lng       = @location_lng,
		    updated_at         = now()
		WHERE id = @id
		RETURNING ` + vehicleColumns

	args := vehicleArgs(vehicle)
	args["id"] = vehicle.ID

	result, err := scanVehicle(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("repo.VehicleRepo.Update: %w", mapWriteErr(err))
	}
	return result, nil
}

func (r *pgVehicleRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Vehicle, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM vehicles`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.VehicleRepo.ListPaged: count: %w", err)
	}

	const q = `
		SELECT ` + vehicleColumns + `
		FROM vehicles
		ORDER BY brand, model, id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.VehicleRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	vehicles, err := collectVehicles(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.VehicleRepo.ListPaged: %w", err)
	}
	return vehicles, total, nil
}

func (r *pgVehicleRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Vehicle, error) {
	const q = `
		SELECT ` + vehicleColumns + `
		FROM vehicles
		WHERE user_id = @user_id
		ORDER BY brand, model, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.VehicleRepo.ListByUser: %w", err)
	}
	defer rows.Close()

	vehicles, err := collectVehicles(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.VehicleRepo.ListByUser: %w", err)
	}
	return vehicles, nil
}

// vehicleArgs builds the named arguments shared by Create and Update.
func vehicleArgs(v domain.Vehicle) pgx.NamedArgs {
	return pgx.NamedArgs{
		"user_id":             v.UserID, // nil becomes NULL
		"vin":                 v.VIN,
		"brand":               v.Brand,
		"model":               v.Model,
		"first_reg_date":      v.FirstRegDate,
		"first_reg_date_slo":  v.FirstRegDateSlo,
		"fuel_type":           v.FuelType,
		"body_type":           v.BodyType,
		"color":               v.Color,
		"vehicle_category":    v.Category,
		"env_label":           v.EnvLabel,
		"origin_country":      v.OriginCountry,
		"status":              v.Status,
		"max_speed":           v.MaxSpeed,
		"kilometers":          v.Kilometers,
		"weight":              v.Weight,
		"nominal_power":       v.NominalPower,
		"engine_displacement": v.EngineDispl,
		"engine_type":         v.EngineType,
		"location_lat":        v.LocationLat,
		"location_lng":        v.LocationLng,
	}
}

// scanVehicle maps a single database row into a domain.Vehicle.
func scanVehicle(s scanner) (domain.Vehicle, error) {
	var v domain.Vehicle
	err := s.Scan(&v.ID, &v.UserID, &v.VIN, &v.Brand, &v.Model, &v.FirstRegDate, &v.FirstRegDateSlo,
		&v.FuelType, &v.BodyType, &v.Color, &v.Category, &v.EnvLabel, &v.OriginCountry, &v.Status,
		&v.MaxSpeed, &v.Kilometers, &v.Weight, &v.NominalPower, &v.EngineDispl, &v.EngineType,
		&v.LocationLat, &v.LocationLng, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return domain.Vehicle{}, err
	}
	return v, nil
}

// collectVehicles drains rows into a slice using scanVehicle.
func collectVehicles(rows pgx.Rows) ([]domain.Vehicle, error) {
	var vehicles []domain.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return vehicles, nil
}
