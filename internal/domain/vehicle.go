package domain

import "time"

// Vehicle is a registered vehicle. The attribute set mirrors the national
// open-data vehicle registry the importer ingests; UserID links the record
// to its owner once a user claims it and is nil for registry-only rows.
type Vehicle struct {
	ID              int64      `json:"id"`
	UserID          *int64     `json:"user_id,omitempty"`
	VIN             string     `json:"vin"` // unique; upsert key
	Brand           string     `json:"brand"`
	Model           string     `json:"model"`
	FirstRegDate    time.Time  `json:"first_reg_date"`
	FirstRegDateSlo time.Time  `json:"first_reg_date_slo"` // first registration in Slovenia
	FuelType        string     `json:"fuel_type"`
	BodyType        string     `json:"body_type"`
	Color           string     `json:"color"`
	Category        string     `json:"vehicle_category"`
	EnvLabel        string     `json:"env_label"`
	OriginCountry   string     `json:"origin_country"`
	Status          string     `json:"status"`
	MaxSpeed        float64    `json:"max_speed"`  // km/h
	Kilometers      float64    `json:"kilometers"` // odometer reading at registration
	Weight          int        `json:"weight"`     // kg
	NominalPower    int        `json:"nominal_power"` // kW
	EngineDispl     int        `json:"engine_displacement"` // ccm
	EngineType      string     `json:"engine_type"`
	LocationLat     *float64   `json:"location_lat,omitempty"` // last known position, if reported
	LocationLng     *float64   `json:"location_lng,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// VehicleSummary is the short form embedded in trip and acceleration
// listings, where repeating the full registry record per row is wasteful.
type VehicleSummary struct {
	ID       int64  `json:"id"`
	VIN      string `json:"vin"`
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	FuelType string `json:"fuel_type"`
	BodyType string `json:"body_type"`
}

// Summary projects a Vehicle down to its listing form.
func (v Vehicle) Summary() VehicleSummary {
	return VehicleSummary{
		ID:       v.ID,
		VIN:      v.VIN,
		Brand:    v.Brand,
		Model:    v.Model,
		FuelType: v.FuelType,
		BodyType: v.BodyType,
	}
}
