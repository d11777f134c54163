package handler

import (
	"net/http"
	"time"

	"github.com/mkoren/drivetrack/internal/domain"
	"github.com/mkoren/drivetrack/internal/middleware"
)

// vehicleRequest is the body of POST /vehicles/add. Field names mirror the
// registry export the importer feeds in. Dates are RFC 3339.
type vehicleRequest struct {
	UserID          *int64    `json:"userId,omitempty"`
	VIN             string    `json:"vin"`
	Brand           string    `json:"brand"`
	Model           string    `json:"model"`
	FirstRegDate    time.Time `json:"firstRegDate"`
	FirstRegDateSlo time.Time `json:"firstRegDateSlo"`
	FuelType        string    `json:"fuelType"`
	BodyType        string    `json:"bodyType"`
	Color           string    `json:"color"`
	Category        string    `json:"vehicleCategory"`
	EnvLabel        string    `json:"envLabel"`
	OriginCountry   string    `json:"originCountry"`
	Status          string    `json:"status"`
	MaxSpeed        float64   `json:"maxSpeed"`
	Kilometers      float64   `json:"kilometers"`
	Weight          int       `json:"weight"`
	NominalPower    int       `json:"nominalPower"`
	EngineDispl     int       `json:"engineDisplacement"`
	EngineType      string    `json:"engineType"`
	LocationLat     *float64  `json:"locationLat,omitempty"`
	LocationLng     *float64  `json:"locationLng,omitempty"`
}

// paginatedVehicles is the body of GET /vehicles/list.
type paginatedVehicles struct {
	Data       []domain.Vehicle `json:"data"`
	Pagination pagination       `json:"pagination"`
}

type pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// UpsertVehicle handles POST /vehicles/add.
// Creates the vehicle or refreshes the existing row with the same VIN.
func (s *Server) UpsertVehicle(w http.ResponseWriter, r *http.Request) {
	var req vehicleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondValidation(w, "invalid request body")
		return
	}

	vehicle, err := s.vehicles.Upsert(r.Context(), req.toDomain())
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, vehicle)
}

// ListVehicles handles GET /vehicles/list.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListVehicles(w http.ResponseWriter, r *http.Request) {
	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))

	vehicles, total, err := s.vehicles.ListPaged(r.Context(), params)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, paginatedVehicles{
		Data:       vehicles,
		Pagination: pagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}

// ListVehiclesByUser handles GET /vehicles/user.
// The user is taken from the bearer token, not from the URL.
func (s *Server) ListVehiclesByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, r, domain.ErrUnauthorized)
		return
	}

	vehicles, err := s.vehicles.ListByUser(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, vehicles)
}

// toDomain maps the request body onto the domain type.
func (req vehicleRequest) toDomain() domain.Vehicle {
	return domain.Vehicle{
		UserID:          req.UserID,
		VIN:             req.VIN,
		Brand:           req.Brand,
		Model:           req.Model,
		FirstRegDate:    req.FirstRegDate,
		FirstRegDateSlo: req.FirstRegDateSlo,
		FuelType:        req.FuelType,
		BodyType:        req.BodyType,
		Color:           req.Color,
		Category:        req.Category,
		EnvLabel:        req.EnvLabel,
		OriginCountry:   req.OriginCountry,
		Status:          req.Status,
		MaxSpeed:        req.MaxSpeed,
		Kilometers:      req.Kilometers,
		Weight:          req.Weight,
		NominalPower:    req.NominalPower,
		EngineDispl:     req.EngineDispl,
		EngineType:      req.EngineType,
		LocationLat:     req.LocationLat,
		LocationLng:     req.LocationLng,
	}
}
