// Package handler implements the HTTP layer of the DriveTrack API.
// All handlers are methods on Server. Methods are split into resource-specific
// files (user.go, trip.go, etc.) but all share the same Server struct so they
// can access its dependencies.
//
// Handlers parse and validate raw input, call a servicer, and map domain
// errors to HTTP status codes. No business logic lives here.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mkoren/drivetrack/internal/domain"
)

// UserServicer defines the business operations the user handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention "accept interfaces, return concrete types" and lets handler
// tests inject a mock without touching the database or service layer.
type UserServicer interface {
	Register(ctx context.Context, firstName, lastName, email, password string) (domain.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	List(ctx context.Context) ([]domain.User, error)
}

// VehicleServicer defines the business operations the vehicle handlers depend on.
type VehicleServicer interface {
	Upsert(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Vehicle, int64, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Vehicle, error)
}

// TripServicer defines the business operations the trip handlers depend on.
type TripServicer interface {
	Start(ctx context.Context, vehicleID int64) (domain.Trip, error)
	RecordLocation(ctx context.Context, tripID int64, lat, lng float64) (domain.LocationPoint, error)
	Finish(ctx context.Context, tripID int64) (domain.Trip, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.TripWithVehicle, error)
}

// AccelerationServicer defines the business operations the acceleration handlers depend on.
type AccelerationServicer interface {
	Start(ctx context.Context, vehicleID int64) (domain.Acceleration, error)
	Finish(ctx context.Context, id int64, endTime time.Time, distance float64) (domain.Acceleration, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.AccelerationWithVehicle, error)
}

// Server holds the servicers behind all API endpoints.
type Server struct {
	users         UserServicer
	vehicles      VehicleServicer
	trips         TripServicer
	accelerations AccelerationServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(users UserServicer, vehicles VehicleServicer, trips TripServicer, accelerations AccelerationServicer) *Server {
	return &Server{users: users, vehicles: vehicles, trips: trips, accelerations: accelerations}
}

// Routes mounts every endpoint onto a chi router. requireAuth wraps the
// routes that need a verified bearer token; the login, registration, public
// vehicle listing, and health endpoints stay open.
func (s *Server) Routes(requireAuth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/users", func(r chi.Router) {
		r.Post("/register", s.RegisterUser)
		r.Post("/login", s.LoginUser)
		r.With(requireAuth).Get("/", s.ListUsers)
	})

	r.Route("/vehicles", func(r chi.Router) {
		r.Get("/list", s.ListVehicles)
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/add", s.UpsertVehicle)
			r.Get("/user", s.ListVehiclesByUser)
		})
	})

	r.Route("/trips", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/start", s.StartTrip)
		r.Post("/updateLocation", s.RecordTripLocation)
		r.Post("/finish", s.FinishTrip)
		r.Get("/user/{userID}", s.ListTripsByUser)
	})

	r.Route("/accelerations", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/start", s.StartAcceleration)
		r.Put("/finish/{id}", s.FinishAcceleration)
		r.Get("/user/{userID}", s.ListAccelerationsByUser)
	})

	return r
}

// GetHealth handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
