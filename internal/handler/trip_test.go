package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkoren/drivetrack/internal/domain"
	"github.com/mkoren/drivetrack/internal/handler"
)

// mockTripServicer is a test double for handler.TripServicer.
// Set only the method fields your test needs.
type mockTripServicer struct {
	start          func(ctx context.Context, vehicleID int64) (domain.Trip, error)
	recordLocation func(ctx context.Context, tripID int64, lat, lng float64) (domain.LocationPoint, error)
	finish         func(ctx context.Context, tripID int64) (domain.Trip, error)
	listByUser     func(ctx context.Context, userID int64) ([]domain.TripWithVehicle, error)
}

func (m *mockTripServicer) Start(ctx context.Context, vehicleID int64) (domain.Trip, error) {
	return m.start(ctx, vehicleID)
}
func (m *mockTripServicer) RecordLocation(ctx context.Context, tripID int64, lat, lng float64) (domain.LocationPoint, error) {
	return m.recordLocation(ctx, tripID, lat, lng)
}
func (m *mockTripServicer) Finish(ctx context.Context, tripID int64) (domain.Trip, error) {
	return m.finish(ctx, tripID)
}
func (m *mockTripServicer) ListByUser(ctx context.Context, userID int64) ([]domain.TripWithVehicle, error) {
	return m.listByUser(ctx, userID)
}

// compile-time check: mockTripServicer must satisfy handler.TripServicer.
var _ handler.TripServicer = (*mockTripServicer)(nil)

func newTripHTTPHandler(svc handler.TripServicer) http.Handler {
	return newTestHandler(handler.NewServer(nil, nil, svc, nil))
}

func tripFixture(vehicleID int64) domain.Trip {
	return domain.Trip{
		ID:        7,
		VehicleID: vehicleID,
		StartTime: time.Date(2026, 4, 12, 9, 30, 0, 0, time.UTC),
		Status:    domain.TripActive,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

// ---- POST /trips/start -----------------------------------------------------

func TestStartTrip_201(t *testing.T) {
	fixture := tripFixture(3)
	svc := &mockTripServicer{
		start: func(_ context.Context, vehicleID int64) (domain.Trip, error) {
			assert.Equal(t, int64(3), vehicleID)
			return fixture, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/trips/start", jsonBody(t, map[string]any{"vehicleId": 3}))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newTripHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var trip domain.Trip
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&trip))
	assert.Equal(t, fixture.ID, trip.ID)
	assert.Equal(t, domain.TripActive, trip.Status)
	assert.Nil(t, trip.EndTime)
	assert.Zero(t, trip.Distance)
}

func TestStartTrip_404_UnknownVehicle(t *testing.T) {
	svc := &mockTripServicer{
		start: func(_ context.Context, _ int64) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("service.TripService.Start: %w", domain.ErrNotFound)
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/trips/start", jsonBody(t, map[string]any{"vehicleId": 999}))
	rec := httptest.NewRecorder()

	newTripHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeErr(t, rec).Error.Code)
}

func TestStartTrip_422_MissingVehicleID(t *testing.T) {
	svc := &mockTripServicer{
		start: func(_ context.Context, _ int64) (domain.Trip, error) {
			t.Fatal("service must not be called")
			return domain.Trip{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/trips/start", jsonBody(t, map[string]any{}))
	rec := httptest.NewRecorder()

	newTripHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_error", decodeErr(t, rec).Error.Code)
}

// ---- POST /trips/updateLocation --------------------------------------------

func TestRecordTripLocation_200(t *testing.T) {
	svc := &mockTripServicer{
		recordLocation: func(_ context.Context, tripID int64, lat, lng float64) (domain.LocationPoint, error) {
			assert.Equal(t, int64(7), tripID)
			assert.Equal(t, 46.0569, lat)
			assert.Equal(t, 14.5058, lng)
			return domain.LocationPoint{ID: 1, TripID: tripID, Lat: lat, Lng: lng, RecordedAt: time.Now().UTC()}, nil
		},
	}

	body := jsonBody(t, map[string]any{"tripId": 7, "lat": 46.0569, "lng": 14.5058})
	req := httptest.NewRequest(http.MethodPost, "/trips/updateLocation", body)
	rec := httptest.NewRecorder()

	newTripHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecordTripLocation_422_CoordinateRange(t *testing.T) {
	tests := []struct {
		name string
		lat  float64
		lng  float64
	}{
		{"lat too small", -90.5, 0},
		{"lat too large", 91, 0},
		{"lng too small", 0, -180.5},
		{"lng too large", 0, 181},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockTripServicer{
				recordLocation: func(_ context.Context, _ int64, _, _ float64) (domain.LocationPoint, error) {
					t.Fatal("service must not be called")
					return domain.LocationPoint{}, nil
				},
			}

			body := jsonBody(t, map[string]any{"tripId": 7, "lat": tt.lat, "lng": tt.lng})
			req := httptest.NewRequest(http.MethodPost, "/trips/updateLocation", body)
			rec := httptest.NewRecorder()

			newTripHTTPHandler(svc).ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Equal(t, "validation_error", decodeErr(t, rec).Error.Code)
		})
	}
}

func TestRecordTripLocation_200_BoundaryCoordinates(t *testing.T) {
	svc := &mockTripServicer{
		recordLocation: func(_ context.Context, tripID int64, lat, lng float64) (domain.LocationPoint, error) {
			return domain.LocationPoint{ID: 1, TripID: tripID, Lat: lat, Lng: lng}, nil
		},
	}

	body := jsonBody(t, map[string]any{"tripId": 7, "lat": -90, "lng": 180})
	req := httptest.NewRequest(http.MethodPost, "/trips/updateLocation", body)
	rec := httptest.NewRecorder()

	newTripHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecordTripLocation_422_MissingCoordinates(t *testing.T) {
	svc := &mockTripServicer{}

	body := jsonBody(t, map[string]any{"tripId": 7, "lat": 46.0569})
	req := httptest.NewRequest(http.MethodPost, "/trips/updateLocation", body)
	rec := httptest.NewRecorder()

	newTripHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRecordTripLocation_404_UnknownTrip(t *testing.T) {
	svc := &mockTripServicer{
		recordLocation: func(_ context.Context, _ int64, _, _ float64) (domain.LocationPoint, error) {
			return domain.LocationPoint{}, fmt.Errorf("service.TripService.RecordLocation: %w", domain.ErrNotFound)
		},
	}

	body := jsonBody(t, map[string]any{"tripId": 999, "lat": 0.0, "lng": 0.0})
	req := httptest.NewRequest(http.MethodPost, "/trips/updateLocation", body)
	rec := httptest.NewRecorder()

	newTripHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

// ---- POST /trips/finish ----------------------------------------------------

func TestFinishTrip_200(t *testing.T) {
	end := time.Date(2026, 4, 12, 10, 15, 0, 0, time.UTC)
	fixture := tripFixture(3)
	fixture.EndTime = &end
	fixture.Distance = 12.43
	fixture.Status = domain.TripFinished

	svc := &mockTripServicer{
		finish: func(_ context.Context, tripID int64) (domain.Trip, error) {
			assert.Equal(t, int64(7), tripID)
			return fixture, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/trips/finish", jsonBody(t, map[string]any{"tripId": 7}))
	rec := httptest.NewRecorder()

	newTripHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var trip domain.Trip
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&trip))
	assert.Equal(t, domain.TripFinished, trip.Status)
	require.NotNil(t, trip.EndTime)
	assert.Equal(t, end, *trip.EndTime)
	assert.InDelta(t, 12.43, trip.Distance, 1e-9)
}

func TestFinishTrip_404(t *testing.T) {
	svc := &mockTripServicer{
		finish: func(_ context.Context, _ int64) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("service.TripService.Finish: %w", domain.ErrNotFound)
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/trips/finish", jsonBody(t, map[string]any{"tripId": 999}))
	rec := httptest.NewRecorder()

	newTripHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeErr(t, rec).Error.Code)
}

// ---- GET /trips/user/{userID} ----------------------------------------------

func TestListTripsByUser_200(t *testing.T) {
	end := time.Date(2026, 4, 12, 10, 15, 0, 0, time.UTC)
	finished := tripFixture(3)
	finished.EndTime = &end
	finished.Distance = 8.2
	finished.Status = domain.TripFinished

	svc := &mockTripServicer{
		listByUser: func(_ context.Context, userID int64) ([]domain.TripWithVehicle, error) {
			assert.Equal(t, int64(5), userID)
			return []domain.TripWithVehicle{
				{Trip: finished, Vehicle: domain.VehicleSummary{ID: 3, Brand: "VOLKSWAGEN", Model: "GOLF"}},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/trips/user/5", nil)
	rec := httptest.NewRecorder()

	newTripHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var trips []domain.TripWithVehicle
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&trips))
	require.Len(t, trips, 1)
	assert.Equal(t, "GOLF", trips[0].Vehicle.Model)
}

func TestListTripsByUser_200_Empty(t *testing.T) {
	svc := &mockTripServicer{
		listByUser: func(_ context.Context, _ int64) ([]domain.TripWithVehicle, error) {
			return []domain.TripWithVehicle{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/trips/user/5", nil)
	rec := httptest.NewRecorder()

	newTripHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestListTripsByUser_422_BadUserID(t *testing.T) {
	svc := &mockTripServicer{}

	req := httptest.NewRequest(http.MethodGet, "/trips/user/abc", nil)
	rec := httptest.NewRecorder()

	newTripHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
