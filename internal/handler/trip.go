package handler

import "net/http"

// startTripRequest is the body of POST /trips/start.
type startTripRequest struct {
	VehicleID int64 `json:"vehicleId"`
}

// updateLocationRequest is the body of POST /trips/updateLocation.
// Lat/Lng are pointers so a missing field can be told apart from 0,0.
type updateLocationRequest struct {
	TripID int64    `json:"tripId"`
	Lat    *float64 `json:"lat"`
	Lng    *float64 `json:"lng"`
}

// finishTripRequest is the body of POST /trips/finish.
type finishTripRequest struct {
	TripID int64 `json:"tripId"`
}

// StartTrip handles POST /trips/start.
func (s *Server) StartTrip(w http.ResponseWriter, r *http.Request) {
	var req startTripRequest
	if err := decodeJSON(r, &req); err != nil {
		respondValidation(w, "invalid request body")
		return
	}
	if req.VehicleID <= 0 {
		respondValidation(w, "vehicleId must be a positive integer")
		return
	}

	trip, err := s.trips.Start(r.Context(), req.VehicleID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, trip)
}

// RecordTripLocation handles POST /trips/updateLocation.
// Coordinate range validation happens here, at the boundary — the core
// accepts any finite pair it is given.
func (s *Server) RecordTripLocation(w http.ResponseWriter, r *http.Request) {
	var req updateLocationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondValidation(w, "invalid request body")
		return
	}
	if req.TripID <= 0 {
		respondValidation(w, "tripId must be a positive integer")
		return
	}
	if req.Lat == nil || req.Lng == nil {
		respondValidation(w, "lat and lng are required")
		return
	}
	if *req.Lat < -90 || *req.Lat > 90 {
		respondValidation(w, "lat must be between -90 and 90")
		return
	}
	if *req.Lng < -180 || *req.Lng > 180 {
		respondValidation(w, "lng must be between -180 and 180")
		return
	}

	point, err := s.trips.RecordLocation(r.Context(), req.TripID, *req.Lat, *req.Lng)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, point)
}

// FinishTrip handles POST /trips/finish.
func (s *Server) FinishTrip(w http.ResponseWriter, r *http.Request) {
	var req finishTripRequest
	if err := decodeJSON(r, &req); err != nil {
		respondValidation(w, "invalid request body")
		return
	}
	if req.TripID <= 0 {
		respondValidation(w, "tripId must be a positive integer")
		return
	}

	trip, err := s.trips.Finish(r.Context(), req.TripID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, trip)
}

// ListTripsByUser handles GET /trips/user/{userID}.
func (s *Server) ListTripsByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathInt64(r, "userID")
	if err != nil {
		respondValidation(w, "userID must be an integer")
		return
	}

	trips, err := s.trips.ListByUser(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, trips)
}
