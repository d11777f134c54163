package handler

import (
	"net/http"
	"time"
)

// startAccelerationRequest is the body of POST /accelerations/start.
type startAccelerationRequest struct {
	VehicleID int64 `json:"vehicleId"`
}

// finishAccelerationRequest is the body of PUT /accelerations/finish/{id}.
// EndTime and Distance come from the device, which did the measuring.
type finishAccelerationRequest struct {
	EndTime  time.Time `json:"endTime"`
	Distance *float64  `json:"distance"`
}

// StartAcceleration handles POST /accelerations/start.
func (s *Server) StartAcceleration(w http.ResponseWriter, r *http.Request) {
	var req startAccelerationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondValidation(w, "invalid request body")
		return
	}
	if req.VehicleID <= 0 {
		respondValidation(w, "vehicleId must be a positive integer")
		return
	}

	acc, err := s.accelerations.Start(r.Context(), req.VehicleID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, acc)
}

// FinishAcceleration handles PUT /accelerations/finish/{id}.
func (s *Server) FinishAcceleration(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		respondValidation(w, "id must be an integer")
		return
	}

	var req finishAccelerationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondValidation(w, "invalid request body")
		return
	}
	if req.EndTime.IsZero() {
		respondValidation(w, "endTime is required")
		return
	}
	if req.Distance == nil {
		respondValidation(w, "distance is required")
		return
	}

	acc, err := s.accelerations.Finish(r.Context(), id, req.EndTime, *req.Distance)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, acc)
}

// ListAccelerationsByUser handles GET /accelerations/user/{userID}.
func (s *Server) ListAccelerationsByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathInt64(r, "userID")
	if err != nil {
		respondValidation(w, "userID must be an integer")
		return
	}

	runs, err := s.accelerations.ListByUser(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, runs)
}
