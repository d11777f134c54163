package domain

import "time"

// Acceleration is one acceleration run (e.g. a standing-start measurement)
// for a vehicle. Unlike trips, the distance is measured on-device by
// integrating accelerometer samples; the backend only records the result,
// so Finish carries a client-supplied end time and distance.
type Acceleration struct {
	ID        int64      `json:"id"`
	VehicleID int64      `json:"vehicle_id"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Distance  float64    `json:"distance"` // kilometres
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// AccelerationWithVehicle is an acceleration run joined with a summary of
// its vehicle, used by the per-user listing.
type AccelerationWithVehicle struct {
	Acceleration
	Vehicle VehicleSummary `json:"vehicle"`
}
