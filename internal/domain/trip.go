// Package domain contains the core data types for the DriveTrack backend.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, handler).
package domain

import "time"

// TripStatus is the explicit lifecycle state of a trip.
// Carrying it alongside the record avoids inferring "still driving" from
// EndTime nullability at every call site.
type TripStatus string

const (
	// TripActive means the trip has started and is still collecting
	// location points.
	TripActive TripStatus = "active"

	// TripFinished is the terminal state: EndTime and Distance are set.
	TripFinished TripStatus = "finished"
)

// Trip represents a single tracked drive of one vehicle.
// A trip is created in the active state with zero distance; Finish sets
// EndTime and overwrites Distance with the reconstructed path length.
type Trip struct {
	ID        int64      `json:"id"`
	VehicleID int64      `json:"vehicle_id"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"` // nil while the trip is active
	Distance  float64    `json:"distance"`           // kilometres; authoritative only after finish
	Status    TripStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TripWithVehicle is a trip joined with a summary of the vehicle that drove
// it, used by the per-user trip listing.
type TripWithVehicle struct {
	Trip
	Vehicle VehicleSummary `json:"vehicle"`
}
