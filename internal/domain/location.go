package domain

import "time"

// LocationPoint is a single timestamped GPS sample belonging to one trip.
// Points are append-only: they are written by location pings while a trip is
// active and read back in bulk when the trip finishes.
//
// RecordedAt, not insertion order, defines the point's position along the
// path — pings can arrive out of network order.
type LocationPoint struct {
	ID         int64     `json:"id"`
	TripID     int64     `json:"trip_id"`
	Lat        float64   `json:"lat"` // decimal degrees, -90..90
	Lng        float64   `json:"lng"` // decimal degrees, -180..180
	RecordedAt time.Time `json:"recorded_at"`
}
