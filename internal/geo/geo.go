// Package geo implements great-circle distance math for trip reconstruction.
// Everything here is a pure function of its inputs: no I/O, no state, no
// coordinate validation (range checks belong to the HTTP boundary).
package geo

import "math"

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// Point is a single latitude/longitude pair in decimal degrees.
type Point struct {
	Lat float64
	Lng float64
}

// Haversine returns the great-circle distance in kilometres between two
// coordinates. Identical inputs yield exactly 0.
//
// The intermediate term a is clamped to [0, 1] before the square roots:
// for near-antipodal points floating-point error can push it fractionally
// above 1, which would turn Sqrt(1-a) into NaN.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	a = math.Min(math.Max(a, 0), 1)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// PathDistance returns the total length in kilometres of the path through
// points, summing the haversine distance of each consecutive pair.
//
// The slice must already be in chronological order — callers sort by capture
// timestamp first. Zero or one points mean no movement and return exactly 0.
// No rounding is applied; callers round for display only.
func PathDistance(points []Point) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += Haversine(points[i-1].Lat, points[i-1].Lng, points[i].Lat, points[i].Lng)
	}
	return total
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
