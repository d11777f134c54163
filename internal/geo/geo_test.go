package geo_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mkoren/drivetrack/internal/geo"
)

func TestHaversine_KnownDistance(t *testing.T) {
	// 0.1 degree of longitude at 45N is roughly 7.86 km.
	d := geo.Haversine(45.0, 15.0, 45.0, 15.1)

	assert.Greater(t, d, 7.5)
	assert.Less(t, d, 8.0)
}

func TestHaversine_Symmetric(t *testing.T) {
	ab := geo.Haversine(46.0569, 14.5058, 45.5475, 13.7304) // Ljubljana -> Koper
	ba := geo.Haversine(45.5475, 13.7304, 46.0569, 14.5058)

	assert.InDelta(t, ab, ba, 1e-12)
}

func TestHaversine_IdenticalPoints(t *testing.T) {
	d := geo.Haversine(46.0569, 14.5058, 46.0569, 14.5058)

	// Must be exactly zero, never NaN.
	assert.Equal(t, 0.0, d)
	assert.False(t, math.IsNaN(d))
}

func TestHaversine_AntipodalNotNaN(t *testing.T) {
	// Antipodal points can push the haversine intermediate fractionally
	// above 1; the clamp must keep the result finite.
	d := geo.Haversine(0, 0, 0, 180)

	assert.False(t, math.IsNaN(d))
	// Half the Earth's circumference at R=6371 is ~20015 km.
	assert.InDelta(t, math.Pi*6371.0, d, 1.0)
}

func TestPathDistance_Empty(t *testing.T) {
	assert.Equal(t, 0.0, geo.PathDistance(nil))
	assert.Equal(t, 0.0, geo.PathDistance([]geo.Point{}))
}

func TestPathDistance_SinglePoint(t *testing.T) {
	d := geo.PathDistance([]geo.Point{{Lat: 45.0, Lng: 15.0}})

	assert.Equal(t, 0.0, d)
}

func TestPathDistance_TwoPoints(t *testing.T) {
	pts := []geo.Point{{Lat: 45.0, Lng: 15.0}, {Lat: 45.0, Lng: 15.1}}

	assert.InDelta(t, geo.Haversine(45.0, 15.0, 45.0, 15.1), geo.PathDistance(pts), 1e-12)
}

func TestPathDistance_SumOfSegments(t *testing.T) {
	pts := []geo.Point{
		{Lat: 45.0, Lng: 15.0},
		{Lat: 45.0, Lng: 15.1},
		{Lat: 45.1, Lng: 15.1},
	}

	want := geo.Haversine(45.0, 15.0, 45.0, 15.1) + geo.Haversine(45.0, 15.1, 45.1, 15.1)

	assert.InDelta(t, want, geo.PathDistance(pts), 1e-12)
}

func TestPathDistance_CollinearMidpoint(t *testing.T) {
	// A midpoint on the same meridian should not change the total:
	// paths along a great circle satisfy triangle equality.
	direct := geo.PathDistance([]geo.Point{
		{Lat: 45.0, Lng: 15.0},
		{Lat: 45.2, Lng: 15.0},
	})
	viaMid := geo.PathDistance([]geo.Point{
		{Lat: 45.0, Lng: 15.0},
		{Lat: 45.1, Lng: 15.0},
		{Lat: 45.2, Lng: 15.0},
	})

	assert.InDelta(t, direct, viaMid, 1e-9)
}

func TestPathDistance_RepeatedPoints(t *testing.T) {
	// A stationary vehicle pinging the same coordinates must accumulate
	// exactly zero, not NaN.
	p := geo.Point{Lat: 46.0569, Lng: 14.5058}
	d := geo.PathDistance([]geo.Point{p, p, p, p})

	assert.Equal(t, 0.0, d)
}
