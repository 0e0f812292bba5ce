package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceMeters_KnownValues(t *testing.T) {
	tests := []struct {
		name     string
		a        Point
		b        Point
		expected float64
		delta    float64
	}{
		{
			name:     "one degree of longitude at the equator",
			a:        Point{Latitude: 0, Longitude: 0},
			b:        Point{Latitude: 0, Longitude: 1},
			expected: 111195,
			delta:    1112, // 1%
		},
		{
			name:     "one degree of latitude",
			a:        Point{Latitude: 10, Longitude: 20},
			b:        Point{Latitude: 11, Longitude: 20},
			expected: 111195,
			delta:    1,
		},
		{
			name:     "angels camp to murphys",
			a:        Point{Latitude: 38.0675, Longitude: -120.5436},
			b:        Point{Latitude: 38.1391, Longitude: -120.4561},
			expected: 11046,
			delta:    100,
		},
		{
			name:     "antipodal points",
			a:        Point{Latitude: 0, Longitude: 0},
			b:        Point{Latitude: 0, Longitude: 180},
			expected: math.Pi * EarthRadiusMeters,
			delta:    1,
		},
		{
			name:     "pole to pole",
			a:        Point{Latitude: 90, Longitude: 0},
			b:        Point{Latitude: -90, Longitude: 0},
			expected: math.Pi * EarthRadiusMeters,
			delta:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DistanceMeters(tt.a.Latitude, tt.a.Longitude, tt.b.Latitude, tt.b.Longitude)
			assert.InDelta(t, tt.expected, d, tt.delta)
			assert.False(t, math.IsNaN(d))
		})
	}
}

func TestDistanceMeters_ZeroForCoincidentPoints(t *testing.T) {
	for _, p := range []Point{
		{0, 0},
		{41.8781, -87.6298},
		{-33.8688, 151.2093},
		{90, 0},
		{-90, 180},
		{12.5, -180},
	} {
		assert.Equal(t, 0.0, DistanceMeters(p.Latitude, p.Longitude, p.Latitude, p.Longitude), "point %v", p)
	}
}

func TestDistanceMeters_Symmetric(t *testing.T) {
	points := []Point{
		{0, 0},
		{41.8781, -87.6298},
		{41.8800, -87.6200},
		{-33.8688, 151.2093},
		{51.5074, -0.1278},
		{0, 180},
		{-89.9, 45},
	}
	for _, a := range points {
		for _, b := range points {
			assert.Equal(t, a.DistanceTo(b), b.DistanceTo(a), "%v <-> %v", a, b)
			assert.GreaterOrEqual(t, a.DistanceTo(b), 0.0)
		}
	}
}

func TestPoint_Valid(t *testing.T) {
	assert.True(t, Point{Latitude: 90, Longitude: 180}.Valid())
	assert.True(t, Point{Latitude: -90, Longitude: -180}.Valid())
	assert.False(t, Point{Latitude: 90.1, Longitude: 0}.Valid())
	assert.False(t, Point{Latitude: 0, Longitude: -180.5}.Valid())
	assert.False(t, Point{Latitude: math.NaN(), Longitude: 0}.Valid())
}
