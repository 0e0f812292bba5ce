// Package geo provides great-circle distance, circular regions, and point
// membership counts for incident analysis.
package geo

import "math"

// EarthRadiusMeters is the mean Earth radius used by the spherical model.
const EarthRadiusMeters = 6371000.0

// Coordinate bounds in degrees.
const (
	MaxLatitude  = 90.0
	MaxLongitude = 180.0
)

// Point is a geographic coordinate in decimal degrees.
type Point struct {
	Latitude  float64 `json:"lat" yaml:"lat"`
	Longitude float64 `json:"lon" yaml:"lon"`
}

// Valid reports whether the point is finite and within coordinate bounds.
func (p Point) Valid() bool {
	if math.IsNaN(p.Latitude) || math.IsNaN(p.Longitude) {
		return false
	}
	return p.Latitude >= -MaxLatitude && p.Latitude <= MaxLatitude &&
		p.Longitude >= -MaxLongitude && p.Longitude <= MaxLongitude
}

// DistanceTo returns the haversine distance from p to q in meters.
func (p Point) DistanceTo(q Point) float64 {
	return DistanceMeters(p.Latitude, p.Longitude, q.Latitude, q.Longitude)
}

// DistanceMeters returns the great-circle distance between two coordinates
// using the haversine formula on a sphere of radius EarthRadiusMeters.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := toRadians(lat1)
	phi2 := toRadians(lat2)
	dPhi := toRadians(lat2 - lat1)
	dLambda := toRadians(lon2 - lon1)

	sinPhi := math.Sin(dPhi / 2)
	sinLambda := math.Sin(dLambda / 2)
	a := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda

	// Rounding can push a past 1 for antipodal points.
	a = math.Min(1, math.Max(0, a))

	return EarthRadiusMeters * 2 * math.Asin(math.Sqrt(a))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func toDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
