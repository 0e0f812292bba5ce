package geo

import "math"

const metersPerKM = 1000.0

// Circle is a closed disk on the sphere. Membership is inclusive of the
// boundary: a point at exactly RadiusM counts as inside.
type Circle struct {
	Center  Point   `json:"center" yaml:"center"`
	RadiusM float64 `json:"radius_m" yaml:"radius_m"`
}

// Contains reports whether p lies within the circle, boundary included.
func (c Circle) Contains(p Point) bool {
	return c.Center.DistanceTo(p) <= c.RadiusM
}

// AreaKM2 returns the planar disk area pi*r^2 in square kilometers.
func (c Circle) AreaKM2() float64 {
	return diskAreaKM2(c.RadiusM)
}

// Annulus is the ring between two concentric circles.
type Annulus struct {
	Center Point   `json:"center" yaml:"center"`
	InnerM float64 `json:"inner_radius_m" yaml:"inner_radius_m"`
	OuterM float64 `json:"outer_radius_m" yaml:"outer_radius_m"`
}

// NewAnnulus builds an annulus. ok is false unless 0 < inner < outer.
func NewAnnulus(center Point, innerM, outerM float64) (Annulus, bool) {
	if !(innerM > 0) || !(outerM > innerM) {
		return Annulus{}, false
	}
	return Annulus{Center: center, InnerM: innerM, OuterM: outerM}, true
}

// Inner returns the inner disk.
func (a Annulus) Inner() Circle { return Circle{Center: a.Center, RadiusM: a.InnerM} }

// Outer returns the outer disk.
func (a Annulus) Outer() Circle { return Circle{Center: a.Center, RadiusM: a.OuterM} }

// AreaKM2 returns the ring area: outer disk minus inner disk.
func (a Annulus) AreaKM2() float64 {
	return AnnulusAreaKM2(a.InnerM, a.OuterM)
}

// AnnulusAreaKM2 returns pi*(outer^2 - inner^2) in square kilometers. The
// result is zero or negative when outer <= inner.
func AnnulusAreaKM2(innerM, outerM float64) float64 {
	rin := innerM / metersPerKM
	rout := outerM / metersPerKM
	return math.Pi * (rout*rout - rin*rin)
}

func diskAreaKM2(radiusM float64) float64 {
	r := radiusM / metersPerKM
	return math.Pi * r * r
}

// Destination returns the point reached by travelling distanceM meters from
// p along the initial bearing (degrees clockwise from north).
func (p Point) Destination(bearingDeg, distanceM float64) Point {
	delta := distanceM / EarthRadiusMeters
	theta := toRadians(bearingDeg)
	phi1 := toRadians(p.Latitude)
	lambda1 := toRadians(p.Longitude)

	sinPhi2 := math.Sin(phi1)*math.Cos(delta) + math.Cos(phi1)*math.Sin(delta)*math.Cos(theta)
	phi2 := math.Asin(math.Min(1, math.Max(-1, sinPhi2)))
	y := math.Sin(theta) * math.Sin(delta) * math.Cos(phi1)
	x := math.Cos(delta) - math.Sin(phi1)*sinPhi2
	lambda2 := lambda1 + math.Atan2(y, x)

	lon := math.Mod(toDegrees(lambda2)+540, 360) - 180
	return Point{Latitude: toDegrees(phi2), Longitude: lon}
}

// Outline returns a closed ring approximating the circle boundary with the
// given number of vertices. The first point is repeated at the end.
func (c Circle) Outline(vertices int) []Point {
	if vertices < 3 {
		vertices = 3
	}
	ring := make([]Point, 0, vertices+1)
	for i := 0; i < vertices; i++ {
		bearing := 360 * float64(i) / float64(vertices)
		ring = append(ring, c.Center.Destination(bearing, c.RadiusM))
	}
	return append(ring, ring[0])
}

// Centroid returns the arithmetic mean latitude and longitude of points.
// ok is false for an empty slice.
func Centroid(points []Point) (Point, bool) {
	if len(points) == 0 {
		return Point{}, false
	}
	var sumLat, sumLon float64
	for _, p := range points {
		sumLat += p.Latitude
		sumLon += p.Longitude
	}
	n := float64(len(points))
	return Point{Latitude: sumLat / n, Longitude: sumLon / n}, true
}
