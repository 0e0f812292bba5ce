// Package analysis compares incident intensity between circular regions by
// wiring point counts into the Poisson rate-ratio test.
//
// Every function here is pure: inputs are never mutated and identical inputs
// produce identical results, so callers may recompute freely and from any
// goroutine.
package analysis

import (
	"github.com/sells-group/hotspot/internal/geo"
	"github.com/sells-group/hotspot/internal/ratetest"
)

// ConcentricResult compares an inner disk against the ring around it.
// Areas are in km^2 and rates in incidents per km^2.
type ConcentricResult struct {
	Center         geo.Point      `json:"center" yaml:"center"`
	InnerRadiusM   float64        `json:"inner_radius_m" yaml:"inner_radius_m"`
	OuterRadiusM   float64        `json:"outer_radius_m" yaml:"outer_radius_m"`
	InsideCount    int            `json:"inside_count" yaml:"inside_count"`
	OutsideCount   int            `json:"outside_count" yaml:"outside_count"`
	InsideAreaKM2  float64        `json:"inside_area_km2" yaml:"inside_area_km2"`
	OutsideAreaKM2 float64        `json:"outside_area_km2" yaml:"outside_area_km2"`
	Stats          ratetest.Stats `json:"stats" yaml:"stats"`
}

// InsideRate is the inner disk rate in incidents per km^2.
func (r ConcentricResult) InsideRate() float64 { return r.Stats.Rate1 }

// OutsideRate is the ring rate in incidents per km^2.
func (r ConcentricResult) OutsideRate() float64 { return r.Stats.Rate2 }

// AnalyzeConcentric counts points in the inner disk (distance <= innerM) and
// the ring (innerM < distance <= outerM) around center, then tests the inner
// rate against the ring rate.
//
// ok is false when either region has no points or either area is not
// positive, which includes innerM >= outerM.
func AnalyzeConcentric(points []geo.Point, center geo.Point, innerM, outerM float64) (ConcentricResult, bool) {
	innerArea := geo.Circle{Center: center, RadiusM: innerM}.AreaKM2()
	outerArea := geo.AnnulusAreaKM2(innerM, outerM)

	inside, outside := geo.CountConcentric(points, center, innerM, outerM)

	stats, ok := ratetest.Test(inside, innerArea, outside, outerArea)
	if !ok {
		return ConcentricResult{}, false
	}

	return ConcentricResult{
		Center:         center,
		InnerRadiusM:   innerM,
		OuterRadiusM:   outerM,
		InsideCount:    inside,
		OutsideCount:   outside,
		InsideAreaKM2:  innerArea,
		OutsideAreaKM2: outerArea,
		Stats:          stats,
	}, true
}

// ComparisonResult compares two equally sized circles.
type ComparisonResult struct {
	Center1      geo.Point      `json:"center1" yaml:"center1"`
	Center2      geo.Point      `json:"center2" yaml:"center2"`
	RadiusM      float64        `json:"radius_m" yaml:"radius_m"`
	Area1Count   int            `json:"area1_count" yaml:"area1_count"`
	Area2Count   int            `json:"area2_count" yaml:"area2_count"`
	Area1AreaKM2 float64        `json:"area1_area_km2" yaml:"area1_area_km2"`
	Area2AreaKM2 float64        `json:"area2_area_km2" yaml:"area2_area_km2"`
	Stats        ratetest.Stats `json:"stats" yaml:"stats"`
}

// Area1Rate is the first circle's rate in incidents per km^2.
func (r ComparisonResult) Area1Rate() float64 { return r.Stats.Rate1 }

// Area2Rate is the second circle's rate in incidents per km^2.
func (r ComparisonResult) Area2Rate() float64 { return r.Stats.Rate2 }

// CompareAreas counts points within radiusM of each center independently and
// tests the first circle's rate against the second's. Overlapping circles
// count shared points toward both.
//
// ok is false when either circle has no points or radiusM is not positive.
func CompareAreas(points []geo.Point, center1, center2 geo.Point, radiusM float64) (ComparisonResult, bool) {
	c1 := geo.Circle{Center: center1, RadiusM: radiusM}
	c2 := geo.Circle{Center: center2, RadiusM: radiusM}
	area := c1.AreaKM2()

	n1, n2 := geo.CountInCircles(points, c1, c2)

	stats, ok := ratetest.Test(n1, area, n2, area)
	if !ok {
		return ComparisonResult{}, false
	}

	return ComparisonResult{
		Center1:      center1,
		Center2:      center2,
		RadiusM:      radiusM,
		Area1Count:   n1,
		Area2Count:   n2,
		Area1AreaKM2: area,
		Area2AreaKM2: area,
		Stats:        stats,
	}, true
}
