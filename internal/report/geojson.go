package report

import (
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/sells-group/hotspot/internal/analysis"
	"github.com/sells-group/hotspot/internal/geo"
)

// OutlineVertices is the number of vertices used to approximate each circle.
const OutlineVertices = 64

// ConcentricGeoJSON builds a feature collection with the center, the inner
// disk, and the surrounding ring (as a polygon with a hole).
func ConcentricGeoJSON(res analysis.ConcentricResult) *geojson.FeatureCollection {
	inner := geo.Circle{Center: res.Center, RadiusM: res.InnerRadiusM}
	outer := geo.Circle{Center: res.Center, RadiusM: res.OuterRadiusM}

	return &geojson.FeatureCollection{Features: []*geojson.Feature{
		pointFeature(res.Center, map[string]any{"role": "center"}),
		polygonFeature(disk(inner), map[string]any{
			"role":     "inner",
			"radius_m": res.InnerRadiusM,
			"count":    res.InsideCount,
			"area_km2": res.InsideAreaKM2,
			"rate":     res.InsideRate(),
		}),
		polygonFeature(ring(outer, inner), map[string]any{
			"role":           "ring",
			"inner_radius_m": res.InnerRadiusM,
			"outer_radius_m": res.OuterRadiusM,
			"count":          res.OutsideCount,
			"area_km2":       res.OutsideAreaKM2,
			"rate":           res.OutsideRate(),
			"rate_ratio":     res.Stats.Ratio,
			"p_value":        res.Stats.PValue,
		}),
	}}
}

// ComparisonGeoJSON builds a feature collection with both centers and circles.
func ComparisonGeoJSON(res analysis.ComparisonResult) *geojson.FeatureCollection {
	c1 := geo.Circle{Center: res.Center1, RadiusM: res.RadiusM}
	c2 := geo.Circle{Center: res.Center2, RadiusM: res.RadiusM}

	return &geojson.FeatureCollection{Features: []*geojson.Feature{
		pointFeature(res.Center1, map[string]any{"role": "center", "area": 1}),
		pointFeature(res.Center2, map[string]any{"role": "center", "area": 2}),
		polygonFeature(disk(c1), map[string]any{
			"role":     "area",
			"area":     1,
			"radius_m": res.RadiusM,
			"count":    res.Area1Count,
			"area_km2": res.Area1AreaKM2,
			"rate":     res.Area1Rate(),
		}),
		polygonFeature(disk(c2), map[string]any{
			"role":     "area",
			"area":     2,
			"radius_m": res.RadiusM,
			"count":    res.Area2Count,
			"area_km2": res.Area2AreaKM2,
			"rate":     res.Area2Rate(),
		}),
	}}
}

// WriteGeoJSON encodes fc to w.
func WriteGeoJSON(w io.Writer, fc *geojson.FeatureCollection) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(fc), "report: encode geojson")
}

func pointFeature(p geo.Point, props map[string]any) *geojson.Feature {
	return &geojson.Feature{
		Geometry:   geom.NewPointFlat(geom.XY, []float64{p.Longitude, p.Latitude}),
		Properties: props,
	}
}

func polygonFeature(g *geom.Polygon, props map[string]any) *geojson.Feature {
	return &geojson.Feature{Geometry: g, Properties: props}
}

// disk returns the circle outline as a counterclockwise exterior ring.
func disk(c geo.Circle) *geom.Polygon {
	flat := flatRing(c.Outline(OutlineVertices), true)
	return geom.NewPolygonFlat(geom.XY, flat, []int{len(flat)})
}

// ring returns outer with inner cut out. Holes wind clockwise.
func ring(outer, inner geo.Circle) *geom.Polygon {
	flat := flatRing(outer.Outline(OutlineVertices), true)
	shell := len(flat)
	flat = append(flat, flatRing(inner.Outline(OutlineVertices), false)...)
	return geom.NewPolygonFlat(geom.XY, flat, []int{shell, len(flat)})
}

// flatRing converts an outline to lon/lat flat coordinates. Outlines run in
// increasing bearing, which is clockwise; ccw reverses them.
func flatRing(pts []geo.Point, ccw bool) []float64 {
	flat := make([]float64, 0, 2*len(pts))
	for i := range pts {
		p := pts[i]
		if ccw {
			p = pts[len(pts)-1-i]
		}
		flat = append(flat, p.Longitude, p.Latitude)
	}
	return flat
}
