package ingest

import (
	"encoding/json"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/hotspot/internal/geo"
	"github.com/sells-group/hotspot/internal/incident"
)

// Recognised header names, lower-cased. Earlier entries win.
var (
	coordinateColumns = []string{"coordinates", "location"}
	latitudeColumns   = []string{"lat", "latitude", "y"}
	longitudeColumns  = []string{"lon", "lng", "longitude", "x"}
	offenseColumns    = []string{"offense_grouping", "offensecode", "offense_type", "primary_type", "offense"}
	dateColumns       = []string{"offensedateutc", "offense_date", "occurred_at", "date"}
)

// dbfNameLen is the longest field name a shapefile's DBF table can hold.
const dbfNameLen = 10

// Skip reasons.
const (
	skipNoCoordinates = "missing or invalid coordinates"
	skipNoDate        = "missing or invalid date"
)

// layout maps a header row to column positions. -1 means absent.
type layout struct {
	coord   int
	lat     int
	lon     int
	offense []int
	date    int
}

func newLayout(header []string) *layout {
	names := make([]string, len(header))
	idx := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		names[i] = name
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}

	// find matches a column exactly, or by the truncated form DBF headers
	// carry for names longer than dbfNameLen.
	find := func(n string) (int, bool) {
		if i, ok := idx[n]; ok {
			return i, true
		}
		for i, h := range names {
			if len(h) >= dbfNameLen && len(h) < len(n) && strings.HasPrefix(n, h) {
				return i, true
			}
		}
		return -1, false
	}

	first := func(cols []string) int {
		for _, n := range cols {
			if i, ok := find(n); ok {
				return i
			}
		}
		return -1
	}

	l := &layout{
		coord: first(coordinateColumns),
		lat:   first(latitudeColumns),
		lon:   first(longitudeColumns),
		date:  first(dateColumns),
	}
	for _, n := range offenseColumns {
		if i, ok := find(n); ok && !slices.Contains(l.offense, i) {
			l.offense = append(l.offense, i)
		}
	}
	return l
}

// record builds an incident from one row. fallback supplies coordinates from
// a geometry when the attributes carry none. A non-empty reason means the row
// was rejected.
func (l *layout) record(cells []string, fallback *geo.Point, opts Options) (incident.Record, string) {
	pt, ok := l.point(cells)
	if !ok && fallback != nil && usable(*fallback) {
		pt, ok = *fallback, true
	}
	if !ok {
		return incident.Record{}, skipNoCoordinates
	}

	rec := incident.Record{Point: pt, Offense: opts.DefaultOffense}
	for _, i := range l.offense {
		if v := cell(cells, i); v != "" {
			rec.Offense = v
			break
		}
	}

	if v := cell(cells, l.date); v != "" {
		if t, err := ParseTime(v); err == nil {
			rec.OccurredAt = t
		}
	}
	if opts.RequireDate && rec.OccurredAt.IsZero() {
		return incident.Record{}, skipNoDate
	}

	return rec, ""
}

// point resolves coordinates: a structured coordinates column first, then
// separate latitude and longitude columns.
func (l *layout) point(cells []string) (geo.Point, bool) {
	if raw := cell(cells, l.coord); raw != "" {
		if pt, ok := parseCoordinates(raw); ok {
			return pt, true
		}
	}

	lat, errLat := strconv.ParseFloat(cell(cells, l.lat), 64)
	lon, errLon := strconv.ParseFloat(cell(cells, l.lon), 64)
	if errLat != nil || errLon != nil {
		return geo.Point{}, false
	}
	pt := geo.Point{Latitude: lat, Longitude: lon}
	return pt, usable(pt)
}

// usable rejects out-of-range points and the 0,0 placeholder some exports
// write for ungeocoded incidents.
func usable(p geo.Point) bool {
	if math.IsInf(p.Latitude, 0) || math.IsInf(p.Longitude, 0) {
		return false
	}
	return p.Valid() && p.Latitude != 0 && p.Longitude != 0
}

// parseCoordinates reads objects like {'latitude': '41.88', 'longitude': '-87.63'}.
func parseCoordinates(raw string) (geo.Point, bool) {
	var m map[string]any
	if err := json.Unmarshal([]byte(strings.ReplaceAll(raw, "'", `"`)), &m); err != nil {
		return geo.Point{}, false
	}
	lat, okLat := toFloat(m["latitude"])
	lon, okLon := toFloat(m["longitude"])
	if !okLat || !okLon {
		return geo.Point{}, false
	}
	pt := geo.Point{Latitude: lat, Longitude: lon}
	return pt, usable(pt)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func cell(cells []string, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return strings.TrimSpace(strings.TrimRight(cells[i], "\x00"))
}

// timeLayouts are tried in order. Zone-less values are read as UTC.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.000",
	"2006-01-02 15:04:05.000",
	"01/02/2006 03:04:05 PM",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"2006-01-02",
}

// ParseTime parses an incident timestamp in any of the layouts seen in
// open-data exports.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, l := range timeLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, eris.Errorf("ingest: unrecognised time %q", s)
}
