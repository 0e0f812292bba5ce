// Package incident holds ingested incident records and the offense and date
// filters applied before analysis.
package incident

import (
	"sort"
	"strings"
	"time"

	"github.com/sells-group/hotspot/internal/geo"
)

// UnknownOffense is the category given to records without one.
const UnknownOffense = "UNKNOWN"

// Record is one incident. Only Point is read by the analysis engine.
type Record struct {
	Point      geo.Point `json:"point" yaml:"point"`
	Offense    string    `json:"offense" yaml:"offense"`
	OccurredAt time.Time `json:"occurred_at,omitempty" yaml:"occurred_at,omitempty"`
}

// Category returns the record's offense, or UnknownOffense when blank.
func (r Record) Category() string {
	if o := strings.TrimSpace(r.Offense); o != "" {
		return o
	}
	return UnknownOffense
}

// Points projects records onto their coordinates.
func Points(records []Record) []geo.Point {
	pts := make([]geo.Point, len(records))
	for i, r := range records {
		pts[i] = r.Point
	}
	return pts
}

// OffenseCount is a category and the number of records carrying it.
type OffenseCount struct {
	Offense string `json:"offense" yaml:"offense"`
	Count   int    `json:"count" yaml:"count"`
}

// OffenseTypes returns the distinct categories in records, sorted by name.
func OffenseTypes(records []Record) []OffenseCount {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Category()]++
	}

	out := make([]OffenseCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, OffenseCount{Offense: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Offense < out[j].Offense })
	return out
}

// DateBounds returns the earliest and latest OccurredAt among dated records.
// ok is false when no record carries a timestamp.
func DateBounds(records []Record) (earliest, latest time.Time, ok bool) {
	for _, r := range records {
		if r.OccurredAt.IsZero() {
			continue
		}
		if !ok || r.OccurredAt.Before(earliest) {
			earliest = r.OccurredAt
		}
		if !ok || r.OccurredAt.After(latest) {
			latest = r.OccurredAt
		}
		ok = true
	}
	return earliest, latest, ok
}
