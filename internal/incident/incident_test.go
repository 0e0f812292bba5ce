package incident

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/hotspot/internal/geo"
)

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 12, 0, 0, 0, time.UTC)
}

func sampleRecords() []Record {
	return []Record{
		{Point: geo.Point{Latitude: 41.88, Longitude: -87.63}, Offense: "THEFT", OccurredAt: day(1)},
		{Point: geo.Point{Latitude: 41.89, Longitude: -87.62}, Offense: "BATTERY", OccurredAt: day(5)},
		{Point: geo.Point{Latitude: 41.87, Longitude: -87.64}, Offense: "theft", OccurredAt: day(10)},
		{Point: geo.Point{Latitude: 41.86, Longitude: -87.65}, Offense: "", OccurredAt: day(15)},
		{Point: geo.Point{Latitude: 41.85, Longitude: -87.66}, Offense: "NARCOTICS"},
	}
}

func TestRecord_Category(t *testing.T) {
	assert.Equal(t, "THEFT", Record{Offense: "THEFT"}.Category())
	assert.Equal(t, UnknownOffense, Record{}.Category())
	assert.Equal(t, UnknownOffense, Record{Offense: "   "}.Category())
}

func TestPoints(t *testing.T) {
	records := sampleRecords()
	pts := Points(records)
	require.Len(t, pts, len(records))
	for i := range records {
		assert.Equal(t, records[i].Point, pts[i])
	}
	assert.Empty(t, Points(nil))
}

func TestOffenseTypes(t *testing.T) {
	got := OffenseTypes(sampleRecords())
	assert.Equal(t, []OffenseCount{
		{Offense: "BATTERY", Count: 1},
		{Offense: "NARCOTICS", Count: 1},
		{Offense: "THEFT", Count: 1},
		{Offense: "UNKNOWN", Count: 1},
		{Offense: "theft", Count: 1},
	}, got)
}

func TestDateBounds(t *testing.T) {
	earliest, latest, ok := DateBounds(sampleRecords())
	require.True(t, ok)
	assert.Equal(t, day(1), earliest)
	assert.Equal(t, day(15), latest)

	_, _, ok = DateBounds([]Record{{Offense: "X"}})
	assert.False(t, ok)
}
