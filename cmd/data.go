package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"

	"github.com/sells-group/hotspot/internal/geo"
	"github.com/sells-group/hotspot/internal/incident"
	"github.com/sells-group/hotspot/internal/ingest"
	"github.com/sells-group/hotspot/internal/report"
	"github.com/sells-group/hotspot/internal/resilience"
	"github.com/sells-group/hotspot/pkg/geocode"
)

// Flags shared by every command that reads an incident file.
var (
	dataPath     string
	dataOffenses []string
	dataFrom     string
	dataTo       string
	outputFormat string
)

func addDataFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&dataPath, "data", "", "incident file (.csv, .xlsx, or .shp)")
	cmd.PersistentFlags().StringSliceVar(&dataOffenses, "offense", nil, "only include these offense categories (repeatable)")
	cmd.PersistentFlags().StringVar(&dataFrom, "from", "", "only include incidents on or after this date (YYYY-MM-DD)")
	cmd.PersistentFlags().StringVar(&dataTo, "to", "", "only include incidents on or before this date (YYYY-MM-DD)")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "text", "output format: text, json, or yaml")
}

func ingestOptions() ingest.Options {
	return ingest.Options{
		Encoding:       cfg.Ingest.Encoding,
		DefaultOffense: cfg.Ingest.DefaultOffense,
		RequireDate:    cfg.Ingest.RequireDate,
		SheetIndex:     cfg.Ingest.SheetIndex,
	}
}

// filterFromFlags builds the record filter. A date-only --to covers the
// whole day.
func filterFromFlags() (incident.Filter, error) {
	f := incident.Filter{Offenses: dataOffenses}
	if dataFrom != "" {
		t, err := ingest.ParseTime(dataFrom)
		if err != nil {
			return f, eris.Wrap(err, "parse --from")
		}
		f.From = t
	}
	if dataTo != "" {
		t, err := ingest.ParseTime(dataTo)
		if err != nil {
			return f, eris.Wrap(err, "parse --to")
		}
		if isDateOnly(dataTo) {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		f.To = t
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.From.After(f.To) {
		return f, eris.New("--from must not be after --to")
	}
	return f, nil
}

// isDateOnly reports whether s names a calendar day without a time of day.
func isDateOnly(s string) bool {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.DateOnly, "01/02/2006"} {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// loadRecords reads --data and applies the offense and date filters.
func loadRecords(ctx context.Context) ([]incident.Record, error) {
	if dataPath == "" {
		return nil, eris.New("--data is required")
	}
	filter, err := filterFromFlags()
	if err != nil {
		return nil, err
	}

	res, err := ingest.Load(ctx, dataPath, ingestOptions())
	if err != nil {
		return nil, eris.Wrapf(err, "load %s", dataPath)
	}

	records := filter.Apply(res.Records)
	if !filter.Empty() {
		zap.L().Info("applied filters",
			zap.Int("loaded", len(res.Records)),
			zap.Int("kept", len(records)),
			zap.Strings("offenses", filter.Offenses),
		)
	}
	return records, nil
}

func newGeocoder() geocode.Client {
	retry := resilience.DefaultPolicy()
	retry.Attempts = cfg.Geocode.MaxAttempts
	return geocode.NewClient(
		geocode.WithBaseURL(cfg.Geocode.BaseURL),
		geocode.WithBenchmark(cfg.Geocode.Benchmark),
		geocode.WithRateLimit(cfg.Geocode.RateLimit),
		geocode.WithTimeout(time.Duration(cfg.Geocode.TimeoutSecs)*time.Second),
		geocode.WithCache(),
		geocode.WithRetry(retry),
	)
}

// centerFlags names the flags that can supply one center point.
type centerFlags struct {
	lat, lon, address string
}

// resolveCenter reads a center from explicit coordinates or an address.
// ok is false when neither was given.
func resolveCenter(ctx context.Context, cmd *cobra.Command, names centerFlags, gc geocode.Client) (geo.Point, bool, error) {
	flags := cmd.Flags()
	hasLat, hasLon := flags.Changed(names.lat), flags.Changed(names.lon)
	address, _ := flags.GetString(names.address)

	switch {
	case hasLat || hasLon:
		if !hasLat || !hasLon {
			return geo.Point{}, false, eris.Errorf("--%s and --%s must be given together", names.lat, names.lon)
		}
		if address != "" {
			return geo.Point{}, false, eris.Errorf("use either --%s/--%s or --%s", names.lat, names.lon, names.address)
		}
		lat, _ := flags.GetFloat64(names.lat)
		lon, _ := flags.GetFloat64(names.lon)
		return geo.Point{Latitude: lat, Longitude: lon}, true, nil

	case address != "":
		r, err := gc.Geocode(ctx, address)
		if err != nil {
			return geo.Point{}, false, eris.Wrapf(err, "geocode %q", address)
		}
		if !r.Matched {
			return geo.Point{}, false, eris.Errorf("no geocoder match for %q", address)
		}
		zap.L().Info("geocoded address",
			zap.String("address", address),
			zap.String("matched", r.MatchedAddress),
			zap.Float64("lat", r.Latitude),
			zap.Float64("lon", r.Longitude),
		)
		return geo.Point{Latitude: r.Latitude, Longitude: r.Longitude}, true, nil

	default:
		return geo.Point{}, false, nil
	}
}

// orDefault returns v unless it is zero.
func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

func writeGeoJSONFile(path string, fc *geojson.FeatureCollection) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "create geojson file")
	}
	if err := report.WriteGeoJSON(f, fc); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return eris.Wrap(err, "close geojson file")
	}
	zap.L().Info("wrote geojson", zap.String("path", path))
	return nil
}
