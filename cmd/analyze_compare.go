package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/hotspot/internal/analysis"
	"github.com/sells-group/hotspot/internal/incident"
	"github.com/sells-group/hotspot/internal/report"
)

var (
	compareRadius  float64
	compareGeoJSON string
)

var (
	compareCenter1 = centerFlags{lat: "lat1", lon: "lon1", address: "address1"}
	compareCenter2 = centerFlags{lat: "lat2", lon: "lon2", address: "address2"}
)

var analyzeCompareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare the rates of two equally sized circles",
	Long: "Counts incidents within --radius meters of two centers and compares the first " +
		"area's rate with the second's. Incidents inside both circles count toward both.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := cfg.Validate("analyze"); err != nil {
			return err
		}

		format, err := report.ParseFormat(outputFormat)
		if err != nil {
			return err
		}

		gc := newGeocoder()
		c1, ok1, err := resolveCenter(ctx, cmd, compareCenter1, gc)
		if err != nil {
			return err
		}
		c2, ok2, err := resolveCenter(ctx, cmd, compareCenter2, gc)
		if err != nil {
			return err
		}
		if !ok1 || !ok2 {
			return eris.New("both centers are required: --lat1/--lon1 or --address1, and --lat2/--lon2 or --address2")
		}

		radius := orDefault(compareRadius, cfg.Analysis.ComparisonRadiusM)
		if err := analysis.ValidateComparison(c1, c2, radius); err != nil {
			return err
		}

		records, err := loadRecords(ctx)
		if err != nil {
			return err
		}
		points := incident.Points(records)

		res, ok := analysis.CompareAreas(points, c1, c2, radius)
		if !ok {
			zap.L().Warn("insufficient data for comparison",
				zap.Int("points", len(points)),
				zap.Float64("radius_m", radius),
			)
		}

		if err := report.WriteComparison(cmd.OutOrStdout(), format, res, ok); err != nil {
			return err
		}

		if compareGeoJSON != "" {
			if !ok {
				zap.L().Warn("skipping geojson export: no result", zap.String("path", compareGeoJSON))
				return nil
			}
			return writeGeoJSONFile(compareGeoJSON, report.ComparisonGeoJSON(res))
		}
		return nil
	},
}

func init() {
	f := analyzeCompareCmd.Flags()
	for _, c := range []centerFlags{compareCenter1, compareCenter2} {
		f.Float64(c.lat, 0, "center latitude")
		f.Float64(c.lon, 0, "center longitude")
		f.String(c.address, "", "center street address (geocoded)")
	}
	f.Float64Var(&compareRadius, "radius", 0, "circle radius in meters (default from config)")
	f.StringVar(&compareGeoJSON, "geojson", "", "also write circles and counts as GeoJSON to this file")
	analyzeCmd.AddCommand(analyzeCompareCmd)
}
