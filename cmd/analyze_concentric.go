package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/hotspot/internal/analysis"
	"github.com/sells-group/hotspot/internal/geo"
	"github.com/sells-group/hotspot/internal/incident"
	"github.com/sells-group/hotspot/internal/report"
)

var (
	concentricInner   float64
	concentricOuter   float64
	concentricGeoJSON string
)

var concentricCenter = centerFlags{lat: "lat", lon: "lon", address: "address"}

var analyzeConcentricCmd = &cobra.Command{
	Use:   "concentric",
	Short: "Compare the rate inside a circle with the ring around it",
	Long: "Counts incidents within --inner meters of the center and between --inner and --outer " +
		"meters, then compares the two rates. Without a center the centroid of the data is used.",
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

		records, err := loadRecords(ctx)
		if err != nil {
			return err
		}
		points := incident.Points(records)

		center, ok, err := resolveCenter(ctx, cmd, concentricCenter, newGeocoder())
		if err != nil {
			return err
		}
		if !ok {
			center, ok = geo.Centroid(points)
			if !ok {
				return eris.New("no center given and no records to derive one from")
			}
			zap.L().Info("using data centroid as center",
				zap.Float64("lat", center.Latitude),
				zap.Float64("lon", center.Longitude),
			)
		}

		inner := orDefault(concentricInner, cfg.Analysis.InnerRadiusM)
		outer := orDefault(concentricOuter, cfg.Analysis.OuterRadiusM)
		if err := analysis.ValidateConcentric(center, inner, outer); err != nil {
			return err
		}

		res, ok := analysis.AnalyzeConcentric(points, center, inner, outer)
		if !ok {
			zap.L().Warn("insufficient data for concentric analysis",
				zap.Int("points", len(points)),
				zap.Float64("inner_m", inner),
				zap.Float64("outer_m", outer),
			)
		}

		if err := report.WriteConcentric(cmd.OutOrStdout(), format, res, ok); err != nil {
			return err
		}

		if concentricGeoJSON != "" {
			if !ok {
				zap.L().Warn("skipping geojson export: no result", zap.String("path", concentricGeoJSON))
				return nil
			}
			return writeGeoJSONFile(concentricGeoJSON, report.ConcentricGeoJSON(res))
		}
		return nil
	},
}

func init() {
	f := analyzeConcentricCmd.Flags()
	f.Float64(concentricCenter.lat, 0, "center latitude")
	f.Float64(concentricCenter.lon, 0, "center longitude")
	f.String(concentricCenter.address, "", "center street address (geocoded)")
	f.Float64Var(&concentricInner, "inner", 0, "inner radius in meters (default from config)")
	f.Float64Var(&concentricOuter, "outer", 0, "outer radius in meters (default from config)")
	f.StringVar(&concentricGeoJSON, "geojson", "", "also write circles and counts as GeoJSON to this file")
	analyzeCmd.AddCommand(analyzeConcentricCmd)
}
