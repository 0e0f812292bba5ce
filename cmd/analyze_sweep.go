package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/hotspot/internal/analysis"
	"github.com/sells-group/hotspot/internal/geo"
	"github.com/sells-group/hotspot/internal/incident"
	"github.com/sells-group/hotspot/internal/report"
)

var (
	sweepInner       []float64
	sweepOuter       []float64
	sweepConcurrency int
)

var sweepCenter = centerFlags{lat: "lat", lon: "lon", address: "address"}

var analyzeSweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run the concentric analysis over many radius pairs",
	Long: "Evaluates every combination of --inner and --outer radii around one center. " +
		"Pairs whose inner radius is not smaller than the outer radius are skipped.",
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

		pairs := radiusPairs(sweepInner, sweepOuter)
		if len(pairs) == 0 {
			return eris.New("no valid radius pairs: every --inner must be smaller than some --outer")
		}

		records, err := loadRecords(ctx)
		if err != nil {
			return err
		}
		points := incident.Points(records)

		center, ok, err := resolveCenter(ctx, cmd, sweepCenter, newGeocoder())
		if err != nil {
			return err
		}
		if !ok {
			if center, ok = geo.Centroid(points); !ok {
				return eris.New("no center given and no records to derive one from")
			}
		}
		for _, p := range pairs {
			if err := analysis.ValidateConcentric(center, p.InnerM, p.OuterM); err != nil {
				return err
			}
		}

		concurrency := sweepConcurrency
		if concurrency <= 0 {
			concurrency = cfg.Analysis.SweepConcurrency
		}

		rows, err := analysis.Sweep(ctx, points, center, pairs, concurrency)
		if err != nil {
			return err
		}
		return report.WriteSweep(cmd.OutOrStdout(), format, rows)
	},
}

// radiusPairs crosses inner and outer radii, keeping pairs with inner < outer.
func radiusPairs(inner, outer []float64) []analysis.RadiusPair {
	var pairs []analysis.RadiusPair
	for _, o := range outer {
		for _, i := range inner {
			if i < o {
				pairs = append(pairs, analysis.RadiusPair{InnerM: i, OuterM: o})
			}
		}
	}
	return pairs
}

func init() {
	f := analyzeSweepCmd.Flags()
	f.Float64(sweepCenter.lat, 0, "center latitude")
	f.Float64(sweepCenter.lon, 0, "center longitude")
	f.String(sweepCenter.address, "", "center street address (geocoded)")
	f.Float64SliceVar(&sweepInner, "inner", []float64{250, 500, 750, 1000}, "inner radii in meters")
	f.Float64SliceVar(&sweepOuter, "outer", []float64{1500}, "outer radii in meters")
	f.IntVar(&sweepConcurrency, "concurrency", 0, "radius pairs evaluated at once (default from config)")
	analyzeCmd.AddCommand(analyzeSweepCmd)
}
