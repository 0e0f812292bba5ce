package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/hotspot/internal/geo"
)

var testCenter = geo.Point{Latitude: 41.8781, Longitude: -87.6298}

// resetFlags restores every flag in the command tree to its default so
// package-level flag variables do not leak between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			var vals []string
			if def := strings.Trim(f.DefValue, "[]"); def != "" {
				vals = strings.Split(def, ",")
			}
			_ = sv.Replace(vals)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// runCLI executes the root command with args and returns stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	_, err := rootCmd.ExecuteContextC(context.Background())
	return out.String(), err
}

type testIncident struct {
	pt      geo.Point
	offense string
	date    string
}

// scatter places n incidents around center at distances spread evenly over
// [fromM, toM], alternating THEFT and ASSAULT and dating them in January or
// March 2024.
func scatter(center geo.Point, n int, fromM, toM float64) []testIncident {
	out := make([]testIncident, 0, n)
	for i := 0; i < n; i++ {
		d := fromM + (toM-fromM)*float64(i)/float64(n)
		inc := testIncident{
			pt:      center.Destination(float64(i)*137.5, d),
			offense: "THEFT",
			date:    "2024-01-15 12:00:00",
		}
		if i%2 == 1 {
			inc.offense = "ASSAULT"
			inc.date = "2024-03-15 12:00:00"
		}
		out = append(out, inc)
	}
	return out
}

// writeIncidentCSV writes incidents to a temp CSV and returns its path.
func writeIncidentCSV(t *testing.T, incidents []testIncident) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("lat,lon,offense_type,offensedateutc\n")
	for _, inc := range incidents {
		fmt.Fprintf(&b, "%.8f,%.8f,%s,%s\n", inc.pt.Latitude, inc.pt.Longitude, inc.offense, inc.date)
	}
	path := filepath.Join(t.TempDir(), "incidents.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

// concentricFixture has 30 incidents within 100-400 m of testCenter and 10
// between 600 and 1400 m.
func concentricFixture(t *testing.T) string {
	t.Helper()
	incidents := append(scatter(testCenter, 30, 100, 400), scatter(testCenter, 10, 600, 1400)...)
	return writeIncidentCSV(t, incidents)
}

func coord(v float64) string { return fmt.Sprintf("%.6f", v) }
