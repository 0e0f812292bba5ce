package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/hotspot/internal/report"
	"github.com/sells-group/hotspot/pkg/geocode"
)

// geocodeRow pairs an input address with its lookup result.
type geocodeRow struct {
	Address        string `json:"address" yaml:"address"`
	geocode.Result `yaml:",inline"`
}

var geocodeCmd = &cobra.Command{
	Use:   "geocode ADDRESS...",
	Short: "Look up coordinates for street addresses",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		format, err := report.ParseFormat(outputFormat)
		if err != nil {
			return err
		}
		if err := cfg.Validate("geocode"); err != nil {
			return err
		}

		gc := newGeocoder()
		rows := make([]geocodeRow, 0, len(args))
		for _, addr := range args {
			r, err := gc.Geocode(ctx, addr)
			if err != nil {
				return eris.Wrapf(err, "geocode %q", addr)
			}
			rows = append(rows, geocodeRow{Address: addr, Result: *r})
		}

		out := cmd.OutOrStdout()
		switch format {
		case report.FormatJSON:
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(rows)
		case report.FormatYAML:
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(rows); err != nil {
				return eris.Wrap(err, "encode yaml")
			}
			return enc.Close()
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "ADDRESS\tMATCHED\tLAT\tLON")
		_, _ = fmt.Fprintln(w, "-------\t-------\t---\t---")
		for _, r := range rows {
			if !r.Matched {
				_, _ = fmt.Fprintf(w, "%s\t(no match)\t-\t-\n", r.Address)
				continue
			}
			_, _ = fmt.Fprintf(w, "%s\t%s\t%.6f\t%.6f\n", r.Address, r.MatchedAddress, r.Latitude, r.Longitude)
		}
		return w.Flush()
	},
}

func init() {
	geocodeCmd.Flags().StringVar(&outputFormat, "format", "text", "output format: text, json, or yaml")
	rootCmd.AddCommand(geocodeCmd)
}
