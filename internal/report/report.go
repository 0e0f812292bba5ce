// Package report renders analysis results as text, JSON, YAML, and GeoJSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/hotspot/internal/analysis"
	"github.com/sells-group/hotspot/internal/incident"
)

// Format selects an output encoding.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// InsufficientData is printed in text output when a test has no basis.
const InsufficientData = "insufficient data for analysis"

// ParseFormat validates a --format value. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", eris.Errorf("report: unknown format %q (want text, json, or yaml)", s)
	}
}

// ConcentricReport is the structured form of a concentric analysis. Result is
// nil when Sufficient is false.
type ConcentricReport struct {
	Sufficient  bool                       `json:"sufficient" yaml:"sufficient"`
	Direction   analysis.Direction         `json:"direction,omitempty" yaml:"direction,omitempty"`
	Significant bool                       `json:"significant" yaml:"significant"`
	Summary     string                     `json:"summary,omitempty" yaml:"summary,omitempty"`
	Result      *analysis.ConcentricResult `json:"result" yaml:"result"`
}

// Concentric wraps the outcome of analysis.AnalyzeConcentric.
func Concentric(res analysis.ConcentricResult, ok bool) ConcentricReport {
	if !ok {
		return ConcentricReport{}
	}
	return ConcentricReport{
		Sufficient:  true,
		Direction:   res.Direction(),
		Significant: analysis.Significant(res.Stats.PValue),
		Summary:     res.Summary(),
		Result:      &res,
	}
}

// ComparisonReport is the structured form of a two-area comparison. Result is
// nil when Sufficient is false.
type ComparisonReport struct {
	Sufficient  bool                       `json:"sufficient" yaml:"sufficient"`
	Direction   analysis.Direction         `json:"direction,omitempty" yaml:"direction,omitempty"`
	Significant bool                       `json:"significant" yaml:"significant"`
	Summary     string                     `json:"summary,omitempty" yaml:"summary,omitempty"`
	Result      *analysis.ComparisonResult `json:"result" yaml:"result"`
}

// Comparison wraps the outcome of analysis.CompareAreas.
func Comparison(res analysis.ComparisonResult, ok bool) ComparisonReport {
	if !ok {
		return ComparisonReport{}
	}
	return ComparisonReport{
		Sufficient:  true,
		Direction:   res.Direction(),
		Significant: analysis.Significant(res.Stats.PValue),
		Summary:     res.Summary(),
		Result:      &res,
	}
}

// WriteConcentric renders a concentric analysis.
func WriteConcentric(w io.Writer, f Format, res analysis.ConcentricResult, ok bool) error {
	if f != FormatText {
		return encode(w, f, Concentric(res, ok))
	}
	if !ok {
		_, err := fmt.Fprintln(w, InsufficientData)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Center:\t%.6f, %.6f\n", res.Center.Latitude, res.Center.Longitude)
	_, _ = fmt.Fprintf(tw, "Inner radius:\t%.0f m\n", res.InnerRadiusM)
	_, _ = fmt.Fprintf(tw, "Outer radius:\t%.0f m\n", res.OuterRadiusM)
	_, _ = fmt.Fprintf(tw, "Inside incidents:\t%d (%.3f km²)\n", res.InsideCount, res.InsideAreaKM2)
	_, _ = fmt.Fprintf(tw, "Outside incidents:\t%d (%.3f km²)\n", res.OutsideCount, res.OutsideAreaKM2)
	_, _ = fmt.Fprintf(tw, "Inside rate:\t%.3f per km²\n", res.InsideRate())
	_, _ = fmt.Fprintf(tw, "Outside rate:\t%.3f per km²\n", res.OutsideRate())
	writeStats(tw, res.Stats.Ratio, res.Stats.PValue, res.Stats.CILow, res.Stats.CIHigh)
	if err := tw.Flush(); err != nil {
		return eris.Wrap(err, "report: flush")
	}
	_, err := fmt.Fprintf(w, "\n%s\n", res.Summary())
	return err
}

// WriteComparison renders a two-area comparison.
func WriteComparison(w io.Writer, f Format, res analysis.ComparisonResult, ok bool) error {
	if f != FormatText {
		return encode(w, f, Comparison(res, ok))
	}
	if !ok {
		_, err := fmt.Fprintln(w, InsufficientData)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Area 1 center:\t%.6f, %.6f\n", res.Center1.Latitude, res.Center1.Longitude)
	_, _ = fmt.Fprintf(tw, "Area 2 center:\t%.6f, %.6f\n", res.Center2.Latitude, res.Center2.Longitude)
	_, _ = fmt.Fprintf(tw, "Radius:\t%.0f m\n", res.RadiusM)
	_, _ = fmt.Fprintf(tw, "Area 1 incidents:\t%d (%.3f km²)\n", res.Area1Count, res.Area1AreaKM2)
	_, _ = fmt.Fprintf(tw, "Area 2 incidents:\t%d (%.3f km²)\n", res.Area2Count, res.Area2AreaKM2)
	_, _ = fmt.Fprintf(tw, "Area 1 rate:\t%.3f per km²\n", res.Area1Rate())
	_, _ = fmt.Fprintf(tw, "Area 2 rate:\t%.3f per km²\n", res.Area2Rate())
	writeStats(tw, res.Stats.Ratio, res.Stats.PValue, res.Stats.CILow, res.Stats.CIHigh)
	if err := tw.Flush(); err != nil {
		return eris.Wrap(err, "report: flush")
	}
	_, err := fmt.Fprintf(w, "\n%s\n", res.Summary())
	return err
}

func writeStats(tw io.Writer, ratio, p, lo, hi float64) {
	_, _ = fmt.Fprintf(tw, "Rate ratio:\t%.3f\n", ratio)
	_, _ = fmt.Fprintf(tw, "p-value:\t%.4g\n", p)
	_, _ = fmt.Fprintf(tw, "95%% CI:\t[%.3f, %.3f]\n", lo, hi)
	_, _ = fmt.Fprintf(tw, "Significant (p < %.2f):\t%s\n", analysis.SignificanceLevel, yesNo(analysis.Significant(p)))
}

// WriteSweep renders a radius sweep, one row per pair.
func WriteSweep(w io.Writer, f Format, rows []analysis.SweepRow) error {
	if f != FormatText {
		return encode(w, f, rows)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "INNER_M\tOUTER_M\tINSIDE\tOUTSIDE\tRATIO\tP_VALUE\tSIGNIFICANT")
	_, _ = fmt.Fprintln(tw, "-------\t-------\t------\t-------\t-----\t-------\t-----------")
	for _, r := range rows {
		if !r.OK {
			_, _ = fmt.Fprintf(tw, "%.0f\t%.0f\t-\t-\t-\t-\t%s\n", r.InnerM, r.OuterM, InsufficientData)
			continue
		}
		s := r.Result.Stats
		_, _ = fmt.Fprintf(tw, "%.0f\t%.0f\t%d\t%d\t%.3f\t%.4g\t%s\n",
			r.InnerM, r.OuterM,
			r.Result.InsideCount, r.Result.OutsideCount,
			s.Ratio, s.PValue, yesNo(analysis.Significant(s.PValue)),
		)
	}
	return eris.Wrap(tw.Flush(), "report: flush")
}

// OffenseSummary lists offense categories and the dated span of a data set.
type OffenseSummary struct {
	Total    int                     `json:"total" yaml:"total"`
	Offenses []incident.OffenseCount `json:"offenses" yaml:"offenses"`
	Earliest *time.Time              `json:"earliest,omitempty" yaml:"earliest,omitempty"`
	Latest   *time.Time              `json:"latest,omitempty" yaml:"latest,omitempty"`
}

// Offenses summarises records for the offenses command.
func Offenses(records []incident.Record) OffenseSummary {
	s := OffenseSummary{Total: len(records), Offenses: incident.OffenseTypes(records)}
	if earliest, latest, ok := incident.DateBounds(records); ok {
		s.Earliest, s.Latest = &earliest, &latest
	}
	return s
}

// WriteOffenses renders an offense summary.
func WriteOffenses(w io.Writer, f Format, s OffenseSummary) error {
	if f != FormatText {
		return encode(w, f, s)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "OFFENSE\tCOUNT")
	_, _ = fmt.Fprintln(tw, "-------\t-----")
	for _, o := range s.Offenses {
		_, _ = fmt.Fprintf(tw, "%s\t%d\n", o.Offense, o.Count)
	}
	_, _ = fmt.Fprintf(tw, "\nTotal records:\t%d\n", s.Total)
	if s.Earliest != nil {
		_, _ = fmt.Fprintf(tw, "Date range:\t%s to %s\n",
			s.Earliest.Format("2006-01-02"), s.Latest.Format("2006-01-02"))
	}
	return eris.Wrap(tw.Flush(), "report: flush")
}

func encode(w io.Writer, f Format, v any) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(v), "report: encode json")
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return eris.Wrap(err, "report: encode yaml")
		}
		return eris.Wrap(enc.Close(), "report: close yaml encoder")
	default:
		return eris.Errorf("report: unsupported format %q", f)
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
