// Package ingest loads incident records from CSV, XLSX, and point shapefile
// exports, recognising the column layouts common to police open-data portals.
package ingest

import (
	"context"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/hotspot/internal/geo"
	"github.com/sells-group/hotspot/internal/incident"
)

// ErrNoRecords is returned when a source yields no usable records.
var ErrNoRecords = eris.New("ingest: no usable records")

// Options configures record parsing.
type Options struct {
	// Encoding is a WHATWG charset label for CSV input (e.g. "windows-1252").
	// Empty or "utf-8" reads the bytes as-is.
	Encoding string

	// DefaultOffense is used when a row has no offense column value.
	// Default: incident.UnknownOffense.
	DefaultOffense string

	// RequireDate skips rows without a parseable timestamp.
	RequireDate bool

	// SheetIndex selects the XLSX worksheet. Default: 0.
	SheetIndex int
}

// Result is the outcome of a load.
type Result struct {
	Records []incident.Record
	Skipped int
}

// Load reads path, choosing the parser by file extension.
func Load(ctx context.Context, path string, opts Options) (*Result, error) {
	var (
		res *Result
		err error
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".txt":
		res, err = readCSVFile(ctx, path, opts)
	case ".xlsx":
		res, err = ReadXLSX(ctx, path, opts)
	case ".shp":
		res, err = ReadShapefile(path, opts)
	default:
		return nil, eris.Errorf("ingest: unsupported file type %q", ext)
	}
	if err != nil {
		return nil, err
	}

	zap.L().Info("ingest: loaded records",
		zap.String("path", path),
		zap.Int("records", len(res.Records)),
		zap.Int("skipped", res.Skipped),
	)
	return res, nil
}

// collector accumulates parsed rows into a Result.
type collector struct {
	layout  *layout
	opts    Options
	res     Result
	reasons map[string]int
}

func newCollector(header []string, opts Options) *collector {
	if opts.DefaultOffense == "" {
		opts.DefaultOffense = incident.UnknownOffense
	}
	return &collector{layout: newLayout(header), opts: opts, reasons: make(map[string]int)}
}

func (c *collector) add(cells []string, fallback *geo.Point) {
	rec, reason := c.layout.record(cells, fallback, c.opts)
	if reason != "" {
		c.res.Skipped++
		c.reasons[reason]++
		zap.L().Debug("ingest: skipped row", zap.String("reason", reason))
		return
	}
	c.res.Records = append(c.res.Records, rec)
}

func (c *collector) result() (*Result, error) {
	if len(c.res.Records) == 0 {
		if c.res.Skipped == 0 {
			return nil, ErrNoRecords
		}
		reasons := make([]string, 0, len(c.reasons))
		for _, r := range slices.Sorted(maps.Keys(c.reasons)) {
			reasons = append(reasons, fmt.Sprintf("%d %s", c.reasons[r], r))
		}
		return nil, eris.Wrapf(ErrNoRecords, "all %d rows skipped: %s", c.res.Skipped, strings.Join(reasons, ", "))
	}
	return &c.res, nil
}
