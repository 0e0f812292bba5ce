package analysis

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/hotspot/internal/geo"
)

// RadiusPair is one inner/outer radius combination in meters.
type RadiusPair struct {
	InnerM float64 `json:"inner_radius_m" yaml:"inner_radius_m"`
	OuterM float64 `json:"outer_radius_m" yaml:"outer_radius_m"`
}

// SweepRow holds the concentric analysis for one radius pair. OK mirrors the
// second return of AnalyzeConcentric; Result is the zero value when false.
type SweepRow struct {
	RadiusPair `yaml:",inline"`
	OK         bool             `json:"sufficient" yaml:"sufficient"`
	Result     ConcentricResult `json:"result" yaml:"result"`
}

const defaultSweepConcurrency = 4

// Sweep runs AnalyzeConcentric for every radius pair around center, at most
// concurrency at a time. Rows are returned in the order of pairs. points is
// shared read-only across goroutines.
func Sweep(ctx context.Context, points []geo.Point, center geo.Point, pairs []RadiusPair, concurrency int) ([]SweepRow, error) {
	if concurrency <= 0 {
		concurrency = defaultSweepConcurrency
	}

	rows := make([]SweepRow, len(pairs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, pair := range pairs {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return eris.Wrap(err, "analysis: sweep cancelled")
			}
			res, ok := AnalyzeConcentric(points, center, pair.InnerM, pair.OuterM)
			rows[i] = SweepRow{RadiusPair: pair, OK: ok, Result: res}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	zap.L().Debug("analysis: sweep complete",
		zap.Int("pairs", len(pairs)),
		zap.Int("points", len(points)),
		zap.Int("concurrency", concurrency),
	)
	return rows, nil
}
