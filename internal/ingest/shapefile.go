package ingest

import (
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"

	"github.com/sells-group/hotspot/internal/geo"
)

// ReadShapefile parses a point shapefile. DBF attributes are matched against
// the same column names as CSV headers; the point geometry supplies the
// coordinates when the attributes do not.
func ReadShapefile(path string, opts Options) (*Result, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	fields := reader.Fields()
	header := make([]string, len(fields))
	for i, f := range fields {
		header[i] = strings.TrimRight(f.String(), "\x00")
	}

	c := newCollector(header, opts)
	for reader.Next() {
		_, shape := reader.Shape()

		cells := make([]string, len(fields))
		for i := range fields {
			cells[i] = reader.Attribute(i)
		}

		var fallback *geo.Point
		switch s := shape.(type) {
		case *shp.Point:
			fallback = &geo.Point{Latitude: s.Y, Longitude: s.X}
		case *shp.PointZ:
			fallback = &geo.Point{Latitude: s.Y, Longitude: s.X}
		case *shp.PointM:
			fallback = &geo.Point{Latitude: s.Y, Longitude: s.X}
		}

		c.add(cells, fallback)
	}

	return c.result()
}
