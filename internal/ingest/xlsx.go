package ingest

import (
	"context"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// ReadXLSX parses a worksheet whose first row is the header.
func ReadXLSX(ctx context.Context, path string, opts Options) (*Result, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "ingest: open xlsx")
	}

	if opts.SheetIndex < 0 || opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("ingest: sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(f.Sheets))
	}
	sheet := f.Sheets[opts.SheetIndex]

	var c *collector
	for _, row := range sheet.Rows {
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "ingest: xlsx context cancelled")
		}
		if row == nil {
			continue
		}

		cells := rowToStrings(row)
		if isBlank(cells) {
			continue
		}
		if c == nil {
			c = newCollector(cells, opts)
			continue
		}

		excelDateToRFC3339(cells, c.layout.date)
		c.add(cells, nil)
	}

	if c == nil {
		return nil, ErrNoRecords
	}
	return c.result()
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}

// excelDateToRFC3339 rewrites a serial date number in the date column into an
// RFC 3339 string so ParseTime can read it.
func excelDateToRFC3339(cells []string, i int) {
	v := cell(cells, i)
	if v == "" {
		return
	}
	if _, err := ParseTime(v); err == nil {
		return
	}
	serial, err := strconv.ParseFloat(v, 64)
	if err != nil || serial <= 0 {
		return
	}
	cells[i] = xlsx.TimeFromExcelTime(serial, false).UTC().Format(time.RFC3339)
}
