package ingest

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/htmlindex"
)

func readCSVFile(ctx context.Context, path string, opts Options) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "ingest: open csv")
	}
	defer f.Close() //nolint:errcheck

	return ReadCSV(ctx, f, opts)
}

// ReadCSV parses a header-first CSV stream into incident records.
func ReadCSV(ctx context.Context, r io.Reader, opts Options) (*Result, error) {
	decoded, err := decodeCharset(r, opts.Encoding)
	if err != nil {
		return nil, err
	}

	rowCh, errCh := streamCSV(ctx, decoded)

	var c *collector
	for row := range rowCh {
		if c == nil {
			c = newCollector(row, opts)
			continue
		}
		c.add(row, nil)
	}
	if err := <-errCh; err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNoRecords
	}
	return c.result()
}

func decodeCharset(r io.Reader, label string) (io.Reader, error) {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" || label == "utf-8" || label == "utf8" {
		return r, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: unsupported charset %q", label)
	}
	return enc.NewDecoder().Reader(r), nil
}

// streamCSV reads records and sends them to a channel. The caller must drain
// the row channel; both channels are closed when reading stops.
func streamCSV(ctx context.Context, r io.Reader) (<-chan []string, <-chan error) {
	rowCh := make(chan []string, 64)
	errCh := make(chan error, 1)

	go func() {
		defer close(rowCh)
		defer close(errCh)

		reader := csv.NewReader(r)
		reader.FieldsPerRecord = -1 // allow ragged rows
		reader.LazyQuotes = true

		for {
			if ctx.Err() != nil {
				errCh <- eris.Wrap(ctx.Err(), "ingest: csv context cancelled")
				return
			}

			record, err := reader.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				errCh <- eris.Wrap(err, "ingest: read csv row")
				return
			}

			if isBlank(record) {
				continue
			}

			select {
			case rowCh <- record:
			case <-ctx.Done():
				errCh <- eris.Wrap(ctx.Err(), "ingest: csv context cancelled")
				return
			}
		}
	}()

	return rowCh, errCh
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
