// Copyright (C) 2025 CardinalHQ, Inc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, version 3.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

// Package splitter divides one CSV file's data rows into a before-cutoff
// file and an at-or-after-cutoff file.
package splitter

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"

	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"
)

var (
	// ErrRead indicates the source file could not be opened or parsed.
	ErrRead = errors.New("read failure")
	// ErrWrite indicates an output file could not be created or written.
	ErrWrite = errors.New("write failure")
)

// Result reports how many data rows landed on each side of the cutoff.
// BeforeRows + AfterRows always equals the source file's data-row count.
type Result struct {
	BeforeRows int64
	AfterRows  int64
}

// Split reads every record of the CSV at path and writes two derived files.
// Data rows strictly before rowInFile (1-based) go to beforePath, the rest to
// afterPath. When hasHeader is set the first record is reused verbatim as the
// header of both outputs.
//
// rowInFile is clamped to [1, n+1] where n is the data-row count, so an
// out-of-range index still yields a well-formed split: 1 sends everything to
// the after side, n+1 sends everything to the before side.
func Split(ctx context.Context, path string, hasHeader bool, rowInFile int64, beforePath, afterPath string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("%w: open %s: %w", ErrRead, path, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return Result{}, fmt.Errorf("%w: parse %s: %w", ErrRead, path, err)
	}

	var header []string
	dataRows := records
	if hasHeader && len(records) > 0 {
		header = records[0]
		dataRows = records[1:]
	}

	n := int64(len(dataRows))
	k := rowInFile
	if k < 1 {
		k = 1
	}
	if k > n+1 {
		k = n + 1
	}

	before := dataRows[:k-1]
	after := dataRows[k-1:]

	if err := writeCSV(beforePath, header, before); err != nil {
		return Result{}, err
	}
	if err := writeCSV(afterPath, header, after); err != nil {
		return Result{}, err
	}

	rowsSplitCounter.Add(ctx, n, otelmetric.WithAttributes(
		attribute.String("component", "splitter"),
	))

	return Result{BeforeRows: int64(len(before)), AfterRows: int64(len(after))}, nil
}

// writeCSV writes an optional header followed by rows, with the same quoting
// rules encoding/csv applies on input.
func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrWrite, path, err)
	}

	w := csv.NewWriter(f)
	if header != nil {
		if err := w.Write(header); err != nil {
			_ = f.Close()
			return fmt.Errorf("%w: write %s: %w", ErrWrite, path, err)
		}
	}
	if err := w.WriteAll(rows); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: write %s: %w", ErrWrite, path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: flush %s: %w", ErrWrite, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrWrite, path, err)
	}
	return nil
}
