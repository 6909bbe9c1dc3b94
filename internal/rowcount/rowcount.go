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

// Package rowcount counts data rows in delimited text files.
package rowcount

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"
)

// ErrRead indicates a file could not be opened or parsed as delimited text.
var ErrRead = errors.New("read failure")

// Count returns the number of data rows in the CSV file at path. Records are
// counted with full quoting semantics, so quoted fields may contain embedded
// delimiters and newlines without inflating the count. When hasHeader is set
// and the file has at least one record, the first record is excluded.
func Count(ctx context.Context, path string, hasHeader bool) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: open %s: %w", ErrRead, path, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	var records int64
	for {
		if _, err := reader.Read(); err != nil {
			if err == io.EOF {
				break
			}
			return 0, fmt.Errorf("%w: parse %s: %w", ErrRead, path, err)
		}
		records++
	}

	rowsScannedCounter.Add(ctx, records, otelmetric.WithAttributes(
		attribute.String("component", "rowcount"),
	))

	if hasHeader && records > 0 {
		return records - 1, nil
	}
	return records, nil
}
