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

package splitter

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInput(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readRecords(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)
	return records
}

func TestSplit(t *testing.T) {
	input := "name,age\nr1,1\nr2,2\nr3,3\nr4,4\nr5,5\n"

	tests := []struct {
		name       string
		rowInFile  int64
		wantBefore int64
		wantAfter  int64
	}{
		{name: "middle", rowInFile: 4, wantBefore: 3, wantAfter: 2},
		{name: "first row", rowInFile: 1, wantBefore: 0, wantAfter: 5},
		{name: "past last row", rowInFile: 6, wantBefore: 5, wantAfter: 0},
		{name: "clamped low", rowInFile: -10, wantBefore: 0, wantAfter: 5},
		{name: "clamped high", rowInFile: 99, wantBefore: 5, wantAfter: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			src := writeInput(t, dir, input)
			beforePath := filepath.Join(dir, "before.csv")
			afterPath := filepath.Join(dir, "after.csv")

			res, err := Split(context.Background(), src, true, tt.rowInFile, beforePath, afterPath)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBefore, res.BeforeRows)
			assert.Equal(t, tt.wantAfter, res.AfterRows)
			assert.Equal(t, int64(5), res.BeforeRows+res.AfterRows)

			before := readRecords(t, beforePath)
			after := readRecords(t, afterPath)

			// Both outputs carry the shared header.
			require.NotEmpty(t, before)
			require.NotEmpty(t, after)
			assert.Equal(t, []string{"name", "age"}, before[0])
			assert.Equal(t, []string{"name", "age"}, after[0])

			// Concatenating both data-row subsets reproduces the original.
			var combined [][]string
			combined = append(combined, before[1:]...)
			combined = append(combined, after[1:]...)
			require.Len(t, combined, 5)
			for i, rec := range combined {
				assert.Equal(t, []string{fmt.Sprintf("r%d", i+1), fmt.Sprintf("%d", i+1)}, rec)
			}
		})
	}
}

func TestSplitNoHeader(t *testing.T) {
	dir := t.TempDir()
	src := writeInput(t, dir, "a,1\nb,2\nc,3\n")
	beforePath := filepath.Join(dir, "before.csv")
	afterPath := filepath.Join(dir, "after.csv")

	res, err := Split(context.Background(), src, false, 2, beforePath, afterPath)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.BeforeRows)
	assert.Equal(t, int64(2), res.AfterRows)

	assert.Equal(t, [][]string{{"a", "1"}}, readRecords(t, beforePath))
	assert.Equal(t, [][]string{{"b", "2"}, {"c", "3"}}, readRecords(t, afterPath))
}

func TestSplitQuotedRows(t *testing.T) {
	dir := t.TempDir()
	src := writeInput(t, dir, "name,notes\nAlice,\"line one\nline two\"\nBob,\"has, comma\"\n")
	beforePath := filepath.Join(dir, "before.csv")
	afterPath := filepath.Join(dir, "after.csv")

	res, err := Split(context.Background(), src, true, 2, beforePath, afterPath)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.BeforeRows)
	assert.Equal(t, int64(1), res.AfterRows)

	before := readRecords(t, beforePath)
	require.Len(t, before, 2)
	assert.Equal(t, []string{"Alice", "line one\nline two"}, before[1])

	after := readRecords(t, afterPath)
	require.Len(t, after, 2)
	assert.Equal(t, []string{"Bob", "has, comma"}, after[1])
}

func TestSplitEmptyFile(t *testing.T) {
	dir := t.TempDir()
	src := writeInput(t, dir, "")
	beforePath := filepath.Join(dir, "before.csv")
	afterPath := filepath.Join(dir, "after.csv")

	res, err := Split(context.Background(), src, true, 1, beforePath, afterPath)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.BeforeRows)
	assert.Equal(t, int64(0), res.AfterRows)

	// No header to carry, so both outputs are empty files.
	assert.Empty(t, readRecords(t, beforePath))
	assert.Empty(t, readRecords(t, afterPath))
}

func TestSplitMissingSource(t *testing.T) {
	dir := t.TempDir()
	_, err := Split(context.Background(), filepath.Join(dir, "nope.csv"), true, 1,
		filepath.Join(dir, "b.csv"), filepath.Join(dir, "a.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRead)
}

func TestSplitUnwritableOutput(t *testing.T) {
	dir := t.TempDir()
	src := writeInput(t, dir, "h\nr1\n")

	_, err := Split(context.Background(), src, true, 1,
		filepath.Join(dir, "missing", "b.csv"), filepath.Join(dir, "a.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWrite)
	assert.True(t, strings.Contains(err.Error(), "create"))
}
