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

// Package cutoff computes where the 90/10 training/validation boundary falls
// within an ordered set of row-counted files.
package cutoff

// FileRowInfo records the data-row count of one input file. The slice order
// passed to Locate defines the global row numbering, so callers must supply
// files in a stable total order.
type FileRowInfo struct {
	Path     string
	DataRows int64
}

// Location identifies the file containing the global cutoff row and the
// 1-based data-row index within that file. A cutoff of zero has no location;
// None reports that case.
type Location struct {
	FileIndex int
	RowInFile int64
}

// None is the sentinel location returned when the cutoff is zero.
var None = Location{FileIndex: -1, RowInFile: -1}

// IsNone reports whether l is the no-cutoff sentinel.
func (l Location) IsNone() bool {
	return l.FileIndex < 0
}

// Cutoff returns the 1-based global row index marking the end of the
// training side: 9/10 of total, floored by default or ceiled when roundUp
// is set. The result is always within [0, total].
func Cutoff(total int64, roundUp bool) int64 {
	if total <= 0 {
		return 0
	}
	raw := 9 * total
	if roundUp && raw%10 != 0 {
		return raw/10 + 1
	}
	return raw / 10
}

// Locate maps a global cutoff row index onto the file that contains it.
// It walks infos in order accumulating a running total; the first file whose
// cumulative count reaches the cutoff wins, and RowInFile is the cutoff's
// 1-based position within that file's data rows.
//
// A cutoff larger than the sum of all counts cannot arise from Cutoff, but
// is answered with the end of the last file rather than an invalid index.
func Locate(infos []FileRowInfo, cutoff int64) Location {
	if cutoff <= 0 || len(infos) == 0 {
		return None
	}

	var running int64
	for i, info := range infos {
		if running+info.DataRows >= cutoff {
			return Location{FileIndex: i, RowInFile: cutoff - running}
		}
		running += info.DataRows
	}

	last := len(infos) - 1
	return Location{FileIndex: last, RowInFile: infos[last].DataRows}
}
