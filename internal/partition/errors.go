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

package partition

import "errors"

var (
	// ErrConfig indicates an invalid or missing input directory or option.
	ErrConfig = errors.New("invalid configuration")
	// ErrEmptyInput indicates the input directory holds no eligible CSV files.
	ErrEmptyInput = errors.New("no eligible input files")
	// ErrZeroRows indicates the inputs hold no data rows to partition.
	ErrZeroRows = errors.New("zero data rows")
)
