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

// Package idgen issues run identifiers used to correlate logs and manifests.
package idgen

import (
	"math/rand"
	"sync"
	"time"

	"github.com/sony/sonyflake"
)

var (
	once  sync.Once
	flake *sonyflake.Sonyflake
)

// NextRunID returns a positive int64 unique to this run, roughly increasing
// in time order. Falls back to a random value if the flake generator cannot
// be built (e.g., no usable machine ID).
func NextRunID() int64 {
	once.Do(func() {
		sf, err := sonyflake.New(sonyflake.Settings{
			StartTime: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		})
		if err == nil {
			flake = sf
		}
	})

	if flake != nil {
		if v, err := flake.NextID(); err == nil {
			return int64(v)
		}
	}
	return rand.Int63()
}
