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

package transfer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	m, err := ParseMode("copy")
	require.NoError(t, err)
	assert.Equal(t, ModeCopy, m)

	m, err = ParseMode("move")
	require.NoError(t, err)
	assert.Equal(t, ModeMove, m)

	_, err = ParseMode("link")
	require.Error(t, err)
}

func TestPlaceCopy(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(src, []byte("a,b\n1,2\n"), 0644))
	destDir := filepath.Join(dir, "out")

	p := NewPlacer(ModeCopy)
	require.NoError(t, p.EnsureDir(destDir))

	dest, err := p.Place(src, destDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(destDir, "data.csv"), dest)

	// Copy keeps the original in place.
	_, err = os.Stat(src)
	require.NoError(t, err)

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(got))
}

func TestPlaceMove(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(src, []byte("a,b\n1,2\n"), 0644))
	destDir := filepath.Join(dir, "out")

	p := NewPlacer(ModeMove)
	require.NoError(t, p.EnsureDir(destDir))

	dest, err := p.Place(src, destDir)
	require.NoError(t, err)

	// Move removes the original.
	_, err = os.Stat(src)
	assert.True(t, os.IsNotExist(err))

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(got))
}

func TestPlaceMissingSource(t *testing.T) {
	dir := t.TempDir()
	p := NewPlacer(ModeCopy)

	_, err := p.Place(filepath.Join(dir, "nope.csv"), dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWrite)
}
