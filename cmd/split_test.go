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

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardinalhq/datasplit/internal/partition"
)

func TestApplySplitFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "split"}
	registerSplitFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{
		"--input", "/data/in",
		"--move",
		"--round-up",
		"--training-dir", "train",
	}))

	sc := applySplitFlags(cmd, partition.DefaultConfig())

	assert.Equal(t, "/data/in", sc.InputDir)
	assert.Equal(t, "move", sc.TransferMode)
	assert.True(t, sc.RoundUp)
	assert.Equal(t, "train", sc.TrainingDirName)
	// Flags not passed keep the config defaults.
	assert.True(t, sc.HasHeader)
	assert.Equal(t, "validation data", sc.ValidationDirName)
}

func TestSplitCommand(t *testing.T) {
	root := t.TempDir()
	input := filepath.Join(root, "input")
	require.NoError(t, os.Mkdir(input, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(input, "data.csv"),
		[]byte("id,value\n1,a\n2,b\n3,c\n4,d\n5,e\n"), 0644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"split", "--input", input,
		"--manifest", filepath.Join(root, "run.yaml")})

	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "5 total data rows")
	assert.Contains(t, out.String(), "data_before_cutoff.csv")

	_, err := os.Stat(filepath.Join(root, "training data", "data_before_cutoff.csv"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "validation data", "data_at_or_after_cutoff.csv"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "run.yaml"))
	require.NoError(t, err)
}
