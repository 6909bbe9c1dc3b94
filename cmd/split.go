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
	"github.com/spf13/cobra"

	"github.com/cardinalhq/datasplit/config"
	"github.com/cardinalhq/datasplit/internal/partition"
)

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Split a directory of CSV files 90/10 into training and validation sets",
	Long: `Count the data rows of every CSV file in the input directory, compute the
90/10 cutoff across their concatenation in filename order, split the file
that straddles the cutoff, and place everything into sibling training and
validation directories.`,
	RunE: runSplit,
}

func init() {
	registerSplitFlags(splitCmd)
	rootCmd.AddCommand(splitCmd)
}

func registerSplitFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", "", "Directory containing the CSV files to partition")
	cmd.Flags().Bool("has-header", true, "Treat the first record of each file as a header")
	cmd.Flags().Bool("round-up", false, "Use ceiling instead of floor for the 90% cutoff")
	cmd.Flags().Bool("move", false, "Move files into the partitions instead of copying")
	cmd.Flags().String("training-dir", "", "Training directory name (sibling of the input directory)")
	cmd.Flags().String("validation-dir", "", "Validation directory name (sibling of the input directory)")
	cmd.Flags().String("manifest", "", "Write the run report as YAML to this path")
	cmd.Flags().Bool("dry-run", false, "Report counts and cutoff without writing anything")
}

func runSplit(cmd *cobra.Command, _ []string) error {
	cleanup := setupLogging("datasplit")
	defer cleanup()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	sc := applySplitFlags(cmd, cfg.Split)

	rep, err := partition.Run(cmd.Context(), sc)
	if err != nil {
		return err
	}

	printReport(cmd, rep)

	if sc.ManifestPath != "" {
		if err := rep.WriteManifest(sc.ManifestPath); err != nil {
			return err
		}
		cmd.Printf("Manifest written to %s\n", sc.ManifestPath)
	}
	return nil
}

// applySplitFlags overlays explicitly-set flags onto the loaded config, so
// flags win over file and environment values.
func applySplitFlags(cmd *cobra.Command, sc partition.Config) partition.Config {
	flags := cmd.Flags()

	if flags.Changed("input") {
		sc.InputDir, _ = flags.GetString("input")
	}
	if flags.Changed("has-header") {
		sc.HasHeader, _ = flags.GetBool("has-header")
	}
	if flags.Changed("round-up") {
		sc.RoundUp, _ = flags.GetBool("round-up")
	}
	if flags.Changed("move") {
		if move, _ := flags.GetBool("move"); move {
			sc.TransferMode = "move"
		} else {
			sc.TransferMode = "copy"
		}
	}
	if flags.Changed("training-dir") {
		sc.TrainingDirName, _ = flags.GetString("training-dir")
	}
	if flags.Changed("validation-dir") {
		sc.ValidationDirName, _ = flags.GetString("validation-dir")
	}
	if flags.Changed("manifest") {
		sc.ManifestPath, _ = flags.GetString("manifest")
	}
	if flags.Changed("dry-run") {
		sc.DryRun, _ = flags.GetBool("dry-run")
	}
	return sc
}

func printReport(cmd *cobra.Command, rep *partition.Report) {
	cmd.Printf("Counted %d files, %d total data rows\n", len(rep.Files), rep.TotalRows)
	for _, fc := range rep.Files {
		cmd.Printf("  %s: %d data rows\n", fc.Name, fc.DataRows)
	}
	cmd.Printf("Cutoff: row %d (global, 1-based), in %s at data row %d\n",
		rep.Cutoff, rep.CutoffFile, rep.RowInFile)
	cmd.Printf("Split: %d rows before cutoff, %d rows at or after\n",
		rep.BeforeRows, rep.AfterRows)
	if rep.DryRun {
		cmd.Println("Dry run: nothing written")
	}

	cmd.Printf("Training (%s):\n", rep.TrainingDir)
	for _, name := range rep.Training {
		cmd.Printf("  %s\n", name)
	}
	cmd.Printf("Validation (%s):\n", rep.ValidationDir)
	for _, name := range rep.Validation {
		cmd.Printf("  %s\n", name)
	}
}
