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

// Package partition orchestrates the 90/10 training/validation split of a
// directory of CSV files. Files are ordered by name, counted, and the single
// file straddling the global cutoff row is split so the ratio holds exactly.
package partition

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cardinalhq/datasplit/internal/cutoff"
	"github.com/cardinalhq/datasplit/internal/idgen"
	"github.com/cardinalhq/datasplit/internal/rowcount"
	"github.com/cardinalhq/datasplit/internal/splitter"
	"github.com/cardinalhq/datasplit/internal/transfer"
)

const (
	beforeSuffix = "_before_cutoff"
	afterSuffix  = "_at_or_after_cutoff"
)

// Run executes the full pipeline: list, count, cutoff, locate, split,
// transfer. Either every stage completes or the run aborts with nothing
// transferred; there is no partial-success mode.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	info, err := os.Stat(cfg.InputDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: input dir %s is not a directory", ErrConfig, cfg.InputDir)
	}

	names, err := listCSVFiles(cfg.InputDir)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no .csv files in %s", ErrEmptyInput, cfg.InputDir)
	}

	rep := &Report{
		RunID:     idgen.NextRunID(),
		StartedAt: time.Now().UTC(),
		InputDir:  cfg.InputDir,
		DryRun:    cfg.DryRun,
		RoundUp:   cfg.RoundUp,
		Mode:      cfg.TransferMode,
	}
	ll := slog.With(slog.Int64("runID", rep.RunID))

	infos := make([]cutoff.FileRowInfo, 0, len(names))
	var total int64
	for _, name := range names {
		path := filepath.Join(cfg.InputDir, name)
		count, err := rowcount.Count(ctx, path, cfg.HasHeader)
		if err != nil {
			return nil, err
		}
		infos = append(infos, cutoff.FileRowInfo{Path: path, DataRows: count})
		rep.Files = append(rep.Files, FileCount{Name: name, DataRows: count})
		total += count
		ll.Info("Counted data rows", slog.String("file", name), slog.Int64("dataRows", count))
	}
	rep.TotalRows = total

	if total == 0 {
		return nil, fmt.Errorf("%w: %d files contain no data rows", ErrZeroRows, len(names))
	}

	rep.Cutoff = cutoff.Cutoff(total, cfg.RoundUp)
	loc := cutoff.Locate(infos, rep.Cutoff)
	if loc.IsNone() {
		// Only reachable when total is so small the floor of 9/10 is zero.
		return nil, fmt.Errorf("%w: cutoff is 0 for %d total rows, nothing would reach training", ErrZeroRows, total)
	}

	cutoffPath := infos[loc.FileIndex].Path
	rep.CutoffFile = filepath.Base(cutoffPath)
	rep.RowInFile = loc.RowInFile
	ll.Info("Located cutoff",
		slog.Int64("totalRows", total),
		slog.Int64("cutoff", rep.Cutoff),
		slog.String("cutoffFile", rep.CutoffFile),
		slog.Int64("rowInFile", loc.RowInFile))

	beforePath := derivedPath(cutoffPath, beforeSuffix)
	afterPath := derivedPath(cutoffPath, afterSuffix)

	parent := filepath.Dir(cfg.InputDir)
	rep.TrainingDir = filepath.Join(parent, cfg.TrainingDirName)
	rep.ValidationDir = filepath.Join(parent, cfg.ValidationDirName)

	// Assignment: originals before the cutoff file train, originals after it
	// validate, and the cutoff file itself is superseded by its two outputs.
	for i := 0; i < loc.FileIndex; i++ {
		rep.Training = append(rep.Training, rep.Files[i].Name)
	}
	for i := loc.FileIndex + 1; i < len(infos); i++ {
		rep.Validation = append(rep.Validation, rep.Files[i].Name)
	}
	rep.Training = append(rep.Training, filepath.Base(beforePath))
	rep.Validation = append(rep.Validation, filepath.Base(afterPath))

	if cfg.DryRun {
		rep.BeforeRows = loc.RowInFile - 1
		rep.AfterRows = infos[loc.FileIndex].DataRows - rep.BeforeRows
		ll.Info("Dry run, skipping split and transfer")
		return rep, nil
	}

	res, err := splitter.Split(ctx, cutoffPath, cfg.HasHeader, loc.RowInFile, beforePath, afterPath)
	if err != nil {
		return nil, err
	}
	rep.BeforeRows = res.BeforeRows
	rep.AfterRows = res.AfterRows
	ll.Info("Split cutoff file",
		slog.String("before", filepath.Base(beforePath)), slog.Int64("beforeRows", res.BeforeRows),
		slog.String("after", filepath.Base(afterPath)), slog.Int64("afterRows", res.AfterRows))

	if err := place(ll, cfg, rep, infos, loc.FileIndex, beforePath, afterPath); err != nil {
		// Best-effort cleanup of the derived files so a failed run leaves the
		// input dir as it was found.
		for _, p := range []string{beforePath, afterPath} {
			if rmErr := os.Remove(p); rmErr != nil && !os.IsNotExist(rmErr) {
				ll.Warn("Failed to clean up derived file", slog.String("path", p), slog.Any("error", rmErr))
			}
		}
		return nil, err
	}

	ll.Info("Partition complete",
		slog.Int("training", len(rep.Training)),
		slog.Int("validation", len(rep.Validation)))
	return rep, nil
}

// place creates both destination dirs and transfers originals and derived
// outputs into them.
func place(ll *slog.Logger, cfg Config, rep *Report, infos []cutoff.FileRowInfo, cutoffIdx int, beforePath, afterPath string) error {
	mode, err := transfer.ParseMode(cfg.TransferMode)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	placer := transfer.NewPlacer(mode)

	if err := placer.EnsureDir(rep.TrainingDir); err != nil {
		return err
	}
	if err := placer.EnsureDir(rep.ValidationDir); err != nil {
		return err
	}

	for i := 0; i < cutoffIdx; i++ {
		if _, err := placer.Place(infos[i].Path, rep.TrainingDir); err != nil {
			return err
		}
		ll.Info("Transferred to training", slog.String("file", filepath.Base(infos[i].Path)))
	}
	for i := cutoffIdx + 1; i < len(infos); i++ {
		if _, err := placer.Place(infos[i].Path, rep.ValidationDir); err != nil {
			return err
		}
		ll.Info("Transferred to validation", slog.String("file", filepath.Base(infos[i].Path)))
	}

	if _, err := placer.Place(beforePath, rep.TrainingDir); err != nil {
		return err
	}
	if _, err := placer.Place(afterPath, rep.ValidationDir); err != nil {
		return err
	}
	return nil
}

// listCSVFiles returns the names of regular *.csv files in dir, sorted by
// name. The sort order defines the global row numbering, so it must be
// stable across runs and platforms.
func listCSVFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: read dir %s: %w", ErrConfig, dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			names = append(names, e.Name())
		}
	}
	// os.ReadDir already sorts by filename.
	return names, nil
}

// derivedPath appends a suffix to the path's base name, keeping its
// extension: data.csv -> data_before_cutoff.csv.
func derivedPath(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ext
}
