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

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/cardinalhq/datasplit/internal/transfer"
)

// Config drives one partitioning run. There is no process-wide state; the
// orchestrator receives its configuration explicitly at invocation time.
type Config struct {
	// InputDir holds the CSV files to partition.
	InputDir string `mapstructure:"input_dir"`
	// HasHeader excludes the first record of each file from row counts and
	// reuses it as the shared header of split outputs.
	HasHeader bool `mapstructure:"has_header"`
	// RoundUp switches the cutoff from floor to ceiling of 9/10 of total.
	RoundUp bool `mapstructure:"round_up"`
	// TransferMode is "copy" or "move".
	TransferMode string `mapstructure:"transfer_mode"`
	// TrainingDirName and ValidationDirName are created as siblings of
	// InputDir.
	TrainingDirName   string `mapstructure:"training_dir_name"`
	ValidationDirName string `mapstructure:"validation_dir_name"`
	// DryRun reports counts, cutoff, and planned assignment without writing
	// anything.
	DryRun bool `mapstructure:"dry_run"`
	// ManifestPath, when set, is where the run report is written as YAML.
	ManifestPath string `mapstructure:"manifest_path"`
}

// DefaultConfig mirrors the defaults of the batch tool: headers assumed,
// floor rounding, copy transfer.
func DefaultConfig() Config {
	return Config{
		HasHeader:         true,
		RoundUp:           false,
		TransferMode:      string(transfer.ModeCopy),
		TrainingDirName:   "training data",
		ValidationDirName: "validation data",
	}
}

// Validate collects every configuration problem before aborting, so a bad
// invocation surfaces all mistakes at once.
func (c Config) Validate() error {
	var errs *multierror.Error

	if c.InputDir == "" {
		errs = multierror.Append(errs, fmt.Errorf("input_dir is required"))
	}
	if _, err := transfer.ParseMode(c.TransferMode); err != nil {
		errs = multierror.Append(errs, err)
	}
	if c.TrainingDirName == "" {
		errs = multierror.Append(errs, fmt.Errorf("training_dir_name is required"))
	}
	if c.ValidationDirName == "" {
		errs = multierror.Append(errs, fmt.Errorf("validation_dir_name is required"))
	}
	if c.TrainingDirName != "" && c.TrainingDirName == c.ValidationDirName {
		errs = multierror.Append(errs, fmt.Errorf("training and validation directories must differ"))
	}

	if err := errs.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return nil
}
