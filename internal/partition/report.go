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
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FileCount is one input file's data-row count, in global order.
type FileCount struct {
	Name     string `yaml:"name"`
	DataRows int64  `yaml:"data_rows"`
}

// Report records everything a run decided: per-file counts, the cutoff, the
// split, and which filenames ended up in each partition.
type Report struct {
	RunID         int64       `yaml:"run_id"`
	StartedAt     time.Time   `yaml:"started_at"`
	InputDir      string      `yaml:"input_dir"`
	DryRun        bool        `yaml:"dry_run,omitempty"`
	RoundUp       bool        `yaml:"round_up"`
	Mode          string      `yaml:"transfer_mode"`
	Files         []FileCount `yaml:"files"`
	TotalRows     int64       `yaml:"total_rows"`
	Cutoff        int64       `yaml:"cutoff"`
	CutoffFile    string      `yaml:"cutoff_file"`
	RowInFile     int64       `yaml:"row_in_file"`
	BeforeRows    int64       `yaml:"before_rows"`
	AfterRows     int64       `yaml:"after_rows"`
	TrainingDir   string      `yaml:"training_dir"`
	ValidationDir string      `yaml:"validation_dir"`
	Training      []string    `yaml:"training"`
	Validation    []string    `yaml:"validation"`
}

// WriteManifest serializes the report as YAML at path.
func (r *Report) WriteManifest(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write manifest %s: %w", path, err)
	}
	return nil
}
