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

// Package transfer places files into partition directories by copy or move.
package transfer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrWrite indicates a destination could not be created or written.
var ErrWrite = errors.New("write failure")

// Mode selects whether sources are duplicated or relocated.
type Mode string

const (
	ModeCopy Mode = "copy"
	ModeMove Mode = "move"
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeCopy, ModeMove:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown transfer mode %q (want copy or move)", s)
	}
}

// Placer transfers files into destination directories using one Mode.
type Placer struct {
	mode Mode
}

func NewPlacer(mode Mode) *Placer {
	return &Placer{mode: mode}
}

// Mode returns the configured transfer mode.
func (p *Placer) Mode() Mode {
	return p.mode
}

// EnsureDir creates dir and any missing parents.
func (p *Placer) EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: mkdir %s: %w", ErrWrite, dir, err)
	}
	return nil
}

// Place puts src into destDir under its base name and returns the
// destination path. In move mode the source is removed; a cross-device
// rename falls back to copy-then-delete.
func (p *Placer) Place(src, destDir string) (string, error) {
	dest := filepath.Join(destDir, filepath.Base(src))

	if p.mode == ModeMove {
		if err := os.Rename(src, dest); err == nil {
			return dest, nil
		}
		if err := copyFile(src, dest); err != nil {
			return "", err
		}
		if err := os.Remove(src); err != nil {
			return "", fmt.Errorf("%w: remove %s after move: %w", ErrWrite, src, err)
		}
		return dest, nil
	}

	if err := copyFile(src, dest); err != nil {
		return "", err
	}
	return dest, nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", ErrWrite, src, err)
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("%w: stat %s: %w", ErrWrite, src, err)
	}

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrWrite, dest, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("%w: copy to %s: %w", ErrWrite, dest, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrWrite, dest, err)
	}
	return nil
}
