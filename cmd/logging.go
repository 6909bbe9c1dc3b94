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
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// setupLogging installs the default slog logger: text on stderr, optionally
// fanned out to a JSON log file when DATASPLIT_LOG_FILE is set. DEBUG or
// DATASPLIT_DEBUG raises the level. Returns a cleanup func that closes the
// log file.
func setupLogging(servicename string) func() {
	var opts *slog.HandlerOptions
	if os.Getenv("DEBUG") != "" || os.Getenv("DATASPLIT_DEBUG") != "" {
		opts = &slog.HandlerOptions{Level: slog.LevelDebug}
	}

	cleanup := func() {}
	handler := slog.Handler(slog.NewTextHandler(os.Stderr, opts))

	if logFile := os.Getenv("DATASPLIT_LOG_FILE"); logFile != "" {
		f, err := os.OpenFile(logFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
		if err != nil {
			slog.Warn("Failed to open log file, logging to stderr only",
				slog.String("path", logFile), slog.Any("error", err))
		} else {
			handler = slogmulti.Fanout(
				handler,
				slog.NewJSONHandler(f, opts),
			)
			cleanup = func() { _ = f.Close() }
		}
	}

	slog.SetDefault(slog.New(handler).With(
		slog.String("service", servicename),
	))
	return cleanup
}
