// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package load persists enriched user tables to the data directory.
package load

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/poiesic/userflow/core"
	"github.com/poiesic/userflow/storage/csvfile"
)

const (
	// DefaultDir is the data directory, relative to the working directory.
	DefaultDir = "data"

	// DefaultFileName is the name of the persisted table.
	DefaultFileName = "users_transformed.csv"
)

// Loader writes tables as CSV files under a directory.
type Loader struct {
	dir    string
	logger *slog.Logger
}

// NewLoader creates a Loader for dir. An empty dir means DefaultDir.
func NewLoader(dir string) *Loader {
	if dir == "" {
		dir = DefaultDir
	}
	return &Loader{
		dir:    dir,
		logger: slog.Default().With("component", "loader"),
	}
}

// Dir returns the target directory.
func (l *Loader) Dir() string {
	return l.dir
}

// Path returns the file path used for fileName. An empty fileName means DefaultFileName.
func (l *Loader) Path(fileName string) string {
	if fileName == "" {
		fileName = DefaultFileName
	}
	return filepath.Join(l.dir, fileName)
}

// Load writes table to the directory, creating it if needed and replacing any
// existing file. It returns the path written.
func (l *Loader) Load(table *core.Table, fileName string) (string, error) {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}

	path := l.Path(fileName)
	if err := csvfile.WriteTable(path, table); err != nil {
		l.logger.Error("failed to write table", "path", path, "err", err)
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	rows := 0
	if table != nil {
		rows = table.Len()
	}
	l.logger.Debug("table written", "path", path, "rows", rows)
	return path, nil
}
