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

// Package csvfile reads and writes user tables as comma-delimited files.
//
// The first line is the header (the table's columns). Each following line is one
// row, cells encoded with core.FormatValue. No index column is written. Reading
// infers cell types back with core.ParseValue.
package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/poiesic/userflow/core"
)

// WriteTable writes table to path, truncating any existing file.
// The write is not atomic: an interrupted write leaves a truncated file.
func WriteTable(path string, table *core.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, table); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Encode writes table as CSV to w.
func Encode(w io.Writer, table *core.Table) error {
	if table == nil {
		table = core.NewTable(nil)
	}

	cw := csv.NewWriter(w)
	if err := writeLine(w, cw, table.Columns); err != nil {
		return err
	}

	line := make([]string, len(table.Columns))
	for i, row := range table.Rows {
		for j, col := range table.Columns {
			v, _ := row.Get(col)
			cell, err := core.FormatValue(v)
			if err != nil {
				return fmt.Errorf("row %d column %q: %w", i, col, err)
			}
			line[j] = cell
		}
		if err := writeLine(w, cw, line); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// writeLine writes one record. A lone empty field is quoted; a blank line
// would be skipped on read.
func writeLine(w io.Writer, cw *csv.Writer, line []string) error {
	if len(line) != 1 || line[0] != "" {
		return cw.Write(line)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\"\"\n")
	return err
}

// ReadTable reads the table stored at path.
// Returns core.ErrFileNotFound if the file does not exist.
func ReadTable(path string) (*core.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, core.ErrFileNotFound)
		}
		return nil, err
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads a CSV table from r. Every row must have as many cells as the header.
// Input without a header row decodes to an empty table.
func Decode(r io.Reader) (*core.Table, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return core.NewTable(nil), nil
	}
	if err != nil {
		return nil, err
	}

	table := &core.Table{
		Columns: header,
		Rows:    []*core.Record{},
	}
	for {
		line, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		rec := core.NewRecord()
		for j, col := range header {
			rec.Set(col, core.ParseValue(line[j]))
		}
		table.Rows = append(table.Rows, rec)
	}
	return table, nil
}
