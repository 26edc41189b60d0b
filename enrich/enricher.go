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

package enrich

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/poiesic/userflow/ai"
	"github.com/poiesic/userflow/core"
)

// ErrNilGenerator is returned when an Enricher has no profile generator.
var ErrNilGenerator = errors.New("profile generator is nil")

// Enricher merges generated profile fields into user records.
type Enricher struct {
	generator      ai.ProfileGenerator
	progress       io.Writer
	reportInterval int
	logger         *slog.Logger
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithProgress enables a progress line written to w while a table is enriched.
func WithProgress(w io.Writer) Option {
	return func(e *Enricher) {
		e.progress = w
	}
}

// WithReportInterval sets how many rows pass between progress reports.
func WithReportInterval(n int) Option {
	return func(e *Enricher) {
		if n > 0 {
			e.reportInterval = n
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Enricher) {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
	}
}

// NewEnricher creates an Enricher backed by generator.
func NewEnricher(generator ai.ProfileGenerator, opts ...Option) *Enricher {
	e := &Enricher{
		generator:      generator,
		reportInterval: 1,
		logger:         slog.Default().With("component", "enricher"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enrich returns a new table with one enriched row per input row, in input order.
// Processing stops at the first failing row and the error is returned with no table.
func (e *Enricher) Enrich(ctx context.Context, table *core.Table) (*core.Table, error) {
	if e.generator == nil {
		return nil, ErrNilGenerator
	}
	if table == nil {
		table = core.NewTable(nil)
	}

	var tracker *ProgressTracker
	if e.progress != nil {
		tracker = NewProgressTracker(e.progress, table.Len(), e.reportInterval)
		tracker.Start()
		defer tracker.Finish()
	}

	rows := make([]*core.Record, 0, table.Len())
	for i, row := range table.Rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		enriched, err := e.EnrichRecord(ctx, row)
		if err != nil {
			e.logger.Error("failed to enrich row", "row", i, "err", err)
			return nil, fmt.Errorf("enrich row %d: %w", i, err)
		}
		rows = append(rows, enriched)

		if tracker != nil {
			tracker.Increment(1)
		}
	}

	e.logger.Debug("enriched table", "rows", len(rows))
	return core.NewTable(rows), nil
}

// EnrichRecord enriches a single row. The input is not modified; the returned
// record holds every input field plus profile_summary and learning_path, which
// replace same-named input fields in place. Absent profile values are stored as null.
func (e *Enricher) EnrichRecord(ctx context.Context, row *core.Record) (*core.Record, error) {
	if e.generator == nil {
		return nil, ErrNilGenerator
	}

	profile, err := e.generator.GenerateProfile(ctx, SubjectOf(row))
	if err != nil {
		return nil, err
	}

	out := row.Clone()
	if out == nil {
		out = core.NewRecord()
	}
	out.Set(core.ColumnProfileSummary, textValue(profile.ProfileSummary))
	out.Set(core.ColumnLearningPath, textValue(profile.LearningPath))
	return out, nil
}

// SubjectOf reads the prompt fields from a raw user record.
// City is taken from address.city only when address is an object.
func SubjectOf(row *core.Record) ai.Subject {
	subject := ai.Subject{
		Name:     field(row, "name"),
		Username: field(row, "username"),
		Email:    field(row, "email"),
	}
	if addr, ok := row.Get("address"); ok {
		if nested, ok := addr.(*core.Record); ok {
			subject.City = field(nested, "city")
		}
	}
	return subject
}

func field(row *core.Record, key string) *string {
	s, ok := row.String(key)
	if !ok {
		return nil
	}
	return &s
}

func textValue(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
