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

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/poiesic/userflow/core"
	"github.com/poiesic/userflow/storage"
)

// Progress lines printed before each stage and after a successful run.
const (
	MsgExtract = "Extraindo usuários da API externa..."
	MsgEnrich  = "Transformando usuários com OpenAI..."
	MsgLoad    = "Carregando dados transformados para CSV..."
	MsgDone    = "Pipeline ETL com API externa concluída com sucesso!"
)

var (
	// ErrMissingStage is returned when a pipeline is built without one of its stages.
	ErrMissingStage = errors.New("pipeline stage is nil")
)

// Extractor fetches the raw user table.
type Extractor interface {
	Extract(ctx context.Context) (*core.Table, error)
}

// Enricher turns raw users into enriched users.
type Enricher interface {
	Enrich(ctx context.Context, table *core.Table) (*core.Table, error)
}

// Loader persists the enriched table and returns the path written.
type Loader interface {
	Load(table *core.Table, fileName string) (string, error)
}

// Pipeline runs Extractor, Enricher and Loader in sequence.
type Pipeline struct {
	extractor Extractor
	enricher  Enricher
	loader    Loader

	out       io.Writer
	runs      storage.RunRepository
	fileName  string
	sourceURL string
	model     string
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithOutput sets where progress lines are printed. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(p *Pipeline) {
		if w == nil {
			w = io.Discard
		}
		p.out = w
	}
}

// WithRunRepository records every run in runs.
func WithRunRepository(runs storage.RunRepository) Option {
	return func(p *Pipeline) {
		p.runs = runs
	}
}

// WithFileName sets the file name passed to the loader.
// An empty name lets the loader pick its default.
func WithFileName(name string) Option {
	return func(p *Pipeline) {
		p.fileName = name
	}
}

// WithSourceURL sets the source URL recorded in the ledger.
func WithSourceURL(url string) Option {
	return func(p *Pipeline) {
		p.sourceURL = url
	}
}

// WithModel sets the model name recorded in the ledger.
func WithModel(model string) Option {
	return func(p *Pipeline) {
		p.model = model
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
	}
}

// New creates a Pipeline from its three stages.
func New(extractor Extractor, enricher Enricher, loader Loader, opts ...Option) (*Pipeline, error) {
	if extractor == nil || enricher == nil || loader == nil {
		return nil, ErrMissingStage
	}

	p := &Pipeline{
		extractor: extractor,
		enricher:  enricher,
		loader:    loader,
		out:       os.Stdout,
		logger:    slog.Default().With("component", "pipeline"),
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Run executes one full pass of the pipeline.
//
// The returned Run describes the outcome and is never nil. On failure the stage
// error is returned unchanged and nothing is written.
func (p *Pipeline) Run(ctx context.Context) (*core.Run, error) {
	run := &core.Run{
		ID:        core.NewRunID(),
		StartedAt: p.now(),
		SourceURL: p.sourceURL,
		Model:     p.model,
	}
	logger := p.logger.With("run", run.ID)
	logger.Info("pipeline started")

	err := p.execute(ctx, run)
	run.FinishedAt = p.now()
	if err != nil {
		run.Status = core.RunStatusFailed
		run.Error = err.Error()
		logger.Error("pipeline failed", "err", err, "duration", run.Duration())
	} else {
		run.Status = core.RunStatusSucceeded
		logger.Info("pipeline finished", "rows", run.Rows, "path", run.OutputPath, "duration", run.Duration())
	}

	p.record(ctx, run)
	return run, err
}

func (p *Pipeline) execute(ctx context.Context, run *core.Run) error {
	fmt.Fprintln(p.out, MsgExtract)
	raw, err := p.extractor.Extract(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(p.out, MsgEnrich)
	enriched, err := p.enricher.Enrich(ctx, raw)
	if err != nil {
		return err
	}

	fmt.Fprintln(p.out, MsgLoad)
	path, err := p.loader.Load(enriched, p.fileName)
	if err != nil {
		return err
	}

	run.Rows = enriched.Len()
	run.OutputPath = path
	run.Checksum = p.checksum(path)

	fmt.Fprintln(p.out, MsgDone)
	return nil
}

// checksum hashes the written file. A read failure leaves the checksum empty.
func (p *Pipeline) checksum(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		p.logger.Warn("failed to checksum output", "path", path, "err", err)
		return ""
	}
	return core.Checksum(data)
}

// record saves the run in the ledger. Ledger failures are logged and do not
// change the outcome of the run.
func (p *Pipeline) record(ctx context.Context, run *core.Run) {
	if p.runs == nil {
		return
	}
	if err := p.runs.SaveRun(context.WithoutCancel(ctx), run); err != nil {
		p.logger.Warn("failed to record run", "run", run.ID, "err", err)
	}
}
