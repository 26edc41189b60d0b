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

// Package userflow wires the user enrichment pipeline together.
//
// A Workspace owns a data directory: the users file written by the pipeline and the
// run ledger kept next to it. It builds pipelines with the configured source,
// profile generator and ledger.
//
//	ws, err := userflow.NewWorkspace("data",
//	    userflow.WithAIConfig(ai.NewConfig(ai.WithAPIKey(key))),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ws.Close()
//
//	p, err := ws.NewPipeline(os.Stdout)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	run, err := p.Run(ctx)
package userflow

import (
	"io"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/poiesic/userflow/ai"
	"github.com/poiesic/userflow/ai/openai"
	"github.com/poiesic/userflow/enrich"
	"github.com/poiesic/userflow/extract"
	"github.com/poiesic/userflow/load"
	"github.com/poiesic/userflow/pipeline"
	"github.com/poiesic/userflow/storage"
	"github.com/poiesic/userflow/storage/badger"
)

// LedgerDir is the run ledger directory inside the data directory.
const LedgerDir = ".runs"

type Workspace struct {
	dataDir    string
	runs       storage.RunRepository
	provider   ai.Provider
	sourceURL  string
	httpClient *http.Client
	logger     *slog.Logger
}

// WorkspaceOption configures a Workspace.
type WorkspaceOption func(*workspaceOptions)

type workspaceOptions struct {
	aiConfig   *ai.Config
	provider   ai.Provider
	sourceURL  string
	httpClient *http.Client
}

// WithAIConfig sets the configuration of the OpenAI-compatible provider.
func WithAIConfig(config *ai.Config) WorkspaceOption {
	return func(o *workspaceOptions) {
		o.aiConfig = config
	}
}

// WithProvider uses provider instead of building one from the AI config.
// The workspace takes ownership and closes it.
func WithProvider(provider ai.Provider) WorkspaceOption {
	return func(o *workspaceOptions) {
		o.provider = provider
	}
}

// WithSourceURL sets the users endpoint.
func WithSourceURL(url string) WorkspaceOption {
	return func(o *workspaceOptions) {
		o.sourceURL = url
	}
}

// WithHTTPClient sets the client used to call the users endpoint.
func WithHTTPClient(client *http.Client) WorkspaceOption {
	return func(o *workspaceOptions) {
		o.httpClient = client
	}
}

// NewWorkspace opens the workspace rooted at dataDir.
// An empty dataDir means load.DefaultDir.
func NewWorkspace(dataDir string, opts ...WorkspaceOption) (*Workspace, error) {
	options := &workspaceOptions{
		aiConfig:  ai.DefaultConfig(),
		sourceURL: extract.DefaultURL,
	}
	for _, opt := range opts {
		opt(options)
	}
	if dataDir == "" {
		dataDir = load.DefaultDir
	}

	// Open the run ledger
	runs, err := badger.OpenRunRepository(filepath.Join(dataDir, LedgerDir))
	if err != nil {
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			runs.Close()
			return nil, err
		}
	}

	return &Workspace{
		dataDir:    dataDir,
		runs:       runs,
		provider:   provider,
		sourceURL:  options.sourceURL,
		httpClient: options.httpClient,
		logger:     slog.Default().With("component", "workspace"),
	}, nil
}

// Close releases the provider and the run ledger.
func (w *Workspace) Close() error {
	if err := w.provider.Close(); err != nil {
		w.logger.Error("error closing AI provider", "err", err)
	}
	if err := w.runs.Close(); err != nil {
		w.logger.Error("error closing run ledger", "err", err)
		return err
	}
	return nil
}

// DataDir returns the data directory.
func (w *Workspace) DataDir() string {
	return w.dataDir
}

// UsersPath returns the path of the users file.
func (w *Workspace) UsersPath() string {
	return filepath.Join(w.dataDir, load.DefaultFileName)
}

// Runs returns the run ledger.
func (w *Workspace) Runs() storage.RunRepository {
	return w.runs
}

// Provider returns the AI provider.
func (w *Workspace) Provider() ai.Provider {
	return w.provider
}

// NewPipeline builds a pipeline that prints progress to out and records its runs
// in the workspace ledger. Extra options are applied last.
func (w *Workspace) NewPipeline(out io.Writer, opts ...pipeline.Option) (*pipeline.Pipeline, error) {
	extractOpts := []extract.Option{extract.WithURL(w.sourceURL)}
	if w.httpClient != nil {
		extractOpts = append(extractOpts, extract.WithHTTPClient(w.httpClient))
	}

	enrichOpts := []enrich.Option{}
	if out != nil {
		enrichOpts = append(enrichOpts, enrich.WithProgress(out))
	}

	base := []pipeline.Option{
		pipeline.WithOutput(out),
		pipeline.WithRunRepository(w.runs),
		pipeline.WithSourceURL(w.sourceURL),
		pipeline.WithModel(w.provider.Model()),
	}

	return pipeline.New(
		extract.NewExtractor(extractOpts...),
		enrich.NewEnricher(w.provider.ProfileGenerator(), enrichOpts...),
		load.NewLoader(w.dataDir),
		append(base, opts...)...,
	)
}
