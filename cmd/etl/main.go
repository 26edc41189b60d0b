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

package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/poiesic/userflow"
	"github.com/poiesic/userflow/ai"
	"github.com/poiesic/userflow/core"
	"github.com/poiesic/userflow/extract"
	"github.com/poiesic/userflow/load"
	"github.com/poiesic/userflow/storage/badger"
	"github.com/urfave/cli/v2"
)

func main() {
	loadDotEnv(".env")

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "etl",
		Usage: "Fetch users, enrich them with generated profiles and write the users file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Aliases: []string{"d"},
				Usage:   "Directory for the users file and the run ledger",
				Value:   load.DefaultDir,
				EnvVars: []string{"USERFLOW_DATA_DIR"},
			},
			&cli.StringFlag{
				Name:    "source-url",
				Usage:   "Users endpoint",
				Value:   extract.DefaultURL,
				EnvVars: []string{"USERFLOW_SOURCE_URL"},
			},
			&cli.StringFlag{
				Name:    "openai-api-key",
				Usage:   "API key for the chat completion service",
				EnvVars: []string{"OPENAI_API_KEY"},
			},
			&cli.StringFlag{
				Name:    "openai-model",
				Usage:   "Chat model used to write profiles",
				Value:   ai.DefaultModel,
				EnvVars: []string{"OPENAI_MODEL"},
			},
			&cli.StringFlag{
				Name:    "openai-base-url",
				Usage:   "Base URL of the OpenAI-compatible API",
				Value:   ai.DefaultHost,
				EnvVars: []string{"OPENAI_BASE_URL"},
			},
		},
		Before: setupLogger,
		Action: runCommand,
		Commands: []*cli.Command{
			{
				Name:   "runs",
				Usage:  "List recent pipeline runs",
				Action: runsCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of runs to list",
						Value:   10,
					},
				},
			},
		},
	}
}

// runCommand runs the pipeline once.
func runCommand(c *cli.Context) error {
	opts := []ai.ConfigOption{
		ai.WithAPIKey(c.String("openai-api-key")),
		ai.WithModel(c.String("openai-model")),
	}
	if host := c.String("openai-base-url"); host != "" {
		opts = append(opts, ai.WithHost(host))
	}
	aiConfig := ai.NewConfig(opts...)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	ws, err := userflow.NewWorkspace(c.String("data-dir"),
		userflow.WithAIConfig(aiConfig),
		userflow.WithSourceURL(c.String("source-url")),
	)
	if err != nil {
		return fmt.Errorf("failed to open workspace: %w", err)
	}
	defer ws.Close()

	p, err := ws.NewPipeline(c.App.Writer)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	_, err = p.Run(c.Context)
	return err
}

func runsCommand(c *cli.Context) error {
	limit := c.Int("limit")
	if limit <= 0 {
		return fmt.Errorf("limit must be greater than 0")
	}

	runs, err := badger.OpenRunRepository(filepath.Join(c.String("data-dir"), userflow.LedgerDir))
	if err != nil {
		return err
	}
	defer runs.Close()

	recent, err := runs.RecentRuns(c.Context, limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	return printRuns(c.App.Writer, recent)
}

func printRuns(w io.Writer, runs []*core.Run) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "no runs recorded")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTARTED\tSTATUS\tDURATION\tROWS\tCHECKSUM\tERROR")
	for _, run := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			run.ID,
			run.StartedAt.Local().Format(time.DateTime),
			run.Status,
			run.Duration().Round(time.Millisecond),
			run.Rows,
			shorten(run.Checksum, 12),
			shorten(run.Error, 60),
		)
	}
	return tw.Flush()
}

func shorten(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

// loadDotEnv loads variables from path without overriding the environment.
// A missing file is not an error.
func loadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load env file", "path", path, "err", err)
	}
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
