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

package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/poiesic/userflow/core"
)

const (
	// DefaultURL is the JSONPlaceholder users endpoint.
	DefaultURL = "https://jsonplaceholder.typicode.com/users"

	// DefaultTimeout bounds the whole request, body included.
	DefaultTimeout = 10 * time.Second
)

// Extractor fetches user records from a remote JSON API.
type Extractor struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithURL sets the source endpoint.
func WithURL(url string) Option {
	return func(e *Extractor) {
		e.url = url
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(e *Extractor) {
		e.client.Timeout = timeout
	}
}

// WithHTTPClient replaces the HTTP client. The client's own timeout applies.
func WithHTTPClient(client *http.Client) Option {
	return func(e *Extractor) {
		if client != nil {
			e.client = client
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
	}
}

// NewExtractor creates an Extractor for DefaultURL with DefaultTimeout.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		url:    DefaultURL,
		client: &http.Client{Timeout: DefaultTimeout},
		logger: slog.Default().With("component", "extractor"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// URL returns the source endpoint.
func (e *Extractor) URL() string {
	return e.url
}

// Extract performs one GET against the source endpoint and returns the users as a table.
// Nothing is returned on failure; partial bodies are discarded.
func (e *Extractor) Extract(ctx context.Context) (*core.Table, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		e.logger.Error("source request failed", "url", e.url, "err", err)
		return nil, &core.HTTPError{URL: e.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		e.logger.Error("source returned error status", "url", e.url, "status", resp.StatusCode)
		return nil, &core.HTTPError{
			URL:        e.url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	records, err := decodeRecords(resp.Body)
	if err != nil {
		e.logger.Error("failed to decode source response", "url", e.url, "err", err)
		return nil, fmt.Errorf("decode users from %s: %w", e.url, err)
	}

	table := core.NewTable(records)
	e.logger.Debug("extracted users", "rows", table.Len(), "columns", len(table.Columns))
	return table, nil
}

// decodeRecords reads a JSON array of objects, keeping key order.
func decodeRecords(r io.Reader) ([]*core.Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, ErrNotAnArray
	}

	records := []*core.Record{}
	for dec.More() {
		rec, err := core.DecodeRecord(dec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", len(records), err)
		}
		records = append(records, rec)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return records, nil
}
