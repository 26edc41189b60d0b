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

package openai

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/poiesic/userflow/ai"
	"github.com/poiesic/userflow/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

var errNoChoices = errors.New("no choices returned from model")

// ProfileGenerator implements ai.ProfileGenerator using OpenAI-compatible chat APIs.
type ProfileGenerator struct {
	client llms.Model
	host   string
	logger *slog.Logger
}

// newProfileGenerator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newProfileGenerator(config *ai.Config) (*ProfileGenerator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.APIKey),
		openai.WithModel(config.Model),
		openai.WithHTTPClient(statusDoer{client: http.DefaultClient}),
	)
	if err != nil {
		return nil, err
	}

	return &ProfileGenerator{
		client: client,
		host:   config.Host,
		logger: slog.Default().With("component", "openai-generator"),
	}, nil
}

// NewProfileGenerator creates a new profile generator using the provided configuration.
//
// Returns ai.ProfileGenerator interface to enforce abstraction.
func NewProfileGenerator(config *ai.Config) (ai.ProfileGenerator, error) {
	return newProfileGenerator(config)
}

// GenerateProfile sends one chat completion request in JSON mode and parses the reply.
// Malformed replies are not retried.
func (g *ProfileGenerator) GenerateProfile(ctx context.Context, subject ai.Subject) (*ai.Profile, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(buildUserPrompt(subject)),
			},
		},
	}

	status := new(int)
	ctx = context.WithValue(ctx, statusKey{}, status)

	response, err := g.client.GenerateContent(ctx, content, llms.WithJSONMode())
	if err != nil {
		httpErr := &core.HTTPError{URL: g.host, Err: err}
		if *status < 200 || *status > 299 {
			httpErr.StatusCode = *status
		}
		g.logger.Error("failed to generate content", "status", httpErr.StatusCode, "err", err)
		return nil, httpErr
	}

	if len(response.Choices) < 1 {
		g.logger.Error("no choices returned from model")
		return nil, &core.MalformedResponseError{Err: errNoChoices}
	}

	profile, err := parseProfile(response.Choices[0].Content)
	if err != nil {
		g.logger.Error("error parsing generator response", "response", response.Choices[0].Content, "err", err)
		return nil, err
	}
	return profile, nil
}

type statusKey struct{}

// statusDoer records the status code of each response into the slot carried by
// the request context.
type statusDoer struct {
	client *http.Client
}

func (d statusDoer) Do(req *http.Request) (*http.Response, error) {
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	if slot, ok := req.Context().Value(statusKey{}).(*int); ok {
		*slot = resp.StatusCode
	}
	return resp, nil
}

// parseProfile decodes a response body into a Profile.
// The body must be a JSON object; missing or null keys leave fields nil.
func parseProfile(body string) (*ai.Profile, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		return nil, &core.MalformedResponseError{Body: body, Err: err}
	}
	if fields == nil {
		return nil, &core.MalformedResponseError{Body: body, Err: core.ErrNotAnObject}
	}

	summary, err := textField(fields, core.ColumnProfileSummary)
	if err != nil {
		return nil, &core.MalformedResponseError{Body: body, Err: err}
	}
	path, err := textField(fields, core.ColumnLearningPath)
	if err != nil {
		return nil, &core.MalformedResponseError{Body: body, Err: err}
	}

	return &ai.Profile{
		ProfileSummary: summary,
		LearningPath:   path,
	}, nil
}

// textField returns the string under key. Non-string values are kept as their
// JSON text.
func textField(fields map[string]json.RawMessage, key string) (*string, error) {
	raw, ok := fields[key]
	if !ok || string(raw) == "null" {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return &s, nil
	}
	compact, err := compactJSON(raw)
	if err != nil {
		return nil, err
	}
	return &compact, nil
}

func compactJSON(raw json.RawMessage) (string, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
