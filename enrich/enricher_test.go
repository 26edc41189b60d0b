package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/poiesic/userflow/ai"
	"github.com/poiesic/userflow/ai/mock"
	"github.com/poiesic/userflow/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeTable(t *testing.T, raw string) *core.Table {
	t.Helper()
	var records []*core.Record
	require.NoError(t, json.Unmarshal([]byte(raw), &records))
	return core.NewTable(records)
}

func fixedProfile(summary, path string) func(context.Context, ai.Subject) (*ai.Profile, error) {
	return func(context.Context, ai.Subject) (*ai.Profile, error) {
		return &ai.Profile{ProfileSummary: ai.StringPtr(summary), LearningPath: ai.StringPtr(path)}, nil
	}
}

func TestEnrich(t *testing.T) {
	table := decodeTable(t, `[
		{"id": 1, "name": "Ana", "username": "ana", "email": "ana@x.com", "address": {"city": "SP"}},
		{"id": 2, "name": "Bia", "username": "bia", "email": "bia@x.com", "address": {"city": "RJ"}},
		{"id": 3, "name": "Caio", "username": "caio", "email": "caio@x.com"}
	]`)

	gen := mock.NewMockProfileGenerator()
	gen.GenerateProfileFunc = fixedProfile("resumo", "Dados com Python")

	out, err := NewEnricher(gen).Enrich(context.Background(), table)
	require.NoError(t, err)
	require.Equal(t, table.Len(), out.Len())
	assert.Equal(t, 3, gen.CallCount())

	for i, row := range out.Rows {
		in := table.Rows[i]
		for _, key := range in.Keys() {
			want, _ := in.Get(key)
			got, ok := row.Get(key)
			require.True(t, ok, "row %d lost field %s", i, key)
			assert.Equal(t, want, got)
		}
		summary, _ := row.String(core.ColumnProfileSummary)
		path, _ := row.String(core.ColumnLearningPath)
		assert.Equal(t, "resumo", summary)
		assert.Equal(t, "Dados com Python", path)
	}

	assert.Equal(t,
		[]string{"id", "name", "username", "email", "address", core.ColumnProfileSummary, core.ColumnLearningPath},
		out.Columns)

	// input rows untouched
	_, ok := table.Rows[0].Get(core.ColumnProfileSummary)
	assert.False(t, ok)

	subjects := gen.Subjects()
	require.Len(t, subjects, 3)
	assert.Equal(t, "Ana", *subjects[0].Name)
	assert.Equal(t, "SP", *subjects[0].City)
	assert.Nil(t, subjects[2].City)
}

func TestEnrich_EmptyTable(t *testing.T) {
	gen := mock.NewMockProfileGenerator()

	out, err := NewEnricher(gen).Enrich(context.Background(), core.NewTable(nil))
	require.NoError(t, err)
	assert.Equal(t, 0, out.Len())
	assert.Equal(t, 0, gen.CallCount())
}

func TestEnrich_FailFast(t *testing.T) {
	table := decodeTable(t, `[{"name": "a"}, {"name": "b"}, {"name": "c"}]`)
	malformed := &core.MalformedResponseError{Body: "nope", Err: errors.New("invalid")}

	gen := mock.NewMockProfileGenerator()
	gen.GenerateProfileFunc = func(_ context.Context, s ai.Subject) (*ai.Profile, error) {
		if *s.Name == "b" {
			return nil, malformed
		}
		return &ai.Profile{}, nil
	}

	out, err := NewEnricher(gen).Enrich(context.Background(), table)
	require.Error(t, err)
	assert.Nil(t, out)
	assert.Equal(t, 2, gen.CallCount(), "rows after the failure are not processed")

	var target *core.MalformedResponseError
	assert.ErrorAs(t, err, &target)
	assert.Contains(t, err.Error(), "row 1")
}

func TestEnrich_CanceledContext(t *testing.T) {
	table := decodeTable(t, `[{"name": "a"}]`)
	gen := mock.NewMockProfileGenerator()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEnricher(gen).Enrich(ctx, table)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, gen.CallCount())
}

func TestEnrich_NilGenerator(t *testing.T) {
	_, err := NewEnricher(nil).Enrich(context.Background(), core.NewTable(nil))
	assert.ErrorIs(t, err, ErrNilGenerator)
}

func TestEnrich_Progress(t *testing.T) {
	table := decodeTable(t, `[{"name": "a"}, {"name": "b"}]`)
	var buf bytes.Buffer

	_, err := NewEnricher(mock.NewMockProfileGenerator(), WithProgress(&buf)).Enrich(context.Background(), table)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Progress: 1/2 (50.0%)")
	assert.Contains(t, output, "Progress: 2/2 (100.0%)")
	assert.True(t, strings.HasSuffix(output, "\n"))
}

func TestEnrichRecord(t *testing.T) {
	tests := []struct {
		name        string
		row         string
		profile     *ai.Profile
		wantKeys    []string
		wantSummary any
		wantPath    any
	}{
		{
			name:        "appends new fields",
			row:         `{"id": 1, "name": "Ana"}`,
			profile:     &ai.Profile{ProfileSummary: ai.StringPtr("s"), LearningPath: ai.StringPtr("p")},
			wantKeys:    []string{"id", "name", "profile_summary", "learning_path"},
			wantSummary: "s",
			wantPath:    "p",
		},
		{
			name:        "collision keeps position and takes new value",
			row:         `{"learning_path": "old", "name": "Ana"}`,
			profile:     &ai.Profile{ProfileSummary: ai.StringPtr("s"), LearningPath: ai.StringPtr("new")},
			wantKeys:    []string{"learning_path", "name", "profile_summary"},
			wantSummary: "s",
			wantPath:    "new",
		},
		{
			name:     "absent values become null",
			row:      `{"name": "Ana"}`,
			profile:  &ai.Profile{},
			wantKeys: []string{"name", "profile_summary", "learning_path"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var row core.Record
			require.NoError(t, json.Unmarshal([]byte(tt.row), &row))

			gen := mock.NewMockProfileGenerator()
			gen.GenerateProfileFunc = func(context.Context, ai.Subject) (*ai.Profile, error) {
				return tt.profile, nil
			}

			out, err := NewEnricher(gen).EnrichRecord(context.Background(), &row)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKeys, out.Keys())

			summary, ok := out.Get(core.ColumnProfileSummary)
			assert.True(t, ok)
			assert.Equal(t, tt.wantSummary, summary)
			path, ok := out.Get(core.ColumnLearningPath)
			assert.True(t, ok)
			assert.Equal(t, tt.wantPath, path)
		})
	}
}

func TestSubjectOf(t *testing.T) {
	tests := []struct {
		name     string
		row      string
		wantCity *string
		wantName *string
	}{
		{name: "nested city", row: `{"name": "Ana", "address": {"city": "SP"}}`, wantName: ai.StringPtr("Ana"), wantCity: ai.StringPtr("SP")},
		{name: "address not an object", row: `{"name": "Ana", "address": "Rua A"}`, wantName: ai.StringPtr("Ana")},
		{name: "address null", row: `{"address": null}`},
		{name: "address without city", row: `{"address": {"street": "Rua A"}}`},
		{name: "numeric name formatted", row: `{"name": 42}`, wantName: ai.StringPtr("42")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var row core.Record
			require.NoError(t, json.Unmarshal([]byte(tt.row), &row))

			subject := SubjectOf(&row)
			assert.Equal(t, tt.wantName, subject.Name)
			assert.Equal(t, tt.wantCity, subject.City)
			assert.Nil(t, subject.Email)
		})
	}
}
