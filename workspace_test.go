package userflow

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/userflow/ai"
	"github.com/poiesic/userflow/ai/mock"
	"github.com/poiesic/userflow/core"
	"github.com/poiesic/userflow/pipeline"
	"github.com/poiesic/userflow/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sourceUsers = `[
  {
    "id": 1,
    "name": "Leanne Graham",
    "username": "Bret",
    "email": "Sincere@april.biz",
    "address": {"street": "Kulas Light", "city": "Gwenborough", "zipcode": "92998-3874"},
    "website": "hildegard.org"
  },
  {
    "id": 2,
    "name": "Ervin Howell",
    "username": "Antonette",
    "email": "Shanna@melissa.tv",
    "address": {"street": "Victor Plains", "city": "Wisokyburgh", "zipcode": "90566-7771"},
    "website": "anastasia.net"
  }
]`

func sourceServer(t *testing.T, status int) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(sourceUsers))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestWorkspace(t *testing.T, sourceURL string, gen *mock.MockProfileGenerator) *Workspace {
	t.Helper()
	ws, err := NewWorkspace(filepath.Join(t.TempDir(), "data"),
		WithProvider(mock.NewMockProviderWithGenerator(gen)),
		WithSourceURL(sourceURL),
	)
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close() })
	return ws
}

func TestNewWorkspace(t *testing.T) {
	t.Run("with provider", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "data")
		ws, err := NewWorkspace(dir, WithProvider(mock.NewMockProvider()))
		require.NoError(t, err)
		defer ws.Close()

		assert.Equal(t, dir, ws.DataDir())
		assert.Equal(t, filepath.Join(dir, "users_transformed.csv"), ws.UsersPath())
		assert.NotNil(t, ws.Runs())
		assert.Equal(t, mock.MockModel, ws.Provider().Model())

		info, err := os.Stat(filepath.Join(dir, LedgerDir))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("openai provider needs an api key", func(t *testing.T) {
		ws, err := NewWorkspace(t.TempDir(), WithAIConfig(ai.NewConfig()))
		assert.Error(t, err)
		assert.Nil(t, ws)
	})

	t.Run("openai provider from config", func(t *testing.T) {
		ws, err := NewWorkspace(t.TempDir(), WithAIConfig(ai.NewConfig(ai.WithAPIKey("sk-test"))))
		require.NoError(t, err)
		defer ws.Close()
		assert.Equal(t, ai.DefaultModel, ws.Provider().Model())
	})

	t.Run("error with invalid path", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "not_a_dir")
		require.NoError(t, os.WriteFile(file, []byte("test"), 0o644))

		ws, err := NewWorkspace(file, WithProvider(mock.NewMockProvider()))
		assert.Error(t, err)
		assert.Nil(t, ws)
	})
}

func TestWorkspace_Close(t *testing.T) {
	provider := mock.NewMockProvider()
	ws, err := NewWorkspace(t.TempDir(), WithProvider(provider))
	require.NoError(t, err)

	require.NoError(t, ws.Close())
	assert.True(t, provider.(*mock.MockProvider).Closed())
}

func TestEndToEnd(t *testing.T) {
	src := sourceServer(t, http.StatusOK)

	gen := mock.NewMockProfileGenerator()
	gen.GenerateProfileFunc = func(_ context.Context, s ai.Subject) (*ai.Profile, error) {
		return &ai.Profile{
			ProfileSummary: ai.StringPtr(*s.Name + " mora em " + *s.City + "."),
			LearningPath:   ai.StringPtr("Dados com Python"),
		}, nil
	}
	ws := newTestWorkspace(t, src.URL, gen)

	var out bytes.Buffer
	p, err := ws.NewPipeline(&out)
	require.NoError(t, err)

	run, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, gen.CallCount())
	assert.Contains(t, out.String(), pipeline.MsgDone)
	assert.Contains(t, out.String(), "Progress: 2/2 (100.0%)")

	// ledger
	recent, err := ws.Runs().RecentRuns(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, run.ID, recent[0].ID)
	assert.Equal(t, core.RunStatusSucceeded, recent[0].Status)
	assert.Equal(t, src.URL, recent[0].SourceURL)
	assert.Equal(t, mock.MockModel, recent[0].Model)
	assert.Equal(t, 2, recent[0].Rows)

	data, err := os.ReadFile(ws.UsersPath())
	require.NoError(t, err)
	assert.Equal(t, core.Checksum(data), recent[0].Checksum)

	// read service
	srv := server.New(server.Config{DataDir: ws.DataDir()})
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.JSONEq(t, `[
	  {
	    "id": 1, "name": "Leanne Graham", "username": "Bret", "email": "Sincere@april.biz",
	    "address": "{\"street\":\"Kulas Light\",\"city\":\"Gwenborough\",\"zipcode\":\"92998-3874\"}",
	    "website": "hildegard.org",
	    "profile_summary": "Leanne Graham mora em Gwenborough.",
	    "learning_path": "Dados com Python"
	  },
	  {
	    "id": 2, "name": "Ervin Howell", "username": "Antonette", "email": "Shanna@melissa.tv",
	    "address": "{\"street\":\"Victor Plains\",\"city\":\"Wisokyburgh\",\"zipcode\":\"90566-7771\"}",
	    "website": "anastasia.net",
	    "profile_summary": "Ervin Howell mora em Wisokyburgh.",
	    "learning_path": "Dados com Python"
	  }
	]`, rec.Body.String())
}

func TestEndToEnd_SourceFailure(t *testing.T) {
	src := sourceServer(t, http.StatusServiceUnavailable)
	gen := mock.NewMockProfileGenerator()
	ws := newTestWorkspace(t, src.URL, gen)

	p, err := ws.NewPipeline(nil)
	require.NoError(t, err)

	run, err := p.Run(context.Background())
	require.Error(t, err)

	var httpErr *core.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.StatusCode)
	assert.Equal(t, 0, gen.CallCount())

	_, statErr := os.Stat(ws.UsersPath())
	assert.True(t, os.IsNotExist(statErr))

	saved, err := ws.Runs().GetRun(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Equal(t, core.RunStatusFailed, saved.Status)
	assert.Contains(t, saved.Error, "503")

	// the read service reports the missing file
	srv := server.New(server.Config{DataDir: ws.DataDir()})
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
