package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/poiesic/userflow/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestAppFlags(t *testing.T) {
	app := newApp()

	tests := []struct {
		name    string
		value   string
		envVars []string
	}{
		{"addr", ":5000", []string{"USERFLOW_ADDR"}},
		{"data-dir", "data", []string{"USERFLOW_DATA_DIR"}},
		{"log-level", "info", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var flag *cli.StringFlag
			for _, f := range app.Flags {
				if sf, ok := f.(*cli.StringFlag); ok && sf.Name == tt.name {
					flag = sf
				}
			}
			require.NotNil(t, flag)
			assert.Equal(t, tt.value, flag.Value)
			assert.Equal(t, tt.envVars, flag.EnvVars)
		})
	}
}

func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return addr
}

func TestServe(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, server.DefaultFileName), []byte("id,name\n1,Ana\n"), 0o644))

	addr := freeAddr(t)
	srv := server.New(server.Config{Addr: addr, DataDir: dir})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, srv) }()

	var resp *http.Response
	require.Eventually(t, func() bool {
		var err error
		resp, err = http.Get(fmt.Sprintf("http://%s/users", addr))
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[{"id":1,"name":"Ana"}]`, string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServe_AddressInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	srv := server.New(server.Config{Addr: ln.Addr().String(), DataDir: t.TempDir()})
	err = serve(context.Background(), srv)
	assert.Error(t, err)
}

func TestSetupLogger_Invalid(t *testing.T) {
	app := newApp()
	app.Action = func(c *cli.Context) error { return nil }

	err := app.Run([]string{"api", "--log-level", "verbose"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}
