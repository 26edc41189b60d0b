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

// Package server exposes the persisted users file over HTTP.
//
// GET /users returns the rows of the users file as a JSON array of objects, with
// keys in column order. The file is read on every request; nothing is cached and
// nothing is written. A missing file yields a 404 asking the operator to run the
// pipeline first.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	// DefaultAddr matches the port the service has always listened on.
	DefaultAddr = ":5000"

	// DefaultDataDir is the directory holding the users file.
	DefaultDataDir = "data"

	// DefaultFileName is the users file name.
	DefaultFileName = "users_transformed.csv"

	// HandlerTimeout bounds each request. The server write timeout is kept above it.
	HandlerTimeout = 10 * time.Second
)

// Config holds the read service settings.
type Config struct {
	Addr     string
	DataDir  string
	FileName string
}

func (c Config) withDefaults() Config {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir
	}
	if c.FileName == "" {
		c.FileName = DefaultFileName
	}
	return c
}

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	path       string
	fileName   string
	logger     *slog.Logger
}

// New constructs a Server with basic middleware and defaults.
func New(cfg Config) *Server {
	cfg = cfg.withDefaults()

	s := &Server{
		path:     filepath.Join(cfg.DataDir, cfg.FileName),
		fileName: cfg.FileName,
		logger:   slog.Default().With("component", "server"),
	}

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		requestLogger(s.logger),
		middleware.Recoverer,
		middleware.Timeout(HandlerTimeout),
	)
	router.Get("/healthz", s.healthz)
	router.Get("/users", s.listUsers)

	s.router = router
	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: HandlerTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Router exposes the chi router.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start listens on the configured address and serves until Shutdown is called.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until Shutdown is called.
// It returns nil after a graceful shutdown.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("serving users", "addr", ln.Addr().String(), "file", s.path)
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests until
// ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down")
	return s.httpServer.Shutdown(ctx)
}
