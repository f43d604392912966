// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

// Package server provides the JSON sidecar API for runtime
// introspection and downloads.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"
)

// Config holds server configuration.
type Config struct {
	Addr    string
	Port    int
	BaseDir string // downloads are confined to this directory
	Version string
}

// DefaultConfig returns sensible defaults. The listener binds to
// loopback only; the sidecar is meant for the notebook VM itself.
func DefaultConfig() Config {
	return Config{
		Addr:    "127.0.0.1",
		Port:    8080,
		BaseDir: ".",
	}
}

// Server is the sidecar HTTP server.
type Server struct {
	config     Config
	httpServer *http.Server
	started    time.Time
}

// New creates a new server with the given configuration.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1"
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.BaseDir == "" {
		cfg.BaseDir = "."
	}
	return &Server{config: cfg}
}

// Handler returns the API routing handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/env", s.handleEnv)
	mux.HandleFunc("/api/gpu", s.handleGPU)
	mux.HandleFunc("/api/memory", s.handleMemory)
	mux.HandleFunc("/api/download", s.handleDownload)
	return mux
}

// Start runs the server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.started = time.Now()
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.config.Addr, s.config.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on http://%s", s.httpServer.Addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}
