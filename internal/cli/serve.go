// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"

	"github.com/spf13/cobra"

	"colabkit/internal/server"
)

func newServeCmd(ctx context.Context, ro *RootOpts, version string) *cobra.Command {
	cfg := server.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the introspection and download sidecar API",
		Long: `Starts an HTTP server exposing the library over JSON endpoints:

  GET  /api/health
  GET  /api/env
  GET  /api/gpu
  GET  /api/memory
  POST /api/download   {"url": ..., "destination": ...}

Downloads are confined to the configured base directory.`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return applyConfigDefaults(cmd, ro)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Version = version
			return server.New(cfg).Start(ctx)
		},
	}

	cmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "Address to bind")
	cmd.Flags().IntVar(&cfg.Port, "port", cfg.Port, "Port to listen on")
	cmd.Flags().StringVar(&cfg.BaseDir, "base-dir", cfg.BaseDir, "Directory downloads are confined to")

	return cmd
}
