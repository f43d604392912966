// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

// Package cli implements the colabkit command tree.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// RootOpts holds global CLI options.
type RootOpts struct {
	JSONOut bool
	Quiet   bool
	Verbose bool
	Config  string
	NoColor bool
}

// Execute runs the CLI with the given version string.
func Execute(version string) error {
	ro := &RootOpts{}
	ctx, cancel := signalContext(context.Background())
	defer cancel()

	// Local overrides for sentinel variables and defaults. A missing
	// .env file is the normal case.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "colabkit",
		Short:         "Helpers for Colab runtimes: environment, downloads, GPU and memory info",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if ro.NoColor {
				color.NoColor = true
			}
		},
	}

	// Global flags
	root.PersistentFlags().BoolVar(&ro.JSONOut, "json", false, "Emit machine-readable JSON on stdout")
	root.PersistentFlags().BoolVarP(&ro.Quiet, "quiet", "q", false, "Quiet mode (minimal output)")
	root.PersistentFlags().BoolVarP(&ro.Verbose, "verbose", "v", false, "Verbose output")
	root.PersistentFlags().StringVar(&ro.Config, "config", "", "Path to config file (JSON or YAML)")
	root.PersistentFlags().BoolVar(&ro.NoColor, "no-color", false, "Disable colored output")

	// Add commands
	root.AddCommand(newEnvCmd(ro))
	root.AddCommand(newDownloadCmd(ctx, ro))
	root.AddCommand(newGPUCmd(ctx, ro))
	root.AddCommand(newMemCmd(ro))
	root.AddCommand(newServeCmd(ctx, ro, version))
	root.AddCommand(newVersionCmd(version))
	root.AddCommand(newConfigCmd())
	root.SetHelpCommand(&cobra.Command{Use: "help", Hidden: true})

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return err
	}
	return nil
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-ch:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}

// configFilePath returns the explicit --config path or the first
// config file found under ~/.config.
func configFilePath(ro *RootOpts) string {
	if ro.Config != "" {
		return ro.Config
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	for _, name := range []string{"colabkit.json", "colabkit.yaml", "colabkit.yml"} {
		p := filepath.Join(home, ".config", name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// applyConfigDefaults fills flag values from the config file. Flags
// set explicitly on the command line always win.
func applyConfigDefaults(cmd *cobra.Command, ro *RootOpts) error {
	path := configFilePath(ro)
	if path == "" {
		return nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var cfg map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return fmt.Errorf("invalid YAML config file: %w", err)
		}
	default: // .json or unknown
		if err := json.Unmarshal(b, &cfg); err != nil {
			return fmt.Errorf("invalid JSON config file: %w", err)
		}
	}

	for key, val := range cfg {
		if val == nil || cmd.Flags().Lookup(key) == nil || cmd.Flags().Changed(key) {
			continue
		}
		if err := cmd.Flags().Set(key, fmt.Sprint(val)); err != nil {
			return fmt.Errorf("config key %q: %w", key, err)
		}
	}
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
