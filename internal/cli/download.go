// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"colabkit/internal/tui"
	"colabkit/pkg/colabkit"
)

func newDownloadCmd(ctx context.Context, ro *RootOpts) *cobra.Command {
	var (
		output  string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "download URL",
		Short: "Download a file from an HTTP(S) URL",
		Long: `Downloads a single file. Without --output the filename is taken from
the URL path and the file lands in the current directory. An existing
file at the destination is overwritten.`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return applyConfigDefaults(cmd, ro)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := colabkit.DownloadOptions{
				Destination: output,
				Timeout:     timeout,
				Verbose:     ro.Verbose && !ro.JSONOut,
			}

			if !ro.JSONOut && !ro.Quiet {
				bar := tui.NewBar()
				defer bar.Close()
				opts.Progress = bar.Handler()
			}

			path, err := colabkit.Download(ctx, args[0], opts)
			if err != nil {
				return err
			}

			if ro.JSONOut {
				var size int64
				if fi, err := os.Stat(path); err == nil {
					size = fi.Size()
				}
				return printJSON(map[string]any{
					"path":       path,
					"size_bytes": size,
				})
			}
			if !ro.Quiet {
				fmt.Printf("%s %s\n", color.GreenString("Saved to"), path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination path (default: filename from the URL)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Overall transfer timeout (default 10m)")

	return cmd
}
