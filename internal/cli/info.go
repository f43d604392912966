// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"colabkit/pkg/colabkit"
)

func newGPUCmd(ctx context.Context, ro *RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "gpu",
		Short: "Show GPU availability and per-device memory",
		RunE: func(cmd *cobra.Command, args []string) error {
			rep := colabkit.GPUInfo(ctx)

			if ro.JSONOut {
				return printJSON(rep)
			}
			if !rep.Available {
				color.Yellow("No GPU available: %s", rep.Error)
				return nil
			}

			fmt.Printf("Driver version: %s\n", rep.DriverVersion)
			for _, dev := range rep.Devices {
				fmt.Printf("GPU %d: %s\n", dev.Index, color.CyanString(dev.Name))
				fmt.Printf("  memory: %s used / %s total (%s free)\n",
					dev.MemoryUsed, dev.MemoryTotal, dev.MemoryFree)
			}
			return nil
		},
	}
}

func newMemCmd(ro *RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "mem",
		Short: "Show system memory usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			rep := colabkit.MemoryInfo()

			if ro.JSONOut {
				return printJSON(rep)
			}
			if !rep.Available {
				color.Yellow("Memory accounting unavailable: %s", rep.Error)
				return nil
			}

			fmt.Printf("Total:     %s\n", rep.Total)
			fmt.Printf("Available: %s\n", rep.Free)
			fmt.Printf("Used:      %s (%.1f%%)\n", rep.Used, rep.UsedPercent)
			return nil
		},
	}
}
