// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"colabkit/pkg/colabkit"
)

func newEnvCmd(ro *RootOpts) *cobra.Command {
	var plotInline bool

	cmd := &cobra.Command{
		Use:   "env",
		Short: "Detect the runtime and print the environment report",
		RunE: func(cmd *cobra.Command, args []string) error {
			env := colabkit.SetupEnvironment(colabkit.SetupOptions{
				EnablePlotInline: plotInline,
			})

			if ro.JSONOut {
				return printJSON(env)
			}
			printEnvReport(env, ro)
			return nil
		},
	}

	cmd.Flags().BoolVar(&plotInline, "plot-inline", false, "Probe PATH for a plotting backend")

	return cmd
}

func printEnvReport(env colabkit.Env, ro *RootOpts) {
	header := color.New(color.FgCyan, color.Bold)
	key := color.New(color.FgGreen)

	rule := strings.Repeat("=", 50)
	if !ro.Quiet {
		header.Println(rule)
		header.Println("Environment Setup Complete")
		header.Println(rule)
	}

	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%s: %s\n", key.Sprint(k), env[k])
	}

	if !ro.Quiet {
		header.Println(rule)
	}
}
