// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package colabkit

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sort"
	"strconv"
	"strings"
)

// colabEnvVars are set (non-empty) by the Colab runtime. Any one of
// them is enough to identify the environment.
var colabEnvVars = []string{
	"COLAB_RELEASE_TAG",
	"COLAB_GPU",
	"COLAB_TPU_ADDR",
	"COLAB_JUPYTER_IP",
}

// colabSentinelPaths all exist on a Colab VM. They are only trusted
// together, since each one alone also appears on ordinary Jupyter hosts.
var colabSentinelPaths = []string{
	"/content",
	"/usr/local/share/jupyter",
}

// plotBackends are probed on PATH, in order, by SetupEnvironment when
// inline plotting is requested.
var plotBackends = []string{"gnuplot", "python3"}

// IsColab reports whether the current process is running inside a
// Google Colab VM. It checks the Colab sentinel environment variables
// first and falls back to the VM's directory layout. It never fails;
// outside any recognized environment it returns false.
func IsColab() bool {
	for _, k := range colabEnvVars {
		if os.Getenv(k) != "" {
			return true
		}
	}
	for _, p := range colabSentinelPaths {
		fi, err := os.Stat(p)
		if err != nil || !fi.IsDir() {
			return false
		}
	}
	return true
}

// SetupEnvironment gathers basic information about the current runtime
// and returns it as a flat mapping.
//
// With EnablePlotInline set, it additionally probes PATH for a
// plotting backend and records the first hit under "plot_backend".
// The probe is optional by design: when nothing is found the key is
// absent and the call still succeeds.
func SetupEnvironment(opts SetupOptions) Env {
	wd, _ := os.Getwd()
	hostname, _ := os.Hostname()

	env := Env{
		"is_colab":          strconv.FormatBool(IsColab()),
		"go_version":        runtime.Version(),
		"platform":          runtime.GOOS + "/" + runtime.GOARCH,
		"working_directory": wd,
		"num_cpu":           strconv.Itoa(runtime.NumCPU()),
		"hostname":          hostname,
	}

	if opts.EnablePlotInline {
		if backend, ok := probePlotBackend(); ok {
			env["plot_backend"] = backend
		}
	}

	if opts.Verbose {
		printEnvReport(env)
	}

	return env
}

// probePlotBackend looks for a supported plotting backend on PATH.
func probePlotBackend() (string, bool) {
	for _, tool := range plotBackends {
		if _, err := exec.LookPath(tool); err == nil {
			return tool, true
		}
	}
	return "", false
}

func printEnvReport(env Env) {
	rule := strings.Repeat("=", 50)
	fmt.Println(rule)
	fmt.Println("Environment Setup Complete")
	fmt.Println(rule)

	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%s: %s\n", reportLabel(k), env[k])
	}
	fmt.Println(rule)
}

// reportLabel turns a mapping key into its report heading
// ("working_directory" -> "Working Directory").
func reportLabel(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
