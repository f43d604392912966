// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package colabkit

import (
	"path/filepath"
	"runtime"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearColabSentinels makes detection deterministic regardless of the
// machine running the tests.
func clearColabSentinels(t *testing.T) {
	t.Helper()
	for _, k := range colabEnvVars {
		t.Setenv(k, "")
	}
	old := colabSentinelPaths
	colabSentinelPaths = []string{filepath.Join(t.TempDir(), "definitely-not-colab")}
	t.Cleanup(func() { colabSentinelPaths = old })
}

func TestIsColab(t *testing.T) {
	t.Run("false outside any recognized environment", func(t *testing.T) {
		clearColabSentinels(t)
		assert.False(t, IsColab())
	})

	t.Run("true when a sentinel variable is set", func(t *testing.T) {
		clearColabSentinels(t)
		t.Setenv("COLAB_GPU", "0")
		assert.True(t, IsColab())
	})

	t.Run("true when the TPU variable is set", func(t *testing.T) {
		clearColabSentinels(t)
		t.Setenv("COLAB_TPU_ADDR", "localhost")
		assert.True(t, IsColab())
	})

	t.Run("empty variable counts as absent", func(t *testing.T) {
		clearColabSentinels(t)
		t.Setenv("COLAB_RELEASE_TAG", "")
		assert.False(t, IsColab())
	})

	t.Run("true when the directory layout is present", func(t *testing.T) {
		clearColabSentinels(t)
		dir := t.TempDir()
		old := colabSentinelPaths
		colabSentinelPaths = []string{dir}
		t.Cleanup(func() { colabSentinelPaths = old })
		assert.True(t, IsColab())
	})
}

func TestSetupEnvironment(t *testing.T) {
	clearColabSentinels(t)

	env := SetupEnvironment(SetupOptions{})

	for _, key := range []string{
		"is_colab", "go_version", "platform", "working_directory", "num_cpu", "hostname",
	} {
		assert.Contains(t, env, key)
	}

	assert.Equal(t, "false", env["is_colab"])
	assert.Equal(t, runtime.Version(), env["go_version"])
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, env["platform"])
	assert.NotEmpty(t, env["working_directory"])

	cpus, err := strconv.Atoi(env["num_cpu"])
	require.NoError(t, err)
	assert.Greater(t, cpus, 0)
}

func TestSetupEnvironment_PlotBackend(t *testing.T) {
	clearColabSentinels(t)

	t.Run("absent when not requested", func(t *testing.T) {
		env := SetupEnvironment(SetupOptions{})
		assert.NotContains(t, env, "plot_backend")
	})

	t.Run("absent key when no backend on PATH", func(t *testing.T) {
		t.Setenv("PATH", t.TempDir())
		env := SetupEnvironment(SetupOptions{EnablePlotInline: true})
		assert.NotContains(t, env, "plot_backend")
	})

	t.Run("records the first backend found", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("fake executables need a shell")
		}
		dir := t.TempDir()
		fakeTool(t, dir, "gnuplot", "#!/bin/sh\nexit 0\n")
		t.Setenv("PATH", dir)

		env := SetupEnvironment(SetupOptions{EnablePlotInline: true})
		assert.Equal(t, "gnuplot", env["plot_backend"])
	})
}

func TestReportLabel(t *testing.T) {
	assert.Equal(t, "Working Directory", reportLabel("working_directory"))
	assert.Equal(t, "Hostname", reportLabel("hostname"))
	assert.Equal(t, "Is Colab", reportLabel("is_colab"))
}
