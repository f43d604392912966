// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test", Run: func(cmd *cobra.Command, args []string) {}}
	cmd.Flags().Duration("timeout", 0, "")
	cmd.Flags().String("addr", "127.0.0.1", "")
	cmd.Flags().Int("port", 8080, "")
	return cmd
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestApplyConfigDefaults(t *testing.T) {
	t.Run("json config fills unset flags", func(t *testing.T) {
		path := writeConfig(t, "colabkit.json", `{"timeout": "30s", "port": 9090}`)
		cmd := newFlagCmd()

		require.NoError(t, applyConfigDefaults(cmd, &RootOpts{Config: path}))

		timeout, _ := cmd.Flags().GetDuration("timeout")
		port, _ := cmd.Flags().GetInt("port")
		assert.Equal(t, 30*time.Second, timeout)
		assert.Equal(t, 9090, port)
	})

	t.Run("yaml config fills unset flags", func(t *testing.T) {
		path := writeConfig(t, "colabkit.yaml", "addr: 0.0.0.0\nport: 9999\n")
		cmd := newFlagCmd()

		require.NoError(t, applyConfigDefaults(cmd, &RootOpts{Config: path}))

		addr, _ := cmd.Flags().GetString("addr")
		port, _ := cmd.Flags().GetInt("port")
		assert.Equal(t, "0.0.0.0", addr)
		assert.Equal(t, 9999, port)
	})

	t.Run("explicit flags win over config", func(t *testing.T) {
		path := writeConfig(t, "colabkit.json", `{"port": 9090}`)
		cmd := newFlagCmd()
		require.NoError(t, cmd.Flags().Set("port", "1234"))

		require.NoError(t, applyConfigDefaults(cmd, &RootOpts{Config: path}))

		port, _ := cmd.Flags().GetInt("port")
		assert.Equal(t, 1234, port)
	})

	t.Run("unknown keys are ignored", func(t *testing.T) {
		path := writeConfig(t, "colabkit.json", `{"no-such-flag": true, "port": 9090}`)
		cmd := newFlagCmd()

		require.NoError(t, applyConfigDefaults(cmd, &RootOpts{Config: path}))

		port, _ := cmd.Flags().GetInt("port")
		assert.Equal(t, 9090, port)
	})

	t.Run("malformed json is an error", func(t *testing.T) {
		path := writeConfig(t, "colabkit.json", `{not json`)
		cmd := newFlagCmd()

		assert.Error(t, applyConfigDefaults(cmd, &RootOpts{Config: path}))
	})

	t.Run("no config file is fine", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		cmd := newFlagCmd()

		assert.NoError(t, applyConfigDefaults(cmd, &RootOpts{}))
	})
}
