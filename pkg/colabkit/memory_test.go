// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package colabkit

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMeminfo = `MemTotal:       13290460 kB
MemFree:         9442312 kB
MemAvailable:   12103424 kB
Buffers:          206688 kB
Cached:          2471548 kB
SwapTotal:             0 kB
`

func setMeminfoPath(t *testing.T, path string) {
	t.Helper()
	old := meminfoPath
	meminfoPath = path
	t.Cleanup(func() { meminfoPath = old })
}

func TestParseMeminfo(t *testing.T) {
	t.Run("uses MemAvailable", func(t *testing.T) {
		total, avail, err := parseMeminfo(strings.NewReader(sampleMeminfo))
		require.NoError(t, err)
		assert.Equal(t, int64(13290460)*1024, total)
		assert.Equal(t, int64(12103424)*1024, avail)
	})

	t.Run("falls back to MemFree on old kernels", func(t *testing.T) {
		in := "MemTotal: 1000 kB\nMemFree: 400 kB\n"
		total, avail, err := parseMeminfo(strings.NewReader(in))
		require.NoError(t, err)
		assert.Equal(t, int64(1000)*1024, total)
		assert.Equal(t, int64(400)*1024, avail)
	})

	t.Run("missing MemTotal", func(t *testing.T) {
		_, _, err := parseMeminfo(strings.NewReader("MemFree: 400 kB\n"))
		assert.Error(t, err)
	})

	t.Run("non-numeric value", func(t *testing.T) {
		_, _, err := parseMeminfo(strings.NewReader("MemTotal: plenty kB\n"))
		assert.Error(t, err)
	})
}

func TestMemoryInfo(t *testing.T) {
	if runtime.GOOS != "linux" {
		rep := MemoryInfo()
		assert.False(t, rep.Available)
		assert.NotEmpty(t, rep.Error)
		return
	}

	t.Run("fixture file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "meminfo")
		require.NoError(t, os.WriteFile(path, []byte(sampleMeminfo), 0o644))
		setMeminfoPath(t, path)

		rep := MemoryInfo()
		require.True(t, rep.Available, "error: %s", rep.Error)
		assert.Equal(t, int64(13290460)*1024, rep.TotalBytes)
		assert.Equal(t, int64(12103424)*1024, rep.AvailableBytes)
		assert.Equal(t, rep.TotalBytes-rep.AvailableBytes, rep.UsedBytes)
		assert.InDelta(t, 8.93, rep.UsedPercent, 0.1)
		assert.NotEmpty(t, rep.Total)
		assert.NotEmpty(t, rep.Free)
		assert.NotEmpty(t, rep.Used)
	})

	t.Run("unreadable pseudo-file degrades", func(t *testing.T) {
		setMeminfoPath(t, filepath.Join(t.TempDir(), "missing"))

		rep := MemoryInfo()
		assert.False(t, rep.Available)
		assert.NotEmpty(t, rep.Error)
	})

	t.Run("real pseudo-file never fails", func(t *testing.T) {
		rep := MemoryInfo()
		if rep.Available {
			assert.Greater(t, rep.TotalBytes, int64(0))
			assert.GreaterOrEqual(t, rep.UsedPercent, 0.0)
		} else {
			assert.NotEmpty(t, rep.Error)
		}
	})
}
