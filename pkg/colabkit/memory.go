// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package colabkit

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// meminfoPath is the Linux memory accounting pseudo-file.
var meminfoPath = "/proc/meminfo"

// MemoryInfo reads the platform's memory accounting and returns total,
// available, and used counts plus formatted strings and a used
// percentage.
//
// It never returns an error: on non-Linux platforms, or when the
// pseudo-file cannot be read or parsed, the report comes back with
// Available set to false and the reason in Error.
func MemoryInfo() MemoryReport {
	if runtime.GOOS != "linux" {
		return MemoryReport{Error: fmt.Sprintf("memory accounting not supported on %s", runtime.GOOS)}
	}

	f, err := os.Open(meminfoPath)
	if err != nil {
		return MemoryReport{Error: fmt.Sprintf("read %s: %v", meminfoPath, err)}
	}
	defer f.Close()

	total, avail, err := parseMeminfo(f)
	if err != nil {
		return MemoryReport{Error: fmt.Sprintf("parse %s: %v", meminfoPath, err)}
	}

	used := total - avail
	return MemoryReport{
		Available:      true,
		TotalBytes:     total,
		AvailableBytes: avail,
		UsedBytes:      used,
		Total:          formatBytes(total),
		Free:           formatBytes(avail),
		Used:           formatBytes(used),
		UsedPercent:    float64(used) / float64(total) * 100,
	}
}

// parseMeminfo extracts MemTotal and MemAvailable (falling back to
// MemFree on old kernels) from meminfo-format input. Values are
// reported in kB and returned in bytes.
func parseMeminfo(r io.Reader) (total, avail int64, err error) {
	var memFree int64
	haveAvail := false

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}
		key := strings.TrimSuffix(fields[0], ":")
		switch key {
		case "MemTotal", "MemAvailable", "MemFree":
		default:
			continue
		}

		kb, perr := strconv.ParseInt(fields[1], 10, 64)
		if perr != nil {
			return 0, 0, fmt.Errorf("%s: %w", key, perr)
		}
		switch key {
		case "MemTotal":
			total = kb * 1024
		case "MemAvailable":
			avail = kb * 1024
			haveAvail = true
		case "MemFree":
			memFree = kb * 1024
		}
	}
	if err := sc.Err(); err != nil {
		return 0, 0, err
	}

	if total <= 0 {
		return 0, 0, fmt.Errorf("MemTotal missing")
	}
	if !haveAvail {
		avail = memFree
	}
	return total, avail, nil
}
