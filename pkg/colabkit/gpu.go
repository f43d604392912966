// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package colabkit

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// nvidiaSMI is the GPU query tool looked up on PATH.
var nvidiaSMI = "nvidia-smi"

// gpuQueryTimeout bounds one nvidia-smi invocation.
const gpuQueryTimeout = 10 * time.Second

// gpuQueryFields is the --query-gpu field list. Memory values come
// back in MiB because of the nounits format flag.
const gpuQueryFields = "name,memory.total,memory.used,memory.free,driver_version"

// GPUInfo queries the system's NVIDIA GPUs via nvidia-smi and returns
// a report describing every device.
//
// It never returns an error: when the tool is not installed, times out,
// exits non-zero, or prints something unparseable, the report comes
// back with Available set to false and the reason in Error.
func GPUInfo(ctx context.Context) GPUReport {
	if ctx == nil {
		ctx = context.Background()
	}

	tool, err := exec.LookPath(nvidiaSMI)
	if err != nil {
		return GPUReport{Error: fmt.Sprintf("%s not found in PATH", nvidiaSMI)}
	}

	ctx, cancel := context.WithTimeout(ctx, gpuQueryTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, tool,
		"--query-gpu="+gpuQueryFields,
		"--format=csv,noheader,nounits",
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return GPUReport{Error: fmt.Sprintf("%s timed out after %s", nvidiaSMI, gpuQueryTimeout)}
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return GPUReport{Error: fmt.Sprintf("%s failed: %s", nvidiaSMI, msg)}
	}

	devices, err := parseGPUQuery(stdout.String())
	if err != nil {
		return GPUReport{Error: fmt.Sprintf("unexpected %s output: %v", nvidiaSMI, err)}
	}
	if len(devices) == 0 {
		return GPUReport{Error: "no GPUs reported"}
	}

	return GPUReport{
		Available:     true,
		DriverVersion: devices[0].DriverVersion,
		Devices:       devices,
	}
}

// parseGPUQuery parses csv,noheader,nounits query output, one device
// per line: name, memory.total, memory.used, memory.free (MiB),
// driver_version.
func parseGPUQuery(out string) ([]GPUDevice, error) {
	const mib = 1024 * 1024

	r := csv.NewReader(strings.NewReader(out))
	r.TrimLeadingSpace = true

	var devices []GPUDevice
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) != 5 {
			return nil, fmt.Errorf("expected 5 fields per device, got %d", len(record))
		}

		total, err := strconv.ParseInt(strings.TrimSpace(record[1]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("memory.total: %w", err)
		}
		used, err := strconv.ParseInt(strings.TrimSpace(record[2]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("memory.used: %w", err)
		}
		free, err := strconv.ParseInt(strings.TrimSpace(record[3]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("memory.free: %w", err)
		}

		devices = append(devices, GPUDevice{
			Index:            len(devices),
			Name:             strings.TrimSpace(record[0]),
			MemoryTotalBytes: total * mib,
			MemoryUsedBytes:  used * mib,
			MemoryFreeBytes:  free * mib,
			MemoryTotal:      formatBytes(total * mib),
			MemoryUsed:       formatBytes(used * mib),
			MemoryFree:       formatBytes(free * mib),
			DriverVersion:    strings.TrimSpace(record[4]),
		})
	}
	return devices, nil
}
