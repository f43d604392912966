// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package colabkit

import "time"

// Env is a flat mapping of string keys to descriptive values about the
// current runtime, as returned by SetupEnvironment.
//
// Guaranteed keys: "is_colab", "go_version", "platform",
// "working_directory", "num_cpu", "hostname". The "plot_backend" key is
// present only when SetupOptions.EnablePlotInline was set and a backend
// was found on PATH.
type Env map[string]string

// SetupOptions configures SetupEnvironment.
type SetupOptions struct {
	// Verbose prints a human-readable setup report to stdout.
	// It has no effect on the returned mapping.
	Verbose bool

	// EnablePlotInline probes PATH for a supported plotting backend and
	// records it under the "plot_backend" key. The probe is best-effort:
	// when no backend is found the key is simply absent, the call never
	// fails because of it.
	EnablePlotInline bool
}

// DownloadOptions configures a single Download call.
//
// The zero value is usable: the destination is derived from the URL,
// output is silent, and the transfer is bounded by DefaultTimeout.
type DownloadOptions struct {
	// Destination is the explicit output path. When empty, the last
	// segment of the URL path (query excluded) is used as a filename
	// under the current working directory.
	Destination string

	// Verbose prints from/to/size lines to stdout. Purely observational.
	Verbose bool

	// Timeout bounds the whole call, connection through last byte.
	// If <= 0, DefaultTimeout is used.
	Timeout time.Duration

	// Progress is an optional callback for transfer progress events.
	Progress ProgressFunc
}

// DefaultTimeout bounds a Download call when DownloadOptions.Timeout
// is not set.
const DefaultTimeout = 10 * time.Minute

// ProgressEvent represents a progress update during a download.
//
// The Event field indicates the type of event:
//   - "start": the response arrived and the transfer is beginning
//   - "progress": periodic update during the transfer
//   - "done": the file is fully written and renamed into place
type ProgressEvent struct {
	// Time is when the event occurred (UTC).
	Time time.Time `json:"time"`

	// Event is the event type identifier.
	Event string `json:"event"`

	// URL is the source being downloaded.
	URL string `json:"url,omitempty"`

	// Path is the resolved destination path.
	Path string `json:"path,omitempty"`

	// Downloaded is the cumulative bytes transferred so far.
	Downloaded int64 `json:"downloaded,omitempty"`

	// Total is the expected size in bytes, or -1 when the server did
	// not send a Content-Length.
	Total int64 `json:"total,omitempty"`

	// Message contains additional context.
	Message string `json:"message,omitempty"`
}

// ProgressFunc is a callback for receiving progress events. It is
// invoked from the downloading goroutine and must not block for long.
type ProgressFunc func(ProgressEvent)

// GPUDevice describes one GPU as reported by the query tool.
type GPUDevice struct {
	Index            int    `json:"index"`
	Name             string `json:"name"`
	MemoryTotalBytes int64  `json:"memory_total_bytes"`
	MemoryUsedBytes  int64  `json:"memory_used_bytes"`
	MemoryFreeBytes  int64  `json:"memory_free_bytes"`
	MemoryTotal      string `json:"memory_total"`
	MemoryUsed       string `json:"memory_used"`
	MemoryFree       string `json:"memory_free"`
	DriverVersion    string `json:"driver_version"`
}

// GPUReport is the result of GPUInfo. Available is false when the
// query tool is missing, times out, or produces unparseable output; in
// that case Error explains why and Devices is empty.
type GPUReport struct {
	Available     bool        `json:"available"`
	DriverVersion string      `json:"driver_version,omitempty"`
	Devices       []GPUDevice `json:"devices,omitempty"`
	Error         string      `json:"error,omitempty"`
}

// MemoryReport is the result of MemoryInfo. Available is false on
// platforms without readable memory accounting; in that case Error
// explains why and the counters are zero.
type MemoryReport struct {
	Available      bool    `json:"available"`
	TotalBytes     int64   `json:"total_bytes"`
	AvailableBytes int64   `json:"available_bytes"`
	UsedBytes      int64   `json:"used_bytes"`
	Total          string  `json:"total,omitempty"`
	Free           string  `json:"free,omitempty"`
	Used           string  `json:"used,omitempty"`
	UsedPercent    float64 `json:"used_percent"`
	Error          string  `json:"error,omitempty"`
}
