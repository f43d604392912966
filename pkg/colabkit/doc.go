// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

/*
Package colabkit provides standalone helpers for code running inside a
Google Colab VM (or any similar managed notebook runtime): environment
detection, environment setup/reporting, file download from a URL,
human-readable byte formatting, and GPU/memory introspection.

Every function is independent and stateless; there is no setup or
teardown ordering between them.

# Quick Start

	package main

	import (
		"context"
		"fmt"
		"log"

		"colabkit/pkg/colabkit"
	)

	func main() {
		if colabkit.IsColab() {
			fmt.Println("running inside Colab")
		}

		env := colabkit.SetupEnvironment(colabkit.SetupOptions{Verbose: true})
		fmt.Println("working directory:", env["working_directory"])

		path, err := colabkit.Download(context.Background(),
			"https://example.com/data.csv", colabkit.DownloadOptions{})
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println("saved to:", path)
	}

# Downloading

Download validates the URL before any network or filesystem activity,
derives the destination filename from the URL path when none is given,
fetches the resource with a single blocking GET, and writes it through a
temporary ".part" file that is renamed into place on success. There are
no retries and no resume; a failed call leaves at most the temporary
file behind.

Errors are classified so callers can distinguish the failure layer:

  - *ValidationError: bad input, raised before any side effect
  - *TransportError: the network request itself failed
  - *StatusError: the remote endpoint answered with a non-2xx status
  - *WriteError: the local filesystem write failed

All four implement Unwrap, so errors.Is and errors.As work through them.

# Degraded results

GPUInfo and MemoryInfo never return an error. When the underlying
source is unavailable (nvidia-smi missing, query timeout, non-Linux
platform) they return a report with Available set to false and an Error
string describing why. Unavailability is data, not a failure.

# Progress

Download accepts an optional ProgressFunc which receives throttled
ProgressEvents ("start", "progress", "done") during the transfer. The
callback is purely observational: it has no effect on the return value
or error behavior.
*/
package colabkit
