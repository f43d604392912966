// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package colabkit_test

import (
	"context"
	"fmt"

	"colabkit/pkg/colabkit"
)

func ExampleDownload() {
	path, err := colabkit.Download(context.Background(),
		"https://example.com/data.csv", colabkit.DownloadOptions{})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Downloaded to: %s\n", path)
}

func ExampleDownload_withProgress() {
	opts := colabkit.DownloadOptions{
		Destination: "/tmp/my_data.csv",
		Progress: func(e colabkit.ProgressEvent) {
			if e.Event == "progress" {
				fmt.Printf("%d / %d bytes\n", e.Downloaded, e.Total)
			}
		},
	}

	_, err := colabkit.Download(context.Background(), "https://example.com/data.csv", opts)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
	}
}

func ExampleSetupEnvironment() {
	env := colabkit.SetupEnvironment(colabkit.SetupOptions{EnablePlotInline: true})
	fmt.Println("platform:", env["platform"])
	fmt.Println("working directory:", env["working_directory"])
}

func ExampleGPUInfo() {
	rep := colabkit.GPUInfo(context.Background())
	if !rep.Available {
		fmt.Println("no GPU:", rep.Error)
		return
	}
	for _, dev := range rep.Devices {
		fmt.Printf("%s (%s total, %s free)\n", dev.Name, dev.MemoryTotal, dev.MemoryFree)
	}
}
