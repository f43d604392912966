// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

// Package tui renders download progress on the terminal.
package tui

import (
	"os"
	"sync"

	"github.com/cheggaaa/pb/v3"

	"colabkit/pkg/colabkit"
)

// Bar renders a single-transfer progress bar on stderr, fed by the
// library's progress events. Safe to close more than once.
type Bar struct {
	mu     sync.Mutex
	bar    *pb.ProgressBar
	closed bool
}

// NewBar returns an idle bar; rendering starts on the first "start"
// event.
func NewBar() *Bar {
	return &Bar{}
}

// Handler returns the progress callback to pass to colabkit.Download.
func (b *Bar) Handler() colabkit.ProgressFunc {
	return func(ev colabkit.ProgressEvent) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.closed {
			return
		}

		switch ev.Event {
		case "start":
			total := ev.Total
			if total < 0 {
				total = 0 // unknown size, bar grows as bytes arrive
			}
			b.bar = pb.New64(total)
			b.bar.Set(pb.Bytes, true)
			b.bar.SetWriter(os.Stderr)
			b.bar.Start()

		case "progress":
			if b.bar == nil {
				return
			}
			if ev.Total > 0 && b.bar.Total() != ev.Total {
				b.bar.SetTotal(ev.Total)
			}
			if ev.Total <= 0 && ev.Downloaded > b.bar.Total() {
				b.bar.SetTotal(ev.Downloaded)
			}
			b.bar.SetCurrent(ev.Downloaded)

		case "done":
			if b.bar == nil {
				return
			}
			if ev.Downloaded > 0 {
				b.bar.SetTotal(ev.Downloaded)
				b.bar.SetCurrent(ev.Downloaded)
			}
			b.bar.Finish()
			b.bar = nil
		}
	}
}

// Close stops rendering and finishes any active bar.
func (b *Bar) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	if b.bar != nil {
		b.bar.Finish()
		b.bar = nil
	}
}
