// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package colabkit

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// defaultFilename is used when the URL path yields no usable filename
// (path is empty or ends in "/").
const defaultFilename = "download"

// Download fetches rawURL and writes the response body to a local file.
// It returns the resolved destination path.
//
// The URL is validated before any network or filesystem activity;
// validation failures are returned as *ValidationError. The transfer is
// a single blocking GET with no retries. The body is written to a
// temporary ".part" file which is renamed over the destination on
// success, so an existing file at that path is either fully replaced or
// left untouched.
func Download(ctx context.Context, rawURL string, opts DownloadOptions) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	dst, err := resolveDestination(rawURL, opts.Destination)
	if err != nil {
		return "", err
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	emit := func(ev ProgressEvent) {
		if opts.Progress != nil {
			if ev.Time.IsZero() {
				ev.Time = time.Now().UTC()
			}
			if ev.URL == "" {
				ev.URL = rawURL
			}
			if ev.Path == "" {
				ev.Path = dst
			}
			opts.Progress(ev)
		}
	}

	if opts.Verbose {
		fmt.Printf("Downloading from: %s\n", rawURL)
		fmt.Printf("Saving to: %s\n", dst)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &ValidationError{Value: rawURL, Err: err}
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", &TransportError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{URL: rawURL, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	if dir := filepath.Dir(dst); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", &WriteError{Path: dst, Err: err}
		}
	}

	tmp := dst + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return "", &WriteError{Path: tmp, Err: err}
	}

	emit(ProgressEvent{Event: "start", Total: resp.ContentLength})

	sink := &trackingWriter{w: out}
	var body io.Reader = resp.Body
	if opts.Progress != nil {
		body = newProgressReader(resp.Body, resp.ContentLength, dst, emit)
	}

	n, copyErr := io.Copy(sink, body)
	if cerr := out.Close(); copyErr == nil {
		copyErr = cerr
		if cerr != nil {
			sink.err = cerr
		}
	}
	if copyErr != nil {
		os.Remove(tmp)
		if sink.err != nil {
			return "", &WriteError{Path: tmp, Err: sink.err}
		}
		return "", &TransportError{URL: rawURL, Err: copyErr}
	}

	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return "", &WriteError{Path: dst, Err: err}
	}

	emit(ProgressEvent{Event: "done", Downloaded: n, Total: resp.ContentLength})

	if opts.Verbose {
		size, _ := FormatByteSize(float64(n))
		fmt.Printf("Download complete! File size: %s\n", size)
	}

	return dst, nil
}

// resolveDestination validates rawURL and returns the effective output
// path: destination verbatim when given, otherwise a filename derived
// from the URL path under the current working directory.
func resolveDestination(rawURL, destination string) (string, error) {
	u, err := parseSourceURL(rawURL)
	if err != nil {
		return "", err
	}

	if destination != "" {
		return destination, nil
	}

	name := filenameFromPath(u.Path)
	wd, err := os.Getwd()
	if err != nil {
		return name, nil
	}
	return filepath.Join(wd, name), nil
}

// FilenameFromURL returns the filename Download would derive for
// rawURL when no explicit destination is given: the last segment of
// the URL path, query excluded, or a default name when the path yields
// none. The URL is validated the same way Download validates it.
func FilenameFromURL(rawURL string) (string, error) {
	u, err := parseSourceURL(rawURL)
	if err != nil {
		return "", err
	}
	return filenameFromPath(u.Path), nil
}

// parseSourceURL validates a source URL: non-empty, well-formed,
// http/https scheme, non-empty host.
func parseSourceURL(rawURL string) (*url.URL, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, &ValidationError{Err: ErrEmptyURL}
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, &ValidationError{Value: rawURL, Err: err}
	}
	switch u.Scheme {
	case "http", "https":
	default:
		return nil, &ValidationError{Value: rawURL, Err: ErrInvalidScheme}
	}
	if u.Host == "" {
		return nil, &ValidationError{Value: rawURL, Err: ErrMissingHost}
	}
	return u, nil
}

// filenameFromPath extracts the last segment of an already-parsed URL
// path. The query string is never part of u.Path, so it is excluded by
// construction.
func filenameFromPath(p string) string {
	name := path.Base(p)
	if name == "/" || name == "." || name == "" {
		return defaultFilename
	}
	return name
}

// trackingWriter records write-side errors so a failed io.Copy can be
// classified as a filesystem failure rather than a transport failure.
type trackingWriter struct {
	w   io.Writer
	err error
}

func (t *trackingWriter) Write(p []byte) (int, error) {
	n, err := t.w.Write(p)
	if err != nil {
		t.err = err
	}
	return n, err
}

// progressReader wraps an io.Reader and emits progress events during reads.
type progressReader struct {
	reader     io.Reader
	total      int64
	downloaded int64
	path       string
	emit       func(ProgressEvent)
	lastEmit   time.Time
	interval   time.Duration
}

func newProgressReader(r io.Reader, total int64, path string, emit func(ProgressEvent)) *progressReader {
	return &progressReader{
		reader:   r,
		total:    total,
		path:     path,
		emit:     emit,
		lastEmit: time.Now(),
		interval: 200 * time.Millisecond, // Emit at most 5 times per second
	}
}

func (pr *progressReader) Read(p []byte) (n int, err error) {
	n, err = pr.reader.Read(p)
	if n > 0 {
		pr.downloaded += int64(n)
		// Throttle emissions to avoid flooding
		if time.Since(pr.lastEmit) >= pr.interval || err == io.EOF {
			pr.emit(ProgressEvent{
				Event:      "progress",
				Path:       pr.path,
				Downloaded: pr.downloaded,
				Total:      pr.total,
			})
			pr.lastEmit = time.Now()
		}
	}
	return n, err
}
