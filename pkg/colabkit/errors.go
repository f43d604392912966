// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package colabkit

import (
	"errors"
	"fmt"
)

// Common errors returned (wrapped in a *ValidationError) by the library.
var (
	// ErrEmptyURL is returned when the source URL is empty or blank.
	ErrEmptyURL = errors.New("URL must be a non-empty string")

	// ErrInvalidScheme is returned when the URL scheme is not http or https.
	ErrInvalidScheme = errors.New("URL scheme must be http or https")

	// ErrMissingHost is returned when the URL has no host component.
	ErrMissingHost = errors.New("URL has no host")

	// ErrNegativeSize is returned when a byte count is negative.
	ErrNegativeSize = errors.New("byte size must be non-negative")

	// ErrNotFinite is returned when a byte count is NaN or infinite.
	ErrNotFinite = errors.New("byte size must be a finite number")
)

// ValidationError reports invalid input. It is always returned before
// any network or filesystem side effect has taken place.
type ValidationError struct {
	Value string // the offending input, if printable
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid input %q: %v", e.Value, e.Err)
	}
	return fmt.Sprintf("invalid input: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// TransportError reports a network-layer failure: unreachable host,
// connection reset, timeout. The request never produced a response.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("download %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError reports that the remote endpoint answered with a
// non-success HTTP status.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("download %s: bad status: %s", e.URL, e.Status)
}

// WriteError reports a local filesystem failure: permissions, missing
// directory, disk full.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
