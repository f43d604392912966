// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package colabkit

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatByteSize(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		want string
	}{
		{"zero", 0, "0.00 B"},
		{"sub kilobyte", 512, "512.00 B"},
		{"one kilobyte", 1024, "1.00 KB"},
		{"fractional kilobytes", 1536, "1.50 KB"},
		{"one megabyte", 1024 * 1024, "1.00 MB"},
		{"one gigabyte", 1073741824, "1.00 GB"},
		{"one terabyte", 1099511627776, "1.00 TB"},
		{"one petabyte", 1125899906842624, "1.00 PB"},
		{"beyond petabyte stays in PB", 1125899906842624 * 2048, "2048.00 PB"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FormatByteSize(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFormatByteSize_Invalid(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		want error
	}{
		{"negative", -1, ErrNegativeSize},
		{"negative fraction", -0.5, ErrNegativeSize},
		{"nan", math.NaN(), ErrNotFinite},
		{"positive infinity", math.Inf(1), ErrNotFinite},
		{"negative infinity", math.Inf(-1), ErrNotFinite},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FormatByteSize(tc.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "want %v, got %v", tc.want, err)

			var verr *ValidationError
			assert.True(t, errors.As(err, &verr))
		})
	}
}
