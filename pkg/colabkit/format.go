// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package colabkit

import (
	"fmt"
	"math"
)

// byteUnits are binary (1024-based) units.
var byteUnits = [...]string{"B", "KB", "MB", "GB", "TB", "PB"}

// FormatByteSize formats a non-negative byte count as a human-readable
// string using binary units with two-decimal precision:
//
//	FormatByteSize(0)          -> "0.00 B"
//	FormatByteSize(1024)       -> "1.00 KB"
//	FormatByteSize(1073741824) -> "1.00 GB"
//
// Negative, NaN, and infinite input fail with a *ValidationError.
func FormatByteSize(n float64) (string, error) {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return "", &ValidationError{Value: fmt.Sprint(n), Err: ErrNotFinite}
	}
	if n < 0 {
		return "", &ValidationError{Value: fmt.Sprint(n), Err: ErrNegativeSize}
	}

	const unit = 1024
	i := 0
	for n >= unit && i < len(byteUnits)-1 {
		n /= unit
		i++
	}
	return fmt.Sprintf("%.2f %s", n, byteUnits[i]), nil
}

// formatBytes is FormatByteSize for trusted non-negative counts, used
// when filling report fields.
func formatBytes(n int64) string {
	s, err := FormatByteSize(float64(n))
	if err != nil {
		return "0.00 B"
	}
	return s
}
