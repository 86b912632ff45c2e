package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNothingConsolidated is returned by Finalize when zero files succeeded.
// It is distinct from the per-file error list, which the caller still gets.
var ErrNothingConsolidated = errors.New("nothing to export: no files were consolidated")

// ErrBatchNotFound is returned when a batch ID is unknown or has expired.
var ErrBatchNotFound = errors.New("batch not found")

// UnsupportedFormatError indicates a file suffix outside the recognized set.
type UnsupportedFormatError struct {
	File string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format: %s", e.File)
}

// MissingColumnsError reports every required column absent from a file after
// normalization, not just the first, so a single attempt surfaces everything
// wrong with the file.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing columns: %s", strings.Join(e.Missing, ", "))
}

// InvalidRangeError indicates a malformed range request (bad column letters,
// inverted bounds, or a row that would land inside the header).
type InvalidRangeError struct {
	Reason string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range: %s", e.Reason)
}
