package models

import (
	"errors"
	"fmt"
)

// Error codes for structured error handling.
const (
	ErrCodeFileAccess     = "FILE_ACCESS"
	ErrCodeRecordCount    = "RECORD_COUNT"
	ErrCodeShortReference = "SHORT_REFERENCE"
	ErrCodeConfig         = "CONFIG_ERROR"
)

// Sentinel errors
var (
	ErrFileAccess     = errors.New("wrong file or file path")
	ErrRecordCount    = errors.New("line count is not a multiple of the record size")
	ErrShortReference = errors.New("insufficient reference lines")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// FileAccessError reports a file that could not be opened, read or written.
type FileAccessError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("%s %s [%s]: %v", e.Op, e.Path, ErrCodeFileAccess, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

// Is reports true for ErrFileAccess so callers need not care about the
// underlying os error.
func (e *FileAccessError) Is(target error) bool {
	return target == ErrFileAccess
}

// RecordCountError means the input could not be split into whole record groups.
type RecordCountError struct {
	Lines   int
	Entries int
}

// Records returns the fractional record count the input would produce.
func (e *RecordCountError) Records() float64 {
	if e.Entries == 0 {
		return 0
	}
	return float64(e.Lines) / float64(e.Entries)
}

func (e *RecordCountError) Error() string {
	return fmt.Sprintf("record count [%s]: %d lines / %d entries = %g records",
		ErrCodeRecordCount, e.Lines, e.Entries, e.Records())
}

func (e *RecordCountError) Is(target error) bool {
	return target == ErrRecordCount
}

// ShortReferenceError means the reference ran out of lines before the output did.
type ShortReferenceError struct {
	Index          int
	ReferenceLines int
}

func (e *ShortReferenceError) Error() string {
	return fmt.Sprintf("compare [%s]: line %d has no reference (reference has %d lines)",
		ErrCodeShortReference, e.Index, e.ReferenceLines)
}

func (e *ShortReferenceError) Is(target error) bool {
	return target == ErrShortReference
}
