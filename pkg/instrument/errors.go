// pkg/instrument/errors.go
package instrument

import (
	"errors"
	"fmt"
)

var (
	// ErrArchiveRequired is returned when no archive path is specified
	ErrArchiveRequired = errors.New("archive path is required")

	// ErrTransformerRequired is returned when no transformer is supplied
	ErrTransformerRequired = errors.New("transformer is required")

	// ErrPrepareTarget is returned when the target root cannot be deleted or recreated
	ErrPrepareTarget = errors.New("cannot prepare target directory")

	// ErrUnsafeTarget is returned for target roots that must never be deleted
	ErrUnsafeTarget = errors.New("refusing to delete target directory")

	// ErrOpenArchive is returned when the source archive cannot be opened or listed
	ErrOpenArchive = errors.New("cannot open archive")

	// ErrUnsafeEntryName is returned for entry names that would land outside the target tree
	ErrUnsafeEntryName = errors.New("entry name escapes target tree")

	// ErrDuplicateEntry is recorded for repeated entry names; only the first is processed
	ErrDuplicateEntry = errors.New("duplicate entry name")
)

// Entry operations reported in EntryError.Op
const (
	OpRead        = "read"
	OpMkdir       = "mkdir"
	OpWriteInput  = "write input"
	OpWriteOutput = "write output"
	OpTransform   = "transform"
	OpDuplicate   = "duplicate"
)

// EntryError is a non-fatal failure of a single archive entry.
// The run continues and the error is reported in Result.Failures.
type EntryError struct {
	Name string // Archive entry name
	Op   string // Step that failed (OpRead, OpTransform, ...)
	Err  error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Name, e.Op, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}
