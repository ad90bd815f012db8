package executor

import (
	"errors"
	"fmt"
)

// ErrPathOutsideDir is returned by a confined Executor for a FROM path that
// is absolute or climbs out of the base directory.
var ErrPathOutsideDir = errors.New("path is outside the document directory")

// FileReadError wraps the I/O failure that prevented loading a document.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("error reading file %q: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }

// DocumentParseError wraps a document parser failure.
type DocumentParseError struct {
	Path string
	Err  error
}

func (e *DocumentParseError) Error() string {
	return fmt.Sprintf("error parsing document %q: %v", e.Path, e.Err)
}

func (e *DocumentParseError) Unwrap() error { return e.Err }
