// internal/errs/errs.go
package errs

import (
	"fmt"
)

// FormatError reports a malformed sequence or scaling file.
type FormatError struct {
	Path string
	Line int
	Msg  string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d: %s", e.Path, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

// ModelFormatError reports a corrupt or inconsistent model file.
type ModelFormatError struct {
	Path string
	Line int
	Msg  string
}

func (e *ModelFormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("model %s: line %d: %s", e.Path, e.Line, e.Msg)
	}
	return fmt.Sprintf("model %s: %s", e.Path, e.Msg)
}

// RangeError reports a support-vector feature index outside [1, Max].
type RangeError struct {
	Path  string
	Line  int
	Index int
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("model %s: line %d: feature index %d outside valid range [1,%d]",
		e.Path, e.Line, e.Index, e.Max)
}

// IOError wraps a failed open, create, write or remove on Path.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string { return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err) }

func (e *IOError) Unwrap() error { return e.Err }

// IO builds an *IOError, returning nil when err is nil.
func IO(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Op: op, Path: path, Err: err}
}
