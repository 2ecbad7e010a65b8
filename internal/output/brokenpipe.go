// internal/output/brokenpipe.go
package output

import (
	"errors"
	"io"
	"syscall"
)

// IsBrokenPipe is true when the reader of the shrunk proteome went away,
// as with `inprot -o - ... | head`. Such a run still counts as a success.
func IsBrokenPipe(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, syscall.EPIPE):
		return true
	default:
		return errors.Is(err, io.ErrClosedPipe)
	}
}
