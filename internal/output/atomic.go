// internal/output/atomic.go
package output

import (
	"os"
	"path/filepath"

	"inprot/internal/errs"
)

// File is an output file that only appears under its final name on Commit.
// Until then it is a hidden temporary sibling.
type File struct {
	*os.File
	path string
	done bool
}

// Create opens a temporary sibling of path for writing.
func Create(path string) (*File, error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	fh, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return nil, errs.IO("create", path, err)
	}
	return &File{File: fh, path: path}, nil
}

// Commit closes the file and renames it into place.
func (f *File) Commit() error {
	f.done = true
	tmp := f.Name()
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return errs.IO("close", f.path, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return errs.IO("rename", f.path, err)
	}
	return nil
}

// Abort discards the file. It is a no-op after Commit.
func (f *File) Abort() {
	if f.done {
		return
	}
	f.done = true
	_ = f.Close()
	_ = os.Remove(f.Name())
}
