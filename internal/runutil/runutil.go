// internal/runutil/runutil.go
package runutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// EffectiveThreads resolves a --threads value: 0 means all CPUs. A value
// above the CPU count is kept but reported as a warning.
func EffectiveThreads(threads int) (int, []string) {
	cpus := runtime.NumCPU()
	if threads <= 0 {
		return cpus, nil
	}
	if threads > cpus {
		return threads, []string{fmt.Sprintf("%d threads requested but only %d CPUs available", threads, cpus)}
	}
	return threads, nil
}

// SpillDir picks where aware mode writes its files: the explicit dir if
// given, else the directory of the output file, else the OS temp dir when
// the output goes to stdout.
func SpillDir(explicit, output string) string {
	switch {
	case explicit != "":
		return explicit
	case output == "" || output == "-":
		return os.TempDir()
	}
	return filepath.Dir(output)
}

// IsStdio reports whether path names stdin/stdout.
func IsStdio(path string) bool { return path == "-" }
