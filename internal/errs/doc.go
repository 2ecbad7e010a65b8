// Package errs holds the error classes surfaced by a run.
//
// Input problems (FormatError, ModelFormatError, RangeError) map to exit
// code 2; IOError maps to exit code 3.
package errs
