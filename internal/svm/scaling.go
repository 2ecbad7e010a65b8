// internal/svm/scaling.go
package svm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"inprot/internal/errs"
)

// Scaled vectors map each non-degenerate dimension onto [Lower, Upper].
const (
	Lower = -1.0
	Upper = 1.0
)

// Bound is the (min, max) range observed for one feature during training.
type Bound struct {
	Min, Max float64
}

// Scaling is an svm-scale restore profile.
type Scaling struct {
	Bounds []Bound
}

// ErrDimension is returned when a vector does not match the profile.
type ErrDimension struct {
	Got, Want int
}

func (e ErrDimension) Error() string {
	return fmt.Sprintf("feature vector has %d dimensions, scaling profile has %d", e.Got, e.Want)
}

// LoadScaling reads a scaling profile from path.
func LoadScaling(path string) (*Scaling, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, errs.IO("open", path, err)
	}
	defer fh.Close()
	return ParseScaling(fh, path)
}

// ParseScaling reads an optional 3-line "y" block, then the "x" block:
// a marker line, the target range (must be exactly -1 1) and one
// "index min max" line per feature with indices 1, 2, 3, ...
func ParseScaling(r io.Reader, name string) (*Scaling, error) {
	sc := bufio.NewScanner(r)
	lineNo := 0
	next := func() (string, bool) {
		for sc.Scan() {
			lineNo++
			if l := strings.TrimSpace(sc.Text()); l != "" {
				return l, true
			}
		}
		return "", false
	}
	bad := func(format string, a ...any) error {
		return &errs.FormatError{Path: name, Line: lineNo, Msg: fmt.Sprintf(format, a...)}
	}

	line, ok := next()
	if ok && strings.HasPrefix(line, "y") {
		for i := 0; i < 3 && ok; i++ {
			line, ok = next()
		}
	}
	if !ok || !strings.HasPrefix(line, "x") {
		if err := sc.Err(); err != nil {
			return nil, errs.IO("read", name, err)
		}
		return nil, bad("missing x scaling block")
	}

	line, ok = next()
	if !ok {
		return nil, bad("missing x scaling range")
	}
	f := strings.Fields(line)
	if len(f) != 2 {
		return nil, bad("x scaling range must have two values, got %q", line)
	}
	lo, err1 := strconv.ParseFloat(f[0], 64)
	hi, err2 := strconv.ParseFloat(f[1], 64)
	if err1 != nil || err2 != nil {
		return nil, bad("x scaling range is not numeric: %q", line)
	}
	if lo != Lower || hi != Upper {
		return nil, bad("x scaling range must be %v %v, got %v %v", Lower, Upper, lo, hi)
	}

	s := &Scaling{}
	prev := 0
	for {
		line, ok = next()
		if !ok {
			break
		}
		f := strings.Fields(line)
		if len(f) != 3 {
			return nil, bad("want \"index min max\", got %q", line)
		}
		idx, err := strconv.Atoi(f[0])
		if err != nil {
			return nil, bad("bad feature index %q", f[0])
		}
		if idx != prev+1 {
			return nil, bad("feature index %d does not follow %d", idx, prev)
		}
		mn, err1 := strconv.ParseFloat(f[1], 64)
		mx, err2 := strconv.ParseFloat(f[2], 64)
		if err1 != nil || err2 != nil {
			return nil, bad("bad bounds for feature %d: %q", idx, line)
		}
		s.Bounds = append(s.Bounds, Bound{Min: mn, Max: mx})
		prev = idx
	}
	if err := sc.Err(); err != nil {
		return nil, errs.IO("read", name, err)
	}
	if len(s.Bounds) == 0 {
		return nil, bad("no feature bounds")
	}
	return s, nil
}

// Dim is the number of features in the profile.
func (s *Scaling) Dim() int { return len(s.Bounds) }

// Scale maps v in place. Degenerate dimensions (min == max) pass through;
// a value exactly at min or max maps to exactly Lower or Upper.
func (s *Scaling) Scale(v []float64) error {
	if len(v) != len(s.Bounds) {
		return ErrDimension{Got: len(v), Want: len(s.Bounds)}
	}
	for i, b := range s.Bounds {
		x := v[i]
		switch {
		case b.Min == b.Max:
		case x == b.Min:
			v[i] = Lower
		case x == b.Max:
			v[i] = Upper
		default:
			v[i] = Lower + (Upper-Lower)*(x-b.Min)/(b.Max-b.Min)
		}
	}
	return nil
}
