// internal/fasta/reader.go
package fasta

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"inprot/internal/errs"
)

// Alphabet is the set of residues accepted in sequence lines.
const Alphabet = "ACDEFGHIKLMNPQRSTVWY"

// maxLine bounds a single input line.
const maxLine = 64 << 20

var valid [256]bool

func init() {
	for i := 0; i < len(Alphabet); i++ {
		valid[Alphabet[i]] = true
	}
}

// Record is one parsed protein entry.
type Record struct {
	Description string
	Residues    string
}

// ReadFile parses path (plain, gzip or "-").
func ReadFile(path string) ([]Record, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return Read(rc, path)
}

// Read parses protein FASTA from r. name is used in error messages.
//
// Header lines start with '>' and the description is cut at the first
// space or tab. Every other line is upper-cased and must only hold residues
// from Alphabet. A non-empty line starting with a space, an invalid residue
// or residues before the first header yield *errs.FormatError.
func Read(r io.Reader, name string) ([]Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxLine)

	var (
		out    []Record
		desc   string
		seq    bytes.Buffer
		inRec  bool
		lineNo int
	)
	flush := func() {
		if inRec {
			out = append(out, Record{Description: desc, Residues: seq.String()})
		}
		seq.Reset()
	}

	for sc.Scan() {
		lineNo++
		line := bytes.TrimRight(sc.Bytes(), "\r")
		if len(line) == 0 {
			continue
		}
		if line[0] == ' ' {
			return nil, &errs.FormatError{Path: name, Line: lineNo, Msg: "line has invalid characters (leading space)"}
		}
		if line[0] == '>' {
			flush()
			desc = headerDescription(line[1:])
			inRec = true
			continue
		}
		if !inRec {
			return nil, &errs.FormatError{Path: name, Line: lineNo, Msg: "sequence data before first header"}
		}
		for i, c := range line {
			if 'a' <= c && c <= 'z' {
				c -= 'a' - 'A'
				line[i] = c
			}
			if !valid[c] {
				return nil, &errs.FormatError{Path: name, Line: lineNo,
					Msg: fmt.Sprintf("line has invalid characters (%q at column %d)", c, i+1)}
			}
		}
		seq.Write(line)
	}
	if err := sc.Err(); err != nil {
		return nil, errs.IO("read", name, err)
	}
	flush()
	return out, nil
}

func headerDescription(h []byte) string {
	if i := bytes.IndexAny(h, " \t"); i >= 0 {
		h = h[:i]
	}
	return string(h)
}
