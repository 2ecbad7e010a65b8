// internal/hitstore/spill.go
package hitstore

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"inprot/internal/errs"
	"inprot/internal/kmer"
	"inprot/internal/seqstore"
)

// Spill writes each k's positive hits to its own file as "seq offset length"
// lines and re-reads every file for each sequence during reduction.
type Spill struct {
	store *seqstore.Store
	dir   string
	runID string
	log   zerolog.Logger

	mu     sync.Mutex
	paths  map[int]string
	keys   []int
	warned map[string]bool
}

// NewSpill keeps its files in dir, which must exist.
func NewSpill(s *seqstore.Store, dir string, log zerolog.Logger) *Spill {
	return &Spill{
		store:  s,
		dir:    dir,
		runID:  uuid.NewString(),
		log:    log,
		paths:  make(map[int]string),
		warned: make(map[string]bool),
	}
}

// Path is the spill file of k, or "" if nothing was put for k.
func (sp *Spill) Path(k int) string {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	return sp.paths[k]
}

// Put creates the file for k even when hits is empty. Putting the same k
// twice replaces the file.
func (sp *Spill) Put(k int, hits []kmer.Hit) (err error) {
	path := filepath.Join(sp.dir, fmt.Sprintf("%d_%s", k, sp.runID))
	fh, err := os.Create(path)
	if err != nil {
		return errs.IO("create", path, err)
	}
	sp.mu.Lock()
	if _, ok := sp.paths[k]; !ok {
		sp.keys = append(sp.keys, k)
		slices.Sort(sp.keys)
	}
	sp.paths[k] = path
	sp.mu.Unlock()

	defer func() {
		if cerr := fh.Close(); err == nil {
			err = errs.IO("close", path, cerr)
		}
	}()
	w := bufio.NewWriterSize(fh, 1<<16)
	buf := make([]byte, 0, 32)
	for _, h := range hits {
		buf = strconv.AppendInt(buf[:0], int64(h.Seq), 10)
		buf = append(buf, ' ')
		buf = strconv.AppendInt(buf, int64(h.Offset), 10)
		buf = append(buf, ' ')
		buf = strconv.AppendInt(buf, int64(h.Len), 10)
		buf = append(buf, '\n')
		if _, err := w.Write(buf); err != nil {
			return errs.IO("write", path, err)
		}
	}
	return errs.IO("write", path, w.Flush())
}

func (sp *Spill) Occurrences(seq int) ([]kmer.Hit, error) {
	sp.mu.Lock()
	keys := slices.Clone(sp.keys)
	paths := make([]string, len(keys))
	for i, k := range keys {
		paths[i] = sp.paths[k]
	}
	sp.mu.Unlock()

	var out []kmer.Hit
	n := len(sp.store.Residues(seq))
	for i, path := range paths {
		if keys[i] > n {
			break
		}
		var err error
		if out, err = sp.scan(path, seq, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (sp *Spill) scan(path string, seq int, out []kmer.Hit) ([]kmer.Hit, error) {
	fh, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		sp.warnOnce(path, "spill file is missing")
		return out, nil
	}
	if err != nil {
		return nil, errs.IO("open", path, err)
	}
	defer fh.Close()

	sc := bufio.NewScanner(fh)
	lineNo, read := 0, 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if line == "" {
			continue
		}
		h, err := sp.parse(line)
		if err != nil {
			return nil, &errs.FormatError{Path: path, Line: lineNo, Msg: err.Error()}
		}
		read++
		out = occurrences(sp.store, seq, kmer.Content(sp.store, h), out)
	}
	if err := sc.Err(); err != nil {
		return nil, errs.IO("read", path, err)
	}
	if read == 0 {
		sp.warnOnce(path, "spill file is empty")
	}
	return out, nil
}

func (sp *Spill) parse(line string) (kmer.Hit, error) {
	f := strings.Fields(line)
	if len(f) != 3 {
		return kmer.Hit{}, fmt.Errorf("want \"seq offset length\", got %q", line)
	}
	var v [3]int
	for i, s := range f {
		n, err := strconv.Atoi(s)
		if err != nil {
			return kmer.Hit{}, fmt.Errorf("bad integer %q", s)
		}
		v[i] = n
	}
	h := kmer.Hit{Seq: v[0], Offset: v[1], Len: v[2]}
	if h.Seq < 0 || h.Seq >= sp.store.Len() || h.Offset < 0 || h.Len <= 0 ||
		h.End() > len(sp.store.Residues(h.Seq)) {
		return kmer.Hit{}, fmt.Errorf("hit %d %d %d is outside the input", h.Seq, h.Offset, h.Len)
	}
	return h, nil
}

func (sp *Spill) warnOnce(path, msg string) {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	if sp.warned[path] {
		return
	}
	sp.warned[path] = true
	sp.log.Warn().Str("file", path).Msg(msg)
}

// Close removes every spill file. Files already gone are not an error.
func (sp *Spill) Close() error {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	var all []error
	for _, k := range sp.keys {
		path := sp.paths[k]
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			all = append(all, errs.IO("remove", path, err))
		}
	}
	sp.paths, sp.keys = map[int]string{}, nil
	return errors.Join(all...)
}
