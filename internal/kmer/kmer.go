// internal/kmer/kmer.go
package kmer

import (
	"context"
	"strings"

	"github.com/twotwotwo/sorts"
	"golang.org/x/sync/errgroup"

	"inprot/internal/seqstore"
)

// Hit is one k-mer occurrence: residues[Offset:Offset+Len] of store entry Seq.
type Hit struct {
	Seq      int
	Offset   int
	Len      int
	Positive bool
}

// End is the exclusive end offset.
func (h Hit) End() int { return h.Offset + h.Len }

// Content returns the k-mer residues.
func Content(s *seqstore.Store, h Hit) string { return s.Substr(h.Seq, h.Offset, h.Len) }

// Compare orders hits by length, then residues, then (Seq, Offset).
// The last two keys only pick a reproducible representative among equal k-mers.
func Compare(s *seqstore.Store, a, b Hit) int {
	if a.Len != b.Len {
		return cmpInt(a.Len, b.Len)
	}
	if c := strings.Compare(Content(s, a), Content(s, b)); c != 0 {
		return c
	}
	if a.Seq != b.Seq {
		return cmpInt(a.Seq, b.Seq)
	}
	return cmpInt(a.Offset, b.Offset)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Count is the number of k-mer positions in s, duplicates included.
func Count(s *seqstore.Store, k int) int {
	n := 0
	for i := 0; i < s.Len(); i++ {
		if l := len(s.Residues(i)); l >= k {
			n += l - k + 1
		}
	}
	return n
}

// Unique returns one hit per distinct k-mer of length k across the store,
// sorted by content. Generation runs on up to threads goroutines; each
// sequence writes into its own precomputed slice window.
func Unique(ctx context.Context, s *seqstore.Store, k, threads int) ([]Hit, error) {
	if k <= 0 {
		return nil, nil
	}
	if threads < 1 {
		threads = 1
	}

	starts := make([]int, s.Len()+1)
	for i := 0; i < s.Len(); i++ {
		n := 0
		if l := len(s.Residues(i)); l >= k {
			n = l - k + 1
		}
		starts[i+1] = starts[i] + n
	}
	total := starts[s.Len()]
	if total == 0 {
		return nil, nil
	}

	hits := make([]Hit, total)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	for i := 0; i < s.Len(); i++ {
		if starts[i] == starts[i+1] {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			w := hits[starts[i]:starts[i+1]]
			for off := range w {
				w[off] = Hit{Seq: i, Offset: off, Len: k}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	Sort(s, hits)
	return Dedup(s, hits), nil
}

// Sort orders hits with Compare using a parallel quicksort.
func Sort(s *seqstore.Store, hits []Hit) {
	sorts.Quicksort(byContent{s: s, h: hits})
}

// Dedup keeps the first hit of each run of equal content. hits must be sorted.
func Dedup(s *seqstore.Store, hits []Hit) []Hit {
	if len(hits) == 0 {
		return hits
	}
	out := hits[:1]
	for _, h := range hits[1:] {
		last := out[len(out)-1]
		if h.Len == last.Len && Content(s, h) == Content(s, last) {
			continue
		}
		out = append(out, h)
	}
	return out
}

type byContent struct {
	s *seqstore.Store
	h []Hit
}

func (b byContent) Len() int           { return len(b.h) }
func (b byContent) Less(i, j int) bool { return Compare(b.s, b.h[i], b.h[j]) < 0 }
func (b byContent) Swap(i, j int)      { b.h[i], b.h[j] = b.h[j], b.h[i] }

// Occurrences calls fn with every offset at which pattern occurs in text,
// overlapping matches included.
func Occurrences(text, pattern string, fn func(off int)) {
	if pattern == "" {
		return
	}
	base := 0
	for {
		i := strings.Index(text[base:], pattern)
		if i < 0 {
			return
		}
		fn(base + i)
		base += i + 1
		if base > len(text)-len(pattern) {
			return
		}
	}
}
