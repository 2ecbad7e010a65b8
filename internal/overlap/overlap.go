// internal/overlap/overlap.go
package overlap

import (
	"slices"
	"strings"

	"github.com/twotwotwo/sorts"

	"inprot/internal/kmer"
	"inprot/internal/seqstore"
)

// Interval is residues[Begin:End] of store entry Seq.
type Interval struct {
	Seq   int
	Begin int
	End   int
}

// Len is the interval length in residues.
func (iv Interval) Len() int { return iv.End - iv.Begin }

// Content returns the interval residues.
func Content(s *seqstore.Store, iv Interval) string { return s.Substr(iv.Seq, iv.Begin, iv.Len()) }

// Reduce merges the hits of one sequence into covering intervals, ordered by
// Begin. A hit starting at most gap residues past the running end is
// connected and extends it; a hit inside the running interval is skipped.
// hits is reordered in place.
func Reduce(seq int, hits []kmer.Hit, gap int) []Interval {
	if len(hits) == 0 {
		return nil
	}
	slices.SortFunc(hits, func(a, b kmer.Hit) int {
		if a.Offset != b.Offset {
			return a.Offset - b.Offset
		}
		return a.End() - b.End()
	})

	var out []Interval
	cur := Interval{Seq: seq, Begin: hits[0].Offset, End: hits[0].End()}
	for _, h := range hits[1:] {
		switch {
		case h.Offset >= cur.Begin && h.End() <= cur.End:
			// inside
		case h.Offset <= cur.End+gap:
			cur.End = max(cur.End, h.End())
		default:
			out = append(out, cur)
			cur = Interval{Seq: seq, Begin: h.Offset, End: h.End()}
		}
	}
	return append(out, cur)
}

// Dedup sorts intervals by content and keeps the first of each run of equal
// content. Ties are broken by (Seq, Begin).
func Dedup(s *seqstore.Store, ivs []Interval) []Interval {
	if len(ivs) == 0 {
		return ivs
	}
	sorts.Quicksort(byContent{s: s, iv: ivs})
	out := ivs[:1]
	for _, iv := range ivs[1:] {
		if Content(s, iv) == Content(s, out[len(out)-1]) {
			continue
		}
		out = append(out, iv)
	}
	return out
}

type byContent struct {
	s  *seqstore.Store
	iv []Interval
}

func (b byContent) Len() int      { return len(b.iv) }
func (b byContent) Swap(i, j int) { b.iv[i], b.iv[j] = b.iv[j], b.iv[i] }
func (b byContent) Less(i, j int) bool {
	x, y := b.iv[i], b.iv[j]
	if c := strings.Compare(Content(b.s, x), Content(b.s, y)); c != 0 {
		return c < 0
	}
	if x.Seq != y.Seq {
		return x.Seq < y.Seq
	}
	return x.Begin < y.Begin
}
