// internal/hitstore/hitstore.go
package hitstore

import (
	"inprot/internal/kmer"
	"inprot/internal/seqstore"
)

// Sink receives the positive hits of one k-mer length.
type Sink interface {
	Put(k int, hits []kmer.Hit) error
}

// Source yields, for one sequence, a hit for every place a stored positive
// k-mer occurs in it. Hits stored from other sequences are searched for too.
type Source interface {
	Occurrences(seq int) ([]kmer.Hit, error)
}

// Store is a Sink and a Source over the same run. Close releases whatever
// the Store holds; it must be called once the reduction pass is over.
type Store interface {
	Sink
	Source
	Close() error
}

func occurrences(s *seqstore.Store, seq int, pattern string, out []kmer.Hit) []kmer.Hit {
	kmer.Occurrences(s.Residues(seq), pattern, func(off int) {
		out = append(out, kmer.Hit{Seq: seq, Offset: off, Len: len(pattern), Positive: true})
	})
	return out
}
