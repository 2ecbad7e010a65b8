// internal/seqstore/store.go
package seqstore

import (
	"slices"
	"strings"

	"github.com/twotwotwo/sorts"

	"inprot/internal/fasta"
)

// Sequence is an immutable protein entry. Identity is the residue string.
type Sequence struct {
	Residues    string
	Description string
}

// Stats summarizes a load.
type Stats struct {
	Read       int // records parsed (including empty ones)
	Empty      int // records with no residues, dropped
	Unique     int // sequences kept
	Duplicates int // records dropped because their residues were already present
}

// Store is the ordered, duplicate-free arena of input sequences.
// Hits and intervals refer to its entries by index.
type Store struct {
	seqs   []Sequence
	maxLen int
}

// Load reads path and builds a Store from it.
func Load(path string) (*Store, Stats, error) {
	recs, err := fasta.ReadFile(path)
	if err != nil {
		return nil, Stats{}, err
	}
	s, st := New(recs)
	return s, st, nil
}

// New sorts records by residues and keeps the first record of each run of
// identical residues. Records without residues are dropped.
func New(recs []fasta.Record) (*Store, Stats) {
	st := Stats{Read: len(recs)}
	seqs := make([]Sequence, 0, len(recs))
	for _, r := range recs {
		if r.Residues == "" {
			st.Empty++
			continue
		}
		seqs = append(seqs, Sequence{Residues: r.Residues, Description: r.Description})
	}

	order := make([]int, len(seqs))
	for i := range order {
		order[i] = i
	}
	sorts.Quicksort(byResidues{seqs: seqs, order: order})
	uniq := slices.CompactFunc(seqs, func(a, b Sequence) bool {
		return a.Residues == b.Residues
	})

	st.Unique = len(uniq)
	st.Duplicates = len(seqs) - len(uniq)

	s := &Store{seqs: slices.Clip(uniq)}
	for _, q := range s.seqs {
		if len(q.Residues) > s.maxLen {
			s.maxLen = len(q.Residues)
		}
	}
	return s, st
}

// byResidues orders by residues, then by input position, so the first
// record of each duplicate run stays first.
type byResidues struct {
	seqs  []Sequence
	order []int
}

func (b byResidues) Len() int { return len(b.seqs) }

func (b byResidues) Less(i, j int) bool {
	if c := strings.Compare(b.seqs[i].Residues, b.seqs[j].Residues); c != 0 {
		return c < 0
	}
	return b.order[i] < b.order[j]
}

func (b byResidues) Swap(i, j int) {
	b.seqs[i], b.seqs[j] = b.seqs[j], b.seqs[i]
	b.order[i], b.order[j] = b.order[j], b.order[i]
}

// FromSequences builds a Store from values already known to be unique.
// It still sorts and deduplicates so the invariant holds.
func FromSequences(seqs ...Sequence) *Store {
	recs := make([]fasta.Record, len(seqs))
	for i, q := range seqs {
		recs[i] = fasta.Record{Description: q.Description, Residues: q.Residues}
	}
	s, _ := New(recs)
	return s
}

// Len is the number of stored sequences.
func (s *Store) Len() int { return len(s.seqs) }

// Residues returns the residues of the i-th sequence.
func (s *Store) Residues(i int) string { return s.seqs[i].Residues }

// Description returns the description of the i-th sequence.
func (s *Store) Description(i int) string { return s.seqs[i].Description }

// MaxLen is the length of the longest stored sequence.
func (s *Store) MaxLen() int { return s.maxLen }

// Substr returns residues[off:off+n] of the i-th sequence.
func (s *Store) Substr(i, off, n int) string { return s.seqs[i].Residues[off : off+n] }
