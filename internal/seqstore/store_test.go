// internal/seqstore/store_test.go
package seqstore

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"inprot/internal/fasta"
)

func TestNewSortsAndDedups(t *testing.T) {
	recs := []fasta.Record{
		{Description: "b", Residues: "KKKK"},
		{Description: "a", Residues: "AAAA"},
		{Description: "b-dup", Residues: "KKKK"},
		{Description: "empty", Residues: ""},
		{Description: "c", Residues: "CCCCCC"},
	}
	s, st := New(recs)
	if st.Read != 5 || st.Empty != 1 || st.Unique != 3 || st.Duplicates != 1 {
		t.Fatalf("stats = %+v", st)
	}
	want := []string{"AAAA", "CCCCCC", "KKKK"}
	for i, w := range want {
		if s.Residues(i) != w {
			t.Errorf("seq %d = %q want %q", i, s.Residues(i), w)
		}
	}
	if s.Description(2) != "b" {
		t.Errorf("first occurrence should survive, got %q", s.Description(2))
	}
	if s.MaxLen() != 6 {
		t.Errorf("maxLen=%d", s.MaxLen())
	}
}

func TestNoTwoEqualResidues(t *testing.T) {
	s := FromSequences(
		Sequence{Residues: "AK", Description: "x"},
		Sequence{Residues: "AK", Description: "y"},
		Sequence{Residues: "KA", Description: "z"},
	)
	seen := map[string]bool{}
	for i := 0; i < s.Len(); i++ {
		if seen[s.Residues(i)] {
			t.Fatalf("duplicate residues %q", s.Residues(i))
		}
		seen[s.Residues(i)] = true
	}
	if s.Len() != 2 {
		t.Fatalf("len=%d", s.Len())
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.fa")
	if err := os.WriteFile(path, []byte(">s1\nKKKKKKAAAA\n>s2\nAAAAKKKKKK\n>s3\nKKKKKKAAAA\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, st, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Len() != 2 || st.Duplicates != 1 {
		t.Fatalf("len=%d stats=%+v", s.Len(), st)
	}
	if s.Substr(0, 4, 3) != "KKK" {
		t.Errorf("substr=%q", s.Substr(0, 4, 3))
	}
}

func TestNewKeepsFirstOfManyDuplicates(t *testing.T) {
	variants := []string{"KKAK", "AKKA", "WWKW", "AAAA", "KWKW", "CKKC", "KAKK"}
	recs := make([]fasta.Record, 5000)
	for i := range recs {
		recs[i] = fasta.Record{Description: strconv.Itoa(i), Residues: variants[(i*3)%len(variants)]}
	}
	s, st := New(recs)
	if s.Len() != len(variants) || st.Duplicates != len(recs)-len(variants) {
		t.Fatalf("len=%d stats=%+v", s.Len(), st)
	}
	first := map[string]string{}
	for _, r := range recs {
		if _, ok := first[r.Residues]; !ok {
			first[r.Residues] = r.Description
		}
	}
	for i := 0; i < s.Len(); i++ {
		if i > 0 && s.Residues(i-1) >= s.Residues(i) {
			t.Fatalf("not sorted at %d", i)
		}
		if got := s.Description(i); got != first[s.Residues(i)] {
			t.Errorf("%s kept %q, want %q", s.Residues(i), got, first[s.Residues(i)])
		}
	}
}
