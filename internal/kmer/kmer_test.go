// internal/kmer/kmer_test.go
package kmer

import (
	"context"
	"reflect"
	"testing"

	"inprot/internal/seqstore"
)

func store(res ...string) *seqstore.Store {
	seqs := make([]seqstore.Sequence, len(res))
	for i, r := range res {
		seqs[i] = seqstore.Sequence{Residues: r, Description: "s" + r}
	}
	return seqstore.FromSequences(seqs...)
}

func contents(s *seqstore.Store, hits []Hit) []string {
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = Content(s, h)
	}
	return out
}

func TestUniqueCollapsesAcrossSequences(t *testing.T) {
	s := store("AAAAKKKKKK", "KKKKKKAAAA")
	hits, err := Unique(context.Background(), s, 4, 3)
	if err != nil {
		t.Fatalf("unique: %v", err)
	}
	want := []string{"AAAA", "AAAK", "AAKK", "AKKK", "KAAA", "KKAA", "KKKA", "KKKK"}
	if got := contents(s, hits); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
	if Count(s, 4) != 14 {
		t.Errorf("Count=%d want 14", Count(s, 4))
	}
}

func TestUniqueRepresentativeIsReproducible(t *testing.T) {
	s := store("KKKKKKAAAA", "AAAAKKKKKK")
	a, _ := Unique(context.Background(), s, 4, 1)
	b, _ := Unique(context.Background(), s, 4, 8)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("thread count changed the representatives:\n%v\n%v", a, b)
	}
	for _, h := range a {
		if Content(s, h) == "KKKK" && (h.Seq != 0 || h.Offset != 4) {
			t.Errorf("KKKK representative = %+v, want seq 0 offset 4", h)
		}
	}
}

func TestUniqueIdempotent(t *testing.T) {
	s := store("ACDEFGHIKLMNPQ", "GHIKLMNPQRST", "AAAAAAAAAAAA")
	first, _ := Unique(context.Background(), s, 5, 2)
	second, _ := Unique(context.Background(), s, 5, 2)
	if !reflect.DeepEqual(contents(s, first), contents(s, second)) {
		t.Fatalf("unique is not idempotent")
	}
	seen := map[string]bool{}
	for _, c := range contents(s, first) {
		if seen[c] {
			t.Fatalf("duplicate k-mer %q", c)
		}
		seen[c] = true
	}
}

func TestUniqueKTooLong(t *testing.T) {
	s := store("ACDE", "KK")
	hits, err := Unique(context.Background(), s, 5, 2)
	if err != nil || len(hits) != 0 {
		t.Fatalf("want empty, got %v %v", hits, err)
	}
}

func TestUniqueBoundsHold(t *testing.T) {
	s := store("ACDEFGHIK", "KLMN")
	hits, _ := Unique(context.Background(), s, 4, 2)
	for _, h := range hits {
		if h.Offset < 0 || h.End() > len(s.Residues(h.Seq)) {
			t.Fatalf("hit out of bounds: %+v", h)
		}
	}
}

func TestUniqueCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Unique(ctx, store("ACDEFGHIK"), 3, 1); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestOccurrencesOverlapping(t *testing.T) {
	var got []int
	Occurrences("KKKKKK", "KKKK", func(off int) { got = append(got, off) })
	if !reflect.DeepEqual(got, []int{0, 1, 2}) {
		t.Fatalf("got %v", got)
	}
	got = got[:0]
	Occurrences("AAKAAK", "AAK", func(off int) { got = append(got, off) })
	if !reflect.DeepEqual(got, []int{0, 3}) {
		t.Fatalf("got %v", got)
	}
	Occurrences("AA", "AAA", func(int) { t.Fatal("no match expected") })
}
