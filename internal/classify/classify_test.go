// internal/classify/classify_test.go
package classify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"inprot/internal/descriptor"
	"inprot/internal/kmer"
	"inprot/internal/seqstore"
	"inprot/internal/svm"
)

// lengthModel is positive for peptides longer than 5 residues: all features
// pass through unscaled and the decision value is Length - 5.
func lengthModel(t *testing.T) *SVM {
	t.Helper()
	var b strings.Builder
	b.WriteString("x\n-1 1\n")
	for i := 1; i <= descriptor.Dim; i++ {
		fmt.Fprintf(&b, "%d 0 0\n", i)
	}
	sc, err := svm.ParseScaling(strings.NewReader(b.String()), "len.range")
	if err != nil {
		t.Fatal(err)
	}
	text := "svm_type c_svc\nkernel_type linear\nnr_class 2\ntotal_sv 2\nrho 5\nlabel 1 -1\nnr_sv 1 1\nSV\n1 1:1\n-1 1:0\n"
	m, err := svm.ParseModel(strings.NewReader(text), "len.model", svm.LoadOptions{Dim: descriptor.Dim})
	if err != nil {
		t.Fatal(err)
	}
	c, err := NewSVM(sc, m)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestSVMPositive(t *testing.T) {
	c := lengthModel(t)
	for pep, want := range map[string]bool{"KKKK": false, "KKKKK": false, "KKKKKK": true, "GLFDIVKKVVGALGSL": true} {
		got, err := c.Positive(pep)
		if err != nil {
			t.Fatalf("%s: %v", pep, err)
		}
		if got != want {
			t.Errorf("Positive(%s)=%v want %v", pep, got, want)
		}
	}
}

func TestNewSVMDimensionMismatch(t *testing.T) {
	sc, err := svm.ParseScaling(strings.NewReader("x\n-1 1\n1 0 1\n"), "short.range")
	if err != nil {
		t.Fatal(err)
	}
	m := &svm.Model{Dim: descriptor.Dim}
	if _, err := NewSVM(sc, m); err == nil {
		t.Fatal("expected dimension mismatch error")
	}
}

func threeK(p string) bool { return strings.Count(p, "K") >= 3 }

func TestHitsAndPartition(t *testing.T) {
	s := seqstore.FromSequences(
		seqstore.Sequence{Residues: "AAAAKKKKKK", Description: "a"},
		seqstore.Sequence{Residues: "KKKKKKAAAA", Description: "b"},
	)
	hits, err := kmer.Unique(context.Background(), s, 4, 2)
	if err != nil {
		t.Fatal(err)
	}
	if err := Hits(context.Background(), s, hits, Func(threeK), 3); err != nil {
		t.Fatal(err)
	}
	pos, neg := Partition(hits)
	var got []string
	for _, h := range pos {
		got = append(got, kmer.Content(s, h))
	}
	if strings.Join(got, ",") != "AKKK,KKKA,KKKK" {
		t.Fatalf("positives=%v", got)
	}
	if len(neg) != len(hits)-3 {
		t.Fatalf("negatives=%d of %d", len(neg), len(hits))
	}
}

type failing struct{}

func (failing) Positive(string) (bool, error) { return false, errors.New("boom") }

func TestHitsPropagatesError(t *testing.T) {
	s := seqstore.FromSequences(seqstore.Sequence{Residues: "ACDEFGHIK", Description: "x"})
	hits, _ := kmer.Unique(context.Background(), s, 3, 1)
	if err := Hits(context.Background(), s, hits, failing{}, 2); err == nil {
		t.Fatal("expected classifier error")
	}
}
