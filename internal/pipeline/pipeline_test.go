// internal/pipeline/pipeline_test.go
package pipeline

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"inprot/internal/classify"
	"inprot/internal/hitstore"
	"inprot/internal/kmer"
	"inprot/internal/overlap"
	"inprot/internal/seqstore"
)

func threeK(p string) bool { return strings.Count(p, "K") >= 3 }

func run(t *testing.T, s *seqstore.Store, hs hitstore.Store, cfg Config, c classify.Classifier) Result {
	t.Helper()
	d := &Driver{Store: s, Classifier: c, Hits: hs, Log: zerolog.Nop()}
	res, err := d.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return res
}

type region struct {
	Desc       string
	Begin, End int
	Residues   string
}

func regions(s *seqstore.Store, ivs []overlap.Interval) []region {
	var out []region
	for _, iv := range ivs {
		out = append(out, region{s.Description(iv.Seq), iv.Begin, iv.End, overlap.Content(s, iv)})
	}
	return out
}

func TestKRichSpans(t *testing.T) {
	s := seqstore.FromSequences(
		seqstore.Sequence{Residues: "AAAAKKKKKK", Description: "a"},
		seqstore.Sequence{Residues: "KKKKKKAAAA", Description: "b"},
	)
	want := []region{{"a", 3, 10, "AKKKKKK"}, {"b", 0, 7, "KKKKKKA"}}
	for _, aware := range []bool{false, true} {
		var hs hitstore.Store = hitstore.NewMemory(s)
		if aware {
			hs = hitstore.NewSpill(s, t.TempDir(), zerolog.Nop())
		}
		res := run(t, s, hs, Config{Lower: 4, Upper: 4, Threads: 2}, classify.Func(threeK))
		if got := regions(s, res.Intervals); !reflect.DeepEqual(got, want) {
			t.Fatalf("aware=%v: got %v want %v", aware, got, want)
		}
		ks := res.Stats.PerK[0]
		if ks.Candidates != 14 || ks.Unique != 8 || ks.Positive != 3 || ks.Negative != 5 {
			t.Fatalf("aware=%v: stats %+v", aware, ks)
		}
		if aware && ks.Spill == "" {
			t.Fatalf("aware run should report its spill file")
		}
	}
}

func TestSharedMotifDeduplicated(t *testing.T) {
	s := seqstore.FromSequences(
		seqstore.Sequence{Residues: "AAKKKKAA", Description: "x"},
		seqstore.Sequence{Residues: "GGKKKKGG", Description: "y"},
	)
	isK := func(p string) bool { return p == "KKKK" }
	res := run(t, s, hitstore.NewMemory(s), Config{Lower: 4, Upper: 4, Threads: 1}, classify.Func(isK))
	if res.Stats.RawIntervals != 2 || res.Stats.UniqueIntervals != 1 {
		t.Fatalf("stats %+v", res.Stats)
	}
	if got := regions(s, res.Intervals); !reflect.DeepEqual(got, []region{{"x", 2, 6, "KKKK"}}) {
		t.Fatalf("got %v", got)
	}
}

// A k-mer kept from one sequence also counts where it occurs in another.
func TestCrossSequenceOccurrences(t *testing.T) {
	s := seqstore.FromSequences(
		seqstore.Sequence{Residues: "WKKKW", Description: "p"},
		seqstore.Sequence{Residues: "AWKKKWWKKKW", Description: "q"},
	)
	isMotif := func(p string) bool { return p == "WKKKW" }
	res := run(t, s, hitstore.NewMemory(s), Config{Lower: 5, Upper: 5, Threads: 2}, classify.Func(isMotif))
	if res.Stats.PerK[0].Positive != 1 {
		t.Fatalf("one unique positive expected, got %+v", res.Stats.PerK[0])
	}
	// q covers [1,11) after merging WKKKW at 1 and at 6 (adjacent, 6 == 1+5).
	want := []region{{"p", 0, 5, "WKKKW"}, {"q", 1, 11, "WKKKWWKKKW"}}
	if got := regions(s, res.Intervals); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestModesAgreeOnRandomInput(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const alpha = "AKLGW"
	var seqs []seqstore.Sequence
	for i := 0; i < 25; i++ {
		b := make([]byte, 5+rng.Intn(30))
		for j := range b {
			b[j] = alpha[rng.Intn(len(alpha))]
		}
		seqs = append(seqs, seqstore.Sequence{Residues: string(b), Description: "s" + string(rune('A'+i))})
	}
	s := seqstore.FromSequences(seqs...)
	c := classify.Func(func(p string) bool { return strings.Count(p, "K")+strings.Count(p, "W") >= len(p)/2 })
	cfg := Config{Lower: 3, Upper: 6, Threads: 4}

	mem := run(t, s, hitstore.NewMemory(s), cfg, c)
	spill := run(t, s, hitstore.NewSpill(s, t.TempDir(), zerolog.Nop()), cfg, c)
	if !reflect.DeepEqual(mem.Intervals, spill.Intervals) {
		t.Fatalf("modes differ:\nmemory %v\nspill  %v", mem.Intervals, spill.Intervals)
	}
	cfg.Threads = 1
	serial := run(t, s, hitstore.NewMemory(s), cfg, c)
	if !reflect.DeepEqual(mem.Intervals, serial.Intervals) {
		t.Fatalf("thread count changed the output")
	}
	for _, iv := range mem.Intervals {
		if iv.Begin < 0 || iv.Begin >= iv.End || iv.End > len(s.Residues(iv.Seq)) {
			t.Fatalf("invalid interval %+v", iv)
		}
	}
}

func TestPredsHookAndSpillCleanup(t *testing.T) {
	s := seqstore.FromSequences(seqstore.Sequence{Residues: "AAAAKKKKKK", Description: "a"})
	dir := t.TempDir()
	var seen []int
	d := &Driver{
		Store:      s,
		Classifier: classify.Func(threeK),
		Hits:       hitstore.NewSpill(s, dir, zerolog.Nop()),
		Log:        zerolog.Nop(),
		Preds: func(k int, pos, neg []kmer.Hit) error {
			seen = append(seen, k, len(pos), len(neg))
			return nil
		},
	}
	if _, err := d.Run(context.Background(), Config{Lower: 4, Upper: 5, Threads: 1}); err != nil {
		t.Fatal(err)
	}
	// 4-mers: AAAA AAAK AAKK AKKK KKKK; 5-mers: AAAAK AAAKK AAKKK AKKKK KKKKK
	if !reflect.DeepEqual(seen, []int{4, 2, 3, 5, 3, 2}) {
		t.Fatalf("preds hook saw %v", seen)
	}
	if left, _ := os.ReadDir(dir); len(left) != 0 {
		t.Fatalf("spill files left: %v", left)
	}
}

func TestPredsErrorAborts(t *testing.T) {
	s := seqstore.FromSequences(seqstore.Sequence{Residues: "AAAAKKKKKK", Description: "a"})
	boom := errors.New("disk full")
	d := &Driver{
		Store: s, Classifier: classify.Func(threeK), Hits: hitstore.NewMemory(s), Log: zerolog.Nop(),
		Preds: func(int, []kmer.Hit, []kmer.Hit) error { return boom },
	}
	if _, err := d.Run(context.Background(), Config{Lower: 4, Upper: 4}); !errors.Is(err, boom) {
		t.Fatalf("want preds error, got %v", err)
	}
}

func TestCancelled(t *testing.T) {
	s := seqstore.FromSequences(seqstore.Sequence{Residues: "AAAAKKKKKK", Description: "a"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d := &Driver{Store: s, Classifier: classify.Func(threeK), Hits: hitstore.NewMemory(s), Log: zerolog.Nop()}
	if _, err := d.Run(ctx, Config{Lower: 4, Upper: 4}); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}
