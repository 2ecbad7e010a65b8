// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"inprot/internal/classify"
	"inprot/internal/hitstore"
	"inprot/internal/kmer"
	"inprot/internal/overlap"
	"inprot/internal/progress"
	"inprot/internal/seqstore"
)

// Config controls one run.
type Config struct {
	Lower, Upper int // inclusive k range
	Threads      int // worker goroutines (>=1)
	MergeGap     int // see overlap.Reduce

	// Progress receives the reduction bar; nil disables it.
	Progress io.Writer
}

// PredsFunc receives the classified unique k-mers of one k.
type PredsFunc func(k int, pos, neg []kmer.Hit) error

// KStats describes one k iteration.
type KStats struct {
	K          int
	Candidates int    // k-mer positions, duplicates included
	Unique     int    // distinct k-mers
	Positive   int
	Negative   int
	Spill      string // spill file, aware mode only
}

// Stats describes a whole run.
type Stats struct {
	Sequences       seqstore.Stats
	PerK            []KStats
	RawIntervals    int
	UniqueIntervals int
	Elapsed         time.Duration
}

// Result is the deduplicated interval set in content order, plus stats.
type Result struct {
	Intervals []overlap.Interval
	Stats     Stats
}

// Driver wires the stages together. Hits is closed when Run returns.
type Driver struct {
	Store      *seqstore.Store
	Classifier classify.Classifier
	Hits       hitstore.Store
	Preds      PredsFunc // optional
	Log        zerolog.Logger
}

type (
	spillPaths interface{ Path(k int) string }
	counter    interface{ Len() int }
)

// Run executes every k in cfg's range in order, then the reduction pass.
func (d *Driver) Run(ctx context.Context, cfg Config) (res Result, err error) {
	defer func() {
		if cerr := d.Hits.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	start := time.Now()
	d.Log.Info().Int("sequences", d.Store.Len()).Msgf("A total of %d sequences", d.Store.Len())

	for k := cfg.Lower; k <= cfg.Upper; k++ {
		ks, err := d.step(ctx, k, cfg.Threads)
		if err != nil {
			return res, fmt.Errorf("k=%d: %w", k, err)
		}
		res.Stats.PerK = append(res.Stats.PerK, ks)
	}

	raw, err := d.reduce(ctx, cfg)
	if err != nil {
		return res, err
	}
	res.Stats.RawIntervals = len(raw)
	res.Intervals = overlap.Dedup(d.Store, raw)
	res.Stats.UniqueIntervals = len(res.Intervals)
	res.Stats.Elapsed = time.Since(start)
	d.Log.Info().
		Int("raw", res.Stats.RawIntervals).
		Int("unique", res.Stats.UniqueIntervals).
		Msgf("A total of %d unique regions", res.Stats.UniqueIntervals)
	return res, nil
}

// step is EXTRACT, CLASSIFY, WRITE_PREDS, PARTITION and STORE for one k.
func (d *Driver) step(ctx context.Context, k, threads int) (KStats, error) {
	ks := KStats{K: k, Candidates: kmer.Count(d.Store, k)}
	log := d.Log.With().Int("k", k).Logger()

	log.Debug().Int("candidates", ks.Candidates).Msg("Extracting unique k-mers")
	hits, err := kmer.Unique(ctx, d.Store, k, threads)
	if err != nil {
		return ks, err
	}
	ks.Unique = len(hits)
	log.Debug().Msgf("A total of %d unique k-mers", ks.Unique)
	if k > d.Store.MaxLen() {
		log.Warn().Int("longest", d.Store.MaxLen()).Msg("k is longer than every sequence")
	}

	if err := classify.Hits(ctx, d.Store, hits, d.Classifier, threads); err != nil {
		return ks, err
	}
	pos, neg := classify.Partition(hits)
	ks.Positive, ks.Negative = len(pos), len(neg)

	if d.Preds != nil {
		if err := d.Preds(k, pos, neg); err != nil {
			return ks, err
		}
	}
	if err := d.Hits.Put(k, pos); err != nil {
		return ks, err
	}
	switch hs := d.Hits.(type) {
	case spillPaths:
		ks.Spill = hs.Path(k)
		log.Debug().Str("file", ks.Spill).Msg("Positive k-mers spilled")
	case counter:
		log.Debug().Int("held", hs.Len()).Msg("Positive k-mers held in memory")
	}
	log.Info().Int("positive", ks.Positive).Int("negative", ks.Negative).
		Msgf("%d-mers: %d predicted AMPs", k, ks.Positive)
	return ks, nil
}

// reduce turns every sequence's hits into intervals. Sequences are
// independent; results are concatenated in store order.
func (d *Driver) reduce(ctx context.Context, cfg Config) ([]overlap.Interval, error) {
	n := d.Store.Len()
	if n == 0 {
		return nil, nil
	}
	d.Log.Debug().Msg("Reducing overlapping hits")

	bar := progress.New(cfg.Progress, "sequences: ", n, cfg.Threads)

	per := make([][]overlap.Interval, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Threads)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			t := time.Now()
			hits, err := d.Hits.Occurrences(i)
			if err != nil {
				return err
			}
			per[i] = overlap.Reduce(i, hits, cfg.MergeGap)
			bar.Step(time.Since(t))
			return nil
		})
	}
	err := g.Wait()
	bar.Close()
	if err != nil {
		return nil, err
	}

	total := 0
	for _, ivs := range per {
		total += len(ivs)
	}
	out := make([]overlap.Interval, 0, total)
	for _, ivs := range per {
		out = append(out, ivs...)
	}
	return out, nil
}
