// internal/classify/classify.go
package classify

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"inprot/internal/descriptor"
	"inprot/internal/kmer"
	"inprot/internal/seqstore"
	"inprot/internal/svm"
)

// Classifier decides whether a peptide is a predicted AMP.
// Implementations must be safe for concurrent use.
type Classifier interface {
	Positive(peptide string) (bool, error)
}

// Func adapts a plain function to Classifier.
type Func func(peptide string) bool

func (f Func) Positive(peptide string) (bool, error) { return f(peptide), nil }

// SVM scores peptides with a scaled descriptor vector and a trained model.
type SVM struct {
	describe descriptor.Func
	scaling  *svm.Scaling
	model    *svm.Model
}

// NewSVM pairs a scaling profile with a model. Both must cover exactly
// descriptor.Dim features.
func NewSVM(scaling *svm.Scaling, model *svm.Model) (*SVM, error) {
	if scaling.Dim() != descriptor.Dim {
		return nil, fmt.Errorf("scaling profile has %d features, descriptor has %d", scaling.Dim(), descriptor.Dim)
	}
	if model.Dim != descriptor.Dim {
		return nil, fmt.Errorf("model was loaded for %d features, descriptor has %d", model.Dim, descriptor.Dim)
	}
	return &SVM{describe: descriptor.Describe, scaling: scaling, model: model}, nil
}

func (c *SVM) Positive(peptide string) (bool, error) {
	v := c.describe(peptide)
	if err := c.scaling.Scale(v); err != nil {
		return false, fmt.Errorf("scale %q: %w", peptide, err)
	}
	return c.model.Positive(v), nil
}

// chunk is the number of hits one worker scores per task.
const chunk = 1024

// Hits sets Positive on every hit in place. Work is split into contiguous
// chunks scored on up to threads goroutines; the first error cancels the rest.
func Hits(ctx context.Context, s *seqstore.Store, hits []kmer.Hit, c Classifier, threads int) error {
	if threads < 1 {
		threads = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	for lo := 0; lo < len(hits); lo += chunk {
		part := hits[lo:min(lo+chunk, len(hits))]
		g.Go(func() error {
			for i := range part {
				if err := gctx.Err(); err != nil {
					return err
				}
				ok, err := c.Positive(kmer.Content(s, part[i]))
				if err != nil {
					return err
				}
				part[i].Positive = ok
			}
			return nil
		})
	}
	return g.Wait()
}

// Partition splits classified hits into positives and negatives, keeping order.
func Partition(hits []kmer.Hit) (pos, neg []kmer.Hit) {
	for _, h := range hits {
		if h.Positive {
			pos = append(pos, h)
		} else {
			neg = append(neg, h)
		}
	}
	return pos, neg
}
