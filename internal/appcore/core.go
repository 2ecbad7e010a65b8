// internal/appcore/core.go
package appcore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"inprot/internal/classify"
	"inprot/internal/config"
	"inprot/internal/descriptor"
	"inprot/internal/errs"
	"inprot/internal/hitstore"
	"inprot/internal/output"
	"inprot/internal/pipeline"
	"inprot/internal/report"
	"inprot/internal/runutil"
	"inprot/internal/seqstore"
	"inprot/internal/svm"
	"inprot/internal/version"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitUsage    = 2 // bad flags, configuration or input files
	ExitIO       = 3
	ExitCanceled = 130
)

// Options carries what Run needs besides the configuration.
type Options struct {
	Log zerolog.Logger
	// Progress receives the verbose progress bar; nil disables it.
	Progress io.Writer
}

// Run loads every input, runs the pipeline and writes the shrunk proteome.
// Nothing is written under the output name unless the run succeeds.
func Run(ctx context.Context, stdout io.Writer, cfg config.Config, o Options) int {
	err := run(ctx, stdout, cfg, o)
	code := ExitCode(err)
	switch {
	case code == ExitCanceled:
		o.Log.Warn().Msg("interrupted")
	case err != nil:
		o.Log.Error().Err(err).Msg("run failed")
	}
	return code
}

// ExitCode maps an error from Run to the process exit status.
func ExitCode(err error) int {
	var (
		fe  *errs.FormatError
		mfe *errs.ModelFormatError
		re  *errs.RangeError
	)
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitCanceled
	case output.IsBrokenPipe(err):
		return ExitOK
	case errors.As(err, &fe), errors.As(err, &mfe), errors.As(err, &re):
		return ExitUsage
	default:
		return ExitIO
	}
}

func run(ctx context.Context, stdout io.Writer, cfg config.Config, o Options) error {
	log := o.Log
	threads, warns := runutil.EffectiveThreads(cfg.Threads)
	for _, w := range warns {
		log.Warn().Msg(w)
	}

	store, st, err := seqstore.Load(cfg.Input)
	if err != nil {
		return err
	}
	if st.Duplicates > 0 {
		log.Warn().Msgf("%d sequences read with %d uniques (%d duplicates)", st.Read-st.Empty, st.Unique, st.Duplicates)
	}
	if st.Empty > 0 {
		log.Warn().Msgf("%d records without residues skipped", st.Empty)
	}

	clf, model, err := loadClassifier(cfg)
	if err != nil {
		return err
	}
	log.Debug().
		Str("kernel", model.Kernel.Kind.String()).
		Int("support_vectors", model.TotalSV).
		Msg("Model loaded")

	hits, err := newHitStore(store, cfg, log)
	if err != nil {
		return err
	}
	preds := &output.Preds{
		Store: store,
		Base:  output.PredsBase(cfg.Output),
		AMPs:  cfg.WritePreds == config.WriteAMPs || cfg.WritePreds == config.WriteBoth,
		NAMPs: cfg.WritePreds == config.WriteNAMPs || cfg.WritePreds == config.WriteBoth,
	}
	d := &pipeline.Driver{Store: store, Classifier: clf, Hits: hits, Log: log}
	if preds.Enabled() {
		d.Preds = preds.Write
	}

	res, err := d.Run(ctx, pipeline.Config{
		Lower:    cfg.Kmer.Lower,
		Upper:    cfg.Kmer.Upper,
		Threads:  threads,
		MergeGap: cfg.MergeGap,
		Progress: o.Progress,
	})
	if err != nil {
		return err
	}
	res.Stats.Sequences = st

	if err := writeOutput(stdout, cfg.Output, store, res); err != nil {
		return err
	}
	log.Info().
		Dur("elapsed", res.Stats.Elapsed).
		Msgf("%d regions written to %s", len(res.Intervals), cfg.Output)

	if cfg.Report != "" {
		r := report.Build(report.Meta{
			Version: version.Version,
			Input:   cfg.Input, Output: cfg.Output, Scaling: cfg.Scaling, Model: cfg.Model,
			Lower: cfg.Kmer.Lower, Upper: cfg.Kmer.Upper, Threads: threads,
			Aware: cfg.Aware, Kernel: model.Kernel.Kind.String(), RBF: rbfName(cfg, model),
		}, res.Stats)
		if err := report.WriteFile(cfg.Report, r); err != nil {
			return err
		}
	}
	return nil
}

func loadClassifier(cfg config.Config) (*classify.SVM, *svm.Model, error) {
	scaling, err := svm.LoadScaling(cfg.Scaling)
	if err != nil {
		return nil, nil, err
	}
	rbf := svm.RBFLegacy
	if cfg.RBF == config.RBFStandard {
		rbf = svm.RBFStandard
	}
	model, err := svm.LoadModel(cfg.Model, svm.LoadOptions{Dim: descriptor.Dim, RBF: rbf})
	if err != nil {
		return nil, nil, err
	}
	clf, err := classify.NewSVM(scaling, model)
	if err != nil {
		return nil, nil, &errs.FormatError{Path: cfg.Scaling, Msg: err.Error()}
	}
	return clf, model, nil
}

func newHitStore(s *seqstore.Store, cfg config.Config, log zerolog.Logger) (hitstore.Store, error) {
	if !cfg.Aware {
		return hitstore.NewMemory(s), nil
	}
	dir := runutil.SpillDir(cfg.SpillDir, cfg.Output)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errs.IO("create", dir, err)
	}
	log.Debug().Str("dir", dir).Msg("Spilling positive k-mers to disk")
	return hitstore.NewSpill(s, dir, log), nil
}

func writeOutput(stdout io.Writer, path string, s *seqstore.Store, res pipeline.Result) error {
	if runutil.IsStdio(path) {
		if err := output.WriteIntervals(stdout, s, res.Intervals); err != nil {
			return fmt.Errorf("write stdout: %w", err)
		}
		return nil
	}
	f, err := output.Create(path)
	if err != nil {
		return err
	}
	defer f.Abort()
	if err := output.WriteIntervals(f, s, res.Intervals); err != nil {
		return errs.IO("write", path, err)
	}
	return f.Commit()
}

func rbfName(cfg config.Config, m *svm.Model) string {
	if m.Kernel.Kind != svm.RBF {
		return ""
	}
	return cfg.RBF
}
