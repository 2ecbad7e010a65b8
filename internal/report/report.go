// internal/report/report.go
package report

import (
	"io"
	"os"

	"github.com/goccy/go-json"

	"inprot/internal/errs"
	"inprot/internal/pipeline"
	"inprot/pkg/api"
)

// Meta is the part of a report that does not come from pipeline.Stats.
type Meta struct {
	Version                       string
	Input, Output, Scaling, Model string
	Lower, Upper, Threads         int
	Aware                         bool
	Kernel, RBF                   string
}

// Build assembles the stable report from run metadata and stats.
func Build(m Meta, st pipeline.Stats) api.RunReportV1 {
	mode := "memory"
	if m.Aware {
		mode = "aware"
	}
	r := api.RunReportV1{
		Version: m.Version,
		Input:   m.Input, Output: m.Output, Scaling: m.Scaling, Model: m.Model,
		Lower: m.Lower, Upper: m.Upper, Mode: mode, Kernel: m.Kernel, RBF: m.RBF, Threads: m.Threads,
		Sequences: api.SequenceStatsV1{
			Read: st.Sequences.Read, Empty: st.Sequences.Empty,
			Unique: st.Sequences.Unique, Duplicates: st.Sequences.Duplicates,
		},
		Kmers:         make([]api.KmerStatsV1, 0, len(st.PerK)),
		RawRegions:    st.RawIntervals,
		UniqueRegions: st.UniqueIntervals,
		ElapsedSec:    st.Elapsed.Seconds(),
	}
	for _, k := range st.PerK {
		r.Kmers = append(r.Kmers, api.KmerStatsV1{
			K: k.K, Candidates: k.Candidates, Unique: k.Unique,
			Positive: k.Positive, Negative: k.Negative, Spill: k.Spill,
		})
	}
	return r
}

// Encode writes r as indented JSON.
func Encode(w io.Writer, r api.RunReportV1) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteFile writes r to path.
func WriteFile(path string, r api.RunReportV1) (err error) {
	fh, err := os.Create(path)
	if err != nil {
		return errs.IO("create", path, err)
	}
	defer func() {
		if cerr := fh.Close(); err == nil {
			err = errs.IO("close", path, cerr)
		}
	}()
	if err := Encode(fh, r); err != nil {
		return errs.IO("write", path, err)
	}
	return nil
}
