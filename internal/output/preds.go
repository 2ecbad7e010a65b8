// internal/output/preds.go
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"inprot/internal/errs"
	"inprot/internal/kmer"
	"inprot/internal/seqstore"
)

// Prediction side-output kinds.
const (
	KindAMPs  = "amps"
	KindNAMPs = "namps"
)

// StdoutBase names side outputs when the main output goes to stdout.
const StdoutBase = "inprot"

// PredsBase is output with its last extension removed.
func PredsBase(output string) string {
	if output == "" || output == "-" {
		return StdoutBase
	}
	return strings.TrimSuffix(output, filepath.Ext(output))
}

// PredsPath names the side output of kind for k.
func PredsPath(base string, k int, kind string) string {
	return fmt.Sprintf("%s_%d-mers_%s.fasta", base, k, kind)
}

// Preds writes the per-k prediction files selected by its flags.
type Preds struct {
	Store *seqstore.Store
	Base  string
	AMPs  bool
	NAMPs bool
}

// Enabled reports whether any side output is requested.
func (p *Preds) Enabled() bool { return p.AMPs || p.NAMPs }

// Write has the shape of pipeline.PredsFunc.
func (p *Preds) Write(k int, pos, neg []kmer.Hit) error {
	if p.AMPs {
		if err := p.write(PredsPath(p.Base, k, KindAMPs), pos); err != nil {
			return err
		}
	}
	if p.NAMPs {
		if err := p.write(PredsPath(p.Base, k, KindNAMPs), neg); err != nil {
			return err
		}
	}
	return nil
}

func (p *Preds) write(path string, hits []kmer.Hit) (err error) {
	fh, err := os.Create(path)
	if err != nil {
		return errs.IO("create", path, err)
	}
	defer func() {
		if cerr := fh.Close(); err == nil {
			err = errs.IO("close", path, cerr)
		}
	}()
	if err := WriteKmers(fh, p.Store, hits); err != nil {
		return errs.IO("write", path, err)
	}
	return nil
}
