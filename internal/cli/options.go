// internal/cli/options.go
package cli

import (
	"fmt"

	"github.com/spf13/pflag"

	"inprot/internal/version"
)

// Options holds all CLI flags.
type Options struct {
	// Files
	Input   string
	Output  string
	Scaling string
	Model   string
	Config  string

	// k range
	Lower int
	Upper int

	// Run
	Threads    int
	WritePreds string
	Aware      bool
	SpillDir   string
	MergeGap   int
	RBF        string
	Report     string

	// Logging
	Verbose   bool
	Quiet     bool
	LogFormat string

	Version bool
}

// flagKeys maps flag names to the configuration keys they override.
var flagKeys = map[string]string{
	"input":      "input",
	"output":     "output",
	"scaling":    "scaling",
	"model":      "model",
	"lower":      "kmer.lower",
	"upper":      "kmer.upper",
	"threads":    "threads",
	"write":      "write_preds",
	"aware":      "aware",
	"spill-dir":  "spill_dir",
	"merge-gap":  "merge_gap",
	"rbf":        "rbf",
	"report":     "report",
	"verbose":    "verbose",
	"quiet":      "quiet",
	"log-format": "log.format",
}

// Header is printed above the flag list in help output.
func Header(name string) string {
	return fmt.Sprintf(`%s: AMP k-mer prediction and proteome shrinking

Version: %s

Scores every unique k-mer of the input proteome with an SVM and writes the
merged, deduplicated regions predicted as antimicrobial peptides.`, name, version.Version)
}

// Register adds every flag to fs and returns the Options they fill.
func Register(fs *pflag.FlagSet) *Options {
	o := &Options{}

	// Files
	fs.StringVarP(&o.Input, "input", "i", "", "input proteome FASTA ('-' for stdin, .gz accepted) [*]")
	fs.StringVarP(&o.Output, "output", "o", "", "shrunk proteome FASTA ('-' for stdout) [*]")
	fs.StringVarP(&o.Scaling, "scaling", "s", "", "svm-scale restore file [*]")
	fs.StringVarP(&o.Model, "model", "m", "", "libsvm model file [*]")
	fs.StringVarP(&o.Config, "config", "c", "", "YAML config file (default ./inprot.yaml when present)")

	// k range
	fs.IntVarP(&o.Lower, "lower", "l", 0, "smallest k-mer length [*]")
	fs.IntVarP(&o.Upper, "upper", "u", 0, "largest k-mer length [*]")

	// Run
	fs.IntVarP(&o.Threads, "threads", "t", 0, "number of worker threads (0 = all CPUs)")
	fs.StringVarP(&o.WritePreds, "write", "w", "none", "write per-k predictions: none|amps|namps|both (or 0-3)")
	fs.BoolVarP(&o.Aware, "aware", "a", false, "memory-aware mode: spill positive k-mers to disk")
	fs.StringVar(&o.SpillDir, "spill-dir", "", "directory for spill files (default: next to the output)")
	fs.IntVar(&o.MergeGap, "merge-gap", 1, "largest gap in residues bridged when merging hits")
	fs.StringVar(&o.RBF, "rbf", "legacy", "RBF kernel: legacy (squared distance) | standard (exp(-gamma*d^2))")
	fs.StringVar(&o.Report, "report", "", "write a JSON run summary to this file")

	// Logging
	fs.BoolVarP(&o.Verbose, "verbose", "v", false, "verbose logging and progress bar")
	fs.BoolVarP(&o.Quiet, "quiet", "q", false, "only log warnings and errors")
	fs.StringVar(&o.LogFormat, "log-format", "console", "log format: console | json")

	fs.BoolVar(&o.Version, "version", false, "print version and exit")
	return o
}

// Overrides returns the configuration keys of the flags set on the command
// line, so that unset flags do not mask config files or the environment.
func Overrides(fs *pflag.FlagSet, o *Options) map[string]any {
	values := map[string]any{
		"input": o.Input, "output": o.Output, "scaling": o.Scaling, "model": o.Model,
		"lower": o.Lower, "upper": o.Upper, "threads": o.Threads, "write": o.WritePreds,
		"aware": o.Aware, "spill-dir": o.SpillDir, "merge-gap": o.MergeGap, "rbf": o.RBF,
		"report": o.Report, "verbose": o.Verbose, "quiet": o.Quiet, "log-format": o.LogFormat,
	}
	out := map[string]any{}
	fs.Visit(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			out[key] = values[f.Name]
		}
	})
	return out
}
