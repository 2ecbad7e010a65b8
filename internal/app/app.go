// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"inprot/internal/appcore"
	"inprot/internal/cli"
	"inprot/internal/config"
	"inprot/internal/logging"
	"inprot/internal/version"
)

const name = "inprot"

// RunContext parses argv, resolves the configuration and runs the tool.
// It returns the process exit code.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	if len(argv) == 0 {
		argv = []string{"-h"}
	}

	code := appcore.ExitOK
	cmd := &cobra.Command{
		Use:           name + " -i INPUT -o OUTPUT -s SCALING -m MODEL -l LOWER -u UPPER",
		Short:         "AMP k-mer prediction and proteome shrinking",
		Long:          cli.Header(name),
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.SetArgs(argv)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.Flags().SortFlags = false
	opts := cli.Register(cmd.Flags())

	cmd.RunE = func(c *cobra.Command, _ []string) error {
		if opts.Version {
			_, err := fmt.Fprintf(stdout, "%s version %s\n", name, version.Version)
			return err
		}
		cfg, err := config.Load(opts.Config, cli.Overrides(c.Flags(), opts))
		if err != nil {
			return err
		}
		log := logging.New(logConfig(cfg, stderr))
		var progress io.Writer
		if cfg.Verbose && !cfg.Quiet {
			progress = stderr
		}
		code = appcore.Run(c.Context(), stdout, cfg, appcore.Options{Log: log, Progress: progress})
		return nil
	}

	if err := cmd.ExecuteContext(parent); err != nil {
		if appcore.ExitCode(err) == appcore.ExitOK {
			return appcore.ExitOK
		}
		_, _ = fmt.Fprintln(stderr, "error:", err)
		_, _ = fmt.Fprintf(stderr, "Run '%s -h' for usage.\n", name)
		return appcore.ExitUsage
	}
	return code
}

// Run is RunContext without cancellation.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func logConfig(cfg config.Config, stderr io.Writer) logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = cfg.Log.Level
	lc.Format = cfg.Log.Format
	lc.Output = stderr
	switch {
	case cfg.Quiet:
		lc.Level = "warn"
	case cfg.Verbose:
		lc.Level = "debug"
	}
	return lc
}
