// internal/logging/logging.go
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Config holds logging configuration.
type Config struct {
	// Level is the minimum level: trace, debug, info, warn, error, disabled.
	Level string

	// Format is console (human readable, default) or json.
	Format string

	// Timestamp prefixes each line with the wall-clock time.
	Timestamp bool

	// NoColor disables ANSI colors in console output.
	NoColor bool

	// Output defaults to os.Stderr; stdout may carry data.
	Output io.Writer
}

// DefaultConfig is what the CLI starts from before flags and config files apply.
func DefaultConfig() Config {
	return Config{
		Level:     "info",
		Format:    "console",
		Timestamp: true,
		Output:    os.Stderr,
	}
}

// New builds a logger for cfg. The level is set on the returned logger only,
// so several loggers (e.g. one per test) can coexist.
func New(cfg Config) zerolog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	if cfg.Format == "" {
		cfg.Format = "console"
	}

	out := cfg.Output
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{
			Out:        cfg.Output,
			TimeFormat: "15:04:05",
			NoColor:    cfg.NoColor,
		}
	}

	lg := zerolog.New(out).Level(ParseLevel(cfg.Level))
	if cfg.Timestamp {
		lg = lg.With().Timestamp().Logger()
	}
	return lg
}

// ParseLevel maps a level name to a zerolog.Level; unknown names give info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
