// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix marks environment overrides: INPROT_THREADS, INPROT_KMER__LOWER, ...
	EnvPrefix = "INPROT_"

	// ConfigPathEnvVar names a YAML file when --config is not given.
	ConfigPathEnvVar = "INPROT_CONFIG"

	// DefaultConfigFile is picked up from the working directory when present.
	DefaultConfigFile = "inprot.yaml"

	// MinKmer and MaxKmer bound the k range unless a config overrides them.
	MinKmer = 10
	MaxKmer = 200

	// DefaultMergeGap joins hits separated by a single residue.
	DefaultMergeGap = 1
)

// Prediction side-output modes.
const (
	WriteNone  = "none"
	WriteAMPs  = "amps"
	WriteNAMPs = "namps"
	WriteBoth  = "both"
)

// RBF kernel variants.
const (
	RBFLegacy   = "legacy"
	RBFStandard = "standard"
)

// Config is the fully resolved run configuration.
type Config struct {
	Input   string `koanf:"input" validate:"required"`
	Output  string `koanf:"output" validate:"required"`
	Scaling string `koanf:"scaling" validate:"required"`
	Model   string `koanf:"model" validate:"required"`

	Kmer KmerConfig `koanf:"kmer"`

	Threads    int    `koanf:"threads" validate:"gte=0"`
	WritePreds string `koanf:"write_preds" validate:"oneof=none amps namps both"`
	Aware      bool   `koanf:"aware"`
	SpillDir   string `koanf:"spill_dir"`
	MergeGap   int    `koanf:"merge_gap" validate:"gte=0"`
	RBF        string `koanf:"rbf" validate:"oneof=legacy standard"`
	Report     string `koanf:"report"`

	Verbose bool      `koanf:"verbose"`
	Quiet   bool      `koanf:"quiet"`
	Log     LogConfig `koanf:"log"`
}

// KmerConfig is the inclusive k range and the bounds it must respect.
type KmerConfig struct {
	Lower int `koanf:"lower" validate:"gtefield=Min"`
	Upper int `koanf:"upper" validate:"gtefield=Lower,ltefield=Max"`
	Min   int `koanf:"min" validate:"gte=1"`
	Max   int `koanf:"max" validate:"gtefield=Min"`
}

// LogConfig selects log level and encoding.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format" validate:"oneof=console json"`
}

// Default returns the built-in defaults (layer 1).
func Default() Config {
	return Config{
		Kmer:       KmerConfig{Min: MinKmer, Max: MaxKmer},
		WritePreds: WriteNone,
		MergeGap:   DefaultMergeGap,
		RBF:        RBFLegacy,
		Log:        LogConfig{Level: "info", Format: "console"},
	}
}

// Load resolves the configuration from defaults, an optional YAML file,
// INPROT_* environment variables and finally the explicit overrides
// (normally the CLI flags the user actually set), then validates it.
func Load(path string, overrides map[string]any) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	for key, v := range overrides {
		if err := k.Set(key, v); err != nil {
			return Config{}, fmt.Errorf("override %s: %w", key, err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decode configuration: %w", err)
	}
	cfg.WritePreds = NormalizeWritePreds(cfg.WritePreds)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// findConfigFile returns INPROT_CONFIG or ./inprot.yaml when either exists.
func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return DefaultConfigFile
	}
	return ""
}

// envTransform maps INPROT_KMER__LOWER to kmer.lower. INPROT_CONFIG is not a key.
func envTransform(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if key == "config" {
		return ""
	}
	return strings.ReplaceAll(key, "__", ".")
}

// NormalizeWritePreds accepts the numeric codes 0..3 used by earlier releases.
func NormalizeWritePreds(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "0", WriteNone:
		return WriteNone
	case "1", WriteAMPs:
		return WriteAMPs
	case "2", WriteNAMPs:
		return WriteNAMPs
	case "3", WriteBoth:
		return WriteBoth
	default:
		return v
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("koanf"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks field constraints and reports them with config key names.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return fmt.Errorf("validate configuration: %w", err)
	}
	msgs := make([]string, 0, len(ves))
	for _, fe := range ves {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	key := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		return key + " is required"
	case "gte":
		return fmt.Sprintf("%s must be ≥ %s (got %v)", key, fe.Param(), fe.Value())
	case "gtefield":
		return fmt.Sprintf("%s must be ≥ %s (got %v)", key, fieldKey(fe.Param()), fe.Value())
	case "ltefield":
		return fmt.Sprintf("%s must be ≤ %s (got %v)", key, fieldKey(fe.Param()), fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s] (got %q)", key, fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", key, fe.Tag())
	}
}

// fieldKey turns the Go field named in a cross-field tag into its config key.
func fieldKey(goName string) string {
	switch goName {
	case "Min":
		return "kmer.min"
	case "Max":
		return "kmer.max"
	case "Lower":
		return "kmer.lower"
	}
	return strings.ToLower(goName)
}
