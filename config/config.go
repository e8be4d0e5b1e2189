package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"

	"github.com/byte4ever/stubgen/generator"
	"github.com/byte4ever/stubgen/stubfs"
	"github.com/byte4ever/stubgen/templating"
)

// Config holds all settings for a generator run.
type Config struct {
	// Root is the framework root holding the stubs
	// directory. Empty means the embedded stubs.
	Root string `yaml:"root"`

	// StubsDir is the stubs directory relative to Root.
	StubsDir string `yaml:"stubs_dir" validate:"required"`

	// ProjectDir is where artifacts are written.
	ProjectDir string `yaml:"project_dir" validate:"required"`

	// StartTag and EndTag delimit tokens. Both empty
	// means bare tokens.
	StartTag string `yaml:"start_tag" validate:"required_with=EndTag"`
	EndTag   string `yaml:"end_tag" validate:"required_with=StartTag"`

	// Force allows overwriting existing artifacts.
	Force bool `yaml:"force"`

	// Vars are extra replacements applied to every stub.
	Vars map[string]string `yaml:"vars"`

	// Generators adds kinds or overrides built-in ones
	// with the same signature.
	Generators []generator.Kind `yaml:"generators" validate:"dive"`
}

// Default returns the configuration used when no file is
// given.
func Default() Config {
	return Config{
		StubsDir:   "stubs",
		ProjectDir: ".",
	}
}

// Load reads a YAML configuration file over the defaults.
// A missing file is an error; pass an empty path to get
// the defaults.
func Load(path string) (Config, error) {
	const errCtx = "loading config"

	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path) //nolint:gosec // path from CLI flag
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf(
			"%s: decoding %s: %w", errCtx, path, err,
		)
	}

	// Relative roots are resolved against the config
	// file location.
	base := filepath.Dir(path)

	if cfg.Root != "" && !filepath.IsAbs(cfg.Root) {
		cfg.Root = filepath.Join(base, cfg.Root)
	}

	return cfg, nil
}

// Validate checks required fields and generator kinds.
func (cfg Config) Validate() error {
	const errCtx = "validating config"

	va := validator.New(validator.WithRequiredStructEnabled())

	if err := va.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf(
				"%s: %s: %w",
				errCtx, verrs[0].Namespace(), err,
			)
		}

		return fmt.Errorf("%s: %w", errCtx, err)
	}

	seen := make(map[string]bool, len(cfg.Generators))
	for _, kind := range cfg.Generators {
		if seen[kind.Signature] {
			return fmt.Errorf(
				"%s: generator %q declared twice",
				errCtx, kind.Signature,
			)
		}

		seen[kind.Signature] = true
	}

	return nil
}

// Kinds returns the built-in kinds with the configured
// generators applied. Configured kinds replace built-ins
// with the same signature and are appended otherwise.
func (cfg Config) Kinds() []generator.Kind {
	kinds := generator.Builtin()

	index := make(map[string]int, len(kinds))
	for i, kind := range kinds {
		index[kind.Signature] = i
	}

	for _, kind := range cfg.Generators {
		if i, ok := index[kind.Signature]; ok {
			kinds[i] = kind

			continue
		}

		index[kind.Signature] = len(kinds)
		kinds = append(kinds, kind)
	}

	return kinds
}

// StubDir returns the stubs directory on disk, or "" when
// the embedded stubs should be used.
func (cfg Config) StubDir() string {
	if cfg.Root == "" {
		return ""
	}

	return filepath.Join(cfg.Root, cfg.StubsDir)
}

// Engine returns the template engine for the configured
// tags.
func (cfg Config) Engine() templating.Engine {
	return templating.Engine{
		StartTag: cfg.StartTag,
		EndTag:   cfg.EndTag,
	}
}

// Store returns the file access layer for the configured
// directories.
func (cfg Config) Store() *stubfs.Disk {
	return &stubfs.Disk{
		StubDir:    cfg.StubDir(),
		ProjectDir: cfg.ProjectDir,
	}
}
