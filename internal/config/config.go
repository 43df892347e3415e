// Package config loads xunitify.toml. Every key is optional; missing keys
// keep their defaults and unknown keys are rejected.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"xunitify/internal/fixture"
	"xunitify/internal/rewrite"
)

// FileName is the configuration file looked up next to the project.
const FileName = "xunitify.toml"

// UI modes for the progress view.
const (
	UIAuto = "auto"
	UIOn   = "on"
	UIOff  = "off"
)

type Config struct {
	// Path is the file the values came from; empty for defaults.
	Path    string        `toml:"-"`
	Rewrite RewriteConfig `toml:"rewrite"`
	Project ProjectConfig `toml:"project"`
	Output  OutputConfig  `toml:"output"`
}

type RewriteConfig struct {
	AssertionFacade      string `toml:"assertion_facade"`
	DuplicateRoles       string `toml:"duplicate_roles"`
	FixtureScope         string `toml:"fixture_scope"`
	SinkType             string `toml:"sink_type"`
	SinkField            string `toml:"sink_field"`
	SinkParam            string `toml:"sink_param"`
	AddAbstractionsUsing bool   `toml:"add_abstractions_using"`
}

type ProjectConfig struct {
	// BackupDir is resolved against the project directory.
	BackupDir        string `toml:"backup_dir"`
	RestoreBeforeRun bool   `toml:"restore_before_run"`
	// Jobs bounds parallel detection; 0 means GOMAXPROCS.
	Jobs int `toml:"jobs"`
}

type OutputConfig struct {
	Indent int    `toml:"indent"`
	UI     string `toml:"ui"`
}

// Default returns the built-in configuration.
func Default() Config {
	opts := rewrite.DefaultOptions()
	return Config{
		Rewrite: RewriteConfig{
			AssertionFacade: opts.Facade,
			DuplicateRoles:  opts.Duplicates.String(),
			FixtureScope:    fixture.ScopeRun.String(),
			SinkType:        opts.SinkType,
			SinkField:       opts.SinkField,
			SinkParam:       opts.SinkParam,
		},
		Project: ProjectConfig{
			BackupDir:        filepath.Join("..", "Old"),
			RestoreBeforeRun: true,
		},
		Output: OutputConfig{Indent: 4, UI: UIAuto},
	}
}

// Find walks up from startDir to locate xunitify.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover loads the nearest xunitify.toml above startDir, or the defaults.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks enumerated and numeric values.
func (c Config) Validate() error {
	if _, err := rewrite.ParseDuplicatePolicy(c.Rewrite.DuplicateRoles); err != nil {
		return fmt.Errorf("[rewrite].duplicate_roles: %w", err)
	}
	if _, err := fixture.ParseScope(c.Rewrite.FixtureScope); err != nil {
		return fmt.Errorf("[rewrite].fixture_scope: %w", err)
	}
	for _, kv := range [][2]string{
		{"assertion_facade", c.Rewrite.AssertionFacade},
		{"sink_type", c.Rewrite.SinkType},
		{"sink_field", c.Rewrite.SinkField},
		{"sink_param", c.Rewrite.SinkParam},
	} {
		if strings.TrimSpace(kv[1]) == "" {
			return fmt.Errorf("[rewrite].%s must not be empty", kv[0])
		}
	}
	if strings.TrimSpace(c.Project.BackupDir) == "" {
		return errors.New("[project].backup_dir must not be empty")
	}
	if c.Project.Jobs < 0 {
		return fmt.Errorf("[project].jobs must be >= 0, got %d", c.Project.Jobs)
	}
	if c.Output.Indent < 1 || c.Output.Indent > 16 {
		return fmt.Errorf("[output].indent must be between 1 and 16, got %d", c.Output.Indent)
	}
	switch c.Output.UI {
	case UIAuto, UIOn, UIOff:
	default:
		return fmt.Errorf("[output].ui must be auto, on or off, got %q", c.Output.UI)
	}
	return nil
}

// RewriteOptions converts the [rewrite] section for the engine.
func (c Config) RewriteOptions() (rewrite.Options, error) {
	policy, err := rewrite.ParseDuplicatePolicy(c.Rewrite.DuplicateRoles)
	if err != nil {
		return rewrite.Options{}, err
	}
	return rewrite.Options{
		Facade:               c.Rewrite.AssertionFacade,
		Duplicates:           policy,
		SinkType:             c.Rewrite.SinkType,
		SinkField:            c.Rewrite.SinkField,
		SinkParam:            c.Rewrite.SinkParam,
		AddAbstractionsUsing: c.Rewrite.AddAbstractionsUsing,
	}, nil
}

// Scope returns the fixture binding scope.
func (c Config) Scope() (fixture.Scope, error) {
	return fixture.ParseScope(c.Rewrite.FixtureScope)
}

// BackupRoot resolves backup_dir against the project directory.
func (c Config) BackupRoot(projectDir string) string {
	dir := filepath.FromSlash(c.Project.BackupDir)
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(projectDir, dir)
}
