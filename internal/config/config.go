// Package config loads linter settings from bwqlint.toml or .bwqlint.yaml.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"bwqlint/internal/diag"
	"bwqlint/internal/validate"
	"bwqlint/internal/validate/rules"
)

// File names searched by Find, in priority order.
const (
	TOMLName = "bwqlint.toml"
	YAMLName = ".bwqlint.yaml"
	YMLName  = ".bwqlint.yml"
)

// Formats accepted for Config.Format.
var Formats = []string{"pretty", "short", "json", "sarif"}

type RuleConfig struct {
	Severity string `toml:"severity" yaml:"severity"`
}

type Config struct {
	// MaxDiagnostics caps diagnostics per query (0 means no cap).
	MaxDiagnostics int `toml:"max_diagnostics" yaml:"max_diagnostics"`
	// Jobs bounds parallel linting (0 means GOMAXPROCS).
	Jobs   int    `toml:"jobs" yaml:"jobs"`
	Format string `toml:"format" yaml:"format"`
	Cache  bool   `toml:"cache" yaml:"cache"`
	// CacheDir overrides the user cache directory.
	CacheDir string                `toml:"cache_dir,omitempty" yaml:"cache_dir,omitempty"`
	Rules    map[string]RuleConfig `toml:"rules" yaml:"rules"`

	// Path is the file the config was read from; empty for defaults.
	Path string `toml:"-" yaml:"-"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		MaxDiagnostics: 200,
		Format:         "pretty",
		Rules:          map[string]RuleConfig{},
	}
}

// Find walks up from startDir looking for a config file.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range []string{TOMLName, YAMLName, YMLName} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover finds and loads the nearest config, or returns Default.
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

// Load reads a config file; the format follows the extension.
func Load(path string) (Config, error) {
	var (
		cfg Config
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		cfg, err = loadTOML(path)
	case ".yaml", ".yml":
		cfg, err = loadYAML(path)
	default:
		return Config{}, fmt.Errorf("%s: unsupported config format (want .toml, .yaml or .yml)", path)
	}
	if err != nil {
		return Config{}, err
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func loadTOML(path string) (Config, error) {
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
	for name := range cfg.Rules {
		if !meta.IsDefined("rules", name, "severity") {
			return Config{}, fmt.Errorf("%s: missing [rules.%s].severity", path, name)
		}
	}
	return cfg, nil
}

func loadYAML(path string) (Config, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from Find or the user
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	cfg := Default()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
	}
	if cfg.Rules == nil {
		cfg.Rules = map[string]RuleConfig{}
	}
	return cfg, nil
}

// Validate checks value ranges, the output format and rule overrides.
func (c Config) Validate() error {
	if c.MaxDiagnostics < 0 {
		return fmt.Errorf("max_diagnostics must be >= 0, got %d", c.MaxDiagnostics)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must be >= 0, got %d", c.Jobs)
	}
	if c.Format != "" && !slices.Contains(Formats, c.Format) {
		return fmt.Errorf("invalid format %q (expected: %s)", c.Format, strings.Join(Formats, "|"))
	}
	known := rules.Names()
	names := make([]string, 0, len(c.Rules))
	for name := range c.Rules {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !slices.Contains(known, name) {
			return fmt.Errorf("unknown rule %q (available: %s)", name, strings.Join(known, ", "))
		}
		sev := c.Rules[name].Severity
		if strings.EqualFold(sev, rules.SeverityOff) || strings.EqualFold(sev, rules.SeverityDefault) {
			continue
		}
		if _, err := diag.ParseSeverity(sev); err != nil {
			return fmt.Errorf("rule %s: %w", name, err)
		}
	}
	return nil
}

// RuleOverrides returns the rule severities in the form rules.Build expects.
func (c Config) RuleOverrides() map[string]string {
	out := make(map[string]string, len(c.Rules))
	for name, rc := range c.Rules {
		out[name] = rc.Severity
	}
	return out
}

// RuleSet builds the configured rule set.
func (c Config) RuleSet() (validate.RuleSet, error) {
	return rules.Build(c.RuleOverrides())
}
