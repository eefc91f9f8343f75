package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"bwqlint/internal/validate/rules"
)

// Starter returns a config listing every built-in rule at its default
// severity, suitable for `bwqlint init`.
func Starter() Config {
	cfg := Default()
	for _, name := range rules.Names() {
		cfg.Rules[name] = RuleConfig{Severity: rules.SeverityDefault}
	}
	return cfg
}

// Encode renders cfg in the format implied by path's extension.
func Encode(path string, cfg Config) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case ".yaml", ".yml":
		return yaml.Marshal(cfg)
	}
	return nil, fmt.Errorf("%s: unsupported config format (want .toml, .yaml or .yml)", path)
}

// Write stores cfg at path. It refuses to overwrite unless force is set.
func Write(path string, cfg Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	data, err := Encode(path, cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
