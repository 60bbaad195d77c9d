package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/kbase/pkg/kbase/internalerr"
)

// Source kinds
const (
	KindText   = "text"
	KindYAML   = "yaml"
	KindSQLite = "sqlite"
)

// Colour modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the top-level configuration file
type Config struct {
	Verbose bool     `yaml:"verbose"`
	Color   string   `yaml:"color"`
	Sources []Source `yaml:"sources"`
}

// Source names one place to load facts and rules from
type Source struct {
	Kind  string `yaml:"kind"`
	Path  string `yaml:"path"`
	Table string `yaml:"table"`
}

// LoadConfig loads and validates a configuration file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Source paths are relative to the config file
	dir := filepath.Dir(path)
	for i, s := range cfg.Sources {
		if !filepath.IsAbs(s.Path) {
			cfg.Sources[i].Path = filepath.Join(dir, s.Path)
		}
	}
	return &cfg, nil
}

// Validate checks source kinds, paths, and the colour mode.
func (c *Config) Validate() error {
	switch c.Color {
	case "":
		c.Color = ColorAuto
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: color %q", internalerr.ErrInvalidConfig, c.Color)
	}

	for i, s := range c.Sources {
		switch s.Kind {
		case KindText, KindYAML, KindSQLite:
		default:
			return fmt.Errorf("%w: source %d: unknown kind %q", internalerr.ErrInvalidConfig, i, s.Kind)
		}
		if s.Path == "" {
			return fmt.Errorf("%w: source %d: missing path", internalerr.ErrInvalidConfig, i)
		}
	}
	return nil
}

// Statements is a YAML file of facts and rules in reader syntax,
// without the "fact:" / "rule:" prefixes.
type Statements struct {
	Facts []string `yaml:"facts"`
	Rules []string `yaml:"rules"`
}

// LoadStatements loads a YAML statements file
func LoadStatements(path string) (*Statements, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var st Statements
	if err := yaml.Unmarshal(data, &st); err != nil {
		return nil, err
	}

	return &st, nil
}
