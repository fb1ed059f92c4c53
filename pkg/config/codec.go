package config

import (
	"bytes"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileFormat is the syntax of a configuration file.
type FileFormat string

const (
	FileYAML FileFormat = "yaml"
	FileTOML FileFormat = "toml"
)

// FileFormatOf picks the syntax from the extension of path. Anything that is
// not .toml is read as YAML.
func FileFormatOf(path string) FileFormat {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FileTOML
	}
	return FileYAML
}

// Decode parses a configuration file. Only persisted fields are read; the
// CLI-only fields keep their zero values.
func Decode(data []byte, format FileFormat) (*Config, error) {
	cfg := &Config{}
	switch format {
	case FileTOML:
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(cfg); err != nil {
			return nil, fmt.Errorf("parse toml: %w", err)
		}
	case FileYAML:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}
	if cfg.Rules == nil {
		cfg.Rules = map[string]RuleConfig{}
	}
	return cfg, nil
}

// FromYAML parses a YAML configuration.
func FromYAML(data []byte) (*Config, error) { return Decode(data, FileYAML) }

// FromTOML parses a TOML configuration.
func FromTOML(data []byte) (*Config, error) { return Decode(data, FileTOML) }

// Encode serializes the persisted fields of c.
func (c *Config) Encode(format FileFormat) ([]byte, error) {
	if c == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	switch format {
	case FileTOML:
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
	case FileYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}
	return buf.Bytes(), nil
}

// ToYAML serializes the persisted fields of c as YAML.
func (c *Config) ToYAML() ([]byte, error) { return c.Encode(FileYAML) }

// Clone returns a copy of c that shares no slices, maps or pointers with it.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := *c
	out.Ignore = slices.Clone(c.Ignore)
	out.FixRules = slices.Clone(c.FixRules)
	if c.Rules != nil {
		out.Rules = make(map[string]RuleConfig, len(c.Rules))
		for id, rc := range c.Rules {
			out.Rules[id] = RuleConfig{Enabled: clonePtr(rc.Enabled), Severity: clonePtr(rc.Severity)}
		}
	}
	return &out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
