// Package config defines core configuration types for jsfixer.
// These types are pure data structures with no dependency on the loaders.
package config

import (
	"fmt"
	"strings"
)

// Severity represents the severity level of a diagnostic.
// Ordering has no semantic effect beyond display.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// ParseSeverity maps a configured severity onto the closed set.
// The Spanish values used by the original rule files (baja, media, alta)
// and the common linter names (info, warning, error) are accepted.
func ParseSeverity(value string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "low", "baja", "info":
		return SeverityLow, nil
	case "medium", "media", "warning", "warn":
		return SeverityMedium, nil
	case "high", "alta", "error":
		return SeverityHigh, nil
	default:
		return "", fmt.Errorf("unknown severity %q; valid severities: low, medium, high", value)
	}
}

// IsValid returns true if the severity is one of the known values.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	default:
		return false
	}
}

// Rank orders severities for display (high first when sorted descending).
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// UnmarshalYAML accepts any alias understood by ParseSeverity.
func (s *Severity) UnmarshalYAML(unmarshal func(any) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	parsed, err := ParseSeverity(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// UnmarshalText accepts any alias understood by ParseSeverity (used by TOML).
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// RuleConfig holds per-rule overrides applied on top of the rule file.
type RuleConfig struct {
	Enabled  *bool   `yaml:"enabled" toml:"enabled"`
	Severity *string `yaml:"severity" toml:"severity"`
}

// BackupsConfig controls backup behavior when fixing files.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Mode    string `yaml:"mode" toml:"mode"` // "sidecar" or "none"
}

// CacheConfig controls the on-disk analysis cache.
type CacheConfig struct {
	Enabled bool `yaml:"enabled" toml:"enabled"`

	// Dir overrides the cache directory. Empty means $XDG_CACHE_HOME/jsfixer.
	Dir string `yaml:"dir" toml:"dir"`
}

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatSARIF   OutputFormat = "sarif"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "No usar var"
	RuleFormatID       RuleFormat = "id"       // "no-var"
	RuleFormatCombined RuleFormat = "combined" // "no-var/No usar var"
)

// Config is the root configuration structure for jsfixer.
type Config struct {
	// RulesFile is the YAML rule file. Empty means the built-in rules.
	RulesFile string `yaml:"rules_file" toml:"rules_file"`

	// TransformsFile is the YAML transform file. Empty means the built-in transforms.
	TransformsFile string `yaml:"transforms_file" toml:"transforms_file"`

	// Rules contains per-rule overrides keyed by rule ID.
	Rules map[string]RuleConfig `yaml:"rules" toml:"rules"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore" toml:"ignore"`

	// Backups configures backup behavior when fixing.
	Backups BackupsConfig `yaml:"backups" toml:"backups"`

	// Cache configures the analysis result cache.
	Cache CacheConfig `yaml:"cache" toml:"cache"`

	// LogLevel is the default log level ("debug", "info", "warn", "error").
	LogLevel string `yaml:"log_level" toml:"log_level"`

	// CLI-level options (not persisted to config files).

	// Fix enables auto-fixing of issues.
	Fix bool `yaml:"-" toml:"-"`

	// DryRun shows what would be fixed without making changes.
	DryRun bool `yaml:"-" toml:"-"`

	// Transform applies the configured transforms when fixing.
	Transform bool `yaml:"-" toml:"-"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"-" toml:"-"`

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat RuleFormat `yaml:"-" toml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-" toml:"-"`

	// FixRules limits auto-fixing to specific rule IDs.
	FixRules []string `yaml:"-" toml:"-"`

	// NoBackups disables backup creation when fixing.
	NoBackups bool `yaml:"-" toml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Rules: make(map[string]RuleConfig),
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
		LogLevel:   "info",
		Format:     FormatText,
		RuleFormat: RuleFormatCombined,
		Jobs:       0, // 0 means use GOMAXPROCS
	}
}

// RuleEnabled reports whether the rule with the given ID is enabled.
// Rules are enabled unless explicitly disabled.
func (c *Config) RuleEnabled(id string) bool {
	if c == nil {
		return true
	}
	rc, ok := c.Rules[id]
	if !ok || rc.Enabled == nil {
		return true
	}
	return *rc.Enabled
}

// SeverityOverride returns the configured severity for a rule, if any.
func (c *Config) SeverityOverride(id string) (Severity, bool) {
	if c == nil {
		return "", false
	}
	rc, ok := c.Rules[id]
	if !ok || rc.Severity == nil {
		return "", false
	}
	sev, err := ParseSeverity(*rc.Severity)
	if err != nil {
		return "", false
	}
	return sev, true
}
