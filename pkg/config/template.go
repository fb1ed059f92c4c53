package config

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes every known rule with its documentation.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "toml".
	Format string

	// Rules lists the rules documented by a full template.
	Rules []RuleInfo
}

// RuleInfo contains rule metadata for template generation.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Severity    Severity
	CanFix      bool
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "toml" {
		return generateTOMLTemplate(opts)
	}
	if opts.Full {
		return generateFullTemplate(opts), nil
	}
	return generateMinimalTemplate(), nil
}

func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Rule file (YAML). Leave empty to use the built-in rules.
# rules_file: rules/javascript.yaml

# Transform file (YAML). Leave empty to use the built-in transforms.
# transforms_file: transformaciones.yaml

# File patterns to ignore (glob patterns)
# ignore:
#   - "node_modules/**"
#   - "dist/**"

# Analysis cache
# cache:
#   enabled: false

# Rule-specific overrides
# rules:
#   no-var:
#     enabled: true
#     severity: medium
`)

	return buf.Bytes()
}

func generateFullTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(` - Full Template
#
# Uncomment and modify settings as needed.

# Rule file (YAML). Leave empty to use the built-in rules.
rules_file: ""

# Transform file (YAML). Leave empty to use the built-in transforms.
transforms_file: ""

# Default log level: debug, info, warn, error
log_level: info

# Backup configuration for fix mode
backups:
  enabled: true
  mode: sidecar

# Analysis cache ($XDG_CACHE_HOME/jsfixer when dir is empty)
cache:
  enabled: false
  dir: ""

# File patterns to ignore (glob patterns)
ignore:
  - "node_modules/**"
  - "dist/**"
  - ".git/**"

# Rule-specific overrides
rules:
`)

	rules := slices.Clone(opts.Rules)
	slices.SortFunc(rules, func(a, b RuleInfo) int {
		return strings.Compare(a.ID, b.ID)
	})

	for _, rule := range rules {
		fmt.Fprintf(&buf, "\n  # %s: %s\n", rule.ID, rule.Name)
		if rule.Description != "" {
			fmt.Fprintf(&buf, "  # %s\n", wrapComment(rule.Description, commentWrapWidth))
		}
		if rule.CanFix {
			buf.WriteString("  # Auto-fix: yes\n")
		}
		fmt.Fprintf(&buf, "  %s:\n", rule.ID)
		buf.WriteString("    enabled: true\n")
		fmt.Fprintf(&buf, "    severity: %s\n", rule.Severity)
	}

	return buf.Bytes()
}

// generateTOMLTemplate renders the defaults as .jsfixer.toml.
func generateTOMLTemplate(opts TemplateOptions) ([]byte, error) {
	cfg := NewConfig()
	cfg.Ignore = []string{"node_modules/**", "dist/**"}
	if opts.Full {
		for _, r := range opts.Rules {
			enabled := true
			severity := string(r.Severity)
			cfg.Rules[r.ID] = RuleConfig{Enabled: &enabled, Severity: &severity}
		}
	}

	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode toml template: %w", err)
	}

	return buf.Bytes(), nil
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n  # ")
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# jsfixer configuration
# See: https://github.com/yaklabco/jsfixer`
}
