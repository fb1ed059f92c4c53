package rules

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/jsfixer/pkg/config"
)

// Sentinel errors for rule loading.
var (
	ErrDuplicateID     = errors.New("duplicate rule id")
	ErrMissingID       = errors.New("rule has no id")
	ErrMissingSelector = errors.New("transform has no selector")
)

// ruleRecord is the on-disk rule shape. Spanish keys come from the original
// rule files; English keys are accepted as aliases.
type ruleRecord struct {
	ID string `yaml:"id"`

	Nombre string `yaml:"nombre"`
	Name   string `yaml:"name"`

	Severidad string `yaml:"severidad"`
	Severity  string `yaml:"severity"`

	Descripcion string `yaml:"descripcion"`
	Description string `yaml:"description"`

	PatronAST string `yaml:"patron_ast"`
	Pattern   string `yaml:"pattern"`

	Transform string `yaml:"transform"`
}

type transformRecord struct {
	Nombre string `yaml:"nombre"`
	Name   string `yaml:"name"`

	Busca    string `yaml:"busca"`
	Selector string `yaml:"selector"`

	Reemplaza *string `yaml:"reemplaza"`
	Replace   *string `yaml:"replace"`
}

// ParseRules decodes a YAML sequence of rule records.
// Rules keep their file order. Missing severities default to medium.
func ParseRules(data []byte) ([]Rule, error) {
	var records []ruleRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}

	out := make([]Rule, 0, len(records))
	seen := make(map[string]struct{}, len(records))

	for idx, rec := range records {
		rule, err := rec.toRule()
		if err != nil {
			return nil, fmt.Errorf("rule #%d: %w", idx+1, err)
		}
		if _, dup := seen[rule.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, rule.ID)
		}
		seen[rule.ID] = struct{}{}
		out = append(out, rule)
	}

	return out, nil
}

func (rec ruleRecord) toRule() (Rule, error) {
	id := strings.TrimSpace(rec.ID)
	if id == "" {
		return Rule{}, ErrMissingID
	}

	severity := config.SeverityMedium
	if raw := firstNonEmpty(rec.Severidad, rec.Severity); raw != "" {
		parsed, err := config.ParseSeverity(raw)
		if err != nil {
			return Rule{}, fmt.Errorf("%s: %w", id, err)
		}
		severity = parsed
	}

	return Rule{
		ID:          id,
		Name:        firstNonEmpty(rec.Nombre, rec.Name),
		Description: firstNonEmpty(rec.Descripcion, rec.Description),
		Severity:    severity,
		Pattern:     strings.TrimSpace(firstNonEmpty(rec.PatronAST, rec.Pattern)),
		Transform:   normalizeTransform(rec.Transform),
	}, nil
}

// normalizeTransform treats explicit false values as "no transform".
func normalizeTransform(value string) string {
	value = strings.TrimSpace(value)
	switch strings.ToLower(value) {
	case "false", "no", "off", "null", "~":
		return ""
	}
	return value
}

// ParseTransforms decodes a YAML sequence of transform records.
// An empty replacement deletes the matched text.
func ParseTransforms(data []byte) ([]TransformSpec, error) {
	var records []transformRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse transforms: %w", err)
	}

	out := make([]TransformSpec, 0, len(records))
	for idx, rec := range records {
		name := firstNonEmpty(rec.Nombre, rec.Name)
		selector := strings.TrimSpace(firstNonEmpty(rec.Busca, rec.Selector))
		if selector == "" {
			return nil, fmt.Errorf("transform #%d %q: %w", idx+1, name, ErrMissingSelector)
		}

		var replacement string
		switch {
		case rec.Reemplaza != nil:
			replacement = *rec.Reemplaza
		case rec.Replace != nil:
			replacement = *rec.Replace
		}

		out = append(out, TransformSpec{Name: name, Selector: selector, Replacement: replacement})
	}

	return out, nil
}

// LoadRulesFile reads and parses a rule file.
func LoadRulesFile(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules %s: %w", path, err)
	}
	return ParseRules(data)
}

// LoadTransformsFile reads and parses a transform file.
func LoadTransformsFile(path string) ([]TransformSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transforms %s: %w", path, err)
	}
	return ParseTransforms(data)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
