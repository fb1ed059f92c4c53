package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/jsfixer/pkg/config"
)

func TestFormatRuleID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		format   config.RuleFormat
		ruleID   string
		ruleName string
		want     string
	}{
		{"name format", config.RuleFormatName, "no-var", "No usar var", "No usar var"},
		{"id format", config.RuleFormatID, "no-var", "No usar var", "no-var"},
		{"combined format", config.RuleFormatCombined, "no-var", "No usar var", "no-var/No usar var"},
		{"name format empty name", config.RuleFormatName, "no-var", "", "no-var"},
		{"default to name", config.RuleFormat(""), "eqeqeq", "Usar ===", "Usar ==="},
		{"synthetic id format", config.RuleFormatID, "", "Sin código", "Sin código"},
		{"synthetic combined format", config.RuleFormatCombined, "", "Error", "Error"},
		{"synthetic name format", config.RuleFormatName, "", "Sin código", "Sin código"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, config.FormatRuleID(tt.format, tt.ruleID, tt.ruleName))
		})
	}
}

func TestParseRuleFormat(t *testing.T) {
	t.Parallel()

	for _, value := range []string{"name", "id", "combined"} {
		got, err := config.ParseRuleFormat(value)
		if assert.NoError(t, err) {
			assert.Equal(t, config.RuleFormat(value), got)
		}
	}

	_, err := config.ParseRuleFormat("long")
	assert.ErrorContains(t, err, `unknown rule format "long"`)
}
