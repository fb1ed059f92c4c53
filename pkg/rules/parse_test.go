package rules_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jsfixer/pkg/config"
	"github.com/yaklabco/jsfixer/pkg/rules"
)

func TestParseRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		yaml    string
		want    []rules.Rule
		wantErr error
	}{
		{
			name: "spanish keys",
			yaml: `
- id: no-var
  nombre: No usar var
  severidad: media
  descripcion: Usa let.
  patron_ast: "(variable_declaration) @match"
  transform: var-a-let
`,
			want: []rules.Rule{{
				ID: "no-var", Name: "No usar var", Description: "Usa let.",
				Severity: config.SeverityMedium, Pattern: "(variable_declaration) @match",
				Transform: "var-a-let",
			}},
		},
		{
			name: "english aliases and default severity",
			yaml: `
- id: no-debugger
  name: No debugger
  description: Remove debugger.
  pattern: "(debugger_statement) @match"
`,
			want: []rules.Rule{{
				ID: "no-debugger", Name: "No debugger", Description: "Remove debugger.",
				Severity: config.SeverityMedium, Pattern: "(debugger_statement) @match",
			}},
		},
		{
			name: "pattern-less rule and boolean transform",
			yaml: `
- id: future
  nombre: Futura
  severidad: alta
  transform: false
- id: flagged
  severidad: baja
  transform: true
`,
			want: []rules.Rule{
				{ID: "future", Name: "Futura", Severity: config.SeverityHigh},
				{ID: "flagged", Severity: config.SeverityLow, Transform: "true"},
			},
		},
		{
			name:    "duplicate id",
			yaml:    "- id: a\n- id: a\n",
			wantErr: rules.ErrDuplicateID,
		},
		{
			name:    "missing id",
			yaml:    "- nombre: anon\n",
			wantErr: rules.ErrMissingID,
		},
		{
			name: "empty document",
			yaml: "",
			want: []rules.Rule{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := rules.ParseRules([]byte(tt.yaml))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRules_InvalidSeverity(t *testing.T) {
	t.Parallel()

	_, err := rules.ParseRules([]byte("- id: x\n  severidad: extrema\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extrema")
}

func TestParseTransforms(t *testing.T) {
	t.Parallel()

	got, err := rules.ParseTransforms([]byte(`
- nombre: cero
  busca: "(number) @match"
  reemplaza: "0"
- name: borrar
  selector: "(debugger_statement) @match"
  replace: ""
`))
	require.NoError(t, err)
	assert.Equal(t, []rules.TransformSpec{
		{Name: "cero", Selector: "(number) @match", Replacement: "0"},
		{Name: "borrar", Selector: "(debugger_statement) @match", Replacement: ""},
	}, got)

	_, err = rules.ParseTransforms([]byte("- nombre: sin selector\n  reemplaza: x\n"))
	require.ErrorIs(t, err, rules.ErrMissingSelector)
}

func TestLoadFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rulesPath := filepath.Join(dir, "rules.yaml")
	transformsPath := filepath.Join(dir, "transformaciones.yaml")
	require.NoError(t, os.WriteFile(rulesPath, []byte("- id: a\n  patron_ast: \"(number) @match\"\n"), 0o600))
	require.NoError(t, os.WriteFile(transformsPath, []byte("- busca: \"(number) @match\"\n  reemplaza: \"0\"\n"), 0o600))

	ruleList, err := rules.LoadRulesFile(rulesPath)
	require.NoError(t, err)
	require.Len(t, ruleList, 1)

	specs, err := rules.LoadTransformsFile(transformsPath)
	require.NoError(t, err)
	require.Len(t, specs, 1)

	_, err = rules.LoadRulesFile(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDefault(t *testing.T) {
	t.Parallel()

	set, err := rules.Default()
	require.NoError(t, err)

	for _, id := range []string{"no-var", "console-log", "eqeqeq", "no-empty-function"} {
		r, ok := set.Lookup(id)
		require.True(t, ok, id)
		assert.True(t, r.HasFix(), id)
		assert.True(t, r.IsSyntactic(), id)
	}

	r, ok := set.Lookup("no-debugger")
	require.True(t, ok)
	assert.False(t, r.HasFix())

	r, ok = set.Lookup("complejidad-ciclomatica")
	require.True(t, ok)
	assert.False(t, r.IsSyntactic())

	assert.NotEmpty(t, set.Transforms)
}
