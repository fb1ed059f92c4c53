package lint_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jsfixer/pkg/config"
	"github.com/yaklabco/jsfixer/pkg/jsast"
	"github.com/yaklabco/jsfixer/pkg/lint"
	"github.com/yaklabco/jsfixer/pkg/rules"
)

// countingParser wraps the real parser and records invocations.
type countingParser struct {
	calls int
	inner *jsast.Parser
}

func (p *countingParser) Parse(ctx context.Context, src []byte) (*jsast.Tree, error) {
	p.calls++
	return p.inner.Parse(ctx, src)
}

// failingMatcher fails for one pattern and delegates the rest.
type failingMatcher struct {
	pattern string
	inner   *jsast.Matcher
}

func (m *failingMatcher) Match(tree *jsast.Tree, pattern string) ([]jsast.Node, error) {
	if pattern == m.pattern {
		return nil, errors.New("matcher exploded")
	}
	return m.inner.Match(tree, pattern)
}

var noVarRule = rules.Rule{
	ID:          "no-var",
	Name:        "No usar var",
	Description: "Usa let o const en lugar de var.",
	Severity:    config.SeverityMedium,
	Pattern:     "(variable_declaration) @match",
	Transform:   "var-a-let",
}

func TestEngine_AnalyzeSource_NoVarScenario(t *testing.T) {
	t.Parallel()

	engine := lint.NewDefaultEngine()
	result := engine.AnalyzeSource(context.Background(), []byte("var x = 1;\nvar y = 2;\n"), []rules.Rule{noVarRule})

	require.Empty(t, result.RuleErrors)
	require.Len(t, result.Diagnostics, 2)

	for i, want := range []int{1, 2} {
		d := result.Diagnostics[i]
		assert.Equal(t, want, d.Line)
		assert.Equal(t, 0, d.Column)
		assert.True(t, d.Fixable)
		assert.Equal(t, "no-var", d.RuleID)
		assert.Equal(t, "No usar var", d.RuleName)
		assert.Equal(t, config.SeverityMedium, d.Severity)
		assert.Equal(t, "Usa let o const en lugar de var.", d.Message)
	}
	assert.Equal(t, 2, result.FixableCount())
}

func TestEngine_AnalyzeSource_ColumnIsByteOffsetInLine(t *testing.T) {
	t.Parallel()

	line := "/* é */ var x = 1;"
	result := lint.NewDefaultEngine().AnalyzeSource(context.Background(), []byte(line+"\n"), []rules.Rule{noVarRule})

	require.Len(t, result.Diagnostics, 1)
	d := result.Diagnostics[0]
	assert.Equal(t, 9, d.Column, "é is two bytes")
	assert.Equal(t, "var x", line[d.Column:d.Column+5])
}

func TestEngine_AnalyzeSource_EmptyInput(t *testing.T) {
	t.Parallel()

	for _, src := range []string{"", "   ", "\n\t\n"} {
		parser := &countingParser{inner: jsast.NewParser()}
		engine := lint.NewEngine(parser, jsast.NewMatcher())

		result := engine.AnalyzeSource(context.Background(), []byte(src), []rules.Rule{noVarRule})

		require.Len(t, result.Diagnostics, 1)
		d := result.Diagnostics[0]
		assert.Equal(t, lint.EmptyRuleName, d.RuleName)
		assert.Equal(t, lint.EmptyMessage, d.Message)
		assert.Equal(t, config.SeverityLow, d.Severity)
		assert.True(t, d.IsSynthetic())
		assert.True(t, result.Empty)
		assert.Zero(t, parser.calls, "parser must not run on blank input")
	}
}

func TestEngine_AnalyzeSource_ParseFailure(t *testing.T) {
	t.Parallel()

	engine := lint.NewDefaultEngine()
	result := engine.AnalyzeSource(context.Background(), []byte("function f() {\n  var x = 1;\n"), []rules.Rule{noVarRule})

	require.Len(t, result.Diagnostics, 1)
	d := result.Diagnostics[0]
	assert.Equal(t, config.SeverityHigh, d.Severity)
	assert.Equal(t, lint.ParseRuleName, d.RuleName)
	assert.Equal(t, 1, d.Line)
	assert.False(t, d.Fixable)

	var synErr *jsast.SyntaxError
	require.ErrorAs(t, result.ParseErr, &synErr)
	assert.Contains(t, d.Message, "Error al analizar: ")
	assert.Contains(t, d.Message, synErr.Error())
}

func TestEngine_Analyze_PatternlessRulesContributeNothing(t *testing.T) {
	t.Parallel()

	ruleList := []rules.Rule{
		{ID: "future", Name: "Futura", Severity: config.SeverityHigh},
		noVarRule,
		{ID: "another", Transform: "x"},
	}

	engine := lint.NewDefaultEngine()
	result := engine.AnalyzeSource(context.Background(), []byte("var a = 1;"), ruleList)

	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, "no-var", result.Diagnostics[0].RuleID)
	assert.Empty(t, result.RuleErrors)
}

func TestEngine_Analyze_RuleErrorsAreIsolated(t *testing.T) {
	t.Parallel()

	badRule := rules.Rule{ID: "bad", Pattern: "(number) @match"}
	engine := lint.NewEngine(jsast.NewParser(), &failingMatcher{pattern: badRule.Pattern, inner: jsast.NewMatcher()})

	result := engine.AnalyzeSource(context.Background(), []byte("var a = 1;"), []rules.Rule{badRule, noVarRule})

	require.Contains(t, result.RuleErrors, "bad")
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, "no-var", result.Diagnostics[0].RuleID)
}

func TestEngine_Analyze_InvalidPatternReported(t *testing.T) {
	t.Parallel()

	engine := lint.NewDefaultEngine()
	result := engine.AnalyzeSource(context.Background(), []byte("var a = 1;"), []rules.Rule{
		{ID: "broken", Pattern: "(not_a_real_node) @match"},
	})

	var patErr *jsast.PatternError
	require.ErrorAs(t, result.RuleErrors["broken"], &patErr)
	assert.Empty(t, result.Diagnostics)
}

func TestEngine_Analyze_Deterministic(t *testing.T) {
	t.Parallel()

	set, err := rules.Default()
	require.NoError(t, err)

	src := []byte(`var a = 1;
function vacia() {}
if (a == 2) { console.log(a); }
debugger;
alert("hola");
var b = a == 3;
`)

	engine := lint.NewDefaultEngine()
	first := engine.AnalyzeSource(context.Background(), src, set.Rules)
	require.Empty(t, first.RuleErrors)
	require.NotEmpty(t, first.Diagnostics)

	for range 5 {
		again := engine.AnalyzeSource(context.Background(), src, set.Rules)
		assert.Equal(t, first.Diagnostics, again.Diagnostics)
	}

	// Rule order first, then match order within a rule.
	var order []string
	for _, d := range first.Diagnostics {
		if len(order) == 0 || order[len(order)-1] != d.RuleID {
			order = append(order, d.RuleID)
		}
	}
	assert.Equal(t, []string{"no-var", "console-log", "eqeqeq", "no-empty-function", "no-debugger", "no-alert"}, order)

	assert.Len(t, first.ForRule("eqeqeq"), 2)
	assert.Equal(t, 3, first.ForRule("console-log")[0].Line)
	assert.Equal(t, 14, first.ForRule("console-log")[0].Column)
}

func TestEngine_Analyze_FreshListEachCall(t *testing.T) {
	t.Parallel()

	engine := lint.NewDefaultEngine()
	ruleList := []rules.Rule{noVarRule}
	first := engine.AnalyzeSource(context.Background(), []byte("var a = 1;"), ruleList)
	second := engine.AnalyzeSource(context.Background(), []byte("let a = 1;"), ruleList)

	assert.Len(t, first.Diagnostics, 1)
	assert.Empty(t, second.Diagnostics)
	assert.Equal(t, noVarRule, ruleList[0], "rules are not modified")
}

func TestEngine_AnalyzeFile_SetsPath(t *testing.T) {
	t.Parallel()

	engine := lint.NewDefaultEngine()
	result := engine.AnalyzeFile(context.Background(), "src/app.js", []byte("var a;"), []rules.Rule{noVarRule})

	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, "src/app.js", result.Diagnostics[0].FilePath)
	assert.Equal(t, "src/app.js:1:1", result.Diagnostics[0].Location())
}
