package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jsfixer/pkg/config"
	"github.com/yaklabco/jsfixer/pkg/lint"
	"github.com/yaklabco/jsfixer/pkg/runner"
)

func outcome(path string, diags ...lint.Diagnostic) runner.FileOutcome {
	return runner.FileOutcome{
		Path:   path,
		Result: &runner.FileResult{Path: path, Analysis: &lint.Result{Diagnostics: diags}},
	}
}

var (
	noVar = lint.Diagnostic{
		RuleID: "no-var", RuleName: "No usar var", Severity: config.SeverityMedium,
		Message: "Usa let o const.", Line: 1, Fixable: true,
	}
	eqeq = lint.Diagnostic{
		RuleID: "eqeqeq", RuleName: "Igualdad estricta", Severity: config.SeverityHigh,
		Message: "Usa ===.", Line: 4, Column: 6, Fixable: true,
	}
	debuggerStmt = lint.Diagnostic{
		RuleID: "no-debugger", RuleName: "Sin debugger", Severity: config.SeverityHigh,
		Message: "Elimina debugger.", Line: 2,
	}
	parseFailure = lint.Diagnostic{
		RuleName: lint.ParseRuleName, Severity: config.SeverityHigh,
		Message: "Error al analizar: boom", Line: 1,
	}
)

func sampleResult() *runner.Result {
	return &runner.Result{Files: []runner.FileOutcome{
		outcome("/work/src/a.js", noVar, noVar, eqeq),
		outcome("/work/src/b.js", debuggerStmt, noVar),
		outcome("/work/bad.js", parseFailure),
		outcome("/work/clean.js"),
		{Path: "/work/gone.js", Error: assert.AnError},
	}}
}

func TestAnalyze_Nil(t *testing.T) {
	t.Parallel()

	report := Analyze(nil, DefaultOptions())

	require.NotNil(t, report)
	assert.Equal(t, ReportVersion, report.Version)
	assert.False(t, report.Totals.HasIssues())
}

func TestAnalyze_Totals(t *testing.T) {
	t.Parallel()

	report := Analyze(sampleResult(), DefaultOptions())

	totals := report.Totals
	assert.Equal(t, 5, totals.Files)
	assert.Equal(t, 3, totals.FilesWithIssues)
	assert.Equal(t, 6, totals.Issues)
	assert.Equal(t, SeverityCounts{High: 3, Medium: 3}, totals.SeverityCounts)
	assert.Equal(t, 4, totals.Fixable)
	assert.True(t, totals.HasHigh())
}

func TestAnalyze_Diagnostics(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.WorkingDir = "/work"
	report := Analyze(sampleResult(), opts)

	require.Len(t, report.Diagnostics, 6)
	first := report.Diagnostics[2]
	assert.Equal(t, "src/a.js", first.FilePath)
	assert.Equal(t, "eqeqeq", first.RuleID)
	assert.Equal(t, "high", first.Severity)
	assert.Equal(t, 4, first.Line)
	assert.Equal(t, 7, first.Column, "columns are reported 1-based")
	assert.True(t, first.Fixable)

	opts.IncludeDiagnostics = false
	assert.Empty(t, Analyze(sampleResult(), opts).Diagnostics)
}

func TestAnalyze_ByRule(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.WorkingDir = "/work"
	report := Analyze(sampleResult(), opts)

	require.Len(t, report.ByRule, 4)
	top := report.ByRule[0]
	assert.Equal(t, "no-var", top.RuleID)
	assert.Equal(t, 3, top.Issues)
	assert.True(t, top.Fixable)
	assert.Equal(t, []string{"src/a.js", "src/b.js"}, top.Files)

	var synthetic *RuleAnalysis
	for i := range report.ByRule {
		if report.ByRule[i].RuleID == "" {
			synthetic = &report.ByRule[i]
		}
	}
	require.NotNil(t, synthetic)
	assert.Equal(t, lint.ParseRuleName, synthetic.RuleName)
	assert.Equal(t, []string{"bad.js"}, synthetic.Files)
}

func TestAnalyze_ByFileSorting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		sortBy SortField
		desc   bool
		want   []string
	}{
		{name: "count desc", sortBy: SortByCount, desc: true, want: []string{"src/a.js", "src/b.js", "bad.js"}},
		{name: "count asc", sortBy: SortByCount, want: []string{"bad.js", "src/b.js", "src/a.js"}},
		{name: "alpha", sortBy: SortByAlpha, desc: true, want: []string{"bad.js", "src/a.js", "src/b.js"}},
		{name: "severity", sortBy: SortBySeverity, want: []string{"src/a.js", "src/b.js", "bad.js"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := DefaultOptions()
			opts.WorkingDir = "/work"
			opts.SortBy = tt.sortBy
			opts.SortDesc = tt.desc

			report := Analyze(sampleResult(), opts)

			paths := make([]string, 0, len(report.ByFile))
			for _, fa := range report.ByFile {
				paths = append(paths, fa.Path)
			}
			assert.Equal(t, tt.want, paths)
		})
	}
}

func TestAnalyze_FileRulesUseRuleFormat(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.WorkingDir = "/work"
	opts.RuleFormat = config.RuleFormatID
	report := Analyze(sampleResult(), opts)

	for _, fa := range report.ByFile {
		if fa.Path == "src/a.js" {
			assert.Equal(t, []string{"eqeqeq", "no-var"}, fa.Rules)
			assert.Equal(t, SeverityCounts{High: 1, Medium: 2}, fa.SeverityCounts)
		}
	}
}

func TestSeverity(t *testing.T) {
	t.Parallel()

	assert.Equal(t, config.SeverityMedium, Severity(""))
	assert.Equal(t, config.SeverityLow, Severity(config.SeverityLow))
}

func TestSortField_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, SortByCount.IsValid())
	assert.True(t, SortBySeverity.IsValid())
	assert.False(t, SortField("size").IsValid())
}

func TestRelativePath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "src/a.js", RelativePath("/work/src/a.js", "/work"))
	assert.Equal(t, "/work/a.js", RelativePath("/work/a.js", ""))
}
