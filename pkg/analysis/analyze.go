package analysis

import (
	"cmp"
	"maps"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/jsfixer/pkg/config"
	"github.com/yaklabco/jsfixer/pkg/lint"
	"github.com/yaklabco/jsfixer/pkg/runner"
)

// ReportVersion is the report format version.
const ReportVersion = "1.0.0"

// RelativePath makes absPath relative to workDir when possible.
func RelativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	rel, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return filepath.ToSlash(rel)
}

// Severity maps a diagnostic severity for reporting; a missing severity
// reports as medium.
func Severity(sev config.Severity) config.Severity {
	if !sev.IsValid() {
		return config.SeverityMedium
	}
	return sev
}

func (c *SeverityCounts) add(sev config.Severity) {
	switch sev {
	case config.SeverityHigh:
		c.High++
	case config.SeverityMedium:
		c.Medium++
	case config.SeverityLow:
		c.Low++
	}
}

// ruleKey groups synthetic diagnostics by name.
func ruleKey(d lint.Diagnostic) string {
	if d.RuleID != "" {
		return d.RuleID
	}
	return "~" + d.RuleName
}

type accumulator struct {
	files     map[string]*FileAnalysis
	fileRules map[string]map[string]struct{}
	rules     map[string]*RuleAnalysis
	ruleFiles map[string]map[string]struct{}
}

func newAccumulator() *accumulator {
	return &accumulator{
		files:     make(map[string]*FileAnalysis),
		fileRules: make(map[string]map[string]struct{}),
		rules:     make(map[string]*RuleAnalysis),
		ruleFiles: make(map[string]map[string]struct{}),
	}
}

func (a *accumulator) file(path string) *FileAnalysis {
	fa, ok := a.files[path]
	if !ok {
		fa = &FileAnalysis{Path: path}
		a.files[path] = fa
		a.fileRules[path] = make(map[string]struct{})
	}
	return fa
}

func (a *accumulator) rule(d lint.Diagnostic) *RuleAnalysis {
	key := ruleKey(d)
	ra, ok := a.rules[key]
	if !ok {
		ra = &RuleAnalysis{RuleID: d.RuleID, RuleName: d.RuleName}
		a.rules[key] = ra
		a.ruleFiles[key] = make(map[string]struct{})
	}
	return ra
}

// Analyze computes every view of result in one pass over its diagnostics.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}
	if result == nil {
		return report
	}

	acc := newAccumulator()

	for _, outcome := range result.Files {
		report.Totals.Files++
		fr := outcome.Result
		if fr == nil {
			continue
		}
		if fr.Written {
			report.Totals.FilesModified++
		}
		report.Totals.Fixed += fr.FixesApplied

		diags := fr.Diagnostics()
		if len(diags) == 0 {
			continue
		}
		report.Totals.FilesWithIssues++

		path := RelativePath(outcome.Path, opts.WorkingDir)
		fa := acc.file(path)

		for _, d := range diags {
			sev := Severity(d.Severity)
			report.Totals.Issues++
			report.Totals.add(sev)
			if d.Fixable {
				report.Totals.Fixable++
			}

			fa.Issues++
			fa.add(sev)
			label := config.FormatRuleID(opts.RuleFormat, d.RuleID, d.RuleName)
			if label == "" {
				label = d.RuleName
			}
			acc.fileRules[path][label] = struct{}{}

			ra := acc.rule(d)
			ra.Issues++
			ra.add(sev)
			ra.Fixable = ra.Fixable || d.Fixable
			acc.ruleFiles[ruleKey(d)][path] = struct{}{}

			if opts.IncludeDiagnostics {
				report.Diagnostics = append(report.Diagnostics, DiagnosticEntry{
					FilePath: path,
					RuleID:   d.RuleID,
					RuleName: d.RuleName,
					Severity: string(sev),
					Message:  d.Message,
					Line:     d.Line,
					Column:   d.Column + 1,
					Fixable:  d.Fixable,
				})
			}
		}
	}

	if opts.IncludeByFile {
		report.ByFile = acc.byFile(opts)
	}
	if opts.IncludeByRule {
		report.ByRule = acc.byRule(opts)
	}

	return report
}

func (a *accumulator) byFile(opts Options) []FileAnalysis {
	out := make([]FileAnalysis, 0, len(a.files))
	for path, fa := range a.files {
		fa.Rules = slices.Sorted(maps.Keys(a.fileRules[path]))
		out = append(out, *fa)
	}
	sortViews(out, opts, func(f FileAnalysis) (string, int, SeverityCounts) {
		return f.Path, f.Issues, f.SeverityCounts
	})
	return out
}

func (a *accumulator) byRule(opts Options) []RuleAnalysis {
	out := make([]RuleAnalysis, 0, len(a.rules))
	for key, ra := range a.rules {
		ra.Files = slices.Sorted(maps.Keys(a.ruleFiles[key]))
		out = append(out, *ra)
	}
	sortViews(out, opts, func(r RuleAnalysis) (string, int, SeverityCounts) {
		return ruleKey(lint.Diagnostic{RuleID: r.RuleID, RuleName: r.RuleName}), r.Issues, r.SeverityCounts
	})
	return out
}

// sortViews orders by the requested field with the name as tie-breaker, so
// output is stable across runs.
func sortViews[T any](items []T, opts Options, fields func(T) (string, int, SeverityCounts)) {
	slices.SortFunc(items, func(left, right T) int {
		lName, lIssues, lSev := fields(left)
		rName, rIssues, rSev := fields(right)

		var c int
		switch opts.SortBy {
		case SortByAlpha:
		case SortBySeverity:
			c = cmp.Or(
				cmp.Compare(rSev.High, lSev.High),
				cmp.Compare(rSev.Medium, lSev.Medium),
				cmp.Compare(rIssues, lIssues),
			)
		default:
			c = cmp.Compare(lIssues, rIssues)
			if opts.SortDesc {
				c = -c
			}
		}
		return cmp.Or(c, cmp.Compare(lName, rName))
	})
}
