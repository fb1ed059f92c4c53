package lint

import (
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/jsfixer/pkg/config"
	"github.com/yaklabco/jsfixer/pkg/jsast"
	"github.com/yaklabco/jsfixer/pkg/rules"
)

// Messages of the synthetic diagnostics.
const (
	EmptyRuleName   = "Sin código"
	EmptyMessage    = "No hay código para analizar."
	ParseRuleName   = "Error"
	ParseMessageFmt = "Error al analizar: %s"
)

// Result contains the outcome of analyzing one source text.
type Result struct {
	// Diagnostics contains all issues found, in rule order then match order.
	Diagnostics []Diagnostic

	// RuleErrors contains pattern failures keyed by rule ID. A failing rule
	// contributes no diagnostics; other rules are unaffected.
	RuleErrors map[string]error

	// ParseErr is the parser failure, if the source could not be parsed.
	ParseErr error

	// Empty is true when the source was blank and the parser was not invoked.
	Empty bool
}

// HasIssues returns true if any diagnostics were found.
func (r *Result) HasIssues() bool {
	return len(r.Diagnostics) > 0
}

// IssueCount returns the total number of diagnostics.
func (r *Result) IssueCount() int {
	return len(r.Diagnostics)
}

// FixableCount returns the number of fixable diagnostics.
func (r *Result) FixableCount() int {
	count := 0
	for _, d := range r.Diagnostics {
		if d.Fixable {
			count++
		}
	}
	return count
}

// ForRule returns the diagnostics produced by the given rule.
func (r *Result) ForRule(ruleID string) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.RuleID == ruleID {
			out = append(out, d)
		}
	}
	return out
}

// Engine coordinates parsing and rule matching.
type Engine struct {
	// Parser parses source text into trees.
	Parser Parser

	// Matcher evaluates rule patterns.
	Matcher Matcher
}

// NewEngine creates a new Engine with the given parser and matcher.
func NewEngine(parser Parser, matcher Matcher) *Engine {
	return &Engine{
		Parser:  parser,
		Matcher: matcher,
	}
}

// NewDefaultEngine creates an Engine backed by the tree-sitter JavaScript parser.
func NewDefaultEngine() *Engine {
	return NewEngine(jsast.NewParser(), jsast.NewMatcher())
}

// Analyze matches every rule against tree and returns the diagnostics.
// Pattern-less rules are skipped. Neither tree nor ruleList is modified.
func (e *Engine) Analyze(tree *jsast.Tree, ruleList []rules.Rule) *Result {
	result := &Result{
		Diagnostics: []Diagnostic{},
		RuleErrors:  make(map[string]error),
	}

	for _, rule := range ruleList {
		if !rule.IsSyntactic() {
			continue
		}

		nodes, err := e.Matcher.Match(tree, rule.Pattern)
		if err != nil {
			result.RuleErrors[rule.ID] = err
			continue
		}

		for _, node := range nodes {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				RuleID:   rule.ID,
				RuleName: rule.Name,
				Severity: rule.Severity,
				Message:  rule.Description,
				Line:     node.StartLine,
				Column:   node.StartColumn,
				Fixable:  rule.HasFix(),
			})
		}
	}

	return result
}

// AnalyzeSource parses src and analyzes it.
//
// Blank input yields a single low-severity diagnostic without parsing.
// A parse failure yields a single high-severity diagnostic at line 1
// carrying the parser message; rules are not run.
func (e *Engine) AnalyzeSource(ctx context.Context, src []byte, ruleList []rules.Rule) *Result {
	if strings.TrimSpace(string(src)) == "" {
		return &Result{
			Diagnostics: []Diagnostic{{
				RuleName: EmptyRuleName,
				Message:  EmptyMessage,
				Severity: config.SeverityLow,
				Line:     1,
			}},
			RuleErrors: make(map[string]error),
			Empty:      true,
		}
	}

	tree, err := e.Parser.Parse(ctx, src)
	if err != nil {
		return &Result{
			Diagnostics: []Diagnostic{{
				RuleName: ParseRuleName,
				Message:  fmt.Sprintf(ParseMessageFmt, err.Error()),
				Severity: config.SeverityHigh,
				Line:     1,
			}},
			RuleErrors: make(map[string]error),
			ParseErr:   err,
		}
	}
	defer tree.Close()

	return e.Analyze(tree, ruleList)
}

// AnalyzeFile is AnalyzeSource with FilePath set on every diagnostic.
func (e *Engine) AnalyzeFile(ctx context.Context, path string, src []byte, ruleList []rules.Rule) *Result {
	result := e.AnalyzeSource(ctx, src, ruleList)
	for i := range result.Diagnostics {
		result.Diagnostics[i].FilePath = path
	}
	return result
}
