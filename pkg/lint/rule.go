// Package lint runs rule patterns against parsed JavaScript and reports diagnostics.
package lint

import (
	"fmt"

	"github.com/yaklabco/jsfixer/pkg/config"
)

// Diagnostic represents a single issue found in a source text.
// Diagnostics are values: every analysis produces a new list.
type Diagnostic struct {
	// RuleID is the identifier of the rule that produced this diagnostic.
	// Empty for synthetic diagnostics (empty input, parse failure).
	RuleID string

	// RuleName is the human-readable name of the rule.
	RuleName string

	// Severity is copied from the rule.
	Severity config.Severity

	// Message is the rule description.
	Message string

	// FilePath is the path to the file containing the issue, if any.
	FilePath string

	// Line is the 1-based line of the matched node start.
	Line int

	// Column is the 0-based column of the matched node start, counted in
	// bytes of the UTF-8 line so that line[:Column] is the text before it.
	// Output formats add 1.
	Column int

	// Fixable mirrors the owning rule's HasFix.
	Fixable bool
}

// IsSynthetic reports whether the diagnostic was produced by the caller-side
// contract rather than by a rule match.
func (d Diagnostic) IsSynthetic() bool {
	return d.RuleID == ""
}

// Location formats the diagnostic position as path:line:column, with a
// 1-based column for editor compatibility.
func (d Diagnostic) Location() string {
	if d.FilePath == "" {
		return fmt.Sprintf("%d:%d", d.Line, d.Column+1)
	}
	return fmt.Sprintf("%s:%d:%d", d.FilePath, d.Line, d.Column+1)
}
