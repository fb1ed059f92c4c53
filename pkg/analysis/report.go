// Package analysis aggregates a run into per-file and per-rule views shared
// by the reporters.
package analysis

import "time"

// Report is computed once by Analyze and read by every renderer.
type Report struct {
	Diagnostics []DiagnosticEntry `json:"diagnostics,omitempty"`
	ByFile      []FileAnalysis    `json:"byFile,omitempty"`
	ByRule      []RuleAnalysis    `json:"byRule,omitempty"`
	Totals      Totals            `json:"summary"`
	Version     string            `json:"version"`
	Timestamp   time.Time         `json:"timestamp"`
}

// DiagnosticEntry is one diagnostic with its display path.
// Column is 1-based here.
type DiagnosticEntry struct {
	FilePath string `json:"filePath"`
	RuleID   string `json:"ruleId,omitempty"`
	RuleName string `json:"ruleName"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Fixable  bool   `json:"fixable"`
}

// SeverityCounts counts diagnostics per severity.
type SeverityCounts struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// Totals are the aggregate counts of a run.
type Totals struct {
	Files           int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	FilesModified   int `json:"filesModified"`
	Issues          int `json:"totalIssues"`
	SeverityCounts
	Fixable int `json:"fixable"`
	Fixed   int `json:"fixed"`
}

// HasIssues returns true if there are any issues.
func (t Totals) HasIssues() bool {
	return t.Issues > 0
}

// HasHigh returns true if any high-severity issue was found.
func (t Totals) HasHigh() bool {
	return t.High > 0
}

// FileAnalysis aggregates one file.
type FileAnalysis struct {
	Path   string `json:"path"`
	Issues int    `json:"issues"`
	SeverityCounts
	Rules []string `json:"rules,omitempty"`
}

// RuleAnalysis aggregates one rule. Synthetic diagnostics are grouped under
// their rule name with an empty RuleID.
type RuleAnalysis struct {
	RuleID   string `json:"ruleId,omitempty"`
	RuleName string `json:"ruleName"`
	Issues   int    `json:"issues"`
	SeverityCounts
	Fixable bool     `json:"fixable"`
	Files   []string `json:"files,omitempty"`
}
