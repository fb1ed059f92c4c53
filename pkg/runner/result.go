package runner

import (
	"bytes"

	"github.com/yaklabco/jsfixer/pkg/config"
	"github.com/yaklabco/jsfixer/pkg/fix"
	"github.com/yaklabco/jsfixer/pkg/lint"
)

// FileResult is what the pipeline did to one file.
type FileResult struct {
	Path string

	// Analysis is the diagnostic result for Content.
	Analysis *lint.Result

	// Content is the text the diagnostics refer to: the fixed content when
	// fixes were made, the original otherwise.
	Content []byte

	// Modified is true when fixing or transforming changed the content.
	Modified bool

	// ModifiedContent holds the new content when Modified.
	ModifiedContent []byte

	// Diff is set in dry-run mode when the content changed.
	Diff *fix.Diff

	// FixesApplied counts line fixes across all rules.
	FixesApplied int

	// TransformsApplied names the transforms that changed the content.
	TransformsApplied []string

	Skipped       bool
	SkipReason    string
	BackupCreated bool
	Written       bool

	// Cached is true when Analysis came from the result cache.
	Cached bool
}

// Diagnostics returns the final diagnostics, or nil.
func (fr *FileResult) Diagnostics() []lint.Diagnostic {
	if fr == nil || fr.Analysis == nil {
		return nil
	}
	return fr.Analysis.Diagnostics
}

// SourceLine returns the 1-based line of Content without its line ending,
// or "" when out of range.
func (fr *FileResult) SourceLine(line int) string {
	if fr == nil || line < 1 {
		return ""
	}
	rest := fr.Content
	for ; line > 1; line-- {
		idx := bytes.IndexByte(rest, '\n')
		if idx < 0 {
			return ""
		}
		rest = rest[idx+1:]
	}
	if idx := bytes.IndexByte(rest, '\n'); idx >= 0 {
		rest = rest[:idx]
	}
	return string(bytes.TrimSuffix(rest, []byte("\r")))
}

// Summary is a one-word status for progress output.
func (fr *FileResult) Summary() string {
	switch {
	case fr.Skipped:
		return "skipped: " + fr.SkipReason
	case fr.Written && fr.BackupCreated:
		return "fixed (backup created)"
	case fr.Written:
		return "fixed"
	case fr.Modified:
		return "changes pending"
	case len(fr.Diagnostics()) > 0:
		return "issues found"
	default:
		return "ok"
	}
}

// FileOutcome pairs a path with its result or error.
type FileOutcome struct {
	Path   string
	Result *FileResult
	Error  error
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesSkipped    int
	FilesErrored    int
	FilesCached     int
	FilesWithIssues int
	FilesModified   int

	DiagnosticsTotal      int
	DiagnosticsFixable    int
	DiagnosticsFixed      int
	DiagnosticsBySeverity map[config.Severity]int
}

// Result is the outcome of a run, ordered by path.
type Result struct {
	Files  []FileOutcome
	Stats  Stats
	Errors []error
}

// HasFailures reports whether any high-severity diagnostic was found.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.DiagnosticsBySeverity[config.SeverityHigh] > 0
}

// HasIssues reports whether any diagnostic was found.
func (r *Result) HasIssues() bool {
	return r != nil && r.Stats.DiagnosticsTotal > 0
}

func newStats() Stats {
	return Stats{DiagnosticsBySeverity: make(map[config.Severity]int)}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	fr := outcome.Result
	if fr == nil {
		return
	}

	r.Stats.FilesProcessed++
	if fr.Skipped {
		r.Stats.FilesSkipped++
	}
	if fr.Cached {
		r.Stats.FilesCached++
	}
	if fr.Written {
		r.Stats.FilesModified++
	}
	r.Stats.DiagnosticsFixed += fr.FixesApplied

	diags := fr.Diagnostics()
	if len(diags) > 0 {
		r.Stats.FilesWithIssues++
	}
	r.Stats.DiagnosticsTotal += len(diags)
	for _, d := range diags {
		if d.Fixable {
			r.Stats.DiagnosticsFixable++
		}
		r.Stats.DiagnosticsBySeverity[d.Severity]++
	}
}
