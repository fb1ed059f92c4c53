package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/jsfixer/pkg/analysis"
	"github.com/yaklabco/jsfixer/pkg/runner"
)

// JSONOutput is the document written by the json format.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult is one file. Diagnostics is never null.
type JSONFileResult struct {
	Path              string           `json:"path"`
	Diagnostics       []JSONDiagnostic `json:"diagnostics"`
	Modified          bool             `json:"modified,omitempty"`
	FixesApplied      int              `json:"fixesApplied,omitempty"`
	TransformsApplied []string         `json:"transformsApplied,omitempty"`
	Skipped           string           `json:"skipped,omitempty"`
	Error             string           `json:"error,omitempty"`
}

// JSONDiagnostic is one diagnostic with a 1-based column.
type JSONDiagnostic struct {
	RuleID   string `json:"ruleId,omitempty"`
	RuleName string `json:"ruleName"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Fixable  bool   `json:"fixable"`
}

// JSONSummary holds the run totals.
type JSONSummary struct {
	FilesChecked    int            `json:"filesChecked"`
	FilesWithIssues int            `json:"filesWithIssues"`
	FilesModified   int            `json:"filesModified"`
	FilesErrored    int            `json:"filesErrored"`
	TotalIssues     int            `json:"totalIssues"`
	Fixable         int            `json:"fixable"`
	BySeverity      map[string]int `json:"bySeverity"`
}

// JSONReporter writes a JSON document.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}
	return output.Summary.TotalIssues, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: analysis.ReportVersion,
		Files:   []JSONFileResult{},
		Summary: JSONSummary{BySeverity: make(map[string]int)},
	}
	if result == nil {
		return output
	}

	for _, outcome := range result.Files {
		file := JSONFileResult{
			Path:        r.opts.displayPath(outcome.Path),
			Diagnostics: []JSONDiagnostic{},
		}
		output.Summary.FilesChecked++

		if outcome.Error != nil {
			file.Error = outcome.Error.Error()
			output.Summary.FilesErrored++
		}

		if fr := outcome.Result; fr != nil {
			file.Modified = fr.Written
			file.FixesApplied = fr.FixesApplied
			file.TransformsApplied = fr.TransformsApplied
			if fr.Skipped {
				file.Skipped = fr.SkipReason
			}
			for _, d := range fr.Diagnostics() {
				sev := string(analysis.Severity(d.Severity))
				file.Diagnostics = append(file.Diagnostics, JSONDiagnostic{
					RuleID:   d.RuleID,
					RuleName: d.RuleName,
					Severity: sev,
					Message:  d.Message,
					Line:     d.Line,
					Column:   d.Column + 1,
					Fixable:  d.Fixable,
				})
				output.Summary.TotalIssues++
				output.Summary.BySeverity[sev]++
				if d.Fixable {
					output.Summary.Fixable++
				}
			}
		}

		if len(file.Diagnostics) > 0 {
			output.Summary.FilesWithIssues++
		}
		if file.Modified {
			output.Summary.FilesModified++
		}
		output.Files = append(output.Files, file)
	}

	return output
}
