package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/yaklabco/jsfixer/internal/ui/pretty"
	"github.com/yaklabco/jsfixer/pkg/runner"
)

// TextReporter writes styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	total := 0
	for _, outcome := range result.Files {
		total += r.writeOutcome(outcome)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}
	return total, nil
}

func (r *TextReporter) writeOutcome(outcome runner.FileOutcome) int {
	path := r.opts.displayPath(outcome.Path)

	if outcome.Error != nil {
		writeFileError(r.bw, r.styles, path, outcome.Error)
		return 0
	}
	fr := outcome.Result
	if fr == nil {
		return 0
	}
	if fr.Skipped {
		fmt.Fprintf(r.bw, "%s: %s\n", r.styles.FilePath.Render(path), r.styles.Dim.Render(fr.Summary()))
	}

	diags := fr.Diagnostics()
	if len(diags) == 0 {
		return 0
	}

	if r.opts.GroupByFile {
		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(diags)))
	}
	for _, d := range diags {
		if !r.opts.GroupByFile {
			d.FilePath = path
		} else {
			d.FilePath = ""
		}
		var source string
		if r.opts.ShowContext && !d.IsSynthetic() {
			source = fr.SourceLine(d.Line)
		}
		fmt.Fprint(r.bw, r.styles.FormatDiagnostic(d, source, r.opts.RuleFormat))
	}
	if r.opts.GroupByFile {
		fmt.Fprintln(r.bw)
	}
	return len(diags)
}

func writeFileError(w io.Writer, styles *pretty.Styles, path string, err error) {
	fmt.Fprintf(w, "%s: %s\n", styles.FilePath.Render(path), styles.Failure.Render(fmt.Sprintf("error: %v", err)))
}
