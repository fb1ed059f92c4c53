package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/term"

	"github.com/yaklabco/jsfixer/internal/ui/pretty"
	"github.com/yaklabco/jsfixer/pkg/config"
	"github.com/yaklabco/jsfixer/pkg/runner"
)

const (
	defaultTermWidth = 100
	minMessageWidth  = 24
)

// TableReporter writes one row per diagnostic.
type TableReporter struct {
	opts   Options
	styles *pretty.Styles
	width  int
	bw     *bufio.Writer
}

// NewTableReporter creates a table reporter sized to the terminal.
func NewTableReporter(opts Options) *TableReporter {
	return &TableReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		width:  terminalWidth(opts.Writer),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
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

	table := newTable(r.bw,
		[]string{"File", "Line", "Col", "Severity", "Rule", "Message", "Fix"},
		[]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
			tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})
	table.SetColWidth(max(r.width/3, minMessageWidth))

	total := 0
	for _, outcome := range result.Files {
		path := r.opts.displayPath(outcome.Path)
		if outcome.Error != nil {
			writeFileError(r.bw, r.styles, path, outcome.Error)
			continue
		}
		for _, d := range outcome.Result.Diagnostics() {
			fixable := ""
			if d.Fixable {
				fixable = r.styles.Success.Render(fixableMark)
			}
			rule := config.FormatRuleID(r.opts.RuleFormat, d.RuleID, d.RuleName)
			if rule == "" {
				rule = d.RuleName
			}
			table.Append([]string{
				path,
				strconv.Itoa(d.Line),
				strconv.Itoa(d.Column + 1),
				r.styles.FormatSeverity(d.Severity),
				rule,
				d.Message,
				fixable,
			})
			total++
		}
	}

	if total == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("All files passed!"))
			fmt.Fprintln(r.bw, r.styles.Dim.Render(fmt.Sprintf("%d files checked", result.Stats.FilesProcessed)))
		}
		return 0, nil
	}

	table.Render()
	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw)
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
		if result.Stats.DiagnosticsFixable > 0 {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("Run with --fix to repair fixable issues"))
		}
	}
	return total, nil
}

func terminalWidth(w io.Writer) int {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
