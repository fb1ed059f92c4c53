package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/yaklabco/jsfixer/internal/ui/pretty"
	"github.com/yaklabco/jsfixer/pkg/analysis"
	"github.com/yaklabco/jsfixer/pkg/config"
)

const fixableMark = "✓"

// SummaryRenderer writes per-rule and per-file tables.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if report.Totals.Issues == 0 {
		fmt.Fprintln(r.out, r.styles.Success.Render("No issues found"))
		return nil
	}

	if r.opts.SummaryOrder == SummaryOrderFiles {
		r.renderFileTable(report.ByFile)
		r.renderRuleTable(report.ByRule)
	} else {
		r.renderRuleTable(report.ByRule)
		r.renderFileTable(report.ByFile)
	}

	r.renderTotals(report.Totals)
	return nil
}

// newTable returns a borderless table in the layout shared by every
// tabular output.
func newTable(w io.Writer, header []string, align []int) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetColumnAlignment(align)
	return table
}

func (r *SummaryRenderer) severityCells(c analysis.SeverityCounts) []string {
	return []string{strconv.Itoa(c.High), strconv.Itoa(c.Medium), strconv.Itoa(c.Low)}
}

func (r *SummaryRenderer) rowStyle(c analysis.SeverityCounts) func(...string) string {
	switch {
	case c.High > 0:
		return r.styles.High.Render
	case c.Medium > 0:
		return r.styles.Medium.Render
	default:
		return r.styles.Message.Render
	}
}

func (r *SummaryRenderer) renderRuleTable(rules []analysis.RuleAnalysis) {
	if len(rules) == 0 {
		return
	}
	fmt.Fprintln(r.out, r.styles.Bold.Render("Rules Summary"))

	table := newTable(r.out,
		[]string{"Rule", "Count", "High", "Medium", "Low", "Fixable"},
		[]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
			tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_CENTER})

	for _, rule := range rules {
		label := config.FormatRuleID(r.opts.RuleFormat, rule.RuleID, rule.RuleName)
		if label == "" {
			label = rule.RuleName
		}
		fixable := ""
		if rule.Fixable {
			fixable = r.styles.Success.Render(fixableMark)
		}
		row := append([]string{r.rowStyle(rule.SeverityCounts)(label), strconv.Itoa(rule.Issues)},
			r.severityCells(rule.SeverityCounts)...)
		table.Append(append(row, fixable))
	}
	table.Render()
	fmt.Fprintln(r.out)
}

func (r *SummaryRenderer) renderFileTable(files []analysis.FileAnalysis) {
	if len(files) == 0 {
		return
	}
	fmt.Fprintln(r.out, r.styles.Bold.Render("Files Summary"))

	table := newTable(r.out,
		[]string{"File", "Count", "High", "Medium", "Low"},
		[]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
			tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT})

	for _, file := range files {
		row := append([]string{r.rowStyle(file.SeverityCounts)(file.Path), strconv.Itoa(file.Issues)},
			r.severityCells(file.SeverityCounts)...)
		table.Append(row)
	}
	table.Render()
	fmt.Fprintln(r.out)
}

func (r *SummaryRenderer) renderTotals(totals analysis.Totals) {
	head := fmt.Sprintf("%d %s", totals.Issues, plural(totals.Issues, "issue", "issues"))

	var bySeverity []string
	for _, part := range []struct {
		n     int
		sev   config.Severity
		style func(...string) string
	}{
		{totals.High, config.SeverityHigh, r.styles.High.Render},
		{totals.Medium, config.SeverityMedium, r.styles.Medium.Render},
		{totals.Low, config.SeverityLow, r.styles.Low.Render},
	} {
		if part.n > 0 {
			bySeverity = append(bySeverity, part.style(fmt.Sprintf("%d %s", part.n, part.sev)))
		}
	}
	if len(bySeverity) > 0 {
		head += " (" + strings.Join(bySeverity, ", ") + ")"
	}

	line := head + fmt.Sprintf(" in %d %s", totals.FilesWithIssues, plural(totals.FilesWithIssues, "file", "files"))
	if totals.Fixable > 0 {
		line += ", " + r.styles.Success.Render(fmt.Sprintf("%d fixable", totals.Fixable))
	}
	fmt.Fprintln(r.out, r.styles.Bold.Render("Total: ")+line)
}
