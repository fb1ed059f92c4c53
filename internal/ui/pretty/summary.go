package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/jsfixer/pkg/config"
	"github.com/yaklabco/jsfixer/pkg/runner"
)

const summaryDividerWidth = 40

var severityOrder = []config.Severity{config.SeverityHigh, config.SeverityMedium, config.SeverityLow}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine renders run statistics on a single line, e.g.
// "5 issues (3 high, 1 medium, 1 low) in 4 files, 3 fixable".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	fixed := ""
	if stats.DiagnosticsFixed > 0 {
		fixed = s.Success.Render(fmt.Sprintf("%d fixed in %d %s",
			stats.DiagnosticsFixed, stats.FilesModified, plural(stats.FilesModified, "file", "files")))
	}

	if stats.DiagnosticsTotal == 0 {
		msg := s.Success.Render("No issues found") +
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesProcessed, plural(stats.FilesProcessed, "file", "files")))
		if fixed != "" {
			msg += ", " + fixed
		}
		return msg + "\n"
	}

	var bySeverity []string
	for _, sev := range severityOrder {
		if n := stats.DiagnosticsBySeverity[sev]; n > 0 {
			bySeverity = append(bySeverity, s.ForSeverity(sev).Render(fmt.Sprintf("%d %s", n, sev)))
		}
	}

	head := fmt.Sprintf("%d %s", stats.DiagnosticsTotal, plural(stats.DiagnosticsTotal, "issue", "issues"))
	if len(bySeverity) > 0 {
		head += " (" + strings.Join(bySeverity, ", ") + ")"
	}
	head += fmt.Sprintf(" in %d %s", stats.FilesWithIssues, plural(stats.FilesWithIssues, "file", "files"))
	parts := []string{head}
	if stats.DiagnosticsFixable > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixable", stats.DiagnosticsFixable)))
	}
	if fixed != "" {
		parts = append(parts, fixed)
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary renders run statistics as a block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var b strings.Builder

	row := func(label string, style func(...string) string, n int) {
		fmt.Fprintf(&b, "  %-19s%s\n", label, style(strconv.Itoa(n)))
	}

	b.WriteString("\n" + s.SummaryTitle.Render("Summary") + "\n")
	b.WriteString(strings.Repeat("-", summaryDividerWidth) + "\n")

	row("Files checked:", s.SummaryValue.Render, stats.FilesProcessed)
	if stats.FilesWithIssues > 0 {
		row("Files with issues:", s.Failure.Render, stats.FilesWithIssues)
	}
	if stats.FilesModified > 0 {
		row("Files modified:", s.Success.Render, stats.FilesModified)
	}
	if stats.FilesSkipped > 0 {
		row("Files skipped:", s.Dim.Render, stats.FilesSkipped)
	}
	if stats.FilesErrored > 0 {
		row("Files errored:", s.Failure.Render, stats.FilesErrored)
	}
	b.WriteString("\n")

	row("Total issues:", s.SummaryValue.Render, stats.DiagnosticsTotal)
	for _, sev := range severityOrder {
		if n := stats.DiagnosticsBySeverity[sev]; n > 0 {
			row("  "+strings.ToUpper(string(sev[:1]))+string(sev[1:])+":", s.ForSeverity(sev).Render, n)
		}
	}
	if stats.DiagnosticsFixed > 0 {
		row("Issues fixed:", s.Success.Render, stats.DiagnosticsFixed)
	}
	b.WriteString("\n")

	switch {
	case stats.DiagnosticsBySeverity[config.SeverityHigh] > 0:
		b.WriteString(s.Failure.Render("Analysis found high-severity issues"))
	case stats.DiagnosticsTotal > 0:
		b.WriteString(s.Medium.Render("Analysis completed with issues"))
	default:
		b.WriteString(s.Success.Render("Analysis passed"))
	}
	b.WriteString("\n")

	return b.String()
}
