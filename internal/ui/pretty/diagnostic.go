package pretty

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/jsfixer/pkg/config"
	"github.com/yaklabco/jsfixer/pkg/lint"
)

const contextIndent = "        "

// FormatDiagnostic renders one diagnostic line, followed by the source line
// and a caret when sourceLine is non-empty.
func (s *Styles) FormatDiagnostic(diag lint.Diagnostic, sourceLine string, ruleFormat config.RuleFormat) string {
	var builder strings.Builder

	location := s.Location.Render(diag.Location())
	if diag.FilePath != "" {
		location = s.FilePath.Render(diag.FilePath) + s.Location.Render(fmt.Sprintf(":%d:%d", diag.Line, diag.Column+1))
	}

	line := fmt.Sprintf("  %s  %s  %s", location, s.FormatSeverity(diag.Severity), s.Message.Render(diag.Message))
	if ident := config.FormatRuleID(ruleFormat, diag.RuleID, diag.RuleName); ident != "" {
		line += "  " + s.RuleID.Render("("+ident+")")
	}
	if diag.Fixable {
		line += " " + s.Dim.Render("[fixable]")
	}
	builder.WriteString(line + "\n")

	if sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, diag.Column))
	}

	return builder.String()
}

// FormatSeverity returns the styled severity label.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	if !sev.IsValid() {
		return string(sev)
	}
	return s.ForSeverity(sev).Render(string(sev))
}

// FormatSourceContext renders line with a caret under the 0-based byte column.
// Tabs in the prefix are kept so the caret lines up in the terminal.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder
	builder.WriteString(contextIndent + s.SourceLine.Render(line) + "\n")

	if column < 0 || column > len(line) {
		return builder.String()
	}
	builder.WriteString(contextIndent + caretPadding(line[:column]) + s.Caret.Render("^") + "\n")
	return builder.String()
}

func caretPadding(prefix string) string {
	var pad strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			pad.WriteByte('\t')
			continue
		}
		pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return pad.String()
}

// FormatFileHeader renders a file path with its issue count.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	switch {
	case issueCount == 1:
		header += s.Dim.Render(" (1 issue)")
	case issueCount > 1:
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}
