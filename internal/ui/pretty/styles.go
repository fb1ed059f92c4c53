// Package pretty renders diagnostics and run summaries for the terminal.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/yaklabco/jsfixer/pkg/config"
)

// Styles holds the lipgloss styles used by the text and summary output.
type Styles struct {
	High   lipgloss.Style
	Medium lipgloss.Style
	Low    lipgloss.Style

	FilePath   lipgloss.Style
	Location   lipgloss.Style
	RuleID     lipgloss.Style
	Message    lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles returns colored styles, or plain ones when colorEnabled is false.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newPlainStyles()
	}
	return newColorStyles()
}

func newColorStyles() *Styles {
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return &Styles{
		High:   fg("9").Bold(true),
		Medium: fg("11").Bold(true),
		Low:    fg("12").Bold(true),

		FilePath:   lipgloss.NewStyle().Bold(true),
		Location:   fg("8"),
		RuleID:     fg("8"),
		Message:    lipgloss.NewStyle(),
		SourceLine: fg("7").TabWidth(lipgloss.NoTabConversion),
		Caret:      fg("9"),

		DiffHeader:  lipgloss.NewStyle().Bold(true),
		DiffHunk:    fg("14"),
		DiffAdd:     fg("10").TabWidth(lipgloss.NoTabConversion),
		DiffRemove:  fg("9").TabWidth(lipgloss.NoTabConversion),
		DiffContext: fg("8").TabWidth(lipgloss.NoTabConversion),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		SummaryValue: lipgloss.NewStyle(),
		Success:      fg("10").Bold(true),
		Failure:      fg("9").Bold(true),

		Dim:  fg("8"),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

func newPlainStyles() *Styles {
	// Tabs pass through untouched so source lines and diffs keep their layout.
	plain := lipgloss.NewStyle().TabWidth(lipgloss.NoTabConversion)
	return &Styles{
		High: plain, Medium: plain, Low: plain,
		FilePath: plain, Location: plain, RuleID: plain, Message: plain,
		SourceLine: plain, Caret: plain,
		DiffHeader: plain, DiffHunk: plain, DiffAdd: plain, DiffRemove: plain, DiffContext: plain,
		SummaryTitle: plain, SummaryValue: plain, Success: plain, Failure: plain,
		Dim: plain, Bold: plain,
	}
}

// ForSeverity returns the style used for sev.
func (s *Styles) ForSeverity(sev config.Severity) lipgloss.Style {
	switch sev {
	case config.SeverityHigh:
		return s.High
	case config.SeverityMedium:
		return s.Medium
	case config.SeverityLow:
		return s.Low
	default:
		return s.Message
	}
}

// IsColorEnabled resolves a color mode ("auto", "always", "never") for writer.
// Auto enables color only for terminals and honors NO_COLOR.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
