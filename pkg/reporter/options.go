package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/jsfixer/pkg/analysis"
	"github.com/yaklabco/jsfixer/pkg/config"
)

const bufWriterSize = 64 * 1024

// SummaryOrder selects which table the summary format prints first.
type SummaryOrder string

const (
	SummaryOrderRules SummaryOrder = "rules"
	SummaryOrderFiles SummaryOrder = "files"
)

// Options configures reporter behavior.
type Options struct {
	Writer      io.Writer
	ErrorWriter io.Writer

	Format Format

	// Color is "auto", "always" or "never".
	Color string

	// ShowContext prints the source line and a caret under each diagnostic.
	ShowContext bool

	ShowSummary bool
	GroupByFile bool

	// Compact disables JSON indentation.
	Compact bool

	RuleFormat   config.RuleFormat
	SummaryOrder SummaryOrder

	// WorkingDir makes reported paths relative. Empty keeps them absolute.
	WorkingDir string

	// ToolVersion is reported as the SARIF driver version.
	ToolVersion string
}

// DefaultOptions writes grouped, colored-when-possible text to stdout.
func DefaultOptions() Options {
	return Options{
		Writer:       os.Stdout,
		ErrorWriter:  os.Stderr,
		Format:       FormatText,
		Color:        "auto",
		ShowContext:  true,
		ShowSummary:  true,
		GroupByFile:  true,
		RuleFormat:   config.RuleFormatCombined,
		SummaryOrder: SummaryOrderRules,
	}
}

func (o Options) displayPath(path string) string {
	return analysis.RelativePath(path, o.WorkingDir)
}
