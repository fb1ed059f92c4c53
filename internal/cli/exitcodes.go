package cli

import (
	"github.com/yaklabco/jsfixer/pkg/config"
	"github.com/yaklabco/jsfixer/pkg/runner"
)

// Exit codes for jsfixer.
const (
	// ExitSuccess indicates successful execution with no failing issues.
	ExitSuccess = 0

	// ExitHighSeverity indicates that high-severity issues remain.
	ExitHighSeverity = 1

	// ExitMediumSeverity indicates medium-severity issues remain (strict mode).
	ExitMediumSeverity = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration or rule file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult maps the remaining diagnostics to an exit code.
// Low-severity diagnostics never fail a run.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	bySeverity := result.Stats.DiagnosticsBySeverity
	if bySeverity[config.SeverityHigh] > 0 {
		return ExitHighSeverity
	}
	if strict && bySeverity[config.SeverityMedium] > 0 {
		return ExitMediumSeverity
	}
	if len(result.Errors) > 0 || result.Stats.FilesErrored > 0 {
		return ExitIOError
	}

	return ExitSuccess
}
