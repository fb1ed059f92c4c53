// Package cli provides the Cobra command structure for jsfixer.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/yaklabco/jsfixer/internal/logging"
)

// ErrIssuesFound is matched by errors returned when a run ends with
// diagnostics that fail the exit status.
var ErrIssuesFound = errors.New("issues found")

// exitError carries the exit status of a run that completed with issues.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return ErrIssuesFound.Error()
}

func (e *exitError) Is(target error) bool {
	return target == ErrIssuesFound
}

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	var usage *usageError
	if errors.As(err, &usage) {
		return ExitInvalidUsage
	}
	var cfgErr *configError
	if errors.As(err, &cfgErr) {
		return ExitConfigError
	}
	return ExitInternalError
}

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root jsfixer command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "jsfixer",
		Short: "Find and fix common JavaScript mistakes",
		Long: `jsfixer analyzes JavaScript source with tree-sitter queries and reports
diagnostics such as var declarations, loose equality, empty functions and
leftover console.log calls.

Fixable diagnostics can be repaired in place with line fixers, and whole-file
AST transforms rewrite matched nodes. Writes are atomic, check that the file
did not change on disk meanwhile, and keep a backup of the original.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       info.Version,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newLintCommand(info))
	rootCmd.AddCommand(newFixCommand(info))
	rootCmd.AddCommand(newTransformCommand(info))
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newSearchCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newRestoreCommand())
	rootCmd.AddCommand(newCacheCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	applyHelp(rootCmd)

	return rootCmd
}
