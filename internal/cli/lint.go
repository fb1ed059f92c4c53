package cli

import (
	"github.com/spf13/cobra"
)

func newLintCommand(info BuildInfo) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Report issues in JavaScript files",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeRun(cmd, args, modeLint, flags, info)
		},
	}

	addCommonRunFlags(cmd, flags)

	return cmd
}

const lintLongDescription = `Analyze JavaScript files and report diagnostics.

By default, analyzes every .js, .mjs and .cjs file under the current
directory, skipping hidden and vendored directories. Specify paths to analyze
specific files or directories. An explicit file without a JavaScript
extension is analyzed when its content looks like JavaScript.

The exit status is 1 when high-severity issues are found, or 2 with --strict
when medium-severity issues are found.

Examples:
  jsfixer lint                      # Analyze the current directory
  jsfixer lint src/                 # Analyze src
  jsfixer lint app.js               # Analyze a single file
  jsfixer lint --format json        # Output as JSON for CI
  jsfixer lint --format sarif       # Output SARIF for code scanning
  jsfixer lint --rules rules.yaml   # Use a custom rule file`
