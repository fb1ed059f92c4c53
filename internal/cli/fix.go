package cli

import (
	"github.com/spf13/cobra"
)

func newFixCommand(info BuildInfo) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Fix issues in JavaScript files",
		Long: `Apply the line fixer of every fixable rule and report what remains.

Each file is fixed in memory, re-analyzed, and written atomically. A backup
of the original is kept next to it unless backups are disabled, and files
that changed on disk during the run are skipped.

Examples:
  jsfixer fix                          # Fix the current directory
  jsfixer fix --dry-run                # Show a diff instead of writing
  jsfixer fix --fix-rules console-log  # Only remove console.log calls
  jsfixer fix --transform              # Also apply the AST transforms`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeRun(cmd, args, modeFix, flags, info)
		},
	}

	addCommonRunFlags(cmd, flags)
	addWriteFlags(cmd, flags)
	cmd.Flags().StringSliceVar(&flags.fixRules, "fix-rules", nil, "limit fixing to these rule IDs")
	cmd.Flags().BoolVar(&flags.transform, "transform", false, "also apply the AST transforms")

	return cmd
}

func newTransformCommand(info BuildInfo) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "transform [paths...]",
		Short: "Apply AST transforms to JavaScript files",
		Long: `Apply the configured AST transforms in order, rewriting every node each
selector matches. A transform whose matches overlap is skipped and the file
is left as the previous transform produced it.

Examples:
  jsfixer transform src/                     # Transform src
  jsfixer transform --dry-run app.js         # Preview the rewrite
  jsfixer transform --transforms my.yaml     # Use a custom transform file`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeRun(cmd, args, modeTransform, flags, info)
		},
	}

	addCommonRunFlags(cmd, flags)
	addWriteFlags(cmd, flags)

	return cmd
}
