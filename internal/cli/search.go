package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/jsfixer/internal/ui/pretty"
	"github.com/yaklabco/jsfixer/pkg/fsutil"
	"github.com/yaklabco/jsfixer/pkg/session"
)

func newSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query> <files...>",
		Short: "Find lines containing a substring",
		Long: `Print every line of the given files that contains the query, with its
line number. Matching is case-sensitive and the query is trimmed first.

Examples:
  jsfixer search console.log app.js
  jsfixer search "var " src/a.js src/b.js`,
		Args: cobra.MinimumNArgs(2), //nolint:mnd // query plus at least one file
		RunE: func(cmd *cobra.Command, args []string) error {
			query := args[0]
			if strings.TrimSpace(query) == "" {
				return &usageError{err: errors.New("empty search query")}
			}

			colorMode, err := cmd.Flags().GetString("color")
			if err != nil {
				colorMode = "auto"
			}
			out := cmd.OutOrStdout()
			styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, out))

			ctx := commandContext(cmd)
			for _, path := range args[1:] {
				content, _, err := fsutil.ReadFile(ctx, path)
				if err != nil {
					return fmt.Errorf("search %s: %w", path, err)
				}

				sess := session.New(session.WithText(string(content)))
				for _, hit := range sess.Search(query) {
					fmt.Fprintf(out, "%s:%s: %s\n",
						styles.FilePath.Render(path),
						styles.Location.Render(fmt.Sprint(hit.Line)),
						hit.Text)
				}
			}

			return nil
		},
	}

	return cmd
}
