package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/jsfixer/internal/ui/pretty"
)

// helpStyles colors the sections of command help.
type helpStyles struct {
	heading lipgloss.Style
	command lipgloss.Style
	flag    lipgloss.Style
	dim     lipgloss.Style
}

func newHelpStyles(colorEnabled bool) helpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return helpStyles{heading: plain, command: plain, flag: plain, dim: plain}
	}
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return helpStyles{
		heading: fg("11").Bold(true),
		command: fg("14").Bold(true),
		flag:    fg("12"),
		dim:     fg("8"),
	}
}

const helpTemplate = `{{with (or .Long .Short)}}{{trimRight .}}

{{end}}{{heading "Usage:"}}{{if .Runnable}}
  {{command .UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{command .CommandPath}} [command]{{end}}{{if .HasExample}}

{{heading "Examples:"}}
{{dim .Example}}{{end}}{{if .HasAvailableSubCommands}}

{{heading "Commands:"}}{{range .Commands}}{{if or .IsAvailableCommand (eq .Name "help")}}
  {{command (pad .Name .NamePadding)}} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{heading "Flags:"}}
{{flags .LocalFlags}}{{end}}{{if .HasAvailableInheritedFlags}}

{{heading "Global Flags:"}}
{{flags .InheritedFlags}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`

// applyHelp installs styled help and usage output on root and every
// subcommand. Color is resolved when help is printed, after --color has been
// parsed.
func applyHelp(root *cobra.Command) {
	render := func(cmd *cobra.Command, w io.Writer) error {
		mode, err := cmd.Flags().GetString("color")
		if err != nil {
			mode = "auto"
		}
		tmpl, err := template.New("help").
			Funcs(helpFuncs(newHelpStyles(pretty.IsColorEnabled(mode, w)))).
			Parse(helpTemplate)
		if err != nil {
			return fmt.Errorf("parse help template: %w", err)
		}
		if err := tmpl.Execute(w, cmd); err != nil {
			return fmt.Errorf("render help: %w", err)
		}
		return nil
	}

	root.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		if err := render(cmd, cmd.OutOrStdout()); err != nil {
			cmd.PrintErrln(err)
		}
	})
	root.SetUsageFunc(func(cmd *cobra.Command) error {
		return render(cmd, cmd.OutOrStderr())
	})
}

func helpFuncs(styles helpStyles) template.FuncMap {
	return template.FuncMap{
		"heading":   styles.heading.Render,
		"command":   styles.command.Render,
		"dim":       styles.dim.Render,
		"trimRight": trimRightLines,
		"pad":       padRight,
		"flags": func(fs *pflag.FlagSet) string {
			return renderFlags(fs, styles)
		},
	}
}

// renderFlags lays out one visible flag per line with aligned descriptions.
func renderFlags(fs *pflag.FlagSet, styles helpStyles) string {
	type row struct {
		names, kind, usage string
	}

	var rows []row
	width := 0
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		kind, usage := pflag.UnquoteUsage(f)
		if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "0" && f.DefValue != "[]" {
			usage += fmt.Sprintf(" (default %q)", f.DefValue)
		}
		names := "    --" + f.Name
		if f.Shorthand != "" {
			names = "-" + f.Shorthand + ", --" + f.Name
		}
		r := row{names: names, kind: kind, usage: usage}
		if w := len(r.names) + len(r.kind) + 1; w > width {
			width = w
		}
		rows = append(rows, r)
	})

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		used := len(r.names)
		cell := styles.flag.Render(r.names)
		if r.kind != "" {
			cell += " " + styles.dim.Render(r.kind)
			used += len(r.kind) + 1
		}
		lines = append(lines, "  "+cell+strings.Repeat(" ", width-used+3)+r.usage)
	}
	return strings.Join(lines, "\n")
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func trimRightLines(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
