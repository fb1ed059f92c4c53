package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/jsfixer/internal/logging"
	"github.com/yaklabco/jsfixer/pkg/config"
	"github.com/yaklabco/jsfixer/pkg/rules"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

var errInitAborted = errors.New("init aborted")

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

// initIO is where init asks before overwriting. interactive is false when
// stdin is not a terminal, in which case init never prompts.
type initIO struct {
	in          io.Reader
	out         io.Writer
	interactive bool
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a jsfixer configuration file",
		Long: `Create a .jsfixer.yml configuration file in the current directory with
sensible defaults. The file can be customized to disable rules, change
severities, point at custom rule and transform files, and configure backups
and the analysis cache.

Examples:
  jsfixer init                        Create a minimal .jsfixer.yml
  jsfixer init --full                 Document every built-in rule
  jsfixer init --format toml          Create .jsfixer.toml instead
  jsfixer init --output custom.yml    Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stdin, isFile := cmd.InOrStdin().(*os.File)
			return runInit(flags, initIO{
				in:          cmd.InOrStdin(),
				out:         cmd.OutOrStdout(),
				interactive: isFile && term.IsTerminal(int(stdin.Fd())),
			})
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "document every built-in rule")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "file format: yaml or toml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output path (default .jsfixer.yml or .jsfixer.toml)")

	return cmd
}

func runInit(flags *initFlags, tio initIO) error {
	logger := logging.NewInteractive()

	if flags.format != "yaml" && flags.format != "toml" {
		return &usageError{err: fmt.Errorf("invalid format %q: must be yaml or toml", flags.format)}
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".jsfixer." + map[string]string{"yaml": "yml", "toml": "toml"}[flags.format]
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil && !flags.force {
		if !tio.interactive {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		ok, err := confirm(tio, fmt.Sprintf("%s already exists. Overwrite?", outputPath))
		if err != nil {
			return err
		}
		if !ok {
			return errInitAborted
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	opts := config.TemplateOptions{Full: flags.full, Format: flags.format}
	if flags.full {
		set, err := rules.Default()
		if err != nil {
			return fmt.Errorf("load built-in rules: %w", err)
		}
		for _, r := range set.Rules {
			opts.Rules = append(opts.Rules, config.RuleInfo{
				ID:          r.ID,
				Name:        r.Name,
				Description: r.Description,
				Severity:    r.Severity,
				CanFix:      r.HasFix(),
			})
		}
	}

	content, err := config.GenerateTemplate(opts)
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'jsfixer rules' to see all available rules")

	return nil
}

// confirm asks a yes/no question; anything but y or yes is a no.
func confirm(tio initIO, question string) (bool, error) {
	fmt.Fprintf(tio.out, "%s [y/N] ", question)

	answer, err := bufio.NewReader(tio.in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
