package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/yaklabco/jsfixer/pkg/config"
	"github.com/yaklabco/jsfixer/pkg/rules"
)

type rulesFlags struct {
	format         string
	rulesFile      string
	transformsFile string
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Pattern     string `json:"pattern,omitempty"`
	Fixable     bool   `json:"fixable"`
	Enabled     bool   `json:"enabled"`
}

type transformInfo struct {
	Name        string `json:"name"`
	Selector    string `json:"selector"`
	Replacement string `json:"replacement"`
}

type rulesOutput struct {
	Rules      []ruleInfo      `json:"rules"`
	Transforms []transformInfo `json:"transforms"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the active rules and transforms",
		Long: `List the rules with their IDs, names, severity after configured overrides,
whether they have a fix and whether they are enabled, followed by the AST
transforms.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := loadEnvironment(commandContext(cmd), cmd, &config.Config{
				RulesFile:      flags.rulesFile,
				TransformsFile: flags.transformsFile,
			})
			if err != nil {
				return err
			}

			out := describeRules(env.all, env.cfg)
			if flags.format == formatJSON {
				return writeRulesJSON(cmd.OutOrStdout(), out)
			}
			writeRulesTable(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().StringVar(&flags.rulesFile, "rules", "", "rule file (YAML); empty uses the built-in rules")
	cmd.Flags().StringVar(&flags.transformsFile, "transforms", "",
		"transform file (YAML); empty uses the built-in transforms")

	return cmd
}

func describeRules(set *rules.RuleSet, cfg *config.Config) rulesOutput {
	out := rulesOutput{
		Rules:      make([]ruleInfo, 0, set.Len()),
		Transforms: []transformInfo{},
	}
	for _, rule := range set.Rules {
		severity := rule.Severity
		if override, ok := cfg.SeverityOverride(rule.ID); ok {
			severity = override
		}
		out.Rules = append(out.Rules, ruleInfo{
			ID:          rule.ID,
			Name:        rule.Name,
			Description: rule.Description,
			Severity:    string(severity),
			Pattern:     rule.Pattern,
			Fixable:     rule.HasFix(),
			Enabled:     cfg.RuleEnabled(rule.ID),
		})
	}
	for _, t := range set.Transforms {
		out.Transforms = append(out.Transforms, transformInfo{
			Name:        t.Name,
			Selector:    t.Selector,
			Replacement: t.Replacement,
		})
	}
	return out
}

func writeRulesJSON(w io.Writer, out rulesOutput) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}

func writeRulesTable(w io.Writer, out rulesOutput) {
	if len(out.Rules) == 0 {
		fmt.Fprintln(w, "No rules loaded.")
	} else {
		table := plainTable(w, []string{"ID", "Name", "Severity", "Fix", "Enabled", "Description"})
		for _, r := range out.Rules {
			table.Append([]string{r.ID, r.Name, r.Severity, yesNo(r.Fixable), yesNo(r.Enabled), r.Description})
		}
		table.Render()
	}

	if len(out.Transforms) == 0 {
		return
	}
	fmt.Fprintln(w)
	table := plainTable(w, []string{"Transform", "Replacement"})
	for _, t := range out.Transforms {
		table.Append([]string{t.Name, t.Replacement})
	}
	table.Render()
}

func plainTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)
	return table
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "-"
}
