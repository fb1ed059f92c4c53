package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/yaklabco/jsfixer/pkg/config"
	"github.com/yaklabco/jsfixer/pkg/lint"
	"github.com/yaklabco/jsfixer/pkg/runner"
)

const (
	sarifVersion   = "2.1.0"
	sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	toolName       = "jsfixer"
	toolURI        = "https://github.com/yaklabco/jsfixer"
)

// Rule IDs reported for diagnostics that no rule produced.
const (
	ParseErrorRuleID  = "parse-error"
	EmptySourceRuleID = "empty-source"
)

// SARIFOutput is the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun is a single analysis run.
type SARIFRun struct {
	Tool    SARIFTool     `json:"tool"`
	Results []SARIFResult `json:"results"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver holds tool metadata and the rules that produced results.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes one rule.
type SARIFRule struct {
	ID               string          `json:"id"`
	Name             string          `json:"name,omitempty"`
	ShortDescription SARIFMessage    `json:"shortDescription"`
	DefaultConfig    SARIFRuleConfig `json:"defaultConfiguration"`
	Properties       map[string]any  `json:"properties,omitempty"`
}

// SARIFRuleConfig carries the default level of a rule.
type SARIFRuleConfig struct {
	Level string `json:"level"`
}

// SARIFResult is a single diagnostic.
type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations"`
}

// SARIFMessage is a plain-text message.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation is a code location.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFPhysicalLocation is a file and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           SARIFRegion           `json:"region"`
}

// SARIFArtifactLocation is the file URI.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion is the 1-based start of a diagnostic.
type SARIFRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
}

// SARIFReporter writes SARIF 2.1.0.
type SARIFReporter struct {
	opts Options
	out  io.Writer
}

// NewSARIFReporter creates a SARIF reporter.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{opts: opts, out: opts.Writer}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.out)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}
	return len(output.Runs[0].Results), nil
}

func (r *SARIFReporter) buildOutput(result *runner.Result) *SARIFOutput {
	run := SARIFRun{
		Tool: SARIFTool{Driver: SARIFDriver{
			Name:           toolName,
			Version:        r.opts.ToolVersion,
			InformationURI: toolURI,
			Rules:          []SARIFRule{},
		}},
		Results: []SARIFResult{},
	}
	output := &SARIFOutput{Schema: sarifSchemaURI, Version: sarifVersion}

	if result != nil {
		ruleIndex := make(map[string]int)
		for _, outcome := range result.Files {
			uri := r.opts.displayPath(outcome.Path)
			for _, d := range outcome.Result.Diagnostics() {
				id := sarifRuleID(d)
				idx, seen := ruleIndex[id]
				if !seen {
					idx = len(run.Tool.Driver.Rules)
					ruleIndex[id] = idx
					run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, SARIFRule{
						ID:               id,
						Name:             d.RuleName,
						ShortDescription: SARIFMessage{Text: d.Message},
						DefaultConfig:    SARIFRuleConfig{Level: SARIFLevel(d.Severity)},
						Properties:       map[string]any{"fixable": d.Fixable},
					})
				}

				run.Results = append(run.Results, SARIFResult{
					RuleID:    id,
					RuleIndex: idx,
					Level:     SARIFLevel(d.Severity),
					Message:   SARIFMessage{Text: d.Message},
					Locations: []SARIFLocation{{PhysicalLocation: SARIFPhysicalLocation{
						ArtifactLocation: SARIFArtifactLocation{URI: uri},
						Region:           SARIFRegion{StartLine: max(d.Line, 1), StartColumn: d.Column + 1},
					}}},
				})
			}
		}
	}

	output.Runs = []SARIFRun{run}
	return output
}

func sarifRuleID(d lint.Diagnostic) string {
	switch {
	case d.RuleID != "":
		return d.RuleID
	case d.RuleName == lint.ParseRuleName:
		return ParseErrorRuleID
	default:
		return EmptySourceRuleID
	}
}

// SARIFLevel maps a severity onto a SARIF result level.
func SARIFLevel(severity config.Severity) string {
	switch severity {
	case config.SeverityHigh:
		return "error"
	case config.SeverityLow:
		return "note"
	default:
		return "warning"
	}
}
