package reporter

import (
	"fmt"
	"strings"

	"github.com/yaklabco/jsfixer/pkg/config"
)

// Format names an output format. It is the configured output format.
type Format = config.OutputFormat

// Output formats.
const (
	FormatText    = config.FormatText
	FormatTable   = config.FormatTable
	FormatJSON    = config.FormatJSON
	FormatSARIF   = config.FormatSARIF
	FormatDiff    = config.FormatDiff
	FormatSummary = config.FormatSummary
)

// constructors lists the formats in the order they are documented.
//
//nolint:gochecknoglobals // fixed registry
var constructors = []struct {
	format Format
	build  func(Options) Reporter
}{
	{FormatText, func(o Options) Reporter { return NewTextReporter(o) }},
	{FormatTable, func(o Options) Reporter { return NewTableReporter(o) }},
	{FormatJSON, func(o Options) Reporter { return NewJSONReporter(o) }},
	{FormatSARIF, func(o Options) Reporter { return NewSARIFReporter(o) }},
	{FormatDiff, func(o Options) Reporter { return NewDiffReporter(o) }},
	{FormatSummary, func(o Options) Reporter { return newRendererFacade(NewSummaryRenderer(o), o) }},
}

// Formats returns the names of every supported format.
func Formats() []string {
	names := make([]string, len(constructors))
	for i, c := range constructors {
		names[i] = string(c.format)
	}
	return names
}

// ParseFormat resolves a format name. The empty name means text.
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return FormatText, nil
	}
	for _, c := range constructors {
		if string(c.format) == name {
			return c.format, nil
		}
	}
	return "", fmt.Errorf("unknown format %q; valid formats: %s", name, strings.Join(Formats(), ", "))
}

func lookup(format Format) (func(Options) Reporter, bool) {
	for _, c := range constructors {
		if c.format == format {
			return c.build, true
		}
	}
	return nil, false
}
