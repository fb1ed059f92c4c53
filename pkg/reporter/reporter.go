// Package reporter writes run results in the supported output formats.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/jsfixer/pkg/analysis"
	"github.com/yaklabco/jsfixer/pkg/runner"
)

var _ Reporter = (*reporterFacade)(nil)

// Reporter formats and writes run results.
type Reporter interface {
	// Report writes result and returns the number of items reported
	// (diagnostics, or changed files for the diff format).
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// Renderer writes an already aggregated report.
type Renderer interface {
	Render(ctx context.Context, report *analysis.Report) error
}

// reporterFacade adapts a Renderer over analysis.Report to Reporter.
type reporterFacade struct {
	renderer     Renderer
	analysisOpts analysis.Options
}

func (f *reporterFacade) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, f.analysisOpts)
	if err := f.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return report.Totals.Issues, nil
}

func newRendererFacade(renderer Renderer, opts Options) *reporterFacade {
	aopts := analysis.DefaultOptions()
	aopts.RuleFormat = opts.RuleFormat
	aopts.WorkingDir = opts.WorkingDir
	return &reporterFacade{renderer: renderer, analysisOpts: aopts}
}

// New creates the Reporter for opts.Format.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	format := opts.Format
	if format == "" {
		format = FormatText
	}

	build, ok := lookup(format)
	if !ok {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	return build(opts), nil
}
