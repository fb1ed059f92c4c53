package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/jsfixer/internal/logging"
)

// Runner discovers files and feeds them through a Pipeline.
type Runner struct {
	Pipeline *Pipeline
}

// New creates a Runner.
func New(pipeline *Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run processes every file selected by opts with at most opts.Jobs files in
// flight. Per-file failures are recorded in the outcome; only discovery
// errors and cancellation fail the run. Outcomes are ordered by path.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	r.Pipeline.logger().Debug("processing files", logging.FieldFiles, len(files), logging.FieldJobs, jobs)

	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for i, path := range files {
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			fctx := logging.WithFields(logging.WithLogger(gctx, r.Pipeline.logger()), logging.FieldPath, path)
			outcome := FileOutcome{Path: path}
			outcome.Result, outcome.Error = r.Pipeline.ProcessFile(fctx, path, opts.Pipeline)
			if outcome.Error != nil {
				logging.FromContext(fctx).Debug("file failed", logging.FieldError, outcome.Error)
			}

			outcomes[i] = outcome
			done[i] = true
			return nil
		})
	}

	waitErr := group.Wait()

	for i, outcome := range outcomes {
		if done[i] {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	if waitErr != nil {
		return result, fmt.Errorf("run: %w", waitErr)
	}
	return result, nil
}
