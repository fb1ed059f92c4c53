package runner

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/jsfixer/internal/logging"
	"github.com/yaklabco/jsfixer/pkg/cache"
	"github.com/yaklabco/jsfixer/pkg/fix"
	"github.com/yaklabco/jsfixer/pkg/fsutil"
	"github.com/yaklabco/jsfixer/pkg/lint"
	"github.com/yaklabco/jsfixer/pkg/rules"
	"github.com/yaklabco/jsfixer/pkg/session"
	"github.com/yaklabco/jsfixer/pkg/transform"
)

// Errors that classify per-file failures.
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrWriteFailure     = errors.New("write failure")
)

// Pipeline processes single files: analyze, optionally fix and transform,
// then write safely.
type Pipeline struct {
	Repo       *rules.Repository
	Engine     *lint.Engine
	Transforms *transform.Engine
	Fixers     *fix.Registry

	// Cache is optional; a nil cache disables result caching.
	Cache *cache.Cache

	Logger *log.Logger
}

// NewPipeline creates a pipeline over repo with the default engines.
func NewPipeline(repo *rules.Repository) *Pipeline {
	return &Pipeline{
		Repo:       repo,
		Engine:     lint.NewDefaultEngine(),
		Transforms: transform.NewDefaultEngine(),
		Fixers:     fix.DefaultRegistry,
		Logger:     logging.Default(),
	}
}

// ProcessFile runs the pipeline on the file at path.
//
// Steps: read and snapshot; analyze (from cache when nothing will be
// modified); fix and transform in a session; stop with a diff in dry-run
// mode; skip when the file changed on disk meanwhile; back up; write
// atomically.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, opts PipelineOptions) (*FileResult, error) {
	original, snap, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	result, err := p.ProcessContent(ctx, path, original, opts)
	if err != nil {
		return nil, err
	}
	if !result.Modified || opts.DryRun {
		return result, nil
	}

	changed, err := fsutil.Changed(ctx, snap, opts.StrictRaceDetection)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", err)
	}
	if changed {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return result, nil
	}

	created, err := fsutil.CreateBackup(ctx, path, opts.Backup)
	if err != nil {
		return nil, fmt.Errorf("create backup: %w", err)
	}
	result.BackupCreated = created

	if err := fsutil.WriteAtomic(ctx, path, result.ModifiedContent, snap.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	return result, nil
}

// ProcessContent runs the in-memory part of the pipeline. In dry-run mode
// the diff is attached; nothing is ever written.
func (p *Pipeline) ProcessContent(ctx context.Context, path string, original []byte, opts PipelineOptions) (*FileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("processing cancelled: %w", err)
	}

	result := &FileResult{Path: path}
	fingerprint := p.Repo.Current().Fingerprint()

	if !opts.modifies() {
		if entry, ok := p.Cache.Get(cache.KeyFor(original, fingerprint)); ok {
			result.Analysis = withPath(entry.Result(), path)
			result.Content = original
			result.Cached = true
			return result, nil
		}
	}

	sess := session.New(
		session.WithRepository(p.Repo),
		session.WithEngine(p.Engine),
		session.WithFixers(p.Fixers),
		session.WithTransformEngine(p.Transforms),
		session.WithLogger(p.logger()),
		session.WithText(string(original)),
	)

	if opts.Fix {
		if err := p.fixRules(ctx, sess, path, opts, result); err != nil {
			return nil, err
		}
	}
	if opts.Transform {
		outcomes, err := sess.ApplyTransforms(ctx)
		if err != nil && !errors.Is(err, session.ErrNoTransformApplied) {
			return nil, fmt.Errorf("transform %s: %w", path, err)
		}
		for _, o := range outcomes {
			if o.Changed {
				result.TransformsApplied = append(result.TransformsApplied, o.Name)
			}
		}
	}

	analysis := sess.Analyze(ctx)
	final := sess.Text()

	if err := p.Cache.Put(ctx, cache.KeyFor([]byte(final), fingerprint), cache.FromResult(analysis)); err != nil {
		p.logger().Debug("cache write failed", logging.FieldPath, path, logging.FieldError, err)
	}
	result.Analysis = withPath(analysis, path)
	result.Content = []byte(final)

	if final != string(original) {
		result.Modified = true
		result.ModifiedContent = []byte(final)
		if opts.DryRun {
			result.Diff = fix.GenerateDiff(path, string(original), final)
		}
	}

	return result, nil
}

// fixRules applies FixAll for every selected fixable rule in rule-set order.
func (p *Pipeline) fixRules(ctx context.Context, sess *session.Session, path string, opts PipelineOptions, result *FileResult) error {
	for _, rule := range sess.Rules().Rules {
		if !rule.HasFix() || !p.Fixers.Has(rule.ID) || !opts.fixes(rule.ID) {
			continue
		}

		n, err := sess.FixAll(ctx, rule.ID)
		switch {
		case err == nil:
			result.FixesApplied += n
			p.logger().Debug("applied fixes",
				logging.FieldPath, path, logging.FieldRule, rule.ID, logging.FieldFixed, n)
		case errors.Is(err, session.ErrNothingToFix), errors.Is(err, session.ErrCouldNotApply):
		default:
			return fmt.Errorf("fix %s: %w", rule.ID, err)
		}
	}
	return nil
}

func (p *Pipeline) logger() *log.Logger {
	if p.Logger == nil {
		return logging.Default()
	}
	return p.Logger
}

func withPath(r *lint.Result, path string) *lint.Result {
	for i := range r.Diagnostics {
		r.Diagnostics[i].FilePath = path
	}
	return r
}

func categorizeError(err error) error {
	switch {
	case errors.Is(err, fsutil.ErrNotFound), errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fsutil.ErrPermissionDenied), errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	default:
		return err
	}
}

// IsPipelineError reports whether err is one of the classified failures.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrWriteFailure)
}
