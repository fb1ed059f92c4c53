package session

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/jsfixer/internal/logging"
	"github.com/yaklabco/jsfixer/pkg/fix"
	"github.com/yaklabco/jsfixer/pkg/lint"
	"github.com/yaklabco/jsfixer/pkg/rules"
	"github.com/yaklabco/jsfixer/pkg/transform"
)

// ApplyFix runs the line fixer for diag. On success the buffer is replaced
// and re-analyzed. Otherwise nothing changes and ErrCouldNotApply is returned.
func (s *Session) ApplyFix(ctx context.Context, diag lint.Diagnostic) (*lint.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyFixLocked(ctx, diag)
}

func (s *Session) applyFixLocked(ctx context.Context, diag lint.Diagnostic) (*lint.Result, error) {
	fixed, ok := s.fixLocked(diag, s.text)
	if !ok {
		return nil, fmt.Errorf("%w: %s at line %d", ErrCouldNotApply, diag.RuleID, diag.Line)
	}

	s.setTextLocked(fixed)
	return s.analyzeLocked(ctx), nil
}

func (s *Session) fixLocked(diag lint.Diagnostic, text string) (string, bool) {
	if !s.fixers.Has(diag.RuleID) {
		s.logger.Warn("no fixer for rule", logging.FieldRule, diag.RuleID)
		return "", false
	}
	return s.fixers.Apply(diag.RuleID, text, diag.Line)
}

// FixAll analyzes the buffer, fixes every diagnostic of ruleID from the
// bottom line up, and re-analyzes. It returns the number of fixes applied.
func (s *Session) FixAll(ctx context.Context, ruleID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	targets := s.analyzeLocked(ctx).ForRule(ruleID)
	if len(targets) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrNothingToFix, ruleID)
	}

	slices.SortStableFunc(targets, func(a, b lint.Diagnostic) int {
		return cmp.Compare(b.Line, a.Line)
	})

	text := s.text
	applied := 0
	for _, diag := range targets {
		if fixed, ok := s.fixLocked(diag, text); ok {
			text = fixed
			applied++
		}
	}

	if applied == 0 {
		return 0, fmt.Errorf("%w: %s", ErrCouldNotApply, ruleID)
	}

	s.setTextLocked(text)
	s.analyzeLocked(ctx)
	s.logger.Debug("fixed rule", logging.FieldRule, ruleID, logging.FieldFixed, applied)
	return applied, nil
}

// RemoveLogs comments out every console.log call.
func (s *Session) RemoveLogs(ctx context.Context) (int, error) {
	return s.FixAll(ctx, fix.KindConsoleLog.ID())
}

// AutoFix replaces whole-word "var" with "let" on every line that contains
// "var " and neither "let " nor "const ". It returns the number of changed
// lines and a summary diagnostic. The buffer is left unanalyzed.
func (s *Session) AutoFix(_ context.Context) (int, lint.Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := strings.Split(s.text, "\n")
	changed := 0
	for i, line := range lines {
		if !strings.Contains(line, "var ") || strings.Contains(line, "let ") || strings.Contains(line, "const ") {
			continue
		}
		lines[i] = fix.ReplaceVar(line)
		changed++
	}

	if changed > 0 {
		s.setTextLocked(strings.Join(lines, "\n"))
	}
	return changed, autoFixSummary(changed)
}

// ApplyTransforms applies every transform of the active rule set in order,
// each to the previous output. Failing transforms are logged and skipped.
// ErrNoTransformApplied is returned when the buffer ends up unchanged.
func (s *Session) ApplyTransforms(ctx context.Context) ([]transform.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out, outcomes := s.transforms.ApplyAll(ctx, s.text, s.repo.Current().Transforms)
	for _, o := range outcomes {
		if o.Err != nil {
			s.logger.Warn("transform skipped", logging.FieldTransformName, o.Name, logging.FieldError, o.Err)
		}
	}

	if out == s.text {
		return outcomes, ErrNoTransformApplied
	}

	s.setTextLocked(out)
	s.analyzeLocked(ctx)
	return outcomes, nil
}

// ApplyTransform applies the transform with the given name.
func (s *Session) ApplyTransform(ctx context.Context, name string) (transform.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	specs := s.repo.Current().Transforms
	idx := slices.IndexFunc(specs, func(t rules.TransformSpec) bool { return t.Name == name })
	if idx < 0 {
		return transform.Outcome{Name: name}, fmt.Errorf("%w: %s", ErrUnknownTransform, name)
	}

	out, outcomes := s.transforms.ApplyAll(ctx, s.text, specs[idx:idx+1])
	outcome := outcomes[0]
	if outcome.Err != nil {
		return outcome, outcome.Err
	}
	if !outcome.Changed {
		return outcome, ErrNoTransformApplied
	}

	s.setTextLocked(out)
	s.analyzeLocked(ctx)
	return outcome, nil
}
