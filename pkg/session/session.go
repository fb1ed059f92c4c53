// Package session orchestrates analysis, fixes and transforms over one
// editable source buffer.
//
// A Session is the in-memory stand-in for an editor: it owns the current
// text, the cursor and the latest diagnostics. Operations are serialized;
// every analysis replaces the whole diagnostic list before a fix can read it.
package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/jsfixer/internal/logging"
	"github.com/yaklabco/jsfixer/pkg/config"
	"github.com/yaklabco/jsfixer/pkg/fix"
	"github.com/yaklabco/jsfixer/pkg/lint"
	"github.com/yaklabco/jsfixer/pkg/rules"
	"github.com/yaklabco/jsfixer/pkg/transform"
)

// Errors returned by session operations. None of them leave the session
// in an unusable state.
var (
	// ErrCouldNotApply covers both a rule without a fixer and a fixer
	// that found nothing to change; callers cannot tell them apart.
	ErrCouldNotApply       = errors.New("could not apply fix")
	ErrNothingToFix        = errors.New("no diagnostics to fix for rule")
	ErrNoTransformApplied  = errors.New("no transform applied")
	ErrUnknownTransform    = errors.New("unknown transform")
	ErrNoDiagnostics       = errors.New("no diagnostics")
	ErrNoDiagnosticsOnLine = errors.New("no diagnostics on line")
	ErrNoFixableOnLine     = errors.New("no fixable diagnostic on line")
	ErrLineOutOfRange      = errors.New("line out of range")
)

// State is the analysis state of the buffer.
type State int

const (
	// StateIdle means the buffer has not been analyzed since it last changed.
	StateIdle State = iota
	StateAnalyzing
	StateClean
	StateHasDiagnostics
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAnalyzing:
		return "analyzing"
	case StateClean:
		return "clean"
	case StateHasDiagnostics:
		return "has-diagnostics"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Cursor is a buffer position. Line is 1-based, Column 0-based.
type Cursor struct {
	Line   int
	Column int
}

// Session owns one buffer and the collaborators that act on it.
type Session struct {
	mu sync.Mutex

	repo       *rules.Repository
	loader     rules.Loader
	engine     *lint.Engine
	fixers     *fix.Registry
	transforms *transform.Engine
	logger     *log.Logger

	text   string
	result *lint.Result
	state  State
	cursor Cursor
}

// Option configures a Session.
type Option func(*Session)

// WithRepository sets the rule repository.
func WithRepository(repo *rules.Repository) Option {
	return func(s *Session) { s.repo = repo }
}

// WithLoader sets the loader used by Reload.
func WithLoader(loader rules.Loader) Option {
	return func(s *Session) { s.loader = loader }
}

// WithEngine sets the diagnostic engine.
func WithEngine(engine *lint.Engine) Option {
	return func(s *Session) { s.engine = engine }
}

// WithFixers sets the line fixer registry.
func WithFixers(reg *fix.Registry) Option {
	return func(s *Session) { s.fixers = reg }
}

// WithTransformEngine sets the transform engine.
func WithTransformEngine(engine *transform.Engine) Option {
	return func(s *Session) { s.transforms = engine }
}

// WithLogger sets the logger for warnings.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithText sets the initial buffer.
func WithText(text string) Option {
	return func(s *Session) { s.text = text }
}

// New creates a Session. Unset collaborators default to the built-in rules,
// the tree-sitter engines and the default fixer registry.
func New(opts ...Option) *Session {
	s := &Session{cursor: Cursor{Line: 1}}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logging.Default()
	}
	if s.loader == nil {
		s.loader = rules.FileLoader("", "")
	}
	if s.repo == nil {
		set, err := rules.Default()
		if err != nil {
			s.logger.Error("built-in rules unavailable", logging.FieldError, err)
		}
		s.repo = rules.NewRepository(set)
	}
	if s.engine == nil {
		s.engine = lint.NewDefaultEngine()
	}
	if s.fixers == nil {
		s.fixers = fix.DefaultRegistry
	}
	if s.transforms == nil {
		s.transforms = transform.NewDefaultEngine()
	}

	return s
}

// Text returns the current buffer.
func (s *Session) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// SetText replaces the buffer. Existing diagnostics become stale and are
// dropped until the next analysis.
func (s *Session) SetText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setTextLocked(text)
}

func (s *Session) setTextLocked(text string) {
	s.text = text
	s.result = nil
	s.state = StateIdle
}

// State returns the current analysis state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Rules returns the active rule set.
func (s *Session) Rules() *rules.RuleSet {
	return s.repo.Current()
}

// Diagnostics returns a copy of the latest diagnostics.
func (s *Session) Diagnostics() []lint.Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return nil
	}
	return slices.Clone(s.result.Diagnostics)
}

// Analyze runs the diagnostic engine on the buffer and replaces the
// diagnostic list with the result.
func (s *Session) Analyze(ctx context.Context) *lint.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.analyzeLocked(ctx)
}

func (s *Session) analyzeLocked(ctx context.Context) *lint.Result {
	s.state = StateAnalyzing
	s.result = nil

	result := s.engine.AnalyzeSource(ctx, []byte(s.text), s.repo.Current().Rules)
	for id, err := range result.RuleErrors {
		s.logger.Warn("rule failed", logging.FieldRule, id, logging.FieldError, err)
	}

	s.result = result
	if result.HasIssues() {
		s.state = StateHasDiagnostics
	} else {
		s.state = StateClean
	}
	return result
}

// Reload replaces the rule set using the session loader. On failure the
// session continues with an empty rule set.
func (s *Session) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx = logging.WithLogger(ctx, s.logger)
	if err := s.repo.Reload(ctx, s.loader); err != nil {
		return err
	}
	return nil
}

// autoFixSummary reports the outcome of AutoFix as a low-severity diagnostic.
func autoFixSummary(changed int) lint.Diagnostic {
	if changed == 0 {
		return lint.Diagnostic{
			RuleName: "Sin cambios",
			Message:  `No se encontraron "var" para corregir.`,
			Severity: config.SeverityLow,
			Line:     1,
		}
	}
	return lint.Diagnostic{
		RuleName: "Corrección automática",
		Message:  fmt.Sprintf("Se cambiaron %d 'var' por 'let'.", changed),
		Severity: config.SeverityLow,
		Line:     1,
	}
}
