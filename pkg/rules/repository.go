package rules

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/yaklabco/jsfixer/internal/logging"
)

// Loader produces a complete rule set, typically from files on disk.
type Loader func(ctx context.Context) (*RuleSet, error)

// Repository publishes the active RuleSet. Readers always observe a whole
// set; replacement swaps the reference in one step and never edits a
// published set in place.
type Repository struct {
	current atomic.Pointer[RuleSet]
}

// NewRepository creates a repository holding set (or an empty set if nil).
func NewRepository(set *RuleSet) *Repository {
	repo := &Repository{}
	repo.Swap(set)
	return repo
}

// Current returns the active rule set. The result must be treated as read-only.
func (r *Repository) Current() *RuleSet {
	if set := r.current.Load(); set != nil {
		return set
	}
	return Empty()
}

// Swap installs set as the active rule set and returns the previous one.
func (r *Repository) Swap(set *RuleSet) *RuleSet {
	if set == nil {
		set = Empty()
	}
	return r.current.Swap(set)
}

// Reload replaces the active set with the loader's result. If loading fails,
// an empty set is installed so analysis produces no diagnostics until the
// next successful reload; the load error is logged and returned.
func (r *Repository) Reload(ctx context.Context, load Loader) error {
	logger := logging.FromContext(ctx)

	set, err := load(ctx)
	if err != nil {
		r.Swap(Empty())
		logger.Error("rule load failed, continuing with no rules", logging.FieldError, err)
		return fmt.Errorf("reload rules: %w", err)
	}

	r.Swap(set)
	logger.Debug("rules loaded", logging.FieldRules, set.Len())
	return nil
}
