package fix

import (
	"slices"
	"sync"
)

// Registry maps rule IDs to line fixers.
type Registry struct {
	mu     sync.RWMutex
	fixers map[string]Fixer
}

// NewRegistry creates an empty fixer registry.
func NewRegistry() *Registry {
	return &Registry{fixers: make(map[string]Fixer)}
}

// NewDefaultRegistry creates a registry holding every built-in fixer.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, k := range Kinds() {
		r.Register(k.ID(), k.Fixer())
	}
	return r
}

// DefaultRegistry is the global registry of built-in fixers.
//
//nolint:gochecknoglobals // Global registry is intentional for convenience
var DefaultRegistry = NewDefaultRegistry()

// Register adds a fixer for ruleID, replacing any existing one.
func (r *Registry) Register(ruleID string, f Fixer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fixers[ruleID] = f
}

// Get returns the fixer registered for ruleID.
func (r *Registry) Get(ruleID string) (Fixer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.fixers[ruleID]
	return f, ok
}

// Has reports whether a fixer is registered for ruleID.
func (r *Registry) Has(ruleID string) bool {
	_, ok := r.Get(ruleID)
	return ok
}

// IDs returns the registered rule IDs, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.fixers))
	for id := range r.fixers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Apply runs the fixer for ruleID on the given line. An unknown rule and a
// fixer that changes nothing both report false.
func (r *Registry) Apply(ruleID string, text string, line int) (string, bool) {
	f, ok := r.Get(ruleID)
	if !ok || f == nil {
		return "", false
	}
	return f(text, line)
}
