// Package rules holds rule and transform definitions and the repository that
// publishes the active set to analysis calls.
package rules

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"slices"

	"github.com/yaklabco/jsfixer/pkg/config"
)

// Rule is a named check: a tree query plus display metadata and an optional
// fix association. Rules are immutable once loaded.
type Rule struct {
	// ID is unique within a rule set and is the fixer lookup key.
	ID string

	// Name is a short human-readable name.
	Name string

	// Description is the diagnostic message.
	Description string

	// Severity is display-only.
	Severity config.Severity

	// Pattern is a tree-sitter query. Empty marks a non-syntactic rule,
	// which is never matched.
	Pattern string

	// Transform names the associated fix. Empty means the rule has none.
	Transform string
}

// HasFix reports whether the rule carries an associated fix.
func (r Rule) HasFix() bool {
	return r.Transform != ""
}

// IsSyntactic reports whether the rule has a pattern to match.
func (r Rule) IsSyntactic() bool {
	return r.Pattern != ""
}

// TransformSpec locates nodes with Selector and replaces each with
// Replacement, where every "$&" stands for the node's original text.
type TransformSpec struct {
	Name        string
	Selector    string
	Replacement string
}

// RuleSet is an immutable snapshot of the active configuration.
type RuleSet struct {
	Rules      []Rule
	Transforms []TransformSpec
}

// Empty returns a rule set with no rules and no transforms.
func Empty() *RuleSet {
	return &RuleSet{}
}

// Lookup returns the rule with the given ID.
func (s *RuleSet) Lookup(id string) (Rule, bool) {
	if s == nil {
		return Rule{}, false
	}
	idx := slices.IndexFunc(s.Rules, func(r Rule) bool { return r.ID == id })
	if idx < 0 {
		return Rule{}, false
	}
	return s.Rules[idx], true
}

// Len returns the number of rules.
func (s *RuleSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Rules)
}

// WithOverrides returns a new set with disabled rules removed and severity
// overrides from cfg applied. The receiver is not modified.
func (s *RuleSet) WithOverrides(cfg *config.Config) *RuleSet {
	if s == nil {
		return Empty()
	}

	out := &RuleSet{
		Rules:      make([]Rule, 0, len(s.Rules)),
		Transforms: slices.Clone(s.Transforms),
	}
	for _, r := range s.Rules {
		if !cfg.RuleEnabled(r.ID) {
			continue
		}
		if sev, ok := cfg.SeverityOverride(r.ID); ok {
			r.Severity = sev
		}
		out.Rules = append(out.Rules, r)
	}
	return out
}

// Fingerprint identifies the rule set contents. Two sets with the same
// rules and transforms in the same order share a fingerprint.
func (s *RuleSet) Fingerprint() string {
	h := sha256.New()
	if s != nil {
		for _, r := range s.Rules {
			writeFields(h, "rule", r.ID, r.Name, r.Description, string(r.Severity), r.Pattern, r.Transform)
		}
		for _, t := range s.Transforms {
			writeFields(h, "transform", t.Name, t.Selector, t.Replacement)
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

func writeFields(w io.Writer, fields ...string) {
	for _, f := range fields {
		_, _ = io.WriteString(w, f)
		_, _ = w.Write([]byte{0})
	}
}
