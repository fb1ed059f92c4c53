package jsast

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
)

// MatchCapture is the capture name that marks the reported node of a pattern.
// When a pattern does not define it, the first capture of each match is used.
const MatchCapture = "match"

// ErrNoCaptures is returned for patterns that capture nothing.
var ErrNoCaptures = errors.New("pattern defines no captures")

// PatternError describes a pattern that could not be compiled.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// compiledPattern is a cached query plus the index of its reported capture.
type compiledPattern struct {
	query      *sitter.Query
	matchIndex int // -1 when the query has no @match capture
}

// Matcher runs tree-sitter queries against parsed trees.
// Compiled queries are cached by pattern text; Matcher is safe for concurrent use.
type Matcher struct {
	mu       sync.Mutex
	compiled map[string]*compiledPattern
}

// NewMatcher creates a Matcher with an empty query cache.
func NewMatcher() *Matcher {
	return &Matcher{compiled: make(map[string]*compiledPattern)}
}

// Compile validates a pattern and caches the compiled query.
func (m *Matcher) Compile(pattern string) error {
	_, err := m.compile(pattern)
	return err
}

func (m *Matcher) compile(pattern string) (*compiledPattern, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cp, ok := m.compiled[pattern]; ok {
		return cp, nil
	}

	query, err := sitter.NewQuery([]byte(pattern), Language())
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Err: err}
	}

	captures := int(query.CaptureCount())
	if captures == 0 {
		query.Close()
		return nil, &PatternError{Pattern: pattern, Err: ErrNoCaptures}
	}

	cp := &compiledPattern{query: query, matchIndex: -1}
	for idx := range captures {
		if query.CaptureNameForId(uint32(idx)) == MatchCapture {
			cp.matchIndex = idx
			break
		}
	}

	m.compiled[pattern] = cp
	return cp, nil
}

// Match returns the nodes of tree matched by pattern.
//
// Results are deduplicated and ordered by ascending start offset, with
// enclosing nodes before the nodes they contain. Identical tree and pattern
// always produce the identical list.
func (m *Matcher) Match(tree *Tree, pattern string) ([]Node, error) {
	cp, err := m.compile(pattern)
	if err != nil {
		return nil, err
	}

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(cp.query, tree.root)

	type spanKey struct {
		start, end int
		kind       string
	}
	seen := make(map[spanKey]struct{})
	var nodes []Node

	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		match = cursor.FilterPredicates(match, tree.Source)
		if len(match.Captures) == 0 {
			continue
		}

		reported := pickCapture(match.Captures, cp.matchIndex)
		if reported == nil {
			continue
		}

		node, err := fromSitter(reported)
		if err != nil {
			return nil, err
		}

		key := spanKey{start: node.StartOffset, end: node.EndOffset, kind: node.Type}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		nodes = append(nodes, node)
	}

	slices.SortStableFunc(nodes, func(a, b Node) int {
		if c := cmp.Compare(a.StartOffset, b.StartOffset); c != 0 {
			return c
		}
		return cmp.Compare(b.EndOffset, a.EndOffset)
	})

	return nodes, nil
}

func pickCapture(captures []sitter.QueryCapture, matchIndex int) *sitter.Node {
	if matchIndex < 0 {
		return captures[0].Node
	}
	for _, c := range captures {
		if int(c.Index) == matchIndex {
			return c.Node
		}
	}
	return nil
}
