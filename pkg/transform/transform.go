// Package transform applies pattern-based rewrites to JavaScript source.
//
// Every node matched by a selector is replaced by a template in which "$&"
// stands for the node's original text. All sites of one transform are
// spliced from the highest offset to the lowest, so no splice moves the
// coordinates of a pending one and no re-parse is needed between edits.
package transform

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/jsfixer/pkg/fix"
	"github.com/yaklabco/jsfixer/pkg/jsast"
	"github.com/yaklabco/jsfixer/pkg/rules"
)

// Placeholder is replaced by the matched node's original text.
const Placeholder = "$&"

// Parser parses JavaScript source into a tree.
type Parser interface {
	Parse(ctx context.Context, src []byte) (*jsast.Tree, error)
}

// Matcher runs a selector against a tree.
type Matcher interface {
	Match(tree *jsast.Tree, pattern string) ([]jsast.Node, error)
}

// OverlapError reports two matched nodes whose spans intersect. Such a
// transform is rejected as a whole and the source is left unchanged.
type OverlapError struct {
	Transform string
	First     jsast.Node
	Second    jsast.Node
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("transform %q: overlapping matches [%d:%d] at %d:%d and [%d:%d] at %d:%d",
		e.Transform,
		e.First.StartOffset, e.First.EndOffset, e.First.StartLine, e.First.StartColumn,
		e.Second.StartOffset, e.Second.EndOffset, e.Second.StartLine, e.Second.StartColumn)
}

// Outcome describes one transform applied by ApplyAll.
type Outcome struct {
	// Name is the transform name.
	Name string

	// Sites is the number of replaced nodes.
	Sites int

	// Changed is true if the transform modified the text.
	Changed bool

	// Err is set when the transform could not be applied; the text was
	// passed on unchanged.
	Err error
}

// Engine applies transforms.
type Engine struct {
	Parser  Parser
	Matcher Matcher
}

// NewEngine creates a new Engine with the given parser and matcher.
func NewEngine(parser Parser, matcher Matcher) *Engine {
	return &Engine{Parser: parser, Matcher: matcher}
}

// NewDefaultEngine creates an Engine backed by the tree-sitter JavaScript parser.
func NewDefaultEngine() *Engine {
	return NewEngine(jsast.NewParser(), jsast.NewMatcher())
}

// Apply runs spec against src. It returns the new text and true when at
// least one node matched, or src and false when nothing matched.
// Unparseable source, invalid selectors and overlapping matches are errors.
func (e *Engine) Apply(ctx context.Context, src string, spec rules.TransformSpec) (string, bool, error) {
	out, sites, err := e.apply(ctx, src, spec)
	if err != nil {
		return src, false, err
	}
	return out, sites > 0 && out != src, nil
}

func (e *Engine) apply(ctx context.Context, src string, spec rules.TransformSpec) (string, int, error) {
	tree, err := e.Parser.Parse(ctx, []byte(src))
	if err != nil {
		return "", 0, fmt.Errorf("transform %q: %w", spec.Name, err)
	}
	defer tree.Close()

	nodes, err := e.Matcher.Match(tree, spec.Selector)
	if err != nil {
		return "", 0, fmt.Errorf("transform %q: %w", spec.Name, err)
	}
	if len(nodes) == 0 {
		return src, 0, nil
	}

	if err := checkOverlaps(spec.Name, nodes); err != nil {
		return "", 0, err
	}

	var edits fix.EditSet
	for _, node := range nodes {
		edits.Replace(node.StartOffset, node.EndOffset, Resolve(spec.Replacement, node.Text(tree.Source)))
	}

	out, err := edits.Apply(src)
	if err != nil {
		return "", 0, fmt.Errorf("transform %q: %w", spec.Name, err)
	}
	return out, len(nodes), nil
}

// ApplyAll applies specs in order, each to the output of the previous one.
// A spec that matches nothing or fails leaves the text as it was.
func (e *Engine) ApplyAll(ctx context.Context, src string, specs []rules.TransformSpec) (string, []Outcome) {
	outcomes := make([]Outcome, 0, len(specs))
	text := src

	for _, spec := range specs {
		if err := ctx.Err(); err != nil {
			outcomes = append(outcomes, Outcome{Name: spec.Name, Err: err})
			continue
		}

		out, sites, err := e.apply(ctx, text, spec)
		if err != nil {
			outcomes = append(outcomes, Outcome{Name: spec.Name, Err: err})
			continue
		}

		changed := out != text
		outcomes = append(outcomes, Outcome{Name: spec.Name, Sites: sites, Changed: changed})
		text = out
	}

	return text, outcomes
}

// Resolve substitutes every placeholder in template with original.
func Resolve(template, original string) string {
	if !strings.Contains(template, Placeholder) {
		return template
	}
	return strings.ReplaceAll(template, Placeholder, original)
}

// checkOverlaps rejects node lists in which any two spans intersect,
// including a node nested inside another.
func checkOverlaps(name string, nodes []jsast.Node) error {
	sorted := slices.Clone(nodes)
	slices.SortFunc(sorted, func(a, b jsast.Node) int {
		if a.StartOffset != b.StartOffset {
			return a.StartOffset - b.StartOffset
		}
		return b.EndOffset - a.EndOffset
	})

	for i := 1; i < len(sorted); i++ {
		prev, curr := sorted[i-1], sorted[i]
		if curr.StartOffset < prev.EndOffset || curr.StartOffset == prev.StartOffset {
			return &OverlapError{Transform: name, First: prev, Second: curr}
		}
	}
	return nil
}
