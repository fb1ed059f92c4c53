package lint

import (
	"context"

	"github.com/yaklabco/jsfixer/pkg/jsast"
)

// Parser parses JavaScript source into a tree.
//
// The lint package defines this interface in the consumer package; jsast
// provides the concrete implementation.
//
// Implementations must never return a partial tree: malformed input yields
// a nil tree and an error whose message is shown to the user.
type Parser interface {
	Parse(ctx context.Context, src []byte) (*jsast.Tree, error)
}

// Matcher runs a pattern against a tree.
//
// Results must be deterministic for identical tree and pattern.
type Matcher interface {
	Match(tree *jsast.Tree, pattern string) ([]jsast.Node, error)
}
