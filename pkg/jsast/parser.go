package jsast

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

// SyntaxError reports malformed JavaScript input.
// Line is 1-based, Column is 0-based.
type SyntaxError struct {
	Line    int
	Column  int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s (%d:%d)", e.Message, e.Line, e.Column)
}

// Tree is a fully parsed, error-free syntax tree together with its source.
type Tree struct {
	// Source is the exact input that was parsed. It must not be mutated.
	Source []byte

	tree *sitter.Tree
	root *sitter.Node
}

// Root returns the root node of the tree.
func (t *Tree) Root() Node {
	node, err := fromSitter(t.root)
	if err != nil {
		return Node{Type: t.root.Type(), EndOffset: len(t.Source), StartLine: 1}
	}
	return node
}

// Close releases the underlying tree-sitter tree.
func (t *Tree) Close() {
	if t != nil && t.tree != nil {
		t.tree.Close()
	}
}

// Parser parses JavaScript source text.
//
// A new tree-sitter parser is created for every call, so a single Parser
// is safe for concurrent use.
type Parser struct{}

// NewParser creates a JavaScript parser.
func NewParser() *Parser {
	return &Parser{}
}

// Language returns the tree-sitter JavaScript grammar.
func Language() *sitter.Language {
	return javascript.GetLanguage()
}

// Parse converts source into a Tree. Input containing any syntax error
// yields a *SyntaxError and no tree; partial trees are never returned.
func (p *Parser) Parse(ctx context.Context, src []byte) (*Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(Language())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse javascript: %w", err)
	}

	root := tree.RootNode()
	if root.HasError() {
		synErr := syntaxErrorAt(root, src)
		tree.Close()
		return nil, synErr
	}

	return &Tree{Source: src, tree: tree, root: root}, nil
}

// syntaxErrorAt builds a SyntaxError for the first ERROR or MISSING node
// in document order.
func syntaxErrorAt(root *sitter.Node, src []byte) *SyntaxError {
	bad := firstErrorNode(root)
	if bad == nil {
		bad = root
	}

	node, err := fromSitter(bad)
	if err != nil {
		return &SyntaxError{Line: 1, Column: 0, Message: "Unexpected token"}
	}

	if bad.IsMissing() {
		return &SyntaxError{
			Line:    node.StartLine,
			Column:  node.StartColumn,
			Message: fmt.Sprintf("Missing %q", bad.Type()),
		}
	}

	msg := "Unexpected token"
	if tok := firstToken(node.Text(src)); tok != "" {
		msg = fmt.Sprintf("Unexpected token %q", tok)
	}
	return &SyntaxError{Line: node.StartLine, Column: node.StartColumn, Message: msg}
}

func firstErrorNode(n *sitter.Node) *sitter.Node {
	if n == nil {
		return nil
	}
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	if !n.HasError() {
		return nil
	}
	count := int(n.ChildCount())
	for i := range count {
		if found := firstErrorNode(n.Child(i)); found != nil {
			return found
		}
	}
	return nil
}

// firstToken returns the leading run of non-space bytes, capped for display.
func firstToken(text string) string {
	const maxTokenLen = 20
	end := 0
	for end < len(text) && end < maxTokenLen {
		switch text[end] {
		case ' ', '\t', '\n', '\r':
			return text[:end]
		}
		end++
	}
	return text[:end]
}
