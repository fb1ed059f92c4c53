// Package jsast parses JavaScript source with tree-sitter and exposes the
// minimal node/position model the lint and transform engines operate on.
package jsast

import (
	"fmt"

	"fortio.org/safecast"
	sitter "github.com/smacker/go-tree-sitter"
)

// Node is a matched syntax node reduced to its position metadata.
type Node struct {
	// Type is the tree-sitter node type (e.g. "variable_declaration").
	Type string

	// StartOffset is the byte index where the node begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the node ends (exclusive).
	EndOffset int

	// StartLine is the 1-based line of the node start.
	StartLine int

	// StartColumn is the 0-based byte column of the node start.
	StartColumn int
}

// Text returns the source text spanned by the node.
func (n Node) Text(src []byte) string {
	if n.StartOffset < 0 || n.EndOffset > len(src) || n.StartOffset > n.EndOffset {
		return ""
	}
	return string(src[n.StartOffset:n.EndOffset])
}

// Overlaps reports whether the spans of n and other share at least one byte.
func (n Node) Overlaps(other Node) bool {
	return n.StartOffset < other.EndOffset && other.StartOffset < n.EndOffset
}

func (n Node) String() string {
	return fmt.Sprintf("%s[%d:%d]@%d:%d", n.Type, n.StartOffset, n.EndOffset, n.StartLine, n.StartColumn)
}

// fromSitter converts a tree-sitter node into a Node.
func fromSitter(sn *sitter.Node) (Node, error) {
	start, err := safecast.Conv[int](sn.StartByte())
	if err != nil {
		return Node{}, fmt.Errorf("start offset: %w", err)
	}
	end, err := safecast.Conv[int](sn.EndByte())
	if err != nil {
		return Node{}, fmt.Errorf("end offset: %w", err)
	}
	point := sn.StartPoint()
	row, err := safecast.Conv[int](point.Row)
	if err != nil {
		return Node{}, fmt.Errorf("start row: %w", err)
	}
	col, err := safecast.Conv[int](point.Column)
	if err != nil {
		return Node{}, fmt.Errorf("start column: %w", err)
	}

	return Node{
		Type:        sn.Type(),
		StartOffset: start,
		EndOffset:   end,
		StartLine:   row + 1,
		StartColumn: col,
	}, nil
}
