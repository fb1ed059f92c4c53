package jsast_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jsfixer/pkg/jsast"
)

func parse(t *testing.T, src string) *jsast.Tree {
	t.Helper()

	tree, err := jsast.NewParser().Parse(context.Background(), []byte(src))
	require.NoError(t, err)
	t.Cleanup(tree.Close)
	return tree
}

func texts(tree *jsast.Tree, nodes []jsast.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Text(tree.Source))
	}
	return out
}

func TestMatcher_Match(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		pattern string
		want    []string
	}{
		{
			name:    "numeric literals",
			src:     "a = 1; b = 22;",
			pattern: "(number) @match",
			want:    []string{"1", "22"},
		},
		{
			name:    "var declarations only",
			src:     "var x = 1;\nlet y = 2;\nvar z;",
			pattern: "(variable_declaration) @match",
			want:    []string{"var x = 1;", "var z;"},
		},
		{
			name:    "first capture when no @match",
			src:     "foo(); bar();",
			pattern: "(call_expression function: (identifier) @fn)",
			want:    []string{"foo", "bar"},
		},
		{
			name: "predicates filter matches",
			src:  "console.log(1); console.warn(2); logger.log(3);",
			pattern: `((call_expression
			  function: (member_expression object: (identifier) @obj property: (property_identifier) @prop)) @match
			  (#eq? @obj "console") (#eq? @prop "log"))`,
			want: []string{"console.log(1)"},
		},
		{
			name:    "loose equality operator",
			src:     "a == b; c === d; e == f;",
			pattern: `(binary_expression operator: "==") @match`,
			want:    []string{"a == b", "e == f"},
		},
		{
			name:    "nested matches ordered outer first",
			src:     "f(g(1));",
			pattern: "(call_expression) @match",
			want:    []string{"f(g(1))", "g(1)"},
		},
		{
			name:    "anonymous keyword capture",
			src:     "var a; let b; var c;",
			pattern: `(variable_declaration "var" @match)`,
			want:    []string{"var", "var"},
		},
		{
			name:    "no matches",
			src:     "let a = 'x';",
			pattern: "(number) @match",
			want:    []string{},
		},
	}

	matcher := jsast.NewMatcher()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tree := parse(t, tt.src)
			nodes, err := matcher.Match(tree, tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, texts(tree, nodes))
		})
	}
}

func TestMatcher_Positions(t *testing.T) {
	t.Parallel()

	tree := parse(t, "let a;\n  var b = 2;\n")
	nodes, err := jsast.NewMatcher().Match(tree, "(variable_declaration) @match")
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	n := nodes[0]
	assert.Equal(t, 2, n.StartLine)
	assert.Equal(t, 2, n.StartColumn)
	assert.Equal(t, 9, n.StartOffset)
	assert.Equal(t, "variable_declaration", n.Type)
}

func TestMatcher_InvalidPatterns(t *testing.T) {
	t.Parallel()

	tree := parse(t, "a = 1;")
	matcher := jsast.NewMatcher()

	for _, pattern := range []string{"(no_such_node) @match", "((number)", "(number)"} {
		_, err := matcher.Match(tree, pattern)

		var patErr *jsast.PatternError
		require.ErrorAs(t, err, &patErr, pattern)
		assert.Equal(t, pattern, patErr.Pattern)
	}

	require.ErrorIs(t, matcher.Compile("(number)"), jsast.ErrNoCaptures)
	require.NoError(t, matcher.Compile("(number) @n"))
}

func TestMatcher_DeterministicAndConcurrent(t *testing.T) {
	t.Parallel()

	const src = "var a = 1, b = 2; if (a == b) { var c = a + b; }"
	matcher := jsast.NewMatcher()

	want, err := matcher.Match(parse(t, src), "(number) @match")
	require.NoError(t, err)
	require.Len(t, want, 2)

	trees := make([]*jsast.Tree, 8)
	for i := range trees {
		trees[i] = parse(t, src)
	}

	var wg sync.WaitGroup
	for _, tree := range trees {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := matcher.Match(tree, "(number) @match")
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()
}
