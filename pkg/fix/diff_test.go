package fix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jsfixer/pkg/fix"
)

func TestGenerateDiff(t *testing.T) {
	t.Parallel()

	t.Run("identical content", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, fix.GenerateDiff("a.js", "var x;\n", "var x;\n"))
		assert.Nil(t, fix.GenerateDiff("a.js", "", ""))
	})

	t.Run("single line change", func(t *testing.T) {
		t.Parallel()

		diff := fix.GenerateDiff("src/a.js", "var x = 1;\nvar y = 2;\n", "let x = 1;\nvar y = 2;\n")
		require.NotNil(t, diff)
		require.True(t, diff.HasChanges())
		require.Len(t, diff.Hunks, 1)
		assert.Equal(t, 1, diff.Additions)
		assert.Equal(t, 1, diff.Deletions)

		want := "--- a/src/a.js\n" +
			"+++ b/src/a.js\n" +
			"@@ -1,2 +1,2 @@\n" +
			"-var x = 1;\n" +
			"+let x = 1;\n" +
			" var y = 2;\n"
		assert.Equal(t, want, diff.String())
		assert.Equal(t, "diff --git a/src/a.js b/src/a.js\n"+want, diff.FullString())
	})

	t.Run("distant changes produce separate hunks", func(t *testing.T) {
		t.Parallel()

		orig := "1\n2\n3\n4\n5\n6\n7\n8\n9\n10\n11\n12\n"
		mod := "one\n2\n3\n4\n5\n6\n7\n8\n9\n10\n11\ntwelve\n"
		diff := fix.GenerateDiff("n.js", orig, mod)
		require.NotNil(t, diff)
		assert.Len(t, diff.Hunks, 2)
	})

	t.Run("pure addition", func(t *testing.T) {
		t.Parallel()

		diff := fix.GenerateDiff("n.js", "a\n", "a\nb\n")
		require.NotNil(t, diff)
		assert.Equal(t, 1, diff.Additions)
		assert.Zero(t, diff.Deletions)
	})

	t.Run("nil diff renders empty", func(t *testing.T) {
		t.Parallel()

		var diff *fix.Diff
		assert.Empty(t, diff.String())
		assert.Empty(t, diff.FullString())
		assert.Empty(t, diff.GitHeader())
	})
}
