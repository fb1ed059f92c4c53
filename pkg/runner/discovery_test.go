package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jsfixer/pkg/runner"
)

// mkTree creates files (relative path -> content) under a new temp dir.
func mkTree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func rels(t *testing.T, root string, paths []string) []string {
	t.Helper()

	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

var projectTree = map[string]string{
	"a.js":                      "var a;",
	"b.mjs":                     "export default 1;",
	"c.cjs":                     "module.exports = 1;",
	"types.ts":                  "let x: number;",
	"README.md":                 "# readme",
	".hidden/x.js":              "x;",
	".eslintrc.js":              "module.exports = {};",
	"node_modules/lib/index.js": "lib;",
	"gen/bundle.js":             "bundle;",
	"src/app.js":                "app;",
	"src/app.min.js":            "app;",
	"src/deep/nested.JS":        "nested;",
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts runner.Options
		want []string
	}{
		{
			name: "defaults",
			want: []string{"a.js", "b.mjs", "c.cjs", "gen/bundle.js", "src/app.js", "src/app.min.js", "src/deep/nested.JS"},
		},
		{
			name: "exclude globs",
			opts: runner.Options{ExcludeGlobs: []string{"gen/**", "*.min.js", "**/deep"}},
			want: []string{"a.js", "b.mjs", "c.cjs", "src/app.js"},
		},
		{
			name: "include vendored",
			opts: runner.Options{IncludeVendored: true, ExcludeGlobs: []string{"src/**", "gen"}},
			want: []string{"a.js", "b.mjs", "c.cjs", "node_modules/lib/index.js"},
		},
		{
			name: "custom extensions",
			opts: runner.Options{Extensions: []string{".ts"}},
			want: []string{"types.ts"},
		},
		{
			name: "subdirectory path",
			opts: runner.Options{Paths: []string{"src"}},
			want: []string{"src/app.js", "src/app.min.js", "src/deep/nested.JS"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := mkTree(t, projectTree)
			opts := tt.opts
			opts.WorkingDir = root

			files, err := runner.Discover(context.Background(), opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rels(t, root, files))
		})
	}
}

func TestDiscover_ExplicitFiles(t *testing.T) {
	t.Parallel()

	root := mkTree(t, map[string]string{
		"bin/serve":   "#!/usr/bin/env node\nrequire('../server');\n",
		"bin/deploy":  "#!/bin/sh\necho deploy\n",
		"notes.txt":   "const x = 1; console.log(x);",
		"lib/util.js": "util;",
	})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: root,
		Paths:      []string{"bin/serve", "bin/deploy", "notes.txt", "lib/util.js", "lib/util.js"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"bin/serve", "lib/util.js"}, rels(t, root, files))
}

func TestDiscover_ExplicitFileExcluded(t *testing.T) {
	t.Parallel()

	root := mkTree(t, map[string]string{"gen/out.js": "x;"})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   root,
		Paths:        []string{"gen/out.js"},
		ExcludeGlobs: []string{"gen/**"},
	})
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDiscover_Errors(t *testing.T) {
	t.Parallel()

	root := mkTree(t, map[string]string{"a.js": "a;"})

	_, err := runner.Discover(context.Background(), runner.Options{WorkingDir: root, Paths: []string{"missing"}})
	require.Error(t, err)

	_, err = runner.Discover(context.Background(), runner.Options{WorkingDir: root, ExcludeGlobs: []string{"src/[a-"}})
	require.ErrorIs(t, err, runner.ErrInvalidPattern)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = runner.Discover(ctx, runner.Options{WorkingDir: root})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	root := mkTree(t, map[string]string{"code/a.js": "a;"})
	outside := mkTree(t, map[string]string{"shared.js": "s;"})

	require.NoError(t, os.Symlink(outside, filepath.Join(root, "linked")))
	require.NoError(t, os.Symlink(filepath.Join(root, "code"), filepath.Join(root, "code", "loop")))
	require.NoError(t, os.Symlink(filepath.Join(root, "nowhere.js"), filepath.Join(root, "broken.js")))

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: root})
	require.NoError(t, err)
	assert.Equal(t, []string{"code/a.js"}, rels(t, root, files))

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: root, FollowSymlinks: true})
	require.NoError(t, err)
	assert.Contains(t, files, filepath.Join(outside, "shared.js"))
	assert.Contains(t, files, filepath.Join(root, "code", "a.js"))
}
