package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/yaklabco/jsfixer/pkg/config"
	"github.com/yaklabco/jsfixer/pkg/lint"
)

func sampleResult() *lint.Result {
	return &lint.Result{
		Diagnostics: []lint.Diagnostic{
			{RuleID: "no-var", RuleName: "No usar var", Severity: config.SeverityMedium, Message: "Usa let", Line: 1, Fixable: true},
			{RuleID: "no-debugger", RuleName: "No usar debugger", Severity: config.SeverityHigh, Line: 3, Column: 2},
		},
	}
}

func TestKeyFor(t *testing.T) {
	t.Parallel()

	a := KeyFor([]byte("var x;"), "rules-a")
	assert.Equal(t, a, KeyFor([]byte("var x;"), "rules-a"))
	assert.NotEqual(t, a, KeyFor([]byte("var x;"), "rules-b"), "rule changes invalidate")
	assert.NotEqual(t, a, KeyFor([]byte("var y;"), "rules-a"), "content changes invalidate")
	assert.Len(t, a.String(), 64)
}

func TestCache_PutGet(t *testing.T) {
	t.Parallel()

	c, err := Open(t.TempDir())
	require.NoError(t, err)

	key := KeyFor([]byte("var x;"), "fp")
	_, ok := c.Get(key)
	assert.False(t, ok)

	require.NoError(t, c.Put(context.Background(), key, FromResult(sampleResult())))

	entry, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, schemaVersion, entry.Schema)
	assert.Equal(t, sampleResult().Diagnostics, entry.Result().Diagnostics)
}

func TestCache_ParseErrorRoundTrip(t *testing.T) {
	t.Parallel()

	c, err := Open(t.TempDir())
	require.NoError(t, err)

	key := KeyFor([]byte("function ("), "fp")
	require.NoError(t, c.Put(context.Background(), key, FromResult(&lint.Result{ParseErr: errors.New("syntax error at 1:10")})))

	entry, ok := c.Get(key)
	require.True(t, ok)
	require.Error(t, entry.Result().ParseErr)
	assert.Equal(t, "syntax error at 1:10", entry.Result().ParseErr.Error())
}

func TestCache_CorruptAndStaleEntriesMiss(t *testing.T) {
	t.Parallel()

	c, err := Open(t.TempDir())
	require.NoError(t, err)

	corrupt := KeyFor([]byte("a"), "fp")
	require.NoError(t, os.MkdirAll(filepath.Dir(c.pathFor(corrupt)), 0o755))
	require.NoError(t, os.WriteFile(c.pathFor(corrupt), []byte("not msgpack"), 0o600))
	_, ok := c.Get(corrupt)
	assert.False(t, ok)

	stale := KeyFor([]byte("b"), "fp")
	data, err := msgpack.Marshal(&Entry{Schema: schemaVersion + 1})
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(c.pathFor(stale)), 0o755))
	require.NoError(t, os.WriteFile(c.pathFor(stale), data, 0o600))
	_, ok = c.Get(stale)
	assert.False(t, ok)
}

func TestCache_Clear(t *testing.T) {
	t.Parallel()

	c, err := Open(t.TempDir())
	require.NoError(t, err)

	for _, src := range []string{"a", "b", "c"} {
		require.NoError(t, c.Put(context.Background(), KeyFor([]byte(src), "fp"), Entry{}))
	}

	removed, err := c.Clear()
	require.NoError(t, err)
	assert.Equal(t, 3, removed)

	_, ok := c.Get(KeyFor([]byte("a"), "fp"))
	assert.False(t, ok)
}

func TestCache_Nil(t *testing.T) {
	t.Parallel()

	var c *Cache
	_, ok := c.Get(Key{})
	assert.False(t, ok)
	require.NoError(t, c.Put(context.Background(), Key{}, Entry{}))
	n, err := c.Clear()
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, c.Dir())
}

func TestDefaultDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")

	dir, err := DefaultDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", AppName), dir)
}
