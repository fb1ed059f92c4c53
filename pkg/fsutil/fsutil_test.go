package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jsfixer/pkg/fsutil"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "app.js", "var x = 1;\n")

	content, snap, err := fsutil.ReadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "var x = 1;\n", string(content))
	assert.Equal(t, path, snap.Path)
	assert.Equal(t, int64(len(content)), snap.Size)
	assert.Equal(t, os.FileMode(0o600), snap.Mode.Perm())
}

func TestReadFile_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, _, err := fsutil.ReadFile(context.Background(), filepath.Join(dir, "missing.js"))
	require.ErrorIs(t, err, fsutil.ErrNotFound)

	_, _, err = fsutil.ReadFile(context.Background(), dir)
	require.ErrorIs(t, err, fsutil.ErrIsDirectory)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = fsutil.ReadFile(ctx, dir)
	require.ErrorIs(t, err, context.Canceled)
}

func TestChanged(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(t *testing.T, path string)
		strict bool
		want   bool
	}{
		{
			name:   "untouched",
			mutate: func(*testing.T, string) {},
			strict: true,
			want:   false,
		},
		{
			name: "rewritten with different size",
			mutate: func(t *testing.T, path string) {
				require.NoError(t, os.WriteFile(path, []byte("let x = 1;\nlet y;\n"), 0o600))
			},
			want: true,
		},
		{
			name: "same size and mtime but new content",
			mutate: func(t *testing.T, path string) {
				info, err := os.Stat(path)
				require.NoError(t, err)
				require.NoError(t, os.WriteFile(path, []byte("let x = 2;\n"), 0o600))
				require.NoError(t, os.Chtimes(path, info.ModTime(), info.ModTime()))
			},
			strict: true,
			want:   true,
		},
		{
			name: "quick check misses same-size same-mtime edits",
			mutate: func(t *testing.T, path string) {
				info, err := os.Stat(path)
				require.NoError(t, err)
				require.NoError(t, os.WriteFile(path, []byte("let x = 2;\n"), 0o600))
				require.NoError(t, os.Chtimes(path, info.ModTime(), info.ModTime()))
			},
			strict: false,
			want:   false,
		},
		{
			name: "deleted",
			mutate: func(t *testing.T, path string) {
				require.NoError(t, os.Remove(path))
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeFile(t, t.TempDir(), "app.js", "let x = 1;\n")
			_, snap, err := fsutil.ReadFile(context.Background(), path)
			require.NoError(t, err)

			tt.mutate(t, path)

			got, err := fsutil.Changed(context.Background(), snap, tt.strict)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChanged_NilSnapshot(t *testing.T) {
	t.Parallel()

	_, err := fsutil.Changed(context.Background(), nil, true)
	require.ErrorIs(t, err, fsutil.ErrNilSnapshot)
}

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "app.js", "var x;\n")

	require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("let x;\n"), 0o640))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "let x;\n", string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}

func TestWriteAtomic_DefaultMode(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "new.js")
	require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("x;"), 0))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, fsutil.DefaultFileMode, info.Mode().Perm())
}

func TestWriteAtomic_MissingDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nope", "app.js")
	require.Error(t, fsutil.WriteAtomic(context.Background(), path, []byte("x;"), 0))
}

func TestBackupPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "src/app.js.jsfixer.bak", fsutil.BackupPath("src/app.js", fsutil.BackupModeSidecar))
	assert.Equal(t, "src/app.js.jsfixer.bak", fsutil.BackupPath("src/app.js", "unknown"))
	assert.Empty(t, fsutil.BackupPath("src/app.js", fsutil.BackupModeNone))
}

func TestCreateBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cfg := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}
	path := writeFile(t, t.TempDir(), "app.js", "var original;\n")

	created, err := fsutil.CreateBackup(ctx, path, cfg)
	require.NoError(t, err)
	assert.True(t, created)

	require.NoError(t, os.WriteFile(path, []byte("let fixed;\n"), 0o600))

	created, err = fsutil.CreateBackup(ctx, path, cfg)
	require.NoError(t, err)
	assert.False(t, created, "existing backup is kept")

	backup, err := os.ReadFile(path + fsutil.BackupSuffix)
	require.NoError(t, err)
	assert.Equal(t, "var original;\n", string(backup))
}

func TestCreateBackup_Disabled(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "app.js", "x;")

	for _, cfg := range []fsutil.BackupConfig{
		{Enabled: false, Mode: fsutil.BackupModeSidecar},
		{Enabled: true, Mode: fsutil.BackupModeNone},
	} {
		created, err := fsutil.CreateBackup(context.Background(), path, cfg)
		require.NoError(t, err)
		assert.False(t, created)
	}
	assert.NoFileExists(t, path+fsutil.BackupSuffix)
}

func TestRestoreBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := writeFile(t, t.TempDir(), "app.js", "var original;\n")

	restored, err := fsutil.RestoreBackup(ctx, path, fsutil.BackupModeSidecar)
	require.NoError(t, err)
	assert.False(t, restored, "no backup yet")

	_, err = fsutil.CreateBackup(ctx, path, fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("let fixed;\n"), 0o600))

	restored, err = fsutil.RestoreBackup(ctx, path, fsutil.BackupModeSidecar)
	require.NoError(t, err)
	assert.True(t, restored)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "var original;\n", string(got))
	assert.NoFileExists(t, path+fsutil.BackupSuffix)
}

func FuzzWriteAtomic(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("var x = 1;\n"))
	f.Add([]byte("\x00\xff\r\n"))

	f.Fuzz(func(t *testing.T, content []byte) {
		path := filepath.Join(t.TempDir(), "fuzz.js")
		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, content, 0))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, content, got)
	})
}
