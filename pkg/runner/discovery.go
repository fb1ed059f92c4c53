package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/jsfixer/pkg/langdetect"
)

// ErrInvalidPattern is returned for exclude globs that do not compile.
var ErrInvalidPattern = errors.New("invalid exclude pattern")

// Discover returns the sorted, absolute paths of the JavaScript files
// selected by opts.
//
// Directories are walked for files with a known extension; hidden entries,
// excluded paths and dependency directories are skipped. A file named
// explicitly is accepted either by extension or, lacking one, when its
// content is recognized as JavaScript.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	excl, err := compileExcludes(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	w := &walker{
		ctx:     ctx,
		opts:    opts,
		workDir: workDir,
		exts:    opts.effectiveExtensions(),
		exclude: excl,
		seen:    make(map[string]struct{}),
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		abs := input
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, abs)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if info.IsDir() {
			if err := w.walk(abs); err != nil {
				return nil, err
			}
			continue
		}
		if w.acceptExplicit(abs) {
			w.add(abs)
		}
	}

	slices.Sort(w.files)
	return w.files, nil
}

func resolveWorkDir(dir string) (string, error) {
	if dir == "" {
		return os.Getwd()
	}
	return filepath.Abs(dir)
}

type walker struct {
	ctx     context.Context
	opts    Options
	workDir string
	exts    []string
	exclude excluder
	seen    map[string]struct{}
	dirs    map[string]struct{}
	files   []string
}

// visited records a followed directory and reports whether it was seen
// before, which stops symlink cycles.
func (w *walker) visited(dir string) bool {
	if w.dirs == nil {
		w.dirs = make(map[string]struct{})
	}
	if _, ok := w.dirs[dir]; ok {
		return true
	}
	w.dirs[dir] = struct{}{}
	return false
}

func (w *walker) add(path string) {
	if _, ok := w.seen[path]; ok {
		return
	}
	w.seen[path] = struct{}{}
	w.files = append(w.files, path)
}

func (w *walker) rel(path string) string {
	rel, err := filepath.Rel(w.workDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func (w *walker) walk(root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		rel := w.rel(path)
		hidden := path != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || w.exclude.matchDir(rel) {
				return filepath.SkipDir
			}
			if !w.opts.IncludeVendored && path != root && langdetect.IsVendored(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			return w.symlink(path)
		}

		if !hidden && w.hasExtension(path) && !w.exclude.match(rel) {
			w.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// symlink handles a link met during a walk. Broken links are skipped;
// directory links are followed only when asked, by walking their target.
func (w *walker) symlink(path string) error {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil //nolint:nilerr // broken links are skipped
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil //nolint:nilerr // unreadable targets are skipped
	}

	if info.IsDir() {
		if !w.opts.FollowSymlinks || w.visited(target) {
			return nil
		}
		return w.walk(target)
	}

	if !strings.HasPrefix(filepath.Base(path), ".") && w.hasExtension(path) && !w.exclude.match(w.rel(path)) {
		w.add(path)
	}
	return nil
}

func (w *walker) hasExtension(path string) bool {
	return slices.Contains(w.exts, strings.ToLower(filepath.Ext(path)))
}

func (w *walker) acceptExplicit(path string) bool {
	if w.exclude.match(w.rel(path)) {
		return false
	}
	if w.hasExtension(path) {
		return true
	}
	if filepath.Ext(path) != "" {
		return false
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return langdetect.IsJavaScript(path, content)
}

// excluder matches slash-separated relative paths against exclude globs.
// "*" stays within one path segment and "**" spans segments. Patterns also
// match the base name, so "*.min.js" applies at any depth.
type excluder []glob.Glob

func compileExcludes(patterns []string) (excluder, error) {
	var out excluder
	for _, p := range patterns {
		p = filepath.ToSlash(strings.TrimSpace(p))
		if p == "" {
			continue
		}

		variants := []string{p}
		if rest, ok := strings.CutPrefix(p, "**/"); ok {
			variants = append(variants, rest)
		}
		for _, v := range variants {
			g, err := glob.Compile(v, '/')
			if err != nil {
				return nil, fmt.Errorf("%w %q: %w", ErrInvalidPattern, p, err)
			}
			out = append(out, g)
		}
	}
	return out, nil
}

func (e excluder) match(rel string) bool {
	base := rel
	if idx := strings.LastIndexByte(rel, '/'); idx >= 0 {
		base = rel[idx+1:]
	}
	for _, g := range e {
		if g.Match(rel) || g.Match(base) {
			return true
		}
	}
	return false
}

// matchDir also accepts "dir/**" style patterns for the directory itself.
func (e excluder) matchDir(rel string) bool {
	if rel == "." {
		return false
	}
	if e.match(rel) {
		return true
	}
	for _, g := range e {
		if g.Match(rel + "/") {
			return true
		}
	}
	return false
}
