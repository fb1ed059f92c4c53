// Package cache stores analysis results on disk, keyed by file content and
// the rule set that produced them.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/yaklabco/jsfixer/pkg/config"
	"github.com/yaklabco/jsfixer/pkg/fsutil"
	"github.com/yaklabco/jsfixer/pkg/lint"
)

// AppName names the cache directory under $XDG_CACHE_HOME.
const AppName = "jsfixer"

// schemaVersion must be bumped whenever Entry changes shape.
const schemaVersion uint16 = 1

const entryExt = ".mp"

// Key identifies one (content, rule set) pair.
type Key [sha256.Size]byte

// KeyFor derives the key for content analyzed with the rule set whose
// fingerprint is given.
func KeyFor(content []byte, fingerprint string) Key {
	h := sha256.New()
	h.Write([]byte(fingerprint))
	h.Write([]byte{0})
	h.Write(content)

	var k Key
	copy(k[:], h.Sum(nil))
	return k
}

func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// Entry is a cached analysis.
type Entry struct {
	Schema      uint16   `msgpack:"v"`
	Diagnostics []record `msgpack:"d"`
	Empty       bool     `msgpack:"e"`
	ParseError  string   `msgpack:"p"`
}

// record is the on-disk form of a diagnostic. Severity is stored as a plain
// string so decoding never goes through severity alias parsing.
type record struct {
	RuleID   string `msgpack:"id"`
	RuleName string `msgpack:"n"`
	Severity string `msgpack:"s"`
	Message  string `msgpack:"m"`
	FilePath string `msgpack:"f"`
	Line     int    `msgpack:"l"`
	Column   int    `msgpack:"c"`
	Fixable  bool   `msgpack:"x"`
}

// Cache is a directory of msgpack-encoded entries. A nil *Cache is a valid
// cache that never hits. Safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// DefaultDir returns $XDG_CACHE_HOME/jsfixer, falling back to ~/.cache.
func DefaultDir() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("locate cache directory: %w", err)
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, AppName), nil
}

// Open creates the cache directory if needed. An empty dir means DefaultDir.
func Open(dir string) (*Cache, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *Cache) pathFor(k Key) string {
	s := k.String()
	return filepath.Join(c.dir, s[:2], s+entryExt)
}

// Get returns the entry for k. Missing, unreadable, corrupt and
// stale-schema entries are all misses.
func (c *Cache) Get(k Key) (*Entry, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(k))
	if err != nil {
		return nil, false
	}

	var entry Entry
	if err := msgpack.Unmarshal(data, &entry); err != nil {
		return nil, false
	}
	if entry.Schema != schemaVersion {
		return nil, false
	}
	return &entry, true
}

// Put stores entry under k, replacing any previous one atomically.
func (c *Cache) Put(ctx context.Context, k Key, entry Entry) error {
	if c == nil {
		return nil
	}
	entry.Schema = schemaVersion

	data, err := msgpack.Marshal(&entry)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	path := c.pathFor(k)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create cache shard: %w", err)
	}
	if err := fsutil.WriteAtomic(ctx, path, data, 0o644); err != nil {
		return fmt.Errorf("write cache entry %s: %w", k, err)
	}
	return nil
}

// FromResult captures the cacheable part of an analysis.
func FromResult(r *lint.Result) Entry {
	entry := Entry{Empty: r.Empty}
	for _, d := range r.Diagnostics {
		entry.Diagnostics = append(entry.Diagnostics, record{
			RuleID:   d.RuleID,
			RuleName: d.RuleName,
			Severity: string(d.Severity),
			Message:  d.Message,
			FilePath: d.FilePath,
			Line:     d.Line,
			Column:   d.Column,
			Fixable:  d.Fixable,
		})
	}
	if r.ParseErr != nil {
		entry.ParseError = r.ParseErr.Error()
	}
	return entry
}

// Result rebuilds an analysis result from a cached entry.
func (e *Entry) Result() *lint.Result {
	r := &lint.Result{Empty: e.Empty}
	for _, rec := range e.Diagnostics {
		r.Diagnostics = append(r.Diagnostics, lint.Diagnostic{
			RuleID:   rec.RuleID,
			RuleName: rec.RuleName,
			Severity: config.Severity(rec.Severity),
			Message:  rec.Message,
			FilePath: rec.FilePath,
			Line:     rec.Line,
			Column:   rec.Column,
			Fixable:  rec.Fixable,
		})
	}
	if e.ParseError != "" {
		r.ParseErr = errors.New(e.ParseError)
	}
	return r
}

// Clear removes every entry. It reports the number of entries removed.
func (c *Cache) Clear() (int, error) {
	if c == nil {
		return 0, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	err := filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != entryExt {
			return nil
		}
		if err := os.Remove(path); err != nil {
			return err
		}
		removed++
		return nil
	})
	if err != nil {
		return removed, fmt.Errorf("clear cache: %w", err)
	}
	return removed, nil
}
