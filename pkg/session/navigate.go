package session

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/jsfixer/pkg/lint"
)

// SearchHit is one line containing a search query.
type SearchHit struct {
	// Line is 1-based.
	Line int

	// Text is the line with surrounding whitespace trimmed.
	Text string
}

// Search returns every line containing query. A blank query finds nothing.
func (s *Session) Search(query string) []SearchHit {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	s.mu.Lock()
	text := s.text
	s.mu.Unlock()

	var hits []SearchHit
	for idx, line := range strings.Split(text, "\n") {
		if strings.Contains(line, query) {
			hits = append(hits, SearchHit{Line: idx + 1, Text: strings.TrimSpace(line)})
		}
	}
	return hits
}

// Cursor returns the cursor position.
func (s *Session) Cursor() Cursor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// GoToLine moves the cursor to the start of line.
func (s *Session) GoToLine(line int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if line < 1 || line > s.lineCountLocked() {
		return fmt.Errorf("%w: %d", ErrLineOutOfRange, line)
	}
	s.cursor = Cursor{Line: line}
	return nil
}

func (s *Session) lineCountLocked() int {
	return strings.Count(s.text, "\n") + 1
}

// NextDiagnostic moves the cursor to the first diagnostic below the cursor
// line, wrapping around to the topmost one.
func (s *Session) NextDiagnostic() (lint.Diagnostic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	diags := s.byLineLocked()
	if len(diags) == 0 {
		return lint.Diagnostic{}, ErrNoDiagnostics
	}

	target := diags[0]
	if idx := slices.IndexFunc(diags, func(d lint.Diagnostic) bool { return d.Line > s.cursor.Line }); idx >= 0 {
		target = diags[idx]
	}

	s.cursor = Cursor{Line: target.Line}
	return target, nil
}

// PrevDiagnostic moves the cursor to the last diagnostic above the cursor
// line, wrapping around to the bottommost one.
func (s *Session) PrevDiagnostic() (lint.Diagnostic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	diags := s.byLineLocked()
	if len(diags) == 0 {
		return lint.Diagnostic{}, ErrNoDiagnostics
	}

	target := diags[len(diags)-1]
	for i := len(diags) - 1; i >= 0; i-- {
		if diags[i].Line < s.cursor.Line {
			target = diags[i]
			break
		}
	}

	s.cursor = Cursor{Line: target.Line}
	return target, nil
}

// byLineLocked returns the diagnostics ordered by line, keeping analysis
// order within a line.
func (s *Session) byLineLocked() []lint.Diagnostic {
	if s.result == nil {
		return nil
	}
	diags := slices.Clone(s.result.Diagnostics)
	slices.SortStableFunc(diags, func(a, b lint.Diagnostic) int {
		return cmp.Compare(a.Line, b.Line)
	})
	return diags
}

// FixAtCursor applies the first fixable diagnostic on the cursor line.
func (s *Session) FixAtCursor(ctx context.Context) (*lint.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var onLine []lint.Diagnostic
	if s.result != nil {
		for _, d := range s.result.Diagnostics {
			if d.Line == s.cursor.Line {
				onLine = append(onLine, d)
			}
		}
	}
	line := s.cursor.Line

	if len(onLine) == 0 {
		return nil, fmt.Errorf("%w: %d", ErrNoDiagnosticsOnLine, line)
	}

	idx := slices.IndexFunc(onLine, func(d lint.Diagnostic) bool { return d.Fixable })
	if idx < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNoFixableOnLine, line)
	}

	return s.applyFixLocked(ctx, onLine[idx])
}
