// Package fix provides line fixers, text edits and splicing for auto-fixing.
package fix

import (
	"regexp"
	"strings"
)

// Fixer rewrites a single line of text. line is 1-based. It returns the full
// text with only that line replaced and true, or ("", false) when there is
// nothing to change. Fixers are pure.
type Fixer func(text string, line int) (string, bool)

// Kind enumerates the built-in fixers.
type Kind int

const (
	KindNoVar Kind = iota
	KindConsoleLog
	KindEqEqEq
	KindNoEmptyFunction
)

// Kinds lists every built-in fixer kind.
func Kinds() []Kind {
	return []Kind{KindNoVar, KindConsoleLog, KindEqEqEq, KindNoEmptyFunction}
}

// ID returns the rule identifier the fixer is registered under.
func (k Kind) ID() string {
	switch k {
	case KindNoVar:
		return "no-var"
	case KindConsoleLog:
		return "console-log"
	case KindEqEqEq:
		return "eqeqeq"
	case KindNoEmptyFunction:
		return "no-empty-function"
	default:
		return ""
	}
}

// Fixer returns the line fixer for the kind.
func (k Kind) Fixer() Fixer {
	switch k {
	case KindNoVar:
		return lineFixer(fixNoVar)
	case KindConsoleLog:
		return lineFixer(fixConsoleLog)
	case KindEqEqEq:
		return lineFixer(fixEqEqEq)
	case KindNoEmptyFunction:
		return lineFixer(fixNoEmptyFunction)
	default:
		return nil
	}
}

func (k Kind) String() string {
	return k.ID()
}

// TodoMarker is the comment appended by the no-empty-function fixer.
const TodoMarker = "// TODO: implementar función"

var varKeyword = regexp.MustCompile(`\bvar\b`)

// ReplaceVar replaces every whole-word "var" in s with "let".
func ReplaceVar(s string) string {
	return varKeyword.ReplaceAllString(s, "let")
}

func fixNoVar(line string) string {
	return ReplaceVar(line)
}

func fixConsoleLog(line string) string {
	if strings.HasPrefix(strings.TrimSpace(line), "//") {
		return line
	}
	return "// " + line
}

// fixEqEqEq turns every loose "==" into "===", leaving "===" and "!==" alone.
func fixEqEqEq(line string) string {
	var b strings.Builder
	b.Grow(len(line) + 4)

	for i := 0; i < len(line); i++ {
		if line[i] != '=' || i+1 >= len(line) || line[i+1] != '=' {
			b.WriteByte(line[i])
			continue
		}

		prev := byte(0)
		if i > 0 {
			prev = line[i-1]
		}
		next := byte(0)
		if i+2 < len(line) {
			next = line[i+2]
		}

		if prev == '=' || prev == '!' || next == '=' {
			// Part of a longer operator: copy the run of '=' unchanged.
			for i < len(line) && line[i] == '=' {
				b.WriteByte('=')
				i++
			}
			i--
			continue
		}

		b.WriteString("===")
		i++
	}

	return b.String()
}

func fixNoEmptyFunction(line string) string {
	if strings.Contains(line, "// TODO") {
		return line
	}
	return line + " " + TodoMarker
}

// lineFixer lifts a single-line rewrite into a Fixer. Lines are split and
// joined on "\n" without any normalization, so a "\r" stays with its line.
func lineFixer(rewrite func(string) string) Fixer {
	return func(text string, line int) (string, bool) {
		lines := strings.Split(text, "\n")
		idx := line - 1
		if idx < 0 || idx >= len(lines) {
			return "", false
		}

		fixed := rewrite(lines[idx])
		if fixed == lines[idx] {
			return "", false
		}

		lines[idx] = fixed
		return strings.Join(lines, "\n"), true
	}
}
