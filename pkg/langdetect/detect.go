// Package langdetect decides whether a file holds JavaScript. It is used by
// discovery for files whose extension alone does not settle the question.
package langdetect

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// JavaScript is the language name returned for JavaScript sources.
const JavaScript = "javascript"

// Unknown is returned when no language can be determined.
const Unknown = "text"

// classifierCandidates are the languages a script without a telling name
// or shebang is likely to be.
var classifierCandidates = []string{
	"JavaScript", "TypeScript", "Python", "Shell", "Ruby", "Perl", "PHP", "Lua", "JSON",
}

// jsSignals are fragments that rarely appear outside JavaScript.
var jsSignals = []string{
	"require(",
	"module.exports",
	"export default",
	"console.log(",
	"=> {",
	"function ",
	"document.",
	"window.",
	"===",
}

// minSignals is how many distinct jsSignals mark content as JavaScript.
const minSignals = 2

// Detect returns the lowercase language of a file, or Unknown. Evidence is
// taken in order of reliability: file name, extension, shebang, JavaScript
// signals, then the content classifier.
func Detect(path string, content []byte) string {
	base := filepath.Base(path)

	if lang, safe := enry.GetLanguageByFilename(base); safe {
		return normalize(lang)
	}
	if lang, safe := enry.GetLanguageByExtension(base); safe {
		return normalize(lang)
	}
	if len(content) == 0 {
		return Unknown
	}
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}
	if countSignals(string(content)) >= minSignals {
		return JavaScript
	}
	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}
	return Unknown
}

// IsJavaScript reports whether path with the given content is JavaScript.
func IsJavaScript(path string, content []byte) bool {
	return Detect(path, content) == JavaScript
}

// IsVendored reports whether path lies in a dependency directory such as
// node_modules or bower_components.
func IsVendored(path string) bool {
	return enry.IsVendor(filepath.ToSlash(path))
}

func countSignals(content string) int {
	n := 0
	for _, s := range jsSignals {
		if strings.Contains(content, s) {
			n++
		}
	}
	return n
}

func normalize(lang string) string {
	return strings.ToLower(lang)
}
