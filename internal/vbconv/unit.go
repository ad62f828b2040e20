package vbconv

import (
	"regexp"
	"strings"
)

// TranslationUnit owns the full line buffer, the current line pointer, the
// output indentation depth, the current function name, and the sub-nesting
// counter, per spec.md §3.
type TranslationUnit struct {
	lines             []string
	currentLineNumber int
	depth             int
	functionName      string
	subNestingValue   int
	typeNames         map[string]bool
	current           *Line
}

// newTranslationUnit runs cleanup over raw and returns a unit positioned
// before the first line.
func newTranslationUnit(rawLines []string) *TranslationUnit {
	tu := &TranslationUnit{
		currentLineNumber: -1,
		typeNames:         make(map[string]bool),
	}
	tu.lines = cleanup(rawLines)
	return tu
}

var continuationRe = regexp.MustCompile(`^.*_$`)

// cleanup implements spec.md §4.3: trims every line, merges trailing-"_"
// continuations, expands single-line If statements, and appends the
// "(EOF)" sentinel.
func cleanup(rawLines []string) []string {
	lines := make([]string, 0, len(rawLines)+1)
	for _, l := range rawLines {
		lines = append(lines, strings.TrimSpace(l))
	}

	for i := len(lines) - 2; i >= 0; i-- {
		if continuationRe.MatchString(lines[i]) {
			// spec.md §8: "the merged line equals lineN[:−1] + lineN+1" —
			// a plain concatenation with no inserted space; the source's
			// own space before the trailing "_" carries the join.
			merged := lines[i][:len(lines[i])-1] + lines[i+1]
			lines[i] = merged
			lines = append(lines[:i+1], lines[i+2:]...)
		}
	}

	for i := len(lines) - 1; i >= 0; i-- {
		if expanded, ok := expandOneLineIf(lines[i]); ok {
			lines = append(lines[:i], append(expanded, lines[i+1:]...)...)
		}
	}

	lines = append(lines, "(EOF)")
	return lines
}

// oneLineIfRe detects "If ... Then ... [Else ...]" on a single line. It is
// matched against the canonicalized form (post string-rewrite) so that a
// quoted "Then" substring cannot false-match, per spec.md §4.3.
var oneLineIfRe = regexp.MustCompile(`(?i)^If\s+(.+?)\s+Then\s+(.+?)(?:\s+Else\s+(.*))?$`)

var quotedRe = regexp.MustCompile(`"(?:[^"\\]|\\.)*"`)

// expandOneLineIf rewrites a single-line If into its multi-line form:
// head through Then, the then-body, an optional Else and its body, and a
// terminating End If.
func expandOneLineIf(raw string) ([]string, bool) {
	converted, comment := splitCommentAndCanonicalizeStrings(raw)
	// Match against a same-length copy with string literals blanked out, so
	// "Then"/"Else" inside quotes is never taken as a keyword.
	masked := quotedRe.ReplaceAllStringFunc(converted, func(s string) string {
		return strings.Repeat("x", len(s))
	})
	m := oneLineIfRe.FindStringSubmatchIndex(masked)
	if m == nil {
		return nil, false
	}
	cond := strings.TrimSpace(converted[m[2]:m[3]])
	thenBody := strings.TrimSpace(converted[m[4]:m[5]])
	elseBody := ""
	if m[6] >= 0 {
		elseBody = strings.TrimSpace(converted[m[6]:m[7]])
	}

	out := []string{"If " + cond + " Then", thenBody}
	if elseBody != "" {
		out = append(out, "Else", elseBody)
	}
	if comment != "" {
		// Reattach a trailing "'" comment to the last body line so it
		// survives expansion instead of being silently dropped.
		out[len(out)-1] += " '" + comment
	}
	out = append(out, "End If")
	return out, true
}

// advance moves the cursor to the next line and reparses it into the
// reusable Line object.
func (tu *TranslationUnit) advance() {
	tu.currentLineNumber++
	if tu.currentLineNumber >= len(tu.lines) {
		tu.current = newLine("(EOF)", tu.currentLineNumber+1)
		return
	}
	tu.current = newLine(tu.lines[tu.currentLineNumber], tu.currentLineNumber+1)
}

// lineNumber returns the 1-based line number of the current line.
func (tu *TranslationUnit) lineNumber() int {
	return tu.currentLineNumber + 1
}

func (tu *TranslationUnit) indent() string {
	return strings.Repeat("  ", tu.depth)
}
