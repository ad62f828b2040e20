package vbconv

import (
	"strings"

	"github.com/cwbudde/vba2js/internal/token"
)

// visibilityModifiers are the leading visibility/storage modifiers that
// canonicalizeModifiers strips when one of declaratorKeywords follows, per
// spec.md §4.2's canonicalization regexes; "Type" is stripped as well.
var visibilityModifiers = []string{"Public", "Private", "Friend", "Static"}
var declaratorKeywords = []string{"Sub", "Function", "Dim", "Global", "Const", "Type"}

// Line tokenizes one physical input line on demand. It owns a mutable
// residue that is consumed token by token; Line itself is reused by the
// TranslationUnit, matching spec.md's "single reusable Line object".
type Line struct {
	original  string
	residue   string
	comment   string
	lastTok   token.Token
	peekCount int
	isEOF     bool
	lineNo    int
}

// newLine applies the pre-parse rewrites of spec.md §4.2 and returns a
// fresh Line ready for tokenization.
func newLine(raw string, lineNo int) *Line {
	if raw == "(EOF)" {
		return &Line{original: raw, isEOF: true, lineNo: lineNo}
	}

	converted, comment := splitCommentAndCanonicalizeStrings(raw)
	converted = rewriteBrackets(converted)
	converted = canonicalizeModifiers(converted)
	converted = canonicalizePropertyAccessors(converted)

	return &Line{original: raw, residue: converted, comment: comment, lineNo: lineNo}
}

// splitCommentAndCanonicalizeStrings performs a single left-to-right scan
// that extracts the first unquoted "'" comment and rewrites every quoted
// VBA string into its JS-canonical double-quoted form (doubled "" becomes
// an embedded quote; a literal backslash-quote is preserved as an escape).
// Doing both in one pass avoids re-scanning text whose quoting has already
// changed.
func splitCommentAndCanonicalizeStrings(raw string) (converted, comment string) {
	var out strings.Builder
	runes := []rune(raw)
	i := 0
	for i < len(runes) {
		ch := runes[i]
		switch {
		case ch == '"':
			out.WriteRune('"')
			i++
			for i < len(runes) {
				if runes[i] == '\\' && i+1 < len(runes) {
					out.WriteRune(runes[i])
					out.WriteRune(runes[i+1])
					i += 2
					continue
				}
				if runes[i] == '"' {
					if i+1 < len(runes) && runes[i+1] == '"' {
						out.WriteString(`\"`)
						i += 2
						continue
					}
					out.WriteRune('"')
					i++
					break
				}
				out.WriteRune(runes[i])
				i++
			}
		case ch == '\'':
			comment = strings.TrimSpace(string(runes[i+1:]))
			return out.String(), comment
		default:
			out.WriteRune(ch)
			i++
		}
	}
	return out.String(), ""
}

// rewriteBrackets replaces every "[name...]" with `Range("name...")`,
// translating an embedded "!" to ".". Per spec.md §9 this is intentionally
// unsafe when nested brackets or strings contain "[", matching the
// teacher-flagged "setBrackets" limitation: it is not generalized.
func rewriteBrackets(s string) string {
	var out strings.Builder
	i := 0
	for i < len(s) {
		if s[i] == '[' {
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				out.WriteString(s[i:])
				return out.String()
			}
			inner := s[i+1 : i+end]
			inner = strings.ReplaceAll(inner, "!", ".")
			out.WriteString(`Range("` + inner + `")`)
			i += end + 1
			continue
		}
		out.WriteByte(s[i])
		i++
	}
	return out.String()
}

// canonicalizeModifiers strips a leading visibility/storage modifier before
// a declarator keyword, e.g. "Public Sub Foo" -> "Sub Foo".
func canonicalizeModifiers(s string) string {
	trimmed := strings.TrimLeft(s, " \t")
	lead := strings.TrimLeft(s, " \t")
	for _, mod := range visibilityModifiers {
		if !strings.HasPrefix(strings.ToLower(lead), strings.ToLower(mod)) {
			continue
		}
		rest := strings.TrimLeft(lead[len(mod):], " \t")
		for _, kw := range declaratorKeywords {
			if hasWordPrefix(rest, kw) {
				prefixLen := len(s) - len(trimmed)
				return s[:prefixLen] + rest
			}
		}
	}
	return s
}

func hasWordPrefix(s, word string) bool {
	if len(s) < len(word) || !strings.EqualFold(s[:len(word)], word) {
		return false
	}
	if len(s) == len(word) {
		return true
	}
	next := s[len(word)]
	return !(next == '_' || isAlnum(next))
}

func isAlnum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// canonicalizePropertyAccessors rewrites "Property Get/Let/Set" to
// "Function Get/Let/Set" and "End Property" to "End Function".
func canonicalizePropertyAccessors(s string) string {
	lead := strings.TrimLeft(s, " \t")
	prefixLen := len(s) - len(lead)
	lower := strings.ToLower(lead)
	for _, accessor := range []string{"get", "let", "set"} {
		p := "property " + accessor
		if strings.HasPrefix(lower, p) && hasWordPrefix(lead[len(p):], "") {
			capitalized := strings.ToUpper(accessor[:1]) + accessor[1:]
			return s[:prefixLen] + "Function " + capitalized + lead[len(p):]
		}
	}
	if strings.HasPrefix(lower, "end property") {
		return s[:prefixLen] + "End Function" + lead[len("end property"):]
	}
	return s
}

// IsBlank reports whether the line has no tokens and no comment left to
// translate.
func (l *Line) IsBlank() bool {
	if l.isEOF {
		return false
	}
	return strings.TrimSpace(l.residue) == "" && l.comment == ""
}

// Comment returns the comment extracted from this line, if any.
func (l *Line) Comment() string { return l.comment }

// Original returns the untouched input text, for UNTOUCHED emission and
// error reporting.
func (l *Line) Original() string { return l.original }

// peek classifies the next token without consuming it. ok is false when
// the residue is exhausted (nothing left to peek).
func (l *Line) peek() (token.Token, bool, error) {
	if l.isEOF {
		return token.EOF, true, nil
	}
	l.peekCount++
	if l.peekCount > 1000 {
		return token.Token{}, false, newParseException(ErrRunawayPeek, l.lineNo, l.original,
			"more than 1000 consecutive peeks without consuming a token")
	}
	residue := strings.TrimLeft(l.residue, " \t")
	if residue == "" {
		return token.Token{}, false, nil
	}
	tok, _, ok := token.Classify(residue)
	if !ok {
		return token.Token{}, false, newParseException(ErrUnknownToken, l.lineNo, l.original,
			"unknown token near %q", firstRunes(residue, 16))
	}
	l.lastTok = tok
	return tok, true, nil
}

func firstRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// consume classifies and advances past the next token. It returns ok=false
// when there is nothing left to consume.
func (l *Line) consume() (token.Token, bool, error) {
	if l.isEOF {
		return token.EOF, true, nil
	}
	tok, ok, err := l.peek()
	if err != nil || !ok {
		return token.Token{}, ok, err
	}
	residue := strings.TrimLeft(l.residue, " \t")
	_, length, _ := token.Classify(residue)
	l.residue = residue[length:]
	l.peekCount = 0
	return tok, true, nil
}

// eat consumes one token without enforcing that it matches expected. This
// mirrors the teacher-flagged weakness in spec.md §9: "eat(expected) does
// not enforce the expected token." A debug-mode strict variant is
// deliberately not wired in, per the same note: enforcing it is known to
// break on real-world VBA input.
func (l *Line) eat(expected string) (token.Token, error) {
	tok, _, err := l.consume()
	_ = expected
	return tok, err
}

// restOfLine returns whatever text remains in the residue, untrimmed.
// UNTOUCHED emission does not use it; it prints Original().
func (l *Line) restOfLine() string {
	return l.residue
}
