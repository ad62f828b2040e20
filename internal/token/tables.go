package token

import (
	"regexp"
	"strconv"
	"strings"
)

// KeywordCanonical maps a lower-cased VBA keyword spelling to its canonical
// mixed-case form. Lookups are case-insensitive; output is always the
// canonical spelling, the way the teacher's SymbolTable normalizes names to
// lowercase for lookup but keeps the declared case for display.
var KeywordCanonical = map[string]string{
	"if": "If", "then": "Then", "else": "Else", "elseif": "ElseIf",
	"for": "For", "to": "To", "downto": "Downto", "step": "Step", "next": "Next",
	"each": "Each", "in": "In",
	"do": "Do", "while": "While", "wend": "Wend", "until": "Until", "loop": "Loop",
	"exit": "Exit", "with": "With", "select": "Select", "case": "Case",
	"dim": "Dim", "redim": "ReDim", "preserve": "Preserve", "global": "Global",
	"const": "Const", "as": "As", "new": "New", "sub": "Sub", "function": "Function",
	"call": "Call", "type": "Type", "end": "End", "property": "Property",
	"let": "Let", "set": "Set", "public": "Public", "private": "Private",
	"friend": "Friend", "static": "Static", "byval": "ByVal", "byref": "ByRef",
	"optional": "Optional", "goto": "GoTo", "resume": "Resume", "on": "On",
	"error": "Error", "like": "Like", "is": "Is", "not": "Not", "and": "And",
	"or": "Or", "xor": "Xor", "mod": "Mod", "true": "True", "false": "False",
	"nil": "Nil", "nothing": "Nothing", "null": "Null", "empty": "Empty",
	"me": "Me", "attribute": "Attribute", "option": "Option", "declare": "Declare",
	"open": "Open", "close": "Close", "print": "Print", "input": "Input",
	"write": "Write", "kill": "Kill", "lock": "Lock", "unlock": "Unlock",
	"seek": "Seek", "reset": "Reset", "rem": "Rem",
	"integer": "Integer", "long": "Long", "double": "Double", "single": "Single",
	"string": "String", "boolean": "Boolean", "variant": "Variant", "date": "Date",
	"object": "Object", "byte": "Byte", "currency": "Currency", "decimal": "Decimal",
}

// builtinTypeNames are the VBA scalar type names recognized after "As".
var builtinTypeNames = map[string]bool{
	"integer": true, "long": true, "double": true, "single": true,
	"string": true, "boolean": true, "variant": true, "date": true,
	"object": true, "byte": true, "currency": true, "decimal": true,
}

// operatorWords are keyword-spelled operators classified as OP rather than
// KEY: And, Or, Xor, Mod, Not, Is, New.
var operatorWords = map[string]bool{
	"and": true, "or": true, "xor": true, "mod": true, "not": true,
	"is": true, "new": true,
}

// tossWords are modifier keywords silently discarded after canonicalization
// rewrites have already stripped most of them from declarator lines; they
// still surface standalone (e.g. "Let x = 5", "Set obj = New X").
var tossWords = map[string]bool{
	"let": true, "set": true, "public": true, "private": true,
	"friend": true, "static": true,
}

// puntWords mark statement forms the translator declines to rewrite:
// file I/O, Attribute, Option, Declare.
var puntWords = map[string]bool{
	"attribute": true, "option": true, "declare": true, "open": true,
	"close": true, "print": true, "input": true, "write": true,
	"kill": true, "lock": true, "unlock": true, "seek": true, "reset": true,
}

// JSOperator maps a VBA operator lexeme (canonical spelling) to its JS
// text, per spec.md §4.1. Order does not matter here since lookup is by
// key, but the table mirrors the spec's table exactly.
var JSOperator = map[string]string{
	"=": " == ", "<>": " != ", "<=": " <= ", ">=": " >= ", "<": " < ", ">": " > ",
	"^": " /*exp*/ ", "&": " + ", "+": " + ", "-": " - ", "*": " * ", "/": " / ",
	"\\": " / ", "Xor": " ^ ", "And": " && ", "Or": " || ", "Is": " == ",
	"IsNot": " != ", "Mod": " % ", "Not": "!", "New": "new ",
}

// pattern is one entry of the ordered classification table. Order is
// significant: entries earlier in Patterns are tried first, so multi-word
// and multi-character forms must precede their single-word/character
// prefixes.
type pattern struct {
	name     string
	re       *regexp.Regexp
	classify func(match string) Token
}

func kw(match string) Token {
	canon := KeywordCanonical[strings.ToLower(match)]
	lower := strings.ToLower(canon)
	switch {
	case operatorWords[lower]:
		return Token{Category: OP, Text: canon}
	case tossWords[lower]:
		return Token{Category: TOSS, Text: canon}
	case puntWords[lower]:
		return Token{Category: PUNT, Text: canon}
	case builtinTypeNames[lower]:
		return Token{Category: TYPE, Text: canon}
	default:
		return Token{Category: KEY, Text: canon}
	}
}

func op(text string) func(string) Token {
	return func(string) Token { return Token{Category: OP, Text: text} }
}

func chr(text string) func(string) Token {
	return func(string) Token { return Token{Category: CHR, Text: text} }
}

// Patterns is the precedence-ordered classification table described by
// spec.md §4.1: compound keywords before their prefixes, multi-character
// operators before single-character ones.
var Patterns = buildPatterns()

func buildPatterns() []pattern {
	ci := func(s string) *regexp.Regexp { return regexp.MustCompile(`(?i)^(?:` + s + `)`) }
	secondWord := regexp.MustCompile(`\s+(\w+)\s*$`)

	return []pattern{
		// Compound "End <construct>" before bare "End".
		{"EndCompound", ci(`End\s+(If|Sub|Function|Select|While|With|Type|Property)`),
			func(m string) Token {
				word := secondWord.FindStringSubmatch(m)[1]
				return Token{Category: ENDXX, Text: "End " + KeywordCanonical[strings.ToLower(word)]}
			}},
		// Compound "Exit <construct>".
		{"ExitCompound", ci(`Exit\s+(Sub|Function|For|Do|Property)`),
			func(m string) Token {
				word := secondWord.FindStringSubmatch(m)[1]
				return Token{Category: EXIT, Text: "Exit " + KeywordCanonical[strings.ToLower(word)]}
			}},
		// Compound "On Error ..." before bare "On"/"Error".
		{"OnErrorResumeNext", ci(`On\s+Error\s+Resume\s+Next`), func(string) Token {
			return Token{Category: ONERROR, Text: "On Error Resume Next"}
		}},
		{"OnErrorGoto0", ci(`On\s+Error\s+GoTo\s+0`), func(string) Token {
			return Token{Category: ONERROR, Text: "On Error GoTo 0"}
		}},
		{"OnErrorGoto", ci(`On\s+Error\s+GoTo`), func(string) Token {
			return Token{Category: ONERROR, Text: "On Error GoTo"}
		}},
		{"OnError", ci(`On\s+Error`), func(string) Token {
			return Token{Category: ONERROR, Text: "On Error"}
		}},
		// "Is Not" before "Is".
		{"IsNot", ci(`Is\s+Not`), func(string) Token { return Token{Category: OP, Text: "IsNot"} }},

		// Multi-character operators before single-character prefixes.
		{"Assign", regexp.MustCompile(`^:=`), op(":=")},
		{"NotEq", regexp.MustCompile(`^<>`), op("<>")},
		{"LtEq", regexp.MustCompile(`^<=`), op("<=")},
		{"GtEq", regexp.MustCompile(`^>=`), op(">=")},
		{"Eq", regexp.MustCompile(`^=`), op("=")},
		{"Lt", regexp.MustCompile(`^<`), op("<")},
		{"Gt", regexp.MustCompile(`^>`), op(">")},
		// "&H..." hex literal before the bare "&" concatenation operator.
		{"Hex", regexp.MustCompile(`(?i)^&H[0-9A-F]+`), func(m string) Token {
			return Token{Category: HEX, Text: "0x" + strings.ToUpper(m[2:])}
		}},
		{"Amp", regexp.MustCompile(`^&`), op("&")},
		{"Plus", regexp.MustCompile(`^\+`), op("+")},
		{"Minus", regexp.MustCompile(`^-`), op("-")},
		{"Star", regexp.MustCompile(`^\*`), op("*")},
		{"Slash", regexp.MustCompile(`^/`), op("/")},
		{"BackSlash", regexp.MustCompile(`^\\`), op("\\")},
		{"Caret", regexp.MustCompile(`^\^`), op("^")},
		{"Bang", regexp.MustCompile(`^!`), chr(".")},

		// Literals: string/date/number must precede plain identifier.
		{"String", regexp.MustCompile(`^"(?:[^"\\]|\\.)*"`), func(m string) Token {
			return Token{Category: STR, Text: m}
		}},
		{"Date", regexp.MustCompile(`^#[^#\n]*#`), func(m string) Token {
			return Token{Category: DATE, Text: `"` + m[1:len(m)-1] + `"`}
		}},
		{"Number", regexp.MustCompile(`^\d+(\.\d+)?([eE][+-]?\d+)?[&#]?`), func(m string) Token {
			return Token{Category: NUM, Text: strings.TrimRight(m, "&#")}
		}},

		// Compound keyword forms handled above; remaining single keywords
		// and identifiers share the same word pattern.
		{"Word", regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*`), func(m string) Token {
			if _, ok := KeywordCanonical[strings.ToLower(m)]; ok {
				return kw(m)
			}
			return Token{Category: ID, Text: m}
		}},

		// Plain structural punctuation.
		{"LParen", regexp.MustCompile(`^\(`), chr("(")},
		{"RParen", regexp.MustCompile(`^\)`), chr(")")},
		{"Comma", regexp.MustCompile(`^,`), chr(",")},
		{"Colon", regexp.MustCompile(`^:`), chr(":")},
		{"Dot", regexp.MustCompile(`^\.`), chr(".")},
	}
}

// Classify scans residue (already left-trimmed) and returns the first
// matching token together with the number of bytes consumed. ok is false
// when no pattern in the table matches (an ILLEGAL/unknown token).
func Classify(residue string) (tok Token, length int, ok bool) {
	for _, p := range Patterns {
		loc := p.re.FindStringIndex(residue)
		if loc != nil && loc[0] == 0 {
			match := residue[loc[0]:loc[1]]
			return p.classify(match), loc[1], true
		}
	}
	return Token{}, 0, false
}

// StripNumericSuffix removes a trailing "&" or "#" type-declaration suffix
// from a numeric literal, as VBA permits on integer/currency constants.
func StripNumericSuffix(s string) string {
	return strings.TrimRight(s, "&#")
}

// IsValidNumber reports whether s parses as a VBA numeric literal once its
// type suffix has been stripped. Classify does not call it (it is purely
// syntactic).
func IsValidNumber(s string) bool {
	_, err := strconv.ParseFloat(StripNumericSuffix(s), 64)
	return err == nil
}
