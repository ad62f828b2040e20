// Package vbconv implements the VBA6-to-JS source translator described by
// spec.md: a line-oriented lexer plus a recursive-descent statement
// converter operating over a mutable, in-place-rewritable line buffer.
package vbconv

import (
	"strings"

	"github.com/cwbudde/vba2js/internal/token"
)

// Converter is the recursive-descent driver that dispatches on the peek
// token of the current line and emits indented JS text into an output
// buffer, per spec.md §2.
type Converter struct {
	tu  *TranslationUnit
	gs  *GlobalState
	out strings.Builder
}

// Translate converts a VBA6 program, given as an ordered sequence of
// source lines, into an approximately equivalent JS script. It returns
// whatever output was produced so far together with the first fatal
// ParseException, matching spec.md §7's "errors are fatal for the current
// conversion; ... no partial output is guaranteed" policy — callers that
// want the partial text on error may still inspect the returned string.
func Translate(lines []string) (string, error) {
	if len(lines) == 0 {
		return "", nil
	}
	c := &Converter{
		tu: newTranslationUnit(lines),
		gs: newGlobalState(),
	}
	if err := c.run(); err != nil {
		return c.out.String(), err
	}
	return c.out.String(), nil
}

func (c *Converter) run() error {
	for {
		c.tu.advance()
		tok, ok, err := c.tu.current.peek()
		if err != nil {
			return err
		}
		if ok && tok.Category == token.END {
			break
		}
		if err := c.translateStatement(); err != nil {
			return err
		}
	}
	if c.tu.depth != 0 {
		return newParseException(ErrNestingUnbalanced, c.tu.lineNumber(), c.tu.current.Original(),
			"unbalanced nesting: indentation depth is %d at end of input", c.tu.depth)
	}
	return nil
}

// emit writes one already-formatted JS line at the current indentation
// depth.
func (c *Converter) emit(line string) {
	c.out.WriteString(c.tu.indent())
	c.out.WriteString(line)
	c.out.WriteString("\n")
}

// emitBlank writes an empty line, per spec.md §4.4 "Output emission:
// ... empty-body lines preserve only a trimmed comment."
func (c *Converter) emitBlank() {
	c.out.WriteString("\n")
}

// emitWithTrailingComment appends the current line's trailing comment (if
// any) as a "// ..." suffix.
func (c *Converter) emitWithTrailingComment(line string) {
	if comment := c.tu.current.Comment(); comment != "" {
		c.emit(line + " // " + comment)
		return
	}
	c.emit(line)
}

// emitUntouched emits the current line unmodified, comment-wrapped, per
// spec.md §6's "Output grammar": "// original ; // UNTOUCHED".
func (c *Converter) emitUntouched() {
	c.emit("// " + c.tu.current.Original() + " ; // UNTOUCHED")
}

func (c *Converter) indentIn()  { c.tu.depth++ }
func (c *Converter) indentOut() {
	if c.tu.depth > 0 {
		c.tu.depth--
	}
}

// unexpectedEOF builds the ErrUnexpectedEOF ParseException raised when
// dispatch reaches "(EOF)" while an enclosing construct is still open.
func (c *Converter) unexpectedEOF(construct string) error {
	return newParseException(ErrUnexpectedEOF, c.tu.lineNumber(), c.tu.current.Original(),
		"unexpected end of input while parsing %s", construct)
}

// atEOF reports whether the current line is the "(EOF)" sentinel.
func (c *Converter) atEOF() bool {
	return c.tu.current.isEOF
}

// translateStatement dispatches one statement, then — per spec.md §4.4's
// "Multiple statements on one line separated by : are processed by
// consuming the : and continuing without advancing" — keeps dispatching
// on the same line while a ":" separator remains.
func (c *Converter) translateStatement() error {
	for {
		if err := c.translateOneStatement(); err != nil {
			return err
		}
		l := c.tu.current
		if l.isEOF {
			return nil
		}
		tok, ok, err := l.peek()
		if err != nil {
			return err
		}
		if !ok || tok.Category != token.CHR || tok.Text != ":" {
			return nil
		}
		l.consume()
		if l.IsBlank() {
			return nil
		}
	}
}

// translateOneStatement dispatches on the peek token of the current line
// per the table in spec.md §4.4.
func (c *Converter) translateOneStatement() error {
	l := c.tu.current

	if l.IsBlank() {
		c.translateBlank()
		return nil
	}

	tok, ok, err := l.peek()
	if err != nil {
		return err
	}
	if !ok {
		// Nothing but a comment on this line.
		c.translateBlank()
		return nil
	}

	switch {
	case tok.Category == token.KEY && (tok.Text == "Dim" || tok.Text == "ReDim" ||
		tok.Text == "Global" || tok.Text == "Const"):
		return c.translateDeclaration()

	case tok.Category == token.KEY && tok.Text == "If":
		return c.translateIf()

	case tok.Category == token.KEY && tok.Text == "For":
		return c.translateFor()

	case tok.Category == token.KEY && tok.Text == "Do":
		return c.translateDo()

	case tok.Category == token.KEY && tok.Text == "While":
		return c.translateWhile()

	case tok.Category == token.KEY && tok.Text == "Sub":
		return c.translateSubOrFunction(false)

	case tok.Category == token.KEY && tok.Text == "Function":
		return c.translateSubOrFunction(true)

	case tok.Category == token.KEY && tok.Text == "Call":
		return c.translateCall()

	case tok.Category == token.KEY && tok.Text == "Select":
		return c.translateSelect()

	case tok.Category == token.EXIT:
		return c.translateExit()

	case tok.Category == token.KEY && tok.Text == "With":
		return c.translateWith()

	case tok.Category == token.KEY && tok.Text == "Type":
		return c.translateType()

	case tok.Category == token.PUNT:
		c.emitUntouched()
		l.residue = ""
		return nil

	case tok.Category == token.ONERROR:
		return c.translateOnError()

	case tok.Category == token.ID || (tok.Category == token.CHR && tok.Text == "."):
		return c.translateAssignmentOrCall()

	case tok.Category == token.TOSS:
		l.consume()
		return c.translateStatement()

	case tok.Category == token.KEY && tok.Text == "End":
		// Bare "End" (program termination) — no JS equivalent; surface as
		// UNTOUCHED rather than silently dropping a user statement.
		c.emitUntouched()
		l.residue = ""
		return nil

	default:
		c.emitUntouched()
		l.residue = ""
		return nil
	}
}

func (c *Converter) translateBlank() {
	comment := c.tu.current.Comment()
	if comment == "" {
		c.emitBlank()
		return
	}
	c.emit("// " + comment)
}
