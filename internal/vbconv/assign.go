package vbconv

import (
	"strings"

	"github.com/cwbudde/vba2js/internal/token"
)

// translateAssignmentOrCall handles the fallthrough statement form of
// spec.md §4.4: assignment when the peek past a name is "=", otherwise a
// bare positional call; a solitary "name :" is a VBA label and is emitted
// UNTOUCHED.
func (c *Converter) translateAssignmentOrCall() error {
	l := c.tu.current

	tok, ok, err := l.peek()
	if err != nil {
		return err
	}
	if !ok {
		c.emitUntouched()
		l.residue = ""
		return nil
	}

	if tok.Category == token.CHR && tok.Text == "." {
		l.consume()
		member, err := c.name(l)
		if err != nil {
			return err
		}
		target := "." + member
		if withTarget, open := c.gs.CurrentWith(); open {
			target = withTarget + "." + member
		}
		return c.finishAssignmentOrCall(target, l)
	}

	if tok.Category == token.ID {
		if c.isLabel(l) {
			c.emitUntouched()
			l.residue = ""
			return nil
		}
	}

	target, err := c.name(l)
	if err != nil {
		return err
	}
	return c.finishAssignmentOrCall(target, l)
}

// isLabel reports whether the next name is directly followed by ":" — a VBA
// line label; the caller keeps the whole line, including anything after
// the ":", UNTOUCHED per spec.md §4.4. It never consumes on a false result.
func (c *Converter) isLabel(l *Line) bool {
	savedResidue, savedPeek := l.residue, l.peekCount
	l.consume() // name
	tok, ok, _ := l.peek()
	isLabel := ok && tok.Category == token.CHR && tok.Text == ":"
	l.residue, l.peekCount = savedResidue, savedPeek
	return isLabel
}

func (c *Converter) finishAssignmentOrCall(target string, l *Line) error {
	if tok, ok, _ := l.peek(); ok && tok.Category == token.OP && tok.Text == "=" {
		l.consume()
		rhs, err := c.translateRHS(target, l)
		if err != nil {
			return err
		}
		if c.tu.functionName != "" && fold(target) == fold(c.tu.functionName) {
			target = "_" + target
		}
		c.emitWithTrailingComment(target + " = " + rhs + ";")
		return nil
	}

	if tok, ok, _ := l.peek(); ok && isArgStart(tok) {
		args, err := c.gatherCallArgs(l)
		if err != nil {
			return err
		}
		c.emitWithTrailingComment(target + "(" + strings.Join(args, ", ") + ");")
		return nil
	}

	c.emitWithTrailingComment(target + ";")
	return nil
}

// translateRHS parses an assignment's right-hand side, lifting a bare
// "Array(...)" call into "new Array(...)" and recording target as an
// array, per spec.md §4.4.
func (c *Converter) translateRHS(target string, l *Line) (string, error) {
	rhs, err := c.expr(l)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(rhs, "Array(") {
		rhs = "new " + rhs
		c.gs.RecordArray(target, c.tu.subNestingValue > 0)
	}
	return rhs, nil
}

// gatherCallArgs gathers space/comma-separated positional call arguments,
// per spec.md §4.4's implicit-Call form.
func (c *Converter) gatherCallArgs(l *Line) ([]string, error) {
	var args []string
	for {
		tok, ok, err := l.peek()
		if err != nil {
			return nil, err
		}
		if !ok || !isArgStart(tok) {
			break
		}
		a, err := c.expr(l)
		if err != nil {
			return nil, err
		}
		args = append(args, a)

		tok2, ok2, err := l.peek()
		if err != nil {
			return nil, err
		}
		if ok2 && tok2.Category == token.CHR && tok2.Text == "," {
			l.consume()
			continue
		}
		break
	}
	return args, nil
}

func isArgStart(tok token.Token) bool {
	switch tok.Category {
	case token.ID, token.NUM, token.STR, token.HEX, token.DATE, token.TYPE:
		return true
	}
	return tok.Category == token.OP && tok.Text == "-"
}
