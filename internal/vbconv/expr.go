package vbconv

import (
	"strings"

	"github.com/cwbudde/vba2js/internal/token"
)

// expr implements the lowest-precedence rule of spec.md §4.2's expression
// grammar: "expr := arg [ ':=' logic ]". A trailing ":=" is VBA named-
// argument syntax and is kept verbatim rather than rewritten, since it is
// only ever reached inside a call's argument list.
func (c *Converter) expr(l *Line) (string, error) {
	left, err := c.arg(l)
	if err != nil {
		return "", err
	}
	tok, ok, err := l.peek()
	if err != nil {
		return "", err
	}
	if ok && tok.Category == token.OP && tok.Text == ":=" {
		l.consume()
		right, err := c.logic(l)
		if err != nil {
			return "", err
		}
		return left + " := " + right, nil
	}
	return left, nil
}

var logicalOps = map[string]bool{"And": true, "Or": true, "Xor": true}

// arg implements "arg := logic { LogicalOp logic }".
func (c *Converter) arg(l *Line) (string, error) {
	left, err := c.logic(l)
	if err != nil {
		return "", err
	}
	for {
		tok, ok, err := l.peek()
		if err != nil {
			return "", err
		}
		if !ok || tok.Category != token.OP || !logicalOps[tok.Text] {
			break
		}
		l.consume()
		right, err := c.logic(l)
		if err != nil {
			return "", err
		}
		left = left + token.JSOperator[tok.Text] + right
	}
	return left, nil
}

// logic implements "logic := [ 'Not' {'Not'} ] notop". Not is parenthesized
// on recursion, per spec.md.
func (c *Converter) logic(l *Line) (string, error) {
	tok, ok, err := l.peek()
	if err != nil {
		return "", err
	}
	if ok && tok.Category == token.OP && tok.Text == "Not" {
		l.consume()
		inner, err := c.logic(l)
		if err != nil {
			return "", err
		}
		return "(!(" + inner + "))", nil
	}
	return c.notop(l)
}

var relOps = map[string]bool{"=": true, "<>": true, "<": true, "<=": true, ">": true, ">=": true, "Is": true, "IsNot": true}

// notop implements "notop := compare { RelOp compare }" including the
// Like-helper special case.
func (c *Converter) notop(l *Line) (string, error) {
	left, err := c.compare(l)
	if err != nil {
		return "", err
	}
	for {
		tok, ok, err := l.peek()
		if err != nil {
			return "", err
		}
		if !ok {
			break
		}
		if tok.Category == token.KEY && tok.Text == "Like" {
			l.consume()
			right, err := c.compare(l)
			if err != nil {
				return "", err
			}
			left = "Like(" + left + ", " + right + ")"
			continue
		}
		if tok.Category == token.OP && relOps[tok.Text] {
			l.consume()
			right, err := c.compare(l)
			if err != nil {
				return "", err
			}
			left = left + token.JSOperator[tok.Text] + right
			continue
		}
		break
	}
	return left, nil
}

var arithOps = map[string]bool{"+": true, "-": true, "*": true, "/": true, "\\": true, "Mod": true, "&": true}

// compare implements "compare := unary { ArithOp unary }".
func (c *Converter) compare(l *Line) (string, error) {
	left, err := c.unary(l)
	if err != nil {
		return "", err
	}
	for {
		tok, ok, err := l.peek()
		if err != nil {
			return "", err
		}
		if !ok || tok.Category != token.OP || !arithOps[tok.Text] {
			break
		}
		l.consume()
		right, err := c.unary(l)
		if err != nil {
			return "", err
		}
		left = left + token.JSOperator[tok.Text] + right
	}
	return left, nil
}

// unary implements "unary := {'+'|'-'} powop".
func (c *Converter) unary(l *Line) (string, error) {
	var prefix strings.Builder
	for {
		tok, ok, err := l.peek()
		if err != nil {
			return "", err
		}
		if !ok || tok.Category != token.OP || (tok.Text != "+" && tok.Text != "-") {
			break
		}
		l.consume()
		prefix.WriteString(token.JSOperator[tok.Text])
	}
	val, err := c.powop(l)
	if err != nil {
		return "", err
	}
	return prefix.String() + val, nil
}

// powop implements "powop := factor { '^' powop }", right-associative via
// recursion, rewriting "^" to an exp() helper call.
func (c *Converter) powop(l *Line) (string, error) {
	left, err := c.factor(l)
	if err != nil {
		return "", err
	}
	tok, ok, err := l.peek()
	if err != nil {
		return "", err
	}
	if ok && tok.Category == token.OP && tok.Text == "^" {
		l.consume()
		right, err := c.powop(l)
		if err != nil {
			return "", err
		}
		return "exp(" + left + ", " + right + ")", nil
	}
	return left, nil
}

// factor implements "factor := name | NUM | STR | '.' name | 'Not' logic |
// '(' expr ')' | <token>".
func (c *Converter) factor(l *Line) (string, error) {
	tok, ok, err := l.peek()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}

	switch {
	case tok.Category == token.CHR && tok.Text == "(":
		l.consume()
		inner, err := c.expr(l)
		if err != nil {
			return "", err
		}
		l.eat(")")
		return "(" + inner + ")", nil

	case tok.Category == token.CHR && tok.Text == ".":
		l.consume()
		member, err := c.name(l)
		if err != nil {
			return "", err
		}
		if target, open := c.gs.CurrentWith(); open {
			return target + "." + member, nil
		}
		return "." + member, nil

	case tok.Category == token.OP && tok.Text == "Not":
		l.consume()
		inner, err := c.logic(l)
		if err != nil {
			return "", err
		}
		return "!(" + inner + ")", nil

	case tok.Category == token.OP && tok.Text == "New":
		l.consume()
		rest, err := c.factor(l)
		if err != nil {
			return "", err
		}
		return "new " + rest, nil

	case tok.Category == token.NUM || tok.Category == token.HEX ||
		tok.Category == token.DATE || tok.Category == token.STR:
		l.consume()
		return tok.Text, nil

	case tok.Category == token.ID || tok.Category == token.TYPE ||
		(tok.Category == token.KEY && isNameLikeKeyword(tok.Text)):
		return c.name(l)

	default:
		l.consume()
		return tok.Text, nil
	}
}

func isNameLikeKeyword(text string) bool {
	switch text {
	case "Me", "True", "False", "Nil", "Nothing", "Null", "Empty":
		return true
	}
	return false
}

// name implements the name-production rule of spec.md §4.2: an ID followed
// by "(...)" consumes a balanced-parenthesis expression list; if the
// identifier is a known array name, the outer "(...)" becomes "[...]" with
// commas replaced by "][" (only when no inner "(" is present). Chained
// ".member" and a trailing second "(...)" are absorbed into the same name.
func (c *Converter) name(l *Line) (string, error) {
	tok, ok, err := l.peek()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	l.consume()
	out := tok.Text
	baseIdent := tok.Text

	for {
		next, ok, err := l.peek()
		if err != nil {
			return "", err
		}
		if !ok {
			break
		}
		switch {
		case next.Category == token.CHR && next.Text == "(":
			args, hasNestedParen, err := c.balancedArgs(l)
			if err != nil {
				return "", err
			}
			if baseIdent != "" && c.gs.IsArray(baseIdent) && !hasNestedParen {
				if len(args) == 0 {
					out += "[]"
				} else {
					out += "[" + strings.Join(args, "][") + "]"
				}
			} else {
				out += "(" + strings.Join(args, ", ") + ")"
			}
			baseIdent = ""
		case next.Category == token.CHR && next.Text == ".":
			l.consume()
			member, err := c.name(l)
			if err != nil {
				return "", err
			}
			out += "." + member
			baseIdent = ""
		default:
			return out, nil
		}
	}
	return out, nil
}

// balancedArgs consumes a "(...)" expression list and reports whether any
// argument's rendered text contains a nested "(", per spec.md §9's note on
// setBrackets' deliberately limited scope.
func (c *Converter) balancedArgs(l *Line) ([]string, bool, error) {
	l.consume() // "("
	var args []string
	hasNested := false

	tok, ok, err := l.peek()
	if err != nil {
		return nil, false, err
	}
	if ok && tok.Category == token.CHR && tok.Text == ")" {
		l.consume()
		return args, false, nil
	}

	for {
		a, err := c.expr(l)
		if err != nil {
			return nil, false, err
		}
		if strings.Contains(a, "(") {
			hasNested = true
		}
		args = append(args, a)

		tok, ok, err := l.peek()
		if err != nil {
			return nil, false, err
		}
		if ok && tok.Category == token.CHR && tok.Text == "," {
			l.consume()
			continue
		}
		break
	}
	l.eat(")")
	return args, hasNested, nil
}
