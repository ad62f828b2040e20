package vbconv

import (
	"strings"

	"github.com/cwbudde/vba2js/internal/token"
)

// translateSubOrFunction handles "Sub name(args)" / "Function name(args)
// As T", per spec.md §4.4: functions get a synthetic "_name" return
// placeholder, initialized to "" and returned at the closing brace.
func (c *Converter) translateSubOrFunction(isFunction bool) error {
	l := c.tu.current
	l.consume() // Sub | Function

	nameTok, ok, err := l.peek()
	if err != nil {
		return err
	}
	if !ok {
		return c.unexpectedEOF("Sub/Function")
	}
	l.consume()
	name := nameTok.Text

	args, err := c.parseParamList(l)
	if err != nil {
		return err
	}

	if isFunction {
		if tok, ok, _ := l.peek(); ok && tok.Category == token.KEY && tok.Text == "As" {
			l.consume()
			l.consume() // return type, dropped
		}
	}

	c.emitWithTrailingComment("function " + name + "(" + strings.Join(args, ", ") + ") {")
	c.indentIn()

	prevFunctionName := c.tu.functionName
	c.tu.functionName = name
	c.tu.subNestingValue++

	if isFunction {
		c.emit("var _" + name + " = \"\";")
	}

	terminator := "End Sub"
	if isFunction {
		terminator = "End Function"
	}

	for {
		c.tu.advance()
		if c.atEOF() {
			return c.unexpectedEOF(terminator)
		}
		cur := c.tu.current
		if cur.IsBlank() {
			c.translateBlank()
			continue
		}
		tok, ok, err := cur.peek()
		if err != nil {
			return err
		}
		if ok && tok.Category == token.ENDXX && tok.Text == terminator {
			cur.consume()
			break
		}
		if err := c.translateStatement(); err != nil {
			return err
		}
	}

	if isFunction {
		c.emit("return _" + name + ";")
	}
	c.indentOut()
	c.emit("}")

	c.tu.subNestingValue--
	c.tu.functionName = prevFunctionName
	if c.tu.subNestingValue == 0 {
		c.gs.ClearLocals()
	}
	return nil
}

// parseParamList parses a "(args)" parameter list. Each parameter drops
// ByVal, and keeps ByRef/Optional/"= default" as "/* ... */" comments, per
// spec.md §4.4.
func (c *Converter) parseParamList(l *Line) ([]string, error) {
	var out []string

	if tok, ok, _ := l.peek(); !ok || tok.Category != token.CHR || tok.Text != "(" {
		return out, nil
	}
	l.consume() // "("

	if tok, ok, _ := l.peek(); ok && tok.Category == token.CHR && tok.Text == ")" {
		l.consume()
		return out, nil
	}

	for {
		p, err := c.parseOneParam(l)
		if err != nil {
			return nil, err
		}
		out = append(out, p)

		tok, ok, err := l.peek()
		if err != nil {
			return nil, err
		}
		if ok && tok.Category == token.CHR && tok.Text == "," {
			l.consume()
			continue
		}
		break
	}
	l.eat(")")
	return out, nil
}

func (c *Converter) parseOneParam(l *Line) (string, error) {
	var tags []string
	for {
		tok, ok, err := l.peek()
		if err != nil {
			return "", err
		}
		if !ok || tok.Category != token.KEY {
			break
		}
		switch tok.Text {
		case "ByVal":
			l.consume()
			continue
		case "ByRef":
			l.consume()
			tags = append(tags, "ByRef")
			continue
		case "Optional":
			l.consume()
			tags = append(tags, "Optional")
			continue
		}
		break
	}

	nameTok, ok, err := l.peek()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	l.consume()
	name := nameTok.Text

	if tok, ok, _ := l.peek(); ok && tok.Category == token.CHR && tok.Text == "(" {
		l.consume()
		l.eat(")")
		c.gs.RecordArray(name, true)
	}

	if tok, ok, _ := l.peek(); ok && tok.Category == token.KEY && tok.Text == "As" {
		l.consume()
		l.consume() // param type, dropped
	}

	var defaultExpr string
	hasDefault := false
	if tok, ok, _ := l.peek(); ok && tok.Category == token.OP && tok.Text == "=" {
		l.consume()
		defaultExpr, err = c.expr(l)
		if err != nil {
			return "", err
		}
		hasDefault = true
	}

	out := name
	if len(tags) > 0 {
		out = "/*" + strings.Join(tags, " ") + "*/" + out
	}
	if hasDefault {
		out += " /* = " + defaultExpr + " */"
	}
	return out, nil
}

// translateCall handles explicit "Call name(args)" / "Call name arg1,
// arg2", per spec.md §4.4.
func (c *Converter) translateCall() error {
	l := c.tu.current
	l.consume() // Call

	target, err := c.name(l)
	if err != nil {
		return err
	}

	if strings.HasSuffix(target, ")") {
		c.emitWithTrailingComment(target + ";")
		return nil
	}

	args, err := c.gatherCallArgs(l)
	if err != nil {
		return err
	}
	c.emitWithTrailingComment(target + "(" + strings.Join(args, ", ") + ");")
	return nil
}

// translateExit handles the EXIT token category, per spec.md §4.4's "Exit
// -> break or return [_funcname]" table entry.
func (c *Converter) translateExit() error {
	l := c.tu.current
	tok, _, err := l.consume()
	if err != nil {
		return err
	}
	switch tok.Text {
	case "Exit For", "Exit Do":
		c.emitWithTrailingComment("break;")
	case "Exit Sub":
		c.emitWithTrailingComment("return;")
	case "Exit Function", "Exit Property":
		c.emitWithTrailingComment("return _" + c.tu.functionName + ";")
	default:
		c.emitUntouched()
		l.residue = ""
	}
	return nil
}
