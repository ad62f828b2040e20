package vbconv

import (
	"strings"

	"github.com/cwbudde/vba2js/internal/token"
)

// translateIf handles "If cond Then" through "End If", chaining ElseIf/Else
// per spec.md §4.4: "chain ElseIf … Then into } else if (…) {; Else into
// } else {; close with }."
func (c *Converter) translateIf() error {
	l := c.tu.current
	l.consume() // If
	cond, err := c.expr(l)
	if err != nil {
		return err
	}
	l.eat("Then")
	c.emitWithTrailingComment("if (" + cond + ") {")
	c.indentIn()

	for {
		c.tu.advance()
		if c.atEOF() {
			return c.unexpectedEOF("If")
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
		switch {
		case ok && tok.Category == token.KEY && tok.Text == "ElseIf":
			cur.consume()
			cond2, err := c.expr(cur)
			if err != nil {
				return err
			}
			cur.eat("Then")
			c.indentOut()
			c.emitWithTrailingComment("} else if (" + cond2 + ") {")
			c.indentIn()

		case ok && tok.Category == token.KEY && tok.Text == "Else":
			cur.consume()
			c.indentOut()
			c.emitWithTrailingComment("} else {")
			c.indentIn()

		case ok && tok.Category == token.ENDXX && tok.Text == "End If":
			cur.consume()
			c.indentOut()
			c.emit("}")
			return nil

		default:
			if err := c.translateStatement(); err != nil {
				return err
			}
		}
	}
}

// translateFor handles numeric For and delegates to translateForEach for
// "For Each", per spec.md §4.4.
func (c *Converter) translateFor() error {
	l := c.tu.current
	l.consume() // For

	if tok, ok, _ := l.peek(); ok && tok.Category == token.KEY && tok.Text == "Each" {
		return c.translateForEach()
	}

	varTok, ok, err := l.peek()
	if err != nil {
		return err
	}
	if !ok {
		return c.unexpectedEOF("For")
	}
	l.consume()
	varName := varTok.Text

	l.eat("=")
	start, err := c.expr(l)
	if err != nil {
		return err
	}

	dirTok, _, _ := l.peek()
	downto := dirTok.Text == "Downto"
	l.consume() // To | Downto

	end, err := c.expr(l)
	if err != nil {
		return err
	}

	step := ""
	hasStep := false
	if tok, ok, _ := l.peek(); ok && tok.Category == token.KEY && tok.Text == "Step" {
		l.consume()
		step, err = c.expr(l)
		if err != nil {
			return err
		}
		hasStep = true
	}

	// stepNorm strips the spacing the expression renderer inserts around a
	// unary sign (JSOperator["-"] is " - ") so "Step -1" can be compared
	// against the literal "-1" below.
	stepNorm := strings.ReplaceAll(strings.TrimSpace(step), " ", "")

	rel, op := "<=", "+="
	if downto {
		rel, op = ">=", "-="
	}
	if hasStep && !downto && strings.HasPrefix(stepNorm, "-") {
		rel = ">="
	}

	var incr string
	switch {
	case !hasStep || stepNorm == "1":
		if op == "+=" {
			incr = "++" + varName
		} else {
			incr = "--" + varName
		}
	case stepNorm == "-1":
		if op == "+=" {
			incr = "--" + varName
		} else {
			incr = "++" + varName
		}
	default:
		incr = varName + " " + op + " " + step
	}

	header := "for (var " + varName + " = " + start + "; " + varName + " " + rel + " " + end + "; " + incr + ") {"
	c.emitWithTrailingComment(header)
	c.indentIn()
	return c.translateNextTerminatedBody("For")
}

// translateForEach handles "For Each v [As T] In expr" … "Next [v]", per
// spec.md §4.4: "for (var v in expr) { … }, with any As T skipped."
func (c *Converter) translateForEach() error {
	l := c.tu.current
	l.consume() // Each

	varTok, ok, err := l.peek()
	if err != nil {
		return err
	}
	if !ok {
		return c.unexpectedEOF("For Each")
	}
	l.consume()
	varName := varTok.Text

	if tok, ok, _ := l.peek(); ok && tok.Category == token.KEY && tok.Text == "As" {
		l.consume()
		l.consume() // type name
	}
	l.eat("In")

	collection, err := c.expr(l)
	if err != nil {
		return err
	}
	c.emitWithTrailingComment("for (var " + varName + " in " + collection + ") {")
	c.indentIn()
	return c.translateNextTerminatedBody("For Each")
}

// translateNextTerminatedBody runs the shared body loop for For/For Each,
// terminated by a bare "Next" that optionally repeats the loop variable.
func (c *Converter) translateNextTerminatedBody(construct string) error {
	for {
		c.tu.advance()
		if c.atEOF() {
			return c.unexpectedEOF(construct)
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
		if ok && tok.Category == token.KEY && tok.Text == "Next" {
			cur.consume()
			if t2, ok2, _ := cur.peek(); ok2 && t2.Category == token.ID {
				cur.consume()
			}
			c.indentOut()
			c.emit("}")
			return nil
		}
		if err := c.translateStatement(); err != nil {
			return err
		}
	}
}

// translateDo handles pre-test and post-test Do/Loop forms, per spec.md
// §4.4: "Pre-test Until e becomes while (!(e)), headless becomes while
// (1). Post-test While e becomes a trailing if (!(e)) break;; post-test
// Until e becomes if (e) break;."
func (c *Converter) translateDo() error {
	l := c.tu.current
	l.consume() // Do

	header := "while (1) {"
	if tok, ok, _ := l.peek(); ok && tok.Category == token.KEY && tok.Text == "While" {
		l.consume()
		cond, err := c.expr(l)
		if err != nil {
			return err
		}
		header = "while (" + cond + ") {"
	} else if ok && tok.Category == token.KEY && tok.Text == "Until" {
		l.consume()
		cond, err := c.expr(l)
		if err != nil {
			return err
		}
		header = "while (!(" + cond + ")) {"
	}
	c.emitWithTrailingComment(header)
	c.indentIn()

	for {
		c.tu.advance()
		if c.atEOF() {
			return c.unexpectedEOF("Do")
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
		if ok && tok.Category == token.KEY && tok.Text == "Loop" {
			cur.consume()
			postTok, ok2, _ := cur.peek()
			switch {
			case ok2 && postTok.Category == token.KEY && postTok.Text == "While":
				cur.consume()
				cond, err := c.expr(cur)
				if err != nil {
					return err
				}
				c.emit("if (!(" + cond + ")) break;")
			case ok2 && postTok.Category == token.KEY && postTok.Text == "Until":
				cur.consume()
				cond, err := c.expr(cur)
				if err != nil {
					return err
				}
				c.emit("if (" + cond + ") break;")
			}
			c.indentOut()
			c.emit("}")
			return nil
		}
		if err := c.translateStatement(); err != nil {
			return err
		}
	}
}

// translateWhile handles "While cond" … "Wend" or "End While".
func (c *Converter) translateWhile() error {
	l := c.tu.current
	l.consume() // While
	cond, err := c.expr(l)
	if err != nil {
		return err
	}
	c.emitWithTrailingComment("while (" + cond + ") {")
	c.indentIn()

	for {
		c.tu.advance()
		if c.atEOF() {
			return c.unexpectedEOF("While")
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
		isWend := tok.Category == token.KEY && tok.Text == "Wend"
		isEndWhile := tok.Category == token.ENDXX && tok.Text == "End While"
		if ok && (isWend || isEndWhile) {
			cur.consume()
			c.indentOut()
			c.emit("}")
			return nil
		}
		if err := c.translateStatement(); err != nil {
			return err
		}
	}
}

var caseRelOps = map[string]bool{"=": true, "<>": true, "<": true, "<=": true, ">": true, ">=": true}

// translateSelect handles "Select Case e" … "End Select", per spec.md
// §4.4's if/else-if chain rewrite. The teacher-flagged single-closing-
// brace quirk (spec.md §9) is resolved here by emitting a correctly
// balanced chain — see DESIGN.md for the reasoning; no reference
// implementation survived to replicate bit-for-bit.
func (c *Converter) translateSelect() error {
	l := c.tu.current
	l.consume() // Select
	l.eat("Case")
	e, err := c.expr(l)
	if err != nil {
		return err
	}

	branchOpen := false
	for {
		c.tu.advance()
		if c.atEOF() {
			return c.unexpectedEOF("Select Case")
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

		if ok && tok.Category == token.ENDXX && tok.Text == "End Select" {
			cur.consume()
			if branchOpen {
				c.indentOut()
			}
			c.emit("}")
			return nil
		}

		if ok && tok.Category == token.KEY && tok.Text == "Case" {
			cur.consume()
			if tok2, ok2, _ := cur.peek(); ok2 && tok2.Category == token.KEY && tok2.Text == "Else" {
				cur.consume()
				c.indentOut()
				c.emitWithTrailingComment("} else {")
				c.indentIn()
			} else {
				cond, err := c.translateCaseItems(e, cur)
				if err != nil {
					return err
				}
				if branchOpen {
					c.indentOut()
					c.emitWithTrailingComment("} else if (" + cond + ") {")
				} else {
					c.emitWithTrailingComment("if (" + cond + ") {")
					branchOpen = true
				}
				c.indentIn()
			}

			if tok3, ok3, _ := cur.peek(); ok3 && tok3.Category == token.CHR && tok3.Text == ":" {
				cur.consume()
				if !cur.IsBlank() {
					if err := c.translateStatement(); err != nil {
						return err
					}
				}
			}
			continue
		}

		if err := c.translateStatement(); err != nil {
			return err
		}
	}
}

// translateCaseItems parses the comma-separated item list of one Case
// line, joining the JS conditions with " || ".
func (c *Converter) translateCaseItems(e string, l *Line) (string, error) {
	var items []string
	for {
		item, err := c.translateCaseItem(e, l)
		if err != nil {
			return "", err
		}
		items = append(items, item)

		tok, ok, err := l.peek()
		if err != nil {
			return "", err
		}
		if ok && tok.Category == token.CHR && tok.Text == "," {
			l.consume()
			continue
		}
		break
	}
	return strings.Join(items, " || "), nil
}

// translateCaseItem parses one Case item, per spec.md §4.4's three forms.
func (c *Converter) translateCaseItem(e string, l *Line) (string, error) {
	if tok, ok, _ := l.peek(); ok && tok.Category == token.OP && tok.Text == "Is" {
		l.consume()
		opTok, _, _ := l.peek()
		l.consume()
		rhs, err := c.expr(l)
		if err != nil {
			return "", err
		}
		return e + token.JSOperator[opTok.Text] + rhs, nil
	}

	if tok, ok, _ := l.peek(); ok && tok.Category == token.OP && caseRelOps[tok.Text] {
		l.consume()
		rhs, err := c.expr(l)
		if err != nil {
			return "", err
		}
		return e + token.JSOperator[tok.Text] + rhs, nil
	}

	lhs, err := c.expr(l)
	if err != nil {
		return "", err
	}
	if tok, ok, _ := l.peek(); ok && tok.Category == token.KEY && tok.Text == "To" {
		l.consume()
		hi, err := c.expr(l)
		if err != nil {
			return "", err
		}
		return e + " >= " + lhs + " && " + e + " <= " + hi, nil
	}
	return e + " == " + lhs, nil
}

// translateWith handles "With target" … "End With", per spec.md §4.4:
// target stays implicit; the name producer prefixes .member occurrences.
func (c *Converter) translateWith() error {
	l := c.tu.current
	l.consume() // With
	target, err := c.expr(l)
	if err != nil {
		return err
	}
	c.emitWithTrailingComment("// With " + target)
	c.gs.PushWith(target)

	for {
		c.tu.advance()
		if c.atEOF() {
			return c.unexpectedEOF("With")
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
		if ok && tok.Category == token.ENDXX && tok.Text == "End With" {
			cur.consume()
			return c.gs.PopWith(c.tu.lineNumber(), cur.Original())
		}
		if err := c.translateStatement(); err != nil {
			return err
		}
	}
}
