package vbconv

import (
	"github.com/cwbudde/vba2js/internal/token"
)

// dimSpec is one parsed array dimension: upper is the JS-ready upper-bound
// expression (the only part kept, per spec.md §4.4); full is the original
// "a To b" text preserved as a comment when a lower bound was given.
type dimSpec struct {
	upper string
	full  string
}

// translateDeclaration handles Dim/ReDim/Global/Const per spec.md §4.4:
// "Dim/ReDim/Global/Const x [(dims)] [As [New] T] [= init], …".
func (c *Converter) translateDeclaration() error {
	l := c.tu.current
	kindTok, _, err := l.consume()
	if err != nil {
		return err
	}
	kind := kindTok.Text

	first := true
	for {
		if err := c.translateOneDeclarator(kind, first); err != nil {
			return err
		}
		first = false

		tok, ok, err := l.peek()
		if err != nil {
			return err
		}
		if ok && tok.Category == token.CHR && tok.Text == "," {
			l.consume()
			continue
		}
		break
	}
	return nil
}

func (c *Converter) translateOneDeclarator(kind string, first bool) error {
	l := c.tu.current

	nameTok, ok, err := l.peek()
	if err != nil {
		return err
	}
	if !ok || nameTok.Category != token.ID {
		c.emitUntouched()
		l.residue = ""
		return nil
	}
	l.consume()
	name := nameTok.Text

	var dims []dimSpec
	hasParen := false
	if tok, ok, _ := l.peek(); ok && tok.Category == token.CHR && tok.Text == "(" {
		hasParen = true
		dims, err = c.parseDimList(l)
		if err != nil {
			return err
		}
	}

	var typeName string
	hasNew := false
	if tok, ok, _ := l.peek(); ok && tok.Category == token.KEY && tok.Text == "As" {
		l.consume()
		if tok2, ok2, _ := l.peek(); ok2 && tok2.Category == token.OP && tok2.Text == "New" {
			l.consume()
			hasNew = true
		}
		if tok3, ok3, _ := l.peek(); ok3 && (tok3.Category == token.TYPE || tok3.Category == token.ID) {
			l.consume()
			typeName = tok3.Text
		}
	}

	var init string
	hasInit := false
	if tok, ok, _ := l.peek(); ok && tok.Category == token.OP && tok.Text == "=" {
		l.consume()
		init, err = c.expr(l)
		if err != nil {
			return err
		}
		hasInit = true
	}

	local := c.tu.subNestingValue > 0 && kind != "Global"

	switch {
	case hasParen:
		c.gs.RecordArray(name, local)
		c.emitArrayDeclaration(name, dims, typeName, kind, first)

	case hasNew:
		if c.tu.typeNames[fold(typeName)] {
			c.emitDeclLine("var "+name+" = new "+typeName+"();", first)
		} else {
			c.emitDeclLine("var "+name+"; // "+typeName, first)
		}

	default:
		line := "var " + name
		if hasInit {
			line += " = " + init
		}
		line += ";"
		if typeName != "" {
			line += " // " + typeName
		}
		c.emitDeclLine(line, first)
	}
	return nil
}

// emitDeclLine attaches the line's trailing end-of-line comment only to the
// first declarator emitted for a (possibly comma-separated) Dim line.
func (c *Converter) emitDeclLine(line string, first bool) {
	if first {
		c.emitWithTrailingComment(line)
		return
	}
	c.emit(line)
}

func (c *Converter) parseDimList(l *Line) ([]dimSpec, error) {
	l.consume() // "("
	var dims []dimSpec

	if tok, ok, _ := l.peek(); ok && tok.Category == token.CHR && tok.Text == ")" {
		l.consume()
		return dims, nil
	}

	for {
		d, err := c.parseDimItem(l)
		if err != nil {
			return nil, err
		}
		dims = append(dims, d)

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
	return dims, nil
}

// parseDimItem parses one dimension bound, keeping only the upper bound
// when a "lo To hi" range is given, per spec.md §4.4: "If a dimension is
// 'a To b', keep only the upper bound ... preserve the whole dim
// expression as a '/* a To b */' comment."
func (c *Converter) parseDimItem(l *Line) (dimSpec, error) {
	a, err := c.expr(l)
	if err != nil {
		return dimSpec{}, err
	}
	if tok, ok, _ := l.peek(); ok && tok.Category == token.KEY && tok.Text == "To" {
		l.consume()
		b, err := c.expr(l)
		if err != nil {
			return dimSpec{}, err
		}
		return dimSpec{upper: b, full: a + " To " + b}, nil
	}
	return dimSpec{upper: a}, nil
}

func (c *Converter) emitArrayDeclaration(name string, dims []dimSpec, typeName, kind string, first bool) {
	tag := ""
	if kind == "ReDim" {
		tag += " // ReDim decl"
	}

	if len(dims) == 0 {
		line := "var " + name + " = new Array();"
		if typeName != "" {
			line += " // " + typeName
		}
		c.emitDeclLine(line+tag, first)
		return
	}

	head := "var " + name + " = new Array(" + dims[0].upper + ");"
	if dims[0].full != "" {
		head += " /* " + dims[0].full + " */"
	}
	if typeName != "" {
		head += " // " + typeName
	}
	if len(dims) > 1 {
		head += " // multi-dim"
	}
	c.emitDeclLine(head+tag, first)

	if len(dims) > 1 {
		c.emitDimLoop(name, dims, nil, 0)
	}
}

func indexLetter(level int) string {
	return "_" + string(rune('a'+level))
}

// emitDimLoop emits the nested allocation loops for dimensions after the
// first, per spec.md §4.4's worked example: "a head new Array(dim0)
// followed by nested for (var _a = 0; _a < dim0; ++_a) { x[_a] = new
// Array(dim1); … } using fresh underscore-prefixed indices."
func (c *Converter) emitDimLoop(name string, dims []dimSpec, indices []string, level int) {
	idx := indexLetter(level)
	bound := dims[level].upper

	c.emit("for (var " + idx + " = 0; " + idx + " < " + bound + "; ++" + idx + ") {")
	c.indentIn()

	indices = append(indices, idx)
	target := name
	for _, ix := range indices {
		target += "[" + ix + "]"
	}
	nextBound := dims[level+1].upper
	c.emit(target + " = new Array(" + nextBound + ");")

	if level+2 < len(dims) {
		c.emitDimLoop(name, dims, indices, level+1)
	}

	c.indentOut()
	c.emit("}")
}

// translateType handles the "Type" record statement, per spec.md §4.4:
// emit a constructor function then, for each member, a prototype
// attachment.
func (c *Converter) translateType() error {
	l := c.tu.current
	l.consume() // "Type"

	nameTok, ok, err := l.peek()
	if err != nil {
		return err
	}
	if !ok || nameTok.Category != token.ID {
		c.emitUntouched()
		return nil
	}
	l.consume()
	typeName := nameTok.Text
	c.tu.typeNames[fold(typeName)] = true

	c.emit(typeName + " = function() {};")

	for {
		c.tu.advance()
		if c.atEOF() {
			return c.unexpectedEOF("Type")
		}
		cur := c.tu.current
		tok, ok, err := cur.peek()
		if err != nil {
			return err
		}
		if ok && tok.Category == token.ENDXX && tok.Text == "End Type" {
			cur.consume()
			return nil
		}
		if cur.IsBlank() {
			c.translateBlank()
			continue
		}
		if err := c.translateTypeMember(typeName); err != nil {
			return err
		}
	}
}

func (c *Converter) translateTypeMember(typeName string) error {
	l := c.tu.current
	nameTok, ok, err := l.peek()
	if err != nil {
		return err
	}
	if !ok || nameTok.Category != token.ID {
		c.emitUntouched()
		return nil
	}
	l.consume()
	memberName := nameTok.Text

	// Skip array dimensions on a member, if present; kept untranslated
	// since record-member arrays are rare and spec.md does not define
	// their shape.
	if tok, ok, _ := l.peek(); ok && tok.Category == token.CHR && tok.Text == "(" {
		c.balancedArgs(l)
	}

	var memberType string
	if tok, ok, _ := l.peek(); ok && tok.Category == token.KEY && tok.Text == "As" {
		l.consume()
		if tok2, ok2, _ := l.peek(); ok2 && (tok2.Category == token.TYPE || tok2.Category == token.ID) {
			l.consume()
			memberType = tok2.Text
		}
	}

	if memberType != "" && c.tu.typeNames[fold(memberType)] {
		c.emit(typeName + ".prototype." + memberName + " = new " + memberType + "();")
	} else {
		line := typeName + ".prototype." + memberName + ";"
		if memberType != "" {
			line += " // " + memberType
		}
		c.emit(line)
	}
	return nil
}
