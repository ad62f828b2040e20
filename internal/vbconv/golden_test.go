package vbconv

import (
	"strings"
	"testing"
)

// squash removes all whitespace, so comparisons are immune to the exact
// padding the expression renderer inserts around operators (e.g. unary "-"
// renders as " - ").
func squash(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// containsAll fails the test unless every want substring appears in out
// once both sides are whitespace-squashed, matching spec.md §8's
// "whitespace-insensitive" end-to-end scenarios.
func containsAll(t *testing.T, out string, wants ...string) {
	t.Helper()
	squashed := squash(out)
	for _, w := range wants {
		if !strings.Contains(squashed, squash(w)) {
			t.Fatalf("output missing %q\n--- got ---\n%s", w, out)
		}
	}
}

func TestScenario_ScalarDim(t *testing.T) {
	out, err := Translate([]string{"Dim x As Integer"})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	containsAll(t, out, "var x;", "// Integer")
}

func TestScenario_MultiDimArray(t *testing.T) {
	out, err := Translate([]string{"Dim a(3, 2) As Double"})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	containsAll(t, out,
		"var a = new Array(3);", "// Double", "// multi-dim",
		"for (var _a = 0; _a < 3; ++_a) {",
		"a[_a] = new Array(2);",
	)
}

func TestScenario_IfElseIfElse(t *testing.T) {
	lines := []string{
		"If x > 0 Then",
		"  y = 1",
		"ElseIf x = 0 Then",
		"  y = 0",
		"Else",
		"  y = -1",
		"End If",
	}
	out, err := Translate(lines)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	containsAll(t, out,
		"if (x > 0) {", "y = 1;",
		"} else if (x == 0) {", "y = 0;",
		"} else {", "y = -1;",
	)
	if strings.Count(out, "}") != strings.Count(out, "{") {
		t.Fatalf("unbalanced braces:\n%s", out)
	}
}

func TestScenario_ForDowntoStep(t *testing.T) {
	lines := []string{
		"For i = 10 To 1 Step -1",
		"  x = i",
		"Next",
	}
	out, err := Translate(lines)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	containsAll(t, out, "for (var i = 10; i >= 1; --i) {", "x = i;")
}

func TestScenario_SelectCase(t *testing.T) {
	lines := []string{
		"Select Case n",
		`  Case 1, 2: x = "a"`,
		"  Case 3 To 5",
		`    x = "b"`,
		"  Case Else",
		`    x = "c"`,
		"End Select",
	}
	out, err := Translate(lines)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	containsAll(t, out,
		"if (n == 1 || n == 2) {",
		`x = "a";`,
		"} else if (n >= 3 && n <= 5) {",
		`x = "b";`,
		"} else {",
		`x = "c";`,
	)
	if strings.Count(out, "}") != strings.Count(out, "{") {
		t.Fatalf("unbalanced braces:\n%s", out)
	}
}

func TestScenario_FunctionByValByRef(t *testing.T) {
	lines := []string{
		"Function Add(ByVal a, ByRef b) As Double",
		"Add = a + b",
		"End Function",
	}
	out, err := Translate(lines)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	containsAll(t, out,
		"function Add(a, /*ByRef*/b) {",
		`var _Add = "";`,
		"_Add = a + b;",
		"return _Add;",
	)
}

func TestIndentationBalancedAtEOF(t *testing.T) {
	lines := []string{
		"Sub Foo()",
		"  If x > 0 Then",
		"    y = 1",
		"  End If",
		"End Sub",
	}
	out, err := Translate(lines)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if strings.Count(out, "{") != strings.Count(out, "}") {
		t.Fatalf("unbalanced braces at EOF:\n%s", out)
	}
}

func TestArrayNameClearedAfterSubReturns(t *testing.T) {
	lines := []string{
		"Sub Foo()",
		"  Dim a(3) As Integer",
		"  a(0) = 1",
		"End Sub",
		"b = a(0)",
	}
	out, err := Translate(lines)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	// a(0) inside Foo is a known local array, so it becomes a[0]; once Foo
	// returns, "a" is forgotten and the trailing call-form a(0) survives as
	// a plain call rather than an index.
	containsAll(t, out, "a[0] = 1;", "b = a(0);")
}

func TestWithStackRestoredAfterEndWith(t *testing.T) {
	lines := []string{
		"With Range(\"A1\")",
		"  .Value = 1",
		"End With",
		".Value = 2",
	}
	out, err := Translate(lines)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	containsAll(t, out, `Range("A1").Value = 1;`)
	// Once the With closes, a bare ".Value" has no active target to prefix
	// and is emitted as a literal ".Value" member assignment.
	containsAll(t, out, ".Value = 2;")
}

func TestContinuationMerging(t *testing.T) {
	lines := []string{
		"Dim x As _",
		"Integer",
	}
	out, err := Translate(lines)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	containsAll(t, out, "var x;", "// Integer")
}

func TestOneLineIfExpansion(t *testing.T) {
	out, err := Translate([]string{`If x > 0 Then y = 1 Else y = -1`})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if strings.Count(out, "else") != 1 {
		t.Fatalf("expected exactly one else branch:\n%s", out)
	}
	containsAll(t, out, "if (x > 0) {", "y = 1;", "} else {", "y = -1;")
}

func TestWhileWend(t *testing.T) {
	lines := []string{"While x < 10", "  x = x + 1", "Wend"}
	out, err := Translate(lines)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	containsAll(t, out, "while (x < 10) {", "x = x + 1;", "}")
	if strings.Count(out, "{") != strings.Count(out, "}") {
		t.Fatalf("unbalanced braces:\n%s", out)
	}
}

func TestWhileEndWhile(t *testing.T) {
	lines := []string{"While x < 10", "  x = x + 1", "End While"}
	out, err := Translate(lines)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	containsAll(t, out, "while (x < 10) {", "x = x + 1;", "}")
	if strings.Count(out, "{") != strings.Count(out, "}") {
		t.Fatalf("unbalanced braces:\n%s", out)
	}
}
