package token

import "testing"

func TestClassifyKeywordsAndCompounds(t *testing.T) {
	tests := []struct {
		input    string
		wantCat  Category
		wantText string
	}{
		{"If x", KEY, "If"},
		{"End If", ENDXX, "End If"},
		{"End Sub", ENDXX, "End Sub"},
		{"Exit Function", EXIT, "Exit Function"},
		{"On Error Resume Next", ONERROR, "On Error Resume Next"},
		{"On Error GoTo 0", ONERROR, "On Error GoTo 0"},
		{"On Error GoTo handler", ONERROR, "On Error GoTo"},
		{"Integer", TYPE, "Integer"},
		{"Public Sub", TOSS, "Public"},
		{"Attribute VB_Name", PUNT, "Attribute"},
		{"And y", OP, "And"},
		{"myVar", ID, "myVar"},
	}

	for i, tt := range tests {
		tok, _, ok := Classify(tt.input)
		if !ok {
			t.Fatalf("tests[%d]: Classify(%q) did not match", i, tt.input)
		}
		if tok.Category != tt.wantCat || tok.Text != tt.wantText {
			t.Fatalf("tests[%d]: Classify(%q) = (%s, %q), want (%s, %q)",
				i, tt.input, tok.Category, tok.Text, tt.wantCat, tt.wantText)
		}
	}
}

func TestClassifyOperatorOrdering(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"<> x", "<>"},
		{"<= x", "<="},
		{">= x", ">="},
		{"< x", "<"},
		{"> x", ">"},
		{"= x", "="},
		{":= x", ":="},
	}

	for i, tt := range tests {
		tok, _, ok := Classify(tt.input)
		if !ok || tok.Text != tt.want {
			t.Fatalf("tests[%d]: Classify(%q) = %q, want %q", i, tt.input, tok.Text, tt.want)
		}
	}
}

func TestClassifyLiterals(t *testing.T) {
	// Classify's STR pattern matches the already-canonicalized form that
	// Line.splitCommentAndCanonicalizeStrings produces; VBA's doubled-quote
	// escaping ("" -> embedded ") happens there, before tokens ever reach
	// Classify, so the input here uses the post-canonicalization backslash
	// escape rather than raw VBA source text.
	tok, n, ok := Classify(`"it\"s"`)
	if !ok || tok.Category != STR || n != len(`"it\"s"`) {
		t.Fatalf("string literal: got %+v len=%d ok=%v", tok, n, ok)
	}

	tok, _, ok = Classify("&HFF rest")
	if !ok || tok.Category != HEX || tok.Text != "0xFF" {
		t.Fatalf("hex literal: got %+v ok=%v", tok, ok)
	}

	tok, _, ok = Classify("#1/2/2020#")
	if !ok || tok.Category != DATE || tok.Text != `"1/2/2020"` {
		t.Fatalf("date literal: got %+v ok=%v", tok, ok)
	}

	tok, _, ok = Classify("3.14& rest")
	if !ok || tok.Category != NUM || tok.Text != "3.14" {
		t.Fatalf("number literal: got %+v ok=%v", tok, ok)
	}
}

func TestJSOperatorTable(t *testing.T) {
	tests := map[string]string{
		"=": " == ", "<>": " != ", "And": " && ", "Or": " || ",
		"Xor": " ^ ", "Mod": " % ", "Is": " == ", "Not": "!", "New": "new ",
	}
	for vba, want := range tests {
		if got := JSOperator[vba]; got != want {
			t.Fatalf("JSOperator[%q] = %q, want %q", vba, got, want)
		}
	}
}
