package vbconv

import "testing"

func TestGlobalStateIsArrayUnionMembership(t *testing.T) {
	gs := newGlobalState()
	gs.RecordArray("Cells", false)
	gs.RecordArray("rows", true)

	tests := []struct {
		name string
		want bool
	}{
		{"Cells", true},
		{"CELLS", true}, // case-insensitive
		{"rows", true},
		{"cols", false},
	}
	for _, tt := range tests {
		if got := gs.IsArray(tt.name); got != tt.want {
			t.Errorf("IsArray(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestGlobalStateClearLocalsDropsOnlyLocalNames(t *testing.T) {
	gs := newGlobalState()
	gs.RecordArray("global1", false)
	gs.RecordArray("local1", true)

	gs.ClearLocals()

	if !gs.IsArray("global1") {
		t.Error("ClearLocals dropped a global array name")
	}
	if gs.IsArray("local1") {
		t.Error("ClearLocals did not drop a local array name")
	}
}

func TestGlobalStateWithStack(t *testing.T) {
	gs := newGlobalState()

	if _, open := gs.CurrentWith(); open {
		t.Fatal("CurrentWith reported open before any Push")
	}

	gs.PushWith("Range(\"A1\")")
	gs.PushWith("Cells(1, 1)")

	target, open := gs.CurrentWith()
	if !open || target != "Cells(1, 1)" {
		t.Fatalf("CurrentWith = (%q, %v), want (%q, true)", target, open, "Cells(1, 1)")
	}

	if err := gs.PopWith(1, "End With"); err != nil {
		t.Fatalf("PopWith: %v", err)
	}
	target, open = gs.CurrentWith()
	if !open || target != `Range("A1")` {
		t.Fatalf("CurrentWith after pop = (%q, %v), want (%q, true)", target, open, `Range("A1")`)
	}

	if err := gs.PopWith(2, "End With"); err != nil {
		t.Fatalf("PopWith: %v", err)
	}
	if _, open := gs.CurrentWith(); open {
		t.Fatal("CurrentWith still open after popping every With")
	}
}

func TestGlobalStatePopWithEmptyStackIsError(t *testing.T) {
	gs := newGlobalState()
	err := gs.PopWith(5, "End With")
	if err == nil {
		t.Fatal("expected an error popping an empty With stack")
	}
	pe, ok := err.(*ParseException)
	if !ok {
		t.Fatalf("expected *ParseException, got %T", err)
	}
	if pe.Code != ErrEmptyWithStack {
		t.Errorf("Code = %q, want %q", pe.Code, ErrEmptyWithStack)
	}
	if pe.Line != 5 {
		t.Errorf("Line = %d, want 5", pe.Line)
	}
}
