package vbconv

import "strings"

// GlobalState owns the identifier and With-target bookkeeping shared by
// every statement translator. It is created once per conversion and passed
// by reference, the way the teacher's SymbolTable is owned by a single
// Analyzer rather than kept in package-level state.
type GlobalState struct {
	globalNames map[string]bool
	localNames  map[string]bool
	withNames   []string
}

func newGlobalState() *GlobalState {
	return &GlobalState{
		globalNames: make(map[string]bool),
		localNames:  make(map[string]bool),
	}
}

func fold(name string) string { return strings.ToLower(name) }

// RecordArray marks name as an array. local controls which scope the name
// is recorded in; top-level declarations are always global.
func (g *GlobalState) RecordArray(name string, local bool) {
	if local {
		g.localNames[fold(name)] = true
	} else {
		g.globalNames[fold(name)] = true
	}
}

// IsArray reports whether name has been recorded as an array in either
// scope, per spec.md §3: "'is array name' is the union membership test."
func (g *GlobalState) IsArray(name string) bool {
	f := fold(name)
	return g.globalNames[f] || g.localNames[f]
}

// ClearLocals drops every locally recorded array name. Called when
// subNestingValue returns to 0, per spec.md §3 invariant.
func (g *GlobalState) ClearLocals() {
	g.localNames = make(map[string]bool)
}

// PushWith records target as the currently active With target.
func (g *GlobalState) PushWith(target string) {
	g.withNames = append(g.withNames, target)
}

// PopWith removes the most recently pushed With target. It returns an
// ErrEmptyWithStack ParseException when the stack is empty, per spec.md §7.
func (g *GlobalState) PopWith(line int, text string) error {
	if len(g.withNames) == 0 {
		return newParseException(ErrEmptyWithStack, line, text, "End With without matching With")
	}
	g.withNames = g.withNames[:len(g.withNames)-1]
	return nil
}

// CurrentWith returns the active With target and whether one is open.
func (g *GlobalState) CurrentWith() (string, bool) {
	if len(g.withNames) == 0 {
		return "", false
	}
	return g.withNames[len(g.withNames)-1], true
}
